package model

import (
	"encoding/json"
	"math"
	"sort"
)

// LocalizedText carries a plain description plus optional per-locale
// overrides. Resolution order is fixed: requested locale, plain text,
// English override, any remaining override (sorted for determinism).
type LocalizedText struct {
	Plain    string
	ByLocale map[string]string
}

// Resolve returns the best available text for the requested locale.
func (t LocalizedText) Resolve(locale string) string {
	if locale != "" {
		if v, ok := t.ByLocale[locale]; ok && v != "" {
			return v
		}
	}
	if t.Plain != "" {
		return t.Plain
	}
	if v, ok := t.ByLocale["en"]; ok && v != "" {
		return v
	}
	keys := make([]string, 0, len(t.ByLocale))
	for k := range t.ByLocale {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if t.ByLocale[k] != "" {
			return t.ByLocale[k]
		}
	}
	return ""
}

// IsZero reports whether no text is present in any form.
func (t LocalizedText) IsZero() bool {
	return t.Plain == "" && len(t.ByLocale) == 0
}

// UnmarshalJSON accepts either a bare string or a locale map.
func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		t.Plain = plain
		t.ByLocale = nil
		return nil
	}
	var byLocale map[string]string
	if err := json.Unmarshal(data, &byLocale); err != nil {
		return err
	}
	t.Plain = ""
	t.ByLocale = byLocale
	return nil
}

// MarshalJSON keeps the wire shape the storefront already consumes: a bare
// string unless locale overrides exist.
func (t LocalizedText) MarshalJSON() ([]byte, error) {
	if len(t.ByLocale) == 0 {
		return json.Marshal(t.Plain)
	}
	return json.Marshal(t.ByLocale)
}

// MenuItem is one purchasable dish. Immutable from the order engine's view;
// only admin mutations change it.
type MenuItem struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description LocalizedText `json:"description,omitempty"`
	Price       float64       `json:"price"`
	Emoji       string        `json:"emoji,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
	Active      bool          `json:"-"`
}

// ItemByID looks an item up in a catalog slice.
func ItemByID(catalog []MenuItem, id string) (MenuItem, bool) {
	for _, item := range catalog {
		if item.ID == id {
			return item, true
		}
	}
	return MenuItem{}, false
}

// Round2 rounds a money amount to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
