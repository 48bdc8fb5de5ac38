package model

import (
	"encoding/json"
	"math/rand"
	"testing"
)

func testCatalog() []MenuItem {
	return []MenuItem{
		{ID: "brezel", Name: "Brezel", Price: 3.2, Active: true},
		{ID: "riceball", Name: "Riceball", Price: 4.5, Active: true},
		{ID: "hotpot", Name: "Mini Hot Pot", Price: 12, Active: true},
	}
}

func TestCartAddAndUpdate(t *testing.T) {
	cart := NewCart()
	cart.Add("brezel")
	cart.Add("brezel")
	if got := cart.Quantity("brezel"); got != 2 {
		t.Fatalf("expected quantity 2, got %d", got)
	}

	cart.Update("brezel", 5)
	if got := cart.Quantity("brezel"); got != 5 {
		t.Fatalf("expected quantity 5, got %d", got)
	}

	cart.Update("brezel", 0)
	if got := cart.Quantity("brezel"); got != 0 {
		t.Fatalf("expected line removed, got %d", got)
	}
	if !cart.Empty() {
		t.Fatal("expected empty cart after removing only line")
	}
}

func TestCartNeverHoldsNonPositiveQuantity(t *testing.T) {
	ids := []string{"brezel", "riceball", "hotpot"}
	rng := rand.New(rand.NewSource(1))
	cart := NewCart()
	for i := 0; i < 500; i++ {
		id := ids[rng.Intn(len(ids))]
		switch rng.Intn(3) {
		case 0:
			cart.Add(id)
		case 1:
			cart.Update(id, rng.Intn(7)-3)
		case 2:
			cart.Remove(id)
		}
		for lineID, qty := range cart.Quantities() {
			if qty <= 0 {
				t.Fatalf("cart holds non-positive quantity %d for %s", qty, lineID)
			}
		}
	}
}

func TestCartLinesDropMissingItems(t *testing.T) {
	cart := NewCart()
	cart.Add("brezel")
	cart.Add("deleted-dish")

	lines := cart.Lines(testCatalog())
	if len(lines) != 1 {
		t.Fatalf("expected 1 surviving line, got %d", len(lines))
	}
	if lines[0].ID != "brezel" {
		t.Fatalf("unexpected line %q", lines[0].ID)
	}
}

func TestCartSubtotalTracksLiveCatalogPrice(t *testing.T) {
	cart := NewCart()
	cart.Update("brezel", 2)
	cart.Update("riceball", 1)

	catalog := testCatalog()
	if got := cart.Subtotal(catalog); got != 10.9 {
		t.Fatalf("expected subtotal 10.90, got %.2f", got)
	}

	catalog[0].Price = 4.2
	if got := cart.Subtotal(catalog); got != 12.9 {
		t.Fatalf("expected repriced subtotal 12.90, got %.2f", got)
	}
}

func TestCartClearAndClone(t *testing.T) {
	cart := NewCart()
	cart.Add("brezel")
	snapshot := cart.Clone()
	cart.Clear()

	if !cart.Empty() {
		t.Fatal("expected cleared cart to be empty")
	}
	if snapshot.Quantity("brezel") != 1 {
		t.Fatal("expected clone to be independent of the original")
	}
}

func TestLocalizedTextResolve(t *testing.T) {
	tests := []struct {
		name   string
		text   LocalizedText
		locale string
		want   string
	}{
		{name: "locale match", text: LocalizedText{Plain: "plain", ByLocale: map[string]string{"de": "Brezn"}}, locale: "de", want: "Brezn"},
		{name: "falls back to plain", text: LocalizedText{Plain: "plain", ByLocale: map[string]string{"de": "Brezn"}}, locale: "it", want: "plain"},
		{name: "falls back to english", text: LocalizedText{ByLocale: map[string]string{"en": "Pretzel", "de": "Brezn"}}, locale: "it", want: "Pretzel"},
		{name: "deterministic last resort", text: LocalizedText{ByLocale: map[string]string{"fr": "bretzel", "de": "Brezn"}}, locale: "", want: "Brezn"},
		{name: "empty", text: LocalizedText{}, locale: "de", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.text.Resolve(tt.locale); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLocalizedTextJSONShapes(t *testing.T) {
	var plain LocalizedText
	if err := json.Unmarshal([]byte(`"crispy onigiri"`), &plain); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plain.Plain != "crispy onigiri" {
		t.Fatalf("unexpected plain text %q", plain.Plain)
	}

	var localized LocalizedText
	if err := json.Unmarshal([]byte(`{"en":"pretzel","de":"Brezn"}`), &localized); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if localized.Resolve("de") != "Brezn" {
		t.Fatalf("unexpected localized text %q", localized.Resolve("de"))
	}

	out, err := json.Marshal(plain)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `"crispy onigiri"` {
		t.Fatalf("unexpected marshalled shape %s", out)
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(3.2 * 3); got != 9.6 {
		t.Fatalf("expected 9.60, got %v", got)
	}
	if got := Round2(0.1 + 0.2); got != 0.3 {
		t.Fatalf("expected 0.30, got %v", got)
	}
}
