// Package snapshot serves the bundled static catalog and order fixtures,
// the second tier of the order data gateway. It keeps the storefront
// usable when no remote store is reachable.
package snapshot

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/tulamia/orderdesk/internal/domain/model"
)

//go:embed assets
var assets embed.FS

const (
	catalogPath = "assets/dishes.json"
	ordersPath  = "assets/orders.json"
)

// Source reads the embedded snapshot resources.
type Source struct {
	fsys fs.FS
}

// New returns a source backed by the embedded assets.
func New() *Source {
	return &Source{fsys: assets}
}

// NewFromFS returns a source over an alternate file system, used in tests.
func NewFromFS(fsys fs.FS) *Source {
	return &Source{fsys: fsys}
}

// Catalog loads the static menu. Snapshot items are always active.
func (s *Source) Catalog() ([]model.MenuItem, error) {
	data, err := fs.ReadFile(s.fsys, catalogPath)
	if err != nil {
		return nil, fmt.Errorf("read catalog snapshot: %w", err)
	}
	var items []model.MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode catalog snapshot: %w", err)
	}
	for i := range items {
		items[i].Active = true
	}
	return items, nil
}

// Orders loads the static order fixtures.
func (s *Source) Orders() ([]model.Order, error) {
	data, err := fs.ReadFile(s.fsys, ordersPath)
	if err != nil {
		return nil, fmt.Errorf("read orders snapshot: %w", err)
	}
	var orders []model.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("decode orders snapshot: %w", err)
	}
	return orders, nil
}
