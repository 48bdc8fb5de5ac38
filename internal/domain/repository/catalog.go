package repository

import (
	"context"

	"github.com/tulamia/orderdesk/internal/domain/model"
)

// CatalogRepository describes persistence operations over menu items.
type CatalogRepository interface {
	ActiveItems(ctx context.Context) ([]model.MenuItem, error)
	UpsertItem(ctx context.Context, item model.MenuItem) (model.MenuItem, error)
	DeleteItem(ctx context.Context, id string) error
}
