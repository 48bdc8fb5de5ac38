package repository

import (
	"context"

	"github.com/tulamia/orderdesk/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
//
// CreateOrder is the atomic commit primitive: customer, order and line
// items are inserted inside a single transaction, so a partially recorded
// order can never exist. It returns the server-assigned order id.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order model.Order) (string, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	ListRecent(ctx context.Context, limit int) ([]model.Order, error)
	SetPaymentStatus(ctx context.Context, orderID string, status model.PaymentStatus) (*model.Order, error)
	DeleteOrder(ctx context.Context, orderID string) error
}
