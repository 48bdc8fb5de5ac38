package dto

import "github.com/tulamia/orderdesk/internal/domain/model"

// AddItemRequest adds one unit of an item to the cart.
type AddItemRequest struct {
	ID string `json:"id"`
}

// UpdateItemRequest sets an absolute quantity; zero or less removes the line.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse is the priced cart view.
type CartResponse struct {
	Items  []model.OrderLine `json:"items"`
	Totals model.Totals      `json:"totals"`
}
