package dto

import (
	"encoding/json"

	"github.com/tulamia/orderdesk/internal/domain/model"
)

// CustomerPayload is the checkout contact block.
type CustomerPayload struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Fulfillment string `json:"fulfillment"`
	Notes       string `json:"notes"`
}

// Customer converts the payload into the domain shape.
func (p CustomerPayload) Customer() model.Customer {
	return model.Customer{
		Name:        p.Name,
		Email:       p.Email,
		Fulfillment: model.Fulfillment(p.Fulfillment),
		Notes:       p.Notes,
	}
}

// CheckoutRequest submits the session cart with a non-PayPal payment method.
type CheckoutRequest struct {
	Customer CustomerPayload `json:"customer"`
	Provider string          `json:"paymentMethod"`
}

// CaptureRequest triggers the server-side capture commit for an approved
// PayPal order.
type CaptureRequest struct {
	PayPalOrderID string          `json:"paypalOrderId"`
	Customer      CustomerPayload `json:"customer"`
}

// CaptureResponse reports a recorded capture.
type CaptureResponse struct {
	OrderID       string          `json:"orderId"`
	PayPalOrderID string          `json:"paypalOrderId"`
	Status        string          `json:"status"`
	Capture       json.RawMessage `json:"capture,omitempty"`
}

// AvailabilityResponse lists PayPal preconditions that currently fail.
type AvailabilityResponse struct {
	Available bool     `json:"available"`
	Missing   []string `json:"missing,omitempty"`
}

// StatusRequest moves an order to a new settlement status.
type StatusRequest struct {
	Status string `json:"status"`
}
