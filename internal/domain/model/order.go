package model

import (
	"encoding/json"
	"time"
)

// Fulfillment is the delivery mode chosen by the customer.
type Fulfillment string

const (
	FulfillmentPickup   Fulfillment = "pickup"
	FulfillmentDelivery Fulfillment = "delivery"
)

// PaymentProvider identifies how an order is paid.
type PaymentProvider string

const (
	ProviderCash       PaymentProvider = "cash"
	ProviderPayPal     PaymentProvider = "paypal"
	ProviderMaestro    PaymentProvider = "maestro"
	ProviderCreditCard PaymentProvider = "credit-card"
)

// PaymentStatus describes the settlement state of an order.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentRefunded  PaymentStatus = "refunded"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Customer is the checkout contact block attached to an order.
type Customer struct {
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Fulfillment Fulfillment `json:"fulfillment"`
	Notes       string      `json:"notes,omitempty"`
}

// OrderLine is one catalog item plus quantity inside an order, with its
// computed line total.
type OrderLine struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"price"`
	LineTotal float64 `json:"lineTotal"`
}

// Totals holds the derived checkout amounts. Recomputed, never persisted
// independently of an order.
type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	ServiceFee  float64 `json:"serviceFee"`
	DeliveryFee float64 `json:"deliveryFee"`
	Total       float64 `json:"total"`
}

// Payment records provider, settlement status and an optional provider
// reference (the PayPal order id for captured payments).
type Payment struct {
	Provider  PaymentProvider `json:"provider"`
	Status    PaymentStatus   `json:"status"`
	Reference string          `json:"reference,omitempty"`
}

// Order is one placed checkout. Created exactly once per submission.
type Order struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"createdAt"`
	Customer  Customer    `json:"customer"`
	Cart      []OrderLine `json:"cart"`
	Payment   Payment     `json:"payment"`
	Totals    Totals      `json:"totals"`
}

// CaptureResult is the provider's answer to a capture call. Details keeps
// the raw provider payload for the storefront receipt.
type CaptureResult struct {
	Status  string          `json:"status"`
	Details json.RawMessage `json:"details,omitempty"`
}

// CaptureStatusCompleted is the only provider status that permits
// persisting an order as paid.
const CaptureStatusCompleted = "COMPLETED"
