package usecase

import (
	"strings"

	"github.com/tulamia/orderdesk/internal/domain/model"
)

// CanSubmit reports whether a checkout is ready: a non-empty customer
// name and email plus a positive subtotal. Callers must re-check this
// right before submitting, not only when rendering the form.
func CanSubmit(subtotal float64, customer model.Customer) bool {
	if strings.TrimSpace(customer.Name) == "" {
		return false
	}
	if strings.TrimSpace(customer.Email) == "" {
		return false
	}
	return subtotal > 0
}

// ValidProvider reports whether the payment provider is one the
// storefront offers.
func ValidProvider(p model.PaymentProvider) bool {
	switch p {
	case model.ProviderCash, model.ProviderPayPal, model.ProviderMaestro, model.ProviderCreditCard:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether the status is a known settlement state.
func ValidPaymentStatus(s model.PaymentStatus) bool {
	switch s {
	case model.PaymentPending, model.PaymentPaid, model.PaymentRefunded, model.PaymentCancelled:
		return true
	}
	return false
}

// ValidFulfillment reports whether the fulfillment mode is supported.
func ValidFulfillment(f model.Fulfillment) bool {
	return f == model.FulfillmentPickup || f == model.FulfillmentDelivery
}
