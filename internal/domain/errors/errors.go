package errors

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("admin capability required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCheckoutNotReady   = errors.New("checkout requires contact info and a non-empty cart")
	ErrInvalidMenuItem    = errors.New("invalid menu item payload")
	ErrInvalidStatus      = errors.New("invalid payment status")
	ErrSubmissionInFlight = errors.New("an order submission is already in progress")
	ErrRemoteUnavailable  = errors.New("remote store is not configured")
	ErrInvalidProvider    = errors.New("invalid payment provider")
	ErrPayPalUnavailable  = errors.New("paypal is not configured")
)
