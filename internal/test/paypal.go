package test

import (
	"context"

	"github.com/tulamia/orderdesk/internal/domain/model"
)

// PayPalClientStub provides controllable provider behaviour for tests.
type PayPalClientStub struct {
	Token      string
	TokenErr   error
	Result     *model.CaptureResult
	CaptureErr error

	Captured []string
}

// AccessToken returns the configured token or error.
func (s *PayPalClientStub) AccessToken(ctx context.Context) (string, error) {
	if s.TokenErr != nil {
		return "", s.TokenErr
	}
	if s.Token == "" {
		return "stub-token", nil
	}
	return s.Token, nil
}

// Capture records the call and returns the configured result.
func (s *PayPalClientStub) Capture(ctx context.Context, providerOrderID, accessToken string) (*model.CaptureResult, error) {
	s.Captured = append(s.Captured, providerOrderID)
	if s.CaptureErr != nil {
		return nil, s.CaptureErr
	}
	if s.Result != nil {
		return s.Result, nil
	}
	return &model.CaptureResult{Status: model.CaptureStatusCompleted}, nil
}
