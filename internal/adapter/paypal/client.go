// Package paypal drives the server side of the PayPal checkout handshake:
// exchanging client credentials for a short-lived access token and
// capturing an approved order.
package paypal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tulamia/orderdesk/internal/domain/model"
)

// ErrMissingAccessToken indicates the provider auth response lacked a token.
var ErrMissingAccessToken = errors.New("paypal auth response missing access_token")

// AuthError represents a failed credential exchange.
type AuthError struct {
	StatusCode int
	Body       string
}

func (e AuthError) Error() string {
	return fmt.Sprintf("paypal auth failed: %d %s", e.StatusCode, e.Body)
}

// CaptureError represents a capture call rejected at the HTTP level.
type CaptureError struct {
	StatusCode int
	Body       string
}

func (e CaptureError) Error() string {
	return fmt.Sprintf("paypal capture failed: %d %s", e.StatusCode, e.Body)
}

// Client exposes the provider operations the capture commit needs.
type Client interface {
	AccessToken(ctx context.Context) (string, error)
	Capture(ctx context.Context, providerOrderID, accessToken string) (*model.CaptureResult, error)
}

// HTTPClient implements Client against the PayPal REST API.
type HTTPClient struct {
	baseURL    *url.URL
	clientID   string
	secret     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates a provider client with default timeout.
func NewHTTPClient(baseURL, clientID, secret string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse paypal url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("paypal url must be absolute")
	}
	return &HTTPClient{
		baseURL:  parsed,
		clientID: clientID,
		secret:   secret,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// AccessToken exchanges the configured credentials for a bearer token via
// the client-credentials grant.
func (c *HTTPClient) AccessToken(ctx context.Context) (string, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v1/oauth2/token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.clientID, c.secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("paypal auth request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return "", AuthError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var data tokenResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return "", err
	}
	if data.AccessToken == "" {
		return "", ErrMissingAccessToken
	}
	return data.AccessToken, nil
}

type captureResponse struct {
	Status string `json:"status"`
}

// Capture settles an approved provider order and returns its status with
// the raw provider payload. The PayPal-Request-Id header makes an
// accidental duplicate call idempotent on the provider side.
func (c *HTTPClient) Capture(ctx context.Context, providerOrderID, accessToken string) (*model.CaptureResult, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v2/checkout/orders/", providerOrderID, "/capture")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("PayPal-Request-Id", uuid.NewString())
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Error("paypal capture request failed", slog.String("order", providerOrderID), slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, CaptureError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var data captureResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}
	status := data.Status
	if status == "" {
		status = "unknown"
	}
	return &model.CaptureResult{Status: status, Details: json.RawMessage(body)}, nil
}
