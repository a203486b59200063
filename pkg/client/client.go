// Package client calls the booking API through the endpoint descriptors in
// pkg/contract. Inputs are validated locally before any request is sent and
// every response body is validated against the shape declared for its
// status.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/programari/backend/pkg/contract"
)

const maxResponseBytes = 1 << 20

// Client is a booking API client. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	notifier   Notifier
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithNotifier sets the receiver of mutation notifications.
func WithNotifier(n Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

// New creates a Client for the API served at baseURL, e.g.
// "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		notifier:   NopNotifier{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListServices(ctx context.Context) ([]contract.Service, error) {
	return call[[]contract.Service](ctx, c, contract.API.Services.List, nil, nil)
}

// GetService returns ErrServiceNotFound when the server answers 404.
func (c *Client) GetService(ctx context.Context, slug string) (contract.Service, error) {
	svc, err := call[contract.Service](ctx, c, contract.API.Services.Get, map[string]string{"slug": slug}, nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return contract.Service{}, ErrServiceNotFound
	}
	return svc, err
}

func (c *Client) CreateBooking(ctx context.Context, in contract.InsertBooking) (contract.Created, error) {
	out, err := call[contract.Created](ctx, c, contract.API.Bookings.Create, nil, in)
	if err != nil {
		c.notifier.Notify(failureNotification(err))
		return out, err
	}
	c.notifier.Notify(Notification{
		Kind:        KindSuccess,
		Title:       "Booking sent!",
		Description: "We will contact you soon to confirm.",
	})
	return out, nil
}

func (c *Client) SendMessage(ctx context.Context, in contract.InsertMessage) (contract.Created, error) {
	out, err := call[contract.Created](ctx, c, contract.API.Messages.Create, nil, in)
	if err != nil {
		c.notifier.Notify(failureNotification(err))
		return out, err
	}
	c.notifier.Notify(Notification{
		Kind:        KindSuccess,
		Title:       "Message sent!",
		Description: "Thank you for your message. I will reply as soon as possible.",
	})
	return out, nil
}

// call performs one round trip for ep. input is ignored for endpoints
// without an input shape.
func call[T any](ctx context.Context, c *Client, ep contract.Endpoint, params map[string]string, input any) (T, error) {
	var zero T

	path, err := ep.URL(params)
	if err != nil {
		return zero, err
	}

	var body io.Reader
	if ep.Input != nil {
		payload, err := canonicalInput(ep, input)
		if err != nil {
			return zero, err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, ep.Method, c.baseURL+path, body)
	if err != nil {
		return zero, fmt.Errorf("%s: build request: %w", ep.Name, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, &TransportError{Endpoint: ep.Name, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return zero, &TransportError{Endpoint: ep.Name, Err: err}
	}

	if resp.StatusCode != ep.SuccessStatus() {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return zero, &ContractViolationError{
				Endpoint: ep.Name,
				Status:   resp.StatusCode,
				Err:      fmt.Errorf("undeclared success status, want %d", ep.SuccessStatus()),
			}
		}
		return zero, failure(ep, resp.StatusCode, raw)
	}

	shape, _ := ep.Response(resp.StatusCode)
	out, err := contract.Decode[T](shape, raw)
	if err != nil {
		return zero, &ContractViolationError{Endpoint: ep.Name, Status: resp.StatusCode, Err: err}
	}
	return out, nil
}

// canonicalInput validates input with the endpoint's input shape and
// returns the canonical JSON to send.
func canonicalInput(ep contract.Endpoint, input any) ([]byte, error) {
	raw, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("%s: encode input: %w", ep.Name, err)
	}
	canonical, err := ep.Input.Validate(raw)
	if err != nil {
		return nil, err
	}
	return json.Marshal(canonical)
}

// failure builds the error for a non-success status. Declared error shapes
// are enforced; undeclared statuses are read leniently.
func failure(ep contract.Endpoint, status int, raw []byte) error {
	shape, declared := ep.Response(status)
	if !declared {
		apiErr := &APIError{Endpoint: ep.Name, Status: status}
		if body, err := contract.ErrorSchema.Parse(raw); err == nil {
			apiErr.Message = body.Message
		}
		return apiErr
	}

	out, err := shape.Validate(raw)
	if err != nil {
		return &ContractViolationError{Endpoint: ep.Name, Status: status, Err: err}
	}
	switch body := out.(type) {
	case contract.ValidationFailure:
		return &APIError{Endpoint: ep.Name, Status: status, Message: body.Message, Field: body.Field}
	case contract.ErrorBody:
		return &APIError{Endpoint: ep.Name, Status: status, Message: body.Message}
	default:
		return &APIError{Endpoint: ep.Name, Status: status}
	}
}
