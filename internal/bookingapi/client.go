package bookingapi

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

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/david-mangena/e-commerce-site/internal/config"
	"github.com/david-mangena/e-commerce-site/internal/models"
	"github.com/david-mangena/e-commerce-site/internal/observability"
)

// Client errors
var (
	ErrTokenRequired    = errors.New("an auth token is required for this operation")
	ErrNotAuthenticated = errors.New("not authenticated: call Authenticate first")
	ErrTokenNotReceived = errors.New("no token in auth response")
	ErrUnexpectedStatus = errors.New("unexpected status code")
)

// defaultTimeout applies when no timeout option is given
const defaultTimeout = 30 * time.Second

// Response is the raw outcome of one request
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Duration   time.Duration
}

// OK reports whether the status code is 2xx
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Text returns the body as a string
func (r *Response) Text() string {
	return string(r.Body)
}

// Client issues Restful Booker requests. It holds no per-session state and
// is safe for concurrent use.
type Client struct {
	baseURL   string
	client    *http.Client
	timeout   time.Duration
	endpoints *Endpoints
	logger    *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithTimeout sets the per-request timeout. A client given through
// WithHTTPClient is copied, never modified.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger logs one debug line per request
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = observability.OrNop(logger)
	}
}

// NewClient creates a client for the service at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		client:    &http.Client{Timeout: defaultTimeout},
		endpoints: NewEndpoints(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.timeout > 0 {
		client := *c.client
		client.Timeout = c.timeout
		c.client = &client
	}
	return c
}

// NewClientWithConfig creates a client from the suite configuration
func NewClientWithConfig(cfg *config.SuiteConfig, logger *zap.Logger) *Client {
	opts := []Option{WithTimeout(cfg.RequestTimeout)}
	if cfg.LogRequests {
		opts = append(opts, WithLogger(logger))
	}
	return NewClient(cfg.APIBaseURL, opts...)
}

// BaseURL returns the service address the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Endpoints returns the path builders used by the client
func (c *Client) Endpoints() *Endpoints {
	return c.endpoints
}

// Do issues one request. A non-nil payload is sent as JSON and a non-empty
// token travels as the token cookie.
func (c *Client) Do(ctx context.Context, method, path string, payload interface{}, token models.Token) (*Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !token.IsZero() {
		req.Header.Set("Cookie", token.Cookie())
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.Debug("Request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("duration", duration),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	c.logger.Debug("Request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration),
		zap.String("request_id", requestID),
	)

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		Duration:   duration,
	}, nil
}

// CreateToken posts credentials to the auth endpoint. The service answers
// bad credentials with a success status and a reason.
func (c *Client) CreateToken(ctx context.Context, creds models.Credentials) (*Response, *models.AuthResponse, error) {
	resp, err := c.Do(ctx, http.MethodPost, c.endpoints.Auth(), creds, "")
	if err != nil {
		return nil, nil, fmt.Errorf("creating token: %w", err)
	}

	auth, err := decodeOK[models.AuthResponse](resp)
	if err != nil {
		return resp, nil, fmt.Errorf("creating token: %w", err)
	}
	return resp, auth, nil
}

// Authenticate exchanges credentials for a token
func (c *Client) Authenticate(ctx context.Context, creds models.Credentials) (models.Token, error) {
	resp, auth, err := c.CreateToken(ctx, creds)
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", fmt.Errorf("authenticating: %w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	if auth.Token == "" {
		if auth.Reason != "" {
			return "", fmt.Errorf("%w: %s", ErrTokenNotReceived, auth.Reason)
		}
		return "", ErrTokenNotReceived
	}
	return models.Token(auth.Token), nil
}

// CreateBooking creates a booking
func (c *Client) CreateBooking(ctx context.Context, booking models.Booking) (*Response, *models.CreatedBooking, error) {
	return doJSON[models.CreatedBooking](ctx, c, http.MethodPost, c.endpoints.Bookings(), booking, "")
}

// GetBooking retrieves a booking by id
func (c *Client) GetBooking(ctx context.Context, id int) (*Response, *models.Booking, error) {
	return doJSON[models.Booking](ctx, c, http.MethodGet, c.endpoints.Booking(id), nil, "")
}

// GetAllBookings lists booking ids, optionally filtered
func (c *Client) GetAllBookings(ctx context.Context, filter models.BookingFilter) (*Response, []models.BookingRef, error) {
	resp, refs, err := doJSON[[]models.BookingRef](ctx, c, http.MethodGet, c.endpoints.ListBookings(filter), nil, "")
	if err != nil || refs == nil {
		return resp, nil, err
	}
	return resp, *refs, nil
}

// UpdateBooking replaces a booking
func (c *Client) UpdateBooking(ctx context.Context, id int, booking models.Booking, token models.Token) (*Response, *models.Booking, error) {
	if token.IsZero() {
		return nil, nil, ErrTokenRequired
	}
	return doJSON[models.Booking](ctx, c, http.MethodPut, c.endpoints.Booking(id), booking, token)
}

// PartialUpdateBooking updates the set fields of a booking
func (c *Client) PartialUpdateBooking(ctx context.Context, id int, patch models.BookingPatch, token models.Token) (*Response, *models.Booking, error) {
	if token.IsZero() {
		return nil, nil, ErrTokenRequired
	}
	return doJSON[models.Booking](ctx, c, http.MethodPatch, c.endpoints.Booking(id), patch, token)
}

// DeleteBooking removes a booking; the service answers 201 on success
func (c *Client) DeleteBooking(ctx context.Context, id int, token models.Token) (*Response, error) {
	if token.IsZero() {
		return nil, ErrTokenRequired
	}

	resp, err := c.Do(ctx, http.MethodDelete, c.endpoints.Booking(id), nil, token)
	if err != nil {
		return nil, fmt.Errorf("deleting booking %d: %w", id, err)
	}
	return resp, nil
}

// HealthCheck pings the service
func (c *Client) HealthCheck(ctx context.Context) (*Response, error) {
	resp, err := c.Do(ctx, http.MethodGet, c.endpoints.Ping(), nil, "")
	if err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}
	return resp, nil
}

func doJSON[T any](ctx context.Context, c *Client, method, path string, payload interface{}, token models.Token) (*Response, *T, error) {
	resp, err := c.Do(ctx, method, path, payload, token)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	body, err := decodeOK[T](resp)
	if err != nil {
		return resp, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, body, nil
}

// decodeOK parses a 2xx body; other statuses yield a nil body
func decodeOK[T any](resp *Response) (*T, error) {
	if !resp.OK() {
		return nil, nil
	}

	var body T
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("decoding response body: %w", err)
	}
	return &body, nil
}
