package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultTimeout  = 10 * time.Second
	maxResponseSize = 32 << 20
	requestIDHeader = "X-Request-ID"
)

// Client calls the store backend REST API.
type Client struct {
	baseURL      *url.URL
	httpClient   *http.Client
	serviceToken string
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the default instrumented HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithServiceToken sets the bearer token used when the context carries none.
// Leave it unset for clients serving end users, so calls without a caller
// token reach the backend unauthenticated.
func WithServiceToken(token string) Option {
	return func(c *Client) {
		c.serviceToken = strings.TrimSpace(token)
	}
}

// NewClient builds a client rooted at baseURL, e.g. http://localhost:8080/api.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("store api base URL is required")
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse store api base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("store api base URL %q must be absolute", baseURL)
	}
	c := &Client{
		baseURL: parsed,
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

type tokenKey struct{}

// WithBearerToken returns a context whose calls authenticate as the given
// caller instead of the service token.
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, strings.TrimSpace(token))
}

// BearerToken returns the caller token stored in ctx, if any.
func BearerToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// CreateOrder issues POST /orders.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	var out Order
	if err := c.do(ctx, http.MethodPost, []string{"orders"}, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyOrders issues GET /orders/my-orders for the caller in ctx.
func (c *Client) MyOrders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.do(ctx, http.MethodGet, []string{"orders", "my-orders"}, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Order issues GET /orders/{id}.
func (c *Client) Order(ctx context.Context, id int64) (*Order, error) {
	var out Order
	if err := c.do(ctx, http.MethodGet, []string{"orders", strconv.FormatInt(id, 10)}, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AllOrders issues GET /orders/all.
func (c *Client) AllOrders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.do(ctx, http.MethodGet, []string{"orders", "all"}, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateOrderStatus issues PUT /orders/{id}/status?status=... with an empty body.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status string) (*Order, error) {
	var out Order
	query := url.Values{"status": []string{status}}
	if err := c.do(ctx, http.MethodPut, []string{"orders", strconv.FormatInt(id, 10), "status"}, query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OrdersByStatus issues GET /orders/status/{status}.
func (c *Client) OrdersByStatus(ctx context.Context, status string) ([]Order, error) {
	var out []Order
	if err := c.do(ctx, http.MethodGet, []string{"orders", "status", status}, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CancelOrder issues DELETE /orders/{id}.
func (c *Client) CancelOrder(ctx context.Context, id int64) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.do(ctx, http.MethodDelete, []string{"orders", strconv.FormatInt(id, 10)}, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Products issues GET /products.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.do(ctx, http.MethodGet, []string{"products"}, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Users issues GET /users.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, []string{"users"}, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method string, segments []string, query url.Values, body any, out any) error {
	path := "/" + strings.Join(segments, "/")
	target, err := c.resolve(segments)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return &Error{Kind: KindTransport, Method: method, Path: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(requestIDHeader, uuid.NewString())
	if token := c.tokenFor(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &Error{Kind: KindTransport, Method: method, Path: path, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Kind:       KindStatus,
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw),
		}
	}
	if out == nil {
		return nil
	}
	if err := decodePayload(raw, out); err != nil {
		return &Error{Kind: KindDecode, Method: method, Path: path, StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}

// resolve appends escaped segments to the base URL. Dot segments are refused
// so a caller-supplied value can never climb to another endpoint.
func (c *Client) resolve(segments []string) (*url.URL, error) {
	target := *c.baseURL
	rawPath := target.EscapedPath()
	path := target.Path
	for _, segment := range segments {
		if segment == "" || segment == "." || segment == ".." {
			return nil, fmt.Errorf("%w %q", ErrInvalidPathSegment, segment)
		}
		rawPath += "/" + url.PathEscape(segment)
		path += "/" + segment
	}
	target.Path = path
	target.RawPath = rawPath
	return &target, nil
}

func (c *Client) tokenFor(ctx context.Context) string {
	if token := BearerToken(ctx); token != "" {
		return token
	}
	return c.serviceToken
}
