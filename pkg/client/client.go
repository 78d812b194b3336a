// Package client is a Go client for the conform HTTP API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	api "github.com/aretw0/conform/pkg/adapters/http"
	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/schema"
	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 15 * time.Second

var (
	// ErrBadRequest is returned when the server rejects a request as malformed.
	ErrBadRequest = errors.New("bad request")
	// ErrServer is returned on 5xx responses.
	ErrServer = errors.New("server error")
)

// Client talks to a conform server.
type Client struct {
	client *resty.Client
}

// Option configures a Client.
type Option func(*resty.Client)

// WithTimeout sets the per-request timeout. Defaults to 15s.
func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) {
		c.SetTimeout(d)
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(c *resty.Client) {
		c.SetHeader(key, value)
	}
}

// New creates a client for the server at baseURL. A missing scheme defaults to http.
func New(baseURL string, opts ...Option) (*Client, error) {
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	cli := resty.New().
		SetBaseURL(normalized).
		SetTimeout(defaultTimeout)
	for _, opt := range opts {
		opt(cli)
	}
	return &Client{client: cli}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// request carries the trace id from ctx, when present.
func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.client.R().SetContext(ctx)
	if id := domain.TraceID(ctx); id != "" {
		req.SetHeader(domain.HeaderTraceID, id)
	}
	return req
}

// Validate checks subject against an inline schema on the server.
func (c *Client) Validate(ctx context.Context, node *schema.Node, subject any) (bool, error) {
	if node == nil {
		node = schema.Fields()
	}
	raw, err := json.Marshal(node)
	if err != nil {
		return false, fmt.Errorf("encode schema: %w", err)
	}
	return c.validate(ctx, api.ValidateRequest{Schema: raw, Subject: subject})
}

// ValidateNamed checks subject against a schema stored on the server.
func (c *Client) ValidateNamed(ctx context.Context, name string, subject any) (bool, error) {
	return c.validate(ctx, api.ValidateRequest{SchemaName: name, Subject: subject})
}

func (c *Client) validate(ctx context.Context, body api.ValidateRequest) (bool, error) {
	var out api.ValidateResponse
	resp, err := c.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&out).
		Post("/validate")
	if err != nil {
		return false, fmt.Errorf("validate request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return false, err
	}
	return out.Valid, nil
}

// PutSchema stores node under name, replacing any previous schema.
func (c *Client) PutSchema(ctx context.Context, name string, node *schema.Node) error {
	if err := domain.ValidateSchemaName(name); err != nil {
		return err
	}
	if node == nil {
		node = schema.Fields()
	}
	resp, err := c.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("name", name).
		SetBody(node).
		Put("/schemas/{name}")
	if err != nil {
		return fmt.Errorf("put schema request: %w", err)
	}
	return mapHTTPError(resp)
}

// GetSchema fetches the schema stored under name.
func (c *Client) GetSchema(ctx context.Context, name string) (*schema.Node, error) {
	if err := domain.ValidateSchemaName(name); err != nil {
		return nil, err
	}
	resp, err := c.request(ctx).
		SetPathParam("name", name).
		Get("/schemas/{name}")
	if err != nil {
		return nil, fmt.Errorf("get schema request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	node, err := schema.Parse(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("decode schema %q: %w", name, err)
	}
	return node, nil
}

// ListSchemas returns the names of the stored schemas in ascending order.
func (c *Client) ListSchemas(ctx context.Context) ([]string, error) {
	var out api.SchemaList
	resp, err := c.request(ctx).
		SetResult(&out).
		Get("/schemas")
	if err != nil {
		return nil, fmt.Errorf("list schemas request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return out.Schemas, nil
}

// DeleteSchema removes the schema stored under name. Deleting a missing schema is not an error.
func (c *Client) DeleteSchema(ctx context.Context, name string) error {
	if err := domain.ValidateSchemaName(name); err != nil {
		return err
	}
	resp, err := c.request(ctx).
		SetPathParam("name", name).
		Delete("/schemas/{name}")
	if err != nil {
		return fmt.Errorf("delete schema request: %w", err)
	}
	return mapHTTPError(resp)
}

// Health reports whether the server answers its health check.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.request(ctx).Get("/health")
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}
	return mapHTTPError(resp)
}
