package gewe

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// DefaultBaseURL is where a locally deployed gateway listens.
	DefaultBaseURL = "http://localhost:2531/v2/api"
	// TokenHeader carries the client token on every request.
	TokenHeader = "X-GEWE-TOKEN"
	// TokenRoute issues new tokens and is the only route accepting an empty body.
	TokenRoute = "/tools/getTokenId"
)

// Observer is notified after every dispatched request.
type Observer interface {
	ObserveRequest(route string, elapsed time.Duration, err error)
}

// Client dispatches requests to the gateway. It is immutable once built and
// safe for concurrent use.
//
// The underlying transport never uses a forward proxy, regardless of the
// HTTP_PROXY family of environment variables.
type Client struct {
	token    string
	baseURL  string
	http     *resty.Client
	log      *slog.Logger
	observer Observer
}

// Builder assembles a Client.
type Builder struct {
	token    string
	baseURL  string
	log      *slog.Logger
	observer Observer
}

// NewBuilder returns a Builder with an empty token and DefaultBaseURL.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) WithToken(token string) *Builder {
	b.token = token
	return b
}

func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.baseURL = baseURL
	return b
}

func (b *Builder) WithLogger(log *slog.Logger) *Builder {
	b.log = log
	return b
}

func (b *Builder) WithObserver(o Observer) *Builder {
	b.observer = o
	return b
}

// Build returns a new Client. The Builder may be reused afterwards.
func (b *Builder) Build() *Client {
	baseURL := b.baseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	log := b.log
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		token:    b.token,
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     resty.New().RemoveProxy(),
		log:      log.With("component", "gewe"),
		observer: b.observer,
	}
}

// NewClient is shorthand for NewBuilder().WithToken(token).Build().
func NewClient(token string) *Client {
	return NewBuilder().WithToken(token).Build()
}

func (c *Client) Token() string   { return c.token }
func (c *Client) BaseURL() string { return c.baseURL }

// Post sends params as a JSON object to baseURL+route and returns the decoded
// reply. An empty params is only accepted for TokenRoute; for every other
// route it fails with *ConfigurationError before touching the network, and a
// body that cannot be encoded fails with *ArgumentError.
// The HTTP status is not inspected: whatever JSON the gateway returns is
// handed back as is.
func (c *Client) Post(ctx context.Context, route string, params Params) (resp *Response, err error) {
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		if c.observer != nil {
			c.observer.ObserveRequest(route, elapsed, err)
		}
		if err != nil {
			c.log.Debug("gateway request failed", "route", route, "elapsed", elapsed, "error", err)
		} else {
			c.log.Debug("gateway request", "route", route, "elapsed", elapsed)
		}
	}()

	if len(params) == 0 && route != TokenRoute {
		return nil, &ConfigurationError{Route: route}
	}

	req := c.http.R().
		SetContext(ctx).
		SetHeader(TokenHeader, c.token)

	if len(params) > 0 {
		body, err := json.Marshal(params)
		if err != nil {
			return nil, &ArgumentError{Endpoint: route, Reason: "encode body: " + err.Error()}
		}
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	httpResp, err := req.Post(c.baseURL + route)
	if err != nil {
		return nil, &TransportError{Route: route, Err: err}
	}

	resp, err = newResponse(httpResp.Body())
	if err != nil {
		return nil, &TransportError{
			Route: route,
			Err:   fmt.Errorf("decode response (HTTP %d): %w", httpResp.StatusCode(), err),
		}
	}
	return resp, nil
}

// Invoke binds args to ep's fields and posts the result to ep's route.
func (c *Client) Invoke(ctx context.Context, ep *Endpoint, args ...interface{}) (*Response, error) {
	params, err := ep.Bind(args...)
	if err != nil {
		return nil, err
	}
	return c.Post(ctx, ep.Route, params)
}

// Call looks name up in DefaultRegistry, by endpoint name or by route, and
// invokes it with args.
func (c *Client) Call(ctx context.Context, name string, args ...interface{}) (*Response, error) {
	ep, err := DefaultRegistry.Resolve(name)
	if err != nil {
		return nil, err
	}
	return c.Invoke(ctx, ep, args...)
}

// GetToken asks the gateway for a new token. The token is found in the
// "data" field of the reply.
func (c *Client) GetToken(ctx context.Context) (*Response, error) {
	return c.Post(ctx, TokenRoute, nil)
}
