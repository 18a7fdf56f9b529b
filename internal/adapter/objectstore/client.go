// Package objectstore writes receipt images to an HTTP object store (any
// bucket that accepts authenticated PUTs, such as S3 presigned endpoints,
// GCS XML API or MinIO) behind a circuit breaker.
package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/filatei/btorestate/internal/config"
)

// ErrUnavailable is returned without contacting the store while the breaker is open.
var ErrUnavailable = errors.New("object store unavailable")

// Client uploads objects under BaseURL and reports their public URL.
type Client struct {
	http      *http.Client
	baseURL   string
	publicURL string
	token     string
	breaker   *gobreaker.CircuitBreaker
	log       *slog.Logger
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	httpClient    *http.Client
	onStateChange func(from, to gobreaker.State)
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = c }
}

// WithStateObserver is called on every breaker transition.
func WithStateObserver(fn func(from, to gobreaker.State)) Option {
	return func(o *clientOptions) { o.onStateChange = fn }
}

// New creates a client. The breaker opens after maxFailures consecutive
// failed uploads and tries again after openTimeout.
func New(cfg config.ObjectStoreConfig, maxFailures uint32, openTimeout time.Duration, log *slog.Logger, opts ...Option) *Client {
	o := clientOptions{httpClient: &http.Client{Timeout: cfg.Timeout}}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Client{
		http:      o.httpClient,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		token:     cfg.BearerToken,
		log:       log.With("adapter", "objectstore"),
	}
	if c.publicURL == "" {
		c.publicURL = c.baseURL
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "object-store",
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			if o.onStateChange != nil {
				o.onStateChange(from, to)
			}
		},
	})

	return c
}

// Put uploads body under key and returns the URL it can be fetched from.
func (c *Client) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	target, err := c.objectURL(c.baseURL, key)
	if err != nil {
		return "", err
	}

	_, err = c.breaker.Execute(func() (any, error) {
		return nil, c.put(ctx, target, contentType, body)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("put %s: %w: %w", key, ErrUnavailable, err)
	}
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}

	return c.objectURL(c.publicURL, key)
}

func (c *Client) put(ctx context.Context, target, contentType string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(body))
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) objectURL(base, key string) (string, error) {
	segments := strings.Split(strings.Trim(key, "/"), "/")
	for i, s := range segments {
		if s == "" || s == "." || s == ".." {
			return "", fmt.Errorf("invalid object key %q", key)
		}
		segments[i] = url.PathEscape(s)
	}
	return base + "/" + strings.Join(segments, "/"), nil
}

// State exposes the breaker state for health reporting.
func (c *Client) State() gobreaker.State {
	return c.breaker.State()
}

// Ping reports ErrUnavailable while the breaker is open. It never contacts the store.
func (c *Client) Ping(context.Context) error {
	if c.breaker.State() == gobreaker.StateOpen {
		return ErrUnavailable
	}
	return nil
}
