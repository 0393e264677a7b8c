package weverse

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"weverse-watcher/internal/domain/entity"
	"weverse-watcher/internal/resilience/circuitbreaker"
	"weverse-watcher/internal/resilience/retry"
)

const defaultHTTPTimeout = 30 * time.Second

// Client performs authenticated GET requests against the Weverse API.
// Every request goes through the shared circuit breaker and, on
// failure, the retry policy; an expired token is renewed between
// attempts so callers never see a transient 401.
type Client struct {
	httpClient *http.Client
	auth       *authenticator
	breaker    *circuitbreaker.CircuitBreaker
	retryCfg   retry.Config
	logger     *slog.Logger
	onRenewal  func(success bool)
}

// ClientOption customises a Client.
type ClientOption func(*Client)

// WithHTTPTimeout overrides the default request timeout.
func WithHTTPTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRenewalObserver registers a callback invoked after every access
// token renewal attempt, for metrics.
func WithRenewalObserver(observe func(success bool)) ClientOption {
	return func(c *Client) {
		c.onRenewal = observe
	}
}

// NewClient builds a Client for the given account credentials. No
// network traffic happens until the first request.
func NewClient(creds Credentials, opts ...ClientOption) *Client {
	httpClient := &http.Client{
		Timeout: defaultHTTPTimeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}

	c := &Client{
		httpClient: httpClient,
		breaker:    circuitbreaker.New(circuitbreaker.FeedAPIConfig()),
		retryCfg:   retry.FeedAPIConfig(),
		logger:     slog.Default(),
	}
	c.auth = newAuthenticator(httpClient, creds)

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Authenticate obtains the initial access token. Callers should invoke
// it once before polling so credential problems surface at startup.
func (c *Client) Authenticate(ctx context.Context) error {
	err := c.auth.Renew(ctx)
	if c.onRenewal != nil {
		c.onRenewal(err == nil)
	}
	return err
}

// getJSON fetches url and decodes the response body into v.
func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	attempt := 0
	return retry.WithBackoff(ctx, c.retryCfg, func() error {
		attempt++
		_, err := c.breaker.Execute(func() (any, error) {
			return nil, c.doOnce(ctx, url, v)
		})
		if errors.Is(err, entity.ErrAuthExpired) {
			c.logger.WarnContext(ctx, "Access token expired, renewing",
				slog.String("url", url),
				slog.Int("attempt", attempt))
			renewErr := c.auth.Renew(ctx)
			if c.onRenewal != nil {
				c.onRenewal(renewErr == nil)
			}
			if renewErr != nil {
				return fmt.Errorf("renew access token: %w", renewErr)
			}
		}
		return err
	})
}

func (c *Client) doOnce(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("referer", "https://weverse.io")
	req.Header.Set("authorization", "Bearer "+c.auth.Token())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("read response from %s: %w", url, err)
	}

	if err := classifyStatus(resp.StatusCode, url, body); err != nil {
		return err
	}

	if v == nil {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response from %s: %w", url, err)
	}
	return nil
}

// classifyStatus maps an HTTP status onto the error taxonomy the rest
// of the watcher keys its behaviour on.
func classifyStatus(status int, url string, body []byte) error {
	switch status {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		return fmt.Errorf("request to %s: %w", url, entity.ErrAuthExpired)
	case http.StatusForbidden:
		if msg := apiMessage(body); msg != "" {
			return fmt.Errorf("request to %s (%s): %w", url, msg, entity.ErrForbidden)
		}
		return fmt.Errorf("request to %s: %w", url, entity.ErrForbidden)
	case http.StatusNotFound:
		return fmt.Errorf("request to %s: %w", url, entity.ErrNotFound)
	case http.StatusInternalServerError:
		return fmt.Errorf("request to %s: %w", url, entity.ErrServerError)
	default:
		return &retry.HTTPError{StatusCode: status, Message: apiMessage(body)}
	}
}
