package weverse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"weverse-watcher/internal/resilience/circuitbreaker"
	"weverse-watcher/internal/resilience/retry"
)

const accAppSecret = "5419526f1c624b38b10787e5c10b2a7a"

// tokenURL is a variable so tests can point authentication at a local
// server.
var tokenURL = "https://accountapi.weverse.io/web/api/v2/auth/token/by-credentials"

// Credentials are the account email and password used to obtain API
// access tokens.
type Credentials struct {
	Email    string
	Password string
}

// LoginError reports a failed token request. It is terminal: retrying
// with the same credentials will not succeed.
type LoginError struct {
	StatusCode int
	Reason     string
}

func (e *LoginError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("login failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("login failed with status %d: %s", e.StatusCode, e.Reason)
}

// authenticator holds the current access token and renews it against
// the account API. Safe for concurrent use.
type authenticator struct {
	httpClient *http.Client
	creds      Credentials
	breaker    *circuitbreaker.CircuitBreaker

	mu    sync.RWMutex
	token string
}

func newAuthenticator(httpClient *http.Client, creds Credentials) *authenticator {
	return &authenticator{
		httpClient: httpClient,
		creds:      creds,
		breaker:    circuitbreaker.New(circuitbreaker.AuthAPIConfig()),
	}
}

// Token returns the most recently issued access token, or the empty
// string before the first renewal.
func (a *authenticator) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

// Renew exchanges the credentials for a fresh access token.
func (a *authenticator) Renew(ctx context.Context) error {
	payload, err := json.Marshal(map[string]string{
		"email":    a.creds.Email,
		"password": a.creds.Password,
	})
	if err != nil {
		return fmt.Errorf("marshal login payload: %w", err)
	}

	result, err := a.breaker.Execute(func() (any, error) {
		return a.requestToken(ctx, payload)
	})
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.token = result.(string)
	a.mu.Unlock()
	return nil
}

func (a *authenticator) requestToken(ctx context.Context, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("content-type", "application/json")
	req.Header.Set("x-acc-app-secret", accAppSecret)
	req.Header.Set("x-acc-app-version", "abc")
	req.Header.Set("x-acc-language", "en")
	req.Header.Set("x-acc-service-id", "weverse")
	req.Header.Set("x-acc-trace-id", "abc")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read login response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode >= 500 {
			// Transient account API outage, still worth retrying.
			return "", &retry.HTTPError{StatusCode: resp.StatusCode, Message: apiMessage(body)}
		}
		return "", &LoginError{StatusCode: resp.StatusCode, Reason: apiMessage(body)}
	}

	var token struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if token.AccessToken == "" {
		return "", &LoginError{StatusCode: resp.StatusCode, Reason: "response carried no access token"}
	}
	return token.AccessToken, nil
}

// apiMessage extracts the upstream "message" field from an error body,
// best effort.
func apiMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	return envelope.Message
}
