// Package api implements the outbound HTTP gateway the stores talk through.
// It owns bearer-token attachment, multipart encoding, the error envelope,
// and the global auth-expired signal; it knows nothing about views.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/hohoindia/event-client/internal/core/domain"
	"github.com/hohoindia/event-client/internal/core/ports"
	"github.com/hohoindia/event-client/internal/metrics"
)

const defaultTimeout = 10 * time.Second

// AuthExpiredHandler is invoked at most once per session token when the
// backend answers 401. The network layer emits the signal; a top-level
// controller owns the teardown and any navigation.
type AuthExpiredHandler func()

// Client is the API gateway. It implements ports.AuthGateway,
// ports.EventGateway, and ports.RegistrationGateway.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  ports.TokenStore
	log     zerolog.Logger

	onAuthExpired AuthExpiredHandler

	// expiredFor remembers which token already triggered the auth-expired
	// signal, so two concurrent 401s tear the session down exactly once.
	mu         sync.Mutex
	expiredFor string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (tests, proxies).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithAuthExpiredHandler registers the global 401 subscriber.
func WithAuthExpiredHandler(h AuthExpiredHandler) Option {
	return func(c *Client) { c.onAuthExpired = h }
}

// NewClient builds a gateway rooted at baseURL (including the /api prefix).
func NewClient(baseURL string, tokens ports.TokenStore, log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		tokens:  tokens,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// request is a single outbound call. Body and contentType are empty for
// GET/DELETE; multipart callers pass the writer-derived boundary type, JSON
// callers pass application/json. The gateway never sets a JSON content type
// on a multipart payload.
type request struct {
	method      string
	path        string
	endpoint    string // logical name for metrics
	body        io.Reader
	contentType string
	noAuth      bool
}

// doJSON executes req and decodes a 2xx body into out (out may be nil).
func (c *Client) doJSON(ctx context.Context, req request, out any) error {
	resp, err := c.send(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", req.endpoint, err)
	}
	return nil
}

// doStream executes req and hands the raw 2xx body to the caller, who must
// close it. Used for the spreadsheet export.
func (c *Client) doStream(ctx context.Context, req request) (io.ReadCloser, error) {
	resp, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (c *Client) send(ctx context.Context, req request) (*http.Response, error) {
	timer := prometheus.NewTimer(metrics.RequestDuration.WithLabelValues(req.endpoint))
	defer timer.ObserveDuration()

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, req.body)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(req.endpoint, "error").Inc()
		return nil, fmt.Errorf("%s: build request: %w", req.endpoint, err)
	}

	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}

	token := ""
	if !req.noAuth {
		token, err = c.tokens.Load()
		if err != nil {
			c.log.Warn().Err(err).Msg("token load failed, sending unauthenticated")
			token = ""
		}
		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(req.endpoint, "error").Inc()
		return nil, &domain.APIError{Message: "request failed: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		metrics.RequestsTotal.WithLabelValues(req.endpoint, "error").Inc()

		msg := decodeErrorMessage(resp.Body)
		if msg == "" {
			msg = genericMessage(req.endpoint)
		}
		if resp.StatusCode == http.StatusUnauthorized && !req.noAuth {
			c.notifyAuthExpired(token)
		}
		c.log.Debug().
			Str("endpoint", req.endpoint).
			Int("status", resp.StatusCode).
			Msg("request rejected")
		return nil, &domain.APIError{Status: resp.StatusCode, Message: msg}
	}

	metrics.RequestsTotal.WithLabelValues(req.endpoint, "ok").Inc()
	return resp, nil
}

// notifyAuthExpired fires the auth-expired signal once per token value.
// A later login stores a fresh token, which re-arms the guard.
func (c *Client) notifyAuthExpired(token string) {
	c.mu.Lock()
	already := c.expiredFor == token
	if !already {
		c.expiredFor = token
	}
	c.mu.Unlock()

	if already {
		return
	}
	metrics.AuthExpirationsTotal.Inc()
	c.log.Info().Msg("session token rejected by backend")
	if c.onAuthExpired != nil {
		c.onAuthExpired()
	}
}

// errorEnvelope mirrors the backend's error body. Message wins over Error
// when both are present.
type errorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func decodeErrorMessage(body io.Reader) string {
	var env errorEnvelope
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		return ""
	}
	if env.Message != "" {
		return env.Message
	}
	return env.Error
}

func genericMessage(endpoint string) string {
	switch {
	case strings.HasPrefix(endpoint, "auth."):
		return "authentication failed"
	case strings.HasPrefix(endpoint, "registrations."):
		return "registration request failed"
	default:
		return "request failed"
	}
}

func jsonBody(v any) (io.Reader, error) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	return buf, nil
}
