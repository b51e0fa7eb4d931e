// Package api talks to the clinic backend over REST.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/odonto-flow/internal/common"
	"github.com/Veraticus/odonto-flow/internal/model"
	"github.com/Veraticus/odonto-flow/internal/service"
)

// DefaultTimeout bounds every request unless overridden.
const DefaultTimeout = 30 * time.Second

// TokenSource supplies the bearer token attached to requests.
type TokenSource interface {
	GetToken(ctx context.Context) (string, error)
}

var _ service.DashboardAPI = (*Client)(nil)

// Client implements service.DashboardAPI over HTTP.
type Client struct {
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
	baseURL    *url.URL
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTokenSource attaches credentials from ts to every request.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("%w: api base url is empty", common.ErrMissingConfig)
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: api base url %q", common.ErrInvalidConfig, baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListConsultas fetches every consultation.
func (c *Client) ListConsultas(ctx context.Context) ([]model.Consulta, error) {
	var consultas []model.Consulta
	if err := c.do(ctx, http.MethodGet, "/consultas", nil, &consultas); err != nil {
		return nil, err
	}
	return consultas, nil
}

// ListAvailableSlots fetches the open agenda slots.
func (c *Client) ListAvailableSlots(ctx context.Context) ([]model.Slot, error) {
	var slots []model.Slot
	if err := c.do(ctx, http.MethodGet, "/agenda/disponiveis", nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Senha: password}, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("%w: login response carried no token", common.ErrFetchFailed)
	}
	return resp.Token, nil
}

// GenerateAgenda asks the server to release slots for r from the active schedules.
func (c *Client) GenerateAgenda(ctx context.Context, r model.AgendaRange) error {
	if err := r.Validate(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/agenda/gerar", r, nil)
}

// DeleteAgenda withdraws the released, unbooked slots in r.
func (c *Client) DeleteAgenda(ctx context.Context, r model.AgendaRange) error {
	if err := r.Validate(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/agenda", r, nil)
}

type errorBody struct {
	Message string `json:"message"`
	Erro    string `json:"erro"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	if c.tokens != nil {
		token, tokenErr := c.tokens.GetToken(ctx)
		switch {
		case tokenErr == nil && token != "":
			req.Header.Set("Authorization", "Bearer "+token)
		case tokenErr != nil && !errors.Is(tokenErr, common.ErrNotFound):
			return fmt.Errorf("failed to read auth token: %w", tokenErr)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %s %s: %w", common.ErrFetchFailed, method, path, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("failed to close response body", "error", closeErr)
		}
	}()

	c.logger.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil {
			statusErr.Message = eb.Message
			if statusErr.Message == "" {
				statusErr.Message = eb.Erro
			}
		}
		return statusErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: failed to decode %s response: %w", common.ErrFetchFailed, path, err)
	}
	return nil
}
