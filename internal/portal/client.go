package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"vendorportal/internal/config"
	"vendorportal/internal/logger"
	"vendorportal/internal/model"
)

// StepDocuments is the complete-registration step that carries the vendor's document list.
const StepDocuments = "documents"

// API is the subset of the upstream procurement API this service consumes.
type API interface {
	// CompanyDetails returns the vendor profile including its full document list.
	CompanyDetails(ctx context.Context, vendorID string) (*model.CompanyDetails, error)
	// DocumentPresets returns the document catalog.
	DocumentPresets(ctx context.Context) ([]model.DocumentPreset, error)
	// CompleteRegistration writes one step-keyed payload. The documents step replaces the whole list.
	CompleteRegistration(ctx context.Context, vendorID string, step string, data any) error
}

// Client is a JSON REST client for the upstream API. It forwards the caller's bearer token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

var _ API = (*Client)(nil)

// NewClient builds a client with an OpenTelemetry-instrumented transport.
func NewClient(cfg config.PortalAPIConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("portal api base url is required")
	}
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	hc := &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	return NewClientWithHTTP(cfg.BaseURL, hc), nil
}

// NewClientWithHTTP builds a client around an existing http.Client.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
		log:        logger.Get().With().Str("component", "portal_client").Logger(),
	}
}

type envelope[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type registrationStep struct {
	Step string `json:"step"`
	Data any    `json:"data"`
}

// CompanyDetails fetches GET /vendors/{id}/company-details.
func (c *Client) CompanyDetails(ctx context.Context, vendorID string) (*model.CompanyDetails, error) {
	path := "/vendors/" + url.PathEscape(vendorID) + "/company-details"
	details, err := do[model.CompanyDetails](ctx, c, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if details.Documents == nil {
		details.Documents = []model.Document{}
	}
	return &details, nil
}

// DocumentPresets fetches GET /document-presets.
func (c *Client) DocumentPresets(ctx context.Context) ([]model.DocumentPreset, error) {
	presets, err := do[[]model.DocumentPreset](ctx, c, http.MethodGet, "/document-presets", nil)
	if err != nil {
		return nil, err
	}
	if presets == nil {
		presets = []model.DocumentPreset{}
	}
	return presets, nil
}

// CompleteRegistration posts POST /vendors/{id}/complete-registration.
func (c *Client) CompleteRegistration(ctx context.Context, vendorID string, step string, data any) error {
	path := "/vendors/" + url.PathEscape(vendorID) + "/complete-registration"
	_, err := do[json.RawMessage](ctx, c, http.MethodPost, path, registrationStep{Step: step, Data: data})
	return err
}

func do[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var zero T

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return zero, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return zero, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Msg("portal api call")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return zero, newAPIError(resp.StatusCode, raw)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return zero, nil
	}
	var env envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, fmt.Errorf("failed to decode response: %w", err)
	}
	return env.Data, nil
}
