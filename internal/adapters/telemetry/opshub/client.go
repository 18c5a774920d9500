// Package opshub es el cliente del colector de observabilidad de la clínica.
// Recibe los reportes de fuentes degradadas de la agregación del timeline.
// El agregador lo invoca fire-and-forget: nunca bloquea la respuesta.
package opshub

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"clinic-history/internal/ports/telemetry"
)

var (
	ErrNotConfigured = errors.New("opshub client not configured")
	ErrUnauthorized  = errors.New("opshub unauthorized")
	ErrUpstream      = errors.New("opshub upstream error")
)

type Config struct {
	BaseURL string
	APIKey  string

	// Opcional: header donde va la API key. Vacío => "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

type Client struct {
	baseURL      string
	apiKey       string
	apiKeyHeader string
	httpClient   *http.Client
}

func NewClient(cfg Config) *Client {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		baseURL:      strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.baseURL != "" && c.apiKey != ""
}

// ReportDegraded implementa telemetry.Reporter.
func (c *Client) ReportDegraded(ctx context.Context, rep telemetry.DegradedReport) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}

	payload := map[string]any{
		"correlation_id": rep.CorrelationID,
		"patient_id":     rep.PatientID,
		"sources":        rep.Sources,
		"reported_at":    time.Now().UTC().Format(time.RFC3339),
	}
	b, _ := json.Marshal(payload)

	const ingestPath = "/v1/ingest/degraded-sources"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ingestPath, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(c.apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	default:
		return fmt.Errorf("%w: status=%d", ErrUpstream, resp.StatusCode)
	}
}
