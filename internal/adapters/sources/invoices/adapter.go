// Package invoices adapta el servicio de facturación como fuente del
// timeline. Igual que pagos: el endpoint acotado al paciente no es confiable
// y hay fallback masivo filtrado client-side.
package invoices

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"clinic-history/internal/domain/timeline"
	"clinic-history/internal/platform/httpclient"
	"clinic-history/internal/ports/auth"
)

const DefaultBulkLimit = 1000

// rawInvoice es el shape crudo que devuelve el servicio de facturación.
type rawInvoice struct {
	ID            string  `json:"id"`
	PatientID     string  `json:"patient_id"`
	InvoiceNumber string  `json:"invoice_number"`
	InvoiceDate   string  `json:"invoice_date"` // "2006-01-02"
	CreatedAt     string  `json:"created_at"`   // RFC3339
	Total         float64 `json:"total"`
	Status        string  `json:"status"`
	LineItem      string  `json:"line_item"`
	CreatedBy     string  `json:"created_by"`
}

type listResponse struct {
	Invoices []rawInvoice `json:"invoices"`
}

type Adapter struct {
	client    *httpclient.Client
	tokens    auth.TokenSource
	bulkLimit int
}

func New(client *httpclient.Client, tokens auth.TokenSource, bulkLimit int) *Adapter {
	if bulkLimit <= 0 {
		bulkLimit = DefaultBulkLimit
	}
	return &Adapter{client: client, tokens: tokens, bulkLimit: bulkLimit}
}

func (a *Adapter) Name() timeline.SourceName { return timeline.SourceInvoices }

func (a *Adapter) Fetch(ctx context.Context, patientID string) (timeline.FetchResult, error) {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		return timeline.FetchResult{}, fmt.Errorf("invoices: token: %w", err)
	}

	var resp listResponse
	q := url.Values{"patient_id": {patientID}}
	if err := a.client.GetJSON(ctx, "/v1/invoices", q, token, &resp); err != nil {
		return timeline.FetchResult{}, fmt.Errorf("invoices: scoped fetch: %w", err)
	}

	return normalize(resp.Invoices), nil
}

func (a *Adapter) FetchFallback(ctx context.Context, patientID string) (timeline.FetchResult, error) {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		return timeline.FetchResult{}, fmt.Errorf("invoices: token: %w", err)
	}

	var resp listResponse
	q := url.Values{"limit": {strconv.Itoa(a.bulkLimit)}}
	if err := a.client.GetJSON(ctx, "/v1/invoices", q, token, &resp); err != nil {
		return timeline.FetchResult{}, fmt.Errorf("invoices: bulk fetch: %w", err)
	}

	matched := make([]rawInvoice, 0)
	for _, r := range resp.Invoices {
		if r.PatientID == patientID {
			matched = append(matched, r)
		}
	}

	return normalize(matched), nil
}
