// Package payments adapta el servicio de pagos como fuente del timeline.
// El endpoint acotado al paciente no es confiable: ante falla se intenta una
// sola vez un listado masivo acotado, filtrado client-side por paciente.
package payments

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"clinic-history/internal/domain/timeline"
	"clinic-history/internal/platform/httpclient"
	"clinic-history/internal/ports/auth"
)

// DefaultBulkLimit acota el listado masivo del fallback.
const DefaultBulkLimit = 1000

// rawPayment es el shape crudo que devuelve el servicio de pagos.
type rawPayment struct {
	ID            string  `json:"id"`
	PatientID     string  `json:"patient_id"`
	PaymentDate   string  `json:"payment_date"` // "2006-01-02"
	CreatedAt     string  `json:"created_at"`   // RFC3339, preferido para la hora
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	Status        string  `json:"status"`
	ReceiptNumber string  `json:"receipt_number"`
	Concept       string  `json:"concept"`
	CreatedBy     string  `json:"created_by"`
}

type listResponse struct {
	Payments []rawPayment `json:"payments"`
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

func (a *Adapter) Name() timeline.SourceName { return timeline.SourcePayments }

func (a *Adapter) Fetch(ctx context.Context, patientID string) (timeline.FetchResult, error) {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		return timeline.FetchResult{}, fmt.Errorf("payments: token: %w", err)
	}

	var resp listResponse
	q := url.Values{"patient_id": {patientID}}
	if err := a.client.GetJSON(ctx, "/v1/payments", q, token, &resp); err != nil {
		return timeline.FetchResult{}, fmt.Errorf("payments: scoped fetch: %w", err)
	}

	return normalize(resp.Payments), nil
}

// FetchFallback trae el listado masivo acotado y filtra por paciente acá.
func (a *Adapter) FetchFallback(ctx context.Context, patientID string) (timeline.FetchResult, error) {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		return timeline.FetchResult{}, fmt.Errorf("payments: token: %w", err)
	}

	var resp listResponse
	q := url.Values{"limit": {strconv.Itoa(a.bulkLimit)}}
	if err := a.client.GetJSON(ctx, "/v1/payments", q, token, &resp); err != nil {
		return timeline.FetchResult{}, fmt.Errorf("payments: bulk fetch: %w", err)
	}

	matched := make([]rawPayment, 0)
	for _, r := range resp.Payments {
		if r.PatientID == patientID {
			matched = append(matched, r)
		}
	}

	return normalize(matched), nil
}
