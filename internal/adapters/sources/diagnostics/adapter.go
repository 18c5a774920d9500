// Package diagnostics adapta el servicio de citas diagnósticas como fuente
// del timeline. El upstream no filtra por paciente: el fetch primario ya es
// masivo y se filtra client-side, así que no hay fallback aparte.
package diagnostics

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

// DefaultCompletionStatuses es el sentinel de completitud del dominio.
// Configurable: no está claro si el upstream usa más de un literal.
var DefaultCompletionStatuses = []string{"Completed"}

// rawDiagnostic es el shape crudo que devuelve el servicio de diagnósticos.
type rawDiagnostic struct {
	ID            string `json:"id"`
	PatientID     string `json:"patient_id"`
	TestName      string `json:"test_name"`
	ScheduledDate string `json:"scheduled_date"` // "2006-01-02"
	CompletedAt   string `json:"completed_at"`   // RFC3339, puede faltar
	CreatedAt     string `json:"created_at"`     // RFC3339
	Status        string `json:"status"`
	RequestedBy   string `json:"requested_by"`
}

type listResponse struct {
	DiagnosticAppointments []rawDiagnostic `json:"diagnostic_appointments"`
}

type Adapter struct {
	client     *httpclient.Client
	tokens     auth.TokenSource
	bulkLimit  int
	completion map[string]struct{}
}

// New arma el adapter. completionStatuses vacío => DefaultCompletionStatuses.
func New(client *httpclient.Client, tokens auth.TokenSource, bulkLimit int, completionStatuses []string) *Adapter {
	if bulkLimit <= 0 {
		bulkLimit = DefaultBulkLimit
	}
	if len(completionStatuses) == 0 {
		completionStatuses = DefaultCompletionStatuses
	}
	completion := make(map[string]struct{}, len(completionStatuses))
	for _, s := range completionStatuses {
		completion[s] = struct{}{}
	}
	return &Adapter{
		client:     client,
		tokens:     tokens,
		bulkLimit:  bulkLimit,
		completion: completion,
	}
}

func (a *Adapter) Name() timeline.SourceName { return timeline.SourceDiagnostics }

func (a *Adapter) Fetch(ctx context.Context, patientID string) (timeline.FetchResult, error) {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		return timeline.FetchResult{}, fmt.Errorf("diagnostics: token: %w", err)
	}

	var resp listResponse
	q := url.Values{"limit": {strconv.Itoa(a.bulkLimit)}}
	if err := a.client.GetJSON(ctx, "/v1/diagnostic-appointments", q, token, &resp); err != nil {
		return timeline.FetchResult{}, fmt.Errorf("diagnostics: fetch: %w", err)
	}

	matched := make([]rawDiagnostic, 0)
	for _, r := range resp.DiagnosticAppointments {
		if r.PatientID == patientID {
			matched = append(matched, r)
		}
	}

	return a.normalize(matched), nil
}
