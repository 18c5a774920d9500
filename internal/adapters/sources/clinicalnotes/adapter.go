// Package clinicalnotes adapta el servicio de notas clínicas como fuente del
// timeline. El upstream pagina; acá se pide una sola página (el paginado
// crudo por fuente queda fuera del alcance del motor).
package clinicalnotes

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"clinic-history/internal/domain/timeline"
	"clinic-history/internal/platform/httpclient"
	"clinic-history/internal/ports/auth"
)

const DefaultPageSize = 100

// rawNote es el shape crudo que devuelve el servicio de notas clínicas.
type rawNote struct {
	ID        string `json:"id"`
	PatientID string `json:"patient_id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"` // RFC3339; fecha y hora del evento
	Author    string `json:"author"`
}

type listResponse struct {
	Notes []rawNote `json:"notes"`
	Total int       `json:"total"`
	Page  int       `json:"page"`
}

type Adapter struct {
	client   *httpclient.Client
	tokens   auth.TokenSource
	pageSize int
}

func New(client *httpclient.Client, tokens auth.TokenSource, pageSize int) *Adapter {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Adapter{client: client, tokens: tokens, pageSize: pageSize}
}

func (a *Adapter) Name() timeline.SourceName { return timeline.SourceClinicalNotes }

func (a *Adapter) Fetch(ctx context.Context, patientID string) (timeline.FetchResult, error) {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		return timeline.FetchResult{}, fmt.Errorf("clinicalnotes: token: %w", err)
	}

	var resp listResponse
	path := fmt.Sprintf("/v1/patients/%s/clinical-notes", patientID)
	q := url.Values{
		"page":      {"1"},
		"page_size": {strconv.Itoa(a.pageSize)},
	}
	if err := a.client.GetJSON(ctx, path, q, token, &resp); err != nil {
		return timeline.FetchResult{}, fmt.Errorf("clinicalnotes: fetch: %w", err)
	}

	return normalize(resp.Notes), nil
}
