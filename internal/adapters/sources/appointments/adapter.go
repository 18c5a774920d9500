// Package appointments adapta el servicio de citas médicas como fuente del
// timeline. Endpoint acotado al paciente; no necesita fallback.
package appointments

import (
	"context"
	"fmt"

	"clinic-history/internal/domain/timeline"
	"clinic-history/internal/platform/httpclient"
	"clinic-history/internal/ports/auth"
)

// rawAppointment es el shape crudo que devuelve el servicio de citas.
// Payload duck-typed: se valida acá, en el borde del adapter.
type rawAppointment struct {
	ID              string `json:"id"`
	PatientID       string `json:"patient_id"`
	AppointmentDate string `json:"appointment_date"` // "2006-01-02"
	AppointmentTime string `json:"appointment_time"` // "15:04", puede faltar
	CreatedAt       string `json:"created_at"`       // RFC3339
	Status          string `json:"status"`
	DoctorName      string `json:"doctor_name"`
	Reason          string `json:"reason"`
}

type listResponse struct {
	Appointments []rawAppointment `json:"appointments"`
}

type Adapter struct {
	client *httpclient.Client
	tokens auth.TokenSource
}

func New(client *httpclient.Client, tokens auth.TokenSource) *Adapter {
	return &Adapter{client: client, tokens: tokens}
}

func (a *Adapter) Name() timeline.SourceName { return timeline.SourceAppointments }

func (a *Adapter) Fetch(ctx context.Context, patientID string) (timeline.FetchResult, error) {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		return timeline.FetchResult{}, fmt.Errorf("appointments: token: %w", err)
	}

	var resp listResponse
	path := fmt.Sprintf("/v1/patients/%s/appointments", patientID)
	if err := a.client.GetJSON(ctx, path, nil, token, &resp); err != nil {
		return timeline.FetchResult{}, fmt.Errorf("appointments: fetch: %w", err)
	}

	return normalize(resp.Appointments), nil
}
