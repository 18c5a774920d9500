package telemetry

import "context"

// DegradedReport describe una agregación que terminó con fuentes degradadas
// (cero eventos por falla de fetch primario y fallback).
type DegradedReport struct {
	CorrelationID string
	PatientID     string
	Sources       []string
}

// Reporter envía reportes de degradación a un colector de observabilidad
// externo. El caller lo invoca fire-and-forget: un Reporter nunca debe
// bloquear ni hacer fallar la respuesta al usuario.
type Reporter interface {
	ReportDegraded(ctx context.Context, rep DegradedReport) error
}

// Nop descarta los reportes. Default cuando no hay colector configurado.
type Nop struct{}

func (Nop) ReportDegraded(ctx context.Context, rep DegradedReport) error { return nil }
