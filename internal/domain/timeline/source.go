package timeline

import "context"

// Source es el contrato de un adapter de fuente. Fetch trae los registros
// crudos del paciente y los devuelve ya normalizados a Event. Toda falla se
// devuelve como error; un adapter nunca deja escapar un panic.
type Source interface {
	Name() SourceName
	Fetch(ctx context.Context, patientID string) (FetchResult, error)
}

// Fallbacker lo implementan las fuentes cuyo endpoint acotado al paciente no
// es confiable (payments, invoices): ante falla del fetch primario se intenta
// una sola vez un listado masivo acotado, filtrado client-side por paciente.
type Fallbacker interface {
	FetchFallback(ctx context.Context, patientID string) (FetchResult, error)
}

// FetchResult es lo que aporta una fuente a la agregación.
type FetchResult struct {
	Events []Event
	// Dropped cuenta registros crudos descartados por defecto de
	// normalización (ej: sin fecha). Se reporta, no se falla.
	Dropped int
}
