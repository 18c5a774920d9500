package timeline

// EventType identifica de qué dominio de negocio proviene un evento.
type EventType string

const (
	EventTypeAppointment  EventType = "appointment"
	EventTypePayment      EventType = "payment"
	EventTypeInvoice      EventType = "invoice"
	EventTypeDiagnostic   EventType = "diagnostic"
	EventTypeClinicalNote EventType = "clinical_note"
)

// ValidEventType valida valores recibidos por query param.
func ValidEventType(t EventType) bool {
	switch t {
	case EventTypeAppointment, EventTypePayment, EventTypeInvoice,
		EventTypeDiagnostic, EventTypeClinicalNote:
		return true
	}
	return false
}

// EventStatus es el estado canónico de un evento. Cada fuente mapea su
// vocabulario propio a estos cuatro valores vía tabla (lookup exacto).
type EventStatus string

const (
	EventStatusCompleted EventStatus = "completed"
	EventStatusPending   EventStatus = "pending"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusPlanned   EventStatus = "planned"
)

// ValidEventStatus valida valores recibidos por query param.
func ValidEventStatus(s EventStatus) bool {
	switch s {
	case EventStatusCompleted, EventStatusPending, EventStatusCancelled, EventStatusPlanned:
		return true
	}
	return false
}

// SourceName identifica a cada proveedor upstream.
type SourceName string

const (
	SourceAppointments  SourceName = "appointments"
	SourcePayments      SourceName = "payments"
	SourceInvoices      SourceName = "invoices"
	SourceDiagnostics   SourceName = "diagnostics"
	SourceClinicalNotes SourceName = "clinical_notes"
)

// SortField son los campos de orden que soporta el engine.
type SortField string

const (
	SortByDate   SortField = "date"
	SortByType   SortField = "type"
	SortByStatus SortField = "status"
	SortByAmount SortField = "amount"
)

// SortOrder es la dirección de orden.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Nombres de acciones que la UI sabe resolver. El core solo garantiza
// presencia/ausencia, nunca la implementación.
const (
	ActionView     = "view"
	ActionDownload = "download"
	ActionPrint    = "print"
)
