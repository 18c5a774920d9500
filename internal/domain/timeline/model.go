package timeline

import (
	"fmt"
	"time"
)

// DateKeyLayout es el formato de la clave de agrupación por día calendario.
const DateKeyLayout = "2006-01-02"

// Event es el registro normalizado, independiente de la fuente, que compone
// el historial médico unificado de un paciente. Se construye fresco en cada
// agregación y nunca se persiste.
type Event struct {
	ID   string    `json:"id"`
	Type EventType `json:"type"`

	// Date es la fecha de negocio del registro (medianoche UTC).
	// Time es la hora "HH:MM"; solo sirve para orden dentro del mismo día
	// y display, nunca para comparar entre días. Puede venir vacía si la
	// fuente no tiene precisión de hora.
	Date time.Time `json:"date"`
	Time string    `json:"time,omitempty"`

	Title       string      `json:"title"`
	Description string      `json:"description"`
	Status      EventStatus `json:"status"`

	Amount      *float64 `json:"amount,omitempty"`
	Method      string   `json:"method,omitempty"`
	CreatedBy   string   `json:"created_by,omitempty"`
	ReferenceID string   `json:"reference_id,omitempty"`

	Actions []string `json:"actions,omitempty"`
}

// EventID construye el id determinístico {source}-{recordID}. Ids estables
// garantizan re-agregación idempotente.
func EventID(t EventType, recordID string) string {
	return fmt.Sprintf("%s-%s", t, recordID)
}

// SubEventID agrega el sufijo de un sub-evento derivado (ej: -plan, -completed).
func SubEventID(t EventType, recordID, suffix string) string {
	return fmt.Sprintf("%s-%s-%s", t, recordID, suffix)
}

// DateKey devuelve la clave de día calendario del evento.
func (e Event) DateKey() string {
	return e.Date.Format(DateKeyLayout)
}

// SortTime compone el timestamp (date, time) usado para comparación
// cronológica entre eventos. Una hora no parseable cuenta como 00:00.
func (e Event) SortTime() time.Time {
	h, m, ok := parseClock(e.Time)
	if !ok {
		return e.Date
	}
	return time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(), h, m, 0, 0, time.UTC)
}

// AmountValue devuelve el monto, o 0 si el evento no tiene (para orden numérico).
func (e Event) AmountValue() float64 {
	if e.Amount == nil {
		return 0
	}
	return *e.Amount
}

var clockLayouts = []string{"15:04", "15:04:05"}

func parseClock(s string) (hour, min int, ok bool) {
	if s == "" {
		return 0, 0, false
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour(), t.Minute(), true
		}
	}
	return 0, 0, false
}
