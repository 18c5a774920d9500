package clinicalnotes

import (
	"testing"

	"clinic-history/internal/domain/timeline"
)

// Una nota es siempre un hecho consumado: status completed, sin importar
// qué traiga el registro crudo.
func TestNormalize_AlwaysCompleted(t *testing.T) {
	res := normalize([]rawNote{{
		ID:        "n1",
		Title:     "Post-op check",
		CreatedAt: "2025-06-10T14:30:00Z",
		Author:    "Dr. Paz",
	}})

	if len(res.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(res.Events))
	}

	e := res.Events[0]
	if e.Status != timeline.EventStatusCompleted {
		t.Fatalf("expected completed, got %s", e.Status)
	}
	if e.ID != "clinical_note-n1" {
		t.Fatalf("unexpected id %s", e.ID)
	}
	if e.Title != "Clinical Note" || e.Description != "Post-op check" {
		t.Fatalf("unexpected title/description: %q / %q", e.Title, e.Description)
	}
	if e.CreatedBy != "Dr. Paz" {
		t.Fatalf("expected author as created_by, got %q", e.CreatedBy)
	}
}

// La fecha de negocio de una nota es su created_at: fecha y hora salen del
// mismo timestamp.
func TestNormalize_DateAndClockFromCreatedAt(t *testing.T) {
	res := normalize([]rawNote{{
		ID:        "n2",
		CreatedAt: "2025-06-10T14:30:00Z",
	}})

	e := res.Events[0]
	if e.Date.Format(timeline.DateKeyLayout) != "2025-06-10" {
		t.Fatalf("unexpected date %s", e.Date.Format(timeline.DateKeyLayout))
	}
	if e.Time != "14:30" {
		t.Fatalf("unexpected clock %q", e.Time)
	}
}

func TestNormalize_FallbackDescription(t *testing.T) {
	res := normalize([]rawNote{{
		ID:        "n3",
		CreatedAt: "2025-06-10T09:00:00Z",
	}})

	if res.Events[0].Description != fallbackDescription {
		t.Fatalf("expected fallback description, got %q", res.Events[0].Description)
	}
}

func TestNormalize_DropsRecordWithoutCreatedAt(t *testing.T) {
	res := normalize([]rawNote{
		{ID: "ok", CreatedAt: "2025-06-10T09:00:00Z"},
		{ID: "broken"},
		{CreatedAt: "2025-06-11T09:00:00Z"}, // sin id tampoco sirve
	})

	if len(res.Events) != 1 || res.Dropped != 2 {
		t.Fatalf("expected 1 event / 2 dropped, got %d / %d", len(res.Events), res.Dropped)
	}
}
