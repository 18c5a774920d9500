package diagnostics

import (
	"testing"

	"clinic-history/internal/domain/timeline"
)

func testAdapter(completion []string) *Adapter {
	return New(nil, nil, 0, completion)
}

// Un registro completado produce exactamente 2 eventos (plan + completed);
// uno no completado, exactamente 1 (plan).
func TestNormalize_CompletedExpandsToTwoEvents(t *testing.T) {
	a := testAdapter(nil)

	res := a.normalize([]rawDiagnostic{{
		ID:            "d1",
		PatientID:     "p1",
		TestName:      "Blood panel",
		ScheduledDate: "2025-06-10",
		CompletedAt:   "2025-06-12T15:20:00Z",
		Status:        "Completed",
	}})

	if len(res.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(res.Events))
	}

	plan, done := res.Events[0], res.Events[1]
	if plan.ID != "diagnostic-d1-plan" || done.ID != "diagnostic-d1-completed" {
		t.Fatalf("unexpected ids: %s, %s", plan.ID, done.ID)
	}
	if plan.Status != timeline.EventStatusPlanned {
		t.Fatalf("plan status = %s", plan.Status)
	}
	if done.Status != timeline.EventStatusCompleted {
		t.Fatalf("completed status = %s", done.Status)
	}
	if done.Date.Format(timeline.DateKeyLayout) != "2025-06-12" || done.Time != "15:20" {
		t.Fatalf("completed event should use completed_at: %s %s",
			done.Date.Format(timeline.DateKeyLayout), done.Time)
	}
	if plan.Date.Format(timeline.DateKeyLayout) != "2025-06-10" {
		t.Fatalf("plan event should use scheduled date: %s", plan.Date.Format(timeline.DateKeyLayout))
	}
}

func TestNormalize_PendingYieldsPlanOnly(t *testing.T) {
	a := testAdapter(nil)

	res := a.normalize([]rawDiagnostic{{
		ID:            "d2",
		ScheduledDate: "2025-07-01",
		Status:        "Scheduled",
	}})

	if len(res.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(res.Events))
	}
	if res.Events[0].ID != "diagnostic-d2-plan" {
		t.Fatalf("unexpected id %s", res.Events[0].ID)
	}
}

// El sentinel de completitud es configurable, no un literal fijo.
func TestNormalize_ConfigurableCompletionSentinel(t *testing.T) {
	a := testAdapter([]string{"RESULT_READY", "Completed"})

	res := a.normalize([]rawDiagnostic{{
		ID:            "d3",
		ScheduledDate: "2025-07-02",
		Status:        "RESULT_READY",
	}})

	if len(res.Events) != 2 {
		t.Fatalf("expected 2 events with custom sentinel, got %d", len(res.Events))
	}
}

func TestNormalize_DropsRecordWithoutDate(t *testing.T) {
	a := testAdapter(nil)

	res := a.normalize([]rawDiagnostic{
		{ID: "good", ScheduledDate: "2025-07-03", Status: "Scheduled"},
		{ID: "bad", Status: "Scheduled"}, // sin ninguna fecha
	})

	if len(res.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(res.Events))
	}
	if res.Dropped != 1 {
		t.Fatalf("expected 1 dropped record, got %d", res.Dropped)
	}
}

func TestNormalize_FallbackDescription(t *testing.T) {
	a := testAdapter(nil)

	res := a.normalize([]rawDiagnostic{{
		ID:            "d4",
		ScheduledDate: "2025-07-04",
		Status:        "Scheduled",
	}})

	if res.Events[0].Description != fallbackDescription {
		t.Fatalf("expected fallback description, got %q", res.Events[0].Description)
	}
}
