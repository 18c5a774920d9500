package timeline

import "testing"

// La unión de todos los buckets equivale exactamente a la entrada: ningún
// evento duplicado ni perdido.
func TestGroupByDate_Completeness(t *testing.T) {
	events := []Event{
		mkEvent("a", EventTypeAppointment, EventStatusPending, "2025-06-20", "09:00"),
		mkEvent("b", EventTypePayment, EventStatusCompleted, "2025-06-20", "10:00"),
		mkEvent("c", EventTypeInvoice, EventStatusPending, "2025-06-15", ""),
		mkEvent("d", EventTypeClinicalNote, EventStatusCompleted, "2025-06-20", "16:45"),
	}

	groups := GroupByDate(events)

	total := 0
	seen := map[string]int{}
	for _, g := range groups {
		for _, e := range g.Events {
			total++
			seen[e.ID]++
			if e.DateKey() != g.Date {
				t.Fatalf("event %s (date %s) landed in bucket %s", e.ID, e.DateKey(), g.Date)
			}
		}
	}
	if total != len(events) {
		t.Fatalf("expected %d events across buckets, got %d", len(events), total)
	}
	for _, e := range events {
		if seen[e.ID] != 1 {
			t.Fatalf("event %s appears %d times", e.ID, seen[e.ID])
		}
	}
}

func TestGroupByDate_PreservesEngineOrder(t *testing.T) {
	events := []Event{
		mkEvent("newest", EventTypeAppointment, EventStatusPending, "2025-06-20", "18:00"),
		mkEvent("late", EventTypePayment, EventStatusCompleted, "2025-06-20", "09:00"),
		mkEvent("older", EventTypeInvoice, EventStatusPending, "2025-06-15", ""),
	}

	groups := GroupByDate(events)

	if len(groups) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(groups))
	}
	if groups[0].Date != "2025-06-20" || groups[1].Date != "2025-06-15" {
		t.Fatalf("buckets out of order: %s, %s", groups[0].Date, groups[1].Date)
	}
	if groups[0].Events[0].ID != "newest" || groups[0].Events[1].ID != "late" {
		t.Fatalf("in-bucket order not preserved: %s, %s", groups[0].Events[0].ID, groups[0].Events[1].ID)
	}
}

func TestGroupByDate_Empty(t *testing.T) {
	groups := GroupByDate(nil)
	if len(groups) != 0 {
		t.Fatalf("expected no buckets, got %d", len(groups))
	}
}
