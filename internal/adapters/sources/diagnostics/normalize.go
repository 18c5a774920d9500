package diagnostics

import (
	"strings"

	"clinic-history/internal/domain/timeline"
)

const fallbackDescription = "Diagnostic test"

// normalize expande cada registro diagnóstico en 1 o 2 eventos:
// siempre el evento "plan"; y además el evento "completed" si y solo si el
// estado del registro es un sentinel de completitud del dominio.
func (a *Adapter) normalize(raws []rawDiagnostic) timeline.FetchResult {
	out := timeline.FetchResult{Events: make([]timeline.Event, 0, len(raws))}
	for _, r := range raws {
		events, ok := a.normalizeOne(r)
		if !ok {
			out.Dropped++
			continue
		}
		out.Events = append(out.Events, events...)
	}
	return out
}

func (a *Adapter) normalizeOne(r rawDiagnostic) ([]timeline.Event, bool) {
	if strings.TrimSpace(r.ID) == "" {
		return nil, false
	}

	planDate, planClock, ok := timeline.ResolveWhen(r.ScheduledDate, r.CreatedAt)
	if !ok {
		return nil, false
	}

	desc := strings.TrimSpace(r.TestName)
	if desc == "" {
		desc = fallbackDescription
	}

	plan := timeline.Event{
		ID:          timeline.SubEventID(timeline.EventTypeDiagnostic, r.ID, "plan"),
		Type:        timeline.EventTypeDiagnostic,
		Date:        planDate,
		Time:        planClock,
		Title:       "Diagnostic Planned",
		Description: desc,
		Status:      timeline.EventStatusPlanned,
		CreatedBy:   strings.TrimSpace(r.RequestedBy),
		ReferenceID: "DX-" + r.ID,
		Actions:     []string{timeline.ActionView},
	}

	if _, completed := a.completion[r.Status]; !completed {
		return []timeline.Event{plan}, true
	}

	// Evento de completitud: fecha de completed_at si existe, si no la
	// fecha planificada.
	doneDate, doneClock := planDate, planClock
	if d, c, ok := timeline.ResolveWhen("", r.CompletedAt); ok {
		doneDate, doneClock = d, c
	}

	done := timeline.Event{
		ID:          timeline.SubEventID(timeline.EventTypeDiagnostic, r.ID, "completed"),
		Type:        timeline.EventTypeDiagnostic,
		Date:        doneDate,
		Time:        doneClock,
		Title:       "Diagnostic Completed",
		Description: desc,
		Status:      timeline.EventStatusCompleted,
		CreatedBy:   strings.TrimSpace(r.RequestedBy),
		ReferenceID: "DX-" + r.ID,
		Actions:     []string{timeline.ActionView, timeline.ActionDownload},
	}

	return []timeline.Event{plan, done}, true
}
