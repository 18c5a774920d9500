package appointments

import (
	"strings"

	"clinic-history/internal/domain/timeline"
)

// statusTable mapea el vocabulario de estados del servicio de citas a los
// estados canónicos. Lookup exacto; fuente binaria: lo no mapeado queda pending.
var statusTable = map[string]timeline.EventStatus{
	"check_in":  timeline.EventStatusCompleted,
	"cancelled": timeline.EventStatusCancelled,
}

const fallbackDescription = "Medical appointment"

// normalize mapea registros crudos a eventos. Un registro sin fecha se
// descarta y se cuenta como defecto de normalización.
func normalize(raws []rawAppointment) timeline.FetchResult {
	out := timeline.FetchResult{Events: make([]timeline.Event, 0, len(raws))}
	for _, r := range raws {
		e, ok := normalizeOne(r)
		if !ok {
			out.Dropped++
			continue
		}
		out.Events = append(out.Events, e)
	}
	return out
}

func normalizeOne(r rawAppointment) (timeline.Event, bool) {
	if strings.TrimSpace(r.ID) == "" {
		return timeline.Event{}, false
	}

	date, clock, ok := timeline.ResolveWhen(r.AppointmentDate, r.CreatedAt)
	if !ok {
		return timeline.Event{}, false
	}
	// La cita tiene campo de hora propio; si viene, gana sobre created_at.
	if t := strings.TrimSpace(r.AppointmentTime); t != "" {
		clock = t
	}

	status, found := statusTable[r.Status]
	if !found {
		status = timeline.EventStatusPending
	}

	desc := strings.TrimSpace(r.Reason)
	if desc == "" {
		desc = fallbackDescription
	}

	return timeline.Event{
		ID:          timeline.EventID(timeline.EventTypeAppointment, r.ID),
		Type:        timeline.EventTypeAppointment,
		Date:        date,
		Time:        clock,
		Title:       "Appointment",
		Description: desc,
		Status:      status,
		CreatedBy:   strings.TrimSpace(r.DoctorName),
		ReferenceID: "APT-" + r.ID,
		Actions:     []string{timeline.ActionView},
	}, true
}
