package clinicalnotes

import (
	"strings"

	"clinic-history/internal/domain/timeline"
)

const fallbackDescription = "Clinical note"

// normalize: una nota siempre es un hecho consumado => status completed.
// La fecha de negocio es la de creación de la nota.
func normalize(raws []rawNote) timeline.FetchResult {
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

func normalizeOne(r rawNote) (timeline.Event, bool) {
	if strings.TrimSpace(r.ID) == "" {
		return timeline.Event{}, false
	}

	date, clock, ok := timeline.ResolveWhen("", r.CreatedAt)
	if !ok {
		return timeline.Event{}, false
	}

	desc := strings.TrimSpace(r.Title)
	if desc == "" {
		desc = fallbackDescription
	}

	return timeline.Event{
		ID:          timeline.EventID(timeline.EventTypeClinicalNote, r.ID),
		Type:        timeline.EventTypeClinicalNote,
		Date:        date,
		Time:        clock,
		Title:       "Clinical Note",
		Description: desc,
		Status:      timeline.EventStatusCompleted,
		CreatedBy:   strings.TrimSpace(r.Author),
		Actions:     []string{timeline.ActionView},
	}, true
}
