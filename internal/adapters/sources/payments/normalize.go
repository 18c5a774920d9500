package payments

import (
	"strings"

	"clinic-history/internal/domain/timeline"
)

// statusTable: fuente binaria, lo no mapeado queda pending.
var statusTable = map[string]timeline.EventStatus{
	"Completed": timeline.EventStatusCompleted,
	"Pending":   timeline.EventStatusPending,
}

const fallbackDescription = "Payment received"

func normalize(raws []rawPayment) timeline.FetchResult {
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

func normalizeOne(r rawPayment) (timeline.Event, bool) {
	if strings.TrimSpace(r.ID) == "" {
		return timeline.Event{}, false
	}

	date, clock, ok := timeline.ResolveWhen(r.PaymentDate, r.CreatedAt)
	if !ok {
		return timeline.Event{}, false
	}

	status, found := statusTable[r.Status]
	if !found {
		status = timeline.EventStatusPending
	}

	desc := strings.TrimSpace(r.Concept)
	if desc == "" {
		desc = fallbackDescription
	}

	ref := strings.TrimSpace(r.ReceiptNumber)
	if ref == "" {
		ref = "PAY-" + r.ID
	}

	amount := r.Amount

	return timeline.Event{
		ID:          timeline.EventID(timeline.EventTypePayment, r.ID),
		Type:        timeline.EventTypePayment,
		Date:        date,
		Time:        clock,
		Title:       "Payment",
		Description: desc,
		Status:      status,
		Amount:      &amount,
		Method:      strings.TrimSpace(r.Method),
		CreatedBy:   strings.TrimSpace(r.CreatedBy),
		ReferenceID: ref,
		Actions:     []string{timeline.ActionView, timeline.ActionDownload, timeline.ActionPrint},
	}, true
}
