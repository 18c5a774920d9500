package invoices

import (
	"strings"

	"clinic-history/internal/domain/timeline"
)

// statusTable mapea el vocabulario de facturación a los estados canónicos.
var statusTable = map[string]timeline.EventStatus{
	"Paid":      timeline.EventStatusCompleted,
	"Pending":   timeline.EventStatusPending,
	"Cancelled": timeline.EventStatusCancelled,
}

const fallbackDescription = "Invoice issued"

func normalize(raws []rawInvoice) timeline.FetchResult {
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

func normalizeOne(r rawInvoice) (timeline.Event, bool) {
	if strings.TrimSpace(r.ID) == "" {
		return timeline.Event{}, false
	}

	date, clock, ok := timeline.ResolveWhen(r.InvoiceDate, r.CreatedAt)
	if !ok {
		return timeline.Event{}, false
	}

	status, found := statusTable[r.Status]
	if !found {
		status = timeline.EventStatusPending
	}

	desc := strings.TrimSpace(r.LineItem)
	if desc == "" {
		desc = fallbackDescription
	}

	ref := strings.TrimSpace(r.InvoiceNumber)
	if ref == "" {
		ref = "INV-" + r.ID
	}

	total := r.Total

	return timeline.Event{
		ID:          timeline.EventID(timeline.EventTypeInvoice, r.ID),
		Type:        timeline.EventTypeInvoice,
		Date:        date,
		Time:        clock,
		Title:       "Invoice",
		Description: desc,
		Status:      status,
		Amount:      &total,
		CreatedBy:   strings.TrimSpace(r.CreatedBy),
		ReferenceID: ref,
		Actions:     []string{timeline.ActionView, timeline.ActionDownload, timeline.ActionPrint},
	}, true
}
