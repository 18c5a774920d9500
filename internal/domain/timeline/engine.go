package timeline

import (
	"sort"
	"strings"
)

// Criteria son los predicados de filtro y el orden pedido por el caller.
// Zero value = sin filtros, orden por fecha descendente.
type Criteria struct {
	Type   EventType   // "" = todos los tipos
	Status EventStatus // "" = todos los estados
	Search string      // substring case-insensitive sobre title/description/reference_id
	SortBy SortField   // default: date
	Order  SortOrder   // default: desc
}

// FilterAndSort aplica los filtros (conjuntivos) y el orden sobre la
// colección. Es pura y determinística: no muta la entrada y siempre devuelve
// un slice nuevo. El orden es estable: empates preservan el orden de entrada.
func FilterAndSort(events []Event, c Criteria) []Event {
	out := make([]Event, 0, len(events))

	q := strings.ToLower(strings.TrimSpace(c.Search))
	for _, e := range events {
		if c.Type != "" && e.Type != c.Type {
			continue
		}
		if c.Status != "" && e.Status != c.Status {
			continue
		}
		if q != "" && !matchesSearch(e, q) {
			continue
		}
		out = append(out, e)
	}

	sortBy := c.SortBy
	if sortBy == "" {
		sortBy = SortByDate
	}
	order := c.Order
	if order == "" {
		order = SortDesc
	}

	less := lessFunc(sortBy)
	sort.SliceStable(out, func(i, j int) bool {
		if order == SortAsc {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})

	return out
}

func matchesSearch(e Event, q string) bool {
	return strings.Contains(strings.ToLower(e.Title), q) ||
		strings.Contains(strings.ToLower(e.Description), q) ||
		strings.Contains(strings.ToLower(e.ReferenceID), q)
}

func lessFunc(field SortField) func(a, b Event) bool {
	switch field {
	case SortByType:
		return func(a, b Event) bool { return a.Type < b.Type }
	case SortByStatus:
		return func(a, b Event) bool { return a.Status < b.Status }
	case SortByAmount:
		return func(a, b Event) bool { return a.AmountValue() < b.AmountValue() }
	default:
		// date: timestamp compuesto (date, time)
		return func(a, b Event) bool { return a.SortTime().Before(b.SortTime()) }
	}
}

// SortDefault ordena descendente por (date, time), el baseline que expone el
// agregador antes de cualquier criterio del usuario.
func SortDefault(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[j].SortTime().Before(events[i].SortTime())
	})
}
