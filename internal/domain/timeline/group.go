package timeline

// DateGroup es el bucket de eventos de un día calendario.
type DateGroup struct {
	Date   string  `json:"date"` // clave "2006-01-02"
	Events []Event `json:"events"`
}

// GroupByDate agrupa por fecha calendario (campo date, no el timestamp
// compuesto). Los buckets salen en orden de primera aparición y dentro de
// cada bucket se preserva el orden de entrada, así el orden elegido por el
// engine se mantiene intacto. Cada evento cae en exactamente un bucket.
func GroupByDate(events []Event) []DateGroup {
	groups := make([]DateGroup, 0)
	index := make(map[string]int)

	for _, e := range events {
		key := e.DateKey()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DateGroup{Date: key})
		}
		groups[i].Events = append(groups[i].Events, e)
	}

	return groups
}
