package timeline

import (
	"strings"
	"time"
)

// Layouts aceptados para fechas de negocio de los upstreams. Los servicios
// más viejos mandan solo "2006-01-02"; los nuevos, RFC3339.
var businessDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ResolveWhen deriva el par (fecha, hora) de un registro crudo.
//   - businessDate: la fecha de negocio (fecha de cita, de pago, de factura).
//   - timestamp: campo de timestamp dedicado (RFC3339). Si existe, su hora
//     gana siempre: la fecha de negocio puede no tener precisión de hora.
//
// La fecha resultante sale de businessDate; si esta falta, del timestamp.
// Sin ninguna fecha utilizable => ok=false (el registro se descarta como
// defecto de normalización, nunca tumba la agregación).
func ResolveWhen(businessDate, timestamp string) (date time.Time, clock string, ok bool) {
	ts, tsOK := parseTimestamp(timestamp)
	bd, hadClock, bdOK := parseBusinessDate(businessDate)

	switch {
	case bdOK:
		date = midnightUTC(bd)
	case tsOK:
		date = midnightUTC(ts)
	default:
		return time.Time{}, "", false
	}

	switch {
	case tsOK:
		clock = ts.UTC().Format("15:04")
	case bdOK && hadClock:
		clock = bd.UTC().Format("15:04")
	}

	return date, clock, true
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func parseBusinessDate(s string) (t time.Time, hadClock, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, false
	}
	for _, layout := range businessDateLayouts {
		parsed, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return parsed, layout != "2006-01-02", true
	}
	return time.Time{}, false, false
}

func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
