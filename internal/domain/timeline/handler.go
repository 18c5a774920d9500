package timeline

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"clinic-history/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/patients/{patientID}/timeline", getTimelineHandler(svc))
}

// eventResponse representa un evento del historial devuelto por la API.
type eventResponse struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	Date        string      `json:"date"` // "2006-01-02"
	Time        string      `json:"time,omitempty"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Status      EventStatus `json:"status"`
	Amount      *float64    `json:"amount,omitempty"`
	Method      string      `json:"method,omitempty"`
	CreatedBy   string      `json:"created_by,omitempty"`
	ReferenceID string      `json:"reference_id,omitempty"`
	Actions     []string    `json:"actions,omitempty"`
}

type dateGroupResponse struct {
	Date   string          `json:"date"`
	Events []eventResponse `json:"events"`
}

// timelineResponse es la vista agregada del historial de un paciente.
type timelineResponse struct {
	PatientID string              `json:"patient_id"`
	Events    []eventResponse     `json:"events,omitempty"`
	Groups    []dateGroupResponse `json:"groups,omitempty"`
	Degraded  []string            `json:"degraded_sources,omitempty"`
	Total     int                 `json:"total"`
}

// getTimelineHandler godoc
// @Summary Historial médico unificado del paciente
// @Description Reconstruye el timeline del paciente agregando las cinco fuentes (citas, pagos, facturas, diagnósticos, notas clínicas). Tolera fuentes caídas: responde con lo que haya y lista las fuentes degradadas. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags timeline
// @Produce json
// @Param patientID path string true "ID del paciente"
// @Param type query string false "Filtro por tipo de evento (appointment, payment, invoice, diagnostic, clinical_note)"
// @Param status query string false "Filtro por estado (completed, pending, cancelled, planned)"
// @Param q query string false "Búsqueda por substring en título/descripción/referencia"
// @Param sort query string false "Campo de orden: date (default), type, status, amount"
// @Param order query string false "Dirección: desc (default) o asc"
// @Param grouped query bool false "Si es true, agrupa los eventos por fecha calendario"
// @Success 200 {object} timelineResponse
// @Failure 400 {string} string "parámetros inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 503 {string} string "failed to load medical history"
// @Router /patients/{patientID}/timeline [get]
func getTimelineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		patientID := strings.TrimSpace(chi.URLParam(r, "patientID"))
		if patientID == "" {
			http.Error(w, "patientID required", http.StatusBadRequest)
			return
		}

		criteria, err := criteriaFromQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		result, err := svc.Build(r.Context(), patientID)
		if err != nil {
			if errors.Is(err, ErrAllSourcesFailed) {
				http.Error(w, "failed to load medical history", http.StatusServiceUnavailable)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		events := FilterAndSort(result.Events, criteria)

		resp := timelineResponse{
			PatientID: patientID,
			Total:     len(events),
		}
		for _, d := range result.Degraded {
			resp.Degraded = append(resp.Degraded, string(d))
		}

		if strings.EqualFold(r.URL.Query().Get("grouped"), "true") {
			for _, g := range GroupByDate(events) {
				resp.Groups = append(resp.Groups, dateGroupResponse{
					Date:   g.Date,
					Events: toEventResponses(g.Events),
				})
			}
		} else {
			resp.Events = toEventResponses(events)
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func criteriaFromQuery(r *http.Request) (Criteria, error) {
	q := r.URL.Query()
	c := Criteria{
		Search: q.Get("q"),
	}

	if v := strings.TrimSpace(q.Get("type")); v != "" {
		t := EventType(v)
		if !ValidEventType(t) {
			return Criteria{}, errors.New("unknown event type")
		}
		c.Type = t
	}
	if v := strings.TrimSpace(q.Get("status")); v != "" {
		st := EventStatus(v)
		if !ValidEventStatus(st) {
			return Criteria{}, errors.New("unknown event status")
		}
		c.Status = st
	}
	if v := strings.TrimSpace(q.Get("sort")); v != "" {
		switch SortField(v) {
		case SortByDate, SortByType, SortByStatus, SortByAmount:
			c.SortBy = SortField(v)
		default:
			return Criteria{}, errors.New("unknown sort field")
		}
	}
	if v := strings.TrimSpace(q.Get("order")); v != "" {
		switch SortOrder(v) {
		case SortAsc, SortDesc:
			c.Order = SortOrder(v)
		default:
			return Criteria{}, errors.New("order must be asc or desc")
		}
	}

	return c, nil
}

func toEventResponses(events []Event) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, eventResponse{
			ID:          e.ID,
			Type:        e.Type,
			Date:        e.Date.Format(DateKeyLayout),
			Time:        e.Time,
			Title:       e.Title,
			Description: e.Description,
			Status:      e.Status,
			Amount:      e.Amount,
			Method:      e.Method,
			CreatedBy:   e.CreatedBy,
			ReferenceID: e.ReferenceID,
			Actions:     e.Actions,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
