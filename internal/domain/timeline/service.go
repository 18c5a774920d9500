package timeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"clinic-history/internal/platform/logger"
	"clinic-history/internal/ports/telemetry"
)

// ErrAllSourcesFailed: las cinco fuentes fallaron (primario y fallback).
// Es la única condición que se escala al caller como error visible.
var ErrAllSourcesFailed = errors.New("all timeline sources failed")

// Service agrega el historial médico unificado: lanza todas las fuentes en
// paralelo, tolera fallas parciales y expone el working set ya normalizado
// con el orden default (fecha descendente).
type Service struct {
	sources  []Source
	log      logger.Logger
	reporter telemetry.Reporter
}

func NewService(sources []Source, log logger.Logger, reporter telemetry.Reporter) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if reporter == nil {
		reporter = telemetry.Nop{}
	}
	return &Service{
		sources:  sources,
		log:      log,
		reporter: reporter,
	}
}

// Result es lo que produce una agregación.
type Result struct {
	Events []Event
	// Degraded: fuentes que aportaron cero eventos por falla de fetch
	// primario y fallback. Informativo, no bloquea la respuesta.
	Degraded []SourceName
	// Dropped: registros crudos descartados por defecto de normalización.
	Dropped int
}

// Build reconstruye el timeline del paciente. Nunca devuelve error por fallas
// parciales: cada fuente caída simplemente aporta cero eventos. Solo si
// fallan todas las fuentes se devuelve ErrAllSourcesFailed.
func (s *Service) Build(ctx context.Context, patientID string) (Result, error) {
	if len(s.sources) == 0 {
		return Result{Events: []Event{}}, nil
	}

	type outcome struct {
		res      FetchResult
		degraded bool
	}
	outcomes := make([]outcome, len(s.sources))

	// Join all-settled: cada goroutine guarda su resultado en su slot y
	// devuelve siempre nil, así la caída de una fuente jamás cancela a las
	// hermanas. El slice solo se lee después de Wait (un solo escritor por
	// slot, sin locks).
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range s.sources {
		i, src := i, src
		g.Go(func() error {
			res, degraded := s.fetchOne(gctx, src, patientID)
			outcomes[i] = outcome{res: res, degraded: degraded}
			return nil
		})
	}
	_ = g.Wait()

	result := Result{Events: make([]Event, 0)}
	for i, src := range s.sources {
		o := outcomes[i]
		if o.degraded {
			result.Degraded = append(result.Degraded, src.Name())
			continue
		}
		result.Events = append(result.Events, o.res.Events...)
		result.Dropped += o.res.Dropped
	}

	// El reporte va antes del corte por falla total: el colector tiene que
	// enterarse también de la agregación donde cayeron todas las fuentes.
	if len(result.Degraded) > 0 {
		s.reportDegraded(ctx, patientID, result.Degraded)
	}

	if len(result.Degraded) == len(s.sources) {
		return result, ErrAllSourcesFailed
	}

	// Orden default antes de exponer: descendente por (date, time).
	SortDefault(result.Events)

	if result.Dropped > 0 {
		s.log.Warn("timeline records dropped during normalization", map[string]any{
			"patient_id": patientID,
			"dropped":    result.Dropped,
		})
	}

	return result, nil
}

// fetchOne resuelve una fuente: fetch primario, y si falla, un único intento
// de fallback cuando la fuente lo soporta. Devuelve degraded=true si la
// fuente terminó sin aportar nada por falla.
func (s *Service) fetchOne(ctx context.Context, src Source, patientID string) (res FetchResult, degraded bool) {
	// Un panic del adapter cuenta como fuente caída, nunca tumba la agregación.
	defer func() {
		if p := recover(); p != nil {
			s.log.Error("timeline source panicked", map[string]any{
				"source": string(src.Name()),
				"panic":  fmt.Sprint(p),
			})
			res, degraded = FetchResult{}, true
		}
	}()

	res, err := src.Fetch(ctx, patientID)
	if err == nil {
		return res, false
	}

	fb, ok := src.(Fallbacker)
	if !ok {
		s.log.Warn("timeline source failed", map[string]any{
			"source": string(src.Name()),
			"error":  err.Error(),
		})
		return FetchResult{}, true
	}

	s.log.Warn("timeline source failed, trying fallback", map[string]any{
		"source": string(src.Name()),
		"error":  err.Error(),
	})

	res, err = fb.FetchFallback(ctx, patientID)
	if err != nil {
		// Degradación silenciosa: la fuente aporta cero eventos.
		s.log.Warn("timeline source fallback failed", map[string]any{
			"source": string(src.Name()),
			"error":  err.Error(),
		})
		return FetchResult{}, true
	}
	return res, false
}

// reportDegraded avisa al colector externo sin bloquear la respuesta.
func (s *Service) reportDegraded(ctx context.Context, patientID string, degraded []SourceName) {
	names := make([]string, 0, len(degraded))
	for _, d := range degraded {
		names = append(names, string(d))
	}

	rep := telemetry.DegradedReport{
		CorrelationID: uuid.NewString(),
		PatientID:     patientID,
		Sources:       names,
	}

	s.log.Warn("timeline degraded sources", map[string]any{
		"correlation_id": rep.CorrelationID,
		"patient_id":     patientID,
		"sources":        names,
	})

	go func(ctx context.Context) {
		if err := s.reporter.ReportDegraded(ctx, rep); err != nil {
			s.log.Debug("degraded-source report failed", logger.Err(err))
		}
	}(context.WithoutCancel(ctx))
}
