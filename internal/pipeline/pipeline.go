// Package pipeline runs the deformation analysis stages in order: triangle
// enumeration, kinematics, covariate enrichment, storage and the scale fit.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/seaicedyn/driftdeform/internal/cache"
	"github.com/seaicedyn/driftdeform/internal/enrich"
	"github.com/seaicedyn/driftdeform/internal/kinematics"
	"github.com/seaicedyn/driftdeform/internal/scaling"
	"github.com/seaicedyn/driftdeform/internal/storage"
	"github.com/seaicedyn/driftdeform/internal/triangulate"
	"github.com/seaicedyn/driftdeform/pkg/core"
)

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Pipeline wires the analysis stages to a storage backend.
type Pipeline struct {
	engine   *triangulate.Engine
	calc     *kinematics.Calculator
	backend  storage.Backend
	obsCache *cache.ObservationCache
	logger   Logger

	runs     metric.Int64Counter
	duration metric.Float64Histogram
}

// New creates a pipeline. The observation cache may be nil when no
// covariates are ingested; enrichment is skipped in that case.
func New(engine *triangulate.Engine, calc *kinematics.Calculator, backend storage.Backend, obsCache *cache.ObservationCache, logger Logger) (*Pipeline, error) {
	if logger == nil {
		logger = nopLogger{}
	}
	p := &Pipeline{
		engine:   engine,
		calc:     calc,
		backend:  backend,
		obsCache: obsCache,
		logger:   logger,
	}

	m := meter()
	var err error
	p.runs, err = m.Int64Counter(
		"pipeline.runs",
		metric.WithDescription("Completed analysis runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating run counter: %w", err)
	}
	p.duration, err = m.Float64Histogram(
		"pipeline.run.duration",
		metric.WithDescription("Analysis run duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}
	return p, nil
}

// Run processes one batch of grouped observations end to end and returns
// the stored results. A batch too sparse for the power-law fit still
// produces a triangle table; the fit is simply absent from the result.
func (p *Pipeline) Run(ctx context.Context, groups core.ObservationGroup) (core.ResultSet, error) {
	start := time.Now()

	table, err := p.engine.BuildTable(ctx, groups)
	if err != nil {
		return core.ResultSet{}, fmt.Errorf("building triangle table: %w", err)
	}
	p.logger.Debug("triangle table ready", "rows", len(table))

	table = p.calc.EnrichTable(ctx, table)

	if p.obsCache != nil {
		enrich.MeanCovariates(table, p.obsCache)
	}

	if err := p.backend.WriteTriangles(table...); err != nil {
		return core.ResultSet{}, fmt.Errorf("storing triangle table: %w", err)
	}

	law, err := scaling.Fit(table)
	switch {
	case errors.Is(err, scaling.ErrInsufficientData):
		p.logger.Info("skipping power-law fit", "reason", err, "rows", len(table))
	case err != nil:
		return core.ResultSet{}, fmt.Errorf("fitting power law: %w", err)
	default:
		if err := p.backend.WriteFit(law); err != nil {
			return core.ResultSet{}, fmt.Errorf("storing fit: %w", err)
		}
		p.logger.Info("power-law fit stored", "alpha", law.Alpha, "beta", law.Beta)
	}

	p.runs.Add(ctx, 1)
	p.duration.Record(ctx, time.Since(start).Seconds())

	return p.backend.Snapshot()
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
