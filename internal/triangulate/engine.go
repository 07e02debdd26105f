// Package triangulate forms buoy triangles per report time and filters out
// geometries too degenerate to support a strain-rate estimate.
package triangulate

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/seaicedyn/driftdeform/internal/geo"
	"github.com/seaicedyn/driftdeform/pkg/core"
)

// Configuration errors, returned from New before any group is processed.
var (
	ErrNegativeMaxStatic = errors.New("max static count must not be negative")
	ErrInvalidMinAngle   = errors.New("min angle threshold must be in (0, 60] degrees")
)

// Rejection reasons recorded on the candidate counter.
const (
	reasonStaticCount = "static_count"
	reasonSharpAngle  = "sharp_angle"
	reasonSmallArea   = "small_area"
)

// Config holds the enumeration thresholds. Zero values are replaced by the
// documented defaults in New.
type Config struct {
	// MinAngleDeg rejects triangles with any interior angle below this
	// threshold. Default 15.
	MinAngleDeg float64
	// MaxStatic caps the number of static reference points per triangle.
	// Default 1.
	MaxStatic int
	// KeepSmallestStatic keeps only the minimum-area triangle among accepted
	// triangles of one timestamp that contain a static member and share the
	// same set of moving buoys. Default true.
	KeepSmallestStatic bool
	// MinArea rejects triangles whose area falls below this epsilon in
	// square metres, catching near-degenerate shapes that pass the angle
	// filter at extreme aspect ratios. Default 1e-6.
	MinArea float64
	// Workers bounds the number of timestamp groups processed concurrently.
	// Default: number of CPUs.
	Workers int
}

// DefaultConfig returns the documented default thresholds.
func DefaultConfig() Config {
	return Config{
		MinAngleDeg:        15,
		MaxStatic:          1,
		KeepSmallestStatic: true,
		MinArea:            1e-6,
		Workers:            runtime.NumCPU(),
	}
}

// Logger is the minimal logging interface the engine needs.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Engine enumerates candidate buoy triples per timestamp group and emits
// the accepted triangle table.
type Engine struct {
	cfg     Config
	statics []core.Observation
	logger  Logger

	// OTel instruments; no-op unless the host installs a meter provider.
	candidates metric.Int64Counter
	accepted   metric.Int64Counter
	deduped    metric.Int64Counter
}

// New validates the configuration and creates an engine. The statics list
// is appended to every timestamp group; its entries' own timestamps are
// ignored. A nil logger disables engine logging.
func New(cfg Config, statics []core.Observation, logger Logger) (*Engine, error) {
	if cfg.MaxStatic < 0 {
		return nil, ErrNegativeMaxStatic
	}
	if cfg.MinAngleDeg == 0 {
		cfg.MinAngleDeg = 15
	}
	if cfg.MinAngleDeg < 0 || cfg.MinAngleDeg > 60 {
		return nil, ErrInvalidMinAngle
	}
	if cfg.MinArea <= 0 {
		cfg.MinArea = 1e-6
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = nopLogger{}
	}

	e := &Engine{
		cfg:     cfg,
		statics: statics,
		logger:  logger,
	}

	m := meter()
	var err error
	e.candidates, err = m.Int64Counter(
		"triangulate.candidates",
		metric.WithDescription("Candidate triples enumerated, by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating candidate counter: %w", err)
	}
	e.accepted, err = m.Int64Counter(
		"triangulate.accepted",
		metric.WithDescription("Triangles accepted into the output table"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating accepted counter: %w", err)
	}
	e.deduped, err = m.Int64Counter(
		"triangulate.deduped",
		metric.WithDescription("Accepted triangles removed by static dedup"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dedup counter: %w", err)
	}
	return e, nil
}

// BuildTable enumerates all timestamp groups and returns the accepted
// triangle table sorted by timestamp ascending. Groups with fewer than 3
// observations, or none surviving the filters, contribute zero rows.
// Cancelling the context stops the remaining groups and returns ctx.Err().
func (e *Engine) BuildTable(ctx context.Context, groups core.ObservationGroup) ([]core.TriangleRecord, error) {
	times := make([]time.Time, 0, len(groups))
	for ts := range groups {
		times = append(times, ts)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	// Each worker writes only its own group's slot, so the merge preserves
	// timestamp order without locking.
	subTables := make([][]core.TriangleRecord, len(times))

	workers := e.cfg.Workers
	if workers > len(times) {
		workers = len(times)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				ts := times[idx]
				subTables[idx] = e.processGroup(ctx, ts, groups[ts])
			}
		}()
	}

	var ctxErr error
feed:
	for idx := range times {
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break feed
		case jobs <- idx:
		}
	}
	close(jobs)
	wg.Wait()
	if ctxErr != nil {
		return nil, ctxErr
	}

	table := make([]core.TriangleRecord, 0)
	for _, sub := range subTables {
		table = append(table, sub...)
	}
	e.logger.Debug("triangle table built", "groups", len(times), "triangles", len(table))
	return table, nil
}

// processGroup runs the combinatorial search for one timestamp group.
func (e *Engine) processGroup(ctx context.Context, ts time.Time, obs []core.Observation) []core.TriangleRecord {
	if ctx.Err() != nil {
		return nil
	}

	if len(e.statics) > 0 {
		merged := make([]core.Observation, 0, len(obs)+len(e.statics))
		merged = append(merged, obs...)
		merged = append(merged, e.statics...)
		obs = merged
	}
	if len(obs) < 3 {
		return nil
	}

	var accepted []core.TriangleRecord
	for i := 0; i < len(obs); i++ {
		for j := i + 1; j < len(obs); j++ {
			for k := j + 1; k < len(obs); k++ {
				if rec, ok := e.buildCandidate(ctx, ts, obs[i], obs[j], obs[k]); ok {
					accepted = append(accepted, rec)
				}
			}
		}
	}

	if len(e.statics) > 0 && e.cfg.KeepSmallestStatic && len(accepted) > 1 {
		accepted = e.keepSmallestStatic(ctx, accepted)
	}

	e.accepted.Add(ctx, int64(len(accepted)))
	return accepted
}

// buildCandidate applies the filter chain to one combination and, when it
// survives, produces the canonically oriented record.
func (e *Engine) buildCandidate(ctx context.Context, ts time.Time, o1, o2, o3 core.Observation) (core.TriangleRecord, bool) {
	staticCount := 0
	for _, o := range []core.Observation{o1, o2, o3} {
		if o.IsStatic {
			staticCount++
		}
	}
	if staticCount > e.cfg.MaxStatic {
		e.countCandidate(ctx, reasonStaticCount)
		return core.TriangleRecord{}, false
	}

	p1 := geom.XY{X: o1.X, Y: o1.Y}
	p2 := geom.XY{X: o2.X, Y: o2.Y}
	p3 := geom.XY{X: o3.X, Y: o3.Y}

	// Canonicalize to positive orientation: swapping the 2nd and 3rd
	// vertices flips the winding, so the record carries their velocities
	// and IDs in the swapped order too.
	area := geo.SignedArea(p1, p2, p3)
	if area <= 0 {
		o2, o3 = o3, o2
		p2, p3 = p3, p2
		area = -area
	}

	if geo.HasSharpAngle(p1, p2, p3, e.cfg.MinAngleDeg) {
		e.countCandidate(ctx, reasonSharpAngle)
		return core.TriangleRecord{}, false
	}
	if area < e.cfg.MinArea {
		e.countCandidate(ctx, reasonSmallArea)
		return core.TriangleRecord{}, false
	}
	e.countCandidate(ctx, "accepted")

	u1, v1 := geo.VelocityComponents(o1.Speed, o1.Bearing)
	u2, v2 := geo.VelocityComponents(o2.Speed, o2.Bearing)
	u3, v3 := geo.VelocityComponents(o3.Speed, o3.Bearing)

	return core.TriangleRecord{
		Time: ts,
		X1:   p1.X, Y1: p1.Y,
		X2: p2.X, Y2: p2.Y,
		X3: p3.X, Y3: p3.Y,
		Area: area,
		U1:   u1, V1: v1,
		U2: u2, V2: v2,
		U3: u3, V3: v3,
		BuoyIDs: [3]int{o1.BuoyID, o2.BuoyID, o3.BuoyID},
		Static:  [3]bool{o1.IsStatic, o2.IsStatic, o3.IsStatic},
	}, true
}

// keepSmallestStatic applies the static dedup: among triangles containing a
// static member and sharing one set of moving buoy IDs, only the smallest
// area survives. Triangles without a static member pass through untouched.
func (e *Engine) keepSmallestStatic(ctx context.Context, records []core.TriangleRecord) []core.TriangleRecord {
	// Grouped reduction: moving-ID set -> index of the minimum-area record
	// seen so far.
	minByMoving := make(map[string]int)
	for i, rec := range records {
		if !rec.HasStatic() {
			continue
		}
		key := rec.MovingKey()
		best, seen := minByMoving[key]
		if !seen || rec.Area < records[best].Area {
			minByMoving[key] = i
		}
	}

	keep := make(map[int]bool, len(minByMoving))
	for _, idx := range minByMoving {
		keep[idx] = true
	}

	kept := records[:0:0]
	for i, rec := range records {
		if !rec.HasStatic() || keep[i] {
			kept = append(kept, rec)
			continue
		}
		e.deduped.Add(ctx, 1)
	}
	return kept
}

func (e *Engine) countCandidate(ctx context.Context, outcome string) {
	e.candidates.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
