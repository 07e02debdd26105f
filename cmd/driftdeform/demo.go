package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/rs/zerolog"

	"github.com/seaicedyn/driftdeform/internal/cache"
	"github.com/seaicedyn/driftdeform/internal/config"
	"github.com/seaicedyn/driftdeform/internal/geo"
	"github.com/seaicedyn/driftdeform/internal/ingest"
	"github.com/seaicedyn/driftdeform/internal/kinematics"
	"github.com/seaicedyn/driftdeform/internal/logging"
	"github.com/seaicedyn/driftdeform/internal/pipeline"
	"github.com/seaicedyn/driftdeform/internal/run"
	"github.com/seaicedyn/driftdeform/internal/storage"
	"github.com/seaicedyn/driftdeform/internal/triangulate"
	"github.com/seaicedyn/driftdeform/pkg/core"
)

// Demo scenario: a buoy array drifting in the Fram Strait region under a
// weakly divergent velocity field, with two coastal reference moorings.
const (
	demoBuoys     = 12
	demoHours     = 24
	demoCenterLon = -3.5
	demoCenterLat = 79.0
	demoSpreadDeg = 0.4

	// Uniform divergence of the background field, 1/s.
	demoDivergence = 4e-6
	// Constant ambient drift, m/s.
	demoDriftU = 0.08
	demoDriftV = -0.05
)

func runDemo(ctx context.Context, runCtx *run.Context) error {
	rng := rand.New(rand.NewSource(42))

	obsCache := cache.NewObservationCache()
	collector, err := ingest.NewCollector(256, obsCache)
	if err != nil {
		return fmt.Errorf("creating collector: %w", err)
	}

	runCtx.SetStage("ingest")
	produceErr := make(chan error, 1)
	go func() {
		defer collector.Close()
		produceErr <- produceDemoObservations(collector, rng)
	}()
	if err := collector.Run(ctx); err != nil {
		return fmt.Errorf("collecting observations: %w", err)
	}
	if err := <-produceErr; err != nil {
		return fmt.Errorf("producing observations: %w", err)
	}
	logger.Info("Demo observations ingested.",
		"groups", len(collector.Groups()), "fixes", obsCache.Len())

	statics, err := demoStatics()
	if err != nil {
		return fmt.Errorf("building reference points: %w", err)
	}

	engineLogger := logging.NewEngineLogger(
		zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel),
	)
	engine, err := triangulate.New(config.Engine(), statics, engineLogger)
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}
	calc, err := kinematics.NewCalculator()
	if err != nil {
		return fmt.Errorf("creating calculator: %w", err)
	}
	backend, err := storage.NewBackend(config.Storage())
	if err != nil {
		return fmt.Errorf("creating backend: %w", err)
	}
	if err := backend.Init(); err != nil {
		return fmt.Errorf("initializing backend: %w", err)
	}
	defer backend.Close()

	pipe, err := pipeline.New(engine, calc, backend, obsCache, engineLogger)
	if err != nil {
		return fmt.Errorf("creating pipeline: %w", err)
	}

	runCtx.SetStage("analysis")
	result, err := pipe.Run(ctx, collector.Groups())
	if err != nil {
		return fmt.Errorf("running analysis: %w", err)
	}

	runCtx.SetStage("done")
	reportDemoResult(result)
	return nil
}

// produceDemoObservations drifts the buoy array hour by hour and submits
// every fix. Each buoy follows the background field plus its own noise.
func produceDemoObservations(collector *ingest.Collector, rng *rand.Rand) error {
	t0 := time.Now().UTC().Truncate(time.Hour).Add(-demoHours * time.Hour)

	// Array center in planar coordinates; the field diverges from here.
	center, err := geo.PlanarFromGeographic(demoCenterLon, demoCenterLat)
	if err != nil {
		return err
	}
	xc, yc := center.X, center.Y

	type buoy struct {
		id   int
		x, y float64
	}
	buoys := make([]buoy, demoBuoys)
	for i := range buoys {
		lon := demoCenterLon + (rng.Float64()*2-1)*demoSpreadDeg
		lat := demoCenterLat + (rng.Float64()*2-1)*demoSpreadDeg/3
		p, err := geo.PlanarFromGeographic(lon, lat)
		if err != nil {
			return err
		}
		buoys[i] = buoy{id: i + 1, x: p.X, y: p.Y}
	}

	for h := 0; h < demoHours; h++ {
		ts := t0.Add(time.Duration(h) * time.Hour)
		for i := range buoys {
			b := &buoys[i]

			u := demoDriftU + demoDivergence/2*(b.x-xc) + rng.NormFloat64()*0.01
			v := demoDriftV + demoDivergence/2*(b.y-yc) + rng.NormFloat64()*0.01
			bearing := math.Atan2(u, v) * 180 / math.Pi
			if bearing < 0 {
				bearing += 360
			}

			obs := core.Observation{
				BuoyID:  b.id,
				Time:    ts,
				X:       b.x,
				Y:       b.y,
				Speed:   math.Hypot(u, v),
				Bearing: bearing,
				Covariates: map[string]float64{
					"windSpeed":    6 + rng.NormFloat64()*2,
					"iceConc":      0.85 + rng.Float64()*0.1,
					"iceThickness": 1.4 + rng.NormFloat64()*0.2,
					"shoreDist":    120e3 + rng.NormFloat64()*5e3,
				},
			}
			if err := collector.Submit(obs); err != nil {
				return err
			}

			b.x += u * 3600
			b.y += v * 3600
		}
	}
	return nil
}

// demoStatics returns two coastal moorings flanking the buoy array.
func demoStatics() ([]core.Observation, error) {
	coords := [][2]float64{
		{demoCenterLon - 1.2, demoCenterLat - 0.25},
		{demoCenterLon + 1.1, demoCenterLat + 0.2},
	}
	statics := make([]core.Observation, 0, len(coords))
	for i, c := range coords {
		p, err := geo.PlanarFromGeographic(c[0], c[1])
		if err != nil {
			return nil, err
		}
		statics = append(statics, core.Observation{
			BuoyID:   900 + i,
			X:        p.X,
			Y:        p.Y,
			IsStatic: true,
		})
	}
	return statics, nil
}

func reportDemoResult(result core.ResultSet) {
	var div, shear, def float64
	largest := -1
	for i, rec := range result.Triangles {
		div += rec.Divergence
		shear += rec.Shear
		def += rec.Deformation
		if largest < 0 || rec.Area > result.Triangles[largest].Area {
			largest = i
		}
	}
	n := float64(len(result.Triangles))
	if n == 0 {
		logger.Info("No triangles accepted.")
		return
	}

	logger.Info("Triangle table stored.",
		"triangles", len(result.Triangles),
		"meanDivergence", div/n,
		"meanShear", shear/n,
		"meanDeformation", def/n,
	)

	big := result.Triangles[largest]
	ring, err := geo.TriangleRing(
		geom.XY{X: big.X1, Y: big.Y1},
		geom.XY{X: big.X2, Y: big.Y2},
		geom.XY{X: big.X3, Y: big.Y3},
	)
	if err != nil {
		logger.Error("Failed to build triangle ring.", "error", err)
	} else {
		logger.Debug("Largest triangle.", "scaleKm", big.Scale(), "wkt", ring.AsText())
	}
	if result.Fit != nil {
		logger.Info("Power-law fit.",
			"alpha", result.Fit.Alpha,
			"beta", result.Fit.Beta,
			"predicted10km", result.Fit.Predict(10),
		)
	} else {
		logger.Info("Batch too sparse for power-law fit.")
	}
}
