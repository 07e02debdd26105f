// Package ingest receives buoy position fixes, projects them onto the
// planar analysis grid and buckets them by report time for the triangle
// engine.
package ingest

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"

	"github.com/seaicedyn/driftdeform/internal/cache"
	"github.com/seaicedyn/driftdeform/internal/channel"
	"github.com/seaicedyn/driftdeform/internal/geo"
	"github.com/seaicedyn/driftdeform/pkg/core"
)

// Collector accepts observations from producers and assembles the grouped
// input for an analysis run. Submit and the Run consumer may live on
// different goroutines; Groups must only be read after Run returns.
type Collector struct {
	ch       channel.Channel[core.Observation]
	obsCache *cache.ObservationCache

	groups   core.ObservationGroup
	rejected metric.Int64Counter
}

// NewCollector creates a collector with the given channel buffer size. The
// cache, when non-nil, is fed every accepted observation for later
// covariate joins.
func NewCollector(bufferSize int, obsCache *cache.ObservationCache) (*Collector, error) {
	rejected, err := meter().Int64Counter(
		"ingest.rejected",
		metric.WithDescription("Observations rejected at submission"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rejection counter: %w", err)
	}
	return &Collector{
		ch:       channel.New[core.Observation](bufferSize),
		obsCache: obsCache,
		groups:   core.ObservationGroup{},
		rejected: rejected,
	}, nil
}

// Submit queues a fix for grouping. Fixes carrying a geographic position
// are projected onto the planar grid, overwriting any planar coordinates;
// fixes without one pass through unchanged.
func (c *Collector) Submit(o core.Observation) error {
	if o.Lon != 0 || o.Lat != 0 {
		p, err := geo.PlanarFromGeographic(o.Lon, o.Lat)
		if err != nil {
			c.rejected.Add(context.Background(), 1)
			return fmt.Errorf("projecting fix for buoy %d: %w", o.BuoyID, err)
		}
		o.X, o.Y = p.X, p.Y
	}
	c.ch.Send(o)
	return nil
}

// Close signals that no more observations will be submitted.
func (c *Collector) Close() {
	c.ch.Close()
}

// Run consumes submitted observations until Close or context cancellation.
func (c *Collector) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case o, ok := <-c.ch.Receive():
			if !ok {
				return nil
			}
			c.groups[o.Time] = append(c.groups[o.Time], o)
			if c.obsCache != nil {
				c.obsCache.Add(o)
			}
		}
	}
}

// Groups returns the observations bucketed by report time.
func (c *Collector) Groups() core.ObservationGroup {
	return c.groups
}

// Pending returns the number of queued, unconsumed observations.
func (c *Collector) Pending() int {
	return c.ch.Len()
}
