// Package enrich attaches per-triangle covariate means by joining triangle
// vertices back to their source observations.
package enrich

import (
	"github.com/seaicedyn/driftdeform/internal/cache"
	"github.com/seaicedyn/driftdeform/pkg/core"
)

// MeanCovariates fills each record's Covariates map with the mean of every
// covariate present on its vertex observations, looked up by report time
// and buoy ID. A vertex missing from the cache, or missing a given key,
// simply does not contribute to that key's mean. Records end up with a nil
// map when no vertex carries covariates.
func MeanCovariates(table []core.TriangleRecord, c *cache.ObservationCache) {
	for i := range table {
		rec := &table[i]

		sums := make(map[string]float64)
		counts := make(map[string]int)
		for _, id := range rec.BuoyIDs {
			o, ok := c.Get(rec.Time, id)
			if !ok {
				continue
			}
			for key, val := range o.Covariates {
				sums[key] += val
				counts[key]++
			}
		}
		if len(sums) == 0 {
			continue
		}

		rec.Covariates = make(map[string]float64, len(sums))
		for key, sum := range sums {
			rec.Covariates[key] = sum / float64(counts[key])
		}
	}
}
