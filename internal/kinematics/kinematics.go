// Package kinematics derives strain-rate tensors and deformation invariants
// for triangle records using a discrete Green's theorem contour integral
// over the triangle boundary.
package kinematics

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.opentelemetry.io/otel/metric"

	"github.com/seaicedyn/driftdeform/pkg/core"
)

// ErrDegenerateArea marks a triangle whose area is too small to divide by.
var ErrDegenerateArea = errors.New("triangle area below numeric threshold")

const (
	// secondsPerDay converts tensor components from 1/s to 1/day.
	secondsPerDay = 86400
	// minArea guards the 1/(2A) division. Triangles this small should have
	// been filtered upstream; anything slipping through is skipped.
	minArea = 1e-12
)

// Calculator fills the tensor and invariant fields of triangle records.
type Calculator struct {
	skipped metric.Int64Counter
}

// NewCalculator creates a calculator with its instruments registered.
func NewCalculator() (*Calculator, error) {
	skipped, err := meter().Int64Counter(
		"kinematics.skipped",
		metric.WithDescription("Triangle records skipped as numerically degenerate"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating skip counter: %w", err)
	}
	return &Calculator{skipped: skipped}, nil
}

// Derive computes the velocity gradient tensor of one record and fills its
// divergence, shear and total deformation, all in 1/day. The record must be
// in canonical orientation with positive area.
func (c *Calculator) Derive(rec *core.TriangleRecord) error {
	if rec.Area < minArea {
		return ErrDegenerateArea
	}

	// Contour integral around the vertices in order, each edge contributing
	// the trapezoid of its endpoint velocities. Closing edge returns to
	// vertex 1.
	inv := 1 / (2 * rec.Area)
	dy12, dy23, dy31 := rec.Y2-rec.Y1, rec.Y3-rec.Y2, rec.Y1-rec.Y3
	dx12, dx23, dx31 := rec.X2-rec.X1, rec.X3-rec.X2, rec.X1-rec.X3

	rec.DuDx = inv * ((rec.U1+rec.U2)*dy12 + (rec.U2+rec.U3)*dy23 + (rec.U3+rec.U1)*dy31)
	rec.DuDy = -inv * ((rec.U1+rec.U2)*dx12 + (rec.U2+rec.U3)*dx23 + (rec.U3+rec.U1)*dx31)
	rec.DvDx = inv * ((rec.V1+rec.V2)*dy12 + (rec.V2+rec.V3)*dy23 + (rec.V3+rec.V1)*dy31)
	rec.DvDy = -inv * ((rec.V1+rec.V2)*dx12 + (rec.V2+rec.V3)*dx23 + (rec.V3+rec.V1)*dx31)

	rec.Divergence = (rec.DuDx + rec.DvDy) * secondsPerDay
	normal := rec.DuDx - rec.DvDy
	shearing := rec.DuDy + rec.DvDx
	rec.Shear = math.Sqrt(normal*normal+shearing*shearing) * secondsPerDay
	rec.Deformation = math.Sqrt(rec.Divergence*rec.Divergence + rec.Shear*rec.Shear)
	return nil
}

// EnrichTable derives kinematics for every record in place. Degenerate
// records are dropped from the returned table rather than failing the run.
func (c *Calculator) EnrichTable(ctx context.Context, table []core.TriangleRecord) []core.TriangleRecord {
	out := table[:0]
	for i := range table {
		if err := c.Derive(&table[i]); err != nil {
			c.skipped.Add(ctx, 1)
			continue
		}
		out = append(out, table[i])
	}
	return out
}
