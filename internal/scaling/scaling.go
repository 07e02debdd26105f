// Package scaling fits the power-law relation between total deformation
// rate and triangle length scale, deformation = alpha * scale^beta.
package scaling

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/seaicedyn/driftdeform/pkg/core"
)

// ErrInsufficientData is returned when fewer than two usable records remain
// after filtering, leaving the regression underdetermined.
var ErrInsufficientData = errors.New("not enough records for power-law fit")

// Fit performs an ordinary least squares regression in log-log space over
// the table. Records with non-positive deformation or scale carry no
// information in log space and are excluded.
func Fit(table []core.TriangleRecord) (core.PowerLaw, error) {
	xs := make([]float64, 0, len(table))
	ys := make([]float64, 0, len(table))
	for _, rec := range table {
		scale := rec.Scale()
		if rec.Deformation <= 0 || scale <= 0 {
			continue
		}
		xs = append(xs, math.Log(scale))
		ys = append(ys, math.Log(rec.Deformation))
	}
	if len(xs) < 2 {
		return core.PowerLaw{}, ErrInsufficientData
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(intercept) || math.IsNaN(slope) {
		return core.PowerLaw{}, ErrInsufficientData
	}
	return core.PowerLaw{Alpha: math.Exp(intercept), Beta: slope}, nil
}
