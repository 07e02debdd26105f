// pkg/core/powerlaw.go
package core

import "math"

// PowerLaw relates deformation rate to triangle length scale as
// deformation = Alpha * scale^Beta. Immutable once fit.
type PowerLaw struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
}

// Predict returns the deformation rate expected at the given length scale
// in kilometres.
func (p PowerLaw) Predict(scale float64) float64 {
	return p.Alpha * math.Pow(scale, p.Beta)
}
