package scaling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seaicedyn/driftdeform/pkg/core"
)

// recordAtScale builds a record whose Scale() is exactly scaleKm and whose
// deformation follows the given power law.
func recordAtScale(scaleKm float64, law core.PowerLaw) core.TriangleRecord {
	side := scaleKm * 1000
	return core.TriangleRecord{
		Area:        side * side,
		Deformation: law.Predict(scaleKm),
	}
}

func TestFit_RecoversExactPowerLaw(t *testing.T) {
	want := core.PowerLaw{Alpha: 2.0, Beta: -0.5}
	var table []core.TriangleRecord
	for _, s := range []float64{1, 2, 4, 8, 16, 32} {
		table = append(table, recordAtScale(s, want))
	}

	got, err := Fit(table)
	require.NoError(t, err)
	assert.InDelta(t, want.Alpha, got.Alpha, 1e-9)
	assert.InDelta(t, want.Beta, got.Beta, 1e-9)
}

func TestFit_PredictRoundTrip(t *testing.T) {
	want := core.PowerLaw{Alpha: 0.8, Beta: -0.2}
	var table []core.TriangleRecord
	for _, s := range []float64{0.5, 3, 7, 12, 40} {
		table = append(table, recordAtScale(s, want))
	}

	got, err := Fit(table)
	require.NoError(t, err)
	assert.InDelta(t, want.Predict(10), got.Predict(10), 1e-9)
}

func TestFit_SkipsNonPositiveDeformation(t *testing.T) {
	want := core.PowerLaw{Alpha: 1.5, Beta: -0.3}
	table := []core.TriangleRecord{
		recordAtScale(2, want),
		{Area: 9e6, Deformation: 0},  // log undefined, must be excluded
		{Area: 4e6, Deformation: -1}, // cannot occur, but must not panic
		recordAtScale(5, want),
		recordAtScale(11, want),
	}

	got, err := Fit(table)
	require.NoError(t, err)
	assert.InDelta(t, want.Alpha, got.Alpha, 1e-9)
	assert.InDelta(t, want.Beta, got.Beta, 1e-9)
}

func TestFit_InsufficientData(t *testing.T) {
	_, err := Fit(nil)
	require.ErrorIs(t, err, ErrInsufficientData)

	_, err = Fit([]core.TriangleRecord{recordAtScale(3, core.PowerLaw{Alpha: 1, Beta: 0})})
	require.ErrorIs(t, err, ErrInsufficientData)

	// Two records left after filtering out the unusable one is enough.
	law := core.PowerLaw{Alpha: 1.2, Beta: 0.4}
	got, err := Fit([]core.TriangleRecord{
		recordAtScale(2, law),
		{Area: 1e6, Deformation: 0},
		recordAtScale(6, law),
	})
	require.NoError(t, err)
	assert.False(t, math.IsNaN(got.Beta))
}

func TestFit_DegenerateSingleScale(t *testing.T) {
	law := core.PowerLaw{Alpha: 2, Beta: 0.5}
	table := []core.TriangleRecord{
		recordAtScale(4, law),
		recordAtScale(4, law),
		recordAtScale(4, law),
	}
	_, err := Fit(table)
	require.ErrorIs(t, err, ErrInsufficientData)
}
