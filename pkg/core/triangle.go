// pkg/core/triangle.go
package core

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// TriangleRecord is one accepted buoy triangle with its vertex state at a
// single report time. Vertices are stored in canonical (positive area)
// order; velocity components and buoy IDs follow any reordering applied
// during canonicalization.
type TriangleRecord struct {
	Time time.Time `json:"time"`

	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
	X3 float64 `json:"x3"`
	Y3 float64 `json:"y3"`

	// Area is the triangle area in square metres, always positive.
	Area float64 `json:"area"`

	// Per-vertex velocity components in the projected plane, metres/second.
	U1 float64 `json:"u1"`
	V1 float64 `json:"v1"`
	U2 float64 `json:"u2"`
	V2 float64 `json:"v2"`
	U3 float64 `json:"u3"`
	V3 float64 `json:"v3"`

	// BuoyIDs are the originating buoy identifiers, vertex order.
	BuoyIDs [3]int `json:"buoyIds"`
	// Static flags which vertices are fixed reference points, vertex order.
	Static [3]bool `json:"static"`

	// Strain-rate tensor components, 1/s. Filled by the kinematics step.
	DuDx float64 `json:"dudx"`
	DuDy float64 `json:"dudy"`
	DvDx float64 `json:"dvdx"`
	DvDy float64 `json:"dvdy"`

	// Divergence, shear and total deformation, 1/day.
	Divergence  float64 `json:"divergence"`
	Shear       float64 `json:"shear"`
	Deformation float64 `json:"deformation"`

	// Covariates holds per-triangle means attached by enrichment.
	Covariates map[string]float64 `json:"covariates,omitempty"`
}

// Scale returns the triangle characteristic length in kilometres,
// sqrt(area)/1000.
func (t TriangleRecord) Scale() float64 {
	return math.Sqrt(t.Area) / 1000
}

// HasStatic reports whether any vertex is a fixed reference point.
func (t TriangleRecord) HasStatic() bool {
	return t.Static[0] || t.Static[1] || t.Static[2]
}

// MovingKey returns a stable key identifying the set of moving (non-static)
// buoy IDs in the triangle, used to group triangles that differ only in
// their static partner.
func (t TriangleRecord) MovingKey() string {
	ids := make([]int, 0, 3)
	for i, id := range t.BuoyIDs {
		if !t.Static[i] {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ",")
}
