// pkg/core/observation.go
package core

import "time"

// Observation is a single position fix reported by a drifting buoy, or a
// fixed geographic reference point when IsStatic is set. Observations are
// produced by ingestion and never mutated afterwards.
type Observation struct {
	BuoyID  int       `json:"buoyId"`
	Time    time.Time `json:"time"`
	Lon     float64   `json:"lon"` // degrees east
	Lat     float64   `json:"lat"` // degrees north
	X       float64   `json:"x"`   // metres, projected plane
	Y       float64   `json:"y"`   // metres, projected plane
	Speed   float64   `json:"speed"`   // metres/second
	Bearing float64   `json:"bearing"` // degrees clockwise from north

	// IsStatic marks fixed reference points mixed into triangle formation
	// to anchor deformation estimates near coasts or moorings.
	IsStatic bool `json:"isStatic"`

	// Covariates carries optional per-fix environmental fields attached by
	// ingestion (distance to shore, wind speed, ice thickness and
	// concentration). Only the enrichment step reads these.
	Covariates map[string]float64 `json:"covariates,omitempty"`
}

// ObservationGroup is the engine's input: fixes bucketed by report time.
type ObservationGroup map[time.Time][]Observation
