// pkg/core/result.go
package core

// ResultSet is a point-in-time copy of an analysis run's stored outputs.
type ResultSet struct {
	Triangles []TriangleRecord `json:"triangles"`
	Fit       *PowerLaw        `json:"fit,omitempty"`
	Writes    int              `json:"writes"`
}
