// internal/storage/storage.go
package storage

import "github.com/seaicedyn/driftdeform/pkg/core"

// Backend is the interface all results backends must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Result recording
	WriteTriangles(records ...core.TriangleRecord) error
	WriteFit(law core.PowerLaw) error

	// Snapshot returns a copy of the stored results.
	Snapshot() (core.ResultSet, error)
}
