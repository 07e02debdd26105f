// internal/storage/memory/memory.go
package memory

import (
	"sync"

	"github.com/seaicedyn/driftdeform/internal/cache"
	"github.com/seaicedyn/driftdeform/internal/queue"
	"github.com/seaicedyn/driftdeform/pkg/core"
)

// Backend stores analysis results in memory. Writes from pipeline workers
// land in a pending queue and are folded into the table on read.
type Backend struct {
	pending *queue.Queue[core.TriangleRecord]
	writes  cache.SafeCounter

	triangles []core.TriangleRecord
	fit       *core.PowerLaw
	mu        sync.RWMutex
}

// New creates a new memory backend
func New() *Backend {
	return &Backend{
		pending: queue.New[core.TriangleRecord](),
	}
}

// Init resets the backend to empty
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending.Clear()
	b.triangles = nil
	b.fit = nil
	b.writes.Set(0)
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// WriteTriangles buffers triangle records for the table.
func (b *Backend) WriteTriangles(records ...core.TriangleRecord) error {
	b.pending.Push(records...)
	b.writes.Inc()
	return nil
}

// WriteFit records the power-law fit, replacing any previous one.
func (b *Backend) WriteFit(law core.PowerLaw) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.fit = &law
	b.writes.Inc()
	return nil
}

// Snapshot folds pending writes into the table and returns a copy.
func (b *Backend) Snapshot() (core.ResultSet, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.triangles = append(b.triangles, b.pending.Drain()...)

	snap := core.ResultSet{
		Triangles: make([]core.TriangleRecord, len(b.triangles)),
		Writes:    b.writes.Value(),
	}
	copy(snap.Triangles, b.triangles)
	if b.fit != nil {
		fit := *b.fit
		snap.Fit = &fit
	}
	return snap, nil
}
