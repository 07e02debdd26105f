// Package run tracks the identity and lifecycle of one analysis run.
package run

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Context holds the current run's identity and progress state.
type Context struct {
	mu        sync.RWMutex
	id        string
	label     string
	startedAt time.Time
	stage     string
}

// NewContext creates a run context with a fresh run ID.
func NewContext(label string) *Context {
	return &Context{
		id:        uuid.NewString(),
		label:     label,
		startedAt: time.Now().UTC(),
		stage:     "created",
	}
}

// ID returns the run's unique identifier.
func (c *Context) ID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.id
}

// StartedAt returns the run's start time.
func (c *Context) StartedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.startedAt
}

// SetStage records the pipeline stage the run is currently in.
func (c *Context) SetStage(stage string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stage = stage
}

// Stage returns the current pipeline stage.
func (c *Context) Stage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stage
}

// LogAttrs returns the run's identity as log attributes, suitable as a
// logging context provider.
func (c *Context) LogAttrs() []slog.Attr {
	c.mu.RLock()
	defer c.mu.RUnlock()
	attrs := []slog.Attr{
		slog.String("runId", c.id),
		slog.String("stage", c.stage),
	}
	if c.label != "" {
		attrs = append(attrs, slog.String("run", c.label))
	}
	return attrs
}
