package cache

import (
	"sync"
	"time"

	"github.com/seaicedyn/driftdeform/pkg/core"
)

// ObservationCache indexes observations by report time and buoy ID so the
// enrichment step can join triangle vertices back to their source fixes
// without rescanning the ingest batch. Triangle workers read it
// concurrently.
type ObservationCache struct {
	m     sync.Mutex
	byKey map[int64]map[int]core.Observation
}

func NewObservationCache() *ObservationCache {
	return &ObservationCache{
		byKey: make(map[int64]map[int]core.Observation),
	}
}

func (c *ObservationCache) Reset() {
	c.m.Lock()
	defer c.m.Unlock()
	c.byKey = make(map[int64]map[int]core.Observation)
}

func (c *ObservationCache) Add(o core.Observation) {
	c.m.Lock()
	defer c.m.Unlock()
	key := o.Time.UnixNano()
	group, ok := c.byKey[key]
	if !ok {
		group = make(map[int]core.Observation)
		c.byKey[key] = group
	}
	group[o.BuoyID] = o
}

// AddGroups loads a whole ingest batch at once.
func (c *ObservationCache) AddGroups(groups core.ObservationGroup) {
	for _, obs := range groups {
		for _, o := range obs {
			c.Add(o)
		}
	}
}

func (c *ObservationCache) Get(ts time.Time, buoyID int) (core.Observation, bool) {
	c.m.Lock()
	defer c.m.Unlock()
	if group, ok := c.byKey[ts.UnixNano()]; ok {
		if o, ok := group[buoyID]; ok {
			return o, true
		}
	}
	return core.Observation{}, false
}

func (c *ObservationCache) Len() int {
	c.m.Lock()
	defer c.m.Unlock()
	n := 0
	for _, group := range c.byKey {
		n += len(group)
	}
	return n
}

// SafeCounter is a thread-safe counter
type SafeCounter struct {
	mu sync.Mutex
	v  int
}

func (c *SafeCounter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}

func (c *SafeCounter) Set(v int) {
	c.mu.Lock()
	c.v = v
	c.mu.Unlock()
}

func (c *SafeCounter) Inc() {
	c.mu.Lock()
	c.v++
	c.mu.Unlock()
}
