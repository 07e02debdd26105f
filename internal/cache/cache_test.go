package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/seaicedyn/driftdeform/pkg/core"
)

func TestObservationCache(t *testing.T) {
	c := NewObservationCache()
	ts := time.Date(2023, 3, 14, 12, 0, 0, 0, time.UTC)

	if _, ok := c.Get(ts, 7); ok {
		t.Fatal("empty cache must miss")
	}

	c.Add(core.Observation{BuoyID: 7, Time: ts, Speed: 0.2})
	c.Add(core.Observation{BuoyID: 9, Time: ts, Speed: 0.1})
	c.Add(core.Observation{BuoyID: 7, Time: ts.Add(time.Hour), Speed: 0.3})

	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}

	o, ok := c.Get(ts, 7)
	if !ok || o.Speed != 0.2 {
		t.Fatalf("Get(ts, 7) = %+v, %v", o, ok)
	}
	if _, ok := c.Get(ts, 8); ok {
		t.Fatal("unknown buoy must miss")
	}
	if _, ok := c.Get(ts.Add(time.Minute), 7); ok {
		t.Fatal("unknown timestamp must miss")
	}

	c.Reset()
	if c.Len() != 0 {
		t.Fatalf("Len after Reset = %d, want 0", c.Len())
	}
}

func TestObservationCache_AddGroups(t *testing.T) {
	c := NewObservationCache()
	ts := time.Date(2023, 3, 14, 0, 0, 0, 0, time.UTC)
	groups := core.ObservationGroup{
		ts:                {{BuoyID: 1, Time: ts}, {BuoyID: 2, Time: ts}},
		ts.Add(time.Hour): {{BuoyID: 1, Time: ts.Add(time.Hour)}},
	}
	c.AddGroups(groups)
	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}
}

func TestObservationCache_ConcurrentAccess(t *testing.T) {
	c := NewObservationCache()
	ts := time.Date(2023, 3, 14, 0, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Add(core.Observation{BuoyID: id, Time: ts.Add(time.Duration(j) * time.Minute)})
				c.Get(ts, id)
			}
		}(i)
	}
	wg.Wait()
	if c.Len() != 800 {
		t.Fatalf("Len = %d, want 800", c.Len())
	}
}

func TestSafeCounter(t *testing.T) {
	var c SafeCounter
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Inc()
			}
		}()
	}
	wg.Wait()
	if c.Value() != 1000 {
		t.Fatalf("Value = %d, want 1000", c.Value())
	}
	c.Set(5)
	if c.Value() != 5 {
		t.Fatalf("Value = %d, want 5", c.Value())
	}
}
