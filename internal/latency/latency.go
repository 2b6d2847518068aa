// Package latency tracks rolling-window operation latencies.
package latency

import (
	"slices"
	"sort"
	"sync"
	"time"
)

// Operation names recorded by the HTTP handlers and batch workers.
const (
	OpDecode  = "decode"
	OpEncode  = "encode"
	OpProfile = "profile"
)

type sample struct {
	timestamp time.Time
	duration  time.Duration
}

// Snapshot is a point-in-time aggregate of latency samples.
type Snapshot struct {
	Count int     `json:"count"`
	MinMs float64 `json:"min_ms"`
	MaxMs float64 `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// Window keeps the samples of one operation younger than maxAge.
type Window struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
}

func NewWindow(maxAge time.Duration) *Window {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Window{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

func (w *Window) Record(d time.Duration) {
	if d < 0 {
		d = 0
	}
	now := time.Now()

	w.mu.Lock()
	defer w.mu.Unlock()

	w.pruneLocked(now)
	w.samples = append(w.samples, sample{timestamp: now, duration: d})
}

func (w *Window) Snapshot() Snapshot {
	now := time.Now()

	w.mu.Lock()
	defer w.mu.Unlock()

	w.pruneLocked(now)
	if len(w.samples) == 0 {
		return Snapshot{}
	}

	values := make([]float64, 0, len(w.samples))
	var sum float64
	for _, sm := range w.samples {
		ms := float64(sm.duration) / float64(time.Millisecond)
		values = append(values, ms)
		sum += ms
	}
	sort.Float64s(values)

	return Snapshot{
		Count: len(values),
		MinMs: values[0],
		MaxMs: values[len(values)-1],
		AvgMs: sum / float64(len(values)),
		P50Ms: percentile(values, 50),
		P95Ms: percentile(values, 95),
		P99Ms: percentile(values, 99),
	}
}

func (w *Window) pruneLocked(now time.Time) {
	cutoff := now.Add(-w.maxAge)
	w.samples = slices.DeleteFunc(w.samples, func(sm sample) bool {
		return sm.timestamp.Before(cutoff)
	})
}

// Tracker holds one Window per operation name.
type Tracker struct {
	mu      sync.Mutex
	windows map[string]*Window
	maxAge  time.Duration
}

func NewTracker(maxAge time.Duration) *Tracker {
	return &Tracker{
		windows: make(map[string]*Window),
		maxAge:  maxAge,
	}
}

// Record adds a sample for op.
func (t *Tracker) Record(op string, d time.Duration) {
	t.window(op).Record(d)
}

// Observe records the time elapsed since start. It is meant to be deferred.
func (t *Tracker) Observe(op string, start time.Time) {
	t.Record(op, time.Since(start))
}

// Snapshot returns a snapshot per recorded operation. The known operations
// are always present.
func (t *Tracker) Snapshot() map[string]Snapshot {
	t.mu.Lock()
	ops := make(map[string]*Window, len(t.windows))
	for op, w := range t.windows {
		ops[op] = w
	}
	t.mu.Unlock()

	out := map[string]Snapshot{
		OpDecode:  {},
		OpEncode:  {},
		OpProfile: {},
	}
	for op, w := range ops {
		out[op] = w.Snapshot()
	}
	return out
}

func (t *Tracker) window(op string) *Window {
	t.mu.Lock()
	defer t.mu.Unlock()
	w, ok := t.windows[op]
	if !ok {
		w = NewWindow(t.maxAge)
		t.windows[op] = w
	}
	return w
}

func percentile(sortedValues []float64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return sortedValues[0]
	}
	if pct >= 100 {
		return sortedValues[len(sortedValues)-1]
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return sortedValues[lower]
	}
	weight := index - float64(lower)
	lo := sortedValues[lower]
	hi := sortedValues[upper]
	return lo + ((hi - lo) * weight)
}
