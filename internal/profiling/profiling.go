// Package profiling records how much CPU time named sections of a frame take.
package profiling

import (
	"cmp"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Recorder accumulates durations per section name for the current frame.
// The zero value is ready to use.
type Recorder struct {
	mu     sync.Mutex
	totals map[string]time.Duration
}

func NewRecorder() *Recorder {
	return &Recorder{totals: make(map[string]time.Duration)}
}

// Track returns a stop function that records the elapsed time under name.
// Usage: defer rec.Track("subsystem.Operation")()
// A nil recorder tracks nothing.
func (r *Recorder) Track(name string) func() {
	if r == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		d := time.Since(start)
		r.mu.Lock()
		if r.totals == nil {
			r.totals = make(map[string]time.Duration)
		}
		r.totals[name] += d
		r.mu.Unlock()
	}
}

// ResetFrame clears the totals. Call at the start of each frame.
func (r *Recorder) ResetFrame() {
	r.mu.Lock()
	clear(r.totals)
	r.mu.Unlock()
}

// Snapshot returns a copy of the current totals.
func (r *Recorder) Snapshot() map[string]time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.totals)
}

// SumWithPrefix adds up every section whose name starts with prefix.
func (r *Recorder) SumWithPrefix(prefix string) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum time.Duration
	for k, v := range r.totals {
		if strings.HasPrefix(k, prefix) {
			sum += v
		}
	}
	return sum
}

// TopN formats the n slowest sections of the frame.
// Example: "renderer.Render:4.2ms, world.Update:2.1ms"
func (r *Recorder) TopN(n int) string {
	type pair struct {
		name string
		dur  time.Duration
	}

	ss := r.Snapshot()
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, dur: v})
	}
	slices.SortFunc(list, func(a, b pair) int {
		if c := cmp.Compare(b.dur, a.dur); c != 0 {
			return c
		}
		return strings.Compare(a.name, b.name)
	})

	n = min(n, len(list))
	parts := make([]string, 0, n)
	for _, p := range list[:n] {
		parts = append(parts, p.name+":"+formatMs(p.dur))
	}
	return strings.Join(parts, ", ")
}

// formatMs keeps one decimal and drops a trailing ".0".
func formatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000
	return strconv.FormatFloat(math.Round(ms*10)/10, 'f', -1, 64) + "ms"
}
