// Package metrics tracks how long each run stage takes and how often it
// succeeds. Aggregates are exposed through expvar, so anything already
// scraping /debug/vars picks them up without extra wiring.
package metrics

import (
	"expvar"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var publishSeq uint64

// Recorder accumulates stage timings and outcome counts for the lifetime
// of the process. One recorder backs one expvar export; the runner feeds
// it the stages it times (template fetch, staging, execution, upload).
type Recorder struct {
	name      string
	mu        sync.Mutex
	durations map[string]float64
	results   map[string]map[string]int64
}

// Snapshot is what one expvar read returns.
type Snapshot struct {
	DurationsMS map[string]float64          `json:"durations_ms_total"`
	Results     map[string]map[string]int64 `json:"results_total"`
	RecordedAt  time.Time                   `json:"recorded_at"`
}

// NewRecorder builds a recorder and registers it with expvar under name.
// expvar panics on duplicate names, so an empty name draws a fresh
// generated one; tests rely on that.
func NewRecorder(name string) *Recorder {
	if name == "" {
		id := atomic.AddUint64(&publishSeq, 1)
		name = fmt.Sprintf("pipestage_run_metrics_%d", id)
	}
	rec := &Recorder{
		name:      name,
		durations: make(map[string]float64),
		results:   make(map[string]map[string]int64),
	}
	expvar.Publish(name, expvar.Func(func() any {
		return rec.Snapshot()
	}))
	return rec
}

// Name returns the expvar export name.
func (r *Recorder) Name() string { return r.name }

// Observe folds one stage outcome into the totals. It only touches
// in-process state and never blocks on IO, so it takes no context. Empty
// stage names are ignored.
func (r *Recorder) Observe(stage string, success bool, duration time.Duration) {
	if stage == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	r.mu.Lock()
	r.durations[stage] += float64(duration) / float64(time.Millisecond)
	if _, ok := r.results[stage]; !ok {
		r.results[stage] = make(map[string]int64, 2)
	}
	r.results[stage][status]++
	r.mu.Unlock()
}

// Snapshot copies the current totals. The copy is deep; callers may hold
// it across further Observe calls.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	durations := make(map[string]float64, len(r.durations))
	for stage, total := range r.durations {
		durations[stage] = total
	}
	results := make(map[string]map[string]int64, len(r.results))
	for stage, counts := range r.results {
		cpy := make(map[string]int64, len(counts))
		for status, n := range counts {
			cpy[status] = n
		}
		results[stage] = cpy
	}
	return Snapshot{DurationsMS: durations, Results: results, RecordedAt: time.Now().UTC()}
}
