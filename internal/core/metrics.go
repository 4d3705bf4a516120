package core

import (
	"expvar"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Operation labels used by metrics recorders.
const (
	OpSearch      = "search"
	OpGetByID     = "get_by_id"
	OpLoadCatalog = "load_catalog"
)

// MetricsRecorder observes engine operations. Implementations must be safe
// for concurrent use.
type MetricsRecorder interface {
	// Record reports one completed operation with its duration and outcome.
	Record(op string, d time.Duration, err error)
}

// NopMetrics discards all observations.
type NopMetrics struct{}

// Record implements MetricsRecorder.
func (NopMetrics) Record(string, time.Duration, error) {}

var expvarSeq uint64

// ExpvarMetricsRecorder publishes aggregate timing and result counters via
// expvar, for deployments that prefer process-local metrics without external
// dependencies. Totals are kept in milliseconds per operation alongside
// success/error counters.
type ExpvarMetricsRecorder struct {
	name      string
	mu        sync.Mutex
	durations map[string]float64
	results   map[string]map[string]int64
}

// ExpvarMetricsSnapshot captures a read-only view of the recorded metrics.
type ExpvarMetricsSnapshot struct {
	DurationsMS map[string]float64          `json:"durations_ms_total"`
	Results     map[string]map[string]int64 `json:"results_total"`
	RecordedAt  time.Time                   `json:"recorded_at"`
}

// NewExpvarMetricsRecorder constructs an expvar-backed recorder and publishes
// it under the supplied name. When name is empty, a unique identifier is
// generated.
func NewExpvarMetricsRecorder(name string) *ExpvarMetricsRecorder {
	if name == "" {
		id := atomic.AddUint64(&expvarSeq, 1)
		name = fmt.Sprintf("directory_engine_metrics_%d", id)
	}
	rec := &ExpvarMetricsRecorder{
		name:      name,
		durations: make(map[string]float64),
		results:   make(map[string]map[string]int64),
	}
	expvar.Publish(name, expvar.Func(func() any {
		return rec.Snapshot()
	}))
	return rec
}

// Name returns the expvar export name associated with the recorder.
func (r *ExpvarMetricsRecorder) Name() string { return r.name }

// Record implements MetricsRecorder.
func (r *ExpvarMetricsRecorder) Record(op string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.durations[op] += float64(d.Milliseconds())
	if r.results[op] == nil {
		r.results[op] = make(map[string]int64)
	}
	r.results[op][status]++
}

// Snapshot returns an immutable copy of the aggregated metrics.
func (r *ExpvarMetricsRecorder) Snapshot() ExpvarMetricsSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	durations := make(map[string]float64, len(r.durations))
	for op, total := range r.durations {
		durations[op] = total
	}
	results := make(map[string]map[string]int64, len(r.results))
	for op, statusCounts := range r.results {
		cpy := make(map[string]int64, len(statusCounts))
		for status, count := range statusCounts {
			cpy[status] = count
		}
		results[op] = cpy
	}
	return ExpvarMetricsSnapshot{
		DurationsMS: durations,
		Results:     results,
		RecordedAt:  time.Now().UTC(),
	}
}
