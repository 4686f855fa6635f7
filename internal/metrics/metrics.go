package metrics

import (
	"sync"
	"time"
)

type endpointStats struct {
	calls           int
	errors          int
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about upstream calls and
// login handshakes. It is intentionally simple so it can be swapped for a
// real backend later; when OTel is configured the same observations are
// mirrored to exported instruments.
type Recorder struct {
	mu            sync.Mutex
	stats         map[string]*endpointStats
	loginAttempts int
	loginFailures int
	otel          *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*endpointStats),
		otel:  otel,
	}
}

// RecordAPICall increments counters for an upstream page-method call and
// stores the last observed latency.
func (r *Recorder) RecordAPICall(endpoint string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	stats := r.ensureStats(endpoint)
	r.mu.Lock()
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordAPICall(endpoint, duration, err)
	}
}

// RecordLogin tracks a login handshake attempt and its outcome.
func (r *Recorder) RecordLogin(duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.loginAttempts++
	if err != nil {
		r.loginFailures++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordLogin(duration, err)
	}
}

// RecordHTTPRequest tracks basic gateway HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// APICalls returns the total attempts recorded for an endpoint.
func (r *Recorder) APICalls(endpoint string) int {
	return r.Snapshot(endpoint).Calls
}

// APIErrors returns the total failed attempts recorded for an endpoint.
func (r *Recorder) APIErrors(endpoint string) int {
	return r.Snapshot(endpoint).Errors
}

// LoginAttempts returns the number of login handshakes started.
func (r *Recorder) LoginAttempts() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loginAttempts
}

// LoginFailures returns the number of failed login handshakes.
func (r *Recorder) LoginFailures() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loginFailures
}

// Snapshot is a copy of the current stats for an endpoint.
type Snapshot struct {
	Calls           int
	Errors          int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(endpoint string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.stats[endpoint]
	if !ok {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		LastCallLatency: stats.lastCallLatency,
	}
}

func (r *Recorder) ensureStats(endpoint string) *endpointStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[endpoint]
	if !ok {
		stats = &endpointStats{}
		r.stats[endpoint] = stats
	}
	return stats
}
