package results

import (
	"sync"
	"time"

	"github.com/montanaflynn/stats"
)

type sample struct {
	timestamp  time.Time
	durationMs int64
	failed     bool
}

// StatsSnapshot is a point-in-time aggregate of upstream fetch latencies.
type StatsSnapshot struct {
	Count    int     `json:"count"`
	Failures int     `json:"failures"`
	MinMs    int64   `json:"min_ms"`
	MaxMs    int64   `json:"max_ms"`
	AvgMs    float64 `json:"avg_ms"`
	P50Ms    float64 `json:"p50_ms"`
	P95Ms    float64 `json:"p95_ms"`
	P99Ms    float64 `json:"p99_ms"`
}

// FetchStats tracks recent fetch latencies within a rolling window.
type FetchStats struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
}

func NewFetchStats(maxAge time.Duration) *FetchStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &FetchStats{
		samples: make([]sample, 0, 64),
		maxAge:  maxAge,
	}
}

// Record adds one fetch outcome.
func (s *FetchStats) Record(d time.Duration, failed bool) {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, sample{
		timestamp:  now,
		durationMs: ms,
		failed:     failed,
	})
}

func (s *FetchStats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	if len(s.samples) == 0 {
		return StatsSnapshot{}
	}

	values := make(stats.Float64Data, 0, len(s.samples))
	failures := 0
	for _, sm := range s.samples {
		values = append(values, float64(sm.durationMs))
		if sm.failed {
			failures++
		}
	}

	minMs, _ := stats.Min(values)
	maxMs, _ := stats.Max(values)
	avg, _ := stats.Mean(values)
	return StatsSnapshot{
		Count:    len(values),
		Failures: failures,
		MinMs:    int64(minMs),
		MaxMs:    int64(maxMs),
		AvgMs:    avg,
		P50Ms:    percentile(values, 50),
		P95Ms:    percentile(values, 95),
		P99Ms:    percentile(values, 99),
	}
}

func (s *FetchStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	keep := s.samples[:0]
	for _, sm := range s.samples {
		if !sm.timestamp.Before(cutoff) {
			keep = append(keep, sm)
		}
	}
	s.samples = keep
}

// percentile reports 0 where the sample is too small for pct.
func percentile(values stats.Float64Data, pct float64) float64 {
	p, err := stats.Percentile(values, pct)
	if err != nil {
		return 0
	}
	return p
}
