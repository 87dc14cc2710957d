package core

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	Method    string  `json:"method"`
	URI       string  `json:"uri"`
	Millis    float64 `json:"response_time"`
	Timestamp string  `json:"timestamp"`
}

type MethodStats struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

type StatsSnapshot struct {
	TotalRequests int                    `json:"total_requests"`
	Average       float64                `json:"average_response_time"`
	Median        float64                `json:"median_response_time"`
	Min           float64                `json:"min_response_time"`
	Max           float64                `json:"max_response_time"`
	MethodStats   map[string]MethodStats `json:"method_stats"`
}

// StatsTracker records one timing sample per handled request.
type StatsTracker struct {
	lock    sync.Mutex
	samples []sample
	now     func() time.Time
}

func NewStatsTracker() *StatsTracker {
	return &StatsTracker{now: time.Now}
}

func (t *StatsTracker) Record(method, uri string, elapsed time.Duration) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.samples = append(t.samples, sample{
		Method:    method,
		URI:       uri,
		Millis:    float64(elapsed.Microseconds()) / 1000,
		Timestamp: t.now().Format(time.RFC3339),
	})
}

func (t *StatsTracker) Snapshot() (StatsSnapshot, bool) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if len(t.samples) == 0 {
		return StatsSnapshot{}, false
	}

	times := make([]float64, 0, len(t.samples))
	byMethod := map[string][]float64{}

	for _, s := range t.samples {
		times = append(times, s.Millis)
		byMethod[s.Method] = append(byMethod[s.Method], s.Millis)
	}

	snap := StatsSnapshot{
		TotalRequests: len(times),
		Average:       mean(times),
		Median:        median(times),
		Min:           minOf(times),
		Max:           maxOf(times),
		MethodStats:   map[string]MethodStats{},
	}

	for method, ts := range byMethod {
		snap.MethodStats[method] = MethodStats{
			Count:   len(ts),
			Average: mean(ts),
		}
	}

	return snap, true
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func median(xs []float64) float64 {
	sorted := append([]float64{}, xs...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}
