package embedder

import (
	"sort"
	"sync"
	"time"
)

// sample is one embedding API call: wall time plus how many texts the
// request carried.
type sample struct {
	at    time.Time
	ms    int64
	texts int
}

// StatsSnapshot aggregates the embedding calls made within the rolling
// window. Batch shape is reported alongside latency because a call that
// embeds fifty chunks is not comparable to one that embeds a single
// query string.
type StatsSnapshot struct {
	Calls        int     `json:"calls"`
	Texts        int     `json:"texts"`
	MinMs        int64   `json:"min_ms"`
	MaxMs        int64   `json:"max_ms"`
	AvgMs        float64 `json:"avg_ms"`
	P50Ms        float64 `json:"p50_ms"`
	P95Ms        float64 `json:"p95_ms"`
	AvgBatch     float64 `json:"avg_batch"`
	AvgMsPerText float64 `json:"avg_ms_per_text"`
}

// EmbedStats tracks recent embedding calls within a rolling window, for
// the stats endpoint and operator visibility into a shared inference
// backend.
type EmbedStats struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
}

func NewEmbedStats(maxAge time.Duration) *EmbedStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &EmbedStats{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

// Record adds one call. texts is the batch size of the request.
func (s *EmbedStats) Record(durationMs int64, texts int) {
	if durationMs < 0 {
		durationMs = 0
	}
	if texts < 1 {
		texts = 1
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, sample{at: now, ms: durationMs, texts: texts})
}

func (s *EmbedStats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	if len(s.samples) == 0 {
		return StatsSnapshot{}
	}

	latencies := make([]int64, 0, len(s.samples))
	var sumMs int64
	var totalTexts int
	for _, sm := range s.samples {
		latencies = append(latencies, sm.ms)
		sumMs += sm.ms
		totalTexts += sm.texts
	}
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	calls := len(latencies)
	return StatsSnapshot{
		Calls:        calls,
		Texts:        totalTexts,
		MinMs:        latencies[0],
		MaxMs:        latencies[calls-1],
		AvgMs:        float64(sumMs) / float64(calls),
		P50Ms:        latencyPercentile(latencies, 50),
		P95Ms:        latencyPercentile(latencies, 95),
		AvgBatch:     float64(totalTexts) / float64(calls),
		AvgMsPerText: float64(sumMs) / float64(totalTexts),
	}
}

func (s *EmbedStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	writeIdx := 0
	for _, sm := range s.samples {
		if !sm.at.Before(cutoff) {
			s.samples[writeIdx] = sm
			writeIdx++
		}
	}
	s.samples = s.samples[:writeIdx]
}

func latencyPercentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
