// Package costs tracks how a session's questions were answered, so the
// savings from caching and pattern matching over raw LLM calls stay
// visible. Counters live in memory only.
package costs

import (
	"fmt"
	"sync"
)

// estimatedCostPerCall is the assumed price of one LLM call in USD, used
// only for the session estimate shown to the user.
const estimatedCostPerCall = 0.002

// Tracker counts per-session query outcomes. Safe for concurrent use.
type Tracker struct {
	mu             sync.Mutex
	cacheHits      int
	patternMatches int
	llmCalls       int
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// RecordCacheHit counts a question answered from the response cache.
func (t *Tracker) RecordCacheHit() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cacheHits++
}

// RecordPatternMatch counts a question answered by the pattern table.
func (t *Tracker) RecordPatternMatch() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.patternMatches++
}

// RecordLLMCall counts a question that needed the LLM fallback.
func (t *Tracker) RecordLLMCall() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.llmCalls++
}

// Stats is a point-in-time snapshot of the session counters.
type Stats struct {
	TotalQuestions int
	CacheHits      int
	PatternMatches int
	LLMCalls       int
	EstimatedCost  float64
	// Savings is the share of questions answered without an API call,
	// formatted as a percentage.
	Savings string
}

// Snapshot returns the current counters.
func (t *Tracker) Snapshot() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	total := t.cacheHits + t.patternMatches + t.llmCalls
	stats := Stats{
		TotalQuestions: total,
		CacheHits:      t.cacheHits,
		PatternMatches: t.patternMatches,
		LLMCalls:       t.llmCalls,
		EstimatedCost:  float64(t.llmCalls) * estimatedCostPerCall,
		Savings:        "0%",
	}
	if total > 0 {
		free := total - t.llmCalls
		stats.Savings = fmt.Sprintf("%.1f%%", float64(free)/float64(total)*100)
	}
	return stats
}

// Reset zeroes every counter.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cacheHits = 0
	t.patternMatches = 0
	t.llmCalls = 0
}
