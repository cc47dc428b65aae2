package costs

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotEmpty(t *testing.T) {
	tracker := NewTracker()

	stats := tracker.Snapshot()
	assert.Zero(t, stats.TotalQuestions)
	assert.Equal(t, "0%", stats.Savings)
	assert.Zero(t, stats.EstimatedCost)
}

func TestSnapshotCounts(t *testing.T) {
	tracker := NewTracker()

	tracker.RecordCacheHit()
	tracker.RecordPatternMatch()
	tracker.RecordPatternMatch()
	tracker.RecordLLMCall()

	stats := tracker.Snapshot()
	assert.Equal(t, 4, stats.TotalQuestions)
	assert.Equal(t, 1, stats.CacheHits)
	assert.Equal(t, 2, stats.PatternMatches)
	assert.Equal(t, 1, stats.LLMCalls)
	assert.Equal(t, "75.0%", stats.Savings)
	assert.InDelta(t, 0.002, stats.EstimatedCost, 1e-9)
}

func TestReset(t *testing.T) {
	tracker := NewTracker()
	tracker.RecordLLMCall()
	tracker.Reset()

	stats := tracker.Snapshot()
	assert.Zero(t, stats.TotalQuestions)
	assert.Zero(t, stats.LLMCalls)
}

func TestConcurrentRecording(t *testing.T) {
	tracker := NewTracker()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.RecordCacheHit()
			tracker.RecordPatternMatch()
		}()
	}
	wg.Wait()

	stats := tracker.Snapshot()
	assert.Equal(t, 100, stats.TotalQuestions)
	assert.Equal(t, 50, stats.CacheHits)
}
