package core

import (
	"sync"
	"time"

	"github.com/caselens/verdict/internal/core/model"
)

// usageCounters aggregates cross-request statistics. This is the only
// mutable state shared between requests.
type usageCounters struct {
	mu            sync.Mutex
	documents     int64
	totalTime     time.Duration
	confidenceSum float64
	engineRuns    map[string]int64
}

func newUsageCounters() *usageCounters {
	return &usageCounters{engineRuns: make(map[string]int64)}
}

func (u *usageCounters) record(res *model.ConsensusResult) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.documents++
	u.totalTime += res.Stats.TotalTime
	u.confidenceSum += res.ConsensusConfidence
	for _, name := range res.EnginesUsed {
		u.engineRuns[name]++
	}
}

func (u *usageCounters) snapshot() model.ServiceStats {
	u.mu.Lock()
	defer u.mu.Unlock()

	stats := model.ServiceStats{
		DocumentsProcessed: u.documents,
		EngineUsage:        make(map[string]int64, len(u.engineRuns)),
	}
	if u.documents > 0 {
		stats.AverageProcessingTime = u.totalTime / time.Duration(u.documents)
		stats.AverageConfidence = u.confidenceSum / float64(u.documents)
	}
	for name, count := range u.engineRuns {
		stats.EngineUsage[name] = count
	}
	return stats
}
