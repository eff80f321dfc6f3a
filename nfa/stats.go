package nfa

import "sync/atomic"

// Stats collects engine counters across searches. All counters are updated
// atomically, so one Stats may be shared by VMs running on multiple
// goroutines. Collection is off unless a Stats is attached to the VM.
type Stats struct {
	linesProcessed uint64
	totalSteps     uint64
	statesVisited  uint64
	maxActive      uint64
}

// RecordLine counts one searched line. The VM records simulated lines
// itself; callers that answer from a prefilter without entering the VM
// record theirs here so the summary still reflects every line seen.
func (s *Stats) RecordLine() {
	atomic.AddUint64(&s.linesProcessed, 1)
}

func (s *Stats) addStep(active int) {
	atomic.AddUint64(&s.totalSteps, 1)
	atomic.AddUint64(&s.statesVisited, uint64(active))
}

func (s *Stats) observeActive(active int) {
	n := uint64(active)
	for {
		cur := atomic.LoadUint64(&s.maxActive)
		if n <= cur || atomic.CompareAndSwapUint64(&s.maxActive, cur, n) {
			return
		}
	}
}

// StatsSnapshot is a point-in-time copy of the counters.
type StatsSnapshot struct {
	LinesProcessed uint64
	TotalSteps     uint64
	StatesVisited  uint64
	MaxActive      uint64
}

// Snapshot returns a consistent-enough copy of the counters for reporting.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		LinesProcessed: atomic.LoadUint64(&s.linesProcessed),
		TotalSteps:     atomic.LoadUint64(&s.totalSteps),
		StatesVisited:  atomic.LoadUint64(&s.statesVisited),
		MaxActive:      atomic.LoadUint64(&s.maxActive),
	}
}
