package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines int
	Iterations int
	Expansions int
	MaxDepth   int
	Duration   time.Duration
}

type MoveMetric struct {
	Step   int
	Player int // Player ID
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int // Player ID
	Winner         int // Player ID, 0 for a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(goroutines int)
	AddIteration()
	AddExpansion()
	ObserveDepth(depth int)
	Complete() SearchMetric
}

type collector struct {
	goroutines int
	startTime  time.Time
	iterations atomic.Int32
	expansions atomic.Int32
	maxDepth   atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.iterations.Store(0)
	m.expansions.Store(0)
	m.maxDepth.Store(0)
}

func (m *collector) AddIteration() {
	m.iterations.Add(1)
}

func (m *collector) AddExpansion() {
	m.expansions.Add(1)
}

func (m *collector) ObserveDepth(depth int) {
	for {
		current := m.maxDepth.Load()
		if int32(depth) <= current || m.maxDepth.CompareAndSwap(current, int32(depth)) {
			return
		}
	}
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines: m.goroutines,
		Iterations: int(m.iterations.Load()),
		Expansions: int(m.expansions.Load()),
		MaxDepth:   int(m.maxDepth.Load()),
		Duration:   time.Since(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines int)   {}
func (m *dummyCollector) AddIteration()          {}
func (m *dummyCollector) AddExpansion()          {}
func (m *dummyCollector) ObserveDepth(depth int) {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
