package metrics

import (
	"math"
	"sync/atomic"
	"time"
)

type AgentConfig struct {
	ID         int
	Kind       string // "search" or "random"
	Depth      int
	Goroutines int
}

type SearchMetric struct {
	Goroutines int
	Depth      int
	Duration   time.Duration
	Nodes      int
	Candidates int     // Root children tied at the best value
	Value      float64 // Value of the chosen root child
}

type MoveMetric struct {
	Step int
	Side string
	Move string
	SearchMetric
}

type GameMetric struct {
	StartingSide string
	Winner       string // "white", "black" or "draw"
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	TotalMoves   int
}

type Collector interface {
	Start(goroutines, depth int)
	AddNodes(n int)
	SetCandidates(count int, value float64)
	Complete() SearchMetric
}

type collector struct {
	goroutines int
	depth      int
	startTime  time.Time
	nodes      atomic.Int64
	candidates atomic.Int32
	value      atomic.Uint64 // math.Float64bits
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, depth int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.depth = depth
}

func (m *collector) AddNodes(n int) {
	m.nodes.Add(int64(n))
}

func (m *collector) SetCandidates(count int, value float64) {
	m.candidates.Store(int32(count))
	m.value.Store(math.Float64bits(value))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines: m.goroutines,
		Depth:      m.depth,
		Duration:   time.Since(m.startTime),
		Nodes:      int(m.nodes.Load()),
		Candidates: int(m.candidates.Load()),
		Value:      math.Float64frombits(m.value.Load()),
	}
}

type dummyCollector struct {
	startTime time.Time
}

// NewDummyCollector only measures the duration, for agents that do not search.
func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, depth int)            { m.startTime = time.Now() }
func (m *dummyCollector) AddNodes(n int)                         {}
func (m *dummyCollector) SetCandidates(count int, value float64) {}
func (m *dummyCollector) Complete() SearchMetric {
	return SearchMetric{Duration: time.Since(m.startTime)}
}
