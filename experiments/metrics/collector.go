package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	MaxDepth int
	Depth    int // Deepest completed pass
	Duration time.Duration
	Nodes    int
	Leaves   int
	Cutoffs  int
	TimedOut bool
}

type MoveMetric struct {
	Step   int
	Player string
	SearchMetric
}

type GameMetric struct {
	Scenario   string
	Winner     string
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

// Collector gathers counters for one move decision. Counters may be read by
// another goroutine while the search is still running.
type Collector interface {
	Start(maxDepth int)
	AddNode()
	AddLeaf()
	AddCutoff()
	CompleteDepth(depth int)
	Complete() SearchMetric
}

type collector struct {
	maxDepth  int
	startTime time.Time
	nodes     atomic.Int64
	leaves    atomic.Int64
	cutoffs   atomic.Int64
	depth     atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(maxDepth int) {
	m.startTime = time.Now()
	m.maxDepth = maxDepth
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.cutoffs.Store(0)
	m.depth.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) CompleteDepth(depth int) {
	m.depth.Store(int32(depth))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		MaxDepth: m.maxDepth,
		Depth:    int(m.depth.Load()),
		Duration: time.Since(m.startTime),
		Nodes:    int(m.nodes.Load()),
		Leaves:   int(m.leaves.Load()),
		Cutoffs:  int(m.cutoffs.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(maxDepth int)      {}
func (m *dummyCollector) AddNode()                {}
func (m *dummyCollector) AddLeaf()                {}
func (m *dummyCollector) AddCutoff()              {}
func (m *dummyCollector) CompleteDepth(depth int) {}
func (m *dummyCollector) Complete() SearchMetric  { return SearchMetric{} }
