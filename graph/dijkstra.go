package graph

import (
	"container/heap"
	"fmt"
	"math"
)

// Unreachable is the distance of a node with no path from the source.
const Unreachable = math.MaxInt32

// NoNode is the predecessor of the source and of unreachable nodes.
const NoNode = -1

// DistanceTable holds single-source shortest distances and predecessors.
type DistanceTable struct {
	source      int
	distance    []int
	predecessor []int
}

type entry struct {
	node     int
	priority int
	index    int
}

type priorityQueue []*entry

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	return pq[i].priority < pq[j].priority
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	e := x.(*entry)
	e.index = len(*pq)
	*pq = append(*pq, e)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*pq = old[:n-1]
	return e
}

// ShortestPaths runs Dijkstra from source over g. The queue and bookkeeping
// are local to the call so tables can be built concurrently on one graph.
func ShortestPaths(g *Graph, source int) (*DistanceTable, error) {
	if !g.Contains(source) {
		return nil, fmt.Errorf("shortest paths from %d: %w", source, ErrNodeOutOfRange)
	}

	n := g.NodeCount()
	t := &DistanceTable{
		source:      source,
		distance:    make([]int, n),
		predecessor: make([]int, n),
	}
	for i := range t.distance {
		t.distance[i] = Unreachable
		t.predecessor[i] = NoNode
	}
	t.distance[source] = 0

	queued := make([]*entry, n)
	visited := make([]bool, n)
	pq := &priorityQueue{}
	queued[source] = &entry{node: source}
	heap.Push(pq, queued[source])

	for pq.Len() > 0 {
		current := heap.Pop(pq).(*entry)
		queued[current.node] = nil
		visited[current.node] = true

		for _, e := range g.Neighbours(current.node) {
			if visited[e.To] {
				continue
			}
			tentative := saturatingAdd(current.priority, e.Cost())
			if tentative >= t.distance[e.To] {
				continue
			}
			t.distance[e.To] = tentative
			t.predecessor[e.To] = current.node
			if q := queued[e.To]; q != nil {
				q.priority = tentative
				heap.Fix(pq, q.index)
			} else {
				queued[e.To] = &entry{node: e.To, priority: tentative}
				heap.Push(pq, queued[e.To])
			}
		}
	}
	return t, nil
}

func saturatingAdd(a, b int) int {
	if a >= Unreachable-b {
		return Unreachable
	}
	return a + b
}

func (t *DistanceTable) Source() int {
	return t.source
}

// Distance returns the shortest distance to node, or Unreachable for nodes
// without a path or outside the graph.
func (t *DistanceTable) Distance(node int) int {
	if node < 0 || node >= len(t.distance) {
		return Unreachable
	}
	return t.distance[node]
}

func (t *DistanceTable) Predecessor(node int) int {
	if node < 0 || node >= len(t.predecessor) {
		return NoNode
	}
	return t.predecessor[node]
}

// Path returns the nodes from the source to node inclusive, or nil when node
// is unreachable.
func (t *DistanceTable) Path(node int) []int {
	if t.Distance(node) == Unreachable {
		return nil
	}
	var path []int
	for n := node; n != NoNode; n = t.predecessor[n] {
		path = append(path, n)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
