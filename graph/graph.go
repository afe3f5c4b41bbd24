package graph

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNodeOutOfRange = errors.New("node out of range")

// Transport is a mode of travel along an edge.
type Transport uint8

const (
	Taxi Transport = iota
	Bus
	Underground
	Ferry
)

var transportNames = []string{"taxi", "bus", "underground", "ferry"}

func (t Transport) String() string {
	if int(t) < len(transportNames) {
		return transportNames[t]
	}
	return fmt.Sprintf("transport(%d)", uint8(t))
}

// ParseTransport maps a lower-case transport name to its Transport.
func ParseTransport(name string) (Transport, error) {
	for i, n := range transportNames {
		if strings.EqualFold(n, name) {
			return Transport(i), nil
		}
	}
	return 0, fmt.Errorf("unknown transport %q", name)
}

// TransportSet is a bitmask of the transports offered by an edge.
type TransportSet uint8

func NewTransportSet(ts ...Transport) TransportSet {
	var s TransportSet
	for _, t := range ts {
		s |= 1 << t
	}
	return s
}

func (s TransportSet) Has(t Transport) bool {
	return s&(1<<t) != 0
}

// HasOtherThan reports whether the set offers any transport apart from t.
func (s TransportSet) HasOtherThan(t Transport) bool {
	return s&^(1<<t) != 0
}

func (s TransportSet) Transports() []Transport {
	var ts []Transport
	for t := Taxi; t <= Ferry; t++ {
		if s.Has(t) {
			ts = append(ts, t)
		}
	}
	return ts
}

// Edge is one endpoint's view of an undirected edge. Weight is non-zero only
// when the edge is labelled with a literal integer instead of transports.
type Edge struct {
	To         int
	Transports TransportSet
	Weight     int
}

// Cost is the shortest-path cost of traversing the edge.
func (e Edge) Cost() int {
	if e.Weight > 0 {
		return e.Weight
	}
	return 1
}

// Graph is an immutable undirected graph over the dense node range [0, n).
type Graph struct {
	adjacency [][]Edge
}

func (g *Graph) NodeCount() int {
	return len(g.adjacency)
}

func (g *Graph) Contains(node int) bool {
	return node >= 0 && node < len(g.adjacency)
}

// Neighbours returns the edges incident to node. The slice must not be modified.
func (g *Graph) Neighbours(node int) []Edge {
	if !g.Contains(node) {
		return nil
	}
	return g.adjacency[node]
}

// NeighboursBy returns the nodes adjacent to node through transport t.
func (g *Graph) NeighboursBy(node int, t Transport) []int {
	var nodes []int
	for _, e := range g.Neighbours(node) {
		if e.Transports.Has(t) {
			nodes = append(nodes, e.To)
		}
	}
	return nodes
}

// EdgeBetween returns the edge from u to v, if any.
func (g *Graph) EdgeBetween(u, v int) (Edge, bool) {
	for _, e := range g.Neighbours(u) {
		if e.To == v {
			return e, true
		}
	}
	return Edge{}, false
}

// Builder accumulates edges before freezing them into a Graph. Adding an edge
// between an already connected pair merges the transports.
type Builder struct {
	adjacency [][]Edge
	err       error
}

func NewBuilder(nodeCount int) *Builder {
	return &Builder{adjacency: make([][]Edge, nodeCount)}
}

func (b *Builder) AddEdge(u, v int, ts ...Transport) *Builder {
	if len(ts) == 0 {
		b.fail(fmt.Errorf("edge %d-%d has no transport", u, v))
		return b
	}
	b.put(u, v, NewTransportSet(ts...), 0)
	return b
}

func (b *Builder) AddWeightedEdge(u, v, weight int) *Builder {
	if weight <= 0 {
		b.fail(fmt.Errorf("edge %d-%d has non-positive weight %d", u, v, weight))
		return b
	}
	b.put(u, v, 0, weight)
	return b
}

func (b *Builder) put(u, v int, ts TransportSet, weight int) {
	for _, n := range []int{u, v} {
		if n < 0 || n >= len(b.adjacency) {
			b.fail(fmt.Errorf("edge %d-%d: %w: %d not in [0, %d)", u, v, ErrNodeOutOfRange, n, len(b.adjacency)))
			return
		}
	}
	b.merge(u, v, ts, weight)
	if u != v {
		b.merge(v, u, ts, weight)
	}
}

func (b *Builder) merge(from, to int, ts TransportSet, weight int) {
	for i, e := range b.adjacency[from] {
		if e.To == to {
			b.adjacency[from][i].Transports |= ts
			if weight > 0 {
				b.adjacency[from][i].Weight = weight
			}
			return
		}
	}
	b.adjacency[from] = append(b.adjacency[from], Edge{To: to, Transports: ts, Weight: weight})
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Build returns the frozen graph or the first error met while adding edges.
func (b *Builder) Build() (*Graph, error) {
	if b.err != nil {
		return nil, b.err
	}
	adjacency := make([][]Edge, len(b.adjacency))
	for i, edges := range b.adjacency {
		adjacency[i] = append([]Edge(nil), edges...)
	}
	return &Graph{adjacency: adjacency}, nil
}

// MustBuild is Build for fixtures known to be valid.
func (b *Builder) MustBuild() *Graph {
	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}
