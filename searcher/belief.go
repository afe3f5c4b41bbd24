package searcher

import (
	"scotlandyard/game"
	"scotlandyard/graph"
	"slices"

	"github.com/samber/lo"
)

// BeliefSet is the set of nodes the fugitive could be standing on. An unknown
// set means nothing has been revealed yet; its size is the node count.
type BeliefSet struct {
	nodes   map[int]struct{}
	unknown bool
	total   int
}

func (b BeliefSet) Unknown() bool {
	return b.unknown
}

func (b BeliefSet) Len() int {
	if b.unknown {
		return b.total
	}
	return len(b.nodes)
}

func (b BeliefSet) Contains(node int) bool {
	if b.unknown {
		return node >= 0 && node < b.total
	}
	_, ok := b.nodes[node]
	return ok
}

// Nodes returns the members in ascending order, or nil when the set is unknown.
func (b BeliefSet) Nodes() []int {
	if b.unknown {
		return nil
	}
	nodes := lo.Keys(b.nodes)
	slices.Sort(nodes)
	return nodes
}

// EstimateBelief replays the log from the most recent reveal. Every later step
// moves the fugitive along edges matching the disclosed ticket, or along any
// edge for secret and double tickets. Tracker-occupied nodes are removed last.
func EstimateBelief(log []game.LogEntry, g *graph.Graph, trackers []int) BeliefSet {
	last := -1
	for i := len(log) - 1; i >= 0; i-- {
		if log[i].Revealed {
			last = i
			break
		}
	}
	if last < 0 {
		return BeliefSet{unknown: true, total: g.NodeCount()}
	}

	belief := map[int]struct{}{log[last].Location: {}}
	for _, entry := range log[last+1:] {
		belief = expand(belief, g, entry.Ticket)
	}
	for _, t := range trackers {
		delete(belief, t)
	}
	return BeliefSet{nodes: belief, total: g.NodeCount()}
}

func expand(belief map[int]struct{}, g *graph.Graph, ticket game.Ticket) map[int]struct{} {
	next := make(map[int]struct{}, len(belief)*2)
	transport, traceable := ticket.Transport()
	for node := range belief {
		var reachable []int
		if traceable {
			reachable = g.NeighboursBy(node, transport)
		} else {
			reachable = lo.Map(g.Neighbours(node), func(e graph.Edge, _ int) int { return e.To })
		}
		for _, n := range reachable {
			next[n] = struct{}{}
		}
	}
	return next
}
