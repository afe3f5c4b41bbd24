package agent

import (
	"context"
	"fmt"
	"scotlandyard/experiments/metrics"
	"scotlandyard/game"
	"scotlandyard/graph"
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	mu     sync.Mutex
	random *rand.Rand
}

// NewRandomAgent plays a uniformly random move for whoever is to move.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{random: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(_ context.Context, state game.State) (game.Move, metrics.SearchMetric, error) {
	start := time.Now()
	moves := moversMoves(state)
	if len(moves) == 0 {
		return nil, metrics.SearchMetric{}, ErrNoDecision
	}
	a.mu.Lock()
	move := moves[a.random.Intn(len(moves))]
	a.mu.Unlock()
	return move, metrics.SearchMetric{Duration: time.Since(start)}, nil
}

// chaserAgent moves each tracker along a shortest path towards the last
// location the fugitive was seen at. Before the first reveal it plays randomly.
type chaserAgent struct {
	fallback Agent
}

func NewChaserAgent(seed uint64) Agent {
	return &chaserAgent{fallback: NewRandomAgent(seed)}
}

func (a *chaserAgent) FindMove(ctx context.Context, state game.State) (game.Move, metrics.SearchMetric, error) {
	start := time.Now()
	target, ok := game.LastRevealed(state.TravelLog())
	if !ok {
		return a.fallback.FindMove(ctx, state)
	}
	moves := moversMoves(state)
	if len(moves) == 0 {
		return nil, metrics.SearchMetric{}, ErrNoDecision
	}

	table, err := graph.ShortestPaths(state.Setup().Graph, target)
	if err != nil {
		return nil, metrics.SearchMetric{}, fmt.Errorf("chase %d: %w", target, err)
	}
	best, bestDistance := moves[0], graph.Unreachable+1
	for _, m := range moves {
		if d := table.Distance(m.FinalDestination()); d < bestDistance {
			best, bestDistance = m, d
		}
	}
	return best, metrics.SearchMetric{Duration: time.Since(start)}, nil
}
