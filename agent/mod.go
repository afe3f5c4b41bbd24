package agent

import (
	"context"
	"errors"
	"scotlandyard/experiments/metrics"
	"scotlandyard/game"
)

var ErrNoDecision = errors.New("no search depth completed before the deadline")

type Agent interface {
	// FindMove returns a move for whoever is to move in state, and performance
	// metrics (if collected) from the decision process.
	FindMove(ctx context.Context, state game.State) (game.Move, metrics.SearchMetric, error)
}

// moversMoves returns the moves of the piece listed first.
func moversMoves(state game.State) []game.Move {
	moves := state.AvailableMoves()
	if len(moves) == 0 {
		return nil
	}
	end := 1
	for end < len(moves) && moves[end].Mover() == moves[0].Mover() {
		end++
	}
	return moves[:end]
}
