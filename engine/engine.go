package engine

import (
	"context"
	"scotlandyard/experiments/metrics"
	"scotlandyard/game"
)

const MaxMoves = 10000

type Engine interface {
	// Run plays a game till there's a winner or a max number of moves is reached
	Run(ctx context.Context) (winner []game.Piece, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
