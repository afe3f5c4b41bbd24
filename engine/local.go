package engine

import (
	"context"
	"errors"
	"fmt"
	"scotlandyard/agent"
	"scotlandyard/experiments/metrics"
	"scotlandyard/game"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Local runs a game in-process, asking the fugitive agent for fugitive moves
// and the tracker agent for every tracker move.
type Local struct {
	Scenario string
	State    game.State
	Fugitive agent.Agent
	Trackers agent.Agent
	MaxMoves int
}

func LocalEngine(scenario string, board *game.Board, fugitive, trackers agent.Agent, maxMoves int) *Local {
	if maxMoves <= 0 || maxMoves > MaxMoves {
		maxMoves = MaxMoves
	}
	return &Local{
		Scenario: scenario,
		State:    board,
		Fugitive: fugitive,
		Trackers: trackers,
		MaxMoves: maxMoves,
	}
}

var _ Engine = (*Local)(nil)

// Run executes the entire game loop until a winner is found.
func (e *Local) Run(ctx context.Context) ([]game.Piece, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{Scenario: e.Scenario, StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	step := 1
	for len(e.State.Winner()) == 0 && step <= e.MaxMoves {
		if err := ctx.Err(); err != nil {
			return nil, gameMetric, moveMetrics, err
		}
		moves := e.State.AvailableMoves()
		if len(moves) == 0 {
			return nil, gameMetric, moveMetrics, fmt.Errorf("step %d: no moves and no winner", step)
		}
		mover := moves[0].Mover()

		a := e.Trackers
		if mover.IsFugitive() {
			a = e.Fugitive
		}
		move, metric, err := a.FindMove(ctx, e.State)
		if err != nil {
			if !errors.Is(err, agent.ErrNoDecision) {
				return nil, gameMetric, moveMetrics, fmt.Errorf("step %d %s: %w", step, mover, err)
			}
			log.Warn().Err(err).Msgf("%s has no decision at step %d, playing first legal move", mover, step)
			move = moves[0]
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       string(mover),
			SearchMetric: metric,
		})

		next, err := e.State.Advance(move)
		if errors.Is(err, game.ErrIllegalMove) {
			log.Warn().Err(err).Msgf("%s returned an illegal move at step %d, playing first legal move", mover, step)
			next, err = e.State.Advance(moves[0])
		}
		if err != nil {
			return nil, gameMetric, moveMetrics, fmt.Errorf("step %d: %w", step, err)
		}
		log.Debug().Int("step", step).Str("player", string(mover)).Msgf("played %v", move)

		e.State = next
		step++
	}

	winner := e.State.Winner()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = step - 1
	gameMetric.Winner = winnerName(winner)

	if len(winner) > 0 {
		log.Info().Msgf("game over after %d moves, winner: %s", gameMetric.TotalMoves, gameMetric.Winner)
	} else {
		log.Info().Msgf("stopped after %d moves (no winner yet)", gameMetric.TotalMoves)
	}
	return winner, gameMetric, moveMetrics, nil
}

func winnerName(winner []game.Piece) string {
	if len(winner) == 0 {
		return ""
	}
	if winner[0].IsFugitive() {
		return "fugitive"
	}
	names := make([]string, len(winner))
	for i, p := range winner {
		names[i] = string(p)
	}
	return "trackers:" + strings.Join(names, "+")
}
