package agent

import (
	"context"
	"errors"
	"fmt"
	"scotlandyard/experiments/metrics"
	"scotlandyard/game"
	"scotlandyard/searcher"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultTimeBudget = 14500 * time.Millisecond
	DefaultMaxDepth   = searcher.DefaultMaxDepth
)

// searchAgent deepens a search session until the budget runs out and plays
// the best move of the deepest completed pass.
type searchAgent struct {
	maxDepth int
	budget   time.Duration
	options  []searcher.Option
}

func NewSearchAgent(maxDepth int, budget time.Duration, options ...searcher.Option) Agent {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if budget <= 0 {
		budget = DefaultTimeBudget
	}
	return &searchAgent{maxDepth: maxDepth, budget: budget, options: options}
}

// slot is where the worker publishes each completed depth.
type slot struct {
	mu    sync.Mutex
	move  game.Move
	depth int
}

func (s *slot) publish(move game.Move, depth int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.move, s.depth = move, depth
}

func (s *slot) read() (game.Move, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.move, s.depth
}

func (a *searchAgent) FindMove(ctx context.Context, state game.State) (game.Move, metrics.SearchMetric, error) {
	options := append([]searcher.Option{searcher.WithMetrics()}, a.options...)
	session, err := searcher.NewSession(state, a.maxDepth, options...)
	if err != nil {
		return nil, metrics.SearchMetric{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, a.budget)
	defer cancel()

	var best slot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for session.CanDeepen() {
			move, err := session.Deepen(gctx)
			if err != nil {
				return err
			}
			best.publish(move, session.Depth())
		}
		return nil
	})

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
	}()

	var searchErr error
	timedOut := false
	select {
	case searchErr = <-done:
	case <-ctx.Done():
		// The worker notices the cancelled context at its next node and exits.
		timedOut = true
	}

	metric := session.Metrics()
	move, depth := best.read()
	metric.Depth = depth
	metric.TimedOut = timedOut || errors.Is(searchErr, context.DeadlineExceeded)

	if searchErr != nil && !errors.Is(searchErr, context.DeadlineExceeded) && !errors.Is(searchErr, context.Canceled) {
		return nil, metric, searchErr
	}
	if move == nil {
		return nil, metric, fmt.Errorf("after %s: %w", a.budget, ErrNoDecision)
	}

	log.Info().
		Int("depth", depth).
		Int("max_depth", a.maxDepth).
		Bool("timed_out", metric.TimedOut).
		Dur("took", metric.Duration).
		Msgf("selected move %v", move)
	return move, metric, nil
}
