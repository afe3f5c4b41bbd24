package searcher

import (
	"context"
	"errors"
	"fmt"
	"scotlandyard/experiments/metrics"
	"scotlandyard/game"
	"time"

	"github.com/rs/zerolog/log"
)

type Status int

const (
	NotStarted Status = iota
	Deepening
	Exhausted
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Deepening:
		return "deepening"
	case Exhausted:
		return "exhausted"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Session searches one root state deeper and deeper. Each call to Deepen runs
// a full alpha-beta pass one ply deeper than the last; the best move becomes
// visible only once its pass has completed. A Session is not safe for
// concurrent use.
type Session struct {
	root        game.State
	maxDepth    int
	depth       int // Completed depth
	best        game.Move
	value       Score
	fixedDepth  bool
	useKillers  bool
	killerSlots int
	killers     *KillerTable
	policy      OrderingPolicy
	evaluate    Evaluate
	metrics     metrics.Collector
}

func NewSession(root game.State, maxDepth int, options ...Option) (*Session, error) {
	if root == nil {
		return nil, errors.New("session needs a root state")
	}
	if maxDepth < 1 {
		return nil, fmt.Errorf("max depth %d: %w", maxDepth, ErrInvalidDepth)
	}
	if len(root.Winner()) > 0 {
		return nil, fmt.Errorf("root already won by %v: %w", root.Winner(), ErrNoMoves)
	}

	s := &Session{ // Default values
		root:        root,
		maxDepth:    maxDepth,
		useKillers:  true,
		killerSlots: DefaultKillerSlots,
		policy:      DefaultOrderingPolicy(),
		evaluate:    EvaluatePosition,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	if s.useKillers {
		killers, err := NewKillerTable(maxDepth, s.killerSlots)
		if err != nil {
			return nil, err
		}
		s.killers = killers
	}
	s.metrics.Start(maxDepth)
	return s, nil
}

func (s *Session) Status() Status {
	switch {
	case s.depth == 0:
		return NotStarted
	case s.depth < s.maxDepth:
		return Deepening
	}
	return Exhausted
}

func (s *Session) CanDeepen() bool {
	return s.depth < s.maxDepth
}

// Depth is the deepest completed pass, 0 before the first one.
func (s *Session) Depth() int {
	return s.depth
}

func (s *Session) MaxDepth() int {
	return s.maxDepth
}

// BestMove is the best root move of the deepest completed pass.
func (s *Session) BestMove() (game.Move, bool) {
	return s.best, s.best != nil
}

// Value is the backed-up score of the deepest completed pass.
func (s *Session) Value() Score {
	return s.value
}

// Metrics may be called from another goroutine while a pass is running.
func (s *Session) Metrics() metrics.SearchMetric {
	return s.metrics.Complete()
}

// Deepen runs the next pass and publishes its best move. If ctx is cancelled
// mid-pass the pass is abandoned and the previous result is kept.
func (s *Session) Deepen(ctx context.Context) (game.Move, error) {
	if !s.CanDeepen() {
		return nil, ErrSessionExhausted
	}
	limit := s.depth + 1
	if s.fixedDepth {
		limit = s.maxDepth
	}

	start := time.Now()
	p := &pass{session: s, ctx: ctx, limit: limit}
	value, best, err := p.alphaBeta(s.root, negInf, posInf, 0)
	if err != nil {
		return nil, fmt.Errorf("search to depth %d: %w", limit, err)
	}
	if best == nil {
		return nil, fmt.Errorf("search to depth %d: %w", limit, ErrNoMoves)
	}

	s.best, s.value, s.depth = best, value, limit
	s.metrics.CompleteDepth(limit)
	log.Debug().
		Int("depth", limit).
		Int("nodes", p.nodes).
		Int("cutoffs", p.cutoffs).
		Int64("value", int64(value)).
		Str("best", fmt.Sprint(best)).
		Dur("took", time.Since(start)).
		Msg("completed-depth")
	return best, nil
}

// pass holds the bookkeeping of one depth-limited search.
type pass struct {
	session *Session
	ctx     context.Context
	limit   int
	nodes   int
	cutoffs int
}

func (p *pass) alphaBeta(state game.State, alpha, beta Score, ply int) (Score, game.Move, error) {
	if err := p.ctx.Err(); err != nil {
		return 0, nil, err
	}
	s := p.session
	p.nodes++
	s.metrics.AddNode()

	if ply == p.limit {
		s.metrics.AddLeaf()
		score, err := s.evaluate(state)
		return score, nil, err
	}
	if score, ok := terminalScore(state.Winner()); ok {
		s.metrics.AddLeaf()
		return score, nil, nil
	}

	moves := state.AvailableMoves()
	if len(moves) == 0 {
		return 0, nil, ErrNoMoves
	}
	maximizing := moves[0].Mover().IsFugitive()

	var candidates []game.Move
	if maximizing {
		shaped, err := s.policy.FugitiveMoves(state)
		if err != nil {
			return 0, nil, err
		}
		candidates = shaped
	} else {
		candidates = leadingRun(moves)
	}
	if len(candidates) == 0 {
		return 0, nil, ErrNoMoves
	}
	candidates = s.killers.SuggestOrder(ply, candidates)

	var best game.Move
	bestValue := posInf
	if maximizing {
		bestValue = negInf
	}
	for _, m := range candidates {
		child, err := state.Advance(m)
		if err != nil {
			return 0, nil, fmt.Errorf("advance %v: %w", m, err)
		}
		alphaBefore, betaBefore := alpha, beta
		value, _, err := p.alphaBeta(child, alpha, beta, ply+1)
		if err != nil {
			return 0, nil, err
		}

		// A tie only replaces the best move when the child's value is exact,
		// i.e. strictly inside the window it was searched with. A cut-off
		// child returns a bound that merely equals alpha or beta.
		if maximizing {
			if value > bestValue || (value == bestValue && value > alphaBefore && value < betaBefore) {
				bestValue, best = value, m
			}
			alpha = max(alpha, value)
		} else {
			if value < bestValue || (value == bestValue && value < betaBefore && value > alphaBefore) {
				bestValue, best = value, m
			}
			beta = min(beta, value)
		}
		if beta <= alpha {
			p.cutoffs++
			s.metrics.AddCutoff()
			break
		}
	}

	s.killers.Record(ply, best)
	if maximizing {
		return alpha, best, nil
	}
	return beta, best, nil
}

// leadingRun returns the moves of whoever is listed first.
func leadingRun(moves []game.Move) []game.Move {
	mover := moves[0].Mover()
	end := 1
	for end < len(moves) && moves[end].Mover() == mover {
		end++
	}
	return moves[:end]
}
