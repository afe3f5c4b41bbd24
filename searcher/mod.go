package searcher

import (
	"errors"
	"math"
)

// Score is a position value from the fugitive's point of view.
type Score int64

const (
	// Terminal scores sit outside any reachable non-terminal score.
	WinScore  Score = math.MaxInt64 / 4
	LossScore Score = -WinScore

	negInf Score = math.MinInt64
	posInf Score = math.MaxInt64
)

const (
	DefaultMaxDepth           = 20
	DefaultDangerThreshold    = 10
	DefaultKillerSlots        = 2
	DefaultDoubleGateDistance = 3
)

var (
	ErrNoMoves            = errors.New("no moves available without a winner")
	ErrNoFugitiveLocation = errors.New("fugitive location neither visible nor revealed")
	ErrInvalidDepth       = errors.New("invalid search depth")
	ErrSessionExhausted   = errors.New("session already searched to max depth")
	ErrInvalidKillerSlots = errors.New("killer slots must be positive")
)
