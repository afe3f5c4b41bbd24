package searcher

import (
	"fmt"
	"scotlandyard/game"
	"slices"
)

// KillerTable remembers, per search depth, the moves that were recently best.
// A nil table orders nothing and records nothing.
type KillerTable struct {
	slots   int
	entries [][]game.Move // Front is the most recent
}

func NewKillerTable(maxDepth, slots int) (*KillerTable, error) {
	if maxDepth < 0 {
		return nil, fmt.Errorf("killer table for depth %d: %w", maxDepth, ErrInvalidDepth)
	}
	if slots <= 0 {
		return nil, fmt.Errorf("killer table with %d slots: %w", slots, ErrInvalidKillerSlots)
	}
	return &KillerTable{
		slots:   slots,
		entries: make([][]game.Move, maxDepth+1),
	}, nil
}

// Killers returns the recorded moves at depth, most recent first.
func (k *KillerTable) Killers(depth int) []game.Move {
	if !k.covers(depth) {
		return nil
	}
	return slices.Clone(k.entries[depth])
}

// Record moves m to the front of depth's entry, dropping the oldest killer
// when the entry is full.
func (k *KillerTable) Record(depth int, m game.Move) {
	if m == nil || !k.covers(depth) {
		return
	}
	entry := k.entries[depth]
	if len(entry) > 0 && entry[0] == m {
		return
	}
	if i := slices.Index(entry, m); i >= 0 {
		entry = slices.Delete(entry, i, i+1)
	}
	entry = slices.Insert(entry, 0, m)
	if len(entry) > k.slots {
		entry = entry[:k.slots]
	}
	k.entries[depth] = entry
}

// SuggestOrder returns moves with the killers at depth pulled to the front.
// The result is always a permutation of moves.
func (k *KillerTable) SuggestOrder(depth int, moves []game.Move) []game.Move {
	if !k.covers(depth) || len(k.entries[depth]) == 0 {
		return moves
	}
	ordered := make([]game.Move, 0, len(moves))
	taken := make([]bool, len(moves))
	for _, killer := range k.entries[depth] {
		if i := slices.Index(moves, killer); i >= 0 {
			ordered = append(ordered, moves[i])
			taken[i] = true
		}
	}
	for i, m := range moves {
		if !taken[i] {
			ordered = append(ordered, m)
		}
	}
	return ordered
}

func (k *KillerTable) covers(depth int) bool {
	return k != nil && depth >= 0 && depth < len(k.entries)
}
