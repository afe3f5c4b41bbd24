package searcher

import (
	"scotlandyard/game"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func single(source, destination int) game.Move {
	return game.SingleMove{Piece: game.Fugitive, Source: source, Ticket: game.TaxiTicket, Destination: destination}
}

func TestKillerTableRecord(t *testing.T) {
	a, b, c := single(0, 1), single(0, 2), single(0, 3)

	t.Run("most recent killer is at the front", func(t *testing.T) {
		k, err := NewKillerTable(3, 2)
		require.NoError(t, err)

		k.Record(1, a)
		k.Record(1, b)
		require.Equal(t, []game.Move{b, a}, k.Killers(1))

		k.Record(1, c)
		require.Equal(t, []game.Move{c, b}, k.Killers(1), "Oldest killer should be dropped")
		require.Empty(t, k.Killers(0), "Other depths are untouched")
	})

	t.Run("recording the front killer is a no-op", func(t *testing.T) {
		k, err := NewKillerTable(3, 2)
		require.NoError(t, err)

		k.Record(2, a)
		k.Record(2, b)
		k.Record(2, b)
		require.Equal(t, []game.Move{b, a}, k.Killers(2))
	})

	t.Run("a repeated killer moves to the front without duplicates", func(t *testing.T) {
		k, err := NewKillerTable(3, 3)
		require.NoError(t, err)

		k.Record(0, a)
		k.Record(0, b)
		k.Record(0, c)
		k.Record(0, a)
		require.Equal(t, []game.Move{a, c, b}, k.Killers(0))
	})

	t.Run("equality covers every field", func(t *testing.T) {
		k, err := NewKillerTable(1, 2)
		require.NoError(t, err)

		bus := game.SingleMove{Piece: game.Fugitive, Source: 0, Ticket: game.BusTicket, Destination: 1}
		k.Record(0, a)
		k.Record(0, bus)
		require.Equal(t, []game.Move{bus, a}, k.Killers(0), "Moves differing only by ticket are distinct")
	})

	t.Run("out of range depths are ignored", func(t *testing.T) {
		k, err := NewKillerTable(1, 2)
		require.NoError(t, err)

		k.Record(5, a)
		k.Record(-1, a)
		require.Nil(t, k.Killers(5))
		require.Equal(t, []game.Move{b}, k.SuggestOrder(5, []game.Move{b}))
	})

	t.Run("construction is validated", func(t *testing.T) {
		_, err := NewKillerTable(-1, 2)
		require.ErrorIs(t, err, ErrInvalidDepth)
		_, err = NewKillerTable(3, 0)
		require.ErrorIs(t, err, ErrInvalidKillerSlots)
	})

	t.Run("nil table", func(t *testing.T) {
		var k *KillerTable
		k.Record(0, a)
		require.Equal(t, []game.Move{a, b}, k.SuggestOrder(0, []game.Move{a, b}))
	})
}

func TestKillerTableSuggestOrder(t *testing.T) {
	a, b, c, d := single(0, 1), single(0, 2), single(0, 3), single(0, 4)

	t.Run("killers first then the rest in order", func(t *testing.T) {
		k, err := NewKillerTable(2, 2)
		require.NoError(t, err)
		k.Record(1, b)
		k.Record(1, d)

		require.Equal(t, []game.Move{d, b, a, c}, k.SuggestOrder(1, []game.Move{a, b, c, d}))
		require.Equal(t, []game.Move{b, a, c}, k.SuggestOrder(1, []game.Move{a, b, c}), "Absent killers are skipped")
		require.Equal(t, []game.Move{a, b, c, d}, k.SuggestOrder(0, []game.Move{a, b, c, d}))
	})

	t.Run("result is a permutation of the candidates", func(t *testing.T) {
		r := rand.New(rand.NewSource(11))
		pool := []game.Move{a, b, c, d, single(1, 2), single(2, 3)}
		k, err := NewKillerTable(4, 2)
		require.NoError(t, err)

		for i := 0; i < 500; i++ {
			k.Record(r.Intn(5), pool[r.Intn(len(pool))])

			var candidates []game.Move
			for _, m := range pool {
				if r.Intn(2) == 0 {
					candidates = append(candidates, m)
				}
			}
			if r.Intn(4) == 0 && len(candidates) > 0 { // Duplicates must survive too
				candidates = append(candidates, candidates[0])
			}

			ordered := k.SuggestOrder(r.Intn(5), candidates)
			require.ElementsMatch(t, candidates, ordered)
		}
	})
}
