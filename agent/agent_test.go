package agent

import (
	"context"
	"os"
	"scotlandyard/game"
	"scotlandyard/graph"
	"scotlandyard/searcher"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func smallBoard(t *testing.T) *game.Board {
	s, err := game.DefaultScenario()
	require.NoError(t, err)
	b, err := s.NewBoard()
	require.NoError(t, err)
	return b
}

func TestSearchAgent(t *testing.T) {
	t.Run("returns a legal move within the budget", func(t *testing.T) {
		b := smallBoard(t)
		a := NewSearchAgent(2, 10*time.Second, searcher.WithKillerSlots(3))

		move, metric, err := a.FindMove(context.Background(), b)
		require.NoError(t, err)
		require.Contains(t, b.AvailableMoves(), move)
		require.Equal(t, 2, metric.Depth, "Search should reach max depth on a small board")
		require.False(t, metric.TimedOut)
		require.Positive(t, metric.Nodes)
	})

	t.Run("no completed depth is reported as an error", func(t *testing.T) {
		a := NewSearchAgent(DefaultMaxDepth, time.Nanosecond)

		_, metric, err := a.FindMove(context.Background(), smallBoard(t))
		require.ErrorIs(t, err, ErrNoDecision)
		require.Zero(t, metric.Depth)
		require.True(t, metric.TimedOut)
	})

	t.Run("cancelled caller", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := NewSearchAgent(3, time.Second).FindMove(ctx, smallBoard(t))
		require.ErrorIs(t, err, ErrNoDecision)
	})

	t.Run("finished game", func(t *testing.T) {
		g := graph.NewBuilder(2).AddEdge(0, 1, graph.Taxi).MustBuild()
		over, err := game.NewBoard(&game.Setup{Graph: g, Rounds: []bool{false}},
			game.Player{Piece: game.Fugitive, Location: 0},
			game.Player{Piece: game.Red, Location: 1})
		require.NoError(t, err)
		require.NotEmpty(t, over.Winner())

		_, _, err = NewSearchAgent(3, time.Second).FindMove(context.Background(), over)
		require.ErrorIs(t, err, searcher.ErrNoMoves)
	})
}

func TestTrackerAgents(t *testing.T) {
	g := graph.NewBuilder(5).
		AddEdge(0, 1, graph.Taxi).
		AddEdge(1, 2, graph.Taxi).
		AddEdge(2, 3, graph.Taxi).
		AddEdge(3, 4, graph.Taxi).
		MustBuild()
	setup := &game.Setup{Graph: g, Rounds: []bool{true, false, false}}
	board, err := game.NewBoard(setup,
		game.Player{Piece: game.Fugitive, Location: 1, Tickets: game.Tickets{}.With(game.TaxiTicket, 3)},
		game.Player{Piece: game.Red, Location: 3, Tickets: game.Tickets{}.With(game.TaxiTicket, 3)})
	require.NoError(t, err)

	// Fugitive surfaces at 0, red at 3 should head for 2
	state, err := board.Advance(game.SingleMove{Piece: game.Fugitive, Source: 1, Ticket: game.TaxiTicket, Destination: 0})
	require.NoError(t, err)

	t.Run("chaser closes in on the last reveal", func(t *testing.T) {
		move, _, err := NewChaserAgent(1).FindMove(context.Background(), state)
		require.NoError(t, err)
		require.Equal(t, game.Move(game.SingleMove{Piece: game.Red, Source: 3, Ticket: game.TaxiTicket, Destination: 2}), move)
	})

	t.Run("random agent plays for the current mover", func(t *testing.T) {
		a := NewRandomAgent(7)
		for i := 0; i < 20; i++ {
			move, _, err := a.FindMove(context.Background(), state)
			require.NoError(t, err)
			require.Contains(t, state.AvailableMoves(), move)
			require.Equal(t, game.Red, move.Mover())
		}
	})

	t.Run("chaser without a reveal plays randomly", func(t *testing.T) {
		move, _, err := NewChaserAgent(1).FindMove(context.Background(), board)
		require.NoError(t, err)
		require.Contains(t, board.AvailableMoves(), move)
	})
}
