package searcher

import (
	"scotlandyard/game"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEstimateBelief(t *testing.T) {
	g := transportGraph()

	t.Run("nothing revealed yet", func(t *testing.T) {
		b := EstimateBelief([]game.LogEntry{game.Hidden(game.TaxiTicket)}, g, []int{1})

		require.True(t, b.Unknown())
		require.Equal(t, 5, b.Len(), "Unknown belief should count every node")
		require.Nil(t, b.Nodes())
	})

	t.Run("reveal without later moves", func(t *testing.T) {
		log := []game.LogEntry{game.Hidden(game.TaxiTicket), game.Reveal(game.BusTicket, 3)}

		require.Equal(t, []int{3}, EstimateBelief(log, g, nil).Nodes())
		require.Zero(t, EstimateBelief(log, g, []int{3}).Len(), "A tracker on the revealed node empties the belief")
	})

	t.Run("expansion follows the disclosed transport", func(t *testing.T) {
		taxi := []game.LogEntry{game.Reveal(game.TaxiTicket, 0), game.Hidden(game.TaxiTicket)}
		require.Equal(t, []int{1, 3}, EstimateBelief(taxi, g, nil).Nodes())

		bus := []game.LogEntry{game.Reveal(game.TaxiTicket, 0), game.Hidden(game.BusTicket)}
		require.Equal(t, []int{3}, EstimateBelief(bus, g, nil).Nodes())

		chained := append(bus, game.Hidden(game.UndergroundTicket))
		require.Equal(t, []int{4}, EstimateBelief(chained, g, nil).Nodes())
	})

	t.Run("secret and double tickets expand along every edge", func(t *testing.T) {
		secret := []game.LogEntry{game.Reveal(game.TaxiTicket, 1), game.Hidden(game.SecretTicket)}
		require.Equal(t, []int{0, 2}, EstimateBelief(secret, g, nil).Nodes())
		require.Equal(t, []int{0}, EstimateBelief(secret, g, []int{2}).Nodes(), "Tracker-occupied nodes are removed")

		double := []game.LogEntry{game.Reveal(game.TaxiTicket, 4), game.Hidden(game.DoubleTicket)}
		require.Equal(t, []int{2, 3}, EstimateBelief(double, g, nil).Nodes())
	})

	t.Run("a reveal resets the belief", func(t *testing.T) {
		log := []game.LogEntry{
			game.Reveal(game.TaxiTicket, 0),
			game.Hidden(game.SecretTicket),
			game.Hidden(game.SecretTicket),
			game.Reveal(game.TaxiTicket, 4),
		}
		b := EstimateBelief(log, g, []int{0})

		require.False(t, b.Unknown())
		require.Equal(t, []int{4}, b.Nodes())
		require.True(t, b.Contains(4))
		require.False(t, b.Contains(0))
		require.Zero(t, EstimateBelief(log, g, []int{4}).Len())
	})
}
