package searcher

import (
	"os"
	"scotlandyard/game"
	"scotlandyard/graph"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

// mockState is a hand-built game tree node.
type mockState struct {
	setup     *game.Setup
	moves     []game.Move
	next      map[game.Move]*mockState
	winner    []game.Piece
	locations map[game.Piece]int
	tickets   map[game.Piece]game.Tickets
	log       []game.LogEntry
	trackers  []game.Piece
}

func (s *mockState) AvailableMoves() []game.Move { return s.moves }
func (s *mockState) Winner() []game.Piece        { return s.winner }
func (s *mockState) TravelLog() []game.LogEntry  { return s.log }
func (s *mockState) Setup() *game.Setup          { return s.setup }
func (s *mockState) Trackers() []game.Piece      { return s.trackers }

func (s *mockState) Advance(m game.Move) (game.State, error) {
	child, ok := s.next[m]
	if !ok {
		return nil, game.ErrIllegalMove
	}
	return child, nil
}

func (s *mockState) Location(p game.Piece) (int, bool) {
	location, ok := s.locations[p]
	return location, ok
}

func (s *mockState) Tickets(p game.Piece) game.Tickets {
	return s.tickets[p]
}

// transportGraph:
//
//	0 -taxi- 1 -bus- 2
//	|                |
//	taxi,bus        taxi
//	|                |
//	3 --underground- 4
func transportGraph() *graph.Graph {
	return graph.NewBuilder(5).
		AddEdge(0, 1, graph.Taxi).
		AddEdge(1, 2, graph.Bus).
		AddEdge(0, 3, graph.Taxi, graph.Bus).
		AddEdge(3, 4, graph.Underground).
		AddEdge(2, 4, graph.Taxi).
		MustBuild()
}

func tickets(counts map[game.Ticket]int) game.Tickets {
	var ts game.Tickets
	for t, n := range counts {
		ts = ts.With(t, n)
	}
	return ts
}

// randomBoard deals pieces onto a random connected graph of at most 10 nodes.
func randomBoard(r *rand.Rand) (*game.Board, bool) {
	nodes := 4 + r.Intn(7)
	transports := []graph.Transport{graph.Taxi, graph.Bus, graph.Underground}
	pick := func() []graph.Transport {
		var ts []graph.Transport
		for _, t := range transports {
			if r.Intn(2) == 0 {
				ts = append(ts, t)
			}
		}
		if len(ts) == 0 {
			ts = append(ts, graph.Taxi)
		}
		return ts
	}

	b := graph.NewBuilder(nodes)
	for n := 1; n < nodes; n++ {
		b.AddEdge(n, r.Intn(n), pick()...)
	}
	for extra := r.Intn(nodes); extra > 0; extra-- {
		b.AddEdge(r.Intn(nodes), r.Intn(nodes), pick()...)
	}

	rounds := make([]bool, 5)
	for i := range rounds {
		rounds[i] = r.Intn(3) == 0
	}
	setup := &game.Setup{Graph: b.MustBuild(), Rounds: rounds}

	perm := r.Perm(nodes)
	fugitive := game.Player{Piece: game.Fugitive, Location: perm[0], Tickets: tickets(map[game.Ticket]int{
		game.TaxiTicket: 3, game.BusTicket: 2, game.UndergroundTicket: 2, game.SecretTicket: 1, game.DoubleTicket: 1,
	})}
	trackerTickets := tickets(map[game.Ticket]int{game.TaxiTicket: 4, game.BusTicket: 2, game.UndergroundTicket: 1})
	trackers := []game.Player{{Piece: game.Red, Location: perm[1], Tickets: trackerTickets}}
	if r.Intn(2) == 0 {
		trackers = append(trackers, game.Player{Piece: game.Blue, Location: perm[2], Tickets: trackerTickets})
	}

	board, err := game.NewBoard(setup, fugitive, trackers...)
	if err != nil || len(board.Winner()) > 0 {
		return nil, false
	}
	return board, true
}
