package game

import (
	"errors"
	"fmt"
	"scotlandyard/graph"
)

var ErrIllegalMove = errors.New("illegal move")

// Piece identifies a player on the board.
type Piece string

const (
	Fugitive Piece = "mrx"
	Red      Piece = "red"
	Green    Piece = "green"
	Blue     Piece = "blue"
	White    Piece = "white"
	Yellow   Piece = "yellow"
)

func (p Piece) IsFugitive() bool {
	return p == Fugitive
}

// Ticket pays for a single step along an edge.
type Ticket uint8

const (
	TaxiTicket Ticket = iota
	BusTicket
	UndergroundTicket
	SecretTicket
	DoubleTicket
	ticketCount
)

var ticketNames = [ticketCount]string{"taxi", "bus", "underground", "secret", "double"}

func (t Ticket) String() string {
	if t < ticketCount {
		return ticketNames[t]
	}
	return fmt.Sprintf("ticket(%d)", uint8(t))
}

func ParseTicket(name string) (Ticket, error) {
	for i, n := range ticketNames {
		if n == name {
			return Ticket(i), nil
		}
	}
	return 0, fmt.Errorf("unknown ticket %q", name)
}

// Transport maps a ticket to the transport it discloses. Secret and double
// tickets disclose nothing.
func (t Ticket) Transport() (graph.Transport, bool) {
	switch t {
	case TaxiTicket:
		return graph.Taxi, true
	case BusTicket:
		return graph.Bus, true
	case UndergroundTicket:
		return graph.Underground, true
	}
	return 0, false
}

// TicketFor returns the ordinary ticket that pays for travel by tr. Ferries
// have none and can only be taken with a secret ticket.
func TicketFor(tr graph.Transport) (Ticket, bool) {
	switch tr {
	case graph.Taxi:
		return TaxiTicket, true
	case graph.Bus:
		return BusTicket, true
	case graph.Underground:
		return UndergroundTicket, true
	}
	return 0, false
}

// Tickets is a ticket inventory. It is a value type so boards can copy it freely.
type Tickets [ticketCount]int

func (ts Tickets) Count(t Ticket) int {
	if t >= ticketCount {
		return 0
	}
	return ts[t]
}

func (ts Tickets) Has(t Ticket) bool {
	return ts.Count(t) > 0
}

func (ts Tickets) With(t Ticket, n int) Tickets {
	ts[t] += n
	return ts
}

// LogEntry is one fugitive step as observed by the trackers.
type LogEntry struct {
	Ticket   Ticket
	Location int
	Revealed bool
}

func Hidden(t Ticket) LogEntry {
	return LogEntry{Ticket: t, Location: graph.NoNode}
}

func Reveal(t Ticket, location int) LogEntry {
	return LogEntry{Ticket: t, Location: location, Revealed: true}
}

// Setup is the static part of a game. Rounds[i] reports whether the fugitive
// surfaces after their i-th step.
type Setup struct {
	Graph  *graph.Graph
	Rounds []bool
}

func (s *Setup) IsRevealRound(round int) bool {
	return round >= 0 && round < len(s.Rounds) && s.Rounds[round]
}

func (s *Setup) RevealRounds() []int {
	var rounds []int
	for i, reveal := range s.Rounds {
		if reveal {
			rounds = append(rounds, i)
		}
	}
	return rounds
}

// State should be immutable - Advance always returns a new state
type State interface {
	// AvailableMoves lists the legal moves grouped contiguously by mover.
	AvailableMoves() []Move
	Advance(Move) (State, error)
	// Winner is empty while the game is ongoing.
	Winner() []Piece
	Location(Piece) (int, bool)
	Tickets(Piece) Tickets
	TravelLog() []LogEntry
	Setup() *Setup
	Trackers() []Piece
}
