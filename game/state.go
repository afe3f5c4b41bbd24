package game

import (
	"errors"
	"fmt"
	"scotlandyard/graph"
	"slices"
)

// Player is a piece together with where it stands and what it can pay with.
type Player struct {
	Piece    Piece
	Location int
	Tickets  Tickets
}

// Board is a local reference implementation of State with the standard
// pursuit rules: the fugitive moves first each round, then every tracker that
// can move does so once. Trackers hand their spent tickets to the fugitive.
type Board struct {
	setup        *Setup
	fugitive     Player
	trackers     []Player   // Trackers in turn order
	log          []LogEntry // Fugitive travel log, one entry per step
	fugitiveTurn bool
	remaining    []Piece // Trackers still to move this round
	moves        []Move
	winner       []Piece
}

func NewBoard(setup *Setup, fugitive Player, trackers ...Player) (*Board, error) {
	if setup == nil || setup.Graph == nil {
		return nil, errors.New("board needs a setup with a graph")
	}
	if len(setup.Rounds) == 0 {
		return nil, errors.New("board needs at least one round")
	}
	if !fugitive.Piece.IsFugitive() {
		return nil, fmt.Errorf("piece %q is not the fugitive", fugitive.Piece)
	}
	if len(trackers) == 0 {
		return nil, errors.New("board needs at least one tracker")
	}

	occupied := map[int]Piece{}
	seen := map[Piece]bool{}
	for _, p := range append([]Player{fugitive}, trackers...) {
		if !setup.Graph.Contains(p.Location) {
			return nil, fmt.Errorf("%s at %d: %w", p.Piece, p.Location, graph.ErrNodeOutOfRange)
		}
		if other, ok := occupied[p.Location]; ok {
			return nil, fmt.Errorf("%s and %s both start at %d", other, p.Piece, p.Location)
		}
		if seen[p.Piece] {
			return nil, fmt.Errorf("duplicate piece %s", p.Piece)
		}
		if !p.Piece.IsFugitive() && (p.Tickets.Has(SecretTicket) || p.Tickets.Has(DoubleTicket)) {
			return nil, fmt.Errorf("tracker %s cannot hold secret or double tickets", p.Piece)
		}
		occupied[p.Location] = p.Piece
		seen[p.Piece] = true
	}

	b := &Board{
		setup:        setup,
		fugitive:     fugitive,
		trackers:     slices.Clone(trackers),
		fugitiveTurn: true,
	}
	b.settle()
	return b, nil
}

func (b *Board) Copy() *Board {
	return &Board{
		setup:        b.setup, // Setup is shared and never modified
		fugitive:     b.fugitive,
		trackers:     slices.Clone(b.trackers),
		log:          slices.Clone(b.log),
		fugitiveTurn: b.fugitiveTurn,
		remaining:    slices.Clone(b.remaining),
	}
}

func (b *Board) AvailableMoves() []Move {
	return b.moves
}

func (b *Board) Winner() []Piece {
	return b.winner
}

func (b *Board) Setup() *Setup {
	return b.setup
}

// TravelLog returns the fugitive's log. The slice must not be modified.
func (b *Board) TravelLog() []LogEntry {
	return b.log
}

func (b *Board) Trackers() []Piece {
	pieces := make([]Piece, len(b.trackers))
	for i, t := range b.trackers {
		pieces[i] = t.Piece
	}
	return pieces
}

func (b *Board) Player(p Piece) (Player, bool) {
	if p.IsFugitive() {
		return b.fugitive, true
	}
	for _, t := range b.trackers {
		if t.Piece == p {
			return t, true
		}
	}
	return Player{}, false
}

func (b *Board) Location(p Piece) (int, bool) {
	player, ok := b.Player(p)
	if !ok {
		return graph.NoNode, false
	}
	return player.Location, true
}

func (b *Board) Tickets(p Piece) Tickets {
	player, _ := b.Player(p)
	return player.Tickets
}

// Mover returns the piece whose moves are listed first.
func (b *Board) Mover() (Piece, bool) {
	if len(b.moves) == 0 {
		return "", false
	}
	return b.moves[0].Mover(), true
}

func (b *Board) Advance(move Move) (State, error) {
	if !slices.Contains(b.moves, move) {
		return nil, fmt.Errorf("%v: %w", move, ErrIllegalMove)
	}

	next := b.Copy()
	switch m := move.(type) {
	case SingleMove:
		if m.Piece.IsFugitive() {
			next.stepFugitive(m.Ticket, m.Destination)
			next.startTrackerTurn()
		} else {
			next.stepTracker(m)
		}
	case DoubleMove:
		first, second := m.Steps()
		next.fugitive.Tickets = next.fugitive.Tickets.With(DoubleTicket, -1)
		next.stepFugitive(first.Ticket, first.Destination)
		next.stepFugitive(second.Ticket, second.Destination)
		next.startTrackerTurn()
	default:
		return nil, fmt.Errorf("unknown move type %T: %w", move, ErrIllegalMove)
	}
	next.settle()
	return next, nil
}

func (b *Board) stepFugitive(t Ticket, destination int) {
	b.fugitive.Tickets = b.fugitive.Tickets.With(t, -1)
	b.fugitive.Location = destination
	if b.setup.IsRevealRound(len(b.log)) {
		b.log = append(b.log, Reveal(t, destination))
	} else {
		b.log = append(b.log, Hidden(t))
	}
}

func (b *Board) stepTracker(m SingleMove) {
	for i := range b.trackers {
		if b.trackers[i].Piece == m.Piece {
			b.trackers[i].Location = m.Destination
			b.trackers[i].Tickets = b.trackers[i].Tickets.With(m.Ticket, -1)
		}
	}
	b.fugitive.Tickets = b.fugitive.Tickets.With(m.Ticket, 1)
	b.remaining = slices.DeleteFunc(b.remaining, func(p Piece) bool { return p == m.Piece })
}

func (b *Board) startTrackerTurn() {
	b.fugitiveTurn = false
	b.remaining = b.Trackers()
}

// settle derives the winner and the available moves from the positions.
func (b *Board) settle() {
	b.moves, b.winner = nil, nil

	if b.captured() {
		b.winner = b.Trackers()
		return
	}

	if !b.fugitiveTurn {
		roundStart := len(b.remaining) == len(b.trackers)
		for _, p := range b.remaining {
			player, _ := b.Player(p)
			b.moves = append(b.moves, b.singleMoves(player, false)...)
		}
		if len(b.moves) > 0 {
			return
		}
		if roundStart { // No tracker can move at all
			b.winner = []Piece{Fugitive}
			return
		}
		b.fugitiveTurn = true
		b.remaining = nil
	}

	if len(b.log) >= len(b.setup.Rounds) {
		b.winner = []Piece{Fugitive}
		return
	}
	b.moves = b.fugitiveMoves()
	if len(b.moves) == 0 {
		b.winner = b.Trackers()
	}
}

func (b *Board) captured() bool {
	for _, t := range b.trackers {
		if t.Location == b.fugitive.Location {
			return true
		}
	}
	return false
}

func (b *Board) occupiedByTracker(node int, except Piece) bool {
	for _, t := range b.trackers {
		if t.Piece != except && t.Location == node {
			return true
		}
	}
	return false
}

func (b *Board) singleMoves(p Player, secret bool) []Move {
	var moves []Move
	for _, e := range b.setup.Graph.Neighbours(p.Location) {
		if b.occupiedByTracker(e.To, p.Piece) {
			continue
		}
		for _, tr := range e.Transports.Transports() {
			if t, ok := TicketFor(tr); ok && p.Tickets.Has(t) {
				moves = append(moves, SingleMove{Piece: p.Piece, Source: p.Location, Ticket: t, Destination: e.To})
			}
		}
		if secret && p.Tickets.Has(SecretTicket) {
			moves = append(moves, SingleMove{Piece: p.Piece, Source: p.Location, Ticket: SecretTicket, Destination: e.To})
		}
	}
	return moves
}

func (b *Board) fugitiveMoves() []Move {
	singles := b.singleMoves(b.fugitive, true)
	moves := slices.Clone(singles)
	if !b.fugitive.Tickets.Has(DoubleTicket) || len(b.log)+2 > len(b.setup.Rounds) {
		return moves
	}

	for _, first := range singles {
		m1 := first.(SingleMove)
		after := b.fugitive
		after.Location = m1.Destination
		after.Tickets = after.Tickets.With(m1.Ticket, -1)
		for _, second := range b.singleMoves(after, true) {
			m2 := second.(SingleMove)
			moves = append(moves, DoubleMove{
				Piece:        Fugitive,
				Source:       m1.Source,
				Ticket1:      m1.Ticket,
				Destination1: m1.Destination,
				Ticket2:      m2.Ticket,
				Destination2: m2.Destination,
			})
		}
	}
	return moves
}

// LastRevealed returns the most recently revealed fugitive location in log.
func LastRevealed(log []LogEntry) (int, bool) {
	for i := len(log) - 1; i >= 0; i-- {
		if log[i].Revealed {
			return log[i].Location, true
		}
	}
	return graph.NoNode, false
}
