package game

import "fmt"

// Move is either a SingleMove or a DoubleMove. Both are comparable values, so
// two moves are equal exactly when every field matches.
type Move interface {
	Mover() Piece
	Origin() int
	FinalDestination() int
	UsedTickets() []Ticket
}

type SingleMove struct {
	Piece       Piece
	Source      int
	Ticket      Ticket
	Destination int
}

func (m SingleMove) Mover() Piece          { return m.Piece }
func (m SingleMove) Origin() int           { return m.Source }
func (m SingleMove) FinalDestination() int { return m.Destination }
func (m SingleMove) UsedTickets() []Ticket { return []Ticket{m.Ticket} }

func (m SingleMove) String() string {
	return fmt.Sprintf("%s %d-%s->%d", m.Piece, m.Source, m.Ticket, m.Destination)
}

// DoubleMove chains two single steps and spends a double ticket on top.
type DoubleMove struct {
	Piece        Piece
	Source       int
	Ticket1      Ticket
	Destination1 int
	Ticket2      Ticket
	Destination2 int
}

func (m DoubleMove) Mover() Piece          { return m.Piece }
func (m DoubleMove) Origin() int           { return m.Source }
func (m DoubleMove) FinalDestination() int { return m.Destination2 }
func (m DoubleMove) UsedTickets() []Ticket { return []Ticket{DoubleTicket, m.Ticket1, m.Ticket2} }

func (m DoubleMove) Steps() (SingleMove, SingleMove) {
	return SingleMove{Piece: m.Piece, Source: m.Source, Ticket: m.Ticket1, Destination: m.Destination1},
		SingleMove{Piece: m.Piece, Source: m.Destination1, Ticket: m.Ticket2, Destination: m.Destination2}
}

func (m DoubleMove) String() string {
	return fmt.Sprintf("%s %d-%s->%d-%s->%d", m.Piece, m.Source, m.Ticket1, m.Destination1, m.Ticket2, m.Destination2)
}

// SecretCount is the number of secret tickets a move spends.
func SecretCount(m Move) int {
	n := 0
	for _, t := range m.UsedTickets() {
		if t == SecretTicket {
			n++
		}
	}
	return n
}

func IsDouble(m Move) bool {
	_, ok := m.(DoubleMove)
	return ok
}
