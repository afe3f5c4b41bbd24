package searcher

import (
	"fmt"
	"scotlandyard/game"
	"scotlandyard/graph"

	"github.com/samber/lo"
)

// OrderingPolicy shapes the fugitive's candidate moves. It decides when to
// spend secret tickets and when a double move is worth considering.
type OrderingPolicy struct {
	DangerThreshold    int
	DoubleGateDistance int
}

func DefaultOrderingPolicy() OrderingPolicy {
	return OrderingPolicy{
		DangerThreshold:    DefaultDangerThreshold,
		DoubleGateDistance: DefaultDoubleGateDistance,
	}
}

// Gates holds the two decisions the policy makes for a position.
type Gates struct {
	// Untraceable is set when the trackers are close to pinning the fugitive
	// down and a secret ticket would hide a non-taxi route.
	Untraceable bool
	// Double is set when a tracker is within striking distance.
	Double bool
}

func (p OrderingPolicy) Gates(state game.State) (Gates, error) {
	location, err := fugitiveLocation(state)
	if err != nil {
		return Gates{}, err
	}
	setup := state.Setup()
	g := setup.Graph
	log := state.TravelLog()
	trackers, err := trackerLocations(state)
	if err != nil {
		return Gates{}, err
	}

	belief := EstimateBelief(log, g, trackers)
	nonTaxi := lo.SomeBy(g.Neighbours(location), func(e graph.Edge) bool {
		return e.Transports.HasOtherThan(graph.Taxi)
	})

	table, err := graph.ShortestPaths(g, location)
	if err != nil {
		return Gates{}, fmt.Errorf("order moves from %d: %w", location, err)
	}
	nearby := lo.SomeBy(trackers, func(t int) bool {
		return table.Distance(t) < p.DoubleGateDistance
	})

	return Gates{
		Untraceable: belief.Len() < p.DangerThreshold && !setup.IsRevealRound(len(log)) && nonTaxi,
		Double:      nearby,
	}, nil
}

// FugitiveMoves returns the fugitive's moves in search order: the admitted
// double moves, then secret single moves, then ordinary single moves. When
// every legal move is filtered out, the legal moves are returned unchanged.
func (p OrderingPolicy) FugitiveMoves(state game.State) ([]game.Move, error) {
	moves := lo.Filter(state.AvailableMoves(), func(m game.Move, _ int) bool {
		return m.Mover().IsFugitive()
	})
	if len(moves) == 0 {
		return nil, nil
	}
	gates, err := p.Gates(state)
	if err != nil {
		return nil, err
	}
	return gates.Shape(moves), nil
}

// Shape applies the gates to moves, keeping relative order within each group.
func (gates Gates) Shape(moves []game.Move) []game.Move {
	var doubles, secrets, ordinary []game.Move
	for _, m := range moves {
		secret := game.SecretCount(m)
		switch {
		case game.IsDouble(m):
			if !gates.Double {
				continue
			}
			if (gates.Untraceable && secret == 1) || (!gates.Untraceable && secret == 0) {
				doubles = append(doubles, m)
			}
		case secret > 0:
			if gates.Untraceable {
				secrets = append(secrets, m)
			}
		default:
			ordinary = append(ordinary, m)
		}
	}

	shaped := make([]game.Move, 0, len(doubles)+len(secrets)+len(ordinary))
	shaped = append(append(append(shaped, doubles...), secrets...), ordinary...)
	if len(shaped) == 0 {
		return moves
	}
	return shaped
}
