package searcher

import (
	"fmt"
	"scotlandyard/game"
	"scotlandyard/graph"
	"slices"
)

// Evaluate scores a state from the fugitive's point of view.
type Evaluate func(game.State) (Score, error)

var _ Evaluate = EvaluatePosition

// EvaluatePosition scores a state by escape distance first, then by the
// fugitive's secret tickets, then by how uncertain the trackers are about the
// fugitive's location:
//
//	min + sum/100 + secret/10 + belief/100
//
// where min and sum are over the shortest-path distances from the fugitive to
// every tracker. Division is integer division.
func EvaluatePosition(state game.State) (Score, error) {
	if score, ok := terminalScore(state.Winner()); ok {
		return score, nil
	}

	location, err := fugitiveLocation(state)
	if err != nil {
		return 0, err
	}
	g := state.Setup().Graph
	table, err := graph.ShortestPaths(g, location)
	if err != nil {
		return 0, fmt.Errorf("evaluate from %d: %w", location, err)
	}

	trackers, err := trackerLocations(state)
	if err != nil {
		return 0, err
	}
	minimum, sum := int64(graph.Unreachable), int64(0)
	for _, t := range trackers {
		d := int64(table.Distance(t))
		sum += d
		minimum = min(minimum, d)
	}
	secrets := int64(state.Tickets(game.Fugitive).Count(game.SecretTicket))
	belief := int64(EstimateBelief(state.TravelLog(), g, trackers).Len())

	return Score(minimum + sum/100 + secrets/10 + belief/100), nil
}

// terminalScore reports the saturated score of a finished game.
func terminalScore(winner []game.Piece) (Score, bool) {
	if len(winner) == 0 {
		return 0, false
	}
	if slices.Contains(winner, game.Fugitive) {
		return WinScore, true
	}
	return LossScore, true
}

// fugitiveLocation falls back to the last revealed location when the state
// hides the fugitive.
func fugitiveLocation(state game.State) (int, error) {
	if location, ok := state.Location(game.Fugitive); ok {
		return location, nil
	}
	if location, ok := game.LastRevealed(state.TravelLog()); ok {
		return location, nil
	}
	return graph.NoNode, ErrNoFugitiveLocation
}

// trackerLocations returns where the visible trackers stand. A location
// outside the graph is a broken state.
func trackerLocations(state game.State) ([]int, error) {
	g := state.Setup().Graph
	var locations []int
	for _, p := range state.Trackers() {
		location, ok := state.Location(p)
		if !ok {
			continue
		}
		if !g.Contains(location) {
			return nil, fmt.Errorf("%s at %d: %w", p, location, graph.ErrNodeOutOfRange)
		}
		locations = append(locations, location)
	}
	return locations, nil
}
