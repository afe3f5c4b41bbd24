package game

import (
	_ "embed"
	"fmt"
	"os"
	"scotlandyard/graph"

	"gopkg.in/yaml.v3"
)

//go:embed scenarios/small.yaml
var smallScenario []byte

// Scenario is a game definition: the board topology, the reveal schedule and
// the starting players.
type Scenario struct {
	Name     string
	Setup    *Setup
	Fugitive Player
	Trackers []Player
}

type scenarioFile struct {
	Name     string       `yaml:"name"`
	Nodes    int          `yaml:"nodes"`
	Rounds   int          `yaml:"rounds"`
	Reveal   []int        `yaml:"reveal"`
	Edges    []edgeFile   `yaml:"edges"`
	Fugitive playerFile   `yaml:"fugitive"`
	Trackers []playerFile `yaml:"trackers"`
}

type edgeFile struct {
	From   int      `yaml:"from"`
	To     int      `yaml:"to"`
	By     []string `yaml:"by"`
	Weight int      `yaml:"weight,omitempty"`
}

type playerFile struct {
	Piece    string         `yaml:"piece"`
	Location int            `yaml:"location"`
	Tickets  map[string]int `yaml:"tickets"`
}

// DefaultScenario is a small built-in board used when no scenario file is given.
func DefaultScenario() (*Scenario, error) {
	return ParseScenario(smallScenario)
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var f scenarioFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if f.Nodes <= 0 {
		return nil, fmt.Errorf("scenario %q has no nodes", f.Name)
	}
	if f.Rounds <= 0 {
		return nil, fmt.Errorf("scenario %q has no rounds", f.Name)
	}

	b := graph.NewBuilder(f.Nodes)
	for _, e := range f.Edges {
		if e.Weight > 0 {
			b.AddWeightedEdge(e.From, e.To, e.Weight)
			continue
		}
		ts := make([]graph.Transport, 0, len(e.By))
		for _, name := range e.By {
			t, err := graph.ParseTransport(name)
			if err != nil {
				return nil, fmt.Errorf("edge %d-%d: %w", e.From, e.To, err)
			}
			ts = append(ts, t)
		}
		b.AddEdge(e.From, e.To, ts...)
	}
	g, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", f.Name, err)
	}

	rounds := make([]bool, f.Rounds)
	for _, r := range f.Reveal {
		if r < 0 || r >= f.Rounds {
			return nil, fmt.Errorf("reveal round %d outside [0, %d)", r, f.Rounds)
		}
		rounds[r] = true
	}

	fugitive, err := f.Fugitive.player(Fugitive)
	if err != nil {
		return nil, err
	}
	s := &Scenario{
		Name:     f.Name,
		Setup:    &Setup{Graph: g, Rounds: rounds},
		Fugitive: fugitive,
	}
	for _, pf := range f.Trackers {
		t, err := pf.player(Piece(pf.Piece))
		if err != nil {
			return nil, err
		}
		s.Trackers = append(s.Trackers, t)
	}
	return s, nil
}

func (pf playerFile) player(piece Piece) (Player, error) {
	p := Player{Piece: piece, Location: pf.Location}
	for name, n := range pf.Tickets {
		t, err := ParseTicket(name)
		if err != nil {
			return Player{}, fmt.Errorf("%s: %w", piece, err)
		}
		p.Tickets = p.Tickets.With(t, n)
	}
	return p, nil
}

// NewBoard returns the starting position of the scenario.
func (s *Scenario) NewBoard() (*Board, error) {
	return NewBoard(s.Setup, s.Fugitive, s.Trackers...)
}
