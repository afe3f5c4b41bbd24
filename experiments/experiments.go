package experiments

import (
	"context"
	"fmt"
	"scotlandyard/agent"
	"scotlandyard/config"
	"scotlandyard/engine"
	"scotlandyard/experiments/metrics"
	"scotlandyard/game"
	"scotlandyard/searcher"

	"github.com/rs/zerolog/log"
)

// Experiment plays a number of matches for each fugitive configuration
// against the same kind of trackers.
type Experiment struct {
	Name         string
	Scenario     *game.Scenario
	Configs      []metrics.AgentConfig
	Matches      int // Per config
	MaxMoves     int
	TrackerAgent string
	Seed         uint64
	RecordsDir   string // Empty to skip writing records
}

// FromConfig builds the experiment described by c. When c.CompareKillers is
// set a second configuration without killer ordering is added.
func FromConfig(name string, c *config.Config) (Experiment, error) {
	scenario, err := loadScenario(c.SetupPath)
	if err != nil {
		return Experiment{}, err
	}
	configs := []metrics.AgentConfig{{
		ID:                 1,
		MaxDepth:           c.MaxDepth,
		TimeBudget:         c.TimeBudget,
		DangerThreshold:    c.DangerThreshold,
		DoubleGateDistance: c.DoubleGateDistance,
		KillerSlots:        c.KillerSlots,
	}}
	if c.CompareKillers {
		plain := configs[0]
		plain.ID = 2
		plain.KillerSlots = 0
		configs = append(configs, plain)
	}
	return Experiment{
		Name:         name,
		Scenario:     scenario,
		Configs:      configs,
		Matches:      c.Matches,
		MaxMoves:     c.MaxMoves,
		TrackerAgent: c.TrackerAgent,
		Seed:         c.Seed,
		RecordsDir:   c.RecordsDir,
	}, nil
}

func loadScenario(path string) (*game.Scenario, error) {
	if path == "" {
		return game.DefaultScenario()
	}
	return game.LoadScenario(path)
}

type Result struct {
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
	Dir   string
}

func Run(ctx context.Context, exp Experiment) (*Result, error) {
	count := 0
	result := &Result{}

	log.Info().Msgf("starting %s experiment...", exp.Name)

	for ci, config := range exp.Configs {
		log.Info().Msgf("starting config %d of %d: %+v...", ci+1, len(exp.Configs), config)

		for i := 0; i < exp.Matches; i++ {
			count++
			seed := exp.Seed + uint64(count)
			log.Info().Msgf("starting config %d game %d of %d...", config.ID, i+1, exp.Matches)

			winner, gameMetric, moveMetrics, err := runGame(ctx, exp, config, seed)
			if err != nil {
				return nil, fmt.Errorf("config %d game %d: %w", config.ID, i+1, err)
			}
			result.Games = append(result.Games, metrics.GameRecord{
				ID:         count,
				Agent:      config.ID,
				Seed:       seed,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				result.Moves = append(result.Moves, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed config %d game %d with winner: %v", config.ID, i+1, winner)
		}
	}

	log.Info().Msgf("completed %s experiment", exp.Name)

	if exp.RecordsDir == "" {
		return result, nil
	}
	dir, err := writeRecords(exp, result)
	if err != nil {
		return nil, err
	}
	result.Dir = dir
	return result, nil
}

func writeRecords(exp Experiment, result *Result) (string, error) {
	writer, err := metrics.NewWriter(exp.RecordsDir, exp.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(exp.Configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(result.Games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(result.Moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return writer.Dir(), nil
}

// runGame plays a single game between the configured fugitive and the trackers
func runGame(ctx context.Context, exp Experiment, config metrics.AgentConfig, seed uint64) ([]game.Piece, metrics.GameMetric, []metrics.MoveMetric, error) {
	board, err := exp.Scenario.NewBoard()
	if err != nil {
		return nil, metrics.GameMetric{}, nil, err
	}
	trackers, err := NewTrackerAgent(exp.TrackerAgent, seed)
	if err != nil {
		return nil, metrics.GameMetric{}, nil, err
	}
	e := engine.LocalEngine(exp.Scenario.Name, board, NewFugitiveAgent(config), trackers, exp.MaxMoves)
	return e.Run(ctx)
}

func NewFugitiveAgent(config metrics.AgentConfig) agent.Agent {
	options := []searcher.Option{}

	if config.DangerThreshold > 0 {
		options = append(options, searcher.WithDangerThreshold(config.DangerThreshold))
	}
	if config.DoubleGateDistance > 0 {
		options = append(options, searcher.WithDoubleGateDistance(config.DoubleGateDistance))
	}
	if config.KillerSlots > 0 {
		options = append(options, searcher.WithKillerSlots(config.KillerSlots))
	} else {
		options = append(options, searcher.WithoutKillers())
	}
	return agent.NewSearchAgent(config.MaxDepth, config.TimeBudget, options...)
}

func NewTrackerAgent(kind string, seed uint64) (agent.Agent, error) {
	switch kind {
	case "random":
		return agent.NewRandomAgent(seed), nil
	case "chaser", "":
		return agent.NewChaserAgent(seed), nil
	}
	return nil, fmt.Errorf("unknown tracker agent %q", kind)
}
