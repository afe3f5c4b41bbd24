package experiments

import (
	"context"
	"os"
	"path/filepath"
	"scotlandyard/config"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func TestFromConfig(t *testing.T) {
	c, err := config.Load("")
	require.NoError(t, err)

	t.Run("single config by default", func(t *testing.T) {
		exp, err := FromConfig("default", c)
		require.NoError(t, err)
		require.Len(t, exp.Configs, 1)
		require.Equal(t, 2, exp.Configs[0].KillerSlots)
		require.Equal(t, "small", exp.Scenario.Name)
	})

	t.Run("compare killers adds a plain config", func(t *testing.T) {
		compare := *c
		compare.CompareKillers = true
		exp, err := FromConfig("compare", &compare)
		require.NoError(t, err)
		require.Len(t, exp.Configs, 2)
		require.Equal(t, 0, exp.Configs[1].KillerSlots)
		require.Equal(t, exp.Configs[0].MaxDepth, exp.Configs[1].MaxDepth)
	})

	t.Run("missing setup file", func(t *testing.T) {
		missing := *c
		missing.SetupPath = filepath.Join(t.TempDir(), "missing.yaml")
		_, err := FromConfig("missing", &missing)
		require.Error(t, err)
	})
}

func TestRun(t *testing.T) {
	c, err := config.Load("")
	require.NoError(t, err)
	c.MaxDepth = 2
	c.TimeBudget = 5 * time.Second
	c.Matches = 2
	c.CompareKillers = true
	c.RecordsDir = t.TempDir()

	exp, err := FromConfig("smoke", c)
	require.NoError(t, err)

	result, err := Run(context.Background(), exp)
	require.NoError(t, err)
	require.Len(t, result.Games, 4, "Two matches for each of two configs")
	require.NotEmpty(t, result.Moves)

	seeds := map[uint64]bool{}
	for _, g := range result.Games {
		seeds[g.Seed] = true
	}
	require.Len(t, seeds, 4, "Every game should get its own seed")

	for _, name := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
		_, err := os.Stat(filepath.Join(result.Dir, name))
		require.NoError(t, err)
	}
}

func TestNewTrackerAgent(t *testing.T) {
	for _, kind := range []string{"random", "chaser", ""} {
		a, err := NewTrackerAgent(kind, 1)
		require.NoError(t, err)
		require.NotNil(t, a)
	}
	_, err := NewTrackerAgent("psychic", 1)
	require.Error(t, err)
}
