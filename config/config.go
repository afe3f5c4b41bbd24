package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const EnvPrefix = "SCOTLANDYARD"

type Config struct {
	MaxDepth           int           `mapstructure:"max_depth"`
	TimeBudget         time.Duration `mapstructure:"time_budget"`
	DangerThreshold    int           `mapstructure:"danger_threshold"`
	KillerSlots        int           `mapstructure:"killer_slots"`
	DoubleGateDistance int           `mapstructure:"double_gate_distance"`
	CompareKillers     bool          `mapstructure:"compare_killers"` // Also play every match without killer ordering

	SetupPath    string `mapstructure:"setup_path"` // Empty for the built-in scenario
	Matches      int    `mapstructure:"matches"`
	MaxMoves     int    `mapstructure:"max_moves"`
	TrackerAgent string `mapstructure:"tracker_agent"`
	Seed         uint64 `mapstructure:"seed"`

	LogLevel   string `mapstructure:"log_level"`
	RecordsDir string `mapstructure:"records_dir"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("max_depth", 20)
	v.SetDefault("time_budget", 14500*time.Millisecond)
	v.SetDefault("danger_threshold", 10)
	v.SetDefault("killer_slots", 2)
	v.SetDefault("double_gate_distance", 3)
	v.SetDefault("compare_killers", false)
	v.SetDefault("setup_path", "")
	v.SetDefault("matches", 1)
	v.SetDefault("max_moves", 500)
	v.SetDefault("tracker_agent", "chaser")
	v.SetDefault("seed", 1)
	v.SetDefault("log_level", "info")
	v.SetDefault("records_dir", "experiments/records")
}

// Load reads defaults, then the optional config file at path, then
// SCOTLANDYARD_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	switch {
	case c.MaxDepth < 1:
		return fmt.Errorf("max_depth must be at least 1, got %d", c.MaxDepth)
	case c.TimeBudget <= 0:
		return fmt.Errorf("time_budget must be positive, got %s", c.TimeBudget)
	case c.KillerSlots < 1:
		return fmt.Errorf("killer_slots must be at least 1, got %d", c.KillerSlots)
	case c.Matches < 1:
		return fmt.Errorf("matches must be at least 1, got %d", c.Matches)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	switch c.TrackerAgent {
	case "random", "chaser":
	default:
		return fmt.Errorf("unknown tracker_agent %q", c.TrackerAgent)
	}
	return nil
}
