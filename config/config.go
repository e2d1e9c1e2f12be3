// Package config carries the engine's tunable settings, loaded from an
// optional YAML file and KLONDIKE_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	// MaxIterations bounds node expansions per solve.
	MaxIterations int `mapstructure:"max_iterations"`
	// StrategyWeight trades solution quality for speed; zero searches
	// for a shortest solution.
	StrategyWeight float64 `mapstructure:"strategy_weight"`
	// RecycleLimit caps waste-to-stock recycles per deal.
	RecycleLimit int `mapstructure:"recycle_limit"`
	// BatchThreads is the worker count for batch runs; zero means one
	// per CPU.
	BatchThreads int    `mapstructure:"batch_threads"`
	LogLevel     string `mapstructure:"log_level"`
}

const (
	DefaultMaxIterations  = 200000
	DefaultStrategyWeight = 1.5
	DefaultRecycleLimit   = 8
)

// Load populates c from defaults, then configFile (YAML, may be empty),
// then environment variables like KLONDIKE_MAX_ITERATIONS.
func (c *Config) Load(configFile string) error {
	v := viper.New()
	v.SetDefault("max_iterations", DefaultMaxIterations)
	v.SetDefault("strategy_weight", DefaultStrategyWeight)
	v.SetDefault("recycle_limit", DefaultRecycleLimit)
	v.SetDefault("batch_threads", 0)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("klondike")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}
	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("unmarshalling config: %w", err)
	}
	return nil
}

// AdjustLogLevel applies c.LogLevel globally. Unknown levels are
// logged and ignored.
func (c *Config) AdjustLogLevel() {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		log.Warn().Str("level", c.LogLevel).Msg("unknown log level, keeping current")
		return
	}
	zerolog.SetGlobalLevel(lvl)
}
