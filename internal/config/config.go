// Package config loads the server configuration from a YAML file with sane
// defaults for anything omitted.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config is the full server configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	Game     GameConfig     `mapstructure:"game"`
}

// ServerConfig configures the WebSocket listener.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig configures the optional Postgres store. An empty DSN
// disables persistence.
type DatabaseConfig struct {
	DSN      string `mapstructure:"dsn"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// GameConfig configures how matches are set up.
type GameConfig struct {
	PlayerCount   int    `mapstructure:"player_count"`
	InitialHealth int    `mapstructure:"initial_health"`
	Seed          int64  `mapstructure:"seed"`
	ReplayDir     string `mapstructure:"replay_dir"`
}

// Load reads the configuration file at path. A missing file is not an error;
// defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.address", ":8089")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_conns", 4)
	v.SetDefault("game.player_count", 2)
	v.SetDefault("game.initial_health", 4)
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.replay_dir", "replays")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
