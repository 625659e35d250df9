package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config carries process-level configuration.
type Config struct {
	Environment           string
	Port                  int
	RoundRobinTimeQuantum int
	History               HistoryConfig
}

// HistoryConfig selects and tunes the simulation-history backend.
type HistoryConfig struct {
	Backend       string
	Limit         int
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SQLitePath    string
}

// Load reads config.yaml from the working directory when present and
// applies SCHEDSIM_* environment overrides on top of the defaults. A
// missing file is fine; a malformed one is not.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./")

	viper.SetDefault("environment", "development")
	viper.SetDefault("port", 9095)
	viper.SetDefault("scheduler.round_robin.time_quantum", 2)
	viper.SetDefault("history.backend", "memory")
	viper.SetDefault("history.limit", 10)
	viper.SetDefault("history.redis.addr", "localhost:6379")
	viper.SetDefault("history.redis.password", "")
	viper.SetDefault("history.redis.db", 0)
	viper.SetDefault("history.sqlite.path", "./schedsim.db")

	viper.SetEnvPrefix("SCHEDSIM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		Environment:           viper.GetString("environment"),
		Port:                  viper.GetInt("port"),
		RoundRobinTimeQuantum: viper.GetInt("scheduler.round_robin.time_quantum"),
		History: HistoryConfig{
			Backend:       viper.GetString("history.backend"),
			Limit:         viper.GetInt("history.limit"),
			RedisAddr:     viper.GetString("history.redis.addr"),
			RedisPassword: viper.GetString("history.redis.password"),
			RedisDB:       viper.GetInt("history.redis.db"),
			SQLitePath:    viper.GetString("history.sqlite.path"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.RoundRobinTimeQuantum <= 0 {
		return fmt.Errorf("scheduler.round_robin.time_quantum must be positive, got %d", c.RoundRobinTimeQuantum)
	}
	if c.History.Limit <= 0 {
		return fmt.Errorf("history.limit must be positive, got %d", c.History.Limit)
	}
	return nil
}
