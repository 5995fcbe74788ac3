// Package config loads tomlconfigd's own daemon configuration (listen
// address, Redis/SQL DSNs, JWT secret) via viper, the same pattern
// internal/cli/config.Load uses to load conduit.yml in this corpus's
// Conduit compiler — ironic only in that the daemon whose job is
// serving TOML documents is itself configured in YAML, exactly as the
// teacher's own tool is.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config is tomlconfigd's daemon configuration.
type Config struct {
	WatchDirs     []string `mapstructure:"watch_dirs"`
	ListenAddr    string   `mapstructure:"listen_addr"`
	RedisAddr     string   `mapstructure:"redis_addr"`
	StorageDSN    string   `mapstructure:"storage_dsn"`
	JWTSecret     string   `mapstructure:"jwt_secret"`
	AdminTokenHash string  `mapstructure:"admin_token_hash"`
}

// Load reads tomlconfigd.yaml from the current directory (or the path
// in TOMLCONFIGD_CONFIG), applying defaults for anything unset.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("watch_dirs", []string{"."})
	v.SetDefault("listen_addr", ":8585")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("storage_dsn", "sqlite3://tomlconfigd.db")
	v.SetDefault("jwt_secret", "")

	v.SetConfigName("tomlconfigd")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()
	v.SetEnvPrefix("TOMLCONFIGD")

	if path := os.Getenv("TOMLCONFIGD_CONFIG"); path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: jwt_secret is required (set TOMLCONFIGD_JWT_SECRET)")
	}
	return &cfg, nil
}
