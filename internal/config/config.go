// Package config handles server configuration: a yaml config file with
// environment-variable overrides, loaded once at startup.
package config

import (
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

// Init loads configuration from ./sbboxes.yaml (if present) and the
// environment. Every key has an SBBOXES_-prefixed env override.
func Init(configPath string) {
	viper.SetConfigType("yaml")
	viper.SetConfigName("sbboxes")
	if configPath != "" {
		viper.AddConfigPath(configPath)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("SBBOXES")
	viper.AutomaticEnv()
	viper.BindEnv("listen_address")
	viper.BindEnv("db_path")
	viper.BindEnv("jwt_secret")
	viper.BindEnv("session_ttl")
	viper.BindEnv("score_feed_url")
	viper.BindEnv("score_poll_interval")

	viper.SetDefault("listen_address", ":8080")
	viper.SetDefault("db_path", "./data/sbboxes.db")
	viper.SetDefault("jwt_secret", "")
	viper.SetDefault("session_ttl", 24*time.Hour)
	viper.SetDefault("score_feed_url", "")
	viper.SetDefault("score_poll_interval", 10*time.Second)
	viper.SetDefault("team_a_name", "Kansas City Chiefs")
	viper.SetDefault("team_a_abbreviation", "KC")
	viper.SetDefault("team_b_name", "Philadelphia Eagles")
	viper.SetDefault("team_b_abbreviation", "PHI")

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional; env and defaults cover everything.
		slog.Debug("No config file loaded", "error", err)
	}
}

func ListenAddress() string { return viper.GetString("listen_address") }

func DBPath() string { return viper.GetString("db_path") }

func JWTSecret() string { return viper.GetString("jwt_secret") }

func SessionTTL() time.Duration { return viper.GetDuration("session_ttl") }

func ScoreFeedURL() string { return viper.GetString("score_feed_url") }

func ScorePollInterval() time.Duration { return viper.GetDuration("score_poll_interval") }

func TeamAName() string { return viper.GetString("team_a_name") }

func TeamAAbbreviation() string { return viper.GetString("team_a_abbreviation") }

func TeamBName() string { return viper.GetString("team_b_name") }

func TeamBAbbreviation() string { return viper.GetString("team_b_abbreviation") }
