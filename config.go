package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	BotToken       string
	AviasalesToken string
	Env            string
	BadgerPath     string
}

func (c Config) isProduction() bool {
	return c.Env == "production"
}

// loadConfig reads configuration from the environment. The bot token and
// the fare-API token are required; startup must not proceed without them.
func loadConfig() (Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("ENV", "development")
	viper.SetDefault("BADGER_PATH", "/tmp/samolotik")

	cfg := Config{
		BotToken:       viper.GetString("BOT_TOKEN"),
		AviasalesToken: viper.GetString("TRAVELPAYOUTS_AVIASALES"),
		Env:            viper.GetString("ENV"),
		BadgerPath:     viper.GetString("BADGER_PATH"),
	}

	var missing []string
	if cfg.BotToken == "" {
		missing = append(missing, "BOT_TOKEN")
	}
	if cfg.AviasalesToken == "" {
		missing = append(missing, "TRAVELPAYOUTS_AVIASALES")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}
