package main

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"

	"github.com/losinggeneration/rating"
)

type config struct {
	Transport    string `env:"LADDER_TRANSPORT" envDefault:"slack"`
	SlackToken   string `env:"ACCESS_TOKEN"`
	DiscordToken string `env:"DISCORD_BOT_TOKEN"`

	System           string  `env:"LADDER_SYSTEM"             envDefault:"glicko2"`
	EloDefaultRating float64 `env:"LADDER_ELO_DEFAULT_RATING" envDefault:"1500"`
	EloDefaultK      float64 `env:"LADDER_ELO_DEFAULT_K"      envDefault:"32"`

	Database string `env:"LADDER_DATABASE" envDefault:"sqlite"`
	Filename string `env:"LADDER_FILENAME" envDefault:"database.sql"`
	Debug    bool   `env:"LADDER_DEBUG"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.Wrap(err, "unable to parse environment")
	}

	return cfg, nil
}

func (c config) eloConfig() rating.EloConfig {
	return rating.EloConfig{
		DefaultRating: c.EloDefaultRating,
		DefaultK:      c.EloDefaultK,
	}
}

func (c config) token() (string, error) {
	var token string
	switch c.Transport {
	case "slack":
		token = c.SlackToken
	case "discord":
		token = c.DiscordToken
	default:
		return "", errors.Errorf("unknown transport %q", c.Transport)
	}

	if token == "" {
		return "", errors.Errorf("no token set for %s", c.Transport)
	}
	return token, nil
}
