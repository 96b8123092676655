package config

import "github.com/caarlos0/env/v11"

type CoordinatorConfig struct {
	CountdownSeconds int `env:"COORDINATOR_COUNTDOWN_SECONDS" envDefault:"5"`

	// DestroyFinished tears a room down right after the match result
	// broadcast instead of waiting for both participants to disconnect.
	DestroyFinished bool `env:"COORDINATOR_DESTROY_FINISHED" envDefault:"false"`

	SendBuffer int `env:"COORDINATOR_SEND_BUFFER" envDefault:"16"`
}

func LoadCoordinator() (CoordinatorConfig, error) {
	var cfg CoordinatorConfig
	err := env.Parse(&cfg)
	return cfg, err
}
