package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	PostgresDSN string `env:"POSTGRES_DSN,required,notEmpty"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	JWTSecret  string `env:"JWT_SECRET,required,notEmpty"`
	JWTTTLMins int    `env:"JWT_TTL_MINUTES" envDefault:"60"`

	CORSOrigin string `env:"CORS_ORIGIN"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
