package config

import (
	"github.com/caarlos0/env/v11"

	"club-recruitment/internal/config/configs"
)

// Config aggregates all configuration sections for the service. Fields are
// populated from environment variables using the caarlos0/env library; the
// nested structs are parsed with their envPrefix. Use Load to construct a
// Config.
type Config struct {
	// Env names the deployment environment (e.g. prod, dev). It is attached
	// to every log record.
	Env string `env:"ENV" envDefault:"prod"`

	HTTP configs.HTTP `envPrefix:"HTTP_"`

	Log configs.Logger `envPrefix:"LOG_"`

	Psql configs.Postgres `envPrefix:"PSQL_"`

	// Storage selects the repository implementation.
	Storage configs.Storage `envPrefix:"STORAGE_"`

	// NATS configures event publishing. An empty URL logs events instead.
	NATS configs.NATS `envPrefix:"NATS_"`

	Recruitment configs.Recruitment `envPrefix:"RECRUITMENT_"`
}

// Load reads configuration from environment variables into a Config and
// validates the values env cannot check on its own.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Storage.Validate(); err != nil {
		return cfg, err
	}
	if err := cfg.Recruitment.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
