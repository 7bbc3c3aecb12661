package config

import (
	"time"
)

// Runtime environments.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Cheminformatics engine selectors.
const (
	EngineBuiltin = "builtin"
	EngineRemote  = "remote"
)

// Config represents the complete configuration for the annotation backend.
// It provides type-safe access to all configuration values with validation.
type Config struct {
	Server  ServerConfig  `koanf:"server"  validate:"required"`
	Runtime RuntimeConfig `koanf:"runtime" validate:"required"`
	Chem    ChemConfig    `koanf:"chem"    validate:"required"`
	Seed    SeedConfig    `koanf:"seed"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host               string        `koanf:"host"                 validate:"required"        env:"SERVER_HOST"`
	Port               int           `koanf:"port"                 validate:"min=1,max=65535" env:"SERVER_PORT"`
	CORSAllowedOrigins []string      `koanf:"cors_allowed_origins"                            env:"SERVER_CORS_ALLOWED_ORIGINS"`
	Timeout            time.Duration `koanf:"timeout"                                         env:"SERVER_TIMEOUT"`
}

// RuntimeConfig contains runtime behavior configuration.
type RuntimeConfig struct {
	Environment string `koanf:"environment" validate:"oneof=development staging production" env:"RUNTIME_ENVIRONMENT"`
	LogLevel    string `koanf:"log_level"   validate:"oneof=debug info warn error"          env:"RUNTIME_LOG_LEVEL"`
}

// ChemConfig selects and bounds the cheminformatics engine.
type ChemConfig struct {
	Engine           string        `koanf:"engine"            validate:"oneof=builtin remote"       env:"CHEM_ENGINE"`
	RemoteURL        string        `koanf:"remote_url"        validate:"required_if=Engine remote"  env:"CHEM_REMOTE_URL"`
	NormalizeTimeout time.Duration `koanf:"normalize_timeout" validate:"min=0"                      env:"CHEM_NORMALIZE_TIMEOUT"`
	ConformerTimeout time.Duration `koanf:"conformer_timeout" validate:"min=0"                      env:"CHEM_CONFORMER_TIMEOUT"`
}

// SeedConfig controls the startup seed set.
type SeedConfig struct {
	File    string `koanf:"file"    env:"SEED_FILE"`
	Disable bool   `koanf:"disable" env:"SEED_DISABLE"`
}

// Default returns the baseline configuration; environment variables override it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:               "0.0.0.0",
			Port:               8000,
			CORSAllowedOrigins: []string{"*"},
			Timeout:            15 * time.Second,
		},
		Runtime: RuntimeConfig{
			Environment: EnvDevelopment,
			LogLevel:    "info",
		},
		Chem: ChemConfig{
			Engine:           EngineBuiltin,
			NormalizeTimeout: 5 * time.Second,
			ConformerTimeout: 30 * time.Second,
		},
		Seed: SeedConfig{},
	}
}
