package app

import (
	"errors"
	"fmt"
	"slices"
)

// DefaultConfigPath is used when no config path is given.
const DefaultConfigPath = "default-config.yaml"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string // .yaml, .yml or .hcl file, or a directory of them

	LogFormat string
	LogLevel  string
	// Targets overrides the outputs requested from the pipeline.
	Targets         []string
	HealthcheckPort int
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	if slices.Contains(cfg.Targets, "") {
		return nil, errors.New("targets cannot contain an empty name")
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck port %d", cfg.HealthcheckPort)
	}
	cfg.Targets = slices.Clone(cfg.Targets)
	return &cfg, nil
}
