package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.yaml.in/yaml/v3"
)

const (
	ConfigPathEnv     = "GUARDRAILS_CONFIG_PATH"
	DefaultConfigPath = "configs/server.yaml"

	DefaultServerName   = "bedrock-guardrails"
	DefaultVersion      = "1.0.0"
	DefaultResourceName = "bedrock_guardrail"
	DefaultPageSize     = 100
	DefaultStream       = "guardrail-events"
	maxPageSize         = 1000
)

// LoadServerConfig reads the YAML file named by GUARDRAILS_CONFIG_PATH, falling back to
// configs/server.yaml. A missing default file yields the built-in defaults; a missing
// file that was asked for explicitly is an error.
func LoadServerConfig() (*ServerConfig, error) {
	path, explicit := os.LookupEnv(ConfigPathEnv)
	if !explicit || path == "" {
		path = DefaultConfigPath
		explicit = false
	}

	var cfg ServerConfig
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *ServerConfig) {
	if cfg.Server.Name == "" {
		cfg.Server.Name = DefaultServerName
	}
	if cfg.Server.Version == "" {
		cfg.Server.Version = DefaultVersion
	}
	if cfg.Terraform.DefaultResourceName == "" {
		cfg.Terraform.DefaultResourceName = DefaultResourceName
	}
	if cfg.List.PageSize == 0 {
		cfg.List.PageSize = DefaultPageSize
	}
	if cfg.Events.Stream == "" {
		cfg.Events.Stream = DefaultStream
	}
}

func (c *ServerConfig) Validate() error {
	if c.List.PageSize < 1 || c.List.PageSize > maxPageSize {
		return fmt.Errorf("list.page_size must be between 1 and %d, got %d", maxPageSize, c.List.PageSize)
	}
	if c.Events.MaxLen < 0 {
		return fmt.Errorf("events.max_len must not be negative, got %d", c.Events.MaxLen)
	}
	return nil
}
