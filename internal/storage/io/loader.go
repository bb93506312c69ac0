package io

import (
	"context"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/slok/appbox/internal/model"
)

// ConfigYAMLRepository loads container configuration from YAML files.
type ConfigYAMLRepository struct {
	fs fs.FS
}

// NewConfigYAMLRepository creates a new YAML config repository.
func NewConfigYAMLRepository(filesystem fs.FS) *ConfigYAMLRepository {
	return &ConfigYAMLRepository{fs: filesystem}
}

// GetConfig loads a container configuration from a YAML file and returns a
// validated domain model.
func (r *ConfigYAMLRepository) GetConfig(ctx context.Context, path string) (model.ContainerConfig, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return model.ContainerConfig{}, fmt.Errorf("reading config file: %w", err)
	}

	if ctx.Err() != nil {
		return model.ContainerConfig{}, ctx.Err()
	}

	var cfg ContainerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return model.ContainerConfig{}, fmt.Errorf("parsing YAML: %w", err)
	}

	mCfg := cfg.toModel()
	if err := mCfg.Validate(); err != nil {
		return model.ContainerConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return mCfg, nil
}

// ContainerConfig represents the YAML structure for container configuration.
type ContainerConfig struct {
	Name     string   `yaml:"name"`
	Image    string   `yaml:"image"`
	Packages []string `yaml:"packages"`
}

func (c ContainerConfig) toModel() model.ContainerConfig {
	return model.ContainerConfig{
		Name:     c.Name,
		Image:    c.Image,
		Packages: c.Packages,
	}
}
