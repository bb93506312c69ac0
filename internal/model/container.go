package model

import (
	"fmt"
	"regexp"
	"time"
)

// Container represents an isolated application container managed by the service.
type Container struct {
	ID        string
	Name      string
	Image     string
	CreatedAt time.Time
}

// ContainerConfig is the static configuration for creating a container.
// These settings are immutable after creation.
type ContainerConfig struct {
	Name string
	// Image is the base image the container root filesystem is created from.
	Image string
	// Packages are installed right after the container is created.
	Packages []string
}

var validContainerName = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)

// Validate validates the container configuration.
func (c *ContainerConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required: %w", ErrNotValid)
	}

	if !validContainerName.MatchString(c.Name) {
		return fmt.Errorf("name %q has invalid characters: %w", c.Name, ErrNotValid)
	}

	if c.Image == "" {
		return fmt.Errorf("image is required: %w", ErrNotValid)
	}

	for _, pkg := range c.Packages {
		if pkg == "" {
			return fmt.Errorf("package names can't be empty: %w", ErrNotValid)
		}
	}

	return nil
}
