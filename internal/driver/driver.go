package driver

import (
	"context"

	"github.com/slok/appbox/internal/model"
)

// Driver performs the real work inside an application container. Implementations
// are safe for concurrent invocation from multiple tasks.
type Driver interface {
	// Create creates the container from its configuration and installs the
	// configured packages.
	Create(ctx context.Context, cfg model.ContainerConfig) error

	// Destroy removes the container and its resources.
	Destroy(ctx context.Context, containerName string) error

	// ListAppIDs enumerates the application ids installed in the container.
	ListAppIDs(ctx context.Context, containerName string) ([]string, error)

	// InstallPackages installs the given packages in the container.
	InstallPackages(ctx context.Context, containerName string, packages []string) error

	// RemovePackages removes the given packages from the container.
	RemovePackages(ctx context.Context, containerName string, packages []string) error

	// Update updates the packages installed in the container.
	Update(ctx context.Context, containerName string) error
}

// Factory creates a fresh driver for each task execution so tasks never hold a
// driver before their precondition check has passed.
type Factory interface {
	NewDriver(ctx context.Context) (Driver, error)
}

// FactoryFunc is a function adapter for Factory.
type FactoryFunc func(ctx context.Context) (Driver, error)

func (f FactoryFunc) NewDriver(ctx context.Context) (Driver, error) { return f(ctx) }

// StaticFactory returns a factory that always hands out the same driver.
func StaticFactory(d Driver) Factory {
	return FactoryFunc(func(ctx context.Context) (Driver, error) { return d, nil })
}
