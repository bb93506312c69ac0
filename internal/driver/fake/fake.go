package fake

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/slok/appbox/internal/driver"
	"github.com/slok/appbox/internal/log"
	"github.com/slok/appbox/internal/model"
)

// DriverConfig is the configuration for the fake driver.
type DriverConfig struct {
	Logger log.Logger
}

func (c *DriverConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "driver.Fake"})
	return nil
}

// Driver is a fake implementation of driver.Driver. It simulates application
// containers without touching any container runtime, tracking installed
// packages in memory.
type Driver struct {
	packages map[string]map[string]bool
	mu       sync.RWMutex
	logger   log.Logger
}

// NewDriver creates a new fake driver.
func NewDriver(cfg DriverConfig) (*Driver, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Driver{
		packages: map[string]map[string]bool{},
		logger:   cfg.Logger,
	}, nil
}

// Create creates a fake container with the configured packages preinstalled.
func (d *Driver) Create(ctx context.Context, cfg model.ContainerConfig) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.packages[cfg.Name]; ok {
		return fmt.Errorf("container %s: %w", cfg.Name, model.ErrAlreadyExists)
	}

	pkgs := map[string]bool{}
	for _, pkg := range cfg.Packages {
		pkgs[pkg] = true
	}
	d.packages[cfg.Name] = pkgs

	d.logger.Infof("Created fake container %s with %d packages", cfg.Name, len(pkgs))
	return nil
}

// Destroy removes a fake container.
func (d *Driver) Destroy(ctx context.Context, containerName string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.packages[containerName]; !ok {
		return fmt.Errorf("container %s: %w", containerName, model.ErrNotFound)
	}

	delete(d.packages, containerName)
	d.logger.Infof("Destroyed fake container %s", containerName)
	return nil
}

// ListAppIDs returns one application id per installed package, in the
// "<container>_<app>_<version>" form.
func (d *Driver) ListAppIDs(ctx context.Context, containerName string) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	pkgs, ok := d.packages[containerName]
	if !ok {
		return nil, fmt.Errorf("container %s: %w", containerName, model.ErrNotFound)
	}

	appIDs := make([]string, 0, len(pkgs))
	for pkg := range pkgs {
		appIDs = append(appIDs, fmt.Sprintf("%s_%s_0.0", containerName, pkg))
	}
	sort.Strings(appIDs)

	return appIDs, nil
}

// InstallPackages installs packages in a fake container.
func (d *Driver) InstallPackages(ctx context.Context, containerName string, packages []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	pkgs, ok := d.packages[containerName]
	if !ok {
		return fmt.Errorf("container %s: %w", containerName, model.ErrNotFound)
	}

	for _, pkg := range packages {
		pkgs[pkg] = true
	}

	return nil
}

// RemovePackages removes packages from a fake container.
func (d *Driver) RemovePackages(ctx context.Context, containerName string, packages []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	pkgs, ok := d.packages[containerName]
	if !ok {
		return fmt.Errorf("container %s: %w", containerName, model.ErrNotFound)
	}

	for _, pkg := range packages {
		if !pkgs[pkg] {
			return fmt.Errorf("package %s in container %s: %w", pkg, containerName, model.ErrNotFound)
		}
		delete(pkgs, pkg)
	}

	return nil
}

// Update is a no-op for fake containers.
func (d *Driver) Update(ctx context.Context, containerName string) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if _, ok := d.packages[containerName]; !ok {
		return fmt.Errorf("container %s: %w", containerName, model.ErrNotFound)
	}

	return nil
}

var _ driver.Driver = &Driver{}
