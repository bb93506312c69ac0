package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/slok/appbox/internal/log"
	"github.com/slok/appbox/internal/model"
	"github.com/slok/appbox/internal/storage"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.Repository.
type Repository struct {
	containers map[string]model.Container
	mu         sync.RWMutex
	logger     log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		containers: map[string]model.Container{},
		logger:     cfg.Logger,
	}, nil
}

// CreateContainer creates a new container record in the repository.
func (r *Repository) CreateContainer(ctx context.Context, c model.Container) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.containers[c.Name]; ok {
		return fmt.Errorf("container with name %s: %w", c.Name, model.ErrAlreadyExists)
	}

	r.containers[c.Name] = c
	r.logger.Debugf("Created container in repository: %s", c.Name)

	return nil
}

// GetContainerByName retrieves a container by name.
func (r *Repository) GetContainerByName(ctx context.Context, name string) (*model.Container, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	container, ok := r.containers[name]
	if !ok {
		return nil, fmt.Errorf("container %s: %w", name, model.ErrNotFound)
	}

	// Return a copy.
	containerCopy := container
	return &containerCopy, nil
}

// ContainerExists returns true when a container with the given name exists.
func (r *Repository) ContainerExists(ctx context.Context, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.containers[name]
	return ok, nil
}

// ListContainers returns all containers.
func (r *Repository) ListContainers(ctx context.Context) ([]model.Container, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	containers := make([]model.Container, 0, len(r.containers))
	for _, container := range r.containers {
		containers = append(containers, container)
	}

	return containers, nil
}

// DeleteContainer deletes a container record.
func (r *Repository) DeleteContainer(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.containers[name]; !ok {
		return fmt.Errorf("container %s: %w", name, model.ErrNotFound)
	}

	delete(r.containers, name)
	r.logger.Debugf("Deleted container from repository: %s", name)

	return nil
}

var _ storage.Repository = &Repository{}
