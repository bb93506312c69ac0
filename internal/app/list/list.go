package list

import (
	"context"
	"fmt"

	"github.com/slok/appbox/internal/log"
	"github.com/slok/appbox/internal/model"
	"github.com/slok/appbox/internal/storage"
)

// ServiceConfig is the configuration for the list service.
type ServiceConfig struct {
	Repository storage.Repository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.List"})

	return nil
}

// Service lists the managed containers.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the list request parameters.
type Request struct{}

// Run lists all containers.
func (s *Service) Run(ctx context.Context, req Request) ([]model.Container, error) {
	containers, err := s.repo.ListContainers(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list containers: %w", err)
	}

	s.logger.Debugf("Found %d containers", len(containers))
	return containers, nil
}
