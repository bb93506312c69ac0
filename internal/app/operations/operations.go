package operations

import (
	"context"
	"fmt"

	"github.com/slok/appbox/internal/log"
	"github.com/slok/appbox/internal/model"
	"github.com/slok/appbox/internal/operation"
)

// ServiceConfig is the configuration for the operations query service.
type ServiceConfig struct {
	Monitor operation.Monitor
	Logger  log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Monitor == nil {
		return fmt.Errorf("monitor is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Operations"})

	return nil
}

// Service answers queries about dispatched operations.
type Service struct {
	monitor operation.Monitor
	logger  log.Logger
}

// NewService creates a new operations query service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		monitor: cfg.Monitor,
		logger:  cfg.Logger,
	}, nil
}

// Get returns a single operation by id.
func (s *Service) Get(ctx context.Context, operationID string) (*model.Operation, error) {
	op, err := s.monitor.GetOperation(ctx, operationID)
	if err != nil {
		return nil, fmt.Errorf("could not get operation: %w", err)
	}

	return op, nil
}

// List returns all known operations.
func (s *Service) List(ctx context.Context) ([]model.Operation, error) {
	ops, err := s.monitor.ListOperations(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list operations: %w", err)
	}

	s.logger.Debugf("Found %d operations", len(ops))
	return ops, nil
}
