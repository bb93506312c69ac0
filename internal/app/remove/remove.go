package remove

import (
	"context"
	"fmt"

	"github.com/slok/appbox/internal/driver"
	"github.com/slok/appbox/internal/log"
	"github.com/slok/appbox/internal/operation"
	"github.com/slok/appbox/internal/storage"
	"github.com/slok/appbox/internal/task"
)

// ServiceConfig is the configuration for the remove service.
type ServiceConfig struct {
	Repository    storage.Repository
	Monitor       operation.Monitor
	DriverFactory driver.Factory
	Executor      task.Executor
	Logger        log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Monitor == nil {
		return fmt.Errorf("monitor is required")
	}
	if c.DriverFactory == nil {
		return fmt.Errorf("driver factory is required")
	}
	if c.Executor == nil {
		c.Executor = task.Threaded{}
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Remove"})
	return nil
}

// Service dispatches asynchronous package removal tasks.
type Service struct {
	repo     storage.Repository
	monitor  operation.Monitor
	drivers  driver.Factory
	executor task.Executor
	logger   log.Logger
}

// NewService creates a new remove service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:     cfg.Repository,
		monitor:  cfg.Monitor,
		drivers:  cfg.DriverFactory,
		executor: cfg.Executor,
		logger:   cfg.Logger,
	}, nil
}

// Request represents the remove request parameters.
type Request struct {
	ContainerName string
	Packages      []string
}

// Response is the dispatch result.
type Response struct {
	OperationID string
	Completion  task.Handle
}

// Run dispatches a package removal task against the container.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	tsk, err := task.NewRemoveTask(ctx, req.Packages, task.Config{
		ContainerName: req.ContainerName,
		Repository:    s.repo,
		Monitor:       s.monitor,
		DriverFactory: s.drivers,
		Executor:      s.executor,
		Logger:        s.logger,
		Callback: func(t task.Task) {
			s.logger.Debugf("Task %s for container %s completed", t.OperationID(), t.ContainerName())
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not create task: %w", err)
	}

	s.logger.Infof("Removing %v from container %s (operation %s)", req.Packages, req.ContainerName, tsk.OperationID())

	return &Response{
		OperationID: tsk.OperationID(),
		Completion:  tsk.Start(ctx),
	}, nil
}
