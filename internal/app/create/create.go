package create

import (
	"context"
	"fmt"

	"github.com/slok/appbox/internal/driver"
	"github.com/slok/appbox/internal/log"
	"github.com/slok/appbox/internal/model"
	"github.com/slok/appbox/internal/operation"
	"github.com/slok/appbox/internal/storage"
	"github.com/slok/appbox/internal/task"
)

// ServiceConfig is the configuration for the create service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Create"})
	return nil
}

// Service dispatches asynchronous container creation tasks.
type Service struct {
	repo     storage.Repository
	monitor  operation.Monitor
	drivers  driver.Factory
	executor task.Executor
	logger   log.Logger
}

// NewService creates a new create service.
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

// Request represents the create request parameters.
type Request struct {
	Config model.ContainerConfig
}

// Response is the dispatch result.
type Response struct {
	OperationID string
	Completion  task.Handle
}

// Run dispatches a container creation task.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	tsk, err := task.NewCreateTask(ctx, req.Config, task.Config{
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

	s.logger.Infof("Creating container %s from image %s (operation %s)", req.Config.Name, req.Config.Image, tsk.OperationID())

	return &Response{
		OperationID: tsk.OperationID(),
		Completion:  tsk.Start(ctx),
	}, nil
}
