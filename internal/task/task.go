package task

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/slok/appbox/internal/driver"
	"github.com/slok/appbox/internal/log"
	"github.com/slok/appbox/internal/model"
	"github.com/slok/appbox/internal/operation"
	"github.com/slok/appbox/internal/storage"
)

// Callback is invoked exactly once with the completed task, after all monitor
// reporting for it is done. Many tasks can share a single callback, the task
// argument identifies which one finished.
type Callback func(t Task)

// Task is a unit of asynchronous work tied to one container and one operation
// id. A task is started exactly once and runs to exactly one terminal outcome:
// precondition failure, runtime failure or success.
type Task interface {
	OperationID() string
	ContainerName() string
	Kind() model.OperationKind

	// Start validates the task precondition synchronously and launches the
	// task body through the executor. It never surfaces execution failures to
	// the caller, outcomes are observed through the monitor and the callback.
	// The returned handle blocks until the whole lifecycle has completed.
	Start(ctx context.Context) Handle
}

// Config is the common configuration for all task kinds.
type Config struct {
	ContainerName string
	Repository    storage.Repository
	Monitor       operation.Monitor
	DriverFactory driver.Factory
	Callback      Callback
	Executor      Executor
	Logger        log.Logger
}

func (c *Config) defaults() error {
	if c.ContainerName == "" {
		return fmt.Errorf("container name is required")
	}
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Monitor == nil {
		return fmt.Errorf("monitor is required")
	}
	if c.DriverFactory == nil {
		return fmt.Errorf("driver factory is required")
	}
	if c.Callback == nil {
		c.Callback = func(Task) {}
	}
	if c.Executor == nil {
		c.Executor = Threaded{}
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	return nil
}

// base implements the lifecycle shared by every task kind: register with the
// monitor at construction time, validate the precondition synchronously on
// Start, run the body through the executor, report exactly one terminal
// outcome and dispatch the callback last.
type base struct {
	kind          model.OperationKind
	containerName string
	repo          storage.Repository
	monitor       operation.Monitor
	drivers       driver.Factory
	callback      Callback
	executor      Executor
	logger        log.Logger

	operationID  string
	terminal     atomic.Bool
	callbackOnce sync.Once
}

// newBase validates the config and registers the operation with the monitor.
// Failing to obtain an operation id is fatal: the task can't proceed without
// a way to report its outcome.
func newBase(ctx context.Context, kind model.OperationKind, cfg Config) (*base, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	operationID, err := cfg.Monitor.NewOperation(ctx, cfg.ContainerName, kind)
	if err != nil {
		return nil, fmt.Errorf("could not register operation: %w", err)
	}

	logger := cfg.Logger.WithValues(log.Kv{"operation": operationID, "container": cfg.ContainerName, "kind": kind})

	return &base{
		kind:          kind,
		containerName: cfg.ContainerName,
		repo:          cfg.Repository,
		monitor:       cfg.Monitor,
		drivers:       cfg.DriverFactory,
		callback:      cfg.Callback,
		executor:      cfg.Executor,
		logger:        logger,
		operationID:   operationID,
	}, nil
}

func (b *base) OperationID() string       { return b.operationID }
func (b *base) ContainerName() string     { return b.containerName }
func (b *base) Kind() model.OperationKind { return b.kind }

// start drives the shared lifecycle. The precondition runs synchronously on
// the caller's goroutine, before any driver is created: a failed precondition
// short-circuits with an error report and an already resolved handle. The body
// runs through the executor with a freshly created driver and reports its own
// data payloads, its returned error becomes the operation error.
func (b *base) start(ctx context.Context, self Task, precondition func(context.Context) error, body func(context.Context, driver.Driver) error) Handle {
	if err := precondition(ctx); err != nil {
		b.reportError(ctx, err.Error())
		b.dispatchCallback(self)
		return completedHandle{}
	}

	return b.executor.Execute(func() {
		defer b.dispatchCallback(self)

		drv, err := b.drivers.NewDriver(ctx)
		if err != nil {
			b.reportError(ctx, fmt.Sprintf("Could not create container driver: %s", err))
			return
		}

		if err := body(ctx, drv); err != nil {
			b.reportError(ctx, err.Error())
			return
		}

		b.reportFinished(ctx)
	})
}

// requireContainerExists is the precondition shared by every task that acts on
// an existing container. The verb personalizes the reported message.
func (b *base) requireContainerExists(verb string) func(context.Context) error {
	return func(ctx context.Context) error {
		exists, err := b.repo.ContainerExists(ctx, b.containerName)
		if err != nil {
			return fmt.Errorf("Could not check container '%s': %s", b.containerName, err)
		}
		if !exists {
			return fmt.Errorf("Container '%s' does not exist, skipping %s", b.containerName, verb)
		}
		return nil
	}
}

// requireContainerAbsent is the inverted precondition used by container
// creation.
func (b *base) requireContainerAbsent() func(context.Context) error {
	return func(ctx context.Context) error {
		exists, err := b.repo.ContainerExists(ctx, b.containerName)
		if err != nil {
			return fmt.Errorf("Could not check container '%s': %s", b.containerName, err)
		}
		if exists {
			return fmt.Errorf("Container '%s' already exists", b.containerName)
		}
		return nil
	}
}

// reportData JSON encodes the payload and attaches it to the operation so it
// is transport safe regardless of the payload shape. Bodies can call it any
// number of times before they return.
func (b *base) reportData(ctx context.Context, payload any) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("could not encode payload: %w", err)
	}

	if err := b.monitor.Data(ctx, b.operationID, string(encoded)); err != nil {
		return fmt.Errorf("could not report data: %w", err)
	}

	return nil
}

// reportError records the failed terminal outcome. The terminal flag keeps
// error and finished mutually exclusive and at-most-once per operation.
func (b *base) reportError(ctx context.Context, message string) {
	if !b.terminal.CompareAndSwap(false, true) {
		return
	}

	b.logger.Warningf("Task failed: %s", message)
	if err := b.monitor.Error(ctx, b.operationID, message); err != nil {
		b.logger.Errorf("Could not report operation error: %s", err)
	}
}

// reportFinished records the successful terminal outcome.
func (b *base) reportFinished(ctx context.Context) {
	if !b.terminal.CompareAndSwap(false, true) {
		return
	}

	done, err := b.monitor.Done(ctx, b.operationID)
	if err != nil {
		b.logger.Errorf("Could not check operation state: %s", err)
		return
	}
	if done {
		return
	}

	if err := b.monitor.Finished(ctx, b.operationID); err != nil {
		b.logger.Errorf("Could not report operation finished: %s", err)
	}
}

// dispatchCallback invokes the stored callback with the task itself, exactly
// once, strictly after all monitor reporting.
func (b *base) dispatchCallback(self Task) {
	b.callbackOnce.Do(func() {
		b.callback(self)
	})
}
