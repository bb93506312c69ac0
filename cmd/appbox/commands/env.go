package commands

import (
	"context"
	"fmt"

	"github.com/slok/appbox/internal/driver"
	"github.com/slok/appbox/internal/driver/docker"
	"github.com/slok/appbox/internal/driver/fake"
	"github.com/slok/appbox/internal/operation"
	operationsqlite "github.com/slok/appbox/internal/operation/sqlite"
	"github.com/slok/appbox/internal/printer"
	"github.com/slok/appbox/internal/storage"
	storagesqlite "github.com/slok/appbox/internal/storage/sqlite"
	"github.com/slok/appbox/internal/task"
)

// environment groups the shared dependencies every container command needs:
// the SQLite repository, the operations monitor on the same database and the
// driver factory selected with the global driver flag.
type environment struct {
	repo    storage.Repository
	monitor operation.Monitor
	drivers driver.Factory
}

func newEnvironment(ctx context.Context, rootCmd *RootCommand) (*environment, error) {
	repo, err := storagesqlite.NewRepository(ctx, storagesqlite.RepositoryConfig{
		DBPath: rootCmd.DBPath,
		Logger: rootCmd.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}

	monitor, err := operationsqlite.NewMonitor(operationsqlite.MonitorConfig{
		DB:     repo.DB(),
		Logger: rootCmd.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create operations monitor: %w", err)
	}

	// Drivers are created per task execution so failures surface through the
	// operation itself instead of aborting the dispatch.
	var drivers driver.Factory
	switch rootCmd.DriverType {
	case DriverTypeFake:
		drivers = driver.FactoryFunc(func(_ context.Context) (driver.Driver, error) {
			return fake.NewDriver(fake.DriverConfig{Logger: rootCmd.Logger})
		})
	default:
		drivers = driver.FactoryFunc(func(_ context.Context) (driver.Driver, error) {
			return docker.NewDriver(docker.DriverConfig{Logger: rootCmd.Logger})
		})
	}

	return &environment{
		repo:    repo,
		monitor: monitor,
		drivers: drivers,
	}, nil
}

// newPrinter returns the printer matching the format flag value.
func newPrinter(rootCmd *RootCommand, format string) printer.Printer {
	switch format {
	case "json":
		return printer.NewJSONPrinter(rootCmd.Stdout)
	default:
		return printer.NewTablePrinter(rootCmd.Stdout)
	}
}

// waitAndReport waits for a dispatched task and prints its final operation
// state. With noWait it only prints the operation id so the caller can check
// it later.
func waitAndReport(ctx context.Context, rootCmd *RootCommand, monitor operation.Monitor, operationID string, completion task.Handle, noWait bool) error {
	p := printer.NewTablePrinter(rootCmd.Stdout)

	if noWait {
		return p.PrintMessage(fmt.Sprintf("Operation %s dispatched", operationID))
	}

	completion.Wait()

	op, err := monitor.GetOperation(ctx, operationID)
	if err != nil {
		return fmt.Errorf("could not get operation result: %w", err)
	}

	if err := p.PrintOperation(*op); err != nil {
		return fmt.Errorf("could not print operation: %w", err)
	}

	if op.Error != "" {
		return fmt.Errorf("operation failed: %s", op.Error)
	}

	return nil
}
