package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/appbox/internal/app/listappids"
	"github.com/slok/appbox/internal/printer"
)

type AppsCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	container string
	noWait    bool
}

// NewAppsCommand returns the apps command.
func NewAppsCommand(rootCmd *RootCommand, app *kingpin.Application) *AppsCommand {
	c := &AppsCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("apps", "List the application ids installed in a container.")
	c.Cmd.Arg("container", "Name of the container.").Required().StringVar(&c.container)
	c.Cmd.Flag("no-wait", "Dispatch the task and return without waiting for completion.").BoolVar(&c.noWait)

	return c
}

func (c AppsCommand) Name() string { return c.Cmd.FullCommand() }

func (c AppsCommand) Run(ctx context.Context) error {
	env, err := newEnvironment(ctx, c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := listappids.NewService(listappids.ServiceConfig{
		Repository:    env.repo,
		Monitor:       env.monitor,
		DriverFactory: env.drivers,
		Logger:        c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	resp, err := svc.Run(ctx, listappids.Request{ContainerName: c.container})
	if err != nil {
		return fmt.Errorf("could not dispatch app id listing: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)

	if c.noWait {
		return p.PrintMessage(fmt.Sprintf("Operation %s dispatched", resp.OperationID))
	}

	resp.Completion.Wait()

	op, err := env.monitor.GetOperation(ctx, resp.OperationID)
	if err != nil {
		return fmt.Errorf("could not get operation result: %w", err)
	}

	if op.Error != "" {
		return fmt.Errorf("operation failed: %s", op.Error)
	}

	// Each data payload is a JSON encoded list of app ids.
	for _, payload := range op.Data {
		var appIDs []string
		if err := json.Unmarshal([]byte(payload), &appIDs); err != nil {
			return fmt.Errorf("could not decode app id payload: %w", err)
		}

		for _, id := range appIDs {
			if err := p.PrintMessage(id); err != nil {
				return err
			}
		}
	}

	return nil
}
