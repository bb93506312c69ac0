package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/appbox/internal/app/remove"
)

type RemoveCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	container string
	packages  []string
	noWait    bool
}

// NewRemoveCommand returns the remove command.
func NewRemoveCommand(rootCmd *RootCommand, app *kingpin.Application) *RemoveCommand {
	c := &RemoveCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("remove", "Remove packages from an application container.")
	c.Cmd.Arg("container", "Name of the container.").Required().StringVar(&c.container)
	c.Cmd.Arg("packages", "Packages to remove.").Required().StringsVar(&c.packages)
	c.Cmd.Flag("no-wait", "Dispatch the task and return without waiting for completion.").BoolVar(&c.noWait)

	return c
}

func (c RemoveCommand) Name() string { return c.Cmd.FullCommand() }

func (c RemoveCommand) Run(ctx context.Context) error {
	env, err := newEnvironment(ctx, c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := remove.NewService(remove.ServiceConfig{
		Repository:    env.repo,
		Monitor:       env.monitor,
		DriverFactory: env.drivers,
		Logger:        c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	resp, err := svc.Run(ctx, remove.Request{
		ContainerName: c.container,
		Packages:      c.packages,
	})
	if err != nil {
		return fmt.Errorf("could not dispatch package removal: %w", err)
	}

	return waitAndReport(ctx, c.rootCmd, env.monitor, resp.OperationID, resp.Completion, c.noWait)
}
