package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/appbox/internal/app/update"
)

type UpdateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	container string
	noWait    bool
}

// NewUpdateCommand returns the update command.
func NewUpdateCommand(rootCmd *RootCommand, app *kingpin.Application) *UpdateCommand {
	c := &UpdateCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("update", "Update all packages of an application container.")
	c.Cmd.Arg("container", "Name of the container.").Required().StringVar(&c.container)
	c.Cmd.Flag("no-wait", "Dispatch the task and return without waiting for completion.").BoolVar(&c.noWait)

	return c
}

func (c UpdateCommand) Name() string { return c.Cmd.FullCommand() }

func (c UpdateCommand) Run(ctx context.Context) error {
	env, err := newEnvironment(ctx, c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := update.NewService(update.ServiceConfig{
		Repository:    env.repo,
		Monitor:       env.monitor,
		DriverFactory: env.drivers,
		Logger:        c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	resp, err := svc.Run(ctx, update.Request{ContainerName: c.container})
	if err != nil {
		return fmt.Errorf("could not dispatch container update: %w", err)
	}

	return waitAndReport(ctx, c.rootCmd, env.monitor, resp.OperationID, resp.Completion, c.noWait)
}
