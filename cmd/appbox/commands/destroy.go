package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/appbox/internal/app/destroy"
)

type DestroyCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	container string
	noWait    bool
}

// NewDestroyCommand returns the destroy command.
func NewDestroyCommand(rootCmd *RootCommand, app *kingpin.Application) *DestroyCommand {
	c := &DestroyCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("destroy", "Destroy an application container.")
	c.Cmd.Arg("container", "Name of the container.").Required().StringVar(&c.container)
	c.Cmd.Flag("no-wait", "Dispatch the task and return without waiting for completion.").BoolVar(&c.noWait)

	return c
}

func (c DestroyCommand) Name() string { return c.Cmd.FullCommand() }

func (c DestroyCommand) Run(ctx context.Context) error {
	env, err := newEnvironment(ctx, c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := destroy.NewService(destroy.ServiceConfig{
		Repository:    env.repo,
		Monitor:       env.monitor,
		DriverFactory: env.drivers,
		Logger:        c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	resp, err := svc.Run(ctx, destroy.Request{ContainerName: c.container})
	if err != nil {
		return fmt.Errorf("could not dispatch container destruction: %w", err)
	}

	return waitAndReport(ctx, c.rootCmd, env.monitor, resp.OperationID, resp.Completion, c.noWait)
}
