package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/appbox/internal/app/install"
)

type InstallCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	container string
	packages  []string
	noWait    bool
}

// NewInstallCommand returns the install command.
func NewInstallCommand(rootCmd *RootCommand, app *kingpin.Application) *InstallCommand {
	c := &InstallCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("install", "Install packages in an application container.")
	c.Cmd.Arg("container", "Name of the container.").Required().StringVar(&c.container)
	c.Cmd.Arg("packages", "Packages to install.").Required().StringsVar(&c.packages)
	c.Cmd.Flag("no-wait", "Dispatch the task and return without waiting for completion.").BoolVar(&c.noWait)

	return c
}

func (c InstallCommand) Name() string { return c.Cmd.FullCommand() }

func (c InstallCommand) Run(ctx context.Context) error {
	env, err := newEnvironment(ctx, c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := install.NewService(install.ServiceConfig{
		Repository:    env.repo,
		Monitor:       env.monitor,
		DriverFactory: env.drivers,
		Logger:        c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	resp, err := svc.Run(ctx, install.Request{
		ContainerName: c.container,
		Packages:      c.packages,
	})
	if err != nil {
		return fmt.Errorf("could not dispatch package installation: %w", err)
	}

	return waitAndReport(ctx, c.rootCmd, env.monitor, resp.OperationID, resp.Completion, c.noWait)
}
