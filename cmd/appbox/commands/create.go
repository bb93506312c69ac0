package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/appbox/internal/app/create"
	"github.com/slok/appbox/internal/model"
	storageio "github.com/slok/appbox/internal/storage/io"
)

type CreateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	name       string
	image      string
	packages   []string
	configFile string
	noWait     bool
}

// NewCreateCommand returns the create command.
func NewCreateCommand(rootCmd *RootCommand, app *kingpin.Application) *CreateCommand {
	c := &CreateCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("create", "Create a new application container.")
	c.Cmd.Flag("name", "Name for the container.").Short('n').StringVar(&c.name)
	c.Cmd.Flag("image", "Base image for the container.").Short('i').StringVar(&c.image)
	c.Cmd.Flag("package", "Package to preinstall (can be repeated).").Short('p').StringsVar(&c.packages)
	c.Cmd.Flag("config", "Path to a YAML container configuration file (overrides the other flags).").Short('c').StringVar(&c.configFile)
	c.Cmd.Flag("no-wait", "Dispatch the task and return without waiting for completion.").BoolVar(&c.noWait)

	return c
}

func (c CreateCommand) Name() string { return c.Cmd.FullCommand() }

func (c CreateCommand) Run(ctx context.Context) error {
	var cfg model.ContainerConfig

	if c.configFile != "" {
		dir, file := filepath.Split(c.configFile)
		if dir == "" {
			dir = "."
		}

		loader := storageio.NewConfigYAMLRepository(os.DirFS(dir))
		loaded, err := loader.GetConfig(ctx, file)
		if err != nil {
			return fmt.Errorf("could not load container config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = model.ContainerConfig{
			Name:     c.name,
			Image:    c.image,
			Packages: c.packages,
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid container config: %w", err)
		}
	}

	env, err := newEnvironment(ctx, c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := create.NewService(create.ServiceConfig{
		Repository:    env.repo,
		Monitor:       env.monitor,
		DriverFactory: env.drivers,
		Logger:        c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	resp, err := svc.Run(ctx, create.Request{Config: cfg})
	if err != nil {
		return fmt.Errorf("could not dispatch container creation: %w", err)
	}

	return waitAndReport(ctx, c.rootCmd, env.monitor, resp.OperationID, resp.Completion, c.noWait)
}
