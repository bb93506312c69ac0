package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/appbox/internal/app/list"
	storagesqlite "github.com/slok/appbox/internal/storage/sqlite"
)

type ListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewListCommand returns the list command.
func NewListCommand(rootCmd *RootCommand, app *kingpin.Application) *ListCommand {
	c := &ListCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("list", "List all application containers.")
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c ListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ListCommand) Run(ctx context.Context) error {
	repo, err := storagesqlite.NewRepository(ctx, storagesqlite.RepositoryConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}

	svc, err := list.NewService(list.ServiceConfig{
		Repository: repo,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	containers, err := svc.Run(ctx, list.Request{})
	if err != nil {
		return fmt.Errorf("could not list containers: %w", err)
	}

	p := newPrinter(c.rootCmd, c.format)
	if err := p.PrintContainerList(containers); err != nil {
		return fmt.Errorf("could not print list: %w", err)
	}

	return nil
}
