package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/appbox/internal/app/operations"
)

// OperationListCommand lists the known operations.
type OperationListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewOperationListCommand returns the operation list command.
func NewOperationListCommand(rootCmd *RootCommand, opCmd *OperationCommand) *OperationListCommand {
	c := &OperationListCommand{rootCmd: rootCmd}

	c.Cmd = opCmd.Cmd.Command("list", "List all operations.")
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c OperationListCommand) Name() string { return c.Cmd.FullCommand() }

func (c OperationListCommand) Run(ctx context.Context) error {
	env, err := newEnvironment(ctx, c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := operations.NewService(operations.ServiceConfig{
		Monitor: env.monitor,
		Logger:  c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	ops, err := svc.List(ctx)
	if err != nil {
		return fmt.Errorf("could not list operations: %w", err)
	}

	p := newPrinter(c.rootCmd, c.format)
	if err := p.PrintOperationList(ops); err != nil {
		return fmt.Errorf("could not print operation list: %w", err)
	}

	return nil
}
