package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/appbox/internal/app/operations"
)

// OperationGetCommand shows a single operation.
type OperationGetCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	operationID string
	format      string
}

// NewOperationGetCommand returns the operation get command.
func NewOperationGetCommand(rootCmd *RootCommand, opCmd *OperationCommand) *OperationGetCommand {
	c := &OperationGetCommand{rootCmd: rootCmd}

	c.Cmd = opCmd.Cmd.Command("get", "Show a single operation.")
	c.Cmd.Arg("id", "Operation id.").Required().StringVar(&c.operationID)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c OperationGetCommand) Name() string { return c.Cmd.FullCommand() }

func (c OperationGetCommand) Run(ctx context.Context) error {
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

	op, err := svc.Get(ctx, c.operationID)
	if err != nil {
		return fmt.Errorf("could not get operation: %w", err)
	}

	p := newPrinter(c.rootCmd, c.format)
	if err := p.PrintOperation(*op); err != nil {
		return fmt.Errorf("could not print operation: %w", err)
	}

	return nil
}
