package commands

import (
	"github.com/alecthomas/kingpin/v2"
)

// OperationCommand is the parent command for operation query subcommands.
type OperationCommand struct {
	Cmd *kingpin.CmdClause
}

// NewOperationCommand returns the operation parent command.
func NewOperationCommand(app *kingpin.Application) *OperationCommand {
	c := &OperationCommand{}

	c.Cmd = app.Command("operation", "Query dispatched operations.")

	return c
}
