package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/storekeep/internal/storekeep"
	"github.com/colonyops/storekeep/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	app   *storekeep.App
}

// NewTuiCmd creates the interactive TUI command. It is also the root
// action when no subcommand is given.
func NewTuiCmd(flags *Flags, app *storekeep.App) *TuiCmd {
	return &TuiCmd{flags: flags, app: app}
}

// Run starts the interactive interface.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return tui.Run(cmd.app)
}

// Register adds an explicit tui command alongside the default action.
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:   "tui",
		Usage:  "Open the interactive admin interface",
		Action: cmd.Run,
	})
	return app
}
