package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/storekeep/internal/core/styles"
	"github.com/colonyops/storekeep/internal/storekeep"
)

type PingCmd struct {
	flags *Flags
	app   *storekeep.App
}

// NewPingCmd creates the ping command.
func NewPingCmd(flags *Flags, app *storekeep.App) *PingCmd {
	return &PingCmd{flags: flags, app: app}
}

// Register adds the ping command to the application.
func (cmd *PingCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "ping",
		Usage: "Check whether the API gateway is reachable",
		UsageText: "storekeep ping\n\n" +
			"Any HTTP response from the gateway, even an error status, counts as\n" +
			"reachable. Only a connection failure reports unreachable.",
		Action: cmd.run,
	})
	return app
}

func (cmd *PingCmd) run(ctx context.Context, c *cli.Command) error {
	defer attachConsole(cmd.app.Notifications)()

	url := cmd.app.Config.Gateway.URL
	if cmd.app.Gateway.Reachable(ctx) {
		fmt.Println(styles.SuccessStyle.Render("✓") + " gateway reachable at " + url)
		return nil
	}

	return fmt.Errorf("gateway unreachable at %s", url)
}
