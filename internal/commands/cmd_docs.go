package commands

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
)

//go:embed docs/usage.md
var usageDoc string

type DocsCmd struct {
	flags *Flags
}

// NewDocsCmd creates the docs command.
func NewDocsCmd(flags *Flags) *DocsCmd {
	return &DocsCmd{flags: flags}
}

// Register adds the docs command to the application.
func (cmd *DocsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:   "docs",
		Usage:  "Show the user guide in the terminal",
		Action: cmd.run,
	})
	return app
}

func (cmd *DocsCmd) run(ctx context.Context, c *cli.Command) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := renderer.Render(usageDoc)
	if err != nil {
		return fmt.Errorf("render docs: %w", err)
	}

	fmt.Print(out)
	return nil
}
