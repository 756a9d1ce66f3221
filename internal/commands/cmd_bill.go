package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/storekeep/internal/gateway"
	"github.com/colonyops/storekeep/internal/storekeep"
	"github.com/colonyops/storekeep/pkg/iojson"
)

type BillCmd struct {
	flags *Flags
	app   *storekeep.App

	// flags
	jsonOutput bool
}

// NewBillCmd creates the bill command group.
func NewBillCmd(flags *Flags, app *storekeep.App) *BillCmd {
	return &BillCmd{flags: flags, app: app}
}

// Register adds the bill commands to the application.
func (cmd *BillCmd) Register(app *cli.Command) *cli.Command {
	jsonFlag := &cli.BoolFlag{
		Name:        "json",
		Usage:       "output as JSON",
		Destination: &cmd.jsonOutput,
	}

	app.Commands = append(app.Commands, &cli.Command{
		Name:  "bill",
		Usage: "Inspect and generate bills",
		Commands: []*cli.Command{
			{
				Name:      "ls",
				Usage:     "List all bills",
				UsageText: "storekeep bill ls [--json]",
				Flags:     []cli.Flag{jsonFlag},
				Action:    cmd.runLs,
			},
			{
				Name:      "get",
				Usage:     "Show a bill with its line items",
				UsageText: "storekeep bill get <id> [--json]",
				Flags:     []cli.Flag{jsonFlag},
				Action:    cmd.runGet,
			},
			{
				Name:  "generate",
				Usage: "Generate bills for all customers",
				UsageText: "storekeep bill generate\n\n" +
					"Asks the billing service to create bills for every existing customer\n" +
					"across all existing products.",
				Action: cmd.runGenerate,
			},
		},
	})

	return app
}

func (cmd *BillCmd) runLs(ctx context.Context, c *cli.Command) error {
	defer attachConsole(cmd.app.Notifications)()

	bills, err := cmd.app.Gateway.ListBills(ctx)
	if err != nil {
		return fmt.Errorf("list bills: %w", err)
	}

	if cmd.jsonOutput {
		return iojson.Write(bills)
	}

	if len(bills) == 0 {
		fmt.Fprintln(os.Stderr, "No bills found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tCUSTOMER\tITEMS\tTOTAL")
	for _, bill := range bills {
		customer := fmt.Sprintf("#%d", bill.CustomerID)
		if bill.Customer != nil {
			customer = bill.Customer.Name
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.2f\n",
			bill.ID, bill.BillingDate, customer, len(bill.ProductItems), billTotal(bill))
	}
	return w.Flush()
}

func (cmd *BillCmd) runGet(ctx context.Context, c *cli.Command) error {
	defer attachConsole(cmd.app.Notifications)()

	raw := c.Args().First()
	if raw == "" {
		return fmt.Errorf("missing required argument: bill id")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid bill id %q: %w", raw, err)
	}

	bill, err := cmd.app.Gateway.Bill(ctx, id)
	if err != nil {
		if gateway.IsNotFound(err) {
			// The classified notification already told the user; exit
			// with a terse error like a missing file would.
			return fmt.Errorf("bill %d not found", id)
		}
		return fmt.Errorf("get bill: %w", err)
	}

	if cmd.jsonOutput {
		return iojson.Write(bill)
	}

	customer := fmt.Sprintf("#%d", bill.CustomerID)
	if bill.Customer != nil {
		customer = fmt.Sprintf("%s <%s>", bill.Customer.Name, bill.Customer.Email)
	}
	fmt.Printf("Bill %d\nDate:     %s\nCustomer: %s\n\n", bill.ID, bill.BillingDate, customer)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tQTY\tUNIT PRICE\tAMOUNT")
	for _, item := range bill.ProductItems {
		name := item.ProductID
		if item.Product != nil {
			name = item.Product.Name
		}
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\n",
			name, item.Quantity, item.UnitPrice, float64(item.Quantity)*item.UnitPrice)
	}
	fmt.Fprintf(w, "\tTOTAL\t\t%.2f\n", billTotal(bill))
	return w.Flush()
}

func (cmd *BillCmd) runGenerate(ctx context.Context, c *cli.Command) error {
	defer attachConsole(cmd.app.Notifications)()

	if err := cmd.app.GenerateBills(ctx); err != nil {
		return fmt.Errorf("generate bills: %w", err)
	}
	return nil
}

func billTotal(b gateway.Bill) float64 {
	var total float64
	for _, item := range b.ProductItems {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}
