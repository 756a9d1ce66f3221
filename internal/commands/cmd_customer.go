package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/storekeep/internal/gateway"
	"github.com/colonyops/storekeep/internal/storekeep"
	"github.com/colonyops/storekeep/pkg/iojson"
)

type CustomerCmd struct {
	flags *Flags
	app   *storekeep.App

	// flags
	jsonOutput bool
	name       string
	email      string
}

// NewCustomerCmd creates the customer command group.
func NewCustomerCmd(flags *Flags, app *storekeep.App) *CustomerCmd {
	return &CustomerCmd{flags: flags, app: app}
}

// Register adds the customer commands to the application.
func (cmd *CustomerCmd) Register(app *cli.Command) *cli.Command {
	jsonFlag := &cli.BoolFlag{
		Name:        "json",
		Usage:       "output as JSON",
		Destination: &cmd.jsonOutput,
	}
	inputFlags := []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "customer name", Destination: &cmd.name},
		&cli.StringFlag{Name: "email", Usage: "customer email", Destination: &cmd.email},
	}

	app.Commands = append(app.Commands, &cli.Command{
		Name:  "customer",
		Usage: "Manage customers",
		Commands: []*cli.Command{
			{
				Name:      "ls",
				Usage:     "List all customers",
				UsageText: "storekeep customer ls [--json]",
				Flags:     []cli.Flag{jsonFlag},
				Action:    cmd.runLs,
			},
			{
				Name:      "get",
				Usage:     "Show a single customer",
				UsageText: "storekeep customer get <id> [--json]",
				Flags:     []cli.Flag{jsonFlag},
				Action:    cmd.runGet,
			},
			{
				Name:      "create",
				Usage:     "Create a customer",
				UsageText: "storekeep customer create [--name NAME --email EMAIL]",
				Flags:     inputFlags,
				Action:    cmd.runCreate,
			},
			{
				Name:      "update",
				Usage:     "Update a customer",
				UsageText: "storekeep customer update <id> [--name NAME --email EMAIL]",
				Flags:     inputFlags,
				Action:    cmd.runUpdate,
			},
			{
				Name:      "rm",
				Usage:     "Delete a customer",
				UsageText: "storekeep customer rm <id>",
				Action:    cmd.runRm,
			},
		},
	})

	return app
}

func (cmd *CustomerCmd) runLs(ctx context.Context, c *cli.Command) error {
	defer attachConsole(cmd.app.Notifications)()

	customers, err := cmd.app.Gateway.ListCustomers(ctx)
	if err != nil {
		return fmt.Errorf("list customers: %w", err)
	}

	if cmd.jsonOutput {
		return iojson.Write(customers)
	}

	if len(customers) == 0 {
		fmt.Fprintln(os.Stderr, "No customers found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL")
	for _, customer := range customers {
		fmt.Fprintf(w, "%d\t%s\t%s\n", customer.ID, customer.Name, customer.Email)
	}
	return w.Flush()
}

func (cmd *CustomerCmd) runGet(ctx context.Context, c *cli.Command) error {
	defer attachConsole(cmd.app.Notifications)()

	id, err := customerIDArg(c)
	if err != nil {
		return err
	}

	customer, err := cmd.app.Gateway.Customer(ctx, id)
	if err != nil {
		return fmt.Errorf("get customer: %w", err)
	}

	if cmd.jsonOutput {
		return iojson.Write(customer)
	}

	fmt.Printf("ID:    %d\nName:  %s\nEmail: %s\n", customer.ID, customer.Name, customer.Email)
	return nil
}

func (cmd *CustomerCmd) runCreate(ctx context.Context, c *cli.Command) error {
	defer attachConsole(cmd.app.Notifications)()

	input := gateway.CustomerInput{Name: cmd.name, Email: cmd.email}
	if input.Name == "" || input.Email == "" {
		if err := customerForm(&input); err != nil {
			return err
		}
	}

	created, err := cmd.app.CreateCustomer(ctx, input)
	if err != nil {
		return fmt.Errorf("create customer: %w", err)
	}

	fmt.Printf("Created customer %d\n", created.ID)
	return nil
}

func (cmd *CustomerCmd) runUpdate(ctx context.Context, c *cli.Command) error {
	defer attachConsole(cmd.app.Notifications)()

	id, err := customerIDArg(c)
	if err != nil {
		return err
	}

	input := gateway.CustomerInput{Name: cmd.name, Email: cmd.email}
	if input.Name == "" || input.Email == "" {
		// Prefill the form with the current entity so a partial update
		// doesn't blank the other fields.
		current, err := cmd.app.Gateway.Customer(ctx, id)
		if err != nil {
			return fmt.Errorf("fetch customer for update: %w", err)
		}
		if input.Name == "" {
			input.Name = current.Name
		}
		if input.Email == "" {
			input.Email = current.Email
		}
		if err := customerForm(&input); err != nil {
			return err
		}
	}

	updated, err := cmd.app.UpdateCustomer(ctx, id, input)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}

	fmt.Printf("Updated customer %d\n", updated.ID)
	return nil
}

func (cmd *CustomerCmd) runRm(ctx context.Context, c *cli.Command) error {
	defer attachConsole(cmd.app.Notifications)()

	id, err := customerIDArg(c)
	if err != nil {
		return err
	}

	if err := cmd.app.DeleteCustomer(ctx, id); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func customerIDArg(c *cli.Command) (int64, error) {
	raw := c.Args().First()
	if raw == "" {
		return 0, fmt.Errorf("missing required argument: customer id")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid customer id %q: %w", raw, err)
	}
	return id, nil
}

func customerForm(input *gateway.CustomerInput) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&input.Name).
				Validate(requiredField("name")),
			huh.NewInput().
				Title("Email").
				Value(&input.Email).
				Validate(requiredField("email")),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("customer form: %w", err)
	}
	return nil
}

func requiredField(name string) func(string) error {
	return func(v string) error {
		if v == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}
