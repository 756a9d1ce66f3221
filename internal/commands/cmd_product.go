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

type ProductCmd struct {
	flags *Flags
	app   *storekeep.App

	// flags
	jsonOutput bool
	id         string
	name       string
	price      float64
	quantity   int64
}

// NewProductCmd creates the product command group.
func NewProductCmd(flags *Flags, app *storekeep.App) *ProductCmd {
	return &ProductCmd{flags: flags, app: app}
}

// Register adds the product commands to the application.
func (cmd *ProductCmd) Register(app *cli.Command) *cli.Command {
	jsonFlag := &cli.BoolFlag{
		Name:        "json",
		Usage:       "output as JSON",
		Destination: &cmd.jsonOutput,
	}
	inputFlags := []cli.Flag{
		&cli.StringFlag{Name: "id", Usage: "product id (derived from name when omitted)", Destination: &cmd.id},
		&cli.StringFlag{Name: "name", Usage: "product name", Destination: &cmd.name},
		&cli.FloatFlag{Name: "price", Usage: "unit price", Destination: &cmd.price},
		&cli.Int64Flag{Name: "quantity", Aliases: []string{"qty"}, Usage: "stock quantity", Destination: &cmd.quantity},
	}

	app.Commands = append(app.Commands, &cli.Command{
		Name:  "product",
		Usage: "Manage products",
		Commands: []*cli.Command{
			{
				Name:      "ls",
				Usage:     "List all products",
				UsageText: "storekeep product ls [--json]",
				Flags:     []cli.Flag{jsonFlag},
				Action:    cmd.runLs,
			},
			{
				Name:      "get",
				Usage:     "Show a single product",
				UsageText: "storekeep product get <id> [--json]",
				Flags:     []cli.Flag{jsonFlag},
				Action:    cmd.runGet,
			},
			{
				Name:  "create",
				Usage: "Create a product",
				UsageText: "storekeep product create [--name NAME --price PRICE --quantity N]\n\n" +
					"When --id is omitted an id is derived from the name. If that id is\n" +
					"already taken the create is retried once with a generated id.",
				Flags:  inputFlags,
				Action: cmd.runCreate,
			},
			{
				Name:      "update",
				Usage:     "Update a product",
				UsageText: "storekeep product update <id> [--name NAME --price PRICE --quantity N]",
				Flags:     inputFlags,
				Action:    cmd.runUpdate,
			},
			{
				Name:      "rm",
				Usage:     "Delete a product",
				UsageText: "storekeep product rm <id>",
				Action:    cmd.runRm,
			},
		},
	})

	return app
}

func (cmd *ProductCmd) runLs(ctx context.Context, c *cli.Command) error {
	defer attachConsole(cmd.app.Notifications)()

	products, err := cmd.app.Gateway.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}

	if cmd.jsonOutput {
		return iojson.Write(products)
	}

	if len(products) == 0 {
		fmt.Fprintln(os.Stderr, "No products found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tQTY")
	for _, product := range products {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%d\n", product.ID, product.Name, product.Price, product.Quantity)
	}
	return w.Flush()
}

func (cmd *ProductCmd) runGet(ctx context.Context, c *cli.Command) error {
	defer attachConsole(cmd.app.Notifications)()

	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("missing required argument: product id")
	}

	product, err := cmd.app.Gateway.Product(ctx, id)
	if err != nil {
		return fmt.Errorf("get product: %w", err)
	}

	if cmd.jsonOutput {
		return iojson.Write(product)
	}

	fmt.Printf("ID:       %s\nName:     %s\nPrice:    %.2f\nQuantity: %d\n",
		product.ID, product.Name, product.Price, product.Quantity)
	return nil
}

func (cmd *ProductCmd) runCreate(ctx context.Context, c *cli.Command) error {
	defer attachConsole(cmd.app.Notifications)()

	input := gateway.ProductInput{
		ID:       cmd.id,
		Name:     cmd.name,
		Price:    cmd.price,
		Quantity: cmd.quantity,
	}
	if input.Name == "" {
		if err := productForm(&input); err != nil {
			return err
		}
	}

	created, err := cmd.app.CreateProduct(ctx, input)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	fmt.Printf("Created product %s\n", created.ID)
	return nil
}

func (cmd *ProductCmd) runUpdate(ctx context.Context, c *cli.Command) error {
	defer attachConsole(cmd.app.Notifications)()

	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("missing required argument: product id")
	}

	current, err := cmd.app.Gateway.Product(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch product for update: %w", err)
	}

	input := gateway.ProductInput{
		Name:     cmd.name,
		Price:    cmd.price,
		Quantity: cmd.quantity,
	}
	if input.Name == "" {
		input.Name = current.Name
	}
	if !c.IsSet("price") {
		input.Price = current.Price
	}
	if !c.IsSet("quantity") {
		input.Quantity = current.Quantity
	}

	updated, err := cmd.app.UpdateProduct(ctx, id, input)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	fmt.Printf("Updated product %s\n", updated.ID)
	return nil
}

func (cmd *ProductCmd) runRm(ctx context.Context, c *cli.Command) error {
	defer attachConsole(cmd.app.Notifications)()

	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("missing required argument: product id")
	}

	if err := cmd.app.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func productForm(input *gateway.ProductInput) error {
	var (
		price    = fmt.Sprintf("%g", input.Price)
		quantity = fmt.Sprintf("%d", input.Quantity)
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&input.Name).
				Validate(requiredField("name")),
			huh.NewInput().
				Title("Price").
				Value(&price).
				Validate(validFloat),
			huh.NewInput().
				Title("Quantity").
				Value(&quantity).
				Validate(validInt),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("product form: %w", err)
	}

	input.Price, _ = strconv.ParseFloat(price, 64)
	input.Quantity, _ = strconv.ParseInt(quantity, 10, 64)
	return nil
}

func validFloat(v string) error {
	if _, err := strconv.ParseFloat(v, 64); err != nil {
		return fmt.Errorf("must be a number")
	}
	return nil
}

func validInt(v string) error {
	if _, err := strconv.ParseInt(v, 10, 64); err != nil {
		return fmt.Errorf("must be a whole number")
	}
	return nil
}
