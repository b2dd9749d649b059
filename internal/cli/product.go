package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/bizdesk/internal/format"
	"github.com/roach88/bizdesk/internal/model"
	"github.com/roach88/bizdesk/internal/report"
	"github.com/roach88/bizdesk/internal/store"
)

// NewProductCommand creates the product command group.
func NewProductCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "product",
		Aliases: []string{"products"},
		Short:   "Manage the product catalogue",
	}

	cmd.AddCommand(newProductListCommand(rootOpts))
	cmd.AddCommand(newProductShowCommand(rootOpts))
	cmd.AddCommand(newProductAddCommand(rootOpts))
	cmd.AddCommand(newProductUpdateCommand(rootOpts))
	cmd.AddCommand(newProductDeleteCommand(rootOpts))
	cmd.AddCommand(newProductTopCommand(rootOpts))

	return cmd
}

// ProductListOptions holds flags for product list.
type ProductListOptions struct {
	*RootOptions
	Search    string
	LowStock  bool
	Threshold int
}

func newProductListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProductListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Long: `List products, optionally filtered.

--search matches name, code and category ignoring case and accents.
--low-stock keeps products whose stock is below the threshold (the
lowStockThreshold setting unless --threshold is given).

Example:
  bizdesk product list --search cafe
  bizdesk product list --low-stock --threshold 3`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductList(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "filter by name, code or category")
	cmd.Flags().BoolVar(&opts.LowStock, "low-stock", false, "only products below the stock threshold")
	cmd.Flags().IntVar(&opts.Threshold, "threshold", 0, "low stock threshold (default: settings value)")

	return cmd
}

func runProductList(opts *ProductListOptions, cmd *cobra.Command) error {
	return withApp(opts.RootOptions, cmd, "products.view", func(a *app) error {
		products := a.store.SearchProducts(opts.Search)
		if opts.LowStock {
			threshold := opts.Threshold
			if threshold <= 0 {
				threshold = a.store.Settings().LowStockThreshold
			}
			low := make(map[string]bool)
			for _, p := range a.store.LowStockProducts(threshold) {
				low[p.ID] = true
			}
			filtered := products[:0]
			for _, p := range products {
				if low[p.ID] {
					filtered = append(filtered, p)
				}
			}
			products = filtered
		}
		return a.out.Render(products, func(w io.Writer) {
			writeProducts(w, products)
		})
	})
}

func writeProducts(w io.Writer, products []model.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products found")
		return
	}
	rows := make([][]string, len(products))
	for i, p := range products {
		rows[i] = []string{
			p.ID,
			p.Code,
			format.Truncate(p.Name, 30),
			p.Category,
			format.Currency(p.Cost),
			format.Currency(p.Price),
			fmt.Sprintf("%.1f%%", format.Margin(p.Cost, p.Price)),
			strconv.Itoa(p.Stock),
		}
	}
	writeTable(w, []string{"ID", "CODE", "NAME", "CATEGORY", "COST", "PRICE", "MARGIN", "STOCK"}, rows)
}

// findProduct resolves an id or a product code.
func findProduct(a *app, ref string) *model.Product {
	if p := a.store.Product(ref); p != nil {
		return p
	}
	return a.store.ProductByCode(ref)
}

func newProductShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <id|code>",
		Short:         "Show one product",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, "products.view", func(a *app) error {
				p := findProduct(a, args[0])
				if p == nil {
					return a.notFound("product", args[0])
				}
				return a.out.Render(p, func(w io.Writer) {
					writeProduct(w, *p)
				})
			})
		},
	}
}

func writeProduct(w io.Writer, p model.Product) {
	writeFields(w,
		"ID", p.ID,
		"Code", p.Code,
		"Name", p.Name,
		"Category", p.Category,
		"Cost", format.Currency(p.Cost),
		"Price", format.Currency(p.Price),
		"Margin", fmt.Sprintf("%.1f%%", format.Margin(p.Cost, p.Price)),
		"Stock", strconv.Itoa(p.Stock),
		"Description", p.Description,
		"Updated", format.DateTime(p.UpdatedAt.Format(time.RFC3339)),
	)
}

// ProductAddOptions holds flags for product add.
type ProductAddOptions struct {
	*RootOptions
	Input model.ProductInput
}

func newProductAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProductAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		Long: `Add a product to the catalogue.

The code must be unique and the price must exceed the cost.

Example:
  bizdesk product add --code A1 --name "Caneta Azul" --category Papelaria \
    --cost 10 --price 20 --stock 5`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductAdd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Input.Code, "code", "", "unique product code (required)")
	cmd.Flags().StringVar(&opts.Input.Name, "name", "", "product name (required)")
	cmd.Flags().StringVar(&opts.Input.Category, "category", "", "category")
	cmd.Flags().Float64Var(&opts.Input.Cost, "cost", 0, "unit cost")
	cmd.Flags().Float64Var(&opts.Input.Price, "price", 0, "unit price")
	cmd.Flags().IntVar(&opts.Input.Stock, "stock", 0, "units in stock")
	cmd.Flags().StringVar(&opts.Input.Description, "description", "", "free text")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runProductAdd(opts *ProductAddOptions, cmd *cobra.Command) error {
	return withApp(opts.RootOptions, cmd, "products.create", func(a *app) error {
		in := opts.Input
		in.Name = format.Sanitize(in.Name)
		in.Description = format.Sanitize(in.Description)
		if err := a.validator.Product(in, a.store, ""); err != nil {
			return a.invalid(err)
		}
		p := a.store.AddProduct(in)
		return a.done(p, func(w io.Writer) {
			fmt.Fprintf(w, "Created product %s (%s)\n", p.ID, p.Code)
		})
	})
}

// ProductUpdateOptions holds flags for product update.
type ProductUpdateOptions struct {
	*RootOptions
	Input model.ProductInput
}

func newProductUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProductUpdateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update <id|code>",
		Short: "Change a product",
		Long: `Change the given fields of a product. Fields whose flag is not set
are left as they are.

Example:
  bizdesk product update A1 --price 25 --stock 40`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductUpdate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Input.Code, "code", "", "unique product code")
	cmd.Flags().StringVar(&opts.Input.Name, "name", "", "product name")
	cmd.Flags().StringVar(&opts.Input.Category, "category", "", "category")
	cmd.Flags().Float64Var(&opts.Input.Cost, "cost", 0, "unit cost")
	cmd.Flags().Float64Var(&opts.Input.Price, "price", 0, "unit price")
	cmd.Flags().IntVar(&opts.Input.Stock, "stock", 0, "units in stock")
	cmd.Flags().StringVar(&opts.Input.Description, "description", "", "free text")

	return cmd
}

func runProductUpdate(opts *ProductUpdateOptions, ref string, cmd *cobra.Command) error {
	return withApp(opts.RootOptions, cmd, "products.edit", func(a *app) error {
		existing := findProduct(a, ref)
		if existing == nil {
			return a.notFound("product", ref)
		}

		in := opts.Input
		changed := cmd.Flags().Changed
		var patch model.ProductPatch
		if changed("code") {
			patch.Code = &in.Code
		}
		if changed("name") {
			name := format.Sanitize(in.Name)
			patch.Name = &name
		}
		if changed("category") {
			patch.Category = &in.Category
		}
		if changed("cost") {
			patch.Cost = &in.Cost
		}
		if changed("price") {
			patch.Price = &in.Price
		}
		if changed("stock") {
			patch.Stock = &in.Stock
		}
		if changed("description") {
			description := format.Sanitize(in.Description)
			patch.Description = &description
		}

		candidate := *existing
		patch.Apply(&candidate)
		if err := a.validator.Product(candidate.Input(), a.store, existing.ID); err != nil {
			return a.invalid(err)
		}

		p := a.store.UpdateProduct(existing.ID, patch)
		return a.done(p, func(w io.Writer) {
			fmt.Fprintf(w, "Updated product %s (%s)\n", p.ID, p.Code)
		})
	})
}

func newProductDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id|code>",
		Short: "Delete a product",
		Long: `Delete a product. Past sales keep their snapshot of its name and
price.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, "products.delete", func(a *app) error {
				p := findProduct(a, args[0])
				if p == nil || !a.store.DeleteProduct(p.ID) {
					return a.notFound("product", args[0])
				}
				return a.done(map[string]string{"deleted": p.ID}, func(w io.Writer) {
					fmt.Fprintf(w, "Deleted product %s (%s)\n", p.ID, p.Code)
				})
			})
		},
	}
}

// ProductTopOptions holds flags for product top.
type ProductTopOptions struct {
	*RootOptions
	Limit int
}

func newProductTopCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProductTopOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "top",
		Short:         "List the best selling products by quantity",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts.RootOptions, cmd, "sales.view", func(a *app) error {
				top := a.store.TopSellingProducts(opts.Limit)
				return a.out.Render(top, func(w io.Writer) {
					writeTopProducts(w, top)
				})
			})
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", store.DefaultTopSellingLimit, "number of products")

	return cmd
}

func writeTopProducts(w io.Writer, top []report.ProductSales) {
	if len(top) == 0 {
		fmt.Fprintln(w, "No sales yet")
		return
	}
	rows := make([][]string, len(top))
	for i, p := range top {
		rows[i] = []string{strconv.Itoa(i + 1), p.Name, strconv.Itoa(p.Quantity), format.Currency(p.Revenue)}
	}
	writeTable(w, []string{"#", "PRODUCT", "QUANTITY", "REVENUE"}, rows)
}
