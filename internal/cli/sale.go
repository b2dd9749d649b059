package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/bizdesk/internal/format"
	"github.com/roach88/bizdesk/internal/model"
	"github.com/roach88/bizdesk/internal/store"
)

// NewSaleCommand creates the sale command group.
func NewSaleCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sale",
		Aliases: []string{"sales"},
		Short:   "Record and review sales",
	}

	cmd.AddCommand(newSaleListCommand(rootOpts))
	cmd.AddCommand(newSaleShowCommand(rootOpts))
	cmd.AddCommand(newSaleCreateCommand(rootOpts))
	cmd.AddCommand(newSaleDeleteCommand(rootOpts))

	return cmd
}

// SaleListOptions holds flags for sale list.
type SaleListOptions struct {
	*RootOptions
	Search string
	From   string
	To     string
	Period string
}

func newSaleListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SaleListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sales, newest first",
		Long: `List sales, newest first.

--period selects a trailing window (today, week, month, year) and takes
precedence over --from/--to. Dates accept most common layouts.

Example:
  bizdesk sale list --period week
  bizdesk sale list --from 2026-03-01 --to 2026-03-31 --search ana`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSaleList(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "filter by client or id")
	cmd.Flags().StringVar(&opts.From, "from", "", "first day (inclusive)")
	cmd.Flags().StringVar(&opts.To, "to", "", "last day (inclusive)")
	cmd.Flags().StringVar(&opts.Period, "period", "", "today|week|month|year")

	return cmd
}

func runSaleList(opts *SaleListOptions, cmd *cobra.Command) error {
	return withApp(opts.RootOptions, cmd, "sales.view", func(a *app) error {
		var sales []model.Sale
		if opts.Period != "" {
			sales = a.store.SalesByPeriod(store.Period(opts.Period))
		} else {
			start, end, err := parseRange(opts.From, opts.To)
			if err != nil {
				return a.fail(ErrCodeInvalidInput, ExitFailure, "invalid date range", err)
			}
			sales = a.store.FilterSalesByDate(start, end)
		}
		if opts.Search != "" {
			sales = intersect(sales, a.store.SearchSales(opts.Search), func(s model.Sale) string { return s.ID })
		}

		return a.out.Render(sales, func(w io.Writer) {
			writeSales(w, sales)
			if len(sales) > 0 {
				fmt.Fprintf(w, "\n%d sales, total %s, profit %s\n",
					len(sales), format.Currency(a.store.TotalSales(sales)), format.Currency(a.store.TotalProfit(sales)))
			}
		})
	})
}

// intersect keeps the elements of list whose key appears in other, in
// list's order.
func intersect[T any](list, other []T, key func(T) string) []T {
	keep := make(map[string]bool, len(other))
	for _, v := range other {
		keep[key(v)] = true
	}
	out := make([]T, 0, len(list))
	for _, v := range list {
		if keep[key(v)] {
			out = append(out, v)
		}
	}
	return out
}

func writeSales(w io.Writer, sales []model.Sale) {
	if len(sales) == 0 {
		fmt.Fprintln(w, "No sales found")
		return
	}
	rows := make([][]string, len(sales))
	for i, s := range sales {
		units := 0
		for _, item := range s.Items {
			units += item.Quantity
		}
		rows[i] = []string{
			s.ID,
			format.Date(s.Date),
			format.Truncate(s.Client, 24),
			strconv.Itoa(units),
			format.Currency(s.Total),
			format.Currency(format.Profit(s.Total, s.Cost)),
		}
	}
	writeTable(w, []string{"ID", "DATE", "CLIENT", "UNITS", "TOTAL", "PROFIT"}, rows)
}

func newSaleShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <id>",
		Short:         "Show one sale with its items",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, "sales.view", func(a *app) error {
				sale := a.store.Sale(args[0])
				if sale == nil {
					return a.notFound("sale", args[0])
				}
				return a.out.Render(sale, func(w io.Writer) {
					writeSale(w, *sale)
				})
			})
		},
	}
}

func writeSale(w io.Writer, s model.Sale) {
	writeFields(w,
		"ID", s.ID,
		"Date", format.Date(s.Date),
		"Client", s.Client,
		"Total", format.Currency(s.Total),
		"Cost", format.Currency(s.Cost),
		"Profit", format.Currency(format.Profit(s.Total, s.Cost)),
	)
	fmt.Fprintln(w)
	rows := make([][]string, len(s.Items))
	for i, item := range s.Items {
		rows[i] = []string{item.Name, strconv.Itoa(item.Quantity), format.Currency(item.Price), format.Currency(item.Total)}
	}
	writeTable(w, []string{"ITEM", "QTY", "PRICE", "TOTAL"}, rows)
}

// SaleCreateOptions holds flags for sale create.
type SaleCreateOptions struct {
	*RootOptions
	Client string
	Items  []string
	Date   string
}

func newSaleCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SaleCreateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a sale",
		Long: `Record a sale priced from the current catalogue.

Each --item is <product id or code>:<quantity>. Stock is checked for
every line before anything changes, then decremented.

Example:
  bizdesk sale create --client "Ana" --item A1:2 --item CAD-01:1`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSaleCreate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Client, "client", "", "client name (required)")
	cmd.Flags().StringArrayVarP(&opts.Items, "item", "i", nil, "line as <id|code>:<quantity> (repeatable)")
	cmd.Flags().StringVar(&opts.Date, "date", "", "sale day (default: today)")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("item")

	return cmd
}

func runSaleCreate(opts *SaleCreateOptions, cmd *cobra.Command) error {
	return withApp(opts.RootOptions, cmd, "sales.create", func(a *app) error {
		date, err := parseDay("date", opts.Date)
		if err != nil {
			return a.fail(ErrCodeInvalidInput, ExitFailure, "invalid sale date", err)
		}

		req := model.SaleRequest{Client: format.Sanitize(opts.Client), Date: date}
		for _, item := range opts.Items {
			ref, qty, err := parseSaleItem(item)
			if err != nil {
				return a.fail(ErrCodeInvalidInput, ExitFailure, "invalid --item", err)
			}
			p := findProduct(a, ref)
			if p == nil {
				return a.notFound("product", ref)
			}
			req.Lines = append(req.Lines, model.SaleLine{ProductID: p.ID, Quantity: qty})
		}

		if err := a.validator.Sale(req); err != nil {
			return a.invalid(err)
		}

		sale, err := a.store.CreateSale(req)
		switch {
		case errors.Is(err, store.ErrProductNotFound):
			return a.fail(ErrCodeNotFound, ExitFailure, "sale rejected", err)
		case err != nil:
			return a.fail(ErrCodeValidation, ExitFailure, "sale rejected", err)
		}

		return a.done(sale, func(w io.Writer) {
			fmt.Fprintf(w, "Recorded sale %s: %s\n", sale.ID, format.Currency(sale.Total))
		})
	})
}

// parseSaleItem splits "<ref>:<quantity>". The last colon separates the
// quantity so codes may contain colons.
func parseSaleItem(s string) (string, int, error) {
	i := strings.LastIndex(s, ":")
	if i <= 0 || i == len(s)-1 {
		return "", 0, fmt.Errorf("%q: want <id|code>:<quantity>", s)
	}
	qty, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return "", 0, fmt.Errorf("%q: quantity: %w", s, err)
	}
	return s[:i], qty, nil
}

func newSaleDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete a sale and return its units to stock",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, "sales.delete", func(a *app) error {
				if !a.store.DeleteSale(args[0]) {
					return a.notFound("sale", args[0])
				}
				return a.done(map[string]string{"deleted": args[0]}, func(w io.Writer) {
					fmt.Fprintf(w, "Deleted sale %s\n", args[0])
				})
			})
		},
	}
}
