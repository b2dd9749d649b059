package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/bizdesk/internal/format"
	"github.com/roach88/bizdesk/internal/report"
)

// ReportOptions holds flags for the report subcommands.
type ReportOptions struct {
	*RootOptions
	From string
	To   string
	Out  string
}

// NewReportCommand creates the report command group.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Financial, stock, sales and profit reports",
		Long: `Build a report from the current data.

Date flags accept most common layouts and are inclusive. --out writes
the report as JSON instead of printing it, which needs the
reports.export capability.

Example:
  bizdesk report financial --from 2026-01-01 --to 2026-03-31
  bizdesk report stock --format json
  bizdesk report sales --from "1 March 2026" --out sales-march.json`,
	}

	cmd.AddCommand(newReportSubcommand(rootOpts, "financial", "Revenue, expenses and profit with a 12-month series", true,
		func(g *report.Generator, start, end string) any { return g.Financial(start, end) }))
	cmd.AddCommand(newReportSubcommand(rootOpts, "stock", "Inventory value and low stock", false,
		func(g *report.Generator, _, _ string) any { return g.Stock() }))
	cmd.AddCommand(newReportSubcommand(rootOpts, "sales", "Sales totals, average ticket and top products", true,
		func(g *report.Generator, start, end string) any { return g.Sales(start, end) }))
	cmd.AddCommand(newReportSubcommand(rootOpts, "profit", "Profit and margin over the last six months", true,
		func(g *report.Generator, start, end string) any { return g.Profit(start, end) }))

	return cmd
}

func newReportSubcommand(rootOpts *RootOptions, name, short string, dated bool, build func(g *report.Generator, start, end string) any) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           name,
		Short:         short,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, build, cmd)
		},
	}

	if dated {
		cmd.Flags().StringVar(&opts.From, "from", "", "first day (inclusive)")
		cmd.Flags().StringVar(&opts.To, "to", "", "last day (inclusive)")
	}
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "write the report to a JSON file")

	return cmd
}

func runReport(opts *ReportOptions, build func(g *report.Generator, start, end string) any, cmd *cobra.Command) error {
	capability := "reports.view"
	if opts.Out != "" {
		capability = "reports.export"
	}
	return withApp(opts.RootOptions, cmd, capability, func(a *app) error {
		start, end, err := parseRange(opts.From, opts.To)
		if err != nil {
			return a.fail(ErrCodeInvalidInput, ExitFailure, "invalid date range", err)
		}
		a.logger.Debug("building report", "report", cmd.Name(), "start", start, "end", end)
		data := build(a.store.Reports(), start, end)

		if opts.Out != "" {
			body, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return a.fail(ErrCodeGeneric, ExitFailure, "failed to encode report", err)
			}
			if err := a.writeFile(opts.Out, append(body, '\n')); err != nil {
				return err
			}
			result := exportResult{Path: opts.Out, Format: "json", Records: 1}
			return a.out.Render(result, func(w io.Writer) {
				fmt.Fprintf(w, "Wrote %s report to %s\n", cmd.Name(), opts.Out)
			})
		}

		return a.out.Render(data, func(w io.Writer) {
			writeReport(w, data)
		})
	})
}

func writeReport(w io.Writer, data any) {
	switch r := data.(type) {
	case report.FinancialReport:
		writeFinancialReport(w, r)
	case report.StockReport:
		writeStockReport(w, r)
	case report.SalesReport:
		writeSalesReport(w, r)
	case report.ProfitReport:
		writeProfitReport(w, r)
	}
}

func periodLabel(p report.Period) string {
	if p.Start == "" && p.End == "" {
		return "all time"
	}
	return format.Date(p.Start) + " - " + format.Date(p.End)
}

func writeFinancialReport(w io.Writer, r report.FinancialReport) {
	fmt.Fprintln(w, "=== Financial Report ===")
	writeFields(w,
		"Period", periodLabel(r.Period),
		"Sales", fmt.Sprintf("%s (%d)", format.Currency(r.TotalSales), r.SalesCount),
		"Cost of goods", format.Currency(r.TotalCost),
		"Gross profit", format.Currency(r.GrossProfit),
		"Expenses", fmt.Sprintf("%s (%d)", format.Currency(r.TotalExpenses), r.ExpensesCount),
		"Net profit", format.Currency(r.NetProfit),
	)

	fmt.Fprintln(w, "\n=== Expenses by Category ===")
	writeCategoryTotals(w, r.ExpensesByCategory)

	fmt.Fprintln(w, "\n=== Last 12 Months ===")
	rows := make([][]string, len(r.SalesByMonth))
	for i, m := range r.SalesByMonth {
		rows[i] = []string{m.Label, format.Currency(m.Sales), format.Currency(m.Expenses), format.Currency(m.Profit)}
	}
	writeTable(w, []string{"MONTH", "SALES", "EXPENSES", "PROFIT"}, rows)
}

func writeStockReport(w io.Writer, r report.StockReport) {
	fmt.Fprintln(w, "=== Stock Report ===")
	writeFields(w,
		"Products", strconv.Itoa(r.TotalProducts),
		"Units", strconv.Itoa(r.TotalItems),
		"Value at cost", format.Currency(r.TotalValue),
		"Value at price", format.Currency(r.TotalRetailValue),
		"Potential profit", format.Currency(r.PotentialProfit),
		"Low stock", fmt.Sprintf("%d (below %d)", r.LowStock, r.Threshold),
		"Out of stock", strconv.Itoa(r.OutOfStock),
	)

	fmt.Fprintln(w, "\n=== By Category ===")
	categories := make([]string, 0, len(r.ValueByCategory))
	for c := range r.ValueByCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	rows := make([][]string, len(categories))
	for i, c := range categories {
		v := r.ValueByCategory[c]
		rows[i] = []string{c, strconv.Itoa(v.Count), format.Currency(v.Value)}
	}
	writeTable(w, []string{"CATEGORY", "UNITS", "VALUE"}, rows)

	if len(r.LowStockProducts) > 0 {
		fmt.Fprintln(w, "\n=== Low Stock ===")
		writeProducts(w, r.LowStockProducts)
	}
}

func writeSalesReport(w io.Writer, r report.SalesReport) {
	fmt.Fprintln(w, "=== Sales Report ===")
	writeFields(w,
		"Period", periodLabel(r.Period),
		"Sales", strconv.Itoa(r.Count),
		"Revenue", format.Currency(r.TotalSales),
		"Cost", format.Currency(r.TotalCost),
		"Profit", format.Currency(r.TotalProfit),
		"Average ticket", format.Currency(r.AverageTicket),
	)

	fmt.Fprintln(w, "\n=== Top Products (all time) ===")
	writeTopProducts(w, r.TopProducts)
}

func writeProfitReport(w io.Writer, r report.ProfitReport) {
	fmt.Fprintln(w, "=== Profit Report ===")
	writeFields(w,
		"Period", periodLabel(r.Period),
		"Revenue", format.Currency(r.TotalSales),
		"Cost", format.Currency(r.TotalCost),
		"Profit", format.Currency(r.TotalProfit),
		"Margin", fmt.Sprintf("%.1f%%", r.Margin),
	)

	fmt.Fprintln(w, "\n=== Last 6 Months ===")
	rows := make([][]string, len(r.Months))
	for i, m := range r.Months {
		rows[i] = []string{m.Label, format.Currency(m.Revenue), format.Currency(m.Cost), format.Currency(m.Profit), fmt.Sprintf("%.1f%%", m.Margin)}
	}
	writeTable(w, []string{"MONTH", "REVENUE", "COST", "PROFIT", "MARGIN"}, rows)
}
