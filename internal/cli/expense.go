package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roach88/bizdesk/internal/format"
	"github.com/roach88/bizdesk/internal/model"
)

// NewExpenseCommand creates the expense command group.
func NewExpenseCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expense",
		Aliases: []string{"expenses"},
		Short:   "Record and review expenses",
	}

	cmd.AddCommand(newExpenseListCommand(rootOpts))
	cmd.AddCommand(newExpenseAddCommand(rootOpts))
	cmd.AddCommand(newExpenseUpdateCommand(rootOpts))
	cmd.AddCommand(newExpenseDeleteCommand(rootOpts))

	return cmd
}

// ExpenseListOptions holds flags for expense list.
type ExpenseListOptions struct {
	*RootOptions
	Search     string
	From       string
	To         string
	ByCategory bool
}

func newExpenseListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExpenseListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses, newest first",
		Long: `List expenses, newest first.

Example:
  bizdesk expense list --from 2026-03-01 --search energia
  bizdesk expense list --by-category`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpenseList(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "filter by description or category")
	cmd.Flags().StringVar(&opts.From, "from", "", "first day (inclusive)")
	cmd.Flags().StringVar(&opts.To, "to", "", "last day (inclusive)")
	cmd.Flags().BoolVar(&opts.ByCategory, "by-category", false, "show totals per category instead")

	return cmd
}

func runExpenseList(opts *ExpenseListOptions, cmd *cobra.Command) error {
	return withApp(opts.RootOptions, cmd, "expenses.view", func(a *app) error {
		start, end, err := parseRange(opts.From, opts.To)
		if err != nil {
			return a.fail(ErrCodeInvalidInput, ExitFailure, "invalid date range", err)
		}
		expenses := a.store.FilterExpensesByDate(start, end)
		if opts.Search != "" {
			expenses = intersect(expenses, a.store.SearchExpenses(opts.Search), func(e model.Expense) string { return e.ID })
		}

		if opts.ByCategory {
			totals := a.store.ExpensesByCategory(expenses)
			return a.out.Render(totals, func(w io.Writer) {
				writeCategoryTotals(w, totals)
			})
		}

		return a.out.Render(expenses, func(w io.Writer) {
			writeExpenses(w, expenses)
			if len(expenses) > 0 {
				fmt.Fprintf(w, "\n%d expenses, total %s\n", len(expenses), format.Currency(a.store.TotalExpenses(expenses)))
			}
		})
	})
}

func writeExpenses(w io.Writer, expenses []model.Expense) {
	if len(expenses) == 0 {
		fmt.Fprintln(w, "No expenses found")
		return
	}
	rows := make([][]string, len(expenses))
	for i, e := range expenses {
		rows[i] = []string{e.ID, format.Date(e.Date), format.Truncate(e.Description, 30), e.Category, format.Currency(e.Value)}
	}
	writeTable(w, []string{"ID", "DATE", "DESCRIPTION", "CATEGORY", "VALUE"}, rows)
}

func writeCategoryTotals(w io.Writer, totals map[string]float64) {
	if len(totals) == 0 {
		fmt.Fprintln(w, "No expenses found")
		return
	}
	categories := make([]string, 0, len(totals))
	for c := range totals {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	rows := make([][]string, len(categories))
	for i, c := range categories {
		rows[i] = []string{c, format.Currency(totals[c])}
	}
	writeTable(w, []string{"CATEGORY", "TOTAL"}, rows)
}

// ExpenseOptions holds the field flags shared by expense add and update.
type ExpenseOptions struct {
	*RootOptions
	Input model.ExpenseInput
}

func addExpenseFlags(cmd *cobra.Command, in *model.ExpenseInput) {
	cmd.Flags().StringVar(&in.Description, "description", "", "what was paid")
	cmd.Flags().StringVar(&in.Category, "category", "", "expense category")
	cmd.Flags().Float64Var(&in.Value, "value", 0, "amount paid")
	cmd.Flags().StringVar(&in.Date, "date", "", "payment day (default: today)")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "free text")
}

func newExpenseAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExpenseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		Long: `Record an expense.

Example:
  bizdesk expense add --description "Conta de luz" --category Energia --value 4500`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpenseAdd(opts, cmd)
		},
	}

	addExpenseFlags(cmd, &opts.Input)
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func runExpenseAdd(opts *ExpenseOptions, cmd *cobra.Command) error {
	return withApp(opts.RootOptions, cmd, "expenses.create", func(a *app) error {
		in := opts.Input
		in.Description = format.Sanitize(in.Description)
		in.Notes = format.Sanitize(in.Notes)
		date, err := parseDay("date", in.Date)
		if err != nil {
			return a.fail(ErrCodeInvalidInput, ExitFailure, "invalid expense date", err)
		}
		if date == "" {
			date = format.DateISO(a.store.Now())
		}
		in.Date = date

		if err := a.validator.Expense(in); err != nil {
			return a.invalid(err)
		}
		e := a.store.AddExpense(in)
		return a.done(e, func(w io.Writer) {
			fmt.Fprintf(w, "Recorded expense %s: %s\n", e.ID, format.Currency(e.Value))
		})
	})
}

func newExpenseUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExpenseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "update <id>",
		Short:         "Change an expense",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpenseUpdate(opts, args[0], cmd)
		},
	}

	addExpenseFlags(cmd, &opts.Input)

	return cmd
}

func runExpenseUpdate(opts *ExpenseOptions, id string, cmd *cobra.Command) error {
	return withApp(opts.RootOptions, cmd, "expenses.edit", func(a *app) error {
		existing := a.store.Expense(id)
		if existing == nil {
			return a.notFound("expense", id)
		}

		in := opts.Input
		changed := cmd.Flags().Changed
		var patch model.ExpensePatch
		if changed("description") {
			description := format.Sanitize(in.Description)
			patch.Description = &description
		}
		if changed("category") {
			patch.Category = &in.Category
		}
		if changed("value") {
			patch.Value = &in.Value
		}
		if changed("date") {
			date, err := parseDay("date", in.Date)
			if err != nil {
				return a.fail(ErrCodeInvalidInput, ExitFailure, "invalid expense date", err)
			}
			patch.Date = &date
		}
		if changed("notes") {
			notes := format.Sanitize(in.Notes)
			patch.Notes = &notes
		}

		candidate := *existing
		patch.Apply(&candidate)
		err := a.validator.Expense(model.ExpenseInput{
			Description: candidate.Description,
			Category:    candidate.Category,
			Value:       candidate.Value,
			Date:        candidate.Date,
			Notes:       candidate.Notes,
		})
		if err != nil {
			return a.invalid(err)
		}

		e := a.store.UpdateExpense(id, patch)
		return a.done(e, func(w io.Writer) {
			fmt.Fprintf(w, "Updated expense %s\n", e.ID)
		})
	})
}

func newExpenseDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete an expense",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, "expenses.delete", func(a *app) error {
				if !a.store.DeleteExpense(args[0]) {
					return a.notFound("expense", args[0])
				}
				return a.done(map[string]string{"deleted": args[0]}, func(w io.Writer) {
					fmt.Fprintf(w, "Deleted expense %s\n", args[0])
				})
			})
		},
	}
}
