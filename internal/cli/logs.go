package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"github.com/roach88/bizdesk/internal/audit"
	"github.com/roach88/bizdesk/internal/format"
	"github.com/roach88/bizdesk/internal/model"
)

// NewLogsCommand creates the logs command group.
func NewLogsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Review the audit log",
	}

	cmd.AddCommand(newLogsListCommand(rootOpts))
	cmd.AddCommand(newLogsExportCommand(rootOpts))
	cmd.AddCommand(newLogsClearCommand(rootOpts))

	return cmd
}

// LogsFilterOptions holds the filter flags shared by logs list and export.
type LogsFilterOptions struct {
	*RootOptions
	Action string
	Module string
	Date   string
	User   string
	Search string
	Limit  int
}

func addLogFilterFlags(cmd *cobra.Command, opts *LogsFilterOptions) {
	cmd.Flags().StringVar(&opts.Action, "action", "", "create|update|delete|login|logout|system")
	cmd.Flags().StringVar(&opts.Module, "module", "", "produtos|vendas|despesas|usuarios|configuracoes|sistema")
	cmd.Flags().StringVar(&opts.Date, "date", "", "timestamp prefix: 2026, 2026-03 or 2026-03-15")
	cmd.Flags().StringVar(&opts.User, "user", "", "user id or username")
	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "text in details, module or user name")
}

func (opts *LogsFilterOptions) filter(a *app) audit.Filter {
	userID := opts.User
	if u := findUser(a, opts.User); u != nil {
		userID = u.ID
	}
	return audit.Filter{
		Action: model.Action(opts.Action),
		Module: opts.Module,
		Date:   opts.Date,
		UserID: userID,
		Search: opts.Search,
	}
}

func newLogsListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogsFilterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List audit entries, newest first",
		Long: `List audit entries, newest first. Filters combine.

Example:
  bizdesk logs list --action login --date 2026-03
  bizdesk logs list --module vendas --user admin --limit 20`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts.RootOptions, cmd, "logs.view", func(a *app) error {
				entries := a.store.FilterLogs(opts.filter(a))
				if opts.Limit > 0 && len(entries) > opts.Limit {
					entries = entries[:opts.Limit]
				}
				return a.out.Render(entries, func(w io.Writer) {
					writeLogs(w, entries)
				})
			})
		},
	}

	addLogFilterFlags(cmd, opts)
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 50, "maximum entries (0 for all)")

	return cmd
}

func writeLogs(w io.Writer, entries []model.LogEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No log entries found")
		return
	}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			format.DateTime(e.Timestamp.Format(time.RFC3339)),
			string(e.Action),
			e.Module,
			e.UserName,
			format.Truncate(e.Details, 60),
		}
	}
	writeTable(w, []string{"TIME", "ACTION", "MODULE", "USER", "DETAILS"}, rows)
}

// LogsExportOptions holds flags for logs export.
type LogsExportOptions struct {
	LogsFilterOptions
	Out string
}

func newLogsExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogsExportOptions{LogsFilterOptions: LogsFilterOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write audit entries to a CSV file",
		Long: `Write the audit entries matching the filters to a CSV file.

Example:
  bizdesk logs export --date 2026-03 --out logs-2026-03.csv`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts.RootOptions, cmd, "logs.export", func(a *app) error {
				entries := a.store.FilterLogs(opts.filter(a))
				data, err := gocsv.MarshalBytes(nonNil(entries))
				if err != nil {
					return a.fail(ErrCodeGeneric, ExitFailure, "failed to encode logs", err)
				}
				if err := a.writeFile(opts.Out, data); err != nil {
					return err
				}
				result := exportResult{Path: opts.Out, Records: len(entries)}
				return a.out.Render(result, func(w io.Writer) {
					fmt.Fprintf(w, "Wrote %d log entries to %s\n", result.Records, result.Path)
				})
			})
		},
	}

	addLogFilterFlags(cmd, &opts.LogsFilterOptions)
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "output file (required)")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func newLogsClearCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every audit entry",
		Long: `Delete every audit entry. The clearing itself is recorded as the
first entry of the new log.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, "settings.edit", func(a *app) error {
				a.store.ClearLogs()
				return a.done(map[string]int{"entries": len(a.store.Logs())}, func(w io.Writer) {
					fmt.Fprintln(w, "Audit log cleared")
				})
			})
		},
	}
}
