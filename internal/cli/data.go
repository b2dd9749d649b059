package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"github.com/roach88/bizdesk/internal/format"
	"github.com/roach88/bizdesk/internal/model"
	"github.com/roach88/bizdesk/internal/store"
)

// CSV collections accepted by data export.
var csvCollections = []string{"products", "sales", "expenses", "logs"}

// NewDataCommand creates the data command group.
func NewDataCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Back up, restore and reset business data",
	}

	cmd.AddCommand(newDataExportCommand(rootOpts))
	cmd.AddCommand(newDataImportCommand(rootOpts))
	cmd.AddCommand(newDataClearCommand(rootOpts))
	cmd.AddCommand(newDataClearCacheCommand(rootOpts))

	return cmd
}

// DataExportOptions holds flags for data export.
type DataExportOptions struct {
	*RootOptions
	Out        string
	Collection string
}

func newDataExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DataExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup file",
		Long: `Write every collection and the settings to a JSON backup, or one
collection to a CSV file. The extension of --out picks the format.
Passwords are never exported.

Example:
  bizdesk data export --out backup.json
  bizdesk data export --out products.csv
  bizdesk data export --out sales.csv --collection sales`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDataExport(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "output file, .json or .csv (required)")
	cmd.Flags().StringVar(&opts.Collection, "collection", "products", "collection for CSV output: products|sales|expenses|logs")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runDataExport(opts *DataExportOptions, cmd *cobra.Command) error {
	return withApp(opts.RootOptions, cmd, "settings.edit", func(a *app) error {
		export := a.store.ExportAllData()

		var (
			data    []byte
			records int
			err     error
		)
		switch fileFormat(opts.Out) {
		case "json":
			data, err = json.MarshalIndent(export, "", "  ")
			data = append(data, '\n')
			records = len(export.Products) + len(export.Sales) + len(export.Expenses) + len(export.Users) + len(export.Logs)
		case "csv":
			data, records, err = exportCSV(export, opts.Collection)
		default:
			return a.fail(ErrCodeInvalidInput, ExitFailure, "--out must end in .json or .csv", nil)
		}
		if err != nil {
			return a.fail(ErrCodeInvalidInput, ExitFailure, "failed to encode export", err)
		}

		if err := a.writeFile(opts.Out, data); err != nil {
			return err
		}
		result := exportResult{Path: opts.Out, Format: fileFormat(opts.Out), Records: records}
		return a.out.Render(result, func(w io.Writer) {
			fmt.Fprintf(w, "Wrote %d records to %s\n", records, opts.Out)
		})
	})
}

// saleRow is the flat CSV shape of a sale.
type saleRow struct {
	ID     string  `csv:"id"`
	Date   string  `csv:"date"`
	Client string  `csv:"client"`
	Units  int     `csv:"units"`
	Total  float64 `csv:"total"`
	Cost   float64 `csv:"cost"`
	Profit float64 `csv:"profit"`
	UserID string  `csv:"user_id"`
}

func exportCSV(export store.Export, collection string) ([]byte, int, error) {
	switch collection {
	case "products":
		data, err := gocsv.MarshalBytes(export.Products)
		return data, len(export.Products), err
	case "expenses":
		data, err := gocsv.MarshalBytes(export.Expenses)
		return data, len(export.Expenses), err
	case "logs":
		data, err := gocsv.MarshalBytes(export.Logs)
		return data, len(export.Logs), err
	case "sales":
		rows := make([]saleRow, len(export.Sales))
		for i, s := range export.Sales {
			units := 0
			for _, item := range s.Items {
				units += item.Quantity
			}
			rows[i] = saleRow{
				ID:     s.ID,
				Date:   s.Date,
				Client: s.Client,
				Units:  units,
				Total:  s.Total,
				Cost:   s.Cost,
				Profit: format.Profit(s.Total, s.Cost),
				UserID: s.UserID,
			}
		}
		data, err := gocsv.MarshalBytes(rows)
		return data, len(rows), err
	}
	return nil, 0, fmt.Errorf("unknown collection %q: must be one of %v", collection, csvCollections)
}

// DataImportOptions holds flags for data import.
type DataImportOptions struct {
	*RootOptions
	Merge bool
}

func newDataImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DataImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load a backup file",
		Long: `Load a JSON backup written by 'data export', or a products CSV.

Without --merge every collection present in the file replaces the
current one. With --merge collections are only loaded where the
current one is empty, and users are added when their id is new.
Existing accounts are never overwritten.

Example:
  bizdesk data import backup.json
  bizdesk data import products.csv --merge`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDataImport(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Merge, "merge", false, "keep existing data and only fill empty collections")

	return cmd
}

func runDataImport(opts *DataImportOptions, path string, cmd *cobra.Command) error {
	return withApp(opts.RootOptions, cmd, "settings.edit", func(a *app) error {
		raw, err := os.ReadFile(path)
		if err != nil {
			return a.fail(ErrCodeNotFound, ExitCommandError, "failed to read import file", err)
		}

		var export store.Export
		switch fileFormat(path) {
		case "csv":
			var products []model.Product
			if err := gocsv.UnmarshalBytes(raw, &products); err != nil {
				return a.fail(ErrCodeInvalidInput, ExitFailure, "invalid products CSV", err)
			}
			export.Products = nonNil(products)
		default:
			if err := json.Unmarshal(raw, &export); err != nil {
				return a.fail(ErrCodeInvalidInput, ExitFailure, "invalid backup file", err)
			}
		}

		a.store.ImportData(export, opts.Merge)
		result := map[string]int{
			"products": len(a.store.Products()),
			"sales":    len(a.store.Sales()),
			"expenses": len(a.store.Expenses()),
			"users":    len(a.store.Users()),
		}
		return a.done(result, func(w io.Writer) {
			fmt.Fprintf(w, "Imported %s: %d products, %d sales, %d expenses, %d users\n",
				path, result["products"], result["sales"], result["expenses"], result["users"])
		})
	})
}

// DataClearOptions holds flags for data clear.
type DataClearOptions struct {
	*RootOptions
	Yes bool
}

func newDataClearCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DataClearOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all products, sales, expenses and logs",
		Long: `Delete every product, sale, expense and audit entry. Users and
settings are kept. Requires --yes.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts.RootOptions, cmd, "settings.edit", func(a *app) error {
				if !opts.Yes {
					return a.fail(ErrCodeInvalidInput, ExitFailure, "refusing to clear data without --yes", nil)
				}
				a.store.ClearAllData()
				return a.done(map[string]bool{"cleared": true}, func(w io.Writer) {
					fmt.Fprintln(w, "All products, sales, expenses and logs were deleted")
				})
			})
		},
	}

	cmd.Flags().BoolVar(&opts.Yes, "yes", false, "confirm the deletion")

	return cmd
}

func newDataClearCacheCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "clear-cache",
		Short:         "Record a cache reset",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, "settings.edit", func(a *app) error {
				a.store.ClearCache()
				return a.done(map[string]bool{"cleared": true}, func(w io.Writer) {
					fmt.Fprintln(w, "Cache cleared")
				})
			})
		},
	}
}
