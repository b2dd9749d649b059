package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/roach88/bizdesk/internal/model"
)

// NewSettingsCommand creates the settings command group.
func NewSettingsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change company settings",
	}

	cmd.AddCommand(newSettingsShowCommand(rootOpts))
	cmd.AddCommand(newSettingsSetCommand(rootOpts))

	return cmd
}

func newSettingsShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show",
		Short:         "Show the settings",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, "settings.view", func(a *app) error {
				s := a.store.Settings()
				return a.out.Render(s, func(w io.Writer) {
					writeSettings(w, s)
				})
			})
		},
	}
}

func writeSettings(w io.Writer, s model.Settings) {
	writeFields(w,
		"companyName", s.CompanyName,
		"currency", s.Currency,
		"dateFormat", s.DateFormat,
		"lowStockThreshold", strconv.Itoa(s.LowStockThreshold),
		"taxRate", strconv.FormatFloat(s.TaxRate, 'f', -1, 64),
	)
}

// settingKeys lists the keys accepted by settings set.
var settingKeys = []string{"companyName", "currency", "dateFormat", "lowStockThreshold", "taxRate"}

func newSettingsSetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key=value>...",
		Short: "Change one or more settings",
		Long: `Change one or more settings. Keys: companyName, currency, dateFormat,
lowStockThreshold, taxRate.

Example:
  bizdesk settings set companyName="Loja Central" lowStockThreshold=5`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, "settings.edit", func(a *app) error {
				patch, err := parseSettings(args)
				if err != nil {
					return a.fail(ErrCodeInvalidInput, ExitFailure, "invalid setting", err)
				}
				s := a.store.UpdateSettings(patch)
				return a.done(s, func(w io.Writer) {
					writeSettings(w, s)
				})
			})
		},
	}
}

// parseSettings turns key=value arguments into a patch.
func parseSettings(args []string) (model.SettingsPatch, error) {
	var patch model.SettingsPatch
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return patch, fmt.Errorf("%q: want key=value", arg)
		}
		switch key {
		case "companyName":
			patch.CompanyName = &value
		case "currency":
			patch.Currency = &value
		case "dateFormat":
			patch.DateFormat = &value
		case "lowStockThreshold":
			n, err := cast.ToIntE(value)
			if err != nil {
				return patch, fmt.Errorf("%s: %w", key, err)
			}
			if n < 0 {
				return patch, fmt.Errorf("%s: must not be negative", key)
			}
			patch.LowStockThreshold = &n
		case "taxRate":
			rate, err := cast.ToFloat64E(value)
			if err != nil {
				return patch, fmt.Errorf("%s: %w", key, err)
			}
			if rate < 0 || rate > 100 {
				return patch, fmt.Errorf("%s: must be between 0 and 100", key)
			}
			patch.TaxRate = &rate
		default:
			keys := append([]string(nil), settingKeys...)
			sort.Strings(keys)
			return patch, fmt.Errorf("unknown setting %q: must be one of %v", key, keys)
		}
	}
	return patch, nil
}
