package cli

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"

	"github.com/roach88/bizdesk/internal/format"
)

// parseDay normalizes a loose date flag ("2026-03-01", "01/03/2026",
// "March 1, 2026") to YYYY-MM-DD. Slash dates read day first, matching
// the dd/mm/yyyy display format. An empty value stays empty.
func parseDay(flag, value string) (string, error) {
	if value == "" {
		return "", nil
	}
	t, err := dateparse.ParseIn(value, time.UTC, dateparse.PreferMonthFirst(false))
	if err != nil {
		return "", fmt.Errorf("--%s: %w", flag, err)
	}
	return format.DateISO(t), nil
}

// parseRange normalizes a --from/--to pair.
func parseRange(from, to string) (string, string, error) {
	start, err := parseDay("from", from)
	if err != nil {
		return "", "", err
	}
	end, err := parseDay("to", to)
	if err != nil {
		return "", "", err
	}
	if start != "" && end != "" && start > end {
		return "", "", fmt.Errorf("--from %s is after --to %s", start, end)
	}
	return start, end, nil
}
