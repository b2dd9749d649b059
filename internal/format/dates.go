package format

import (
	"fmt"
	"time"
)

// ISODate is the layout of calendar-day fields.
const ISODate = "2006-01-02"

var monthNames = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// Date renders an ISO day or RFC 3339 timestamp as dd/mm/yyyy. Empty input
// and "-" render as "-"; unparsable input is returned unchanged.
func Date(s string) string {
	if s == "" || s == "-" {
		return "-"
	}
	t, ok := parseLoose(s)
	if !ok {
		return s
	}
	return t.Format("02/01/2006")
}

// DateTime renders a timestamp as dd/mm/yyyy hh:mm:ss.
func DateTime(s string) string {
	if s == "" || s == "-" {
		return "-"
	}
	t, ok := parseLoose(s)
	if !ok {
		return s
	}
	return t.Format("02/01/2006 15:04:05")
}

// DateISO formats t as YYYY-MM-DD.
func DateISO(t time.Time) string {
	return t.Format(ISODate)
}

// ValidDate reports whether s is a YYYY-MM-DD calendar day.
func ValidDate(s string) bool {
	_, err := time.Parse(ISODate, s)
	return err == nil
}

func parseLoose(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, ISODate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MonthName returns the full month name for a zero-based index.
func MonthName(i int) string {
	if i < 0 || i > 11 {
		return "Mês Inválido"
	}
	return monthNames[i]
}

// MonthShortName returns the three-letter month name for a zero-based index.
func MonthShortName(i int) string {
	if i < 0 || i > 11 {
		return "---"
	}
	return string([]rune(monthNames[i])[:3])
}

// Month identifies one calendar month of a trailing window.
type Month struct {
	Year      int        `json:"year"`
	Month     time.Month `json:"month"`
	Key       string     `json:"key"`
	Label     string     `json:"label"`
	FullLabel string     `json:"fullLabel"`
}

// LastMonths returns the count calendar months ending with the month of
// now, oldest first.
func LastMonths(now time.Time, count int) []Month {
	months := make([]Month, 0, count)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := count - 1; i >= 0; i-- {
		d := first.AddDate(0, -i, 0)
		idx := int(d.Month()) - 1
		months = append(months, Month{
			Year:      d.Year(),
			Month:     d.Month(),
			Key:       MonthKeyOf(d),
			Label:     fmt.Sprintf("%s/%02d", MonthShortName(idx), d.Year()%100),
			FullLabel: fmt.Sprintf("%s/%d", MonthName(idx), d.Year()),
		})
	}
	return months
}

// MonthKeyOf returns the YYYY-MM bucket key of t.
func MonthKeyOf(t time.Time) string {
	return t.Format("2006-01")
}

// MonthKey returns the YYYY-MM prefix of an ISO day, or "" if s is shorter.
func MonthKey(isoDay string) string {
	if len(isoDay) < 7 {
		return ""
	}
	return isoDay[:7]
}
