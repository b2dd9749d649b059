package format

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold normalizes s for matching: accents stripped, NFC, case folded.
// "Café" and "CAFE" fold to the same string.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(out)
}

// ContainsFold reports whether needle occurs in any of the fields after
// folding. An empty needle matches everything.
func ContainsFold(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}
	n := Fold(needle)
	for _, f := range fields {
		if strings.Contains(Fold(f), n) {
			return true
		}
	}
	return false
}

// EqualFold compares two strings ignoring case.
func EqualFold(a, b string) bool {
	return cases.Fold().String(a) == cases.Fold().String(b)
}

// TitleCase capitalizes the first letter of each word.
func TitleCase(s string) string {
	if s == "" {
		return ""
	}
	return cases.Title(language.Portuguese).String(strings.ToLower(s))
}

// Truncate shortens s to max runes followed by "...".
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

// Sanitize trims s, drops angle brackets and normalizes single quotes to
// double quotes.
func Sanitize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("<", "", ">", "", "'", `"`).Replace(s)
	return s
}
