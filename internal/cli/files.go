package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// exportResult describes a file written by an export command.
type exportResult struct {
	Path    string `json:"path"`
	Format  string `json:"format,omitempty"`
	Records int    `json:"records"`
}

// writeFile writes data to path, creating parent directories.
func (a *app) writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return a.fail(ErrCodeWriteFailed, ExitCommandError, "failed to create output directory", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return a.fail(ErrCodeWriteFailed, ExitCommandError, "failed to write output file", err)
	}
	a.out.VerboseLog("Wrote %d bytes to %s", len(data), path)
	return nil
}

// fileFormat is the lower-case extension of path without the dot.
func fileFormat(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
