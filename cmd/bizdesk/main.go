// Command bizdesk is the small business back office CLI.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/bizdesk/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
