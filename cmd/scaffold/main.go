// Command scaffold generates Go projects from composable templates.
package main

import (
	"os"

	"github.com/modu-ai/scaffold/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
