package main

import (
	"os"

	"github.com/lazyverdi/lazyverdi/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
