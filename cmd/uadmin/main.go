package main

import (
	"fmt"
	"os"

	"uadmin/internal/cli"
	"uadmin/internal/config"
)

func main() {
	// Load defaults, the config file and the environment; flags are applied
	// by the root command
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cli.NewRootCommand(cfg).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}
