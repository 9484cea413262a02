package main

import (
	"fmt"
	"os"

	"github.com/steviee/go-mojang/internal/cli"
)

// Version information (set by ldflags during build)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	rootCmd := cli.NewRootCommand(version, commit, date, builtBy)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
