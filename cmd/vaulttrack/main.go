package main

import (
	"os"

	"vaulttrack/internal/cli"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
)

var version = "dev"

func main() {
	// Load .env file for local development (ignore errors when absent)
	_ = godotenv.Load()

	if err := cli.NewApp(version).Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
