// Package cli implements the vaulttrack terminal client on top of cobra.
package cli

import (
	"fmt"

	"vaulttrack/internal/client"
	"vaulttrack/internal/config"
	"vaulttrack/internal/settings"

	"github.com/spf13/cobra"
)

// App wires the API client and the application state behind the commands.
type App struct {
	rootCmd *cobra.Command
	cfg     *config.Config
	api     *client.API
	state   *client.State
}

func NewApp(version string) *App {
	app := &App{}

	rootCmd := &cobra.Command{
		Use:           "vaulttrack",
		Short:         "VaultTrack expense tracker client",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init()
		},
	}

	rootCmd.AddCommand(
		app.newListCmd(),
		app.newAddCmd(),
		app.newDeleteCmd(),
		app.newSummaryCmd(),
		app.newBudgetCmd(),
		app.newResyncCmd(),
		app.newThemeCmd(),
	)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

func (a *App) init() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	store, err := settings.NewFileStore(cfg.SettingsPath)
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}

	a.cfg = cfg
	a.api = client.NewAPI(cfg.APIBaseURL, cfg.RequestTimeout)
	a.state = client.NewState(store)
	return nil
}

// refresh runs the list operation and replaces local state wholesale.
func (a *App) refresh(cmd *cobra.Command) error {
	a.state.SetLoading(true)
	defer a.state.SetLoading(false)

	expenses, err := a.api.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch expenses: %w", err)
	}
	a.state.ApplyFetch(expenses)
	return nil
}
