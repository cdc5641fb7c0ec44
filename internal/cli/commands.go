package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"vaulttrack/internal/client"
	"vaulttrack/internal/core"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func (a *App) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all expenses, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.refresh(cmd); err != nil {
				return reportAPIError(err)
			}
			renderExpenseTable(a.state.Expenses())
			renderBudgetLine(a.state)
			return nil
		},
	}
}

func (a *App) newAddCmd() *cobra.Command {
	var (
		title       string
		amount      string
		category    string
		description string
		date        string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.state.BeginSubmit() {
				return errors.New("another submit is already in progress")
			}
			defer a.state.EndSubmit()

			cents, err := core.ParseDecimalToCents(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}

			when := time.Now()
			if date != "" {
				when, err = time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
				}
			}

			expense := core.Expense{
				Title:       strings.TrimSpace(title),
				Amount:      core.Money{Cents: cents},
				Category:    category,
				Description: strings.TrimSpace(description),
				Date:        when,
			}
			if err := expense.Validate(); err != nil {
				return err
			}

			saved, err := a.api.Create(cmd.Context(), expense)
			if err != nil {
				return reportAPIError(err)
			}
			a.state.ApplyInsert(saved)

			pterm.Success.Printfln("recorded %s (%s) under %s, id %s",
				saved.Title, saved.Amount.String(), saved.Category, saved.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "expense title (required)")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "amount as a decimal, e.g. 12.50 (required)")
	cmd.Flags().StringVarP(&category, "category", "c", core.CategoryFood, "category, one of: "+strings.Join(core.Categories(), ", "))
	cmd.Flags().StringVarP(&description, "description", "d", "", "optional description")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD, defaults to today")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func (a *App) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := a.api.Delete(cmd.Context(), id); err != nil {
				return reportAPIError(err)
			}
			a.state.ApplyDelete(id)
			pterm.Success.Printfln("deleted expense %s", id)
			return nil
		},
	}
}

func (a *App) newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show spend totals grouped by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.refresh(cmd); err != nil {
				return reportAPIError(err)
			}

			totals, err := a.state.Summary()
			if errors.Is(err, core.ErrNoData) {
				pterm.Info.Println("No expenses yet. Add one with 'vaulttrack add'.")
				return nil
			}
			if err != nil {
				return err
			}

			renderSummaryChart(totals)
			renderBudgetLine(a.state)
			return nil
		},
	}
}

func (a *App) newBudgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "budget [value]",
		Short: "Show the monthly budget, or set it to a new decimal value",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cents, err := core.ParseDecimalToCents(args[0])
				if err != nil {
					return fmt.Errorf("invalid budget %q: %w", args[0], err)
				}
				if err := a.state.SetBudget(core.Money{Cents: cents}); err != nil {
					return fmt.Errorf("save budget: %w", err)
				}
				pterm.Success.Printfln("budget set to %s", a.state.Budget().String())
				return nil
			}

			if err := a.refresh(cmd); err != nil {
				return reportAPIError(err)
			}
			renderBudgetLine(a.state)
			return nil
		},
	}
}

func (a *App) newResyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resync",
		Short: "Discard local state and reload everything from the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.refresh(cmd); err != nil {
				return reportAPIError(err)
			}
			pterm.Success.Printfln("resynced %d expenses from %s", len(a.state.Expenses()), a.cfg.APIBaseURL)
			return nil
		},
	}
}

func (a *App) newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theme",
		Short: "Toggle between the dark and light console theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.state.ToggleDarkMode(); err != nil {
				return fmt.Errorf("save theme: %w", err)
			}
			if a.state.DarkMode() {
				pterm.Info.Println("dark theme enabled")
			} else {
				pterm.Info.Println("light theme enabled")
			}
			return nil
		},
	}
}

// reportAPIError rewrites client errors into messages fit for the terminal.
func reportAPIError(err error) error {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrTimeout):
		return errors.New("the server took too long to respond, try again or check VAULTTRACK_API_URL")
	case errors.As(err, &apiErr):
		return fmt.Errorf("server rejected the request (%d): %s", apiErr.Status, apiErr.Message)
	default:
		return err
	}
}
