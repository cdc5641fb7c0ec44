package cli

import (
	"fmt"

	"vaulttrack/internal/client"
	"vaulttrack/internal/core"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

func renderExpenseTable(expenses []core.Expense) {
	if len(expenses) == 0 {
		pterm.Info.Println("No expenses yet. Add one with 'vaulttrack add'.")
		return
	}

	data := pterm.TableData{{"Date", "Title", "Category", "Amount", "ID"}}
	for _, e := range expenses {
		data = append(data, []string{
			e.Date.Format("2006-01-02"),
			e.Title,
			e.Category,
			e.Amount.String(),
			e.ID,
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Error.Printfln("render table: %v", err)
	}
}

func renderSummaryChart(totals []core.CategoryTotal) {
	bars := make([]pterm.Bar, 0, len(totals))
	for _, t := range totals {
		bars = append(bars, pterm.Bar{
			Label: fmt.Sprintf("%s (%s)", t.Category, t.Total.String()),
			Value: int(t.Total.Cents / 100),
		})
	}

	if err := pterm.DefaultBarChart.WithHorizontal().WithBars(bars).WithShowValue().Render(); err != nil {
		pterm.Error.Printfln("render chart: %v", err)
	}
}

func renderBudgetLine(state *client.State) {
	spent := state.TotalSpent()
	budget := state.Budget()
	remaining := state.Remaining()
	pct := state.SpendPercentage()

	fmt.Printf("Spent %s of %s (%.0f%%), remaining %s\n",
		spent.String(), budget.String(), pct, remaining.String())

	if state.OverBudget() {
		color.New(color.FgRed, color.Bold).Printf("Over budget by %s\n",
			core.Money{Cents: -remaining.Cents}.String())
	}
}
