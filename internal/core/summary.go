package core

import "errors"

// CategoryTotal is an amount aggregated under a single category name.
type CategoryTotal struct {
	Category string
	Total    Money
}

// ErrNoData signals that an aggregation input was empty, so a chart should
// show its "no data" placeholder instead of an empty figure.
var ErrNoData = errors.New("no expense data")

// SummarizeByCategory groups expenses by exact, case-sensitive category name
// and sums amounts per group. Groups appear in first-seen order. The sum of
// all group totals equals TotalSpent over the same input.
func SummarizeByCategory(expenses []Expense) ([]CategoryTotal, error) {
	if len(expenses) == 0 {
		return nil, ErrNoData
	}
	index := make(map[string]int, len(expenses))
	totals := make([]CategoryTotal, 0, len(expenses))
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(totals)
			index[e.Category] = i
			totals = append(totals, CategoryTotal{Category: e.Category})
		}
		totals[i].Total.Cents += e.Amount.Cents
	}
	return totals, nil
}

// TotalSpent sums the amounts of all expenses. An empty list yields zero.
func TotalSpent(expenses []Expense) Money {
	var cents int64
	for _, e := range expenses {
		cents += e.Amount.Cents
	}
	return Money{Cents: cents}
}

// Remaining is budget minus spent. It may be negative (over budget) and is
// never clamped.
func Remaining(budget, spent Money) Money {
	return Money{Cents: budget.Cents - spent.Cents}
}

// SpendPercentage is the share of the budget already spent, clamped to
// [0, 100]. A budget of zero or less yields 0 rather than NaN or Inf.
func SpendPercentage(budget, spent Money) float64 {
	if budget.Cents <= 0 {
		return 0
	}
	pct := float64(spent.Cents) / float64(budget.Cents) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
