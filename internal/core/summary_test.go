package core

import (
	"errors"
	"testing"
)

func exp(category string, cents int64) Expense {
	return Expense{Title: "t", Amount: Money{Cents: cents}, Category: category}
}

func TestSummarizeByCategory(t *testing.T) {
	expenses := []Expense{
		exp(CategoryFood, 150),
		exp(CategoryTravel, 2000),
		exp(CategoryFood, 350),
		exp(CategoryBills, 1200),
	}

	totals, err := SummarizeByCategory(expenses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(totals) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(totals))
	}
	// First-seen order
	if totals[0].Category != CategoryFood || totals[0].Total.Cents != 500 {
		t.Fatalf("unexpected first group: %+v", totals[0])
	}

	// Sum over all groups matches TotalSpent
	var sum int64
	for _, ct := range totals {
		sum += ct.Total.Cents
	}
	if spent := TotalSpent(expenses); sum != spent.Cents {
		t.Fatalf("group sum %d != total spent %d", sum, spent.Cents)
	}
}

func TestSummarizeByCategoryCaseSensitive(t *testing.T) {
	totals, err := SummarizeByCategory([]Expense{exp("Food", 100), exp("food", 100)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected case-sensitive grouping, got %d groups", len(totals))
	}
}

func TestSummarizeByCategoryEmpty(t *testing.T) {
	if _, err := SummarizeByCategory(nil); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestTotalSpentEmpty(t *testing.T) {
	if spent := TotalSpent(nil); spent.Cents != 0 {
		t.Fatalf("expected 0, got %d", spent.Cents)
	}
}

func TestRemainingMayGoNegative(t *testing.T) {
	rem := Remaining(Money{Cents: 100000}, Money{Cents: 120000})
	if rem.Cents != -20000 {
		t.Fatalf("expected -20000, got %d", rem.Cents)
	}
}

func TestSpendPercentage(t *testing.T) {
	cases := []struct {
		budget, spent int64
		want          float64
	}{
		{100000, 50000, 50},
		{100000, 120000, 100}, // clamped over budget
		{100000, 0, 0},
		{0, 5000, 0},  // zero budget sentinel
		{-100, 50, 0}, // negative budget sentinel
	}
	for _, tc := range cases {
		got := SpendPercentage(Money{Cents: tc.budget}, Money{Cents: tc.spent})
		if got != tc.want {
			t.Fatalf("budget=%d spent=%d: expected %v, got %v", tc.budget, tc.spent, tc.want, got)
		}
		if got < 0 || got > 100 {
			t.Fatalf("percentage out of range: %v", got)
		}
	}
}
