package client

import (
	"errors"
	"log/slog"
	"time"

	"vaulttrack/internal/core"
	"vaulttrack/internal/settings"
)

// Settings keys. totalBudget carries cents; both are rewritten on every
// change and read once at startup.
const (
	settingKeyBudget   = "totalBudget"
	settingKeyDarkMode = "darkMode"
)

// DefaultBudgetCents is the monthly budget before the user edits it.
const DefaultBudgetCents int64 = 5000000 // 50000.00

// FormDraft is the current entry form contents, kept as raw strings until
// submission.
type FormDraft struct {
	Title       string
	Amount      string
	Category    string
	Date        string
	Description string
}

// NewFormDraft returns the form defaults: Food category, today's date.
func NewFormDraft() FormDraft {
	return FormDraft{
		Category: core.CategoryFood,
		Date:     time.Now().Format("2006-01-02"),
	}
}

// ResetAfterSubmit clears the per-record fields and keeps category and
// date for the next entry.
func (f *FormDraft) ResetAfterSubmit() {
	f.Title = ""
	f.Amount = ""
	f.Description = ""
}

// State is the client's application state. It only changes through the
// transition methods below: fetch-success replaces the list, insert-success
// prepends the server's canonical record, delete-success removes one id,
// plus form and budget edits. Derived figures are recomputed on every call,
// never cached.
type State struct {
	expenses []core.Expense
	form     FormDraft
	budget   core.Money
	loading  bool
	darkMode bool
	inFlight bool
	store    settings.Store
}

// NewState loads budget and theme from the settings store, falling back to
// defaults for anything unset.
func NewState(store settings.Store) *State {
	s := &State{
		form:     NewFormDraft(),
		budget:   core.Money{Cents: DefaultBudgetCents},
		darkMode: true,
		store:    store,
	}

	var cents int64
	switch err := store.Get(settingKeyBudget, &cents); {
	case err == nil:
		s.budget = core.Money{Cents: cents}
	case !errors.Is(err, settings.ErrNotFound):
		slog.Warn("Failed loading budget setting", "error", err)
	}

	var dark bool
	switch err := store.Get(settingKeyDarkMode, &dark); {
	case err == nil:
		s.darkMode = dark
	case !errors.Is(err, settings.ErrNotFound):
		slog.Warn("Failed loading theme setting", "error", err)
	}

	return s
}

// ApplyFetch replaces the list wholesale after a successful fetch. Also
// the resync operation: the local view can drift if another client
// mutates the store, and this is the one way to converge again.
func (s *State) ApplyFetch(expenses []core.Expense) {
	s.expenses = make([]core.Expense, len(expenses))
	copy(s.expenses, expenses)
}

// ApplyInsert prepends the server's canonical record after a successful
// create, rather than re-fetching the whole list.
func (s *State) ApplyInsert(e core.Expense) {
	s.expenses = append([]core.Expense{e}, s.expenses...)
	s.form.ResetAfterSubmit()
}

// ApplyDelete removes the matching id after a successful delete. Unknown
// ids are ignored.
func (s *State) ApplyDelete(id string) {
	for i, e := range s.expenses {
		if e.ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return
		}
	}
}

// EditForm replaces the form draft.
func (s *State) EditForm(f FormDraft) {
	s.form = f
}

// Form returns the current form draft.
func (s *State) Form() FormDraft {
	return s.form
}

// SetBudget updates the budget and persists it immediately.
func (s *State) SetBudget(budget core.Money) error {
	s.budget = budget
	return s.store.Set(settingKeyBudget, budget.Cents)
}

// Budget returns the current budget.
func (s *State) Budget() core.Money {
	return s.budget
}

// ToggleDarkMode flips the theme flag and persists it.
func (s *State) ToggleDarkMode() error {
	s.darkMode = !s.darkMode
	return s.store.Set(settingKeyDarkMode, s.darkMode)
}

// DarkMode returns the theme flag.
func (s *State) DarkMode() bool {
	return s.darkMode
}

// SetLoading sets the loading flag.
func (s *State) SetLoading(v bool) {
	s.loading = v
}

// Loading returns the loading flag.
func (s *State) Loading() bool {
	return s.loading
}

// BeginSubmit marks a submission in flight. It returns false when one is
// already running, closing the double-submit race.
func (s *State) BeginSubmit() bool {
	if s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

// EndSubmit clears the in-flight flag.
func (s *State) EndSubmit() {
	s.inFlight = false
}

// Expenses returns a copy of the current list, newest first.
func (s *State) Expenses() []core.Expense {
	out := make([]core.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out
}

// TotalSpent sums the amounts of the current list.
func (s *State) TotalSpent() core.Money {
	return core.TotalSpent(s.expenses)
}

// Remaining is budget minus total spent; negative when over budget.
func (s *State) Remaining() core.Money {
	return core.Remaining(s.budget, s.TotalSpent())
}

// OverBudget reports whether spending exceeds the budget.
func (s *State) OverBudget() bool {
	return s.Remaining().Cents < 0
}

// SpendPercentage is the clamped share of budget spent; 0 for a zero
// budget.
func (s *State) SpendPercentage() float64 {
	return core.SpendPercentage(s.budget, s.TotalSpent())
}

// Summary groups the current list by category. core.ErrNoData when empty.
func (s *State) Summary() ([]core.CategoryTotal, error) {
	return core.SummarizeByCategory(s.expenses)
}
