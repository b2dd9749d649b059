package store

import (
	"fmt"
	"slices"

	"github.com/roach88/bizdesk/internal/format"
	"github.com/roach88/bizdesk/internal/model"
	"github.com/roach88/bizdesk/internal/report"
)

// AddExpense records an expense, newest first. An empty Date means today.
func (s *Store) AddExpense(in model.ExpenseInput) *model.Expense {
	now := s.clock.Now()
	e := model.Expense{
		ID:          s.ids.NewID(PrefixExpense),
		Description: in.Description,
		Category:    in.Category,
		Value:       in.Value,
		Date:        in.Date,
		Notes:       in.Notes,
		CreatedAt:   now,
	}
	if e.Date == "" {
		e.Date = format.DateISO(now)
	}
	s.expenses = slices.Insert(s.expenses, 0, e)
	s.commit(model.ActionCreate, model.ModuleExpenses,
		fmt.Sprintf("Despesa registrada: %s - %s", e.Description, format.Currency(e.Value)))
	return &e
}

// UpdateExpense merges patch into the expense with id. Returns nil if id
// is unknown.
func (s *Store) UpdateExpense(id string, patch model.ExpensePatch) *model.Expense {
	i := s.expenseIndex(id)
	if i < 0 {
		return nil
	}
	patch.Apply(&s.expenses[i])
	out := s.expenses[i]
	s.commit(model.ActionUpdate, model.ModuleExpenses,
		fmt.Sprintf("Despesa atualizada: %s - %s", out.Description, format.Currency(out.Value)))
	return &out
}

// DeleteExpense removes the expense with id.
func (s *Store) DeleteExpense(id string) bool {
	i := s.expenseIndex(id)
	if i < 0 {
		return false
	}
	e := s.expenses[i]
	s.expenses = slices.Delete(s.expenses, i, i+1)
	s.commit(model.ActionDelete, model.ModuleExpenses,
		fmt.Sprintf("Despesa excluída: %s - %s", e.Description, format.Currency(e.Value)))
	return true
}

// Expense returns a copy of the expense with id, or nil.
func (s *Store) Expense(id string) *model.Expense {
	i := s.expenseIndex(id)
	if i < 0 {
		return nil
	}
	e := s.expenses[i]
	return &e
}

// Expenses returns every expense, newest first.
func (s *Store) Expenses() []model.Expense {
	return slices.Clone(s.expenses)
}

// SearchExpenses matches q against description and category. An empty q
// returns every expense.
func (s *Store) SearchExpenses(q string) []model.Expense {
	if q == "" {
		return s.Expenses()
	}
	var out []model.Expense
	for _, e := range s.expenses {
		if format.ContainsFold(q, e.Description, e.Category) {
			out = append(out, e)
		}
	}
	return out
}

// FilterExpensesByDate returns the expenses dated within [start, end].
func (s *Store) FilterExpensesByDate(start, end string) []model.Expense {
	return report.FilterExpenses(s.Expenses(), start, end)
}

// TotalExpenses sums expenses, or every expense when expenses is nil.
func (s *Store) TotalExpenses(expenses []model.Expense) float64 {
	if expenses == nil {
		expenses = s.expenses
	}
	return report.TotalExpenses(expenses)
}

// ExpensesByCategory sums expenses per category, or every expense when
// expenses is nil.
func (s *Store) ExpensesByCategory(expenses []model.Expense) map[string]float64 {
	if expenses == nil {
		expenses = s.expenses
	}
	return report.ExpensesByCategory(expenses)
}

func (s *Store) expenseIndex(id string) int {
	return slices.IndexFunc(s.expenses, func(e model.Expense) bool { return e.ID == id })
}
