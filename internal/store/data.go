package store

import (
	"slices"
	"time"

	"github.com/roach88/bizdesk/internal/model"
)

// RedactedPassword replaces every password in an export.
const RedactedPassword = "***"

// Export is a point-in-time copy of every collection. On import a nil
// collection is absent and leaves the current one alone, while an empty
// one is present.
type Export struct {
	Products   []model.Product      `json:"products"`
	Sales      []model.Sale         `json:"sales"`
	Expenses   []model.Expense      `json:"expenses"`
	Users      []model.User         `json:"users"`
	Logs       []model.LogEntry     `json:"logs"`
	Settings   *model.SettingsPatch `json:"settings,omitempty"`
	ExportDate time.Time            `json:"exportDate"`
}

// ExportAllData snapshots every collection with passwords redacted.
func (s *Store) ExportAllData() Export {
	users := s.Users()
	for i := range users {
		users[i].Password = RedactedPassword
	}
	settings := s.settings.Patch()
	return Export{
		Products:   nonNil(s.Products()),
		Sales:      nonNil(s.Sales()),
		Expenses:   nonNil(s.Expenses()),
		Users:      nonNil(users),
		Logs:       nonNil(s.logs.Entries()),
		Settings:   &settings,
		ExportDate: s.clock.Now(),
	}
}

// ImportData loads an export.
//
// Without merge, each present product, sale and expense collection
// replaces the current one. With merge, those collections are only
// loaded into an empty store, and users are merged by id: existing
// accounts are kept and unknown ids appended. Users are never replaced
// because exports carry redacted passwords. Logs are not imported.
// Present settings fields are always merged, except the read-only flag.
func (s *Store) ImportData(data Export, merge bool) {
	if data.Products != nil && (!merge || len(s.products) == 0) {
		s.products = slices.Clone(data.Products)
	}
	if data.Sales != nil && (!merge || len(s.sales) == 0) {
		s.sales = make([]model.Sale, len(data.Sales))
		for i, sale := range data.Sales {
			s.sales[i] = cloneSale(sale)
		}
	}
	if data.Expenses != nil && (!merge || len(s.expenses) == 0) {
		s.expenses = slices.Clone(data.Expenses)
	}
	if data.Users != nil && merge {
		for _, u := range data.Users {
			if s.userIndex(u.ID) < 0 {
				s.users = append(s.users, cloneUser(u))
			}
		}
	}
	if data.Settings != nil {
		patch := *data.Settings
		patch.ReadOnlyMode = nil
		patch.Apply(&s.settings)
	}
	s.commit(model.ActionSystem, model.ModuleSystem, "Dados importados com sucesso")
}

// ClearAllData removes every product, sale, expense and log entry. Users
// and settings are kept.
func (s *Store) ClearAllData() {
	s.products = nil
	s.sales = nil
	s.expenses = nil
	s.logs.Clear()
	s.commit(model.ActionSystem, model.ModuleSystem, "Todos os dados foram limpos")
}

// ClearCache only records the request; the store keeps no derived data.
func (s *Store) ClearCache() {
	s.AddLog(model.ActionSystem, model.ModuleSystem, "Cache limpo")
}
