package audit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bizdesk/internal/model"
)

var base = time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC)

func entry(i int, action model.Action, module string) model.LogEntry {
	return model.LogEntry{
		ID:        fmt.Sprintf("log_%d", i),
		Timestamp: base.Add(time.Duration(i) * time.Minute),
		Action:    action,
		Module:    module,
		Details:   fmt.Sprintf("entry %d", i),
		UserName:  model.SystemUserName,
	}
}

func TestTrail_NewestFirst(t *testing.T) {
	trail := NewTrail(0)
	trail.Add(entry(1, model.ActionCreate, model.ModuleProducts))
	trail.Add(entry(2, model.ActionUpdate, model.ModuleProducts))

	entries := trail.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "log_2", entries[0].ID)
	assert.Equal(t, "log_1", entries[1].ID)
	assert.Equal(t, DefaultLimit, trail.Limit())
}

func TestTrail_Bounded(t *testing.T) {
	trail := NewTrail(DefaultLimit)
	for i := 1; i <= DefaultLimit+5; i++ {
		trail.Add(entry(i, model.ActionSystem, model.ModuleSystem))
	}

	require.Equal(t, DefaultLimit, trail.Len())
	entries := trail.Entries()
	assert.Equal(t, fmt.Sprintf("log_%d", DefaultLimit+5), entries[0].ID)
	assert.Equal(t, "log_6", entries[DefaultLimit-1].ID)
}

func TestTrail_EntriesIsACopy(t *testing.T) {
	trail := NewTrail(10)
	trail.Add(entry(1, model.ActionSystem, model.ModuleSystem))

	entries := trail.Entries()
	entries[0].Details = "tampered"
	assert.Equal(t, "entry 1", trail.Entries()[0].Details)
}

func TestTrail_ResetTruncates(t *testing.T) {
	trail := NewTrail(3)
	var loaded []model.LogEntry
	for i := 5; i >= 1; i-- {
		loaded = append(loaded, entry(i, model.ActionSystem, model.ModuleSystem))
	}
	trail.Reset(loaded)

	entries := trail.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "log_5", entries[0].ID)
	assert.Equal(t, "log_3", entries[2].ID)
}

func TestTrail_Clear(t *testing.T) {
	trail := NewTrail(10)
	trail.Add(entry(1, model.ActionSystem, model.ModuleSystem))
	trail.Clear()
	assert.Zero(t, trail.Len())
	assert.Empty(t, trail.Entries())
}

func TestTrail_Filter(t *testing.T) {
	trail := NewTrail(10)
	trail.Add(entry(1, model.ActionCreate, model.ModuleProducts))
	trail.Add(entry(2, model.ActionDelete, model.ModuleProducts))
	sale := entry(3, model.ActionCreate, model.ModuleSales)
	sale.UserID = "user_2"
	sale.UserName = "Operador Padrão"
	sale.Details = "Venda realizada para João"
	trail.Add(sale)
	older := entry(4, model.ActionLogin, model.ModuleUsers)
	older.Timestamp = base.AddDate(0, -1, 0)
	trail.Add(older)

	ids := func(entries []model.LogEntry) []string {
		var out []string
		for _, e := range entries {
			out = append(out, e.ID)
		}
		return out
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"empty matches all", Filter{}, []string{"log_4", "log_3", "log_2", "log_1"}},
		{"all sentinel", Filter{Action: "all", Module: "all"}, []string{"log_4", "log_3", "log_2", "log_1"}},
		{"action", Filter{Action: model.ActionCreate}, []string{"log_3", "log_1"}},
		{"module", Filter{Module: model.ModuleProducts}, []string{"log_2", "log_1"}},
		{"action and module", Filter{Action: model.ActionCreate, Module: model.ModuleSales}, []string{"log_3"}},
		{"month prefix", Filter{Date: "2026-03"}, []string{"log_3", "log_2", "log_1"}},
		{"day prefix", Filter{Date: "2026-02-15"}, []string{"log_4"}},
		{"user", Filter{UserID: "user_2"}, []string{"log_3"}},
		{"search ignores case and accents", Filter{Search: "JOAO"}, []string{"log_3"}},
		{"search user name", Filter{Search: "operador"}, []string{"log_3"}},
		{"no match", Filter{Action: model.ActionLogout}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(trail.Filter(tt.filter)))
		})
	}
}
