package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bizdesk/internal/audit"
	"github.com/roach88/bizdesk/internal/kv"
	"github.com/roach88/bizdesk/internal/model"
)

func TestAddLog_DefaultsAttributionToSession(t *testing.T) {
	s := newTestStore(t)

	e := s.AddLog(model.ActionSystem, model.ModuleSystem, "sem sessão")
	assert.Empty(t, e.UserID)
	assert.Equal(t, model.SystemUserName, e.UserName)

	require.True(t, s.Login("gerente", "gerente").Success)
	e = s.AddLog(model.ActionSystem, model.ModuleSystem, "com sessão")
	assert.Equal(t, "user_3", e.UserID)
	assert.Equal(t, "Gerente Regional", e.UserName)

	e = s.AddLogAs(model.ActionSystem, model.ModuleSystem, "explícito", "user_9", "Outro")
	assert.Equal(t, "user_9", e.UserID)
	assert.Equal(t, "Outro", e.UserName)
}

func TestAddLog_WritesOnlyLogs(t *testing.T) {
	storage := &recordingStorage{Memory: kv.NewMemory()}
	s := openTestStore(t, storage)
	storage.written = nil

	s.AddLog(model.ActionSystem, model.ModuleSystem, "only logs")

	assert.Equal(t, []string{kv.KeyLogs}, storage.written)
}

func TestAddLog_Bounded(t *testing.T) {
	s := newTestStore(t)
	total := audit.DefaultLimit + 5
	for i := 1; i <= total; i++ {
		s.AddLog(model.ActionSystem, model.ModuleSystem, fmt.Sprintf("entry %d", i))
	}

	logs := s.Logs()
	require.Len(t, logs, audit.DefaultLimit)
	for i, e := range logs {
		assert.Equal(t, fmt.Sprintf("entry %d", total-i), e.Details)
	}
}

func TestAddLog_ReloadKeepsBound(t *testing.T) {
	storage := kv.NewMemory()
	s := openTestStore(t, storage, WithLogLimit(3))
	for i := 0; i < 5; i++ {
		s.AddLog(model.ActionSystem, model.ModuleSystem, "x")
	}

	reloaded := openTestStore(t, storage, WithLogLimit(2))
	assert.Len(t, reloaded.Logs(), 2)
}

func TestFilterLogs(t *testing.T) {
	s := newTestStore(t)
	s.AddProduct(pencil())
	s.Login("admin", "nope")

	assert.Len(t, s.FilterLogs(audit.Filter{Module: model.ModuleProducts}), 1)
	assert.Len(t, s.FilterLogs(audit.Filter{Action: model.ActionLogin}), 1)
	assert.Len(t, s.FilterLogs(audit.Filter{Action: "all", Module: "all"}), 3)
	assert.Len(t, s.FilterLogs(audit.Filter{Date: "2026-03-15"}), 3)
	assert.Len(t, s.FilterLogs(audit.Filter{Search: "caneta"}), 1)
}

func TestClearLogs(t *testing.T) {
	s := newTestStore(t)
	s.AddProduct(pencil())

	s.ClearLogs()

	logs := s.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, model.ActionSystem, logs[0].Action)
	assert.Equal(t, "Logs limpos manualmente", logs[0].Details)
}
