package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bizdesk/internal/auth"
	"github.com/roach88/bizdesk/internal/kv"
	"github.com/roach88/bizdesk/internal/model"
)

func TestLogin_Success(t *testing.T) {
	storage := kv.NewMemory()
	s := openTestStore(t, storage)

	res := s.Login("admin", "admin")

	require.True(t, res.Success)
	require.NotNil(t, res.Session)
	assert.Empty(t, res.Message)
	assert.Equal(t, "user_1", res.Session.ID)
	assert.Equal(t, auth.ForProfile(model.ProfileAdmin), res.Session.Permissions)
	assert.True(t, s.IsLoggedIn())
	assert.Equal(t, res.Session, s.CurrentUser())
	assert.NotNil(t, s.User("user_1").LastLogin)

	last := s.Logs()[0]
	assert.Equal(t, model.ActionLogin, last.Action)
	assert.Equal(t, model.ModuleUsers, last.Module)
	assert.Equal(t, "user_1", last.UserID)
	assert.Equal(t, "Administrador do Sistema", last.UserName)

	_, found, err := storage.Get(context.Background(), kv.KeyCurrentSession)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newTestStore(t)
	logs := len(s.Logs())

	res := s.Login("admin", "wrongpass")

	assert.False(t, res.Success)
	assert.Equal(t, MsgInvalidCredentials, res.Message)
	assert.Nil(t, res.Session)
	assert.False(t, s.IsLoggedIn())
	assert.Nil(t, s.CurrentUser())

	require.Len(t, s.Logs(), logs+1)
	last := s.Logs()[0]
	assert.Equal(t, model.ActionLogin, last.Action)
	assert.Equal(t, model.ModuleUsers, last.Module)
	assert.Empty(t, last.UserID)
	assert.Equal(t, model.SystemUserName, last.UserName)
	assert.Contains(t, last.Details, "admin")
}

func TestLogin_UsernameIgnoresCasePasswordDoesNot(t *testing.T) {
	s := newTestStore(t)

	assert.True(t, s.Login("ADMIN", "admin").Success)
	s.Logout()
	assert.False(t, s.Login("admin", "ADMIN").Success)
}

func TestLogin_InactiveUser(t *testing.T) {
	s := newTestStore(t)
	s.UpdateUser("user_2", model.UserPatch{Active: ptr(false)})

	res := s.Login("operador", "operador")

	assert.False(t, res.Success)
	assert.Equal(t, MsgUserInactive, res.Message)
	assert.False(t, s.IsLoggedIn())
	assert.Equal(t, model.ActionLogin, s.Logs()[0].Action)
	assert.Contains(t, s.Logs()[0].Details, "inativo")
	assert.Nil(t, s.User("user_2").LastLogin)
}

func TestLogout(t *testing.T) {
	storage := kv.NewMemory()
	s := openTestStore(t, storage)
	require.True(t, s.Login("gerente", "gerente").Success)

	s.Logout()

	assert.False(t, s.IsLoggedIn())
	last := s.Logs()[0]
	assert.Equal(t, model.ActionLogout, last.Action)
	assert.Equal(t, "user_3", last.UserID)
	_, found, err := storage.Get(context.Background(), kv.KeyCurrentSession)
	require.NoError(t, err)
	assert.False(t, found)

	logs := len(s.Logs())
	s.Logout()
	assert.Len(t, s.Logs(), logs, "no entry without a session")
}

func TestSession_SurvivesReload(t *testing.T) {
	storage, _ := createTestStorage(t)
	first := openTestStore(t, storage)
	require.True(t, first.Login("operador", "operador").Success)

	second := openTestStore(t, storage)
	require.True(t, second.IsLoggedIn())
	assert.Equal(t, first.CurrentUser(), second.CurrentUser())
}

func TestHasPermission(t *testing.T) {
	s := newTestStore(t)
	assert.False(t, s.HasPermission("dashboard"), "logged out")

	require.True(t, s.Login("operador", "operador").Success)
	assert.True(t, s.HasPermission("dashboard"))
	assert.True(t, s.HasPermission("sales.create"))
	assert.False(t, s.HasPermission("sales.delete"))
	assert.False(t, s.HasPermission("users.view"))
}
