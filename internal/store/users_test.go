package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bizdesk/internal/model"
)

func TestAddUser(t *testing.T) {
	s := newTestStore(t)

	u := s.AddUser(model.UserInput{Username: "caixa", Password: "segredo", FullName: "Caixa Um", Email: "caixa@loja.ao", Profile: model.ProfileOperator})

	require.NotNil(t, u)
	assert.Equal(t, "user_4", u.ID)
	assert.True(t, u.Active)
	assert.Nil(t, u.LastLogin)
	assert.Len(t, s.Users(), 4)
	assert.Equal(t, "Usuário criado: caixa", s.Logs()[0].Details)
}

func TestUpdateUser_EmptyPasswordKeepsCurrent(t *testing.T) {
	s := newTestStore(t)
	before := s.UserByUsername("operador")

	got := s.UpdateUser(before.ID, model.UserPatch{FullName: ptr("Operador Novo"), Password: ptr("")})
	require.NotNil(t, got)
	assert.Equal(t, "operador", got.Password)
	assert.Equal(t, "Operador Novo", got.FullName)
	assert.Equal(t, before.ID, got.ID)
	assert.Equal(t, before.CreatedAt, got.CreatedAt)
	assert.True(t, got.UpdatedAt.After(before.UpdatedAt))

	got = s.UpdateUser(before.ID, model.UserPatch{Password: ptr("nova")})
	assert.Equal(t, "nova", got.Password)

	assert.Nil(t, s.UpdateUser("user_404", model.UserPatch{}))
}

func TestDeleteUser(t *testing.T) {
	s := newTestStore(t)

	ok, err := s.DeleteUser("user_404")
	assert.False(t, ok)
	assert.NoError(t, err)

	ok, err = s.DeleteUser("user_3")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, s.User("user_3"))
	assert.Equal(t, "Usuário excluído: gerente", s.Logs()[0].Details)
}

func TestDeleteUser_RefusesSelf(t *testing.T) {
	s := newTestStore(t)
	require.True(t, s.Login("admin", "admin").Success)

	ok, err := s.DeleteUser("user_1")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrSelfDelete)
	assert.NotNil(t, s.User("user_1"))
}

func TestDeleteUser_RefusesLast(t *testing.T) {
	s := newTestStore(t)
	_, err := s.DeleteUser("user_1")
	require.NoError(t, err)
	_, err = s.DeleteUser("user_2")
	require.NoError(t, err)
	logs := len(s.Logs())

	ok, err := s.DeleteUser("user_3")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrLastUser)
	assert.Len(t, s.Users(), 1)
	assert.Len(t, s.Logs(), logs)
}

func TestUserByUsername_IgnoresCase(t *testing.T) {
	s := newTestStore(t)

	u := s.UserByUsername("ADMIN")
	require.NotNil(t, u)
	assert.Equal(t, "admin", u.Username)
	assert.Nil(t, s.UserByUsername("ghost"))
}

func TestUsers_ReturnsCopies(t *testing.T) {
	s := newTestStore(t)
	require.True(t, s.Login("admin", "admin").Success)

	users := s.Users()
	*users[0].LastLogin = users[0].LastLogin.AddDate(-1, 0, 0)
	users[0].FullName = "changed"

	stored := s.User("user_1")
	assert.Equal(t, "Administrador do Sistema", stored.FullName)
	assert.NotEqual(t, *users[0].LastLogin, *stored.LastLogin)
}
