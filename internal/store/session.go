package store

import (
	"github.com/roach88/bizdesk/internal/auth"
	"github.com/roach88/bizdesk/internal/format"
	"github.com/roach88/bizdesk/internal/kv"
	"github.com/roach88/bizdesk/internal/model"
)

// Login failure messages.
const (
	MsgInvalidCredentials = "Usuário ou senha inválidos."
	MsgUserInactive       = "Usuário inativo. Contate o administrador."
)

// LoginResult is the outcome of a login attempt. Session is set only on
// success.
type LoginResult struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Session *auth.Session `json:"user,omitempty"`
}

// Login authenticates username (ignoring case) and password (exact). Every
// attempt is audited. Failures are recorded without user attribution and
// distinguish bad credentials from an inactive account.
func (s *Store) Login(username, password string) LoginResult {
	i := credentialIndex(s.users, username, password)
	if i < 0 {
		s.appendAnonymousLog(model.ActionLogin, model.ModuleUsers, "Falha de login para usuário: "+username)
		s.saveLogs()
		return LoginResult{Message: MsgInvalidCredentials}
	}

	u := &s.users[i]
	if !u.Active {
		s.appendAnonymousLog(model.ActionLogin, model.ModuleUsers, "Login recusado para usuário inativo: "+username)
		s.saveLogs()
		return LoginResult{Message: MsgUserInactive}
	}

	now := s.clock.Now()
	u.LastLogin = &now
	session := auth.NewSession(*u)
	s.session = &session
	s.appendLog(model.ActionLogin, model.ModuleUsers, "Login realizado com sucesso", u.ID, u.FullName)
	s.save()

	out := session
	return LoginResult{Success: true, Session: &out}
}

// Logout ends the session, if any, and removes its persisted snapshot.
func (s *Store) Logout() {
	if s.session != nil {
		s.appendLog(model.ActionLogout, model.ModuleUsers, "Logout realizado", s.session.ID, s.session.FullName)
		s.saveLogs()
	}
	s.session = nil

	ctx, cancel := s.ctx()
	defer cancel()
	if err := s.storage.Delete(ctx, kv.KeyCurrentSession); err != nil {
		s.handleStorageError("logout", err)
	}
}

// CurrentUser returns a copy of the session, or nil when logged out.
func (s *Store) CurrentUser() *auth.Session {
	if s.session == nil {
		return nil
	}
	out := *s.session
	return &out
}

// IsLoggedIn reports whether a session exists.
func (s *Store) IsLoggedIn() bool {
	return s.session != nil
}

// HasPermission checks a dotted capability such as "products.edit"
// against the session's profile. Always false when logged out.
func (s *Store) HasPermission(capability string) bool {
	return s.session.Has(capability)
}

func credentialIndex(users []model.User, username, password string) int {
	for i, u := range users {
		if format.EqualFold(u.Username, username) && u.Password == password {
			return i
		}
	}
	return -1
}
