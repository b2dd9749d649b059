package store

import (
	"slices"

	"github.com/roach88/bizdesk/internal/format"
	"github.com/roach88/bizdesk/internal/model"
)

func (s *Store) newUser(in model.UserInput) model.User {
	now := s.clock.Now()
	return model.User{
		ID:        s.ids.NewID(PrefixUser),
		Username:  in.Username,
		Password:  in.Password,
		FullName:  in.FullName,
		Email:     in.Email,
		Profile:   in.Profile,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddUser appends an active account that has never logged in.
func (s *Store) AddUser(in model.UserInput) *model.User {
	u := s.newUser(in)
	s.users = append(s.users, u)
	s.commit(model.ActionCreate, model.ModuleUsers, "Usuário criado: "+u.Username)
	out := cloneUser(u)
	return &out
}

// UpdateUser merges patch into the user with id. An empty password keeps
// the current one. Returns nil if id is unknown.
func (s *Store) UpdateUser(id string, patch model.UserPatch) *model.User {
	i := s.userIndex(id)
	if i < 0 {
		return nil
	}
	u := &s.users[i]
	patch.Apply(u)
	u.UpdatedAt = s.touch(u.UpdatedAt)
	out := cloneUser(*u)
	s.commit(model.ActionUpdate, model.ModuleUsers, "Usuário atualizado: "+out.Username)
	return &out
}

// DeleteUser removes the user with id. It returns false for an unknown id,
// ErrSelfDelete for the logged-in user and ErrLastUser when no other
// account would remain.
func (s *Store) DeleteUser(id string) (bool, error) {
	i := s.userIndex(id)
	if i < 0 {
		return false, nil
	}
	if s.session != nil && s.session.ID == id {
		return false, ErrSelfDelete
	}
	if len(s.users) == 1 {
		return false, ErrLastUser
	}
	u := s.users[i]
	s.users = slices.Delete(s.users, i, i+1)
	s.commit(model.ActionDelete, model.ModuleUsers, "Usuário excluído: "+u.Username)
	return true, nil
}

// User returns a copy of the user with id, or nil.
func (s *Store) User(id string) *model.User {
	i := s.userIndex(id)
	if i < 0 {
		return nil
	}
	u := cloneUser(s.users[i])
	return &u
}

// UserByUsername finds a user ignoring case, or returns nil.
func (s *Store) UserByUsername(username string) *model.User {
	for _, u := range s.users {
		if format.EqualFold(u.Username, username) {
			out := cloneUser(u)
			return &out
		}
	}
	return nil
}

// Users returns every account in insertion order.
func (s *Store) Users() []model.User {
	out := make([]model.User, len(s.users))
	for i, u := range s.users {
		out[i] = cloneUser(u)
	}
	return out
}

func (s *Store) userIndex(id string) int {
	return slices.IndexFunc(s.users, func(u model.User) bool { return u.ID == id })
}

func cloneUser(u model.User) model.User {
	if u.LastLogin != nil {
		t := *u.LastLogin
		u.LastLogin = &t
	}
	return u
}
