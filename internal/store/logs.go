package store

import (
	"github.com/roach88/bizdesk/internal/audit"
	"github.com/roach88/bizdesk/internal/model"
)

// AddLog records an entry attributed to the logged-in user, or to
// model.SystemUserName without one, and persists only the logs.
func (s *Store) AddLog(action model.Action, module, details string) model.LogEntry {
	return s.AddLogAs(action, module, details, "", "")
}

// AddLogAs records an entry with explicit attribution. Empty userID or
// userName fall back to the session like AddLog.
func (s *Store) AddLogAs(action model.Action, module, details, userID, userName string) model.LogEntry {
	e := s.appendLog(action, module, details, userID, userName)
	s.saveLogs()
	return e
}

// Logs returns the trail, newest first.
func (s *Store) Logs() []model.LogEntry {
	return s.logs.Entries()
}

// FilterLogs returns the entries matching f, newest first.
func (s *Store) FilterLogs(f audit.Filter) []model.LogEntry {
	return s.logs.Filter(f)
}

// ClearLogs empties the trail and records that it was cleared.
func (s *Store) ClearLogs() {
	s.logs.Clear()
	s.AddLog(model.ActionSystem, model.ModuleSystem, "Logs limpos manualmente")
}

func (s *Store) appendLog(action model.Action, module, details, userID, userName string) model.LogEntry {
	if userID == "" && s.session != nil {
		userID = s.session.ID
	}
	if userName == "" {
		userName = model.SystemUserName
		if s.session != nil {
			userName = s.session.FullName
		}
	}
	e := model.LogEntry{
		ID:        s.ids.NewID(PrefixLog),
		Timestamp: s.clock.Now(),
		Action:    action,
		Module:    module,
		Details:   details,
		UserID:    userID,
		UserName:  userName,
	}
	s.logs.Add(e)
	return e
}

// appendAnonymousLog records an entry that is never attributed to the
// session, used for failed logins.
func (s *Store) appendAnonymousLog(action model.Action, module, details string) model.LogEntry {
	e := model.LogEntry{
		ID:        s.ids.NewID(PrefixLog),
		Timestamp: s.clock.Now(),
		Action:    action,
		Module:    module,
		Details:   details,
		UserName:  model.SystemUserName,
	}
	s.logs.Add(e)
	return e
}
