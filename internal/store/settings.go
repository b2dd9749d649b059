package store

import "github.com/roach88/bizdesk/internal/model"

// Settings returns the current settings.
func (s *Store) Settings() model.Settings {
	return s.settings
}

// UpdateSettings merges patch into the settings. Clearing ReadOnlyMode
// lets the store report write failures afresh.
func (s *Store) UpdateSettings(patch model.SettingsPatch) model.Settings {
	patch.Apply(&s.settings)
	s.commit(model.ActionUpdate, model.ModuleSettings, "Configurações atualizadas")
	return s.settings
}
