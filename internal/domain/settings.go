package domain

// UserSettings is a flat record of independent toggles. There are no
// cross-field invariants; each field degrades to its default on its own.
type UserSettings struct {
	Theme          string `json:"theme"`
	AutoSave       bool   `json:"auto_save"`
	SoundEnabled   bool   `json:"sound_enabled"`
	CompactMode    bool   `json:"compact_mode"`
	ShowTimestamps bool   `json:"show_timestamps"`
	AutoScroll     bool   `json:"auto_scroll"`
}

// DefaultSettings returns the settings applied on first run and whenever
// a stored settings blob cannot be decoded.
func DefaultSettings() UserSettings {
	return UserSettings{
		Theme:          "light",
		AutoSave:       true,
		SoundEnabled:   true,
		CompactMode:    false,
		ShowTimestamps: true,
		AutoScroll:     true,
	}
}
