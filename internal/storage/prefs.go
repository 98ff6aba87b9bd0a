package storage

import "errors"

// ThemeKey stores the last selected theme name.
const ThemeKey = "calculator-theme"

// ThemePreference returns the saved theme name, or "" when none was saved.
func (db *DB) ThemePreference() (string, error) {
	name, err := db.Get(ThemeKey)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return name, err
}

// SaveThemePreference records name as the preferred theme.
func (db *DB) SaveThemePreference(name string) error {
	return db.Put(ThemeKey, name)
}
