package store

import (
	"database/sql"
	"fmt"
	"strconv"
)

// Setting keys.
const (
	KeySmoothAlpha = "smooth_alpha"
	KeyMinRectSize = "min_rect_size"
	KeyCameraID    = "camera_id"
	KeyMirror      = "mirror"
)

// Settings are the user-tunable application parameters persisted between
// runs.
type Settings struct {
	SmoothAlpha float64
	MinRectSize int
	CameraID    int
	Mirror      bool
}

// DefaultSettings returns the out-of-the-box settings.
func DefaultSettings() Settings {
	return Settings{
		SmoothAlpha: 0.4,
		MinRectSize: 3,
		CameraID:    0,
		Mirror:      true,
	}
}

// SettingsRepository provides access to the persisted settings.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// Load reads the stored settings, falling back to defaults for any key
// that has never been saved.
func (r *SettingsRepository) Load() (Settings, error) {
	settings := DefaultSettings()

	rows, err := r.db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return settings, err
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return settings, err
		}

		switch key {
		case KeySmoothAlpha:
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				settings.SmoothAlpha = v
			}
		case KeyMinRectSize:
			if v, err := strconv.Atoi(value); err == nil {
				settings.MinRectSize = v
			}
		case KeyCameraID:
			if v, err := strconv.Atoi(value); err == nil {
				settings.CameraID = v
			}
		case KeyMirror:
			if v, err := strconv.ParseBool(value); err == nil {
				settings.Mirror = v
			}
		}
	}

	return settings, rows.Err()
}

// Save upserts all settings in a single transaction.
func (r *SettingsRepository) Save(settings Settings) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	pairs := []struct {
		key   string
		value string
	}{
		{KeySmoothAlpha, strconv.FormatFloat(settings.SmoothAlpha, 'f', -1, 64)},
		{KeyMinRectSize, strconv.Itoa(settings.MinRectSize)},
		{KeyCameraID, strconv.Itoa(settings.CameraID)},
		{KeyMirror, strconv.FormatBool(settings.Mirror)},
	}
	for _, p := range pairs {
		if _, err := stmt.Exec(p.key, p.value); err != nil {
			return fmt.Errorf("save setting %s: %w", p.key, err)
		}
	}

	return tx.Commit()
}
