package state

import (
	"database/sql"

	"github.com/reelplayer/reel/internal/db"
)

// Settings represents the saved playback settings.
type Settings struct {
	Volume float64
	Muted  bool
	Loop   string
}

// GetSettings returns the saved settings, with defaults when nothing was
// saved yet.
func (m *Manager) GetSettings() (*Settings, error) {
	var s Settings

	row := m.db.QueryRow(`SELECT volume, muted, loop_mode FROM settings WHERE id = 1`)
	err := row.Scan(&s.Volume, &s.Muted, &s.Loop)
	if err == sql.ErrNoRows {
		return &Settings{Volume: 1.0, Muted: false, Loop: "none"}, nil
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func saveSettings(sqlDB *sql.DB, s Settings) error {
	return db.WithTx(sqlDB, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO settings (id, volume, muted, loop_mode)
			VALUES (1, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				volume = excluded.volume,
				muted = excluded.muted,
				loop_mode = excluded.loop_mode
		`, s.Volume, s.Muted, s.Loop)
		return err
	})
}
