package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS notifications (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			notification_id INTEGER NOT NULL,
			app_name TEXT NOT NULL DEFAULT '',
			summary TEXT NOT NULL,
			urgency INTEGER,
			replaces_id INTEGER NOT NULL DEFAULT 0,
			sent_at INTEGER NOT NULL,
			close_reason INTEGER,
			closed_at INTEGER,
			action_key TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_notifications_notification_id
			ON notifications(notification_id);
		CREATE INDEX IF NOT EXISTS idx_notifications_sent_at
			ON notifications(sent_at);
	`)
	if err != nil {
		return err
	}

	return setSchemaVersion(db, currentSchemaVersion)
}

func setSchemaVersion(db *sql.DB, version int) error {
	_, err := db.Exec(`
		INSERT INTO schema_version (version) VALUES (?)
		ON CONFLICT(version) DO NOTHING
	`, version)
	return err
}
