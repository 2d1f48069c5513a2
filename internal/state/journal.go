package state

import (
	"database/sql"
	"time"

	"github.com/llehouerou/notifygate/internal/db"
)

// Entry is one journaled notification.
type Entry struct {
	NotificationID uint32
	AppName        string
	Summary        string
	Urgency        *byte
	ReplacesID     uint32
	SentAt         time.Time
	CloseReason    *uint32
	ClosedAt       *time.Time
	ActionKey      string
}

// Record journals a sent notification. appName is the locally configured
// sender label, not anything that went over the bus.
func (m *Manager) Record(id uint32, appName, summary string, urgency *byte, replacesID uint32) error {
	return db.WithTx(m.db, func(tx *sql.Tx) error {
		var urg sql.NullInt64
		if urgency != nil {
			urg = sql.NullInt64{Int64: int64(*urgency), Valid: true}
		}
		_, err := tx.Exec(`
			INSERT INTO notifications (notification_id, app_name, summary, urgency, replaces_id, sent_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, id, appName, summary, urg, replacesID, time.Now().Unix())
		return err
	})
}

// MarkClosed records the close reason reported by the server for the
// most recent journal entry with this notification id.
func (m *Manager) MarkClosed(id uint32, reason uint32) error {
	return db.WithTx(m.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			UPDATE notifications
			SET close_reason = ?, closed_at = ?
			WHERE id = (
				SELECT id FROM notifications
				WHERE notification_id = ?
				ORDER BY id DESC LIMIT 1
			)
		`, reason, time.Now().Unix(), id)
		return err
	})
}

// MarkAction records an invoked action key for the most recent journal
// entry with this notification id.
func (m *Manager) MarkAction(id uint32, key string) error {
	return db.WithTx(m.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			UPDATE notifications
			SET action_key = ?
			WHERE id = (
				SELECT id FROM notifications
				WHERE notification_id = ?
				ORDER BY id DESC LIMIT 1
			)
		`, key, id)
		return err
	})
}

// Latest returns the most recent journal entry for a notification id, or
// nil if none exists.
func (m *Manager) Latest(id uint32) (*Entry, error) {
	row := m.db.QueryRow(`
		SELECT notification_id, app_name, summary, urgency, replaces_id, sent_at,
		       close_reason, closed_at, action_key
		FROM notifications
		WHERE notification_id = ?
		ORDER BY id DESC LIMIT 1
	`, id)

	var e Entry
	var urg, reason, closedAt sql.NullInt64
	var sentAt int64
	var actionKey sql.NullString
	err := row.Scan(&e.NotificationID, &e.AppName, &e.Summary, &urg, &e.ReplacesID,
		&sentAt, &reason, &closedAt, &actionKey)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	e.SentAt = time.Unix(sentAt, 0)
	if urg.Valid {
		b := byte(urg.Int64)
		e.Urgency = &b
	}
	if reason.Valid {
		r := uint32(reason.Int64)
		e.CloseReason = &r
	}
	if closedAt.Valid {
		t := time.Unix(closedAt.Int64, 0)
		e.ClosedAt = &t
	}
	e.ActionKey = db.NullStringValue(actionKey)

	return &e, nil
}
