// Package state keeps a local journal of sent notifications and the
// close/action signals the server reports back. It is bookkeeping only;
// nothing in the validation or send path reads from it.
package state

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "notifygate"
	dbFileName = "journal.db"
)

type Manager struct {
	db *sql.DB
}

// Open creates or opens the journal database in the XDG data directory.
// An explicit path overrides the default location.
func Open(path string) (*Manager, error) {
	dbPath := path
	if dbPath == "" {
		var err error
		dbPath, err = xdg.DataFile(filepath.Join(appName, dbFileName))
		if err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db}, nil
}

func (m *Manager) Close() error {
	return m.db.Close()
}

func (m *Manager) DB() *sql.DB {
	return m.db
}
