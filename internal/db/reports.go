package db

import (
	"database/sql"
	"fmt"
)

// keptReports bounds the report cache; older rows are pruned on write
const keptReports = 32

// Report returns the cached report stored under hash
func (db *DB) Report(hash string) ([]byte, bool, error) {
	var raw string
	err := db.conn.QueryRow(`SELECT report FROM reports WHERE hash = ?`, hash).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get report %s: %w", hash, err)
	}
	return []byte(raw), true, nil
}

// SaveReport caches an encoded report and prunes all but the newest rows
func (db *DB) SaveReport(hash string, data []byte) error {
	return db.withWriteLock(func() error {
		if _, err := db.conn.Exec(`INSERT OR REPLACE INTO reports (hash, report, created_at) VALUES (?, ?, datetime('now'))`,
			hash, string(data)); err != nil {
			return fmt.Errorf("save report %s: %w", hash, err)
		}
		_, err := db.conn.Exec(`
			DELETE FROM reports WHERE hash NOT IN (
				SELECT hash FROM reports ORDER BY created_at DESC, rowid DESC LIMIT ?
			)`, keptReports)
		return err
	})
}
