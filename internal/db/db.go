package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

const dbFile = "p75.db"

// Keys of the persisted aggregates
const (
	KeyUser     = "user"
	KeyLogs     = "logs"
	KeyWorkouts = "workouts"
	KeyChat     = "chat"
	KeyEditing  = "editing"
	KeyRequests = "requests"
)

// ErrNotInitialized is returned by Open when the data directory has no database
var ErrNotInitialized = errors.New("database not found: run 'p75 init' first")

// DB wraps the database connection
type DB struct {
	conn    *sql.DB
	baseDir string
}

// Entry is a stored aggregate with its last write time
type Entry struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Open opens an existing database
func Open(baseDir string) (*DB, error) {
	dbPath := filepath.Join(baseDir, dbFile)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, ErrNotInitialized
	}
	return open(baseDir, dbPath)
}

// Initialize creates the data directory and database if needed. It is safe
// to call on an existing database.
func Initialize(baseDir string) (*DB, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return open(baseDir, filepath.Join(baseDir, dbFile))
}

func open(baseDir, dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for concurrent reads while writes are serialized
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Set busy timeout as fallback protection (500ms, matches lock timeout)
	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	conn.Exec("PRAGMA synchronous=NORMAL")

	db := &DB{conn: conn, baseDir: baseDir}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}

// Close closes the database
func (db *DB) Close() error {
	return db.conn.Close()
}

// BaseDir returns the data directory
func (db *DB) BaseDir() string {
	return db.baseDir
}

// withWriteLock executes fn while holding an exclusive write lock.
// This prevents concurrent writes from multiple processes.
func (db *DB) withWriteLock(fn func() error) error {
	locker := newWriteLocker(db.baseDir)
	if err := locker.acquire(defaultTimeout); err != nil {
		return err
	}
	defer locker.release()
	return fn()
}

func (db *DB) migrate() error {
	if v, _ := db.GetSchemaVersion(); v >= SchemaVersion {
		return nil
	}
	return db.withWriteLock(func() error {
		if _, err := db.conn.Exec(schema); err != nil {
			return err
		}
		_, err := db.conn.Exec(`INSERT OR REPLACE INTO schema_info (key, value) VALUES ('version', ?)`,
			strconv.Itoa(SchemaVersion))
		return err
	})
}

// GetSchemaVersion returns the current schema version from the database
func (db *DB) GetSchemaVersion() (int, error) {
	var version string
	err := db.conn.QueryRow("SELECT value FROM schema_info WHERE key = 'version'").Scan(&version)
	if err != nil {
		// No row or no table yet
		return 0, nil
	}
	v, err := strconv.Atoi(version)
	if err != nil {
		return 0, fmt.Errorf("parse schema version %q: %w", version, err)
	}
	return v, nil
}

// KV reads and writes whole aggregates
type KV interface {
	Get(key string, v any) (bool, error)
	Put(key string, v any) error
}

// querier is satisfied by *sql.DB and *sql.Tx
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Get decodes the aggregate stored under key into v. It reports false when
// nothing is stored.
func (db *DB) Get(key string, v any) (bool, error) {
	return get(db.conn, key, v)
}

// Put replaces the aggregate stored under key
func (db *DB) Put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return db.withWriteLock(func() error {
		return put(db.conn, key, data)
	})
}

// Update runs fn as one read-modify-write cycle. The write lock is held
// for the whole call, so reads inside fn see every write made by other
// processes before it, and no other writer interleaves. Writes are
// applied atomically when fn returns nil.
func (db *DB) Update(fn func(kv KV) error) error {
	return db.withWriteLock(func() error {
		tx, err := db.conn.Begin()
		if err != nil {
			return fmt.Errorf("begin: %w", err)
		}
		if err := fn(txKV{tx}); err != nil {
			tx.Rollback()
			return err
		}
		return tx.Commit()
	})
}

type txKV struct {
	tx *sql.Tx
}

func (t txKV) Get(key string, v any) (bool, error) {
	return get(t.tx, key, v)
}

func (t txKV) Put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return put(t.tx, key, data)
}

func get(q querier, key string, v any) (bool, error) {
	var raw string
	err := q.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func put(q querier, key string, data []byte) error {
	_, err := q.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Delete removes the aggregate stored under key
func (db *DB) Delete(key string) error {
	return db.withWriteLock(func() error {
		_, err := db.conn.Exec(`DELETE FROM kv WHERE key = ?`, key)
		return err
	})
}

// Entries returns every stored aggregate ordered by key
func (db *DB) Entries() ([]Entry, error) {
	rows, err := db.conn.Query(`SELECT key, value, updated_at FROM kv ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var raw string
		if err := rows.Scan(&e.Key, &raw, &e.UpdatedAt); err != nil {
			return nil, err
		}
		e.Value = json.RawMessage(raw)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
