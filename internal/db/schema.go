package db

// SchemaVersion is the current database schema version
const SchemaVersion = 2

const schema = `
-- Aggregates are stored whole, one JSON document per key
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Derived progress reports keyed by a hash of their input
CREATE TABLE IF NOT EXISTS reports (
    hash TEXT PRIMARY KEY,
    report TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Schema info table
CREATE TABLE IF NOT EXISTS schema_info (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`
