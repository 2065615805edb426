package database

// sqliteSchema is the full schema for the sqlite backend. The postgres
// backend gets the equivalent tables through versioned migrations.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS facilities (
    id      INTEGER PRIMARY KEY AUTOINCREMENT,
    name    TEXT NOT NULL,
    address TEXT NOT NULL DEFAULT '',
    phone   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS equipment (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    item_id          TEXT UNIQUE NOT NULL,
    name             TEXT NOT NULL,
    location         TEXT NOT NULL,
    category         TEXT NOT NULL,
    current_location TEXT NOT NULL DEFAULT '',
    user_location    TEXT NOT NULL DEFAULT '',
    status           TEXT NOT NULL DEFAULT 'standby',
    note             TEXT NOT NULL DEFAULT '',
    image            TEXT NOT NULL DEFAULT '',
    history          TEXT NOT NULL DEFAULT '[]',
    facility_id      INTEGER REFERENCES facilities(id) ON DELETE CASCADE,
    created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_equipment_created_at ON equipment(created_at);

CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    username      TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL CHECK (role IN ('admin', 'staff')),
    facility_id   INTEGER REFERENCES facilities(id) ON DELETE CASCADE,
    UNIQUE (username, facility_id)
);

CREATE TABLE IF NOT EXISTS sessions (
    token       TEXT PRIMARY KEY,
    username    TEXT NOT NULL,
    role        TEXT NOT NULL,
    facility_id INTEGER,
    created_at  TIMESTAMP NOT NULL,
    last_seen   TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS audit_logs (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    resource_id   TEXT NOT NULL,
    resource_type TEXT NOT NULL,
    action        TEXT NOT NULL,
    actor         TEXT NOT NULL DEFAULT '',
    data          TEXT NOT NULL DEFAULT '{}',
    created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
