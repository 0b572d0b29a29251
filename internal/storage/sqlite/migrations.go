package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS members (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS trips (
    id TEXT PRIMARY KEY,
    date TEXT NOT NULL UNIQUE,
    driver_id TEXT NOT NULL DEFAULT '',
    trip_type TEXT NOT NULL DEFAULT 'full',
    distance_km REAL NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS trip_participants (
    trip_id TEXT NOT NULL,
    member_id TEXT NOT NULL,
    PRIMARY KEY (trip_id, member_id),
    FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS fee_schedule (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    current_fee REAL NOT NULL,
    previous_fee REAL,
    effective_date TEXT,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshots (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL UNIQUE,
    mode TEXT NOT NULL,
    period TEXT NOT NULL,
    fee_at_save REAL NOT NULL,
    total_working_days INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    created_by TEXT NOT NULL DEFAULT '',
    UNIQUE (mode, period)
);

CREATE TABLE IF NOT EXISTS snapshot_results (
    snapshot_id TEXT NOT NULL,
    member_id TEXT NOT NULL,
    member_name TEXT NOT NULL,
    driver_days INTEGER NOT NULL,
    passenger_days INTEGER NOT NULL,
    active_days INTEGER NOT NULL,
    debt REAL NOT NULL,
    credit REAL NOT NULL,
    gross_credit REAL NOT NULL,
    net REAL NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (snapshot_id, member_id),
    FOREIGN KEY (snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trips_date ON trips(date);
CREATE INDEX IF NOT EXISTS idx_trip_participants_trip_id ON trip_participants(trip_id);
CREATE INDEX IF NOT EXISTS idx_snapshot_results_snapshot_id ON snapshot_results(snapshot_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
