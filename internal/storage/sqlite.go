package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection.
type DB struct {
	conn *sql.DB
}

// New creates a new DB, opening (or creating) the SQLite file at dbPath.
func New(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite only supports one writer — limit to single connection to prevent SQLITE_BUSY
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying database connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS airports (
			site_number TEXT PRIMARY KEY,
			ident TEXT NOT NULL,
			facility_type TEXT NOT NULL,
			name TEXT NOT NULL,
			city TEXT NOT NULL,
			state TEXT NOT NULL DEFAULT '',
			ownership TEXT NOT NULL,
			use TEXT NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			elevation REAL,
			mag_variation TEXT NOT NULL DEFAULT '',
			tower_on_site INTEGER NOT NULL DEFAULT 0,
			ctaf_khz INTEGER,
			effective_at DATETIME NOT NULL,
			remarks_json TEXT NOT NULL DEFAULT '[]'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_airports_ident ON airports(ident)`,
		`CREATE TABLE IF NOT EXISTS runways (
			site_number TEXT NOT NULL REFERENCES airports(site_number),
			runway_id TEXT NOT NULL,
			length INTEGER NOT NULL,
			width INTEGER NOT NULL,
			surface TEXT NOT NULL,
			base_end_json TEXT NOT NULL DEFAULT '{}',
			recip_end_json TEXT NOT NULL DEFAULT '{}',
			remarks_json TEXT NOT NULL DEFAULT '[]',
			PRIMARY KEY (site_number, runway_id)
		)`,
		`CREATE TABLE IF NOT EXISTS airport_attendance (
			site_number TEXT NOT NULL REFERENCES airports(site_number),
			sequence INTEGER NOT NULL,
			schedule TEXT NOT NULL,
			PRIMARY KEY (site_number, sequence)
		)`,
		`CREATE TABLE IF NOT EXISTS navaids (
			ident TEXT NOT NULL,
			type TEXT NOT NULL,
			city TEXT NOT NULL,
			name TEXT NOT NULL,
			state TEXT NOT NULL DEFAULT '',
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			elevation REAL,
			frequency_khz INTEGER,
			status TEXT NOT NULL DEFAULT '',
			remarks_json TEXT NOT NULL DEFAULT '[]',
			PRIMARY KEY (ident, type, city)
		)`,
		`CREATE TABLE IF NOT EXISTS airways (
			designator TEXT NOT NULL,
			system TEXT NOT NULL,
			PRIMARY KEY (designator, system)
		)`,
		`CREATE TABLE IF NOT EXISTS airway_points (
			designator TEXT NOT NULL,
			system TEXT NOT NULL,
			sequence INTEGER NOT NULL,
			fix_name TEXT NOT NULL,
			fix_type TEXT NOT NULL DEFAULT '',
			latitude REAL,
			longitude REAL,
			mea INTEGER,
			remark TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (designator, system, sequence),
			FOREIGN KEY (designator, system) REFERENCES airways(designator, system)
		)`,
		`CREATE TABLE IF NOT EXISTS ils_systems (
			site_number TEXT NOT NULL,
			runway_end TEXT NOT NULL,
			system_type TEXT NOT NULL,
			airport_id TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			localizer_json TEXT,
			glide_slope_json TEXT,
			dme_json TEXT,
			remarks_json TEXT NOT NULL DEFAULT '[]',
			PRIMARY KEY (site_number, runway_end, system_type)
		)`,
		`CREATE TABLE IF NOT EXISTS sync_runs (
			id TEXT PRIMARY KEY,
			triggered_by TEXT NOT NULL,
			status TEXT NOT NULL,
			started_at DATETIME NOT NULL,
			finished_at DATETIME,
			airports INTEGER NOT NULL DEFAULT 0,
			navaids INTEGER NOT NULL DEFAULT 0,
			airways INTEGER NOT NULL DEFAULT 0,
			ils INTEGER NOT NULL DEFAULT 0,
			error TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sync_runs_started ON sync_runs(started_at)`,
	}

	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %s: %w", m[:40], err)
		}
	}

	return nil
}
