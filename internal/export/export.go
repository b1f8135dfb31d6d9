// Package export writes an ingested snapshot to an external database.
// A Destination is just another AggregateSink, so an export run is a
// normal parsing pass pointed at a different backend.
package export

import (
	"context"
	"fmt"

	"airnav/internal/domain"
)

// Driver names the supported export backends.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverMySQL    Driver = "mysql"
	DriverSQLite   Driver = "sqlite"
	DriverMongoDB  Driver = "mongodb"
)

// Config describes the export target. The password is passed
// separately (from the secret store), never stored here.
type Config struct {
	Driver   Driver `json:"driver"`
	Host     string `json:"host"` // file path for sqlite
	Port     int    `json:"port"`
	Database string `json:"database"`
	Username string `json:"username"`
	SSLMode  string `json:"sslMode"`
}

// Destination receives the snapshot. Ping verifies connectivity before
// the pass starts; Close releases the connection afterwards.
type Destination interface {
	domain.AggregateSink
	Ping(ctx context.Context) error
	Close() error
}

// New creates a Destination for the configured driver.
func New(cfg Config, password string) (Destination, error) {
	switch cfg.Driver {
	case DriverSQLite:
		return newSQLDestination("sqlite", cfg.Host+"?_journal_mode=WAL&_busy_timeout=5000")
	case DriverMySQL:
		return newSQLDestination("mysql", buildMySQLDSN(cfg, password))
	case DriverPostgres:
		return newSQLDestination("postgres", buildPostgresDSN(cfg, password))
	case DriverMongoDB:
		return newMongoDestination(cfg, password)
	default:
		return nil, fmt.Errorf("unsupported export driver: %s", cfg.Driver)
	}
}

// buildPostgresDSN constructs a Postgres connection string.
func buildPostgresDSN(cfg Config, password string) string {
	port := cfg.Port
	if port == 0 {
		port = 5432
	}
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, port, cfg.Username, password, cfg.Database, sslMode,
	)
}

// buildMySQLDSN constructs a MySQL DSN.
func buildMySQLDSN(cfg Config, password string) string {
	port := cfg.Port
	if port == 0 {
		port = 3306
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		cfg.Username, password, cfg.Host, port, cfg.Database,
	)
	if cfg.SSLMode == "require" {
		dsn += "&tls=true"
	}
	return dsn
}
