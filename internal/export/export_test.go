package export_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"airnav/internal/domain"
	"airnav/internal/export"
)

func sqliteDest(t *testing.T) (export.Destination, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.db")
	dest, err := export.New(export.Config{Driver: export.DriverSQLite, Host: path}, "")
	if err != nil {
		t.Fatalf("new destination: %v", err)
	}
	t.Cleanup(func() { dest.Close() })
	return dest, path
}

func TestUnsupportedDriver(t *testing.T) {
	if _, err := export.New(export.Config{Driver: "oracle"}, ""); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestSQLiteExportRoundTrip(t *testing.T) {
	dest, path := sqliteDest(t)
	ctx := context.Background()

	if err := dest.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	navaids := []*domain.Navaid{
		{Ident: "SLI", Type: "VORTAC", City: "LOS ALAMITOS", Name: "SEAL BEACH", Latitude: 121000, Longitude: -424000},
	}
	if err := dest.StoreNavaids(ctx, navaids); err != nil {
		t.Fatalf("store navaids: %v", err)
	}
	// a second store replaces, not appends
	if err := dest.StoreNavaids(ctx, navaids); err != nil {
		t.Fatalf("second store: %v", err)
	}

	mea := int64(5000)
	airways := []*domain.Airway{{
		Designator: "V23", System: "VICTOR",
		Points: []*domain.AirwayPoint{
			{Sequence: 10, FixName: "FIRST", MEA: &mea},
			{Sequence: 20, FixName: "SECOND"},
		},
	}}
	if err := dest.StoreAirways(ctx, airways); err != nil {
		t.Fatalf("store airways: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open exported db: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM navaids`).Scan(&n); err != nil {
		t.Fatalf("count navaids: %v", err)
	}
	if n != 1 {
		t.Fatalf("navaids = %d, want 1", n)
	}

	// airway points land flattened, one row per point
	if err := db.QueryRow(`SELECT COUNT(*) FROM airway_points`).Scan(&n); err != nil {
		t.Fatalf("count points: %v", err)
	}
	if n != 2 {
		t.Fatalf("airway_points = %d, want 2", n)
	}

	var fix string
	if err := db.QueryRow(
		`SELECT fix_name FROM airway_points WHERE designator = 'V23' AND sequence = 20`,
	).Scan(&fix); err != nil {
		t.Fatalf("select point: %v", err)
	}
	if fix != "SECOND" {
		t.Fatalf("fix = %q", fix)
	}
}

func TestSQLiteExportAirports(t *testing.T) {
	dest, path := sqliteDest(t)
	ctx := context.Background()

	airports := []*domain.Airport{{
		SiteNumber: "01818.*A", Ident: "SMO", FacilityType: "AIRPORT",
		Name: "SANTA MONICA MUNI", City: "SANTA MONICA", State: "CA",
		Ownership: "PU", Use: "PU", TowerOnSite: true,
		Runways: []*domain.Runway{{ID: "03/21", Length: 4973, Width: 150, Surface: "ASPH"}},
	}}
	if err := dest.StoreAirports(ctx, airports); err != nil {
		t.Fatalf("store: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open exported db: %v", err)
	}
	defer db.Close()

	var runwaysJSON string
	if err := db.QueryRow(
		`SELECT runways_json FROM airports WHERE ident = 'SMO'`,
	).Scan(&runwaysJSON); err != nil {
		t.Fatalf("select: %v", err)
	}
	if runwaysJSON == "" || runwaysJSON == "null" {
		t.Fatalf("runways_json = %q", runwaysJSON)
	}
}
