package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"airnav/internal/domain"
)

// sqlDestination is the shared implementation for MySQL, Postgres and
// SQLite. Tables are flat: dependent collections are folded into JSON
// columns, the shape an analytic consumer wants.
type sqlDestination struct {
	driverName string
	db         *sql.DB
}

func newSQLDestination(driverName, dsn string) (*sqlDestination, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driverName, err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(10 * time.Minute)
	return &sqlDestination{driverName: driverName, db: db}, nil
}

func (d *sqlDestination) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return d.db.PingContext(ctx)
}

func (d *sqlDestination) Close() error {
	return d.db.Close()
}

// placeholders renders the parameter list in the driver's dialect:
// $1..$n for Postgres, ? elsewhere.
func (d *sqlDestination) placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		if d.driverName == "postgres" {
			parts[i] = fmt.Sprintf("$%d", i+1)
		} else {
			parts[i] = "?"
		}
	}
	return strings.Join(parts, ", ")
}

// colType maps a generic column type to the driver's dialect.
func (d *sqlDestination) colType(generic string) string {
	if d.driverName == "postgres" && generic == "REAL" {
		return "DOUBLE PRECISION"
	}
	return generic
}

type column struct {
	name string
	typ  string // generic: TEXT, REAL, BIGINT
}

// replaceTable drops and recreates the table, then bulk-inserts rows
// inside one transaction.
func (d *sqlDestination) replaceTable(ctx context.Context, table string, cols []column, rows [][]any) error {
	defs := make([]string, len(cols))
	names := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = c.name + " " + d.colType(c.typ)
		names[i] = c.name
	}

	if _, err := d.db.ExecContext(ctx, `DROP TABLE IF EXISTS `+table); err != nil {
		return fmt.Errorf("drop %s: %w", table, err)
	}
	create := fmt.Sprintf(`CREATE TABLE %s (%s)`, table, strings.Join(defs, ", "))
	if _, err := d.db.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	insert := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		table, strings.Join(names, ", "), d.placeholders(len(cols)))
	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, insert, row...); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	return tx.Commit()
}

func asJSON(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func (d *sqlDestination) StoreAirports(ctx context.Context, airports []*domain.Airport) error {
	cols := []column{
		{"site_number", "TEXT"}, {"ident", "TEXT"}, {"facility_type", "TEXT"},
		{"name", "TEXT"}, {"city", "TEXT"}, {"state", "TEXT"},
		{"ownership", "TEXT"}, {"use_type", "TEXT"},
		{"latitude", "REAL"}, {"longitude", "REAL"}, {"elevation", "REAL"},
		{"tower_on_site", "BIGINT"}, {"ctaf_khz", "BIGINT"},
		{"runways_json", "TEXT"}, {"attendance_json", "TEXT"}, {"remarks_json", "TEXT"},
	}
	rows := make([][]any, 0, len(airports))
	for _, a := range airports {
		var ctaf *int64
		if a.CTAFFreq != nil {
			v := int64(*a.CTAFFreq)
			ctaf = &v
		}
		tower := int64(0)
		if a.TowerOnSite {
			tower = 1
		}
		rows = append(rows, []any{
			a.SiteNumber, a.Ident, a.FacilityType, a.Name, a.City, a.State,
			a.Ownership, a.Use, a.Latitude, a.Longitude, a.Elevation,
			tower, ctaf,
			asJSON(a.Runways), asJSON(a.Attendance), asJSON(a.Remarks),
		})
	}
	return d.replaceTable(ctx, "airports", cols, rows)
}

func (d *sqlDestination) StoreNavaids(ctx context.Context, navaids []*domain.Navaid) error {
	cols := []column{
		{"ident", "TEXT"}, {"type", "TEXT"}, {"city", "TEXT"},
		{"name", "TEXT"}, {"state", "TEXT"},
		{"latitude", "REAL"}, {"longitude", "REAL"}, {"elevation", "REAL"},
		{"frequency_khz", "BIGINT"}, {"status", "TEXT"}, {"remarks_json", "TEXT"},
	}
	rows := make([][]any, 0, len(navaids))
	for _, n := range navaids {
		var freq *int64
		if n.Frequency != nil {
			v := int64(*n.Frequency)
			freq = &v
		}
		rows = append(rows, []any{
			n.Ident, n.Type, n.City, n.Name, n.State,
			n.Latitude, n.Longitude, n.Elevation,
			freq, n.Status, asJSON(n.Remarks),
		})
	}
	return d.replaceTable(ctx, "navaids", cols, rows)
}

func (d *sqlDestination) StoreAirways(ctx context.Context, airways []*domain.Airway) error {
	cols := []column{
		{"designator", "TEXT"}, {"system", "TEXT"},
		{"sequence", "BIGINT"}, {"fix_name", "TEXT"}, {"fix_type", "TEXT"},
		{"latitude", "REAL"}, {"longitude", "REAL"},
		{"mea", "BIGINT"}, {"remark", "TEXT"},
	}
	var rows [][]any
	for _, a := range airways {
		for _, pt := range a.Points {
			rows = append(rows, []any{
				a.Designator, a.System,
				int64(pt.Sequence), pt.FixName, pt.FixType,
				pt.Latitude, pt.Longitude, pt.MEA, pt.Remark,
			})
		}
	}
	return d.replaceTable(ctx, "airway_points", cols, rows)
}

func (d *sqlDestination) StoreILS(ctx context.Context, systems []*domain.ILS) error {
	cols := []column{
		{"site_number", "TEXT"}, {"runway_end", "TEXT"}, {"system_type", "TEXT"},
		{"airport_id", "TEXT"}, {"category", "TEXT"},
		{"localizer_json", "TEXT"}, {"glide_slope_json", "TEXT"},
		{"dme_json", "TEXT"}, {"remarks_json", "TEXT"},
	}
	rows := make([][]any, 0, len(systems))
	for _, s := range systems {
		rows = append(rows, []any{
			s.SiteNumber, s.RunwayEnd, s.SystemType,
			s.AirportID, s.Category,
			asJSON(s.Localizer), asJSON(s.GlideSlope),
			asJSON(s.DME), asJSON(s.Remarks),
		})
	}
	return d.replaceTable(ctx, "ils_systems", cols, rows)
}
