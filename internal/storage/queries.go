package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"airnav/internal/domain"
	"airnav/internal/fixed"
)

// QueryStore is the read side over the ingested snapshot, backing the
// MCP tools and exports.
type QueryStore struct {
	db *DB
}

// NewQueryStore creates a new QueryStore.
func NewQueryStore(db *DB) *QueryStore {
	return &QueryStore{db: db}
}

func scanAirport(row *sql.Row) (*domain.Airport, error) {
	a := &domain.Airport{}
	var remarks string
	var ctaf *int64
	err := row.Scan(
		&a.SiteNumber, &a.Ident, &a.FacilityType, &a.Name, &a.City, &a.State,
		&a.Ownership, &a.Use, &a.Latitude, &a.Longitude, &a.Elevation, &a.MagVariation,
		&a.TowerOnSite, &ctaf, &a.EffectiveAt, &remarks,
	)
	if err != nil {
		return nil, err
	}
	if ctaf != nil {
		f := fixed.KHz(*ctaf)
		a.CTAFFreq = &f
	}
	json.Unmarshal([]byte(remarks), &a.Remarks)
	return a, nil
}

const airportColumns = `site_number, ident, facility_type, name, city, state,
	ownership, use, latitude, longitude, elevation, mag_variation,
	tower_on_site, ctaf_khz, effective_at, remarks_json`

// FindAirportByIdent returns the airport with the given location
// identifier, runways and attendance attached.
func (s *QueryStore) FindAirportByIdent(ident string) (*domain.Airport, error) {
	a, err := scanAirport(s.db.conn.QueryRow(
		`SELECT `+airportColumns+` FROM airports WHERE ident = ?`, ident,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("airport not found: %s", ident)
	}
	if err != nil {
		return nil, err
	}
	if a.Runways, err = s.runwaysFor(a.SiteNumber); err != nil {
		return nil, err
	}
	if a.Attendance, err = s.attendanceFor(a.SiteNumber); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *QueryStore) runwaysFor(siteNumber string) ([]*domain.Runway, error) {
	rows, err := s.db.conn.Query(
		`SELECT runway_id, length, width, surface, base_end_json, recip_end_json, remarks_json
		 FROM runways WHERE site_number = ? ORDER BY runway_id`, siteNumber,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runways []*domain.Runway
	for rows.Next() {
		r := &domain.Runway{}
		var baseEnd, recipEnd, remarks string
		if err := rows.Scan(&r.ID, &r.Length, &r.Width, &r.Surface, &baseEnd, &recipEnd, &remarks); err != nil {
			return nil, err
		}
		json.Unmarshal([]byte(baseEnd), &r.BaseEnd)
		json.Unmarshal([]byte(recipEnd), &r.RecipEnd)
		json.Unmarshal([]byte(remarks), &r.Remarks)
		runways = append(runways, r)
	}
	return runways, rows.Err()
}

func (s *QueryStore) attendanceFor(siteNumber string) ([]*domain.AttendanceSlot, error) {
	rows, err := s.db.conn.Query(
		`SELECT sequence, schedule FROM airport_attendance
		 WHERE site_number = ? ORDER BY sequence`, siteNumber,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []*domain.AttendanceSlot
	for rows.Next() {
		slot := &domain.AttendanceSlot{}
		if err := rows.Scan(&slot.Sequence, &slot.Schedule); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

// FindNavaids returns every navaid with the given identifier. The
// identifier is not unique, so this may return several facilities.
func (s *QueryStore) FindNavaids(ident string) ([]*domain.Navaid, error) {
	rows, err := s.db.conn.Query(
		`SELECT ident, type, city, name, state, latitude, longitude,
		 elevation, frequency_khz, status, remarks_json
		 FROM navaids WHERE ident = ? ORDER BY type, city`, ident,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var navaids []*domain.Navaid
	for rows.Next() {
		n := &domain.Navaid{}
		var remarks string
		var freq *int64
		if err := rows.Scan(
			&n.Ident, &n.Type, &n.City, &n.Name, &n.State, &n.Latitude, &n.Longitude,
			&n.Elevation, &freq, &n.Status, &remarks,
		); err != nil {
			return nil, err
		}
		if freq != nil {
			f := fixed.KHz(*freq)
			n.Frequency = &f
		}
		json.Unmarshal([]byte(remarks), &n.Remarks)
		navaids = append(navaids, n)
	}
	return navaids, rows.Err()
}

// FindAirway returns the airway with its points in sequence order.
func (s *QueryStore) FindAirway(designator, system string) (*domain.Airway, error) {
	a := &domain.Airway{}
	err := s.db.conn.QueryRow(
		`SELECT designator, system FROM airways WHERE designator = ? AND system = ?`,
		designator, system,
	).Scan(&a.Designator, &a.System)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("airway not found: %s/%s", system, designator)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.conn.Query(
		`SELECT sequence, fix_name, fix_type, latitude, longitude, mea, remark
		 FROM airway_points WHERE designator = ? AND system = ? ORDER BY sequence`,
		designator, system,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		pt := &domain.AirwayPoint{}
		if err := rows.Scan(&pt.Sequence, &pt.FixName, &pt.FixType,
			&pt.Latitude, &pt.Longitude, &pt.MEA, &pt.Remark); err != nil {
			return nil, err
		}
		a.Points = append(a.Points, pt)
	}
	return a, rows.Err()
}

// Counts returns per-kind entity counts for the current snapshot.
func (s *QueryStore) Counts() (airports, navaids, airways, ils int, err error) {
	for _, q := range []struct {
		table string
		dst   *int
	}{
		{"airports", &airports},
		{"navaids", &navaids},
		{"airways", &airways},
		{"ils_systems", &ils},
	} {
		if err = s.db.conn.QueryRow(`SELECT COUNT(*) FROM ` + q.table).Scan(q.dst); err != nil {
			return
		}
	}
	return
}
