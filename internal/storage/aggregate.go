package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"airnav/internal/domain"
)

// AggregateStore persists the finalized entity collections a parsing
// pass emits. Each Store call replaces the previous snapshot of its
// kind inside one transaction: the authoritative data cycle is
// all-or-nothing per entity kind.
type AggregateStore struct {
	db *DB
}

// NewAggregateStore creates a new AggregateStore.
func NewAggregateStore(db *DB) *AggregateStore {
	return &AggregateStore{db: db}
}

var _ domain.AggregateSink = (*AggregateStore)(nil)

func (s *AggregateStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// StoreAirports replaces the airports snapshot, runways and attendance
// included.
func (s *AggregateStore) StoreAirports(ctx context.Context, airports []*domain.Airport) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"airport_attendance", "runways", "airports"} {
			if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		for _, a := range airports {
			remarks, _ := json.Marshal(a.Remarks)
			var ctaf *int64
			if a.CTAFFreq != nil {
				v := int64(*a.CTAFFreq)
				ctaf = &v
			}
			_, err := tx.Exec(
				`INSERT INTO airports (site_number, ident, facility_type, name, city, state,
				 ownership, use, latitude, longitude, elevation, mag_variation,
				 tower_on_site, ctaf_khz, effective_at, remarks_json)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				a.SiteNumber, a.Ident, a.FacilityType, a.Name, a.City, a.State,
				a.Ownership, a.Use, a.Latitude, a.Longitude, a.Elevation, a.MagVariation,
				a.TowerOnSite, ctaf, a.EffectiveAt, string(remarks),
			)
			if err != nil {
				return fmt.Errorf("insert airport %s: %w", a.SiteNumber, err)
			}
			for _, r := range a.Runways {
				baseEnd, _ := json.Marshal(r.BaseEnd)
				recipEnd, _ := json.Marshal(r.RecipEnd)
				rwyRemarks, _ := json.Marshal(r.Remarks)
				_, err := tx.Exec(
					`INSERT INTO runways (site_number, runway_id, length, width, surface,
					 base_end_json, recip_end_json, remarks_json)
					 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
					a.SiteNumber, r.ID, r.Length, r.Width, r.Surface,
					string(baseEnd), string(recipEnd), string(rwyRemarks),
				)
				if err != nil {
					return fmt.Errorf("insert runway %s %s: %w", a.SiteNumber, r.ID, err)
				}
			}
			for _, slot := range a.Attendance {
				_, err := tx.Exec(
					`INSERT INTO airport_attendance (site_number, sequence, schedule) VALUES (?, ?, ?)`,
					a.SiteNumber, slot.Sequence, slot.Schedule,
				)
				if err != nil {
					return fmt.Errorf("insert attendance %s/%d: %w", a.SiteNumber, slot.Sequence, err)
				}
			}
		}
		return nil
	})
}

// StoreNavaids replaces the navaids snapshot.
func (s *AggregateStore) StoreNavaids(ctx context.Context, navaids []*domain.Navaid) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM navaids`); err != nil {
			return err
		}
		for _, n := range navaids {
			remarks, _ := json.Marshal(n.Remarks)
			var freq *int64
			if n.Frequency != nil {
				v := int64(*n.Frequency)
				freq = &v
			}
			_, err := tx.Exec(
				`INSERT INTO navaids (ident, type, city, name, state, latitude, longitude,
				 elevation, frequency_khz, status, remarks_json)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				n.Ident, n.Type, n.City, n.Name, n.State, n.Latitude, n.Longitude,
				n.Elevation, freq, n.Status, string(remarks),
			)
			if err != nil {
				return fmt.Errorf("insert navaid %s/%s: %w", n.Ident, n.City, err)
			}
		}
		return nil
	})
}

// StoreAirways replaces the airways snapshot, points included.
func (s *AggregateStore) StoreAirways(ctx context.Context, airways []*domain.Airway) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM airway_points`); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM airways`); err != nil {
			return err
		}
		for _, a := range airways {
			if _, err := tx.Exec(
				`INSERT INTO airways (designator, system) VALUES (?, ?)`,
				a.Designator, a.System,
			); err != nil {
				return fmt.Errorf("insert airway %s: %w", a.Designator, err)
			}
			for _, pt := range a.Points {
				_, err := tx.Exec(
					`INSERT INTO airway_points (designator, system, sequence, fix_name,
					 fix_type, latitude, longitude, mea, remark)
					 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
					a.Designator, a.System, pt.Sequence, pt.FixName,
					pt.FixType, pt.Latitude, pt.Longitude, pt.MEA, pt.Remark,
				)
				if err != nil {
					return fmt.Errorf("insert airway point %s/%d: %w", a.Designator, pt.Sequence, err)
				}
			}
		}
		return nil
	})
}

// StoreILS replaces the instrument landing systems snapshot.
func (s *AggregateStore) StoreILS(ctx context.Context, systems []*domain.ILS) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM ils_systems`); err != nil {
			return err
		}
		for _, sys := range systems {
			remarks, _ := json.Marshal(sys.Remarks)
			loc := nullableJSON(sys.Localizer)
			gs := nullableJSON(sys.GlideSlope)
			dme := nullableJSON(sys.DME)
			_, err := tx.Exec(
				`INSERT INTO ils_systems (site_number, runway_end, system_type, airport_id,
				 category, localizer_json, glide_slope_json, dme_json, remarks_json)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				sys.SiteNumber, sys.RunwayEnd, sys.SystemType, sys.AirportID,
				sys.Category, loc, gs, dme, string(remarks),
			)
			if err != nil {
				return fmt.Errorf("insert ils %s/%s: %w", sys.SiteNumber, sys.RunwayEnd, err)
			}
		}
		return nil
	})
}

// nullableJSON marshals v, keeping SQL NULL for an absent component.
func nullableJSON[T any](v *T) *string {
	if v == nil {
		return nil
	}
	b, _ := json.Marshal(v)
	s := string(b)
	return &s
}
