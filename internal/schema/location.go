package schema

import "airnav/internal/fixed"

// ─────────────────────────────────────────────────────────────
// Paired latitude/longitude handling
// Both-present and both-absent are the only universally valid
// states. A few legacy record types tolerate a half-populated pair;
// that leniency is a named per-schema choice, never a default.
// ─────────────────────────────────────────────────────────────

// LocationPolicy decides what a half-populated coordinate pair means.
type LocationPolicy int

const (
	// Strict fails when exactly one of the pair is present.
	Strict LocationPolicy = iota
	// TolerateHalfPopulated keeps whatever half is there.
	TolerateHalfPopulated
)

// LatLon is a geographic position in signed arc-seconds.
type LatLon struct {
	Lat fixed.Arcsec
	Lon fixed.Arcsec
}

// Location reads the coordinate pair at (latIdx, lonIdx). It returns
// nil when both sides are absent. Under Strict, one-of-two-present is
// a LocationError; under TolerateHalfPopulated the missing side stays
// zero.
func Location(r Row, latIdx, lonIdx int, pol LocationPolicy) (*LatLon, error) {
	lat, latOK, err := r.OptCoord(latIdx)
	if err != nil {
		return nil, err
	}
	lon, lonOK, err := r.OptCoord(lonIdx)
	if err != nil {
		return nil, err
	}

	switch {
	case latOK && lonOK:
		return &LatLon{Lat: lat, Lon: lon}, nil
	case !latOK && !lonOK:
		return nil, nil
	default:
		if pol == TolerateHalfPopulated {
			return &LatLon{Lat: lat, Lon: lon}, nil
		}
		return nil, &LocationError{LatColumn: latIdx, LonColumn: lonIdx}
	}
}
