package domain

import "airnav/internal/fixed"

// NavaidKey is the natural key for a navigation aid. The identifier
// alone is not unique — "AA" names several facilities — so the
// facility type and city disambiguate, exactly as the dependent record
// types re-derive it.
type NavaidKey struct {
	Ident string
	Type  string
	City  string
}

// Navaid is a ground-based navigation aid assembled from NAV1 base and
// NAV2 remark records.
type Navaid struct {
	Ident     string     `json:"ident"`
	Type      string     `json:"type"` // VOR, VORTAC, NDB, TACAN, ...
	Name      string     `json:"name"`
	City      string     `json:"city"`
	State     string     `json:"state"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Elevation *float64   `json:"elevation,omitempty"`
	Frequency *fixed.KHz `json:"frequency,omitempty"`
	Status    string     `json:"status,omitempty"`
	Remarks   []string   `json:"remarks,omitempty"`
}
