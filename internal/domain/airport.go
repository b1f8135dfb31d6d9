// Package domain defines the assembled aviation entities produced by
// the NASR parsers and the store interfaces the surrounding layers
// implement. Entities are mutable only inside a parsing pass; once a
// pass finishes they are treated as read-only.
package domain

import (
	"time"

	"airnav/internal/fixed"
)

// AirportKey is the natural key shared by an airport's base record and
// every dependent record type.
type AirportKey struct {
	SiteNumber string // e.g. "01818.*A"
}

// Airport is one landing facility assembled from APT, RWY, ATT and RMK
// records.
type Airport struct {
	SiteNumber   string     `json:"siteNumber"`
	Ident        string     `json:"ident"` // location identifier, e.g. "LAX"
	FacilityType string     `json:"facilityType"`
	Name         string     `json:"name"`
	City         string     `json:"city"`
	State        string     `json:"state"`
	Ownership    string     `json:"ownership"`
	Use          string     `json:"use"`
	Latitude     float64    `json:"latitude"`  // arc-seconds, signed
	Longitude    float64    `json:"longitude"` // arc-seconds, signed
	Elevation    *float64   `json:"elevation,omitempty"`
	MagVariation string     `json:"magVariation,omitempty"`
	TowerOnSite  bool       `json:"towerOnSite"`
	CTAFFreq     *fixed.KHz `json:"ctafFreq,omitempty"`
	EffectiveAt  time.Time  `json:"effectiveAt"`

	Runways    []*Runway         `json:"runways,omitempty"`
	Attendance []*AttendanceSlot `json:"attendance,omitempty"`
	Remarks    []string          `json:"remarks,omitempty"`
}

// Runway is one runway with its two ends, assembled from a single RWY
// record carrying both end blocks.
type Runway struct {
	ID       string  `json:"id"` // e.g. "01/19"
	Length   int64   `json:"length"`
	Width    int64   `json:"width"`
	Surface  string  `json:"surface"`
	BaseEnd  *RunwayEnd `json:"baseEnd,omitempty"`
	RecipEnd *RunwayEnd `json:"recipEnd,omitempty"`
	Remarks  []string   `json:"remarks,omitempty"`
}

// RunwayEnd is one end of a runway. The two ends of a record share a
// single layout shape at disjoint byte offsets and must be structurally
// independent once built.
type RunwayEnd struct {
	ID        string   `json:"id"` // e.g. "01"
	Heading   *int64   `json:"heading,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Elevation *float64 `json:"elevation,omitempty"`
	Remarks   []string `json:"remarks,omitempty"`
}

// AttendanceSlot is one schedule entry, sequence-ordered within the
// airport.
type AttendanceSlot struct {
	Sequence int    `json:"sequence"`
	Schedule string `json:"schedule"` // e.g. "ALL/MON-FRI/0800-1700"
}

// RunwayByID returns the named runway, if the airport has it.
func (a *Airport) RunwayByID(id string) *Runway {
	for _, r := range a.Runways {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// EndByID returns the named runway end.
func (r *Runway) EndByID(id string) *RunwayEnd {
	if r.BaseEnd != nil && r.BaseEnd.ID == id {
		return r.BaseEnd
	}
	if r.RecipEnd != nil && r.RecipEnd.ID == id {
		return r.RecipEnd
	}
	return nil
}
