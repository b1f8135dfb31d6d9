package domain

import "airnav/internal/fixed"

// ILSKey is the natural key for an instrument landing system: the
// airport site, the runway end it serves, and the system type.
type ILSKey struct {
	SiteNumber string
	RunwayEnd  string
	SystemType string // ILS, LOC, LDA, SDF, ...
}

// ILS is an instrument landing system assembled from an ILS1 base
// record and ILS2..ILS5 component records, each of which requires the
// base to exist first.
type ILS struct {
	SiteNumber string   `json:"siteNumber"`
	AirportID  string   `json:"airportId"`
	RunwayEnd  string   `json:"runwayEnd"`
	SystemType string   `json:"systemType"`
	Category   string   `json:"category,omitempty"`
	Remarks    []string `json:"remarks,omitempty"`

	Localizer  *Localizer  `json:"localizer,omitempty"`
	GlideSlope *GlideSlope `json:"glideSlope,omitempty"`
	DME        *DME        `json:"dme,omitempty"`
}

// Localizer holds the ILS2 component data.
type Localizer struct {
	Frequency fixed.KHz `json:"frequency"`
	Course    *float64  `json:"course,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
}

// GlideSlope holds the ILS3 component data.
type GlideSlope struct {
	Angle     float64  `json:"angle"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// DME holds the ILS4 component data.
type DME struct {
	Channel   string   `json:"channel"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}
