package domain

// AirwayKey is the natural key for an airway: its designator plus the
// airway system it belongs to.
type AirwayKey struct {
	Designator string // e.g. "V23"
	System     string // e.g. "VICTOR", "JET"
}

// Airway is an en-route airway whose points arrive as AWY1/AWY2
// records in arbitrary order and are attached sorted by sequence
// number at finalization.
type Airway struct {
	Designator string         `json:"designator"`
	System     string         `json:"system"`
	Points     []*AirwayPoint `json:"points,omitempty"`
	Remarks    []string       `json:"remarks,omitempty"`
}

// AirwayPoint is one ordered point of an airway. Its position comes
// from AWY1, its remark from AWY2; either may arrive first.
type AirwayPoint struct {
	Sequence  int      `json:"sequence"`
	FixName   string   `json:"fixName"`
	FixType   string   `json:"fixType,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	MEA       *int64   `json:"mea,omitempty"` // minimum en-route altitude, feet
	Remark    string   `json:"remark,omitempty"`
}
