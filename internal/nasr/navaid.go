package nasr

import (
	"context"

	"airnav/internal/assemble"
	"airnav/internal/domain"
	"airnav/internal/layout"
	"airnav/internal/router"
	"airnav/internal/schema"
)

// ─────────────────────────────────────────────────────────────
// NAV file — navigation aids
// NAV1 is the base record; NAV2 carries remarks and re-derives the
// same compound key. The identifier alone is ambiguous, which is the
// whole reason the key includes facility type and city.
// ─────────────────────────────────────────────────────────────

// Column indices for the NAV1 base record.
const (
	navIdent = iota + 1
	navFacType
	navName
	navCity
	navState
	navLat
	navLon
	navElev
	navFreq
	navStatus
)

var nav1Layout = layout.Table{
	{Name: "TYPE", Start: 0, Len: 4},
	{Name: "IDENT", Start: 4, Len: 4},
	{Name: "FAC_TYPE", Start: 8, Len: 20},
	{Name: "NAME", Start: 28, Len: 30},
	{Name: "CITY", Start: 58, Len: 40},
	{Name: "STATE", Start: 98, Len: 2},
	{Name: "LAT", Start: 100, Len: 15},
	{Name: "LON", Start: 115, Len: 15},
	{Name: "ELEV", Start: 130, Len: 7},
	{Name: "FREQ", Start: 137, Len: 7},
	{Name: "STATUS", Start: 144, Len: 30},
}

var nav1Schema = schema.Schema{
	schema.RecordType("TYPE"),
	schema.String("IDENT", schema.Required),
	schema.String("FAC_TYPE", schema.Required),
	schema.String("NAME", schema.Required),
	schema.String("CITY", schema.Required),
	schema.String("STATE", schema.BlankIsNull),
	schema.Coord("LAT", schema.Required),
	schema.Coord("LON", schema.Required),
	schema.Float("ELEV", schema.BlankIsNull),
	schema.Frequency("FREQ", schema.BlankIsNull),
	schema.String("STATUS", schema.BlankIsNull),
}

// Column indices for the NAV2 remark record.
const (
	nav2Ident = iota + 1
	nav2FacType
	nav2City
	nav2Remark
)

var nav2Layout = layout.Table{
	{Name: "TYPE", Start: 0, Len: 4},
	{Name: "IDENT", Start: 4, Len: 4},
	{Name: "FAC_TYPE", Start: 8, Len: 20},
	{Name: "CITY", Start: 28, Len: 40},
	{Name: "REMARK", Start: 68, Len: 100},
}

var nav2Schema = schema.Schema{
	schema.RecordType("TYPE"),
	schema.String("IDENT", schema.Required),
	schema.String("FAC_TYPE", schema.Required),
	schema.String("CITY", schema.Required),
	schema.String("REMARK", schema.Required),
}

// NavaidParser assembles navigation aids from the NAV file.
type NavaidParser struct {
	sink    domain.AggregateSink
	navaids *assemble.EntityMap[domain.NavaidKey, domain.Navaid]
	format  *router.Format
}

// NewNavaidParser creates a parser whose Finish emits to sink.
func NewNavaidParser(sink domain.AggregateSink) *NavaidParser {
	p := &NavaidParser{
		sink:    sink,
		navaids: assemble.NewEntityMap[domain.NavaidKey, domain.Navaid](assemble.FailOnDuplicate),
	}
	p.format = &router.Format{
		Name:      "NAV",
		DiscStart: 0,
		DiscLen:   4,
		OnUnknown: router.SkipUnknown, // NAV3/NAV4 fan markers are not parsed
		Types: []router.RecordType{
			{Tag: "NAV1", Layout: nav1Layout, Schema: nav1Schema, Handle: p.handleBase},
			{Tag: "NAV2", Layout: nav2Layout, Schema: nav2Schema, Handle: p.handleRemark},
		},
	}
	return p
}

// Format returns the router configuration for the NAV file.
func (p *NavaidParser) Format() *router.Format { return p.format }

func (p *NavaidParser) handleBase(rec router.Record) error {
	row := rec.Row

	n := &domain.Navaid{}
	var err error
	if n.Ident, err = row.String(navIdent); err != nil {
		return err
	}
	if n.Type, err = row.String(navFacType); err != nil {
		return err
	}
	if n.Name, err = row.String(navName); err != nil {
		return err
	}
	if n.City, err = row.String(navCity); err != nil {
		return err
	}
	if n.State, _, err = row.OptString(navState); err != nil {
		return err
	}

	loc, err := schema.Location(row, navLat, navLon, schema.Strict)
	if err != nil {
		return err
	}
	n.Latitude = float64(loc.Lat)
	n.Longitude = float64(loc.Lon)

	if elev, ok, err := row.OptFloat(navElev); err != nil {
		return err
	} else if ok {
		n.Elevation = &elev
	}
	if freq, ok, err := row.OptFreq(navFreq); err != nil {
		return err
	} else if ok {
		n.Frequency = &freq
	}
	if n.Status, _, err = row.OptString(navStatus); err != nil {
		return err
	}

	key := domain.NavaidKey{Ident: n.Ident, Type: n.Type, City: n.City}
	return p.navaids.Create(key, n)
}

func (p *NavaidParser) handleRemark(rec router.Record) error {
	row := rec.Row
	key := domain.NavaidKey{}
	var err error
	if key.Ident, err = row.String(nav2Ident); err != nil {
		return err
	}
	if key.Type, err = row.String(nav2FacType); err != nil {
		return err
	}
	if key.City, err = row.String(nav2City); err != nil {
		return err
	}

	n, err := p.navaids.Require(key, "NAV2")
	if err != nil {
		return err
	}
	remark, err := row.String(nav2Remark)
	if err != nil {
		return err
	}
	n.Remarks = append(n.Remarks, remark)
	return nil
}

// Finish hands the finalized navaids to the sink.
func (p *NavaidParser) Finish(ctx context.Context) error {
	return p.sink.StoreNavaids(ctx, p.navaids.Values())
}
