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
// AWY file — en-route airways
// AWY1 carries a point's position, AWY2 its remark. Both are
// sequence-numbered and may arrive in any order, including the remark
// before its position, so both record types merge into one buffered
// point and attachment waits for Finish.
// ─────────────────────────────────────────────────────────────

// Column indices for the AWY1 point record.
const (
	awy1System = iota + 1
	awy1Desig
	awy1Seq
	awy1FixName
	awy1FixType
	awy1Lat
	awy1Lon
	awy1MEA
)

var awy1Layout = layout.Table{
	{Name: "TYPE", Start: 0, Len: 4},
	{Name: "SYSTEM", Start: 4, Len: 6},
	{Name: "DESIG", Start: 10, Len: 5},
	{Name: "SEQ", Start: 15, Len: 5},
	{Name: "FIX_NAME", Start: 20, Len: 33},
	{Name: "FIX_TYPE", Start: 53, Len: 19},
	{Name: "LAT", Start: 72, Len: 15},
	{Name: "LON", Start: 87, Len: 15},
	{Name: "MEA", Start: 102, Len: 5},
}

var awy1Schema = schema.Schema{
	schema.RecordType("TYPE"),
	schema.String("SYSTEM", schema.Required),
	schema.String("DESIG", schema.Required),
	schema.Int("SEQ", schema.Required),
	schema.String("FIX_NAME", schema.Required),
	schema.String("FIX_TYPE", schema.BlankIsNull),
	schema.Coord("LAT", schema.BlankIsNull),
	schema.Coord("LON", schema.BlankIsNull),
	schema.Int("MEA", schema.BlankIsNull),
}

// Column indices for the AWY2 remark record.
const (
	awy2System = iota + 1
	awy2Desig
	awy2Seq
	awy2Remark
)

var awy2Layout = layout.Table{
	{Name: "TYPE", Start: 0, Len: 4},
	{Name: "SYSTEM", Start: 4, Len: 6},
	{Name: "DESIG", Start: 10, Len: 5},
	{Name: "SEQ", Start: 15, Len: 5},
	{Name: "REMARK", Start: 20, Len: 100},
}

var awy2Schema = schema.Schema{
	schema.RecordType("TYPE"),
	schema.String("SYSTEM", schema.Required),
	schema.String("DESIG", schema.Required),
	schema.Int("SEQ", schema.Required),
	schema.String("REMARK", schema.Required),
}

// AirwayParser assembles airways from the AWY file.
type AirwayParser struct {
	sink    domain.AggregateSink
	airways *assemble.EntityMap[domain.AirwayKey, domain.Airway]
	points  *assemble.SeqBuffer[domain.AirwayKey, domain.AirwayPoint]
	format  *router.Format
}

// NewAirwayParser creates a parser whose Finish emits to sink.
func NewAirwayParser(sink domain.AggregateSink) *AirwayParser {
	p := &AirwayParser{
		sink:    sink,
		airways: assemble.NewEntityMap[domain.AirwayKey, domain.Airway](assemble.FailOnDuplicate),
		points:  assemble.NewSeqBuffer[domain.AirwayKey, domain.AirwayPoint](),
	}
	p.format = &router.Format{
		Name:      "AWY",
		DiscStart: 0,
		DiscLen:   4,
		OnUnknown: router.FailUnknown, // an AWY file holds nothing else
		Types: []router.RecordType{
			{Tag: "AWY1", Layout: awy1Layout, Schema: awy1Schema, Handle: p.handlePoint},
			{Tag: "AWY2", Layout: awy2Layout, Schema: awy2Schema, Handle: p.handleRemark},
		},
	}
	return p
}

// Format returns the router configuration for the AWY file.
func (p *AirwayParser) Format() *router.Format { return p.format }

// ensureAirway creates the airway on first sight. An airway has no
// dedicated base record; whichever AWY1 arrives first establishes it.
func (p *AirwayParser) ensureAirway(key domain.AirwayKey) error {
	if _, ok := p.airways.Get(key); ok {
		return nil
	}
	return p.airways.Create(key, &domain.Airway{
		Designator: key.Designator,
		System:     key.System,
	})
}

func airwayKey(row schema.Row, sysIdx, desigIdx int) (domain.AirwayKey, error) {
	var key domain.AirwayKey
	var err error
	if key.System, err = row.String(sysIdx); err != nil {
		return key, err
	}
	key.Designator, err = row.String(desigIdx)
	return key, err
}

func (p *AirwayParser) handlePoint(rec router.Record) error {
	row := rec.Row
	key, err := airwayKey(row, awy1System, awy1Desig)
	if err != nil {
		return err
	}
	if err := p.ensureAirway(key); err != nil {
		return err
	}

	seq, err := row.Int(awy1Seq)
	if err != nil {
		return err
	}
	fixName, err := row.String(awy1FixName)
	if err != nil {
		return err
	}
	fixType, _, err := row.OptString(awy1FixType)
	if err != nil {
		return err
	}
	loc, err := schema.Location(row, awy1Lat, awy1Lon, schema.Strict)
	if err != nil {
		return err
	}
	mea, hasMEA, err := row.OptInt(awy1MEA)
	if err != nil {
		return err
	}

	p.points.Put(key, int(seq), func(pt *domain.AirwayPoint) {
		pt.Sequence = int(seq)
		pt.FixName = fixName
		pt.FixType = fixType
		if loc != nil {
			lat, lon := float64(loc.Lat), float64(loc.Lon)
			pt.Latitude = &lat
			pt.Longitude = &lon
		}
		if hasMEA {
			pt.MEA = &mea
		}
	})
	return nil
}

func (p *AirwayParser) handleRemark(rec router.Record) error {
	row := rec.Row
	key, err := airwayKey(row, awy2System, awy2Desig)
	if err != nil {
		return err
	}
	// A remark never establishes the airway; its AWY1 must have been
	// seen, though not necessarily the AWY1 of this sequence number.
	if _, err := p.airways.Require(key, "AWY2"); err != nil {
		return err
	}

	seq, err := row.Int(awy2Seq)
	if err != nil {
		return err
	}
	remark, err := row.String(awy2Remark)
	if err != nil {
		return err
	}
	p.points.Put(key, int(seq), func(pt *domain.AirwayPoint) {
		pt.Remark = remark
	})
	return nil
}

// Finish attaches each airway's points sorted by sequence number and
// hands the finalized airways to the sink.
func (p *AirwayParser) Finish(ctx context.Context) error {
	for key, pts := range p.points.Collate() {
		a, err := p.airways.Require(key, "AWY1")
		if err != nil {
			return err
		}
		a.Points = pts
	}
	return p.sink.StoreAirways(ctx, p.airways.Values())
}
