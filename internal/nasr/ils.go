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
// ILS file — instrument landing systems
// ILS1 is the base record. ILS2 (localizer), ILS3 (glide slope),
// ILS4 (DME) and ILS5 (remarks) each re-derive the compound key and
// require the base to exist.
// ─────────────────────────────────────────────────────────────

// Column indices for the ILS1 base record.
const (
	ils1Site = iota + 1
	ils1AirportID
	ils1RwyEnd
	ils1SysType
	ils1Category
)

var ils1Layout = layout.Table{
	{Name: "TYPE", Start: 0, Len: 4},
	{Name: "SITE", Start: 4, Len: 11},
	{Name: "ARPT_ID", Start: 15, Len: 4},
	{Name: "RWY_END", Start: 19, Len: 3},
	{Name: "SYS_TYPE", Start: 22, Len: 10},
	{Name: "CATEGORY", Start: 32, Len: 10},
}

var ils1Schema = schema.Schema{
	schema.RecordType("TYPE"),
	schema.String("SITE", schema.Required),
	schema.String("ARPT_ID", schema.Required),
	schema.String("RWY_END", schema.Required),
	schema.String("SYS_TYPE", schema.Required),
	schema.String("CATEGORY", schema.BlankIsNull),
}

// The component records ILS2..ILS5 share a key prefix followed by
// type-specific columns.
const (
	ilsSite = iota + 1
	ilsRwyEnd
	ilsSysType
	ilsPayload // first type-specific column
)

func componentLayout(cols ...layout.Column) layout.Table {
	t := layout.Table{
		{Name: "TYPE", Start: 0, Len: 4},
		{Name: "SITE", Start: 4, Len: 11},
		{Name: "RWY_END", Start: 15, Len: 3},
		{Name: "SYS_TYPE", Start: 18, Len: 10},
	}
	return append(t, cols...)
}

func componentSchema(fields ...schema.Field) schema.Schema {
	s := schema.Schema{
		schema.RecordType("TYPE"),
		schema.String("SITE", schema.Required),
		schema.String("RWY_END", schema.Required),
		schema.String("SYS_TYPE", schema.Required),
	}
	return append(s, fields...)
}

var (
	ils2Layout = componentLayout(
		layout.Column{Name: "FREQ", Start: 28, Len: 7},
		layout.Column{Name: "COURSE", Start: 35, Len: 6},
		layout.Column{Name: "LAT", Start: 41, Len: 15},
		layout.Column{Name: "LON", Start: 56, Len: 15},
	)
	ils2Schema = componentSchema(
		schema.Frequency("FREQ", schema.Required),
		schema.Float("COURSE", schema.BlankIsNull),
		schema.Coord("LAT", schema.BlankIsNull),
		schema.Coord("LON", schema.BlankIsNull),
	)

	ils3Layout = componentLayout(
		layout.Column{Name: "ANGLE", Start: 28, Len: 5},
		layout.Column{Name: "LAT", Start: 33, Len: 15},
		layout.Column{Name: "LON", Start: 48, Len: 15},
	)
	ils3Schema = componentSchema(
		schema.Float("ANGLE", schema.Required),
		schema.Coord("LAT", schema.BlankIsNull),
		schema.Coord("LON", schema.BlankIsNull),
	)

	ils4Layout = componentLayout(
		layout.Column{Name: "CHANNEL", Start: 28, Len: 4},
		layout.Column{Name: "LAT", Start: 32, Len: 15},
		layout.Column{Name: "LON", Start: 47, Len: 15},
	)
	ils4Schema = componentSchema(
		schema.String("CHANNEL", schema.Required),
		schema.Coord("LAT", schema.BlankIsNull),
		schema.Coord("LON", schema.BlankIsNull),
	)

	ils5Layout = componentLayout(
		layout.Column{Name: "REMARK", Start: 28, Len: 100},
	)
	ils5Schema = componentSchema(
		schema.String("REMARK", schema.Required),
	)
)

// ILSParser assembles instrument landing systems from the ILS file.
type ILSParser struct {
	sink    domain.AggregateSink
	systems *assemble.EntityMap[domain.ILSKey, domain.ILS]
	format  *router.Format
}

// NewILSParser creates a parser whose Finish emits to sink.
func NewILSParser(sink domain.AggregateSink) *ILSParser {
	p := &ILSParser{
		sink:    sink,
		systems: assemble.NewEntityMap[domain.ILSKey, domain.ILS](assemble.FailOnDuplicate),
	}
	p.format = &router.Format{
		Name:      "ILS",
		DiscStart: 0,
		DiscLen:   4,
		OnUnknown: router.SkipUnknown, // ILS6 marker beacons are not parsed
		Types: []router.RecordType{
			{Tag: "ILS1", Layout: ils1Layout, Schema: ils1Schema, Handle: p.handleBase},
			{Tag: "ILS2", Layout: ils2Layout, Schema: ils2Schema, Handle: p.handleLocalizer},
			{Tag: "ILS3", Layout: ils3Layout, Schema: ils3Schema, Handle: p.handleGlideSlope},
			{Tag: "ILS4", Layout: ils4Layout, Schema: ils4Schema, Handle: p.handleDME},
			{Tag: "ILS5", Layout: ils5Layout, Schema: ils5Schema, Handle: p.handleRemark},
		},
	}
	return p
}

// Format returns the router configuration for the ILS file.
func (p *ILSParser) Format() *router.Format { return p.format }

func (p *ILSParser) handleBase(rec router.Record) error {
	row := rec.Row
	s := &domain.ILS{}
	var err error
	if s.SiteNumber, err = row.String(ils1Site); err != nil {
		return err
	}
	if s.AirportID, err = row.String(ils1AirportID); err != nil {
		return err
	}
	if s.RunwayEnd, err = row.String(ils1RwyEnd); err != nil {
		return err
	}
	if s.SystemType, err = row.String(ils1SysType); err != nil {
		return err
	}
	if s.Category, _, err = row.OptString(ils1Category); err != nil {
		return err
	}
	key := domain.ILSKey{SiteNumber: s.SiteNumber, RunwayEnd: s.RunwayEnd, SystemType: s.SystemType}
	return p.systems.Create(key, s)
}

// require resolves the component record's re-derived key against the
// bases seen so far.
func (p *ILSParser) require(row schema.Row, childKind string) (*domain.ILS, error) {
	var key domain.ILSKey
	var err error
	if key.SiteNumber, err = row.String(ilsSite); err != nil {
		return nil, err
	}
	if key.RunwayEnd, err = row.String(ilsRwyEnd); err != nil {
		return nil, err
	}
	if key.SystemType, err = row.String(ilsSysType); err != nil {
		return nil, err
	}
	return p.systems.Require(key, childKind)
}

// optLocation reads the trailing LAT/LON pair common to the component
// records. Component antennas are surveyed as a pair or not at all.
func optLocation(row schema.Row, latIdx int) (lat, lon *float64, err error) {
	loc, err := schema.Location(row, latIdx, latIdx+1, schema.Strict)
	if err != nil || loc == nil {
		return nil, nil, err
	}
	la, lo := float64(loc.Lat), float64(loc.Lon)
	return &la, &lo, nil
}

func (p *ILSParser) handleLocalizer(rec router.Record) error {
	row := rec.Row
	s, err := p.require(row, "ILS2")
	if err != nil {
		return err
	}
	loc := &domain.Localizer{}
	if loc.Frequency, err = row.Freq(ilsPayload); err != nil {
		return err
	}
	if course, ok, err := row.OptFloat(ilsPayload + 1); err != nil {
		return err
	} else if ok {
		loc.Course = &course
	}
	if loc.Latitude, loc.Longitude, err = optLocation(row, ilsPayload+2); err != nil {
		return err
	}
	s.Localizer = loc
	return nil
}

func (p *ILSParser) handleGlideSlope(rec router.Record) error {
	row := rec.Row
	s, err := p.require(row, "ILS3")
	if err != nil {
		return err
	}
	gs := &domain.GlideSlope{}
	if gs.Angle, err = row.Float(ilsPayload); err != nil {
		return err
	}
	if gs.Latitude, gs.Longitude, err = optLocation(row, ilsPayload+1); err != nil {
		return err
	}
	s.GlideSlope = gs
	return nil
}

func (p *ILSParser) handleDME(rec router.Record) error {
	row := rec.Row
	s, err := p.require(row, "ILS4")
	if err != nil {
		return err
	}
	dme := &domain.DME{}
	if dme.Channel, err = row.String(ilsPayload); err != nil {
		return err
	}
	if dme.Latitude, dme.Longitude, err = optLocation(row, ilsPayload+1); err != nil {
		return err
	}
	s.DME = dme
	return nil
}

func (p *ILSParser) handleRemark(rec router.Record) error {
	row := rec.Row
	s, err := p.require(row, "ILS5")
	if err != nil {
		return err
	}
	remark, err := row.String(ilsPayload)
	if err != nil {
		return err
	}
	s.Remarks = append(s.Remarks, remark)
	return nil
}

// Finish hands the finalized systems to the sink.
func (p *ILSParser) Finish(ctx context.Context) error {
	return p.sink.StoreILS(ctx, p.systems.Values())
}
