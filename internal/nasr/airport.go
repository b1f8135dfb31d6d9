// Package nasr contains the per-entity parsers for the NASR subscriber
// files. Each parser owns the accumulation state of one file-parsing
// pass: a keyed entity map plus side buffers, mutated only by the
// record handlers the router drives, and emptied exactly once by
// Finish.
package nasr

import (
	"context"
	"fmt"

	"airnav/internal/assemble"
	"airnav/internal/domain"
	"airnav/internal/layout"
	"airnav/internal/router"
	"airnav/internal/schema"
)

// Parser is one file-parsing pass. Format exposes the record router
// configuration; Finish attaches buffered children and hands the
// finalized collection to the sink.
type Parser interface {
	Format() *router.Format
	Finish(ctx context.Context) error
}

// ─────────────────────────────────────────────────────────────
// APT file — airports, runways, attendance, remarks
// ─────────────────────────────────────────────────────────────

// Airport-level remark element IDs. Consulted before any sub-object
// reading, so dashed IDs like "A110-3" stay entity-level.
var airportElements = map[string]bool{
	"E111":   true, // general remark
	"E147":   true, // traffic pattern remark
	"A110-1": true, // use restriction
	"A110-3": true, // noise abatement
}

func ownershipCode(raw []byte) (schema.Cell, error) {
	switch string(raw) {
	case "PU", "PR", "MA", "MN", "MR":
		return schema.StringCell(string(raw)), nil
	}
	return schema.Null, fmt.Errorf("unknown ownership code")
}

func useCode(raw []byte) (schema.Cell, error) {
	switch string(raw) {
	case "PU", "PR":
		return schema.StringCell(string(raw)), nil
	}
	return schema.Null, fmt.Errorf("unknown use code")
}

// Column indices for the APT base record.
const (
	aptSite = iota + 1
	aptFacType
	aptIdent
	aptEffDate
	aptName
	aptCity
	aptState
	aptOwnership
	aptUse
	aptLat
	aptLon
	aptElev
	aptMagVarn
	aptTower
	aptCTAF
)

var aptLayout = layout.Table{
	{Name: "TYPE", Start: 0, Len: 4},
	{Name: "SITE", Start: 4, Len: 11},
	{Name: "FAC_TYPE", Start: 15, Len: 13},
	{Name: "IDENT", Start: 28, Len: 4},
	{Name: "EFF_DATE", Start: 32, Len: 10},
	{Name: "NAME", Start: 42, Len: 50},
	{Name: "CITY", Start: 92, Len: 40},
	{Name: "STATE", Start: 132, Len: 2},
	{Name: "OWNERSHIP", Start: 134, Len: 2},
	{Name: "USE", Start: 136, Len: 2},
	{Name: "LAT", Start: 138, Len: 15},
	{Name: "LON", Start: 153, Len: 15},
	{Name: "ELEV", Start: 168, Len: 7},
	{Name: "MAG_VARN", Start: 175, Len: 3},
	{Name: "TOWER", Start: 178, Len: 1},
	{Name: "CTAF", Start: 179, Len: 7},
}

var aptSchema = schema.Schema{
	schema.RecordType("TYPE"),
	schema.String("SITE", schema.Required),
	schema.String("FAC_TYPE", schema.Required),
	schema.String("IDENT", schema.Required),
	schema.Date("EFF_DATE", "01/02/2006", schema.Required),
	schema.String("NAME", schema.Required),
	schema.String("CITY", schema.Required),
	schema.String("STATE", schema.BlankIsNull),
	schema.Enum("OWNERSHIP", schema.Required, ownershipCode),
	schema.Enum("USE", schema.Required, useCode),
	schema.Coord("LAT", schema.Required),
	schema.Coord("LON", schema.Required),
	schema.Float("ELEV", schema.BlankIsNull),
	schema.String("MAG_VARN", schema.Sentinel("NONE")),
	schema.Bool("TOWER", "Y", schema.BlankIsNull),
	schema.Frequency("CTAF", schema.BlankIsNull),
}

// Column indices for the RWY record. The two end blocks share one
// shape at disjoint byte offsets; rwyBaseEnd and rwyRecipEnd are the
// index bases the end builder is invoked with, once per block.
const endBlockArity = 5

const (
	rwySite = iota + 1
	rwyID
	rwyLength
	rwyWidth
	rwySurface
	rwyBaseEnd // first column of the base end block
	rwyRecipEnd = rwyBaseEnd + endBlockArity
)

// End block shape: ID, HEADING, LAT, LON, ELEV.
func endBlock(prefix string, start int) layout.Table {
	shape := layout.Table{
		{Name: prefix + "_ID", Start: 0, Len: 3},
		{Name: prefix + "_HEADING", Start: 3, Len: 3},
		{Name: prefix + "_LAT", Start: 6, Len: 15},
		{Name: prefix + "_LON", Start: 21, Len: 15},
		{Name: prefix + "_ELEV", Start: 36, Len: 7},
	}
	return layout.Block(shape, start)
}

func endSchema() []schema.Field {
	return []schema.Field{
		schema.String("END_ID", schema.Required),
		schema.Int("END_HEADING", schema.BlankIsNull),
		schema.Coord("END_LAT", schema.BlankIsNull),
		schema.Coord("END_LON", schema.BlankIsNull),
		schema.Float("END_ELEV", schema.BlankIsNull),
	}
}

var rwyLayout = append(append(layout.Table{
	{Name: "TYPE", Start: 0, Len: 4},
	{Name: "SITE", Start: 4, Len: 11},
	{Name: "RWY_ID", Start: 15, Len: 7},
	{Name: "LENGTH", Start: 22, Len: 5},
	{Name: "WIDTH", Start: 27, Len: 4},
	{Name: "SURFACE", Start: 31, Len: 12},
}, endBlock("BASE", 43)...), endBlock("RECIP", 86)...)

var rwySchema = append(append(schema.Schema{
	schema.RecordType("TYPE"),
	schema.String("SITE", schema.Required),
	schema.String("RWY_ID", schema.Required),
	schema.Int("LENGTH", schema.Required),
	schema.Int("WIDTH", schema.Required),
	schema.String("SURFACE", schema.Required),
}, endSchema()...), endSchema()...)

// Column indices for the ATT record.
const (
	attSite = iota + 1
	attSeq
	attSchedule
)

var attLayout = layout.Table{
	{Name: "TYPE", Start: 0, Len: 4},
	{Name: "SITE", Start: 4, Len: 11},
	{Name: "SEQ", Start: 15, Len: 2},
	{Name: "SCHEDULE", Start: 17, Len: 108},
}

var attSchema = schema.Schema{
	schema.RecordType("TYPE"),
	schema.String("SITE", schema.Required),
	schema.Int("SEQ", schema.Required),
	schema.String("SCHEDULE", schema.Required),
}

// Column indices for the RMK record.
const (
	rmkSite = iota + 1
	rmkElement
	rmkText
)

var rmkLayout = layout.Table{
	{Name: "TYPE", Start: 0, Len: 4},
	{Name: "SITE", Start: 4, Len: 11},
	{Name: "ELEMENT", Start: 15, Len: 13},
	{Name: "TEXT", Start: 28, Len: 100},
}

var rmkSchema = schema.Schema{
	schema.RecordType("TYPE"),
	schema.String("SITE", schema.Required),
	schema.String("ELEMENT", schema.BlankIsNull),
	schema.String("TEXT", schema.Required),
}

// AirportParser assembles airports from the APT file.
type AirportParser struct {
	sink domain.AggregateSink

	airports   *assemble.EntityMap[domain.AirportKey, domain.Airport]
	attendance *assemble.SeqBuffer[domain.AirportKey, domain.AttendanceSlot]

	// current is the key of the last base record; continuation
	// records attach through it instead of re-deriving a key.
	current     domain.AirportKey
	lastRemarks *[]string // remark list the last RMK line landed in

	format *router.Format
}

// NewAirportParser creates a parser whose Finish emits to sink.
func NewAirportParser(sink domain.AggregateSink) *AirportParser {
	p := &AirportParser{
		sink:       sink,
		airports:   assemble.NewEntityMap[domain.AirportKey, domain.Airport](assemble.FailOnDuplicate),
		attendance: assemble.NewSeqBuffer[domain.AirportKey, domain.AttendanceSlot](),
	}
	p.format = &router.Format{
		Name:      "APT",
		DiscStart: 0,
		DiscLen:   4,
		OnUnknown: router.SkipUnknown, // ARS and friends are not parsed
		Types: []router.RecordType{
			{Tag: "APT", Layout: aptLayout, Schema: aptSchema, Handle: p.handleBase},
			{Tag: "RWY", Layout: rwyLayout, Schema: rwySchema, Handle: p.handleRunway},
			{Tag: "ATT", Layout: attLayout, Schema: attSchema, Handle: p.handleAttendance},
			{Tag: "RMK", Layout: rmkLayout, Schema: rmkSchema, Handle: p.handleRemark},
		},
	}
	return p
}

// Format returns the router configuration for the APT file.
func (p *AirportParser) Format() *router.Format { return p.format }

func (p *AirportParser) handleBase(rec router.Record) error {
	row := rec.Row
	site, err := row.String(aptSite)
	if err != nil {
		return err
	}

	a := &domain.Airport{SiteNumber: site}
	if a.Ident, err = row.String(aptIdent); err != nil {
		return err
	}
	if a.FacilityType, err = row.String(aptFacType); err != nil {
		return err
	}
	if a.EffectiveAt, err = row.Time(aptEffDate); err != nil {
		return err
	}
	if a.Name, err = row.String(aptName); err != nil {
		return err
	}
	if a.City, err = row.String(aptCity); err != nil {
		return err
	}
	if a.State, _, err = row.OptString(aptState); err != nil {
		return err
	}
	if a.Ownership, err = row.String(aptOwnership); err != nil {
		return err
	}
	if a.Use, err = row.String(aptUse); err != nil {
		return err
	}

	loc, err := schema.Location(row, aptLat, aptLon, schema.Strict)
	if err != nil {
		return err
	}
	a.Latitude = float64(loc.Lat)
	a.Longitude = float64(loc.Lon)

	if elev, ok, err := row.OptFloat(aptElev); err != nil {
		return err
	} else if ok {
		a.Elevation = &elev
	}
	if a.MagVariation, _, err = row.OptString(aptMagVarn); err != nil {
		return err
	}
	if twr, ok, err := row.OptBool(aptTower); err != nil {
		return err
	} else if ok {
		a.TowerOnSite = twr
	}
	if ctaf, ok, err := row.OptFreq(aptCTAF); err != nil {
		return err
	} else if ok {
		a.CTAFFreq = &ctaf
	}

	key := domain.AirportKey{SiteNumber: site}
	if err := p.airports.Create(key, a); err != nil {
		return err
	}
	p.current = key
	p.lastRemarks = nil
	return nil
}

func (p *AirportParser) handleRunway(rec router.Record) error {
	row := rec.Row
	site, err := row.String(rwySite)
	if err != nil {
		return err
	}
	a, err := p.airports.Require(domain.AirportKey{SiteNumber: site}, "RWY")
	if err != nil {
		return err
	}

	r := &domain.Runway{}
	if r.ID, err = row.String(rwyID); err != nil {
		return err
	}
	if r.Length, err = row.Int(rwyLength); err != nil {
		return err
	}
	if r.Width, err = row.Int(rwyWidth); err != nil {
		return err
	}
	if r.Surface, err = row.String(rwySurface); err != nil {
		return err
	}

	// One end builder, two disjoint blocks of the same record.
	if r.BaseEnd, err = buildRunwayEnd(row, rwyBaseEnd); err != nil {
		return err
	}
	if r.RecipEnd, err = buildRunwayEnd(row, rwyRecipEnd); err != nil {
		return err
	}

	a.Runways = append(a.Runways, r)
	return nil
}

// buildRunwayEnd reads one end block starting at column base. Each call
// produces a structurally independent child — runway end coordinates
// historically arrive half-populated, so the tolerant location policy
// applies here and only here.
func buildRunwayEnd(row schema.Row, base int) (*domain.RunwayEnd, error) {
	end := &domain.RunwayEnd{}
	var err error
	if end.ID, err = row.String(base); err != nil {
		return nil, err
	}
	if hdg, ok, err := row.OptInt(base + 1); err != nil {
		return nil, err
	} else if ok {
		end.Heading = &hdg
	}
	loc, err := schema.Location(row, base+2, base+3, schema.TolerateHalfPopulated)
	if err != nil {
		return nil, err
	}
	if loc != nil {
		lat, lon := float64(loc.Lat), float64(loc.Lon)
		end.Latitude = &lat
		end.Longitude = &lon
	}
	if elev, ok, err := row.OptFloat(base + 4); err != nil {
		return nil, err
	} else if ok {
		end.Elevation = &elev
	}
	return end, nil
}

func (p *AirportParser) handleAttendance(rec router.Record) error {
	row := rec.Row
	site, err := row.String(attSite)
	if err != nil {
		return err
	}
	key := domain.AirportKey{SiteNumber: site}
	if _, err := p.airports.Require(key, "ATT"); err != nil {
		return err
	}
	seq, err := row.Int(attSeq)
	if err != nil {
		return err
	}
	sched, err := row.String(attSchedule)
	if err != nil {
		return err
	}
	// Phase 1 only buffers; ordering happens at Finish.
	p.attendance.Put(key, int(seq), func(s *domain.AttendanceSlot) {
		s.Sequence = int(seq)
		s.Schedule = sched
	})
	return nil
}

func (p *AirportParser) handleRemark(rec router.Record) error {
	row := rec.Row
	text, err := row.String(rmkText)
	if err != nil {
		return err
	}

	if rec.Class == router.Continuation {
		// A continuation line extends the previous remark of the
		// current airport; it never opens a new routing target.
		if p.lastRemarks == nil || len(*p.lastRemarks) == 0 {
			return fmt.Errorf("RMK continuation for %q without a preceding remark", p.current.SiteNumber)
		}
		(*p.lastRemarks)[len(*p.lastRemarks)-1] += " " + text
		return nil
	}

	site, err := row.String(rmkSite)
	if err != nil {
		return err
	}
	a, err := p.airports.Require(domain.AirportKey{SiteNumber: site}, "RMK")
	if err != nil {
		return err
	}
	elem, hasElem, err := row.OptString(rmkElement)
	if err != nil {
		return err
	}
	if !hasElem {
		// No element identifier: a general remark on the airport.
		a.Remarks = append(a.Remarks, text)
		p.lastRemarks = &a.Remarks
		p.current = domain.AirportKey{SiteNumber: site}
		return nil
	}

	target, err := assemble.ResolveFieldID(elem, airportElements)
	if err != nil {
		return err
	}
	switch tgt := target.(type) {
	case assemble.EntityField:
		a.Remarks = append(a.Remarks, text)
		p.lastRemarks = &a.Remarks
	case assemble.SubObjectField:
		r := a.RunwayByID(tgt.Sub)
		if r == nil {
			return &assemble.UnknownParentError{Key: site + " runway " + tgt.Sub, ChildKind: "RMK"}
		}
		r.Remarks = append(r.Remarks, text)
		p.lastRemarks = &r.Remarks
	case assemble.NestedSubObjectField:
		r := a.RunwayByID(tgt.Sub)
		if r == nil {
			return &assemble.UnknownParentError{Key: site + " runway " + tgt.Sub, ChildKind: "RMK"}
		}
		end := r.EndByID(tgt.Nested)
		if end == nil {
			return &assemble.UnknownParentError{Key: site + " runway end " + tgt.Sub + "/" + tgt.Nested, ChildKind: "RMK"}
		}
		end.Remarks = append(end.Remarks, text)
		p.lastRemarks = &end.Remarks
	}
	p.current = domain.AirportKey{SiteNumber: site}
	return nil
}

// Finish sorts and attaches the buffered attendance slots, then hands
// the finalized airports to the sink. The parser holds no further
// responsibility for the entities afterwards.
func (p *AirportParser) Finish(ctx context.Context) error {
	for key, slots := range p.attendance.Collate() {
		a, err := p.airports.Require(key, "ATT")
		if err != nil {
			return err
		}
		a.Attendance = slots
	}
	return p.sink.StoreAirports(ctx, p.airports.Values())
}
