package schema

import (
	"time"

	"airnav/internal/fixed"
)

// ─────────────────────────────────────────────────────────────
// Cell — one typed-or-null value in a transformed row
// A closed variant carrying a runtime kind tag, so accessors can
// return a typed-mismatch error instead of trapping on a bad cast.
// ─────────────────────────────────────────────────────────────

// CellKind tags the runtime type stored in a Cell.
type CellKind int

const (
	KindNull CellKind = iota
	KindString
	KindInt
	KindUint
	KindFloat
	KindBool
	KindTime
	KindCoord
	KindFreq
	KindList
	KindAny
)

var cellKindNames = [...]string{
	"null", "string", "int", "uint", "float", "bool",
	"time", "coordinate", "frequency", "list", "any",
}

func (k CellKind) String() string {
	if int(k) < len(cellKindNames) {
		return cellKindNames[k]
	}
	return "unknown"
}

// Cell is a single typed value. The zero Cell is null.
type Cell struct {
	kind CellKind
	v    any
}

// Null is the null cell.
var Null = Cell{}

func (c Cell) Kind() CellKind { return c.kind }
func (c Cell) IsNull() bool   { return c.kind == KindNull }

func StringCell(s string) Cell           { return Cell{KindString, s} }
func IntCell(n int64) Cell               { return Cell{KindInt, n} }
func UintCell(n uint64) Cell             { return Cell{KindUint, n} }
func FloatCell(f float64) Cell           { return Cell{KindFloat, f} }
func BoolCell(b bool) Cell               { return Cell{KindBool, b} }
func TimeCell(t time.Time) Cell          { return Cell{KindTime, t} }
func CoordCell(a fixed.Arcsec) Cell      { return Cell{KindCoord, a} }
func FreqCell(f fixed.KHz) Cell          { return Cell{KindFreq, f} }
func ListCell(elems []Cell) Cell         { return Cell{KindList, elems} }
func AnyCell(v any) Cell                 { return Cell{KindAny, v} }
