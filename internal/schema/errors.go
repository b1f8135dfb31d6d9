package schema

import "fmt"

// ─────────────────────────────────────────────────────────────
// Error taxonomy
// Every error carries the column index and raw value so the
// offending line can be located in the source file without
// re-running with tracing enabled. All errors are fatal to the
// current record and, by default, to the whole parsing pass.
// ─────────────────────────────────────────────────────────────

// ConversionKind names the shape-specific conversion that failed.
type ConversionKind string

const (
	ConvNumber    ConversionKind = "number"
	ConvDate      ConversionKind = "date"
	ConvFrequency ConversionKind = "frequency"
	ConvGeodesic  ConversionKind = "geodesic"
	ConvEnum      ConversionKind = "enum"
	ConvGeneric   ConversionKind = "generic"
)

// TruncatedRecordError reports a record with fewer bytes or columns
// than the schema requires.
type TruncatedRecordError struct {
	Tag  string // record-type discriminator, if known
	Got  int
	Want int
}

func (e *TruncatedRecordError) Error() string {
	return fmt.Sprintf("truncated %s record: got %d bytes, schema needs %d", e.Tag, e.Got, e.Want)
}

// RequiredFieldError reports an empty column under the Required policy.
type RequiredFieldError struct {
	Column int
	Name   string
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("column %d (%s): required field is empty", e.Column, e.Name)
}

// ConversionError reports a non-null field that failed its
// shape-specific conversion. Err holds the inner cause.
type ConversionError struct {
	Kind   ConversionKind
	Column int
	Name   string
	Raw    string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("column %d (%s): invalid %s %q: %v", e.Column, e.Name, e.Kind, e.Raw, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// TypeMismatchError reports a row accessor asked for a cell kind other
// than the one the schema produced.
type TypeMismatchError struct {
	Column int
	Want   CellKind
	Got    CellKind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("column %d: cell is %s, accessed as %s", e.Column, e.Got, e.Want)
}

// NullValueError reports a required accessor reading a null cell.
type NullValueError struct {
	Column int
}

func (e *NullValueError) Error() string {
	return fmt.Sprintf("column %d: value is null", e.Column)
}

// LocationError reports a latitude/longitude pair with exactly one
// side populated under the Strict location policy.
type LocationError struct {
	LatColumn int
	LonColumn int
}

func (e *LocationError) Error() string {
	return fmt.Sprintf("columns %d/%d: half-populated coordinate pair", e.LatColumn, e.LonColumn)
}
