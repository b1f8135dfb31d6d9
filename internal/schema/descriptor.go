package schema

// ─────────────────────────────────────────────────────────────
// Field descriptors and null policies
// A Schema is an ordered list of Fields; its arity must equal the
// column count of every record it is applied to. Per-record-type
// schemas are declared statically by the parsers — nothing here is
// inferred.
// ─────────────────────────────────────────────────────────────

// FieldKind is the closed set of field shapes.
type FieldKind int

const (
	KRecordType FieldKind = iota // the discriminator column itself
	KIgnore                      // column present in the layout but never read
	KString
	KInt
	KUint
	KFloat
	KBool
	KDate
	KCoord
	KFrequency
	KEnum
	KFixedArray
	KDelimArray
	KGeneric
)

// NullMode is how an empty (or sentinel) column is treated.
type NullMode int

const (
	NullRequired NullMode = iota // empty → RequiredFieldError
	NullBlank                    // empty → null
	NullCompact                  // as NullBlank; array shapes also drop null elements
)

// NullPolicy pairs a mode with an optional set of non-empty literals
// that count as null anyway (e.g. "NONE").
type NullPolicy struct {
	Mode      NullMode
	Sentinels []string
}

var (
	Required      = NullPolicy{Mode: NullRequired}
	BlankIsNull   = NullPolicy{Mode: NullBlank}
	CompactIsNull = NullPolicy{Mode: NullCompact}
)

// Sentinel returns a BlankIsNull policy that additionally nulls any
// column whose trimmed value equals one of the given literals.
func Sentinel(lits ...string) NullPolicy {
	return NullPolicy{Mode: NullBlank, Sentinels: lits}
}

// Converter turns a trimmed, non-null raw value into a typed cell.
// Used by the Enum and Generic shapes.
type Converter func(raw []byte) (Cell, error)

// Field describes how one column is interpreted.
type Field struct {
	Name string
	Kind FieldKind
	Null NullPolicy

	TrueLiteral string    // KBool: literal that reads as true
	Layout      string    // KDate: time.Parse layout
	SubWidth    int       // KFixedArray: element width in bytes
	Sep         string    // KDelimArray: element separator
	Elem        *Field    // array shapes: element descriptor
	Conv        Converter // KEnum, KGeneric
}

// Schema is an ordered sequence of field descriptors.
type Schema []Field

// ── Constructors ───────────────────────────────────────────

// RecordType describes the column holding the record-type tag. It is
// always required and stored as a trimmed string.
func RecordType(name string) Field {
	return Field{Name: name, Kind: KRecordType, Null: Required}
}

// Ignore marks a column that exists in the layout but is never read.
// Its cell is always null.
func Ignore(name string) Field {
	return Field{Name: name, Kind: KIgnore, Null: BlankIsNull}
}

func String(name string, p NullPolicy) Field {
	return Field{Name: name, Kind: KString, Null: p}
}

func Int(name string, p NullPolicy) Field {
	return Field{Name: name, Kind: KInt, Null: p}
}

func Uint(name string, p NullPolicy) Field {
	return Field{Name: name, Kind: KUint, Null: p}
}

func Float(name string, p NullPolicy) Field {
	return Field{Name: name, Kind: KFloat, Null: p}
}

// Bool reads true when the trimmed value equals trueLit, false otherwise.
func Bool(name, trueLit string, p NullPolicy) Field {
	return Field{Name: name, Kind: KBool, Null: p, TrueLiteral: trueLit}
}

// Date parses with the given time.Parse layout, e.g. "01/02/2006".
func Date(name, layout string, p NullPolicy) Field {
	return Field{Name: name, Kind: KDate, Null: p, Layout: layout}
}

// Coord parses a DD[D]-MM-SS.SSSS[NESW] coordinate into arc-seconds.
func Coord(name string, p NullPolicy) Field {
	return Field{Name: name, Kind: KCoord, Null: p}
}

// Frequency parses a MHz-with-decimal frequency into kHz.
func Frequency(name string, p NullPolicy) Field {
	return Field{Name: name, Kind: KFrequency, Null: p}
}

// Enum applies a caller-supplied parser for a closed value set.
// Conversion failures are reported as invalid enum values.
func Enum(name string, p NullPolicy, conv Converter) Field {
	return Field{Name: name, Kind: KEnum, Null: p, Conv: conv}
}

// FixedArray splits the column into equal-width elements and converts
// each with elem under the same null policy. Under CompactIsNull,
// null elements are dropped from the result.
func FixedArray(name string, subWidth int, elem Field, p NullPolicy) Field {
	return Field{Name: name, Kind: KFixedArray, Null: p, SubWidth: subWidth, Elem: &elem}
}

// DelimArray splits the column on sep and converts each part with elem
// under the same null policy.
func DelimArray(name, sep string, elem Field, p NullPolicy) Field {
	return Field{Name: name, Kind: KDelimArray, Null: p, Sep: sep, Elem: &elem}
}

// Generic applies an arbitrary caller-supplied converter.
func Generic(name string, p NullPolicy, conv Converter) Field {
	return Field{Name: name, Kind: KGeneric, Null: p, Conv: conv}
}
