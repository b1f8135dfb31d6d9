package schema

import (
	"bytes"
	"fmt"
	"time"

	"airnav/internal/fixed"
)

// ─────────────────────────────────────────────────────────────
// Transformer engine
// Applies a Schema positionally to the raw columns of one record,
// producing a Row of typed cells. Any single-column failure aborts
// the whole row — partial rows are never returned.
// ─────────────────────────────────────────────────────────────

// Apply transforms N raw columns with an N-field schema.
func Apply(s Schema, cols [][]byte) (Row, error) {
	if len(cols) != len(s) {
		return Row{}, fmt.Errorf("schema arity %d does not match %d columns", len(s), len(cols))
	}
	cells := make([]Cell, len(s))
	for i := range s {
		cell, err := evalField(&s[i], i, cols[i])
		if err != nil {
			return Row{}, err
		}
		cells[i] = cell
	}
	return Row{cells: cells}, nil
}

// evalField extracts, null-checks and converts a single column.
func evalField(f *Field, col int, raw []byte) (Cell, error) {
	if f.Kind == KIgnore {
		return Null, nil
	}

	trimmed := fixed.Trim(raw)
	if len(trimmed) == 0 {
		if f.Null.Mode == NullRequired {
			return Null, &RequiredFieldError{Column: col, Name: f.Name}
		}
		return Null, nil
	}
	for _, lit := range f.Null.Sentinels {
		if fixed.Matches(trimmed, lit) {
			return Null, nil
		}
	}

	switch f.Kind {
	case KRecordType, KString:
		return StringCell(string(trimmed)), nil

	case KInt:
		n, err := fixed.ParseInt(trimmed)
		if err != nil {
			return Null, convErr(ConvNumber, col, f.Name, trimmed, err)
		}
		return IntCell(n), nil

	case KUint:
		n, err := fixed.ParseUint(trimmed)
		if err != nil {
			return Null, convErr(ConvNumber, col, f.Name, trimmed, err)
		}
		return UintCell(n), nil

	case KFloat:
		v, err := fixed.ParseFloat(trimmed)
		if err != nil {
			return Null, convErr(ConvNumber, col, f.Name, trimmed, err)
		}
		return FloatCell(v), nil

	case KBool:
		return BoolCell(fixed.Matches(trimmed, f.TrueLiteral)), nil

	case KDate:
		t, err := time.Parse(f.Layout, string(trimmed))
		if err != nil {
			return Null, convErr(ConvDate, col, f.Name, trimmed, err)
		}
		return TimeCell(t), nil

	case KCoord:
		a, err := fixed.ParseDMS(trimmed)
		if err != nil {
			return Null, convErr(ConvGeodesic, col, f.Name, trimmed, err)
		}
		return CoordCell(a), nil

	case KFrequency:
		khz, err := fixed.ParseFrequencyKHz(trimmed)
		if err != nil {
			return Null, convErr(ConvFrequency, col, f.Name, trimmed, err)
		}
		return FreqCell(khz), nil

	case KEnum:
		cell, err := f.Conv(trimmed)
		if err != nil {
			return Null, convErr(ConvEnum, col, f.Name, trimmed, err)
		}
		return cell, nil

	case KGeneric:
		cell, err := f.Conv(trimmed)
		if err != nil {
			return Null, convErr(ConvGeneric, col, f.Name, trimmed, err)
		}
		return cell, nil

	case KFixedArray:
		return evalArray(f, col, splitFixed(raw, f.SubWidth))

	case KDelimArray:
		return evalArray(f, col, bytes.Split(trimmed, []byte(f.Sep)))

	default:
		return Null, fmt.Errorf("column %d (%s): unhandled field kind %d", col, f.Name, f.Kind)
	}
}

// evalArray converts each part with the element descriptor under the
// parent's null policy. Under CompactIsNull, null elements are dropped
// while the relative order of the remainder is preserved.
func evalArray(f *Field, col int, parts [][]byte) (Cell, error) {
	elem := *f.Elem
	elem.Null = f.Null
	compact := f.Null.Mode == NullCompact

	elems := make([]Cell, 0, len(parts))
	for _, p := range parts {
		cell, err := evalField(&elem, col, p)
		if err != nil {
			return Null, err
		}
		if compact && cell.IsNull() {
			continue
		}
		elems = append(elems, cell)
	}
	return ListCell(elems), nil
}

// splitFixed cuts b into width-sized chunks; a short trailing chunk is
// kept as-is.
func splitFixed(b []byte, width int) [][]byte {
	if width <= 0 {
		return [][]byte{b}
	}
	var parts [][]byte
	for len(b) > width {
		parts = append(parts, b[:width])
		b = b[width:]
	}
	if len(b) > 0 {
		parts = append(parts, b)
	}
	return parts
}

func convErr(kind ConversionKind, col int, name string, raw []byte, err error) error {
	return &ConversionError{Kind: kind, Column: col, Name: name, Raw: string(raw), Err: err}
}
