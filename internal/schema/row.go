package schema

import (
	"time"

	"airnav/internal/fixed"
)

// Row is an ordered sequence of typed-or-null cells, addressable by
// index. Accessors come in two forms: the required form fails on null,
// the Opt form reports null as absence. Both fail with a
// TypeMismatchError when the stored kind is not the requested one.
type Row struct {
	cells []Cell
}

// Len returns the number of cells.
func (r Row) Len() int { return len(r.cells) }

// Cell returns the raw cell at index i.
func (r Row) Cell(i int) Cell { return r.cells[i] }

func (r Row) get(i int, want CellKind) (any, error) {
	c := r.cells[i]
	if c.kind == KindNull {
		return nil, &NullValueError{Column: i}
	}
	if c.kind != want {
		return nil, &TypeMismatchError{Column: i, Want: want, Got: c.kind}
	}
	return c.v, nil
}

func (r Row) getOpt(i int, want CellKind) (any, bool, error) {
	c := r.cells[i]
	if c.kind == KindNull {
		return nil, false, nil
	}
	if c.kind != want {
		return nil, false, &TypeMismatchError{Column: i, Want: want, Got: c.kind}
	}
	return c.v, true, nil
}

// ── Required accessors ─────────────────────────────────────

func (r Row) String(i int) (string, error) {
	v, err := r.get(i, KindString)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (r Row) Int(i int) (int64, error) {
	v, err := r.get(i, KindInt)
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

func (r Row) Uint(i int) (uint64, error) {
	v, err := r.get(i, KindUint)
	if err != nil {
		return 0, err
	}
	return v.(uint64), nil
}

func (r Row) Float(i int) (float64, error) {
	v, err := r.get(i, KindFloat)
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

func (r Row) Bool(i int) (bool, error) {
	v, err := r.get(i, KindBool)
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

func (r Row) Time(i int) (time.Time, error) {
	v, err := r.get(i, KindTime)
	if err != nil {
		return time.Time{}, err
	}
	return v.(time.Time), nil
}

func (r Row) Coord(i int) (fixed.Arcsec, error) {
	v, err := r.get(i, KindCoord)
	if err != nil {
		return 0, err
	}
	return v.(fixed.Arcsec), nil
}

func (r Row) Freq(i int) (fixed.KHz, error) {
	v, err := r.get(i, KindFreq)
	if err != nil {
		return 0, err
	}
	return v.(fixed.KHz), nil
}

func (r Row) List(i int) ([]Cell, error) {
	v, err := r.get(i, KindList)
	if err != nil {
		return nil, err
	}
	return v.([]Cell), nil
}

// ── Optional accessors — null reads as absence, never an error ──

func (r Row) OptString(i int) (string, bool, error) {
	v, ok, err := r.getOpt(i, KindString)
	if !ok || err != nil {
		return "", false, err
	}
	return v.(string), true, nil
}

func (r Row) OptInt(i int) (int64, bool, error) {
	v, ok, err := r.getOpt(i, KindInt)
	if !ok || err != nil {
		return 0, false, err
	}
	return v.(int64), true, nil
}

func (r Row) OptUint(i int) (uint64, bool, error) {
	v, ok, err := r.getOpt(i, KindUint)
	if !ok || err != nil {
		return 0, false, err
	}
	return v.(uint64), true, nil
}

func (r Row) OptFloat(i int) (float64, bool, error) {
	v, ok, err := r.getOpt(i, KindFloat)
	if !ok || err != nil {
		return 0, false, err
	}
	return v.(float64), true, nil
}

func (r Row) OptBool(i int) (bool, bool, error) {
	v, ok, err := r.getOpt(i, KindBool)
	if !ok || err != nil {
		return false, false, err
	}
	return v.(bool), true, nil
}

func (r Row) OptTime(i int) (time.Time, bool, error) {
	v, ok, err := r.getOpt(i, KindTime)
	if !ok || err != nil {
		return time.Time{}, false, err
	}
	return v.(time.Time), true, nil
}

func (r Row) OptCoord(i int) (fixed.Arcsec, bool, error) {
	v, ok, err := r.getOpt(i, KindCoord)
	if !ok || err != nil {
		return 0, false, err
	}
	return v.(fixed.Arcsec), true, nil
}

func (r Row) OptFreq(i int) (fixed.KHz, bool, error) {
	v, ok, err := r.getOpt(i, KindFreq)
	if !ok || err != nil {
		return 0, false, err
	}
	return v.(fixed.KHz), true, nil
}

// StringList unwraps a list cell whose elements are all strings.
func (r Row) StringList(i int) ([]string, error) {
	elems, err := r.List(i)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		if e.IsNull() {
			out = append(out, "")
			continue
		}
		if e.kind != KindString {
			return nil, &TypeMismatchError{Column: i, Want: KindString, Got: e.kind}
		}
		out = append(out, e.v.(string))
	}
	return out, nil
}
