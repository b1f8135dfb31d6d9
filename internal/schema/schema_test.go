package schema_test

import (
	"errors"
	"fmt"
	"testing"

	"airnav/internal/schema"
)

func apply(t *testing.T, s schema.Schema, cols ...string) schema.Row {
	t.Helper()
	raw := make([][]byte, len(cols))
	for i, c := range cols {
		raw[i] = []byte(c)
	}
	row, err := schema.Apply(s, raw)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	return row
}

func TestApply_ArityMismatch(t *testing.T) {
	s := schema.Schema{schema.String("A", schema.Required)}
	if _, err := schema.Apply(s, [][]byte{[]byte("x"), []byte("y")}); err == nil {
		t.Fatal("expected arity mismatch error")
	}
}

func TestRequiredEmptyFails(t *testing.T) {
	s := schema.Schema{schema.String("IDENT", schema.Required)}
	_, err := schema.Apply(s, [][]byte{[]byte("   ")})
	var reqErr *schema.RequiredFieldError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequiredFieldError, got %v", err)
	}
	if reqErr.Column != 0 || reqErr.Name != "IDENT" {
		t.Fatalf("wrong error context: %+v", reqErr)
	}
}

func TestBlankIsNull(t *testing.T) {
	s := schema.Schema{schema.Int("ELEV", schema.BlankIsNull)}
	row := apply(t, s, "    ")
	if _, ok, err := row.OptInt(0); ok || err != nil {
		t.Fatalf("blank should read as null without error, got ok=%v err=%v", ok, err)
	}
}

func TestSentinelIsNull(t *testing.T) {
	s := schema.Schema{schema.String("OWNER", schema.Sentinel("NONE", "N/A"))}
	row := apply(t, s, "  NONE ")
	if _, ok, _ := row.OptString(0); ok {
		t.Fatal("sentinel literal should read as null")
	}
	row = apply(t, s, "NONESUCH")
	if v, ok, _ := row.OptString(0); !ok || v != "NONESUCH" {
		t.Fatalf("non-sentinel value should survive, got %q ok=%v", v, ok)
	}
}

func TestTypedConversions(t *testing.T) {
	s := schema.Schema{
		schema.Int("SEQ", schema.Required),
		schema.Float("MAG", schema.Required),
		schema.Bool("TWR", "Y", schema.Required),
		schema.Date("EFF", "01/02/2006", schema.Required),
		schema.Coord("LAT", schema.Required),
		schema.Frequency("FREQ", schema.Required),
	}
	row := apply(t, s, " 42 ", "13.5", "Y", "07/10/2025", "40-30-32.5412N", "118.125")

	if n, _ := row.Int(0); n != 42 {
		t.Fatalf("Int = %d", n)
	}
	if f, _ := row.Float(1); f != 13.5 {
		t.Fatalf("Float = %v", f)
	}
	if b, _ := row.Bool(2); !b {
		t.Fatal("Bool should be true for the true literal")
	}
	if ts, _ := row.Time(3); ts.Year() != 2025 || ts.Month() != 7 {
		t.Fatalf("Time = %v", ts)
	}
	if a, _ := row.Coord(4); !near(float64(a), 145832.5412) {
		t.Fatalf("Coord = %v", a)
	}
	if khz, _ := row.Freq(5); khz != 118125 {
		t.Fatalf("Freq = %d", khz)
	}
}

func TestBoolFalseForOtherLiteral(t *testing.T) {
	s := schema.Schema{schema.Bool("TWR", "Y", schema.Required)}
	row := apply(t, s, "N")
	if b, _ := row.Bool(0); b {
		t.Fatal("non-true literal should read false")
	}
}

func TestConversionErrorContext(t *testing.T) {
	s := schema.Schema{
		schema.String("ID", schema.Required),
		schema.Int("ELEV", schema.Required),
	}
	_, err := schema.Apply(s, [][]byte{[]byte("ABC"), []byte("12x4")})
	var convErr *schema.ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("expected ConversionError, got %v", err)
	}
	if convErr.Column != 1 || convErr.Raw != "12x4" || convErr.Kind != schema.ConvNumber {
		t.Fatalf("wrong context: %+v", convErr)
	}
}

func TestEnumConversion(t *testing.T) {
	conv := func(raw []byte) (schema.Cell, error) {
		switch string(raw) {
		case "PU", "PR":
			return schema.StringCell(string(raw)), nil
		}
		return schema.Null, fmt.Errorf("unknown use code")
	}
	s := schema.Schema{schema.Enum("USE", schema.Required, conv)}
	row := apply(t, s, "PU")
	if v, _ := row.String(0); v != "PU" {
		t.Fatalf("Enum = %q", v)
	}
	_, err := schema.Apply(s, [][]byte{[]byte("XX")})
	var convErr *schema.ConversionError
	if !errors.As(err, &convErr) || convErr.Kind != schema.ConvEnum {
		t.Fatalf("expected enum ConversionError, got %v", err)
	}
}

func TestFixedArray(t *testing.T) {
	s := schema.Schema{schema.FixedArray("CODES", 3, schema.String("CODE", schema.BlankIsNull), schema.BlankIsNull)}
	row := apply(t, s, "AAABBB   CCC")
	got, err := row.StringList(0)
	if err != nil {
		t.Fatalf("StringList: %v", err)
	}
	want := []string{"AAA", "BBB", "", "CCC"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestCompactArrayDropsNulls(t *testing.T) {
	s := schema.Schema{schema.DelimArray("RWYS", ",", schema.String("RWY", schema.CompactIsNull), schema.CompactIsNull)}
	row := apply(t, s, "01/19, ,18/36,,09L/27R")
	got, err := row.StringList(0)
	if err != nil {
		t.Fatalf("StringList: %v", err)
	}
	want := []string{"01/19", "18/36", "09L/27R"}
	if len(got) != len(want) {
		t.Fatalf("compact should drop nulls, got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order not preserved: got %v, want %v", got, want)
		}
	}
}

func TestAccessorTypeMismatch(t *testing.T) {
	s := schema.Schema{schema.String("ID", schema.Required)}
	row := apply(t, s, "X")
	_, err := row.Int(0)
	var mismatch *schema.TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected TypeMismatchError, got %v", err)
	}
	if mismatch.Got != schema.KindString || mismatch.Want != schema.KindInt {
		t.Fatalf("wrong kinds: %+v", mismatch)
	}
}

func TestRequiredAccessorOnNull(t *testing.T) {
	s := schema.Schema{schema.String("ID", schema.BlankIsNull)}
	row := apply(t, s, "  ")
	_, err := row.String(0)
	var nullErr *schema.NullValueError
	if !errors.As(err, &nullErr) {
		t.Fatalf("expected NullValueError, got %v", err)
	}
}

func TestIgnoreColumn(t *testing.T) {
	s := schema.Schema{schema.Ignore("FILLER")}
	row := apply(t, s, "whatever is here")
	if !row.Cell(0).IsNull() {
		t.Fatal("ignored column should be null")
	}
}

func TestLocationPolicies(t *testing.T) {
	s := schema.Schema{
		schema.Coord("LAT", schema.BlankIsNull),
		schema.Coord("LON", schema.BlankIsNull),
	}

	both := apply(t, s, "40-30-32.5412N", "122-15-30.1234W")
	loc, err := schema.Location(both, 0, 1, schema.Strict)
	if err != nil || loc == nil {
		t.Fatalf("both present: %v, %v", loc, err)
	}
	if !near(float64(loc.Lat), 145832.5412) || !near(float64(loc.Lon), -440130.1234) {
		t.Fatalf("wrong values: %+v", loc)
	}

	neither := apply(t, s, "", "")
	loc, err = schema.Location(neither, 0, 1, schema.Strict)
	if err != nil || loc != nil {
		t.Fatalf("both absent should be nil, nil: %v, %v", loc, err)
	}

	half := apply(t, s, "40-30-32.5412N", "")
	_, err = schema.Location(half, 0, 1, schema.Strict)
	var locErr *schema.LocationError
	if !errors.As(err, &locErr) {
		t.Fatalf("strict half-populated should fail, got %v", err)
	}

	loc, err = schema.Location(half, 0, 1, schema.TolerateHalfPopulated)
	if err != nil || loc == nil || !near(float64(loc.Lat), 145832.5412) || loc.Lon != 0 {
		t.Fatalf("tolerant half-populated: %+v, %v", loc, err)
	}
}

func near(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-6
}
