package fixed_test

import (
	"testing"

	"airnav/internal/fixed"
)

func TestTrim(t *testing.T) {
	cases := []struct{ in, want string }{
		{"  ABC  ", "ABC"},
		{"\tABC", "ABC"},
		{"ABC", "ABC"},
		{"   ", ""},
		{"", ""},
		{"A B", "A B"},
	}
	for _, c := range cases {
		if got := string(fixed.Trim([]byte(c.in))); got != c.want {
			t.Fatalf("Trim(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsBlank(t *testing.T) {
	if !fixed.IsBlank([]byte("   \t ")) {
		t.Fatal("whitespace-only slice should be blank")
	}
	if !fixed.IsBlank(nil) {
		t.Fatal("empty slice should be blank")
	}
	if fixed.IsBlank([]byte("  x ")) {
		t.Fatal("non-whitespace slice should not be blank")
	}
}

func TestMatches(t *testing.T) {
	if !fixed.Matches([]byte("APT"), "APT") {
		t.Fatal("exact literal should match")
	}
	if fixed.Matches([]byte("APT "), "APT") {
		t.Fatal("trailing space should not match without trim")
	}
	if !fixed.TrimmedMatches([]byte(" APT "), "APT") {
		t.Fatal("TrimmedMatches should ignore padding")
	}
}

func TestParseInt(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"123", 123, true},
		{"+123", 123, true},
		{"-45", -45, true},
		{"0", 0, true},
		{"", 0, false},
		{"-", 0, false},
		{"12x", 0, false},
		{" 12", 0, false},
		{"9223372036854775807", 9223372036854775807, true},
		{"9223372036854775808", 0, false},
		{"-9223372036854775808", -9223372036854775808, true},
		{"-9223372036854775809", 0, false},
	}
	for _, c := range cases {
		got, err := fixed.ParseInt([]byte(c.in))
		if c.ok != (err == nil) {
			t.Fatalf("ParseInt(%q) err = %v, want ok=%v", c.in, err, c.ok)
		}
		if c.ok && got != c.want {
			t.Fatalf("ParseInt(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseUint(t *testing.T) {
	if _, err := fixed.ParseUint([]byte("-1")); err == nil {
		t.Fatal("negative should fail for unsigned")
	}
	got, err := fixed.ParseUint([]byte("18446744073709551615"))
	if err != nil || got != 18446744073709551615 {
		t.Fatalf("max uint64: got %d, %v", got, err)
	}
	if _, err := fixed.ParseUint([]byte("18446744073709551616")); err == nil {
		t.Fatal("overflow should fail")
	}
}

func TestParseFloat(t *testing.T) {
	got, err := fixed.ParseFloat([]byte("  1013.5 "))
	if err != nil || got != 1013.5 {
		t.Fatalf("got %v, %v", got, err)
	}
	if _, err := fixed.ParseFloat([]byte("   ")); err == nil {
		t.Fatal("blank should fail")
	}
}

func TestParseDMS(t *testing.T) {
	cases := []struct {
		in   string
		want fixed.Arcsec
		ok   bool
	}{
		{"40-30-32.5412N", 145832.5412, true},
		{"122-15-30.1234W", -440130.1234, true},
		{"00-00-00.0S", 0, true},
		{"90-00-00.0000N", 324000, true},
		{"40-30-32N", 0, false},        // no fractional seconds
		{"40-30-32.5412", 0, false},    // missing hemisphere
		{"40-30-32.5412X", 0, false},   // bad hemisphere
		{"4-30-32.5412N", 0, false},    // degrees too short
		{"40-3-32.5412N", 0, false},    // minutes too short
		{"40:30:32.5412N", 0, false},   // wrong punctuation
		{"40-30-32.5412N ", 0, false},  // trailing byte
		{"40-61-32.5412N", 0, false},   // minutes out of range
		{"1220-15-30.1234W", 0, false}, // degrees too long
	}
	for _, c := range cases {
		got, err := fixed.ParseDMS([]byte(c.in))
		if c.ok != (err == nil) {
			t.Fatalf("ParseDMS(%q) err = %v, want ok=%v", c.in, err, c.ok)
		}
		if c.ok && !almostEqual(float64(got), float64(c.want)) {
			t.Fatalf("ParseDMS(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestArcsecDegrees(t *testing.T) {
	if d := fixed.Arcsec(145832.5412).Degrees(); !almostEqual(d, 40.50928922222222) {
		t.Fatalf("Degrees() = %v", d)
	}
}

func TestParseFrequencyKHz(t *testing.T) {
	cases := []struct {
		in   string
		want fixed.KHz
		ok   bool
	}{
		{"118.125", 118125, true},
		{"118.1", 118100, true}, // fraction padded to three digits
		{"365", 365000, true},   // whole MHz
		{"118.1225", 118122, true},
		{"108.10", 108100, true},
		{"", 0, false},
		{".5", 0, false},
		{"118.", 0, false},
		{"118.1a", 0, false},
		{"a118", 0, false},
	}
	for _, c := range cases {
		got, err := fixed.ParseFrequencyKHz([]byte(c.in))
		if c.ok != (err == nil) {
			t.Fatalf("ParseFrequencyKHz(%q) err = %v, want ok=%v", c.in, err, c.ok)
		}
		if c.ok && got != c.want {
			t.Fatalf("ParseFrequencyKHz(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-6
}
