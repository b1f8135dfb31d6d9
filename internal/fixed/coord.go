package fixed

import "fmt"

// Arcsec is a geographic coordinate expressed in signed arc-seconds
// (1/3600 of a degree). North and East are positive, South and West
// negative. Storing arc-seconds avoids repeated floating re-derivation
// of the degree-minute-second breakdown.
type Arcsec float64

// Degrees returns the coordinate in decimal degrees.
func (a Arcsec) Degrees() float64 { return float64(a) / 3600 }

// ParseDMS parses a NASR formatted coordinate:
//
//	DD[D]-MM-SS.SSSS[NESW]
//
// Degrees are 2 or 3 digits, minutes and the seconds integer exactly 2,
// the seconds fraction 1 or more, followed by a single hemisphere
// letter. Any deviation from this grammar fails; there is no partial
// success.
func ParseDMS(b []byte) (Arcsec, error) {
	fail := func() (Arcsec, error) {
		return 0, fmt.Errorf("coordinate %q: want DD[D]-MM-SS.SSSS[NESW]", b)
	}

	i := 0
	deg, n := readDigits(b, i, 2, 3)
	if n == 0 {
		return fail()
	}
	i += n
	if i >= len(b) || b[i] != '-' {
		return fail()
	}
	i++

	min, n := readDigits(b, i, 2, 2)
	if n == 0 || min > 59 {
		return fail()
	}
	i += n
	if i >= len(b) || b[i] != '-' {
		return fail()
	}
	i++

	sec, n := readDigits(b, i, 2, 2)
	if n == 0 || sec > 59 {
		return fail()
	}
	i += n
	if i >= len(b) || b[i] != '.' {
		return fail()
	}
	i++

	fracStart := i
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		i++
	}
	if i == fracStart {
		return fail()
	}
	frac := 0.0
	scale := 1.0
	for _, c := range b[fracStart:i] {
		scale /= 10
		frac += float64(c-'0') * scale
	}

	if i != len(b)-1 {
		return fail()
	}
	var sign float64
	switch b[i] {
	case 'N', 'E':
		sign = 1
	case 'S', 'W':
		sign = -1
	default:
		return fail()
	}

	total := float64(deg)*3600 + float64(min)*60 + float64(sec) + frac
	return Arcsec(sign * total), nil
}

// readDigits reads between min and max consecutive ASCII digits at b[i:].
// It returns the value and the number of bytes consumed (0 on failure).
func readDigits(b []byte, i, min, max int) (int, int) {
	v := 0
	n := 0
	for i+n < len(b) && n < max {
		c := b[i+n]
		if c < '0' || c > '9' {
			break
		}
		v = v*10 + int(c-'0')
		n++
	}
	if n < min {
		return 0, 0
	}
	return v, n
}
