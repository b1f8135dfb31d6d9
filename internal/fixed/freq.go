package fixed

import "fmt"

// KHz is a radio frequency in kilohertz.
type KHz int64

// MHz returns the frequency in megahertz.
func (f KHz) MHz() float64 { return float64(f) / 1000 }

// ParseFrequencyKHz parses a NASR frequency written in megahertz with an
// optional decimal part:
//
//	<digits>[.<digits>]
//
// The fractional part is normalized to exactly three digits — "118.1"
// reads as 118100 kHz, "118.1225" truncates to 118122 kHz. A value
// without a decimal point is a whole-MHz frequency.
func ParseFrequencyKHz(b []byte) (KHz, error) {
	fail := func() (KHz, error) {
		return 0, fmt.Errorf("frequency %q: want <digits>[.<digits>]", b)
	}
	if len(b) == 0 {
		return fail()
	}

	i := 0
	var mhz int64
	for ; i < len(b) && b[i] >= '0' && b[i] <= '9'; i++ {
		mhz = mhz*10 + int64(b[i]-'0')
	}
	if i == 0 {
		return fail()
	}
	if i == len(b) {
		return KHz(mhz * 1000), nil
	}
	if b[i] != '.' {
		return fail()
	}
	i++
	if i == len(b) {
		return fail()
	}

	// Right-pad or truncate the fraction to exactly three digits.
	var khz int64
	digits := 0
	for ; i < len(b); i++ {
		c := b[i]
		if c < '0' || c > '9' {
			return fail()
		}
		if digits < 3 {
			khz = khz*10 + int64(c-'0')
			digits++
		}
	}
	for ; digits < 3; digits++ {
		khz *= 10
	}

	return KHz(mhz*1000 + khz), nil
}
