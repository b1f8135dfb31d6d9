package fixed

import (
	"fmt"
	"strconv"
)

// ParseInt parses an optionally signed decimal integer. At least one
// digit is required; any byte other than a leading sign and ASCII digits
// fails. Overflow is reported as an error, not wrapped.
func ParseInt(b []byte) (int64, error) {
	if len(b) == 0 {
		return 0, fmt.Errorf("empty integer")
	}
	neg := false
	i := 0
	switch b[0] {
	case '+':
		i = 1
	case '-':
		neg = true
		i = 1
	}
	if i >= len(b) {
		return 0, fmt.Errorf("integer %q: sign without digits", b)
	}
	var n int64
	for ; i < len(b); i++ {
		c := b[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("integer %q: unexpected byte %q", b, c)
		}
		d := int64(c - '0')
		if neg {
			if n < (minInt64+d)/10 {
				return 0, fmt.Errorf("integer %q: overflow", b)
			}
			n = n*10 - d
		} else {
			if n > (maxInt64-d)/10 {
				return 0, fmt.Errorf("integer %q: overflow", b)
			}
			n = n*10 + d
		}
	}
	return n, nil
}

// ParseUint parses an unsigned decimal integer. A leading '+' is
// accepted, '-' is not.
func ParseUint(b []byte) (uint64, error) {
	if len(b) == 0 {
		return 0, fmt.Errorf("empty integer")
	}
	i := 0
	if b[0] == '+' {
		i = 1
	}
	if i >= len(b) {
		return 0, fmt.Errorf("integer %q: sign without digits", b)
	}
	var n uint64
	for ; i < len(b); i++ {
		c := b[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("integer %q: unexpected byte %q", b, c)
		}
		d := uint64(c - '0')
		if n > (maxUint64-d)/10 {
			return 0, fmt.Errorf("integer %q: overflow", b)
		}
		n = n*10 + d
	}
	return n, nil
}

// ParseFloat trims b, then parses it as a decimal floating point value.
// An empty trimmed input fails.
func ParseFloat(b []byte) (float64, error) {
	t := Trim(b)
	if len(t) == 0 {
		return 0, fmt.Errorf("empty float")
	}
	f, err := strconv.ParseFloat(string(t), 64)
	if err != nil {
		return 0, fmt.Errorf("float %q: %w", t, err)
	}
	return f, nil
}

const (
	maxInt64  = int64(^uint64(0) >> 1)
	minInt64  = -maxInt64 - 1
	maxUint64 = ^uint64(0)
)
