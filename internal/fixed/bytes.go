// Package fixed provides the low-level byte parsing primitives for
// fixed-width NASR subscriber records. All functions operate on byte
// slices of single-byte (ISO-8859-1 compatible) text and never allocate
// intermediate strings.
package fixed

// isSpace reports whether b is a space or tab — the only padding bytes
// that appear inside fixed-width NASR fields.
func isSpace(b byte) bool { return b == ' ' || b == '\t' }

// Trim returns the sub-slice of b with leading and trailing space/tab
// removed. A slice of only whitespace trims to an empty slice.
func Trim(b []byte) []byte {
	start := 0
	for start < len(b) && isSpace(b[start]) {
		start++
	}
	end := len(b)
	for end > start && isSpace(b[end-1]) {
		end--
	}
	return b[start:end]
}

// IsBlank reports whether b is empty or contains only space/tab.
func IsBlank(b []byte) bool {
	for _, c := range b {
		if !isSpace(c) {
			return false
		}
	}
	return true
}

// Matches reports whether b is byte-for-byte equal to lit.
func Matches(b []byte, lit string) bool {
	if len(b) != len(lit) {
		return false
	}
	for i := range b {
		if b[i] != lit[i] {
			return false
		}
	}
	return true
}

// TrimmedMatches reports whether b, after trimming, equals lit.
func TrimmedMatches(b []byte, lit string) bool {
	return Matches(Trim(b), lit)
}
