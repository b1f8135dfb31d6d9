// Package layout holds the schema-catalog boundary types: the byte
// offsets and widths that position each field inside a fixed-width
// record. The tables themselves are declared statically by each parser
// — this package only knows how to cut a record along them.
package layout

import "airnav/internal/schema"

// Column is one field's byte range within a record. Start is a
// zero-based offset; Len is the field width in bytes.
type Column struct {
	Name  string
	Start int
	Len   int
}

// Table is an ordered list of columns for one record type. Its length
// must equal the arity of the schema applied to the sliced columns.
type Table []Column

// Width returns the minimum record length the table requires.
func (t Table) Width() int {
	w := 0
	for _, c := range t {
		if end := c.Start + c.Len; end > w {
			w = end
		}
	}
	return w
}

// Slice cuts one physical record into raw columns. A record shorter
// than the table's width is a truncated record.
func (t Table) Slice(tag string, rec []byte) ([][]byte, error) {
	if len(rec) < t.Width() {
		return nil, &schema.TruncatedRecordError{Tag: tag, Got: len(rec), Want: t.Width()}
	}
	cols := make([][]byte, len(t))
	for i, c := range t {
		cols[i] = rec[c.Start : c.Start+c.Len]
	}
	return cols, nil
}

// Block re-bases a table against a byte offset, so one table shape can
// describe two disjoint regions of the same record — e.g. the two ends
// of a runway encoded side by side.
func Block(t Table, offset int) Table {
	out := make(Table, len(t))
	for i, c := range t {
		out[i] = Column{Name: c.Name, Start: c.Start + offset, Len: c.Len}
	}
	return out
}
