// Package router reads the record-type discriminator from each
// physical record, selects the matching layout and schema, and
// dispatches the transformed row to the record type's handler.
package router

import (
	"fmt"

	"airnav/internal/fixed"
	"airnav/internal/layout"
	"airnav/internal/schema"
)

// Class distinguishes base records from continuation records. NASR
// marks continuations with a leading '*' on the discriminator; the
// router strips the marker and reports the class explicitly instead of
// letting each handler probe for the sentinel byte.
type Class int

const (
	Base Class = iota
	Continuation
)

func (c Class) String() string {
	if c == Continuation {
		return "continuation"
	}
	return "base"
}

// UnknownPolicy decides what an unrecognized discriminator means.
type UnknownPolicy int

const (
	// FailUnknown treats an unknown tag as fatal (single-type files).
	FailUnknown UnknownPolicy = iota
	// SkipUnknown silently drops the record (multi-type files with
	// partially implemented types).
	SkipUnknown
)

// Record is one dispatched record: its tag, class and transformed row.
type Record struct {
	Tag   string
	Class Class
	Row   schema.Row
}

// Handler processes one transformed record. An error is fatal to the
// whole pass.
type Handler func(rec Record) error

// RecordType binds a discriminator to its layout, schema and handler.
type RecordType struct {
	Tag     string
	Layout  layout.Table
	Schema  schema.Schema
	Handle  Handler
}

// Format describes one file format: where the discriminator lives and
// the ordered list of record types it can contain.
type Format struct {
	Name      string
	DiscStart int // byte range of the discriminator column
	DiscLen   int
	OnUnknown UnknownPolicy
	Types     []RecordType
}

// Validate checks layout/schema arity alignment once, at construction
// time, so accessor-index mismatches surface before any record is fed.
func (f *Format) Validate() error {
	for _, rt := range f.Types {
		if len(rt.Layout) != len(rt.Schema) {
			return fmt.Errorf("%s/%s: layout has %d columns, schema %d fields",
				f.Name, rt.Tag, len(rt.Layout), len(rt.Schema))
		}
		if rt.Handle == nil {
			return fmt.Errorf("%s/%s: no handler", f.Name, rt.Tag)
		}
	}
	return nil
}

func (f *Format) lookup(tag string) *RecordType {
	for i := range f.Types {
		if f.Types[i].Tag == tag {
			return &f.Types[i]
		}
	}
	return nil
}

// Dispatch routes one physical record: read and trim the discriminator,
// detect the continuation marker, slice the columns, transform, and
// hand the row to the record type's handler.
func (f *Format) Dispatch(rec []byte) error {
	if len(rec) < f.DiscStart+f.DiscLen {
		return &schema.TruncatedRecordError{Tag: f.Name, Got: len(rec), Want: f.DiscStart + f.DiscLen}
	}

	disc := fixed.Trim(rec[f.DiscStart : f.DiscStart+f.DiscLen])
	class := Base
	if len(disc) > 0 && disc[0] == '*' {
		class = Continuation
		disc = fixed.Trim(disc[1:])
	}
	tag := string(disc)

	rt := f.lookup(tag)
	if rt == nil {
		if f.OnUnknown == SkipUnknown {
			return nil
		}
		return fmt.Errorf("%s: unknown record type %q", f.Name, tag)
	}

	cols, err := rt.Layout.Slice(tag, rec)
	if err != nil {
		return err
	}
	row, err := schema.Apply(rt.Schema, cols)
	if err != nil {
		return fmt.Errorf("%s record: %w", tag, err)
	}
	return rt.Handle(Record{Tag: tag, Class: class, Row: row})
}

// Run feeds every record from src through Dispatch, stopping at the
// first error. The source yields records already isolated to record
// boundaries; the router does no line splitting of its own.
func (f *Format) Run(src func(yield func(rec []byte) bool)) error {
	var failure error
	src(func(rec []byte) bool {
		if err := f.Dispatch(rec); err != nil {
			failure = err
			return false
		}
		return true
	})
	return failure
}
