package router_test

import (
	"strings"
	"testing"

	"airnav/internal/layout"
	"airnav/internal/router"
	"airnav/internal/schema"
)

func testFormat(t *testing.T, onUnknown router.UnknownPolicy, got *[]router.Record) *router.Format {
	t.Helper()
	record := func(rec router.Record) error {
		*got = append(*got, rec)
		return nil
	}
	f := &router.Format{
		Name:      "TEST",
		DiscStart: 0,
		DiscLen:   4,
		OnUnknown: onUnknown,
		Types: []router.RecordType{
			{
				Tag: "AAA",
				Layout: layout.Table{
					{Name: "TYPE", Start: 0, Len: 4},
					{Name: "ID", Start: 4, Len: 4},
				},
				Schema: schema.Schema{
					schema.RecordType("TYPE"),
					schema.String("ID", schema.Required),
				},
				Handle: record,
			},
			{
				Tag: "BBB",
				Layout: layout.Table{
					{Name: "TYPE", Start: 0, Len: 4},
					{Name: "SEQ", Start: 4, Len: 4},
				},
				Schema: schema.Schema{
					schema.RecordType("TYPE"),
					schema.Int("SEQ", schema.Required),
				},
				Handle: record,
			},
		},
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return f
}

func TestDispatch(t *testing.T) {
	var got []router.Record
	f := testFormat(t, router.FailUnknown, &got)

	if err := f.Dispatch([]byte("AAA LAX ")); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if err := f.Dispatch([]byte("BBB 0042")); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 dispatches, got %d", len(got))
	}
	if got[0].Tag != "AAA" || got[0].Class != router.Base {
		t.Fatalf("first record: %+v", got[0])
	}
	id, err := got[0].Row.String(1)
	if err != nil || id != "LAX" {
		t.Fatalf("ID = %q, %v", id, err)
	}
	seq, err := got[1].Row.Int(1)
	if err != nil || seq != 42 {
		t.Fatalf("SEQ = %d, %v", seq, err)
	}
}

func TestDispatchContinuation(t *testing.T) {
	var got []router.Record
	f := testFormat(t, router.FailUnknown, &got)

	if err := f.Dispatch([]byte("*AAALAX ")); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if got[0].Class != router.Continuation || got[0].Tag != "AAA" {
		t.Fatalf("continuation marker not detected: %+v", got[0])
	}
}

func TestDispatchUnknown(t *testing.T) {
	var got []router.Record
	fail := testFormat(t, router.FailUnknown, &got)
	if err := fail.Dispatch([]byte("ZZZ 1234")); err == nil {
		t.Fatal("FailUnknown should reject an unknown tag")
	}

	skip := testFormat(t, router.SkipUnknown, &got)
	if err := skip.Dispatch([]byte("ZZZ 1234")); err != nil {
		t.Fatalf("SkipUnknown should drop unknown tags, got %v", err)
	}
	if len(got) != 0 {
		t.Fatal("skipped record should not reach any handler")
	}
}

func TestDispatchFieldErrorCarriesTag(t *testing.T) {
	var got []router.Record
	f := testFormat(t, router.FailUnknown, &got)
	err := f.Dispatch([]byte("BBB 12x4"))
	if err == nil || !strings.Contains(err.Error(), "BBB") {
		t.Fatalf("record tag missing from error: %v", err)
	}
}

func TestRunStopsAtFirstError(t *testing.T) {
	var got []router.Record
	f := testFormat(t, router.FailUnknown, &got)

	recs := [][]byte{
		[]byte("AAA LAX "),
		[]byte("BBB badn"),
		[]byte("AAA SFO "),
	}
	src := func(yield func([]byte) bool) {
		for _, r := range recs {
			if !yield(r) {
				return
			}
		}
	}
	if err := f.Run(src); err == nil {
		t.Fatal("expected pass failure")
	}
	if len(got) != 1 {
		t.Fatalf("records after the failure must not be processed, got %d", len(got))
	}
}

func TestValidateArity(t *testing.T) {
	f := &router.Format{
		Name:    "BAD",
		DiscLen: 3,
		Types: []router.RecordType{{
			Tag:    "X",
			Layout: layout.Table{{Name: "A", Start: 0, Len: 1}},
			Schema: schema.Schema{schema.String("A", schema.Required), schema.String("B", schema.Required)},
			Handle: func(router.Record) error { return nil },
		}},
	}
	if err := f.Validate(); err == nil {
		t.Fatal("expected arity validation failure")
	}
}
