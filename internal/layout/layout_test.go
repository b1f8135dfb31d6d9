package layout_test

import (
	"errors"
	"testing"

	"airnav/internal/layout"
	"airnav/internal/schema"
)

func TestSlice(t *testing.T) {
	tbl := layout.Table{
		{Name: "TYPE", Start: 0, Len: 3},
		{Name: "ID", Start: 3, Len: 4},
		{Name: "NAME", Start: 7, Len: 8},
	}
	cols, err := tbl.Slice("APT", []byte("APTLAX JETPORT "))
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if string(cols[0]) != "APT" || string(cols[1]) != "LAX " || string(cols[2]) != "JETPORT " {
		t.Fatalf("wrong columns: %q %q %q", cols[0], cols[1], cols[2])
	}
}

func TestSliceTruncated(t *testing.T) {
	tbl := layout.Table{{Name: "ID", Start: 0, Len: 10}}
	_, err := tbl.Slice("NAV1", []byte("short"))
	var trunc *schema.TruncatedRecordError
	if !errors.As(err, &trunc) {
		t.Fatalf("expected TruncatedRecordError, got %v", err)
	}
	if trunc.Tag != "NAV1" || trunc.Got != 5 || trunc.Want != 10 {
		t.Fatalf("wrong context: %+v", trunc)
	}
}

func TestBlock(t *testing.T) {
	end := layout.Table{
		{Name: "END_ID", Start: 0, Len: 3},
		{Name: "END_ELEV", Start: 3, Len: 5},
	}
	base := layout.Block(end, 10)
	recip := layout.Block(end, 18)

	rec := []byte("RWY 01/19 01 00125 19 00131 ")
	baseCols, err := base.Slice("RWY", rec)
	if err != nil {
		t.Fatalf("base Slice: %v", err)
	}
	recipCols, err := recip.Slice("RWY", rec)
	if err != nil {
		t.Fatalf("recip Slice: %v", err)
	}
	if string(baseCols[0]) == string(recipCols[0]) {
		t.Fatal("blocks at different offsets should yield different slices")
	}
}
