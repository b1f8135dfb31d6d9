package storage_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"airnav/internal/domain"
	"airnav/internal/fixed"
	"airnav/internal/storage"
)

func openDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "airnav.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAirportRoundTrip(t *testing.T) {
	db := openDB(t)
	agg := storage.NewAggregateStore(db)
	q := storage.NewQueryStore(db)

	elev := 126.0
	ctaf := fixed.KHz(122800)
	hdg := int64(12)
	a := &domain.Airport{
		SiteNumber:   "01818.*A",
		Ident:        "SMO",
		FacilityType: "AIRPORT",
		Name:         "SANTA MONICA MUNI",
		City:         "SANTA MONICA",
		State:        "CA",
		Ownership:    "PU",
		Use:          "PU",
		Latitude:     122193.1,
		Longitude:    -426269,
		Elevation:    &elev,
		TowerOnSite:  true,
		CTAFFreq:     &ctaf,
		EffectiveAt:  time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		Runways: []*domain.Runway{{
			ID: "03/21", Length: 4973, Width: 150, Surface: "ASPH",
			BaseEnd:  &domain.RunwayEnd{ID: "03", Heading: &hdg},
			RecipEnd: &domain.RunwayEnd{ID: "21"},
			Remarks:  []string{"RWY GROOVED"},
		}},
		Attendance: []*domain.AttendanceSlot{
			{Sequence: 1, Schedule: "ALL/MON-FRI/0700-2100"},
			{Sequence: 2, Schedule: "ALL/SAT-SUN/0900-1700"},
		},
		Remarks: []string{"NOISE ABATEMENT IN EFFECT"},
	}

	if err := agg.StoreAirports(context.Background(), []*domain.Airport{a}); err != nil {
		t.Fatalf("store: %v", err)
	}

	got, err := q.FindAirportByIdent("SMO")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.SiteNumber != a.SiteNumber || got.City != a.City {
		t.Fatalf("unexpected airport: %+v", got)
	}
	if got.CTAFFreq == nil || *got.CTAFFreq != ctaf {
		t.Fatalf("ctaf = %v", got.CTAFFreq)
	}
	if len(got.Runways) != 1 {
		t.Fatalf("runways: %d", len(got.Runways))
	}
	r := got.Runways[0]
	if r.BaseEnd == nil || r.BaseEnd.Heading == nil || *r.BaseEnd.Heading != 12 {
		t.Fatalf("base end: %+v", r.BaseEnd)
	}
	if len(got.Attendance) != 2 || got.Attendance[0].Sequence != 1 {
		t.Fatalf("attendance: %+v", got.Attendance)
	}
	if len(got.Remarks) != 1 {
		t.Fatalf("remarks: %v", got.Remarks)
	}
}

func TestStoreReplacesSnapshot(t *testing.T) {
	db := openDB(t)
	agg := storage.NewAggregateStore(db)
	q := storage.NewQueryStore(db)

	first := []*domain.Navaid{
		{Ident: "LAX", Type: "VORTAC", City: "LOS ANGELES", Name: "LOS ANGELES"},
		{Ident: "SMO", Type: "VOR", City: "SANTA MONICA", Name: "SANTA MONICA"},
	}
	if err := agg.StoreNavaids(context.Background(), first); err != nil {
		t.Fatalf("first store: %v", err)
	}
	second := []*domain.Navaid{
		{Ident: "SLI", Type: "VORTAC", City: "LOS ALAMITOS", Name: "SEAL BEACH"},
	}
	if err := agg.StoreNavaids(context.Background(), second); err != nil {
		t.Fatalf("second store: %v", err)
	}

	if found, err := q.FindNavaids("LAX"); err != nil || len(found) != 0 {
		t.Fatalf("stale navaid survived replace: %v %v", found, err)
	}
	found, err := q.FindNavaids("SLI")
	if err != nil || len(found) != 1 {
		t.Fatalf("find SLI: %v %v", found, err)
	}
}

func TestAirwayRoundTrip(t *testing.T) {
	db := openDB(t)
	agg := storage.NewAggregateStore(db)
	q := storage.NewQueryStore(db)

	mea := int64(5000)
	a := &domain.Airway{
		Designator: "V23",
		System:     "VICTOR",
		Points: []*domain.AirwayPoint{
			{Sequence: 10, FixName: "FIRST", MEA: &mea},
			{Sequence: 20, FixName: "SECOND", Remark: "MEA GAP"},
		},
	}
	if err := agg.StoreAirways(context.Background(), []*domain.Airway{a}); err != nil {
		t.Fatalf("store: %v", err)
	}

	got, err := q.FindAirway("V23", "VICTOR")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got.Points) != 2 || got.Points[0].FixName != "FIRST" {
		t.Fatalf("points: %+v", got.Points)
	}
	if got.Points[1].Remark != "MEA GAP" {
		t.Fatalf("remark: %q", got.Points[1].Remark)
	}
}

func TestRunLog(t *testing.T) {
	db := openDB(t)
	runs := storage.NewRunStore(db)

	if run, err := runs.LatestRun(); err != nil || run != nil {
		t.Fatalf("expected no runs, got %v %v", run, err)
	}

	id, err := runs.StartRun("manual")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := runs.FinishRun(id, "success", "", 10, 5, 2, 1); err != nil {
		t.Fatalf("finish: %v", err)
	}

	run, err := runs.LatestRun()
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if run == nil || run.ID != id || run.Status != "success" {
		t.Fatalf("run: %+v", run)
	}
	if run.Airports != 10 || run.ILS != 1 {
		t.Fatalf("counts: %+v", run)
	}
	if run.FinishedAt == nil {
		t.Fatal("finished_at not set")
	}

	list, err := runs.ListRuns(10)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v %v", list, err)
	}
}
