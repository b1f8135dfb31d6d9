package assemble_test

import (
	"errors"
	"testing"

	"airnav/internal/assemble"
)

type site struct {
	Name    string
	Remarks []string
}

type siteKey struct {
	ID   string
	Kind string
}

func TestEntityMapCreateAndMutate(t *testing.T) {
	m := assemble.NewEntityMap[siteKey, site](assemble.FailOnDuplicate)

	a := siteKey{ID: "LAX", Kind: "AP"}
	b := siteKey{ID: "SFO", Kind: "AP"}
	if err := m.Create(a, &site{Name: "Los Angeles Intl"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := m.Create(b, &site{Name: "San Francisco Intl"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Mutating through the owned reference must touch only that entity.
	e, err := m.Require(a, "RMK")
	if err != nil {
		t.Fatalf("Require: %v", err)
	}
	e.Remarks = append(e.Remarks, "closed at night")

	other, _ := m.Get(b)
	if len(other.Remarks) != 0 {
		t.Fatal("sibling entity under another key was touched")
	}
	again, _ := m.Get(a)
	if len(again.Remarks) != 1 {
		t.Fatal("mutation through Require did not stick")
	}
}

func TestEntityMapUnknownParent(t *testing.T) {
	m := assemble.NewEntityMap[siteKey, site](assemble.FailOnDuplicate)
	_, err := m.Require(siteKey{ID: "JFK", Kind: "AP"}, "RWY")
	var unknown *assemble.UnknownParentError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownParentError, got %v", err)
	}
	if unknown.ChildKind != "RWY" {
		t.Fatalf("wrong child kind: %+v", unknown)
	}
}

func TestEntityMapDuplicatePolicy(t *testing.T) {
	k := siteKey{ID: "LAX", Kind: "AP"}

	strict := assemble.NewEntityMap[siteKey, site](assemble.FailOnDuplicate)
	strict.Create(k, &site{Name: "first"})
	err := strict.Create(k, &site{Name: "second"})
	var dup *assemble.DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateKeyError, got %v", err)
	}

	lax := assemble.NewEntityMap[siteKey, site](assemble.Overwrite)
	lax.Create(k, &site{Name: "first"})
	if err := lax.Create(k, &site{Name: "second"}); err != nil {
		t.Fatalf("Overwrite should accept re-insertion: %v", err)
	}
	e, _ := lax.Get(k)
	if e.Name != "second" {
		t.Fatalf("overwrite did not replace: %q", e.Name)
	}
	if lax.Len() != 1 {
		t.Fatalf("Len = %d", lax.Len())
	}
}

func TestEntityMapValuesInsertionOrder(t *testing.T) {
	m := assemble.NewEntityMap[string, site](assemble.FailOnDuplicate)
	for _, id := range []string{"c", "a", "b"} {
		m.Create(id, &site{Name: id})
	}
	vals := m.Values()
	if vals[0].Name != "c" || vals[1].Name != "a" || vals[2].Name != "b" {
		t.Fatalf("values not in insertion order: %v", vals)
	}
}

type point struct {
	Fix    string
	Remark string
}

func TestSeqBufferOutOfOrderCollate(t *testing.T) {
	b := assemble.NewSeqBuffer[string, point]()

	// Records arrive out of order, across two contributing types.
	b.Put("V23", 30, func(p *point) { p.Fix = "FIM" })
	b.Put("V23", 10, func(p *point) { p.Fix = "LAX" })
	b.Put("V23", 20, func(p *point) { p.Fix = "VNY" })
	b.Put("V23", 20, func(p *point) { p.Remark = "MEA 5000" }) // second type, same child
	b.Put("J1", 10, func(p *point) { p.Fix = "DEN" })

	out := b.Collate()
	v23 := out["V23"]
	if len(v23) != 3 {
		t.Fatalf("expected 3 points, got %d", len(v23))
	}
	for i, want := range []string{"LAX", "VNY", "FIM"} {
		if v23[i].Fix != want {
			t.Fatalf("point %d = %q, want %q (ascending by sequence)", i, v23[i].Fix, want)
		}
	}
	if v23[1].Remark != "MEA 5000" {
		t.Fatal("second record type's contribution was lost in the merge")
	}
	if len(out["J1"]) != 1 {
		t.Fatal("unrelated parent affected")
	}
}

func TestSeqBufferLastWriteWinsPerField(t *testing.T) {
	b := assemble.NewSeqBuffer[string, point]()
	b.Put("V1", 1, func(p *point) { p.Fix = "OLD" })
	b.Put("V1", 1, func(p *point) { p.Fix = "NEW" })
	got := b.Collate()["V1"]
	if len(got) != 1 || got[0].Fix != "NEW" {
		t.Fatalf("expected last write to win, got %+v", got)
	}
}

func TestResolveFieldID(t *testing.T) {
	entity := map[string]bool{"E111": true, "A110-3": true}

	tgt, err := assemble.ResolveFieldID("E111", entity)
	if err != nil {
		t.Fatalf("entity field: %v", err)
	}
	if ef, ok := tgt.(assemble.EntityField); !ok || ef.Field != "E111" {
		t.Fatalf("expected EntityField, got %#v", tgt)
	}

	// An entity-level ID containing the separator must win over the
	// sub-object reading.
	tgt, err = assemble.ResolveFieldID("A110-3", entity)
	if err != nil {
		t.Fatalf("dashed entity field: %v", err)
	}
	if _, ok := tgt.(assemble.EntityField); !ok {
		t.Fatalf("precedence violated: %#v", tgt)
	}

	tgt, err = assemble.ResolveFieldID("A55-01/19", entity)
	if err != nil {
		t.Fatalf("sub-object field: %v", err)
	}
	if sf, ok := tgt.(assemble.SubObjectField); !ok || sf.Sub != "01/19" || sf.Field != "A55" {
		t.Fatalf("expected SubObjectField, got %#v", tgt)
	}

	tgt, err = assemble.ResolveFieldID("E68-01/19-01", entity)
	if err != nil {
		t.Fatalf("nested field: %v", err)
	}
	nf, ok := tgt.(assemble.NestedSubObjectField)
	if !ok || nf.Sub != "01/19" || nf.Nested != "01" || nf.Field != "E68" {
		t.Fatalf("expected NestedSubObjectField, got %#v", tgt)
	}

	for _, bad := range []string{"", "X1", "-A", "A-", "A-B-C-D"} {
		_, err := assemble.ResolveFieldID(bad, entity)
		var unknown *assemble.UnknownFieldIDError
		if !errors.As(err, &unknown) {
			t.Fatalf("%q: expected UnknownFieldIDError, got %v", bad, err)
		}
	}
}
