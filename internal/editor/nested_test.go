package editor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNestedFiltersBlankOuterKeys(t *testing.T) {
	e := NewNestedMapEditor(nil)
	e.SetInner(0, StringMap{"x": "1"})
	e.AddOuterRow()
	got, _ := e.SetOuterKey(1, "col")

	want := NestedStringMap{"col": {}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("committed mismatch:\n%s", diff)
	}
	if got["col"] == nil {
		t.Error("empty inner map should be preserved as {}, not nil")
	}
	if e.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", e.Len())
	}
}

func TestNestedEditInnerKeepsSiblingBuffers(t *testing.T) {
	e := NewNestedMapEditor(NestedStringMap{
		"a": {"x": "1"},
		"b": {"y": "2"},
	})
	// Give row "b" a pending blank row that is not part of its committed map.
	e.ApplyInner(1, MapCommand{Op: OpAddRow})
	idB := e.RowID(1)

	got, emitted := e.ApplyInner(0, MapCommand{Op: OpSetValue, Row: 0, Text: "10"})
	if !emitted {
		t.Fatal("inner edit should emit")
	}
	want := NestedStringMap{"a": {"x": "10"}, "b": {"y": "2"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("committed mismatch:\n%s", diff)
	}

	rows := e.Rows()
	if rows[1].ID != idB {
		t.Fatalf("row id changed from %d to %d", idB, rows[1].ID)
	}
	if len(rows[1].Inner) != 2 {
		t.Fatalf("sibling buffer disturbed: %#v", rows[1].Inner)
	}
}

func TestNestedAddInnerRowDoesNotEmit(t *testing.T) {
	e := NewNestedMapEditor(NestedStringMap{"a": {"x": "1"}})
	if _, emitted := e.ApplyInner(0, MapCommand{Op: OpAddRow}); emitted {
		t.Fatal("adding an inner row should not emit")
	}
	if _, emitted := e.AddOuterRow(); emitted {
		t.Fatal("adding an outer row should not emit")
	}
}

func TestNestedRemoveLastOuterRowReseeds(t *testing.T) {
	e := NewNestedMapEditor(NestedStringMap{"a": {"x": "1"}})
	oldID := e.RowID(0)
	got, emitted := e.RemoveOuterRow(0)
	if !emitted || len(got) != 0 {
		t.Fatalf("RemoveOuterRow = %v, %v", got, emitted)
	}
	rows := e.Rows()
	if len(rows) != 1 || rows[0].Key != "" {
		t.Fatalf("expected one blank outer row, got %#v", rows)
	}
	if rows[0].ID == oldID {
		t.Fatal("re-seeded row must get a fresh id")
	}
	if diff := cmp.Diff([]Pair{{}}, rows[0].Inner); diff != "" {
		t.Errorf("re-seeded inner buffer:\n%s", diff)
	}
}

func TestNestedApplyCommands(t *testing.T) {
	e := NewNestedMapEditor(nil)
	steps := []NestedCommand{
		{Op: OpSetOuterKey, Row: 0, Text: "status"},
		{Op: OpEditInner, Row: 0, Inner: &MapCommand{Op: OpSetKey, Row: 0, Text: "A"}},
		{Op: OpEditInner, Row: 0, Inner: &MapCommand{Op: OpSetValue, Row: 0, Text: "active"}},
		{Op: OpAddOuterRow},
		{Op: OpSetOuterKey, Row: 1, Text: "region"},
		{Op: OpSetInner, Row: 1, Value: StringMap{"EU": "europe"}},
		{Op: OpEditInner, Row: 1},
	}
	var got NestedStringMap
	for _, cmd := range steps {
		got, _ = e.Apply(cmd)
	}
	want := NestedStringMap{
		"status": {"A": "active"},
		"region": {"EU": "europe"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("committed mismatch:\n%s", diff)
	}

	// Round trip through a fresh editor.
	if diff := cmp.Diff(want, NewNestedMapEditor(got).Committed()); diff != "" {
		t.Errorf("round trip mismatch:\n%s", diff)
	}
}

func TestNestedOutOfRange(t *testing.T) {
	e := NewNestedMapEditor(nil)
	for _, cmd := range []NestedCommand{
		{Op: OpSetOuterKey, Row: 3, Text: "x"},
		{Op: OpSetInner, Row: -1},
		{Op: OpEditInner, Row: 9, Inner: &MapCommand{Op: OpAddRow}},
		{Op: OpRemoveOuterRow, Row: 2},
	} {
		if _, emitted := e.Apply(cmd); emitted {
			t.Errorf("Apply(%+v) emitted", cmd)
		}
	}
	if e.Len() != 1 || e.RowID(5) != 0 {
		t.Fatalf("unexpected state: len=%d", e.Len())
	}
}
