package model

import (
	"encoding/json"
	"testing"

	"go-pipeline-builder/internal/editor"
	"go-pipeline-builder/internal/meta"

	"github.com/google/go-cmp/cmp"
)

func TestParamsCloneIsDeep(t *testing.T) {
	p := Params{
		"by":       []string{"a"},
		"columns":  editor.StringMap{"x": "1"},
		"mappings": editor.NestedStringMap{"c": {"A": "a"}},
		"actions":  []AggregateAction{{Method: "sum", On: []string{"v"}}},
	}
	c := p.Clone()
	c["by"].([]string)[0] = "z"
	c["columns"].(editor.StringMap)["x"] = "2"
	c["mappings"].(editor.NestedStringMap)["c"]["A"] = "b"
	c["actions"].([]AggregateAction)[0].On[0] = "w"

	if p["by"].([]string)[0] != "a" ||
		p["columns"].(editor.StringMap)["x"] != "1" ||
		p["mappings"].(editor.NestedStringMap)["c"]["A"] != "a" ||
		p["actions"].([]AggregateAction)[0].On[0] != "v" {
		t.Fatalf("clone aliases the original: %#v", p)
	}
}

func TestParamsWith(t *testing.T) {
	var p Params
	next := p.With("condition", "x > 1")
	if p != nil {
		t.Fatal("With mutated a nil receiver")
	}
	if next["condition"] != "x > 1" {
		t.Fatalf("With() = %#v", next)
	}
}

func TestExportDropsIDs(t *testing.T) {
	steps := []PipelineStep{
		{ID: "step-1", Type: meta.Filter, Label: "Filter", Params: Params{"condition": "a > 1"}},
		{ID: "step-2", Type: meta.Formatter, Label: "Formatter"},
	}
	b, err := json.Marshal(Export(steps))
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"pipeline": []any{
		map[string]any{"type": "filter", "label": "Filter", "params": map[string]any{"condition": "a > 1"}},
		map[string]any{"type": "formatter", "label": "Formatter", "params": map[string]any{}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("export mismatch:\n%s", diff)
	}
	if steps[0].ID != "step-1" {
		t.Fatal("Export mutated its input")
	}
}
