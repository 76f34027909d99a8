package meta

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLookupCoversEveryOperator(t *testing.T) {
	for _, op := range OperatorTypes() {
		m, ok := Lookup(op)
		if !ok {
			t.Fatalf("Lookup(%q) missing", op)
		}
		if m.Type != op {
			t.Errorf("Lookup(%q).Type = %q", op, m.Type)
		}
		if m.Title == "" {
			t.Errorf("Lookup(%q) has empty title", op)
		}
		if LookupParams(op) == nil {
			t.Errorf("LookupParams(%q) = nil", op)
		}
	}
	if len(OperatorTypes()) != 9 {
		t.Fatalf("expected 9 operator types, got %d", len(OperatorTypes()))
	}
}

func TestFormatterHasNoParams(t *testing.T) {
	params := LookupParams(Formatter)
	if params == nil || len(params) != 0 {
		t.Fatalf("LookupParams(formatter) = %#v, want empty non-nil", params)
	}
}

func TestUnknownOperator(t *testing.T) {
	if _, ok := Lookup("pivot"); ok {
		t.Fatal("Lookup(pivot) should not succeed")
	}
	if LookupParams("pivot") != nil {
		t.Fatal("LookupParams(pivot) should be nil")
	}
	if OperatorType("pivot").Valid() {
		t.Fatal("pivot should not be valid")
	}
}

func TestParamOrderFollowsDeclaration(t *testing.T) {
	var keys []string
	for _, p := range LookupParams(Tag) {
		keys = append(keys, p.Key)
	}
	want := []string{"col_name", "tags", "conditions", "default_tag"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("tag param order mismatch:\n%s", diff)
	}
}

func TestMappedParamsReferenceSiblings(t *testing.T) {
	for _, op := range OperatorTypes() {
		for _, p := range LookupParams(op) {
			if p.UIType.Mapped() {
				if p.ReferenceKey == "" {
					t.Errorf("%s.%s is mapped but has no reference key", op, p.Key)
					continue
				}
				if _, ok := Param(op, p.ReferenceKey); !ok {
					t.Errorf("%s.%s references unknown sibling %q", op, p.Key, p.ReferenceKey)
				}
			} else if p.ReferenceKey != "" {
				t.Errorf("%s.%s is %s but has reference key %q", op, p.Key, p.UIType, p.ReferenceKey)
			}
		}
	}
}

func TestLookupReturnsCopies(t *testing.T) {
	p, ok := Param(ValueMapping, "mode")
	if !ok {
		t.Fatal("value_mapping.mode missing")
	}
	p.Options[0].Value = "mutated"

	again, _ := Param(ValueMapping, "mode")
	if again.Options[0].Value != "map" {
		t.Fatalf("registry was mutated through a returned copy: %q", again.Options[0].Value)
	}
}

func TestAggregateActionSchema(t *testing.T) {
	var keys []string
	for _, p := range AggregateActionParams() {
		keys = append(keys, p.Key)
	}
	want := []string{"method", "on", "rename", "summary_label", "summary_output"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("action schema mismatch:\n%s", diff)
	}

	out, ok := AggregateActionParam("summary_output")
	if !ok || out.UIType != UIRadio || !out.HasOption(SummaryAppended) {
		t.Fatalf("summary_output meta = %#v", out)
	}
	method, _ := AggregateActionParam("method")
	if !method.HasOption("std") || method.HasOption("median") {
		t.Fatalf("unexpected method options %#v", method.Options)
	}
}
