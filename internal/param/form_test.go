package param

import (
	"testing"

	"go-pipeline-builder/internal/editor"
	"go-pipeline-builder/internal/meta"
	"go-pipeline-builder/internal/model"

	"github.com/google/go-cmp/cmp"
)

func widgetFor(t *testing.T, ws []Widget, key string) Widget {
	t.Helper()
	for _, w := range ws {
		if w.Key == key {
			return w
		}
	}
	t.Fatalf("no widget for %q", key)
	return Widget{}
}

func TestRenderFollowsMetadataOrder(t *testing.T) {
	params := model.Params{"unknown": "x", "default_tag": "other"}
	ws := NewForm(meta.Tag, params).Render(params)

	var keys []string
	for _, w := range ws {
		keys = append(keys, w.Key)
	}
	if diff := cmp.Diff([]string{"col_name", "tags", "conditions", "default_tag"}, keys); diff != "" {
		t.Errorf("widget order mismatch:\n%s", diff)
	}
	if got := widgetFor(t, ws, "default_tag").Text; got != "other" {
		t.Errorf("default_tag text = %q", got)
	}
}

func TestFormatterRendersNothing(t *testing.T) {
	if ws := NewForm(meta.Formatter, nil).Render(nil); len(ws) != 0 {
		t.Fatalf("formatter widgets = %#v", ws)
	}
	if ws := NewForm("bogus", nil).Render(nil); len(ws) != 0 {
		t.Fatalf("unknown operator widgets = %#v", ws)
	}
}

func TestDispatchStringList(t *testing.T) {
	f := NewForm(meta.Sort, nil)
	params, changed := f.Dispatch(nil, "by", Event{Kind: EventChange, Text: "a, b ,,c"})
	if !changed {
		t.Fatal("string-list change should commit")
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, params["by"]); diff != "" {
		t.Errorf("committed mismatch:\n%s", diff)
	}
	// The buffer keeps what was typed.
	if got := widgetFor(t, f.Render(params), "by").Text; got != "a, b ,,c" {
		t.Errorf("buffer = %q", got)
	}

	params, _ = f.Dispatch(params, "by", Event{Kind: EventClear})
	if diff := cmp.Diff([]string{}, params["by"]); diff != "" {
		t.Errorf("clear mismatch:\n%s", diff)
	}
}

func TestDispatchMappedBooleanCommitsOnBlur(t *testing.T) {
	f := NewForm(meta.Sort, nil)
	params := model.Params{"by": []string{"a", "b", "c", "d"}}

	next, changed := f.Dispatch(params, "ascending", Event{Kind: EventChange, Text: "true,False,yes,TRUE"})
	if changed {
		t.Fatal("typing must not commit a mapped-boolean")
	}
	if _, ok := next["ascending"]; ok {
		t.Fatal("params changed before blur")
	}

	next, changed = f.Dispatch(params, "ascending", Event{Kind: EventBlur})
	if !changed {
		t.Fatal("blur should commit")
	}
	if diff := cmp.Diff([]bool{true, false, false, true}, next["ascending"]); diff != "" {
		t.Errorf("committed mismatch:\n%s", diff)
	}
	if w := widgetFor(t, f.Render(next), "ascending"); !w.CommitOnBlur || len(w.Warnings) != 0 {
		t.Errorf("unexpected widget %#v", w)
	}
}

func TestMappedStringAlignmentIsAdvisory(t *testing.T) {
	f := NewForm(meta.Tag, nil)
	params := model.Params{"tags": []string{"hi", "lo"}}
	params, changed := f.Dispatch(params, "conditions", Event{Kind: EventChange, Text: "x > 1"})
	if !changed {
		t.Fatal("mismatched length must still commit")
	}
	if diff := cmp.Diff([]string{"x > 1"}, params["conditions"]); diff != "" {
		t.Errorf("committed mismatch:\n%s", diff)
	}
	w := widgetFor(t, f.Render(params), "conditions")
	if diff := cmp.Diff([]string{"conditions has 1 entries but tags has 2"}, w.Warnings); diff != "" {
		t.Errorf("warnings mismatch:\n%s", diff)
	}
}

func TestDispatchSelectRejectsUnknownChoice(t *testing.T) {
	f := NewForm(meta.ValueMapping, nil)
	if _, changed := f.Dispatch(nil, "mode", Event{Kind: EventSelect, Text: "bogus"}); changed {
		t.Fatal("unknown option committed")
	}
	params, changed := f.Dispatch(nil, "mode", Event{Kind: EventSelect, Text: "replace"})
	if !changed || params["mode"] != "replace" {
		t.Fatalf("select = %#v, %v", params, changed)
	}
}

func TestDispatchMapAndNested(t *testing.T) {
	f := NewForm(meta.ValueMapping, nil)
	var params model.Params

	params, changed := f.Dispatch(params, "mappings", Event{Kind: EventNested,
		Nested: &editor.NestedCommand{Op: editor.OpSetOuterKey, Row: 0, Text: "status"}})
	if !changed {
		t.Fatal("outer key edit should commit")
	}
	params, _ = f.Dispatch(params, "mappings", Event{Kind: EventNested,
		Nested: &editor.NestedCommand{Op: editor.OpEditInner, Row: 0,
			Inner: &editor.MapCommand{Op: editor.OpSetKey, Row: 0, Text: "A"}}})
	params, _ = f.Dispatch(params, "mappings", Event{Kind: EventNested,
		Nested: &editor.NestedCommand{Op: editor.OpEditInner, Row: 0,
			Inner: &editor.MapCommand{Op: editor.OpSetValue, Row: 0, Text: "active"}}})

	want := editor.NestedStringMap{"status": {"A": "active"}}
	if diff := cmp.Diff(want, params["mappings"]); diff != "" {
		t.Errorf("nested mismatch:\n%s", diff)
	}

	if _, changed := f.Dispatch(params, "mappings", Event{Kind: EventNested,
		Nested: &editor.NestedCommand{Op: editor.OpAddOuterRow}}); changed {
		t.Fatal("adding a row should not commit")
	}
	if n := len(widgetFor(t, f.Render(params), "mappings").Nested); n != 2 {
		t.Fatalf("nested rows = %d, want 2", n)
	}

	cf := NewForm(meta.Constant, nil)
	params, changed = cf.Dispatch(nil, "columns", Event{Kind: EventMap,
		Map: &editor.MapCommand{Op: editor.OpSetKey, Row: 0, Text: "country"}})
	if !changed {
		t.Fatal("map edit should commit")
	}
	if diff := cmp.Diff(editor.StringMap{"country": ""}, params["columns"]); diff != "" {
		t.Errorf("map mismatch:\n%s", diff)
	}
}

func TestDispatchUnknownKeyIsIgnored(t *testing.T) {
	f := NewForm(meta.Filter, nil)
	params := model.Params{"condition": "a"}
	got, changed := f.Dispatch(params, "nope", Event{Kind: EventChange, Text: "x"})
	if changed || got["nope"] != nil {
		t.Fatalf("Dispatch(unknown) = %#v, %v", got, changed)
	}
	// Wrong event kind for the widget.
	if _, changed := f.Dispatch(params, "condition", Event{Kind: EventBlur}); changed {
		t.Fatal("blur on a string field should not commit")
	}
}

func TestDispatchAggregateActions(t *testing.T) {
	f := NewForm(meta.Aggregate, nil)
	var params model.Params

	params, _ = f.Dispatch(params, "actions", Event{Kind: EventAction,
		Action: &ActionEdit{Op: ActionSet, Index: 0, Field: "method", Text: "sum"}})
	params, _ = f.Dispatch(params, "actions", Event{Kind: EventAction,
		Action: &ActionEdit{Op: ActionSet, Index: 0, Field: "on", Text: "price, qty"}})
	params, _ = f.Dispatch(params, "actions", Event{Kind: EventAction,
		Action: &ActionEdit{Op: ActionSet, Index: 0, Field: "summary_label", Text: "Total, all"}})
	params, _ = f.Dispatch(params, "actions", Event{Kind: EventAction,
		Action: &ActionEdit{Op: ActionAdd}})

	if _, changed := f.Dispatch(params, "actions", Event{Kind: EventAction,
		Action: &ActionEdit{Op: ActionSet, Index: 1, Field: "summary_output", Text: "sideways"}}); changed {
		t.Fatal("invalid radio choice committed")
	}

	want := []model.AggregateAction{
		{Method: "sum", On: []string{"price", "qty"}, Rename: []string{}, SummaryOutput: "grouped", SummaryLabel: "Total, all"},
		{On: []string{}, Rename: []string{}, SummaryOutput: "grouped"},
	}
	if diff := cmp.Diff(want, params["actions"]); diff != "" {
		t.Errorf("actions mismatch:\n%s", diff)
	}

	w := widgetFor(t, f.Render(params), "actions")
	if len(w.Actions) != 2 {
		t.Fatalf("action rows = %d", len(w.Actions))
	}
	rename := w.Actions[0].Fields[2]
	if rename.Key != "rename" || len(rename.Warnings) != 1 {
		t.Errorf("rename widget = %#v", rename)
	}

	params, changed := f.Dispatch(params, "actions", Event{Kind: EventAction,
		Action: &ActionEdit{Op: ActionRemove, Index: 0}})
	if !changed {
		t.Fatal("remove should commit")
	}
	if diff := cmp.Diff(want[1:], params["actions"]); diff != "" {
		t.Errorf("after remove:\n%s", diff)
	}
}

func TestRadioDefaultsToFirstOption(t *testing.T) {
	p, _ := meta.AggregateActionParam("summary_output")
	if got := selected(p, ""); got != p.Options[0].Value {
		t.Errorf("selected() = %q", got)
	}
}
