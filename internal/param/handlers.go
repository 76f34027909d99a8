package param

import (
	"fmt"

	"go-pipeline-builder/internal/editor"
	"go-pipeline-builder/internal/meta"
	"go-pipeline-builder/internal/model"
)

// field is the per-parameter editing state kept between events.
type field struct {
	meta   meta.ParamMeta
	text   string
	maps   *editor.MapEditor
	nested *editor.NestedMapEditor
	// action sub-field text buffers, indexed like the action list
	actionText []map[string]string
}

// handler implements one UI kind. handle returns the new committed value and
// whether it should be written back to the step.
type handler interface {
	seed(f *field, value any)
	widget(f *field, value any, params model.Params) Widget
	handle(f *field, value any, ev Event) (any, bool)
}

var handlers = map[meta.UIType]handler{
	meta.UIString:        stringHandler{},
	meta.UIStringList:    listHandler{},
	meta.UIMappedString:  listHandler{mapped: true},
	meta.UIMappedBoolean: boolListHandler{},
	meta.UISelect:        choiceHandler{control: ControlSelect},
	meta.UIRadio:         choiceHandler{control: ControlRadio},
	meta.UIMap:           mapHandler{},
	meta.UINestedMap:     nestedHandler{},
	meta.UISubAction:     actionHandler{},
}

type stringHandler struct{}

func (stringHandler) seed(f *field, value any) { f.text = AsString(value) }

func (stringHandler) widget(f *field, _ any, _ model.Params) Widget {
	w := baseWidget(f.meta, ControlText)
	w.Text = f.text
	return w
}

func (stringHandler) handle(f *field, _ any, ev Event) (any, bool) {
	switch ev.Kind {
	case EventChange:
		f.text = ev.Text
		return ev.Text, true
	case EventClear:
		f.text = ""
		return "", true
	}
	return nil, false
}

// listHandler keeps the raw text the user typed and commits the parsed list
// on every change.
type listHandler struct{ mapped bool }

func (listHandler) seed(f *field, value any) { f.text = JoinList(AsStringList(value)) }

func (h listHandler) widget(f *field, value any, params model.Params) Widget {
	w := baseWidget(f.meta, ControlText)
	w.Text = f.text
	if h.mapped {
		w.Warnings = alignmentWarnings(f.meta, len(AsStringList(value)), params)
	}
	return w
}

func (listHandler) handle(f *field, _ any, ev Event) (any, bool) {
	switch ev.Kind {
	case EventChange:
		f.text = ev.Text
		return SplitList(ev.Text), true
	case EventClear:
		f.text = ""
		return []string{}, true
	}
	return nil, false
}

// boolListHandler buffers text until blur. Clear only empties the buffer.
type boolListHandler struct{}

func (boolListHandler) seed(f *field, value any) { f.text = FormatBoolList(AsBoolList(value)) }

func (boolListHandler) widget(f *field, value any, params model.Params) Widget {
	w := baseWidget(f.meta, ControlText)
	w.Text = f.text
	w.CommitOnBlur = true
	w.Warnings = alignmentWarnings(f.meta, len(AsBoolList(value)), params)
	return w
}

func (boolListHandler) handle(f *field, _ any, ev Event) (any, bool) {
	switch ev.Kind {
	case EventChange:
		f.text = ev.Text
	case EventClear:
		f.text = ""
	case EventBlur:
		return ParseBoolList(f.text), true
	}
	return nil, false
}

type choiceHandler struct{ control Control }

func (choiceHandler) seed(*field, any) {}

func (h choiceHandler) widget(f *field, value any, _ model.Params) Widget {
	w := baseWidget(f.meta, h.control)
	w.Options = append([]meta.Option(nil), f.meta.Options...)
	w.Selected = selected(f.meta, AsString(value))
	return w
}

func (choiceHandler) handle(f *field, _ any, ev Event) (any, bool) {
	if ev.Kind != EventSelect && ev.Kind != EventChange {
		return nil, false
	}
	if !f.meta.HasOption(ev.Text) {
		return nil, false
	}
	return ev.Text, true
}

// selected is the choice a widget shows. An unset radio shows its first option.
func selected(p meta.ParamMeta, value string) string {
	if value == "" && p.UIType == meta.UIRadio && len(p.Options) > 0 {
		return p.Options[0].Value
	}
	return value
}

type mapHandler struct{}

func (mapHandler) seed(f *field, value any) { f.maps = editor.NewMapEditor(AsStringMap(value)) }

func (mapHandler) widget(f *field, _ any, _ model.Params) Widget {
	w := baseWidget(f.meta, ControlMap)
	w.Rows = f.maps.Rows()
	return w
}

func (mapHandler) handle(f *field, _ any, ev Event) (any, bool) {
	if ev.Kind != EventMap || ev.Map == nil {
		return nil, false
	}
	m, emitted := f.maps.Apply(*ev.Map)
	if !emitted {
		return nil, false
	}
	return m, true
}

type nestedHandler struct{}

func (nestedHandler) seed(f *field, value any) {
	f.nested = editor.NewNestedMapEditor(AsNestedMap(value))
}

func (nestedHandler) widget(f *field, _ any, _ model.Params) Widget {
	w := baseWidget(f.meta, ControlNestedMap)
	w.Nested = f.nested.Rows()
	return w
}

func (nestedHandler) handle(f *field, _ any, ev Event) (any, bool) {
	if ev.Kind != EventNested || ev.Nested == nil {
		return nil, false
	}
	m, emitted := f.nested.Apply(*ev.Nested)
	if !emitted {
		return nil, false
	}
	return m, true
}

// actionHandler edits the aggregate action list. Each sub-field is
// interpreted by the UI kind of its own metadata.
type actionHandler struct{}

func (actionHandler) seed(f *field, value any) {
	actions := AsActions(value)
	f.actionText = make([]map[string]string, len(actions))
	for i, a := range actions {
		f.actionText[i] = actionBuffers(a)
	}
}

func actionBuffers(a model.AggregateAction) map[string]string {
	return map[string]string{
		"on":            JoinList(a.On),
		"rename":        JoinList(a.Rename),
		"summary_label": a.SummaryLabel,
	}
}

func (actionHandler) widget(f *field, value any, _ model.Params) Widget {
	w := baseWidget(f.meta, ControlActions)
	actions := AsActions(value)
	for i, a := range actions {
		var buf map[string]string
		if i < len(f.actionText) {
			buf = f.actionText[i]
		} else {
			buf = actionBuffers(a)
		}
		row := ActionWidget{Index: i}
		for _, sub := range meta.AggregateActionParams() {
			sw := baseWidget(sub, ControlText)
			switch sub.UIType {
			case meta.UISelect, meta.UIRadio:
				sw.Control = ControlSelect
				if sub.UIType == meta.UIRadio {
					sw.Control = ControlRadio
				}
				sw.Options = sub.Options
				sw.Selected = selected(sub, actionChoice(a, sub.Key))
			default:
				sw.Text = buf[sub.Key]
			}
			if sub.UIType.Mapped() && len(a.Rename) != len(a.On) && (len(a.Rename) > 0 || len(a.On) > 0) {
				sw.Warnings = []string{mismatch(sub.Key, len(a.Rename), sub.ReferenceKey, len(a.On))}
			}
			row.Fields = append(row.Fields, sw)
		}
		w.Actions = append(w.Actions, row)
	}
	return w
}

func actionChoice(a model.AggregateAction, key string) string {
	switch key {
	case "method":
		return a.Method
	case "summary_output":
		return a.SummaryOutput
	}
	return ""
}

func (actionHandler) handle(f *field, value any, ev Event) (any, bool) {
	if ev.Kind != EventAction || ev.Action == nil {
		return nil, false
	}
	edit := *ev.Action
	actions := AsActions(value)
	if len(f.actionText) != len(actions) {
		actionHandler{}.seed(f, actions)
	}

	switch edit.Op {
	case ActionAdd:
		a := model.NewAggregateAction()
		f.actionText = append(f.actionText, actionBuffers(a))
		return append(actions, a), true

	case ActionRemove:
		if edit.Index < 0 || edit.Index >= len(actions) {
			return nil, false
		}
		f.actionText = append(f.actionText[:edit.Index], f.actionText[edit.Index+1:]...)
		return append(actions[:edit.Index], actions[edit.Index+1:]...), true

	case ActionSet:
		sub, ok := meta.AggregateActionParam(edit.Field)
		if !ok || edit.Index < 0 || edit.Index > len(actions) {
			return nil, false
		}
		// Setting one past the end starts a new action, so a fresh aggregate
		// step can be filled in without an explicit add.
		if edit.Index == len(actions) {
			a := model.NewAggregateAction()
			actions = append(actions, a)
			f.actionText = append(f.actionText, actionBuffers(a))
		}
		a := &actions[edit.Index]
		switch sub.UIType {
		case meta.UISelect, meta.UIRadio:
			if !sub.HasOption(edit.Text) {
				return nil, false
			}
			if sub.Key == "method" {
				a.Method = edit.Text
			} else {
				a.SummaryOutput = edit.Text
			}
		case meta.UIStringList, meta.UIMappedString:
			f.actionText[edit.Index][sub.Key] = edit.Text
			if sub.Key == "on" {
				a.On = SplitList(edit.Text)
			} else {
				a.Rename = SplitList(edit.Text)
			}
		default:
			f.actionText[edit.Index][sub.Key] = edit.Text
			a.SummaryLabel = edit.Text
		}
		return actions, true
	}
	return nil, false
}

// Alignment reports the length of a mapped parameter and of the list it
// references. ok is false when p is not mapped or both lists are empty.
func Alignment(p meta.ParamMeta, params model.Params) (got, want int, ok bool) {
	if !p.UIType.Mapped() || p.ReferenceKey == "" {
		return 0, 0, false
	}
	switch p.UIType {
	case meta.UIMappedBoolean:
		got = len(AsBoolList(params[p.Key]))
	default:
		got = len(AsStringList(params[p.Key]))
	}
	want = len(AsStringList(params[p.ReferenceKey]))
	return got, want, got > 0 || want > 0
}

func alignmentWarnings(p meta.ParamMeta, got int, params model.Params) []string {
	if p.ReferenceKey == "" {
		return nil
	}
	want := len(AsStringList(params[p.ReferenceKey]))
	if got == want || (got == 0 && want == 0) {
		return nil
	}
	return []string{mismatch(p.Key, got, p.ReferenceKey, want)}
}

func mismatch(key string, got int, ref string, want int) string {
	return fmt.Sprintf("%s has %d entries but %s has %d", key, got, ref, want)
}
