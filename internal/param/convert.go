package param

import (
	"fmt"
	"strconv"
	"strings"

	"go-pipeline-builder/internal/editor"
	"go-pipeline-builder/internal/model"
)

// SplitList turns comma-separated text into an ordered list: tokens are
// trimmed and empty tokens dropped. The result is never nil.
func SplitList(raw string) []string {
	out := []string{}
	for _, tok := range strings.Split(raw, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// ParseBoolList splits like SplitList and maps "true" (any case) to true and
// every other token to false.
func ParseBoolList(raw string) []bool {
	tokens := SplitList(raw)
	out := make([]bool, len(tokens))
	for i, tok := range tokens {
		out[i] = strings.EqualFold(tok, "true")
	}
	return out
}

// JoinList renders a list back to editable text.
func JoinList(list []string) string {
	return strings.Join(list, ",")
}

// FormatBoolList renders a boolean list back to editable text.
func FormatBoolList(list []bool) string {
	parts := make([]string, len(list))
	for i, v := range list {
		parts[i] = strconv.FormatBool(v)
	}
	return strings.Join(parts, ",")
}

// AsString coerces a stored parameter value to text.
func AsString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case fmt.Stringer:
		return x.String()
	}
	return ""
}

// AsStringList coerces a stored value to a string list. Text is split the
// same way user input is.
func AsStringList(v any) []string {
	switch x := v.(type) {
	case []string:
		return append([]string{}, x...)
	case string:
		return SplitList(x)
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			out = append(out, AsString(e))
		}
		return out
	}
	return []string{}
}

// AsBoolList coerces a stored value to a boolean list. Unrecognised entries
// become false.
func AsBoolList(v any) []bool {
	switch x := v.(type) {
	case []bool:
		return append([]bool{}, x...)
	case string:
		return ParseBoolList(x)
	case []any:
		out := make([]bool, len(x))
		for i, e := range x {
			switch b := e.(type) {
			case bool:
				out[i] = b
			case string:
				out[i] = strings.EqualFold(strings.TrimSpace(b), "true")
			}
		}
		return out
	}
	return []bool{}
}

// AsStringMap coerces a stored value to a flat string map.
func AsStringMap(v any) editor.StringMap {
	switch x := v.(type) {
	case editor.StringMap:
		return x.Clone()
	case map[string]string:
		return editor.StringMap(x).Clone()
	case model.Params:
		return AsStringMap(map[string]any(x))
	case map[string]any:
		out := make(editor.StringMap, len(x))
		for k, e := range x {
			out[k] = AsString(e)
		}
		return out
	}
	return editor.StringMap{}
}

// AsNestedMap coerces a stored value to a nested string map.
func AsNestedMap(v any) editor.NestedStringMap {
	switch x := v.(type) {
	case editor.NestedStringMap:
		return x.Clone()
	case map[string]editor.StringMap:
		return editor.NestedStringMap(x).Clone()
	case map[string]map[string]string:
		out := make(editor.NestedStringMap, len(x))
		for k, inner := range x {
			out[k] = AsStringMap(inner)
		}
		return out
	case model.Params:
		return AsNestedMap(map[string]any(x))
	case map[string]any:
		out := make(editor.NestedStringMap, len(x))
		for k, inner := range x {
			out[k] = AsStringMap(inner)
		}
		return out
	}
	return editor.NestedStringMap{}
}

// AsActions coerces a stored value to a list of aggregate actions. A single
// action object is accepted as a one-element list.
func AsActions(v any) []model.AggregateAction {
	switch x := v.(type) {
	case []model.AggregateAction:
		out := make([]model.AggregateAction, len(x))
		for i, a := range x {
			a.On = append([]string{}, a.On...)
			a.Rename = append([]string{}, a.Rename...)
			out[i] = a
		}
		return out
	case model.AggregateAction:
		return AsActions([]model.AggregateAction{x})
	case model.Params:
		return []model.AggregateAction{actionFromMap(x)}
	case map[string]any:
		return []model.AggregateAction{actionFromMap(x)}
	case []any:
		out := make([]model.AggregateAction, 0, len(x))
		for _, e := range x {
			switch m := e.(type) {
			case map[string]any:
				out = append(out, actionFromMap(m))
			case model.Params:
				out = append(out, actionFromMap(m))
			}
		}
		return out
	}
	return []model.AggregateAction{}
}

func actionFromMap(m map[string]any) model.AggregateAction {
	return model.AggregateAction{
		Method:        AsString(m["method"]),
		On:            AsStringList(m["on"]),
		Rename:        AsStringList(m["rename"]),
		SummaryOutput: AsString(m["summary_output"]),
		SummaryLabel:  AsString(m["summary_label"]),
	}
}
