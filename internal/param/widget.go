package param

import (
	"go-pipeline-builder/internal/editor"
	"go-pipeline-builder/internal/meta"
)

// Control is the kind of editing widget a front end should draw.
type Control string

const (
	ControlText      Control = "text"
	ControlSelect    Control = "select"
	ControlRadio     Control = "radio"
	ControlMap       Control = "map-editor"
	ControlNestedMap Control = "nested-map-editor"
	ControlActions   Control = "action-list"
)

// Widget describes how to draw one parameter and what it currently shows.
type Widget struct {
	Key          string             `json:"key"`
	UIType       meta.UIType        `json:"uiType"`
	Control      Control            `json:"control"`
	Description  string             `json:"description,omitempty"`
	Placeholder  string             `json:"placeholder,omitempty"`
	Helper       string             `json:"helper,omitempty"`
	Required     bool               `json:"required,omitempty"`
	Text         string             `json:"text,omitempty"`
	CommitOnBlur bool               `json:"commitOnBlur,omitempty"`
	Options      []meta.Option      `json:"options,omitempty"`
	Selected     string             `json:"selected,omitempty"`
	Rows         []editor.Pair      `json:"rows,omitempty"`
	Nested       []editor.NestedRow `json:"nested,omitempty"`
	Actions      []ActionWidget     `json:"actions,omitempty"`
	Warnings     []string           `json:"warnings,omitempty"`
}

// ActionWidget groups the sub-field widgets of one aggregate action.
type ActionWidget struct {
	Index  int      `json:"index"`
	Fields []Widget `json:"fields"`
}

func baseWidget(p meta.ParamMeta, c Control) Widget {
	return Widget{
		Key:         p.Key,
		UIType:      p.UIType,
		Control:     c,
		Description: p.Description,
		Placeholder: p.Placeholder,
		Helper:      p.HelperContent,
		Required:    p.Required,
	}
}

// EventKind names the user interaction carried by an Event.
type EventKind string

const (
	EventChange EventKind = "change"
	EventBlur   EventKind = "blur"
	EventClear  EventKind = "clear"
	EventSelect EventKind = "select"
	EventMap    EventKind = "map"
	EventNested EventKind = "nested"
	EventAction EventKind = "action"
)

// Event is one user interaction with a parameter widget.
type Event struct {
	Kind   EventKind             `json:"kind"`
	Text   string                `json:"text,omitempty"`
	Map    *editor.MapCommand    `json:"map,omitempty"`
	Nested *editor.NestedCommand `json:"nested,omitempty"`
	Action *ActionEdit           `json:"action,omitempty"`
}

// ActionOp names an edit of the aggregate action list.
type ActionOp string

const (
	ActionAdd    ActionOp = "add"
	ActionRemove ActionOp = "remove"
	ActionSet    ActionOp = "set"
)

// ActionEdit addresses one action (by index) and, for set, one of its fields.
type ActionEdit struct {
	Op    ActionOp `json:"op"`
	Index int      `json:"index"`
	Field string   `json:"field,omitempty"`
	Text  string   `json:"text,omitempty"`
}
