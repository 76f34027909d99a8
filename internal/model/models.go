package model

import (
	"maps"
	"slices"

	"go-pipeline-builder/internal/editor"
	"go-pipeline-builder/internal/meta"
)

// Params is the operator-specific parameter object of a step.
// Values hold string, []string, []bool, editor.StringMap,
// editor.NestedStringMap or []AggregateAction once edited, and plain JSON
// values ([]any, map[string]any) when decoded from a document.
type Params map[string]any

// PipelineStep is one operator instance in a pipeline.
type PipelineStep struct {
	ID     string            `json:"id,omitempty" yaml:"id,omitempty"`
	Type   meta.OperatorType `json:"type" yaml:"type"`
	Label  string            `json:"label" yaml:"label"`
	Params Params            `json:"params" yaml:"params"`
}

// AggregateAction is one reduction of the aggregate operator.
type AggregateAction struct {
	Method        string   `json:"method" yaml:"method"`
	On            []string `json:"on" yaml:"on"`
	Rename        []string `json:"rename" yaml:"rename"`
	SummaryOutput string   `json:"summary_output" yaml:"summary_output"`
	SummaryLabel  string   `json:"summary_label" yaml:"summary_label"`
}

// NewAggregateAction returns an action with the defaults of a freshly added row.
func NewAggregateAction() AggregateAction {
	return AggregateAction{
		On:            []string{},
		Rename:        []string{},
		SummaryOutput: meta.SummaryGrouped,
	}
}

// Document is the JSON shape consumed by the execution engine.
type Document struct {
	Pipeline []PipelineStep `json:"pipeline" yaml:"pipeline"`
}

// Clone returns a deep copy of the step.
func (s PipelineStep) Clone() PipelineStep {
	s.Params = s.Params.Clone()
	return s
}

// Clone returns a deep copy of p. Values of unknown types are shared.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

// With returns a copy of p with key set to value.
func (p Params) With(key string, value any) Params {
	out := p.Clone()
	if out == nil {
		out = Params{}
	}
	out[key] = value
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case []string:
		return slices.Clone(x)
	case []bool:
		return slices.Clone(x)
	case editor.StringMap:
		return x.Clone()
	case editor.NestedStringMap:
		return x.Clone()
	case []AggregateAction:
		out := make([]AggregateAction, len(x))
		for i, a := range x {
			a.On = slices.Clone(a.On)
			a.Rename = slices.Clone(a.Rename)
			out[i] = a
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = cloneValue(e)
		}
		return out
	case map[string]string:
		return maps.Clone(x)
	}
	return v
}

// Export returns the downstream document for steps, without step ids.
func Export(steps []PipelineStep) Document {
	doc := Document{Pipeline: make([]PipelineStep, 0, len(steps))}
	for _, s := range steps {
		s = s.Clone()
		s.ID = ""
		if s.Params == nil {
			s.Params = Params{}
		}
		doc.Pipeline = append(doc.Pipeline, s)
	}
	return doc
}
