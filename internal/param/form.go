// Package param renders and edits the parameters of a pipeline step. Each
// parameter is handled according to the UI kind declared in the operator
// metadata; the handler table lives in handlers.go.
package param

import (
	"go-pipeline-builder/internal/meta"
	"go-pipeline-builder/internal/model"
)

// Form holds the editing state of one step's parameters: text buffers that
// may differ from the committed value, and the map editors' row buffers.
// A Form is not safe for concurrent use.
type Form struct {
	op     meta.OperatorType
	order  []string
	fields map[string]*field
}

// NewForm builds the editing state for a step of type op whose committed
// parameters are params. Unknown operator types get an empty form.
func NewForm(op meta.OperatorType, params model.Params) *Form {
	f := &Form{op: op, fields: map[string]*field{}}
	for _, p := range meta.LookupParams(op) {
		h, ok := handlers[p.UIType]
		if !ok {
			continue
		}
		fd := &field{meta: p}
		h.seed(fd, params[p.Key])
		f.fields[p.Key] = fd
		f.order = append(f.order, p.Key)
	}
	return f
}

// Type returns the operator type the form was built for.
func (f *Form) Type() meta.OperatorType { return f.op }

// Render describes every parameter of the operator in metadata order.
// Parameters without metadata are never rendered.
func (f *Form) Render(params model.Params) []Widget {
	out := make([]Widget, 0, len(f.order))
	for _, key := range f.order {
		fd := f.fields[key]
		out = append(out, handlers[fd.meta.UIType].widget(fd, params[key], params))
	}
	return out
}

// Dispatch applies ev to the parameter named key. It returns the new
// parameter object and true when the event changed a committed value;
// otherwise params is returned untouched with false.
func (f *Form) Dispatch(params model.Params, key string, ev Event) (model.Params, bool) {
	fd, ok := f.fields[key]
	if !ok {
		return params, false
	}
	v, changed := handlers[fd.meta.UIType].handle(fd, params[key], ev)
	if !changed {
		return params, false
	}
	return params.With(key, v), true
}

// Reset reseeds the buffers of key from a committed value that was replaced
// outside the form.
func (f *Form) Reset(key string, value any) {
	if fd, ok := f.fields[key]; ok {
		handlers[fd.meta.UIType].seed(fd, value)
	}
}
