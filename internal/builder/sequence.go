package builder

import (
	"slices"

	"go-pipeline-builder/internal/meta"
	"go-pipeline-builder/internal/model"
)

// Direction is the way MoveByID moves a step.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Sequence is the ordered list of pipeline steps plus the selected step id.
// Every operation returns a new Sequence and leaves the receiver untouched;
// operations on an unknown id return the sequence unchanged.
type Sequence struct {
	steps    []model.PipelineStep
	selected string
}

// NewSequence returns a sequence over a copy of steps with nothing selected.
func NewSequence(steps []model.PipelineStep) Sequence {
	s := Sequence{steps: make([]model.PipelineStep, 0, len(steps))}
	for _, st := range steps {
		s.steps = append(s.steps, st.Clone())
	}
	return s
}

// NewStep returns a step of type t with an empty parameter object.
func NewStep(t meta.OperatorType, id string) model.PipelineStep {
	label := string(t)
	if m, ok := meta.Lookup(t); ok {
		label = m.Title
	}
	return model.PipelineStep{ID: id, Type: t, Label: label, Params: model.Params{}}
}

// Steps returns a deep copy of the steps in order.
func (s Sequence) Steps() []model.PipelineStep {
	out := make([]model.PipelineStep, len(s.steps))
	for i, st := range s.steps {
		out[i] = st.Clone()
	}
	return out
}

func (s Sequence) Len() int { return len(s.steps) }

// Selected returns the selected step id, or "" when nothing is selected.
func (s Sequence) Selected() string { return s.selected }

// Index returns the position of id, or -1.
func (s Sequence) Index(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.steps, func(st model.PipelineStep) bool { return st.ID == id })
}

// Step returns a copy of the step with id.
func (s Sequence) Step(id string) (model.PipelineStep, bool) {
	i := s.Index(id)
	if i < 0 {
		return model.PipelineStep{}, false
	}
	return s.steps[i].Clone(), true
}

// Insert appends step and selects it.
func (s Sequence) Insert(step model.PipelineStep) Sequence {
	return Sequence{steps: append(slices.Clone(s.steps), step.Clone()), selected: step.ID}
}

// RemoveByID drops the step with id. Removing the selected step clears the
// selection.
func (s Sequence) RemoveByID(id string) Sequence {
	i := s.Index(id)
	if i < 0 {
		return s
	}
	out := Sequence{steps: slices.Delete(slices.Clone(s.steps), i, i+1), selected: s.selected}
	if s.selected == id {
		out.selected = ""
	}
	return out
}

// MoveByID swaps the step with its neighbour in direction d. It is a no-op
// at either end of the sequence.
func (s Sequence) MoveByID(id string, d Direction) Sequence {
	i := s.Index(id)
	if i < 0 {
		return s
	}
	j := i - 1
	if d == Down {
		j = i + 1
	} else if d != Up {
		return s
	}
	if j < 0 || j >= len(s.steps) {
		return s
	}
	steps := slices.Clone(s.steps)
	steps[i], steps[j] = steps[j], steps[i]
	return Sequence{steps: steps, selected: s.selected}
}

// Reorder moves the step at src so that it ends up at dst. A nil dst is a
// cancelled drag. Equal or out-of-range positions are no-ops.
func (s Sequence) Reorder(src int, dst *int) Sequence {
	if dst == nil || src == *dst {
		return s
	}
	n := len(s.steps)
	if src < 0 || src >= n || *dst < 0 || *dst >= n {
		return s
	}
	steps := slices.Clone(s.steps)
	moved := steps[src]
	steps = slices.Delete(steps, src, src+1)
	steps = slices.Insert(steps, *dst, moved)
	return Sequence{steps: steps, selected: s.selected}
}

// UpdateByID replaces the content of the step with id. The id is kept even
// if step carries another one.
func (s Sequence) UpdateByID(id string, step model.PipelineStep) Sequence {
	i := s.Index(id)
	if i < 0 {
		return s
	}
	step = step.Clone()
	step.ID = id
	steps := slices.Clone(s.steps)
	steps[i] = step
	return Sequence{steps: steps, selected: s.selected}
}

// Select marks id as selected. "" clears the selection; unknown ids are
// ignored.
func (s Sequence) Select(id string) Sequence {
	if id != "" && s.Index(id) < 0 {
		return s
	}
	return Sequence{steps: s.steps, selected: id}
}
