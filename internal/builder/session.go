package builder

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-pipeline-builder/internal/meta"
	"go-pipeline-builder/internal/model"
	"go-pipeline-builder/internal/param"
)

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrUnknownOperator = errors.New("unknown operator type")
	ErrMissingField    = errors.New("missing command field")
)

// CommandOp names a Session command.
type CommandOp string

const (
	OpInsert  CommandOp = "insert"
	OpRemove  CommandOp = "remove"
	OpMove    CommandOp = "move"
	OpReorder CommandOp = "reorder"
	OpSelect  CommandOp = "select"
	OpUpdate  CommandOp = "update"
	OpParam   CommandOp = "param"
	OpLoad    CommandOp = "load"
	OpColumns CommandOp = "columns"
)

// Command is one edit of a builder session. Which fields are read depends
// on Op.
type Command struct {
	Op        CommandOp            `json:"op"`
	Type      meta.OperatorType    `json:"type,omitempty"`
	ID        string               `json:"id,omitempty"`
	Direction Direction            `json:"direction,omitempty"`
	Source    int                  `json:"source,omitempty"`
	Dest      *int                 `json:"dest,omitempty"`
	Step      *model.PipelineStep  `json:"step,omitempty"`
	Key       string               `json:"key,omitempty"`
	Event     *param.Event         `json:"event,omitempty"`
	Steps     []model.PipelineStep `json:"steps,omitempty"`
	Columns   []string             `json:"columns,omitempty"`
}

// Snapshot is the observable state of a session after a command.
type Snapshot struct {
	ID       string               `json:"id"`
	Revision uint64               `json:"revision"` // accepted commands so far
	Steps    []model.PipelineStep `json:"steps"`
	Selected string               `json:"selected,omitempty"`
	Columns  []string             `json:"columns"`
	Widgets  []param.Widget       `json:"widgets,omitempty"`
}

// NewStepID returns a fresh step id.
func NewStepID() string { return "step-" + uuid.New().String() }

// Session owns one pipeline being edited. Each command runs under the
// session lock, so the edit buffers and the committed steps never diverge
// between two observations.
type Session struct {
	id    string
	newID func() string

	mu       sync.Mutex
	seq      Sequence
	forms    map[string]*param.Form
	columns  []string
	revision uint64
	lastUsed time.Time
}

// NewSession returns an empty session. newID generates step ids; nil means
// NewStepID.
func NewSession(id string, newID func() string) *Session {
	if newID == nil {
		newID = NewStepID
	}
	return &Session{
		id:       id,
		newID:    newID,
		forms:    map[string]*param.Form{},
		columns:  []string{},
		lastUsed: time.Now(),
	}
}

func (s *Session) ID() string { return s.id }

// Apply runs cmd and returns the resulting snapshot. Commands that address
// an unknown step id succeed without changing anything.
func (s *Session) Apply(cmd Command) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()

	before := s.seq

	switch cmd.Op {
	case OpInsert:
		if !cmd.Type.Valid() {
			return s.snapshot(), fmt.Errorf("%w: %q", ErrUnknownOperator, cmd.Type)
		}
		step := NewStep(cmd.Type, s.newID())
		s.seq = s.seq.Insert(step)
		s.forms[step.ID] = param.NewForm(step.Type, step.Params)

	case OpRemove:
		s.seq = s.seq.RemoveByID(cmd.ID)
		if s.seq.Len() != before.Len() {
			delete(s.forms, cmd.ID)
		}

	case OpMove:
		s.seq = s.seq.MoveByID(cmd.ID, cmd.Direction)

	case OpReorder:
		s.seq = s.seq.Reorder(cmd.Source, cmd.Dest)

	case OpSelect:
		s.seq = s.seq.Select(cmd.ID)

	case OpUpdate:
		if cmd.Step == nil {
			return s.snapshot(), fmt.Errorf("%w: step", ErrMissingField)
		}
		if s.seq.Index(cmd.ID) < 0 {
			break
		}
		s.seq = s.seq.UpdateByID(cmd.ID, *cmd.Step)
		s.forms[cmd.ID] = param.NewForm(cmd.Step.Type, cmd.Step.Params)

	case OpParam:
		if cmd.Event == nil {
			return s.snapshot(), fmt.Errorf("%w: event", ErrMissingField)
		}
		s.dispatch(cmd.ID, cmd.Key, *cmd.Event)

	case OpLoad:
		s.load(cmd.Steps)

	case OpColumns:
		s.columns = slices.Clone(cmd.Columns)
		if s.columns == nil {
			s.columns = []string{}
		}

	default:
		return s.snapshot(), fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Op)
	}

	s.revision++
	return s.snapshot(), nil
}

// dispatch routes a parameter event to the step's form. The step is only
// rewritten when the form commits a new value.
func (s *Session) dispatch(id, key string, ev param.Event) {
	step, ok := s.seq.Step(id)
	if !ok {
		return
	}
	form := s.forms[id]
	if form == nil {
		form = param.NewForm(step.Type, step.Params)
		s.forms[id] = form
	}
	params, committed := form.Dispatch(step.Params, key, ev)
	if committed {
		step.Params = params
		s.seq = s.seq.UpdateByID(id, step)
	}
}

// load replaces the whole sequence. Loaded steps get fresh ids.
func (s *Session) load(steps []model.PipelineStep) {
	fresh := make([]model.PipelineStep, 0, len(steps))
	s.forms = map[string]*param.Form{}
	for _, st := range steps {
		st = st.Clone()
		st.ID = s.newID()
		if st.Params == nil {
			st.Params = model.Params{}
		}
		fresh = append(fresh, st)
		s.forms[st.ID] = param.NewForm(st.Type, st.Params)
	}
	s.seq = NewSequence(fresh)
}

// Snapshot returns the current state without changing it.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		ID:       s.id,
		Revision: s.revision,
		Steps:    s.seq.Steps(),
		Selected: s.seq.Selected(),
		Columns:  slices.Clone(s.columns),
	}
	if sel, ok := s.seq.Step(snap.Selected); ok {
		if form := s.forms[sel.ID]; form != nil {
			snap.Widgets = form.Render(sel.Params)
		}
	}
	return snap
}

// Widgets renders the parameter widgets of the step with id.
func (s *Session) Widgets(id string) ([]param.Widget, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	step, ok := s.seq.Step(id)
	if !ok {
		return nil, false
	}
	form := s.forms[id]
	if form == nil {
		form = param.NewForm(step.Type, step.Params)
		s.forms[id] = form
	}
	return form.Render(step.Params), true
}

// Steps returns a copy of the current steps.
func (s *Session) Steps() []model.PipelineStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq.Steps()
}

// Columns returns the detected input columns.
func (s *Session) Columns() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.columns)
}

// Document returns the downstream document for the current steps.
func (s *Session) Document() model.Document {
	return model.Export(s.Steps())
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastUsed)
}
