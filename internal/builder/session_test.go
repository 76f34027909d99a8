package builder

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pipeline-builder/internal/editor"
	"go-pipeline-builder/internal/meta"
	"go-pipeline-builder/internal/model"
	"go-pipeline-builder/internal/param"
)

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("step-%d", n)
	}
}

func TestSessionInsertAndEdit(t *testing.T) {
	s := NewSession("s1", counterIDs())

	snap, err := s.Apply(Command{Op: OpInsert, Type: meta.Filter})
	require.NoError(t, err)
	require.Len(t, snap.Steps, 1)
	assert.Equal(t, "step-1", snap.Selected)
	require.Len(t, snap.Widgets, 2)
	assert.Equal(t, "condition", snap.Widgets[1].Key)

	snap, err = s.Apply(Command{Op: OpParam, ID: "step-1", Key: "condition",
		Event: &param.Event{Kind: param.EventChange, Text: "price > 10"}})
	require.NoError(t, err)
	assert.Equal(t, "price > 10", snap.Steps[0].Params["condition"])
	assert.Equal(t, "price > 10", snap.Widgets[1].Text)
	assert.Equal(t, uint64(2), snap.Revision)
}

func TestSessionInsertUnknownOperator(t *testing.T) {
	s := NewSession("s1", counterIDs())
	_, err := s.Apply(Command{Op: OpInsert, Type: "pivot"})
	assert.ErrorIs(t, err, ErrUnknownOperator)
	assert.Empty(t, s.Steps())
}

func TestSessionUnknownCommand(t *testing.T) {
	s := NewSession("s1", nil)
	_, err := s.Apply(Command{Op: "explode"})
	assert.ErrorIs(t, err, ErrUnknownCommand)

	_, err = s.Apply(Command{Op: OpParam, ID: "x", Key: "y"})
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestSessionUnknownIDIsNoop(t *testing.T) {
	s := NewSession("s1", counterIDs())
	_, err := s.Apply(Command{Op: OpInsert, Type: meta.Sort})
	require.NoError(t, err)
	before := s.Steps()

	for _, cmd := range []Command{
		{Op: OpRemove, ID: "nope"},
		{Op: OpMove, ID: "nope", Direction: Up},
		{Op: OpUpdate, ID: "nope", Step: &model.PipelineStep{Type: meta.Filter}},
		{Op: OpParam, ID: "nope", Key: "by", Event: &param.Event{Kind: param.EventChange, Text: "a"}},
	} {
		_, err := s.Apply(cmd)
		require.NoError(t, err, "command %s", cmd.Op)
	}
	assert.Equal(t, before, s.Steps())
}

func TestSessionRemoveSelectedClearsSelection(t *testing.T) {
	s := NewSession("s1", counterIDs())
	s.Apply(Command{Op: OpInsert, Type: meta.Filter})
	s.Apply(Command{Op: OpInsert, Type: meta.Sort})

	snap, _ := s.Apply(Command{Op: OpRemove, ID: "step-2"})
	assert.Empty(t, snap.Selected)
	assert.Empty(t, snap.Widgets)
	require.Len(t, snap.Steps, 1)
}

func TestSessionMapBufferSurvivesCommit(t *testing.T) {
	s := NewSession("s1", counterIDs())
	s.Apply(Command{Op: OpInsert, Type: meta.Constant})

	mapEvent := func(cmd editor.MapCommand) Command {
		return Command{Op: OpParam, ID: "step-1", Key: "columns",
			Event: &param.Event{Kind: param.EventMap, Map: &cmd}}
	}
	s.Apply(mapEvent(editor.MapCommand{Op: editor.OpSetKey, Row: 0, Text: "country"}))
	s.Apply(mapEvent(editor.MapCommand{Op: editor.OpSetValue, Row: 0, Text: "NL"}))
	snap, _ := s.Apply(mapEvent(editor.MapCommand{Op: editor.OpAddRow}))

	assert.Equal(t, editor.StringMap{"country": "NL"}, snap.Steps[0].Params["columns"])
	require.Len(t, snap.Widgets, 1)
	assert.Equal(t, []editor.Pair{{Key: "country", Value: "NL"}, {}}, snap.Widgets[0].Rows)
}

func TestSessionLoadReplacesWholesale(t *testing.T) {
	s := NewSession("s1", counterIDs())
	s.Apply(Command{Op: OpInsert, Type: meta.Filter})

	loaded := []model.PipelineStep{
		{ID: "persisted", Type: meta.Sort, Label: "Sort", Params: model.Params{"by": []any{"a"}}},
		{Type: meta.Formatter, Label: "Formatter"},
	}
	snap, err := s.Apply(Command{Op: OpLoad, Steps: loaded})
	require.NoError(t, err)
	require.Len(t, snap.Steps, 2)
	assert.Equal(t, "step-2", snap.Steps[0].ID)
	assert.Equal(t, "step-3", snap.Steps[1].ID)
	assert.Empty(t, snap.Selected)
	assert.NotNil(t, snap.Steps[1].Params)

	ws, ok := s.Widgets("step-2")
	require.True(t, ok)
	assert.Equal(t, "a", ws[0].Text)

	doc := s.Document()
	assert.Empty(t, doc.Pipeline[0].ID)
}

func TestSessionReorderAndColumns(t *testing.T) {
	s := NewSession("s1", counterIDs())
	for _, op := range []meta.OperatorType{meta.Filter, meta.Sort, meta.Tag} {
		s.Apply(Command{Op: OpInsert, Type: op})
	}
	snap, _ := s.Apply(Command{Op: OpReorder, Source: 2, Dest: intp(0)})
	assert.Equal(t, meta.Tag, snap.Steps[0].Type)

	snap, _ = s.Apply(Command{Op: OpColumns, Columns: []string{"id", "price"}})
	assert.Equal(t, []string{"id", "price"}, snap.Columns)
	snap, _ = s.Apply(Command{Op: OpColumns})
	assert.Equal(t, []string{}, snap.Columns)
}

func TestManagerLifecycle(t *testing.T) {
	m := NewManager(2, time.Minute)
	a, err := m.Create()
	require.NoError(t, err)
	_, err = m.Create()
	require.NoError(t, err)
	_, err = m.Create()
	assert.ErrorIs(t, err, ErrTooManySessions)

	got, err := m.Get(a.ID())
	require.NoError(t, err)
	assert.Same(t, a, got)

	require.NoError(t, m.Delete(a.ID()))
	assert.ErrorIs(t, m.Delete(a.ID()), ErrSessionNotFound)
	_, err = m.Get(a.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 1, m.Len())
}

func TestManagerSweep(t *testing.T) {
	m := NewManager(0, time.Minute)
	_, err := m.Create()
	require.NoError(t, err)

	assert.Equal(t, 0, m.Sweep(time.Now()))
	assert.Equal(t, 1, m.Sweep(time.Now().Add(2*time.Minute)))
	assert.Equal(t, 0, m.Len())

	noExpiry := NewManager(0, 0)
	noExpiry.Create()
	assert.Equal(t, 0, noExpiry.Sweep(time.Now().Add(time.Hour)))
}

func TestSessionConcurrentEditsStayConsistent(t *testing.T) {
	s := NewSession("s1", counterIDs())
	_, err := s.Apply(Command{Op: OpInsert, Type: meta.Filter})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				cond := fmt.Sprintf("price > %d", w*1000+i)
				by := fmt.Sprintf("c%d, d%d", w, i)
				s.Apply(Command{Op: OpParam, ID: "step-1", Key: "condition",
					Event: &param.Event{Kind: param.EventChange, Text: cond}})
				s.Apply(Command{Op: OpParam, ID: "step-1", Key: "by",
					Event: &param.Event{Kind: param.EventChange, Text: by}})
			}
		}(w)
	}
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				snap := s.Snapshot()
				if len(snap.Steps) != 1 || len(snap.Widgets) != 2 {
					t.Errorf("snapshot shape: %d steps, %d widgets", len(snap.Steps), len(snap.Widgets))
					return
				}
				params := snap.Steps[0].Params
				if cond, ok := params["condition"]; ok && snap.Widgets[1].Text != cond {
					t.Errorf("condition buffer %q, committed %q", snap.Widgets[1].Text, cond)
				}
				if by, ok := params["by"]; ok {
					if got := param.SplitList(snap.Widgets[0].Text); fmt.Sprint(got) != fmt.Sprint(by) {
						t.Errorf("by buffer %q, committed %v", snap.Widgets[0].Text, by)
					}
				}
				if _, ok := s.Widgets("step-1"); !ok {
					t.Error("step-1 vanished")
				}
			}
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	assert.Equal(t, uint64(1+4*100*2), snap.Revision)
}
