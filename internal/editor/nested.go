package editor

import (
	"maps"
	"slices"
	"strings"
)

// NestedOp names an operation carried by a NestedCommand.
type NestedOp string

const (
	OpSetOuterKey    NestedOp = "set-outer-key"
	OpSetInner       NestedOp = "set-inner"
	OpEditInner      NestedOp = "edit-inner"
	OpAddOuterRow    NestedOp = "add-outer-row"
	OpRemoveOuterRow NestedOp = "remove-outer-row"
)

// NestedCommand is one user edit addressed to a NestedMapEditor.
// Inner carries the command for the row's embedded MapEditor (edit-inner);
// Value carries a replacement inner map (set-inner).
type NestedCommand struct {
	Op    NestedOp    `json:"op"`
	Row   int         `json:"row"`
	Text  string      `json:"text,omitempty"`
	Inner *MapCommand `json:"inner,omitempty"`
	Value StringMap   `json:"value,omitempty"`
}

// NestedRow is a read-only view of one outer row.
type NestedRow struct {
	ID    int    `json:"id"`
	Key   string `json:"key"`
	Inner []Pair `json:"inner"`
}

type nestedRow struct {
	id     int
	key    string
	inner  StringMap
	editor *MapEditor
}

// NestedMapEditor applies the MapEditor contract one level up. Each outer
// row owns its own MapEditor, addressed by a stable row id, so edits in one
// row never disturb the buffer of a sibling.
type NestedMapEditor struct {
	rows   []*nestedRow
	nextID int
}

// NewNestedMapEditor seeds the outer buffer from a committed value in sorted
// key order; an empty value starts with one blank row.
func NewNestedMapEditor(initial NestedStringMap) *NestedMapEditor {
	e := &NestedMapEditor{}
	for _, k := range slices.Sorted(maps.Keys(initial)) {
		e.rows = append(e.rows, e.newRow(k, initial[k]))
	}
	if len(e.rows) == 0 {
		e.rows = []*nestedRow{e.newRow("", nil)}
	}
	return e
}

func (e *NestedMapEditor) newRow(key string, inner StringMap) *nestedRow {
	e.nextID++
	if inner == nil {
		inner = StringMap{}
	}
	return &nestedRow{id: e.nextID, key: key, inner: inner.Clone(), editor: NewMapEditor(inner)}
}

// Rows returns a snapshot of the outer buffer including each inner buffer.
func (e *NestedMapEditor) Rows() []NestedRow {
	out := make([]NestedRow, 0, len(e.rows))
	for _, r := range e.rows {
		out = append(out, NestedRow{ID: r.id, Key: r.key, Inner: r.editor.Rows()})
	}
	return out
}

// Len returns the number of outer rows.
func (e *NestedMapEditor) Len() int { return len(e.rows) }

// RowID returns the stable identity of the row at index, or 0 when out of range.
func (e *NestedMapEditor) RowID(row int) int {
	if !e.inRange(row) {
		return 0
	}
	return e.rows[row].id
}

// Committed drops rows with blank outer keys and keeps empty inner maps.
func (e *NestedMapEditor) Committed() NestedStringMap {
	out := make(NestedStringMap, len(e.rows))
	for _, r := range e.rows {
		if strings.TrimSpace(r.key) == "" {
			continue
		}
		out[r.key] = r.inner.Clone()
	}
	return out
}

// SetOuterKey replaces the outer key of one row.
func (e *NestedMapEditor) SetOuterKey(row int, key string) (NestedStringMap, bool) {
	if !e.inRange(row) {
		return e.Committed(), false
	}
	e.rows[row].key = key
	return e.Committed(), true
}

// SetInner replaces the inner map of one row and re-seeds that row's editor.
func (e *NestedMapEditor) SetInner(row int, inner StringMap) (NestedStringMap, bool) {
	if !e.inRange(row) {
		return e.Committed(), false
	}
	if inner == nil {
		inner = StringMap{}
	}
	r := e.rows[row]
	r.inner = inner.Clone()
	r.editor = NewMapEditor(inner)
	return e.Committed(), true
}

// ApplyInner routes a command to the embedded editor of one row and takes
// over whatever that editor commits.
func (e *NestedMapEditor) ApplyInner(row int, cmd MapCommand) (NestedStringMap, bool) {
	if !e.inRange(row) {
		return e.Committed(), false
	}
	r := e.rows[row]
	inner, emitted := r.editor.Apply(cmd)
	if !emitted {
		return e.Committed(), false
	}
	r.inner = inner
	return e.Committed(), true
}

// AddOuterRow appends a blank outer row. Nothing is emitted.
func (e *NestedMapEditor) AddOuterRow() (NestedStringMap, bool) {
	e.rows = append(e.rows, e.newRow("", nil))
	return e.Committed(), false
}

// RemoveOuterRow deletes one outer row, re-seeding a blank row if none remain.
func (e *NestedMapEditor) RemoveOuterRow(row int) (NestedStringMap, bool) {
	if !e.inRange(row) {
		return e.Committed(), false
	}
	e.rows = slices.Delete(e.rows, row, row+1)
	if len(e.rows) == 0 {
		e.rows = []*nestedRow{e.newRow("", nil)}
	}
	return e.Committed(), true
}

// Apply runs a command against the editor. Unknown ops are ignored.
func (e *NestedMapEditor) Apply(cmd NestedCommand) (NestedStringMap, bool) {
	switch cmd.Op {
	case OpSetOuterKey:
		return e.SetOuterKey(cmd.Row, cmd.Text)
	case OpSetInner:
		return e.SetInner(cmd.Row, cmd.Value)
	case OpEditInner:
		if cmd.Inner == nil {
			break
		}
		return e.ApplyInner(cmd.Row, *cmd.Inner)
	case OpAddOuterRow:
		return e.AddOuterRow()
	case OpRemoveOuterRow:
		return e.RemoveOuterRow(cmd.Row)
	}
	return e.Committed(), false
}

func (e *NestedMapEditor) inRange(row int) bool {
	return row >= 0 && row < len(e.rows)
}
