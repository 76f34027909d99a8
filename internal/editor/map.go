package editor

import (
	"maps"
	"slices"
	"strings"
)

// StringMap is the committed form of a flat key/value parameter.
type StringMap map[string]string

// NestedStringMap is the committed form of a key -> StringMap parameter.
type NestedStringMap map[string]StringMap

// Pair is one row of an edit buffer.
type Pair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// MapOp names an operation carried by a MapCommand.
type MapOp string

const (
	OpSetKey    MapOp = "set-key"
	OpSetValue  MapOp = "set-value"
	OpAddRow    MapOp = "add-row"
	OpRemoveRow MapOp = "remove-row"
)

// MapCommand is one user edit addressed to a MapEditor.
type MapCommand struct {
	Op   MapOp  `json:"op"`
	Row  int    `json:"row"`
	Text string `json:"text,omitempty"`
}

// MapEditor keeps an ordered edit buffer of key/value rows next to the
// clean map it commits. The buffer may hold blank or duplicate keys while
// the user types; the committed map never does.
//
// Every mutating method returns the freshly committed map together with a
// flag telling whether the change must be emitted to the owner.
type MapEditor struct {
	rows []Pair
}

// NewMapEditor seeds a buffer from a committed map. Keys are laid out in
// sorted order; an empty map starts with one blank row.
func NewMapEditor(initial StringMap) *MapEditor {
	e := &MapEditor{}
	for _, k := range slices.Sorted(maps.Keys(initial)) {
		e.rows = append(e.rows, Pair{Key: k, Value: initial[k]})
	}
	if len(e.rows) == 0 {
		e.rows = []Pair{{}}
	}
	return e
}

// Rows returns a copy of the edit buffer.
func (e *MapEditor) Rows() []Pair {
	return slices.Clone(e.rows)
}

// Len returns the number of buffered rows.
func (e *MapEditor) Len() int { return len(e.rows) }

// Committed derives the clean map from the buffer.
func (e *MapEditor) Committed() StringMap {
	return commit(e.rows)
}

// SetKey replaces the key of one row.
func (e *MapEditor) SetKey(row int, key string) (StringMap, bool) {
	if !e.inRange(row) {
		return e.Committed(), false
	}
	e.rows[row].Key = key
	return e.Committed(), true
}

// SetValue replaces the value of one row.
func (e *MapEditor) SetValue(row int, value string) (StringMap, bool) {
	if !e.inRange(row) {
		return e.Committed(), false
	}
	e.rows[row].Value = value
	return e.Committed(), true
}

// AddRow appends a blank row. The committed map cannot change, so nothing is emitted.
func (e *MapEditor) AddRow() (StringMap, bool) {
	e.rows = append(e.rows, Pair{})
	return e.Committed(), false
}

// RemoveRow deletes one row, re-seeding a blank row if the buffer becomes empty.
func (e *MapEditor) RemoveRow(row int) (StringMap, bool) {
	if !e.inRange(row) {
		return e.Committed(), false
	}
	e.rows = slices.Delete(e.rows, row, row+1)
	if len(e.rows) == 0 {
		e.rows = []Pair{{}}
	}
	return e.Committed(), true
}

// Apply runs a command against the editor. Unknown ops are ignored.
func (e *MapEditor) Apply(cmd MapCommand) (StringMap, bool) {
	switch cmd.Op {
	case OpSetKey:
		return e.SetKey(cmd.Row, cmd.Text)
	case OpSetValue:
		return e.SetValue(cmd.Row, cmd.Text)
	case OpAddRow:
		return e.AddRow()
	case OpRemoveRow:
		return e.RemoveRow(cmd.Row)
	}
	return e.Committed(), false
}

func (e *MapEditor) inRange(row int) bool {
	return row >= 0 && row < len(e.rows)
}

// commit drops rows with blank keys. Duplicate keys collapse with the last
// row in buffer order winning.
func commit(rows []Pair) StringMap {
	out := make(StringMap, len(rows))
	for _, r := range rows {
		if strings.TrimSpace(r.Key) == "" {
			continue
		}
		out[r.Key] = r.Value
	}
	return out
}

// Clone returns a copy of m; nil stays nil.
func (m StringMap) Clone() StringMap {
	return maps.Clone(m)
}

// Clone returns a deep copy of m; nil stays nil.
func (m NestedStringMap) Clone() NestedStringMap {
	if m == nil {
		return nil
	}
	out := make(NestedStringMap, len(m))
	for k, v := range m {
		if v == nil {
			v = StringMap{}
		}
		out[k] = v.Clone()
	}
	return out
}
