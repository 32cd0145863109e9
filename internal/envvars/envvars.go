// Package envvars holds the editable list of environment variable rows shown
// in the build composer.
//
// A List is a value: every operation returns a new List backed by a fresh
// slice, so callers can detect change with Same. The list is never empty.
package envvars

import (
	"strings"

	"github.com/google/uuid"
)

// Field selects which half of a row an update targets.
type Field int

const (
	FieldKey Field = iota
	FieldValue
)

func (f Field) String() string {
	switch f {
	case FieldKey:
		return "key"
	case FieldValue:
		return "value"
	default:
		return "unknown"
	}
}

// Row is one key/value pair. ID is assigned at creation and never changes,
// so a row keeps its identity when rows before it are removed.
type Row struct {
	ID    string
	Key   string
	Value string
}

// List is an ordered, never-empty sequence of rows.
type List struct {
	rows []Row
}

// newRow is swapped in tests that need deterministic IDs.
var newRow = func() Row {
	return Row{ID: uuid.NewString()}
}

// New returns a list holding one blank row.
func New() List {
	return List{rows: []Row{newRow()}}
}

// Rows returns a copy of the rows in order.
func (l List) Rows() []Row {
	l = l.normalized()
	out := make([]Row, len(l.rows))
	copy(out, l.rows)
	return out
}

// Len returns the number of rows (always >= 1).
func (l List) Len() int {
	return len(l.normalized().rows)
}

// At returns the row at index i.
func (l List) At(i int) (Row, bool) {
	l = l.normalized()
	if i < 0 || i >= len(l.rows) {
		return Row{}, false
	}
	return l.rows[i], true
}

// IndexOf returns the position of the row with the given ID, or -1.
func (l List) IndexOf(id string) int {
	for i, r := range l.rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// CanRemove reports whether removal should be offered to the user.
func (l List) CanRemove() bool {
	return len(l.rows) > 1
}

// Add appends one blank row.
func (l List) Add() List {
	l = l.normalized()
	rows := make([]Row, len(l.rows), len(l.rows)+1)
	copy(rows, l.rows)
	return List{rows: append(rows, newRow())}
}

// Remove drops the row with the given ID. Removing the only row leaves a
// single fresh blank row. Unknown IDs return l unchanged.
func (l List) Remove(id string) List {
	idx := l.IndexOf(id)
	if idx < 0 {
		return l
	}
	rows := make([]Row, 0, len(l.rows)-1)
	rows = append(rows, l.rows[:idx]...)
	rows = append(rows, l.rows[idx+1:]...)
	if len(rows) == 0 {
		return New()
	}
	return List{rows: rows}
}

// RemoveAt drops the row at index i.
func (l List) RemoveAt(i int) List {
	l = l.normalized()
	r, ok := l.At(i)
	if !ok {
		return l
	}
	return l.Remove(r.ID)
}

// Update sets the key or value of the row with the given ID.
func (l List) Update(id string, field Field, value string) List {
	idx := l.IndexOf(id)
	if idx < 0 {
		return l
	}
	rows := make([]Row, len(l.rows))
	copy(rows, l.rows)
	switch field {
	case FieldKey:
		rows[idx].Key = value
	case FieldValue:
		rows[idx].Value = value
	default:
		return l
	}
	return List{rows: rows}
}

// UpdateAt sets the key or value of the row at index i.
func (l List) UpdateAt(i int, field Field, value string) List {
	l = l.normalized()
	r, ok := l.At(i)
	if !ok {
		return l
	}
	return l.Update(r.ID, field, value)
}

// ToMap converts the rows to an env mapping. Rows whose key is blank after
// trimming are dropped; the key itself is kept as typed. Later rows win on
// duplicate keys.
func (l List) ToMap() map[string]string {
	out := make(map[string]string, len(l.rows))
	for _, r := range l.rows {
		if strings.TrimSpace(r.Key) == "" {
			continue
		}
		out[r.Key] = r.Value
	}
	return out
}

// Same reports whether a and b share a backing array, i.e. no operation
// produced b from a.
func Same(a, b List) bool {
	if len(a.rows) != len(b.rows) {
		return false
	}
	if len(a.rows) == 0 {
		return true
	}
	return &a.rows[0] == &b.rows[0]
}

// normalized makes the zero List behave like New.
func (l List) normalized() List {
	if len(l.rows) == 0 {
		return New()
	}
	return l
}
