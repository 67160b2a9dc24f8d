package domain

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
)

// Extra holds document keys the server does not model. Clients keep their
// own fields on boards, columns, tasks and subtasks, and those are written
// back verbatim.
type Extra map[string]json.RawMessage

// Field-only twins of the document types. Converting to them drops the
// JSON methods so the default codec can do the modelled part.
type (
	boardFields   Board
	columnFields  Column
	taskFields    Task
	subtaskFields Subtask
)

var (
	boardKeys   = jsonKeys(reflect.TypeFor[boardFields]())
	columnKeys  = jsonKeys(reflect.TypeFor[columnFields]())
	taskKeys    = jsonKeys(reflect.TypeFor[taskFields]())
	subtaskKeys = jsonKeys(reflect.TypeFor[subtaskFields]())
)

func jsonKeys(t reflect.Type) map[string]struct{} {
	keys := make(map[string]struct{}, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		keys[name] = struct{}{}
	}
	return keys
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// decodeWithExtra fills into from data and returns the keys outside known.
func decodeWithExtra(data []byte, into any, known map[string]struct{}) (Extra, error) {
	if err := json.Unmarshal(data, into); err != nil {
		return nil, err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}

	var extra Extra
	for k, v := range all {
		if _, ok := known[k]; ok {
			continue
		}
		if extra == nil {
			extra = make(Extra)
		}
		extra[k] = v
	}
	return extra, nil
}

// encodeWithExtra marshals v and merges extra into the object. Modelled
// keys always win.
func encodeWithExtra(v any, extra Extra, known map[string]struct{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for k, raw := range extra {
		if _, ok := known[k]; ok {
			continue
		}
		if _, ok := all[k]; !ok {
			all[k] = raw
		}
	}
	return json.Marshal(all)
}

func (b *Board) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var f boardFields
	extra, err := decodeWithExtra(data, &f, boardKeys)
	if err != nil {
		return err
	}
	*b = Board(f)
	b.Extra = extra
	return nil
}

func (b Board) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(boardFields(b), b.Extra, boardKeys)
}

func (c *Column) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var f columnFields
	extra, err := decodeWithExtra(data, &f, columnKeys)
	if err != nil {
		return err
	}
	*c = Column(f)
	c.Extra = extra
	return nil
}

func (c Column) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(columnFields(c), c.Extra, columnKeys)
}

func (t *Task) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var f taskFields
	extra, err := decodeWithExtra(data, &f, taskKeys)
	if err != nil {
		return err
	}
	*t = Task(f)
	t.Extra = extra
	return nil
}

func (t Task) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(taskFields(t), t.Extra, taskKeys)
}

func (s *Subtask) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var f subtaskFields
	extra, err := decodeWithExtra(data, &f, subtaskKeys)
	if err != nil {
		return err
	}
	*s = Subtask(f)
	s.Extra = extra
	return nil
}

func (s Subtask) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(subtaskFields(s), s.Extra, subtaskKeys)
}
