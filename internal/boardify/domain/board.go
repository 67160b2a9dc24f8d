package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"
)

// BoardSchemaVersion is the current version of the stored board document.
const BoardSchemaVersion = 1

var ErrInvalidBoard = errors.New("invalid board")

// Board is the JSON document a client edits. It is stored as a single blob;
// the server only looks inside it for validation and analytics. Keys it
// does not model survive in Extra at every level.
type Board struct {
	SchemaVersion int      `json:"schemaVersion,omitempty"`
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Columns       []Column `json:"columns"`

	Extra Extra `json:"-"`
}

type Column struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Tasks []Task `json:"tasks"`

	Extra Extra `json:"-"`
}

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type,omitempty"`
	Assignee    string    `json:"assignee,omitempty"`
	Priority    string    `json:"priority,omitempty"`
	Difficulty  string    `json:"difficulty,omitempty"`
	Sprint      string    `json:"sprint,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Hours       *float64  `json:"hours,omitempty"`
	DueDate     string    `json:"dueDate,omitempty"`
	CreatedAt   string    `json:"createdAt,omitempty"`
	CompletedAt string    `json:"completedAt,omitempty"`
	Subtasks    []Subtask `json:"subtasks,omitempty"`

	Extra Extra `json:"-"`
}

type Subtask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`

	Extra Extra `json:"-"`
}

// BoardRecord is a stored board row.
type BoardRecord struct {
	Board     Board
	OwnerID   string // empty for collaborative boards
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ParseBoard decodes and validates a board document.
func ParseBoard(data []byte) (Board, error) {
	// Decode into a loose shape first so "columns": null and a missing
	// "columns" key can be told apart from an empty array.
	var shape struct {
		Columns json.RawMessage `json:"columns"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return Board{}, fmt.Errorf("%w: %v", ErrInvalidBoard, err)
	}
	raw := strings.TrimSpace(string(shape.Columns))
	if raw == "" || raw == "null" || !strings.HasPrefix(raw, "[") {
		return Board{}, fmt.Errorf("%w: columns must be an array", ErrInvalidBoard)
	}

	var b Board
	if err := json.Unmarshal(data, &b); err != nil {
		return Board{}, fmt.Errorf("%w: %v", ErrInvalidBoard, err)
	}
	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b.Normalize(), nil
}

// Validate checks the structural rules every stored board must satisfy.
func (b Board) Validate() error {
	switch {
	case b.SchemaVersion < 0 || b.SchemaVersion > BoardSchemaVersion:
		return fmt.Errorf("%w: unsupported schemaVersion %d", ErrInvalidBoard, b.SchemaVersion)
	case strings.TrimSpace(b.ID) == "":
		return fmt.Errorf("%w: id is required", ErrInvalidBoard)
	case strings.TrimSpace(b.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidBoard)
	case b.Columns == nil:
		return fmt.Errorf("%w: columns must be an array", ErrInvalidBoard)
	}
	for i, c := range b.Columns {
		if strings.TrimSpace(c.ID) == "" {
			return fmt.Errorf("%w: column %d has no id", ErrInvalidBoard, i)
		}
	}
	return nil
}

// Normalize stamps the schema version and replaces null task lists with
// empty ones so clients always see arrays.
func (b Board) Normalize() Board {
	b.SchemaVersion = BoardSchemaVersion
	cols := make([]Column, len(b.Columns))
	for i, c := range b.Columns {
		if c.Tasks == nil {
			c.Tasks = []Task{}
		}
		cols[i] = c
	}
	b.Columns = cols
	return b
}

// FindTask returns the column index and task index of taskID.
func (b Board) FindTask(taskID string) (col, idx int, ok bool) {
	for ci, c := range b.Columns {
		for ti, t := range c.Tasks {
			if t.ID == taskID {
				return ci, ti, true
			}
		}
	}
	return -1, -1, false
}

// Clone returns a deep copy so callers can mutate columns and tasks freely.
func (b Board) Clone() Board {
	out := b
	out.Extra = maps.Clone(b.Extra)
	out.Columns = make([]Column, len(b.Columns))
	for i, c := range b.Columns {
		nc := c
		nc.Extra = maps.Clone(c.Extra)
		nc.Tasks = make([]Task, len(c.Tasks))
		for j, t := range c.Tasks {
			nt := t
			nt.Extra = maps.Clone(t.Extra)
			if t.Tags != nil {
				nt.Tags = append([]string(nil), t.Tags...)
			}
			if t.Subtasks != nil {
				nt.Subtasks = make([]Subtask, len(t.Subtasks))
				for k, st := range t.Subtasks {
					st.Extra = maps.Clone(st.Extra)
					nt.Subtasks[k] = st
				}
			}
			if t.Hours != nil {
				h := *t.Hours
				nt.Hours = &h
			}
			nc.Tasks[j] = nt
		}
		out.Columns[i] = nc
	}
	return out
}
