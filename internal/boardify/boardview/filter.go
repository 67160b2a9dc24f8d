package boardview

import (
	"net/url"
	"strings"

	"github.com/aussiebroadwan/boardify/internal/boardify/domain"
)

// Filter narrows the tasks shown on a board. Zero-valued fields match
// everything; string comparisons ignore case.
type Filter struct {
	Type        string
	Assignee    string
	Priority    string
	Difficulty  string
	Sprint      string
	Tag         string
	HasSubtasks *bool
	Query       string // free text over title and description
}

// FilterFromQuery reads a Filter from URL query parameters.
func FilterFromQuery(q url.Values) Filter {
	f := Filter{
		Type:       strings.TrimSpace(q.Get("type")),
		Assignee:   strings.TrimSpace(q.Get("assignee")),
		Priority:   strings.TrimSpace(q.Get("priority")),
		Difficulty: strings.TrimSpace(q.Get("difficulty")),
		Sprint:     strings.TrimSpace(q.Get("sprint")),
		Tag:        strings.TrimSpace(q.Get("tag")),
		Query:      strings.TrimSpace(q.Get("q")),
	}
	switch strings.ToLower(q.Get("subtasks")) {
	case "true", "yes", "1":
		v := true
		f.HasSubtasks = &v
	case "false", "no", "0":
		v := false
		f.HasSubtasks = &v
	}
	return f
}

// IsZero reports whether the filter matches every task.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Matches reports whether t passes every set criterion.
func (f Filter) Matches(t domain.Task) bool {
	if !matchField(f.Type, t.Type) ||
		!matchField(f.Assignee, t.Assignee) ||
		!matchField(f.Priority, t.Priority) ||
		!matchField(f.Difficulty, t.Difficulty) ||
		!matchField(f.Sprint, t.Sprint) {
		return false
	}

	if f.Tag != "" && !hasTag(t.Tags, f.Tag) {
		return false
	}

	if f.HasSubtasks != nil && (len(t.Subtasks) > 0) != *f.HasSubtasks {
		return false
	}

	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) {
			return false
		}
	}
	return true
}

// FilterColumns returns a copy of the board's columns holding only the
// tasks that match f. Column order and empty columns are preserved.
func FilterColumns(b domain.Board, f Filter) []domain.Column {
	out := make([]domain.Column, len(b.Columns))
	for i, c := range b.Columns {
		tasks := make([]domain.Task, 0, len(c.Tasks))
		for _, t := range c.Tasks {
			if f.Matches(t) {
				tasks = append(tasks, t)
			}
		}
		out[i] = domain.Column{ID: c.ID, Name: c.Name, Tasks: tasks}
	}
	return out
}

func matchField(want, have string) bool {
	return want == "" || strings.EqualFold(want, have)
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if strings.EqualFold(tag, want) {
			return true
		}
	}
	return false
}
