package boardview

import (
	"math"
	"strings"
	"time"

	"github.com/aussiebroadwan/boardify/internal/boardify/domain"
)

// UnassignedBucket collects hours of tasks without an assignee.
const UnassignedBucket = "Unassigned"

// CompletionMode selects the denominator of the completion percentage.
type CompletionMode string

const (
	// CompletionOfTotal is done / all tasks on the board.
	CompletionOfTotal CompletionMode = "total"
	// CompletionOfTracked is done / (done + todo), ignoring in-progress
	// columns.
	CompletionOfTracked CompletionMode = "tracked"
)

// ParseCompletionMode falls back to CompletionOfTotal for unknown input.
func ParseCompletionMode(s string) CompletionMode {
	if CompletionMode(strings.ToLower(s)) == CompletionOfTracked {
		return CompletionOfTracked
	}
	return CompletionOfTotal
}

// IsDoneColumn reports whether a column collects finished tasks.
func IsDoneColumn(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), "done")
}

// IsTodoColumn reports whether a column collects tasks not yet started.
func IsTodoColumn(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(n)
	return n == "todo"
}

// WorkloadByAssignee sums task hours per assignee. Tasks without hours
// count as zero but still create the bucket.
func WorkloadByAssignee(cols []domain.Column) map[string]float64 {
	out := make(map[string]float64)
	for _, c := range cols {
		for _, t := range c.Tasks {
			who := strings.TrimSpace(t.Assignee)
			if who == "" {
				who = UnassignedBucket
			}
			var h float64
			if t.Hours != nil && *t.Hours > 0 {
				h = *t.Hours
			}
			out[who] += h
		}
	}
	return out
}

// TypeCounts counts tasks per type. Untyped tasks are not counted.
func TypeCounts(cols []domain.Column) map[string]int {
	out := make(map[string]int)
	for _, c := range cols {
		for _, t := range c.Tasks {
			if t.Type == "" {
				continue
			}
			out[t.Type]++
		}
	}
	return out
}

// Completion returns the rounded completion percentage (0..100). Boards
// with nothing to count report 0.
func Completion(cols []domain.Column, mode CompletionMode) int {
	var done, todo, total int
	for _, c := range cols {
		n := len(c.Tasks)
		total += n
		switch {
		case IsDoneColumn(c.Name):
			done += n
		case IsTodoColumn(c.Name):
			todo += n
		}
	}

	denom := total
	if mode == CompletionOfTracked {
		denom = done + todo
	}
	if denom == 0 {
		return 0
	}
	return int(math.Round(float64(done) * 100 / float64(denom)))
}

// Overdue counts tasks outside the Done column whose due date has passed.
// Date-only due dates are overdue from the following day.
func Overdue(cols []domain.Column, now time.Time) int {
	var n int
	for _, c := range cols {
		if IsDoneColumn(c.Name) {
			continue
		}
		for _, t := range c.Tasks {
			due, ok := parseDue(t.DueDate)
			if ok && due.Before(now) {
				n++
			}
		}
	}
	return n
}

func parseDue(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.Add(24 * time.Hour), true
	}
	return time.Time{}, false
}

// Stats is the analytics summary of a (filtered) board.
type Stats struct {
	TotalTasks int                `json:"totalTasks"`
	DoneTasks  int                `json:"doneTasks"`
	TodoTasks  int                `json:"todoTasks"`
	Completion int                `json:"completion"`
	Mode       CompletionMode     `json:"completionMode"`
	Overdue    int                `json:"overdue"`
	Workload   map[string]float64 `json:"workload"`
	TypeCounts map[string]int     `json:"typeCounts"`
}

// Summarize computes Stats over the tasks of b that match f.
func Summarize(b domain.Board, f Filter, mode CompletionMode, now time.Time) Stats {
	cols := FilterColumns(b, f)

	s := Stats{
		Mode:       mode,
		Completion: Completion(cols, mode),
		Overdue:    Overdue(cols, now),
		Workload:   WorkloadByAssignee(cols),
		TypeCounts: TypeCounts(cols),
	}
	for _, c := range cols {
		s.TotalTasks += len(c.Tasks)
		switch {
		case IsDoneColumn(c.Name):
			s.DoneTasks += len(c.Tasks)
		case IsTodoColumn(c.Name):
			s.TodoTasks += len(c.Tasks)
		}
	}
	return s
}
