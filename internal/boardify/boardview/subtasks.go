package boardview

import (
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/boardify/internal/boardify/domain"
)

var (
	ErrTaskNotFound   = errors.New("boardview: task not found")
	ErrInvalidSubtask = errors.New("boardview: invalid subtask")
)

// SetSubtasks replaces the subtasks of taskID and returns the updated board.
// When the new list is non-empty and fully completed the task moves to the
// end of the column named "Done" and gets a completion time. Boards without
// such a column are left in place. The input board is not modified.
func SetSubtasks(b domain.Board, taskID string, subtasks []domain.Subtask, now time.Time) (domain.Board, bool, error) {
	for _, s := range subtasks {
		if strings.TrimSpace(s.ID) == "" {
			return b, false, ErrInvalidSubtask
		}
	}

	out := b.Clone()
	ci, ti, ok := out.FindTask(taskID)
	if !ok {
		return b, false, ErrTaskNotFound
	}

	task := out.Columns[ci].Tasks[ti]
	task.Subtasks = append([]domain.Subtask(nil), subtasks...)
	out.Columns[ci].Tasks[ti] = task

	if !allCompleted(subtasks) || IsDoneColumn(out.Columns[ci].Name) {
		return out, false, nil
	}

	done := doneColumnIndex(out)
	if done < 0 {
		return out, false, nil
	}

	if task.CompletedAt == "" {
		task.CompletedAt = now.UTC().Format(time.RFC3339)
	}
	src := out.Columns[ci].Tasks
	out.Columns[ci].Tasks = append(src[:ti:ti], src[ti+1:]...)
	out.Columns[done].Tasks = append(out.Columns[done].Tasks, task)
	return out, true, nil
}

func allCompleted(subtasks []domain.Subtask) bool {
	if len(subtasks) == 0 {
		return false
	}
	for _, s := range subtasks {
		if !s.Completed {
			return false
		}
	}
	return true
}

func doneColumnIndex(b domain.Board) int {
	for i, c := range b.Columns {
		if IsDoneColumn(c.Name) {
			return i
		}
	}
	return -1
}
