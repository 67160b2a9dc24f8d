package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/boardify/internal/boardify/domain"
	"github.com/aussiebroadwan/boardify/internal/boardify/store"
	"github.com/aussiebroadwan/boardify/pkg/slogx"
)

// MaxTaskTypeLength bounds task type names.
const MaxTaskTypeLength = 64

// TaskTypeService maintains the shared, append-only vocabulary of task types.
type TaskTypeService struct {
	Store store.Store
	Now   func() time.Time
}

// List returns all task type names sorted alphabetically.
func (s *TaskTypeService) List(ctx context.Context) ([]string, error) {
	types, err := s.Store.TaskTypes().ListTaskTypes(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list task types", slog.Any("error", err))
		return nil, err
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Name
	}
	return names, nil
}

// Create adds name to the vocabulary. Existing names are accepted silently.
func (s *TaskTypeService) Create(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxTaskTypeLength {
		return "", ErrInvalidTaskType
	}

	err := s.Store.TaskTypes().CreateTaskType(ctx, domain.TaskType{Name: name, CreatedAt: nowFrom(s.Now)})
	if err != nil {
		slogx.FromContext(ctx).Error("failed to create task type", slog.Any("error", err))
		return "", err
	}
	return name, nil
}
