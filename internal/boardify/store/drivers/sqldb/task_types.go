package sqldb

import (
	"context"

	"github.com/aussiebroadwan/boardify/internal/boardify/domain"
)

type taskTypesRepo struct {
	c conn
}

func (r *taskTypesRepo) ListTaskTypes(ctx context.Context) ([]domain.TaskType, error) {
	rows, err := r.c.query(ctx, `SELECT name, created_at FROM task_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.TaskType{}
	for rows.Next() {
		var tt domain.TaskType
		if err := rows.Scan(&tt.Name, &tt.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, tt)
	}
	return out, rows.Err()
}

func (r *taskTypesRepo) CreateTaskType(ctx context.Context, tt domain.TaskType) error {
	_, err := r.c.exec(ctx,
		`INSERT INTO task_types (name, created_at) VALUES (?, ?) ON CONFLICT (name) DO NOTHING`,
		tt.Name, tt.CreatedAt.UTC(),
	)
	return err
}
