package domain

import "time"

type TaskType struct {
	Name      string
	CreatedAt time.Time
}
