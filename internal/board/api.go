// Package board holds the client-side task board: an in-memory store of
// tasks, the kanban and checklist projections over it, the column reorder
// protocol and the create/edit form workflow.
package board

import (
	"context"

	"github.com/yukikurage/opsboard/internal/dto"
	"github.com/yukikurage/opsboard/internal/models"
)

// TaskAPI is the remote task backend the board reads from and writes to.
// ListTasks may return tasks in any order. ReorderTasks applies the whole
// batch or none of it.
type TaskAPI interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, id uint64, req dto.UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, id uint64) error
	ReorderTasks(ctx context.Context, items []dto.ReorderItem) error
}
