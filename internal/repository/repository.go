package repository

import (
	"context"

	"github.com/yukikurage/opsboard/internal/dto"
	"github.com/yukikurage/opsboard/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// List retrieves tasks in board order
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// Update saves every field of a task
	Update(ctx context.Context, task *models.Task) error

	// Delete permanently deletes a task
	Delete(ctx context.Context, id uint64) error

	// CountByStatus counts the tasks in one status column
	CountByStatus(ctx context.Context, status models.TaskStatus) (int64, error)

	// Reorder applies a batch of status/position assignments atomically.
	// If any task in the batch does not exist nothing is written.
	Reorder(ctx context.Context, items []dto.ReorderItem) error
}

// TaskFilter holds filtering options for listing tasks. The zero value
// lists the whole board.
type TaskFilter struct {
	Status *models.TaskStatus
}

// IsZero reports whether the filter selects the whole board.
func (f TaskFilter) IsZero() bool {
	return f.Status == nil
}
