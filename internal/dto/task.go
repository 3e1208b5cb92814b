package dto

import (
	"github.com/yukikurage/opsboard/internal/models"
)

// CreateTaskRequest is the body of POST /api/tasks. A nil Position appends
// the task to the end of its status column.
type CreateTaskRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     *models.Date        `json:"due_date"`
	Position    *int                `json:"position,omitempty"`
}

// UpdateTaskRequest is the body of PATCH /api/tasks/:id. Nil fields are left
// unchanged; ClearDueDate removes the due date.
type UpdateTaskRequest struct {
	Title        *string              `json:"title,omitempty"`
	Description  *string              `json:"description,omitempty"`
	Status       *models.TaskStatus   `json:"status,omitempty"`
	Priority     *models.TaskPriority `json:"priority,omitempty"`
	DueDate      *models.Date         `json:"due_date,omitempty"`
	ClearDueDate bool                 `json:"clear_due_date,omitempty"`
	Position     *int                 `json:"position,omitempty"`
}

// ReorderItem assigns a task to a column and a position within it.
type ReorderItem struct {
	ID       uint64            `json:"id"`
	Status   models.TaskStatus `json:"status"`
	Position int               `json:"position"`
}

// ReorderRequest is the body of PUT /api/tasks/reorder.
type ReorderRequest struct {
	Items []ReorderItem `json:"items"`
}

// ReorderResponse reports how many tasks the batch touched.
type ReorderResponse struct {
	Updated int `json:"updated"`
}

// TaskListResponse wraps the full board listing.
type TaskListResponse struct {
	Tasks []models.Task `json:"tasks"`
}

// ToTaskListResponse never returns a nil slice so clients always see "tasks": [].
func ToTaskListResponse(tasks []models.Task) TaskListResponse {
	if tasks == nil {
		tasks = []models.Task{}
	}
	return TaskListResponse{Tasks: tasks}
}
