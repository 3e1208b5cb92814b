package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/opsboard/internal/constants"
	"github.com/yukikurage/opsboard/internal/dto"
	"github.com/yukikurage/opsboard/internal/models"
	"github.com/yukikurage/opsboard/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrTitleRequired      = errors.New("title is required")
	ErrTitleTooLong       = errors.New("title is too long")
	ErrInvalidStatus      = errors.New("status must be one of TODO, IN_PROGRESS, DONE")
	ErrInvalidPriority    = errors.New("priority must be one of LOW, MEDIUM, HIGH")
	ErrInvalidPosition    = errors.New("position must not be negative")
	ErrEmptyReorder       = errors.New("reorder batch is empty")
	ErrDuplicateReorderID = errors.New("reorder batch lists a task more than once")
)

// FieldOf names the request field a validation error refers to. It returns
// "" for errors that are not validation failures.
func FieldOf(err error) string {
	switch {
	case errors.Is(err, ErrTitleRequired), errors.Is(err, ErrTitleTooLong):
		return "title"
	case errors.Is(err, ErrInvalidStatus):
		return "status"
	case errors.Is(err, ErrInvalidPriority):
		return "priority"
	case errors.Is(err, ErrInvalidPosition):
		return "position"
	case errors.Is(err, ErrEmptyReorder), errors.Is(err, ErrDuplicateReorderID):
		return "items"
	default:
		return ""
	}
}

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Status *models.TaskStatus
}

// CreateTaskInput represents input for creating a task. A nil Position
// appends the task to its column.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	DueDate     *models.Date
	Position    *int
}

// UpdateTaskInput represents input for updating a task
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Status       *models.TaskStatus
	Priority     *models.TaskPriority
	DueDate      *models.Date
	ClearDueDate bool
	Position     *int
}

// ListTasks returns the board in (status, position, id) order
func (s *TaskService) ListTasks(ctx context.Context, input ListTasksInput) ([]models.Task, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	tasks, err := s.taskRepo.List(ctx, repository.TaskFilter{Status: input.Status})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a single task
func (s *TaskService) GetTask(ctx context.Context, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask validates and stores a new task
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	title, err := validateTitle(input.Title)
	if err != nil {
		return nil, err
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	var position int
	if input.Position != nil {
		if *input.Position < 0 {
			return nil, ErrInvalidPosition
		}
		position = *input.Position
	} else {
		count, err := s.taskRepo.CountByStatus(ctx, input.Status)
		if err != nil {
			return nil, fmt.Errorf("failed to count tasks: %w", err)
		}
		position = int(count)
	}

	task := &models.Task{
		Title:       title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		Position:    position,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// UpdateTask applies the provided fields to an existing task
func (s *TaskService) UpdateTask(ctx context.Context, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title, err := validateTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Position != nil {
		if *input.Position < 0 {
			return nil, ErrInvalidPosition
		}
		task.Position = *input.Position
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// DeleteTask permanently removes a task
func (s *TaskService) DeleteTask(ctx context.Context, taskID uint64) error {
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// ReorderTasks validates a position batch and applies it atomically
func (s *TaskService) ReorderTasks(ctx context.Context, items []dto.ReorderItem) error {
	if len(items) == 0 {
		return ErrEmptyReorder
	}

	seen := make(map[uint64]struct{}, len(items))
	for _, item := range items {
		if _, exists := seen[item.ID]; exists {
			return ErrDuplicateReorderID
		}
		seen[item.ID] = struct{}{}

		if !item.Status.Valid() {
			return ErrInvalidStatus
		}
		if item.Position < 0 {
			return ErrInvalidPosition
		}
	}

	if err := s.taskRepo.Reorder(ctx, items); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to reorder tasks: %w", err)
	}
	return nil
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrTitleRequired
	}
	if len(title) > constants.MaxTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}
