package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/opsboard/internal/dto"
	apierrors "github.com/yukikurage/opsboard/internal/errors"
	"github.com/yukikurage/opsboard/internal/middleware"
	"github.com/yukikurage/opsboard/internal/models"
	"github.com/yukikurage/opsboard/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the board ordered by status, position and id.
// Can filter by status
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var input services.ListTasksInput
	if raw := c.Query("status"); raw != "" {
		status := models.TaskStatus(raw)
		input.Status = &status
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), input)
	if err != nil {
		respondTaskError(c, err, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks))
}

// GetTask returns a specific task by ID
// Task is already loaded by LoadTask middleware
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	c.JSON(http.StatusOK, task)
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Position:    req.Position,
	})
	if err != nil {
		respondTaskError(c, err, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask applies the fields present in the request body
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.taskService.UpdateTask(c.Request.Context(), task.ID, services.UpdateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		Priority:     req.Priority,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
		Position:     req.Position,
	})
	if err != nil {
		respondTaskError(c, err, "Failed to update task")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteTask permanently removes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), task.ID); err != nil {
		respondTaskError(c, err, "Failed to delete task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// ReorderTasks applies a batch of (id, status, position) assignments in one
// transaction. Either every item is written or none is.
func (h *TaskHandler) ReorderTasks(c *gin.Context) {
	var req dto.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.taskService.ReorderTasks(c.Request.Context(), req.Items); err != nil {
		respondTaskError(c, err, "Failed to reorder tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ReorderResponse{Updated: len(req.Items)})
}

func respondTaskError(c *gin.Context, err error, fallback string) {
	if field := services.FieldOf(err); field != "" {
		apierrors.InvalidField(c, field, err.Error())
		return
	}
	if errors.Is(err, services.ErrTaskNotFound) {
		apierrors.NotFound(c, "Task not found")
		return
	}
	_ = c.Error(err)
	apierrors.InternalError(c, fallback)
}
