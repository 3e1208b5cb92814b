package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/opsboard/internal/constants"
	apierrors "github.com/yukikurage/opsboard/internal/errors"
	"github.com/yukikurage/opsboard/internal/models"
	"github.com/yukikurage/opsboard/internal/services"
)

// LoadTask resolves the :id parameter and stores the task in the context.
// Unknown ids answer 404 before the handler runs.
func LoadTask(taskService *services.TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.InvalidField(c, "id", "Invalid task ID")
			c.Abort()
			return
		}

		task, err := taskService.GetTask(c.Request.Context(), taskID)
		if err != nil {
			if errors.Is(err, services.ErrTaskNotFound) {
				apierrors.NotFound(c, "Task not found")
			} else {
				apierrors.InternalError(c, "Failed to fetch task")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTask, task)
		c.Next()
	}
}

// GetTask retrieves the task loaded by LoadTask
func GetTask(c *gin.Context) (*models.Task, bool) {
	value, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return nil, false
	}
	task, ok := value.(*models.Task)
	return task, ok
}
