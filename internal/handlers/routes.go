package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/opsboard/internal/middleware"
	"github.com/yukikurage/opsboard/internal/services"
)

// RegisterRoutes mounts the health check, auth and task routes. When
// authHandler is nil the task routes are public and no auth routes exist;
// otherwise the caller must have installed the sessions middleware.
func RegisterRoutes(r *gin.Engine, taskService *services.TaskService, authHandler *AuthHandler) {
	taskHandler := NewTaskHandler(taskService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "opsboard API is running",
		})
	})

	api := r.Group("/api")

	tasks := api.Group("/tasks")
	if authHandler != nil {
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}
		tasks.Use(middleware.RequireAuth())
	}

	loadTask := middleware.LoadTask(taskService)
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.PUT("/reorder", taskHandler.ReorderTasks)
		tasks.GET("/:id", loadTask, taskHandler.GetTask)
		tasks.PATCH("/:id", loadTask, taskHandler.UpdateTask)
		tasks.DELETE("/:id", loadTask, taskHandler.DeleteTask)
	}
}
