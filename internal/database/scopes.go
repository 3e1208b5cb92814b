package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/opsboard/internal/models"
)

// BoardOrder sorts tasks by status rank, then position, then id.
func BoardOrder(db *gorm.DB) *gorm.DB {
	return db.Order(statusRankExpr).Order("tasks.position ASC").Order("tasks.id ASC")
}

// ColumnOrder sorts tasks within one status column.
func ColumnOrder(db *gorm.DB) *gorm.DB {
	return db.Order("tasks.position ASC").Order("tasks.id ASC")
}

// WithStatus restricts a query to one status column.
func WithStatus(status models.TaskStatus) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tasks.status = ?", status)
	}
}

const statusRankExpr = "CASE tasks.status " +
	"WHEN '" + string(models.TaskStatusTodo) + "' THEN 0 " +
	"WHEN '" + string(models.TaskStatusInProgress) + "' THEN 1 " +
	"WHEN '" + string(models.TaskStatusDone) + "' THEN 2 " +
	"ELSE 3 END"
