package repository

import (
	"context"
	"fmt"

	"github.com/yukikurage/opsboard/internal/database"
	"github.com/yukikurage/opsboard/internal/dto"
	"github.com/yukikurage/opsboard/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks ordered by status rank, position and id
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	query := r.db.WithContext(ctx).Model(&models.Task{})

	if filter.Status != nil {
		query = query.Scopes(database.WithStatus(*filter.Status), database.ColumnOrder)
	} else {
		query = query.Scopes(database.BoardOrder)
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update saves every field of a task
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// Delete permanently deletes a task
func (r *GormTaskRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&models.Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByStatus counts the tasks in one status column
func (r *GormTaskRepository) CountByStatus(ctx context.Context, status models.TaskStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Scopes(database.WithStatus(status)).
		Count(&count).Error
	return count, err
}

// Reorder applies every item inside one transaction. Existence is checked
// up front so a batch naming a missing task writes nothing.
func (r *GormTaskRepository) Reorder(ctx context.Context, items []dto.ReorderItem) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]uint64, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var found int64
		if err := tx.Model(&models.Task{}).Where("id IN ?", ids).Count(&found).Error; err != nil {
			return err
		}
		if int(found) != len(ids) {
			return fmt.Errorf("reorder references %d unknown task(s): %w", len(ids)-int(found), gorm.ErrRecordNotFound)
		}

		for _, item := range items {
			err := tx.Model(&models.Task{}).
				Where("id = ?", item.ID).
				Updates(map[string]any{
					"status":   item.Status,
					"position": item.Position,
				}).Error
			if err != nil {
				return fmt.Errorf("task %d: %w", item.ID, err)
			}
		}
		return nil
	})
}
