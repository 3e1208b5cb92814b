package board

import (
	"github.com/yukikurage/opsboard/internal/dto"
	"github.com/yukikurage/opsboard/internal/models"
)

// ComputeReindex moves changedID to the end of the target column and
// renumbers every column 0..n-1, keeping each column's prior (position, id)
// order. The batch covers the whole board in display order. ok is false when
// the task is unknown, already in target, or target is not a known status.
func ComputeReindex(tasks []models.Task, changedID uint64, target models.TaskStatus) (batch []dto.ReorderItem, ok bool) {
	if !target.Valid() {
		return nil, false
	}

	var moved *models.Task
	rest := make([]models.Task, 0, len(tasks))
	for i := range tasks {
		if tasks[i].ID == changedID {
			moved = &tasks[i]
			continue
		}
		rest = append(rest, tasks[i])
	}
	if moved == nil || moved.Status == target {
		return nil, false
	}

	columns := GroupByStatus(rest)
	columns[target] = append(columns[target], *moved)

	batch = make([]dto.ReorderItem, 0, len(tasks))
	for _, status := range models.TaskStatuses {
		for position, task := range columns[status] {
			batch = append(batch, dto.ReorderItem{
				ID:       task.ID,
				Status:   status,
				Position: position,
			})
		}
	}
	return batch, true
}
