package board

import (
	"cmp"
	"slices"

	"github.com/yukikurage/opsboard/internal/dto"
	"github.com/yukikurage/opsboard/internal/models"
)

// Column is one kanban lane.
type Column struct {
	Status models.TaskStatus
	Tasks  []models.Task
}

func compareInColumn(a, b models.Task) int {
	if c := cmp.Compare(a.Position, b.Position); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// GroupByStatus partitions tasks by status, each column sorted by
// (position, id). Every known status has an entry. Tasks with an unknown
// status are left out.
func GroupByStatus(tasks []models.Task) map[models.TaskStatus][]models.Task {
	groups := make(map[models.TaskStatus][]models.Task, len(models.TaskStatuses))
	for _, status := range models.TaskStatuses {
		groups[status] = []models.Task{}
	}
	for _, task := range tasks {
		if !task.Status.Valid() {
			continue
		}
		groups[task.Status] = append(groups[task.Status], task)
	}
	for status := range groups {
		slices.SortFunc(groups[status], compareInColumn)
	}
	return groups
}

// FlattenOrdered returns every task with a known status sorted by
// (status rank, position, id).
func FlattenOrdered(tasks []models.Task) []models.Task {
	ordered := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Status.Valid() {
			ordered = append(ordered, task)
		}
	}
	slices.SortFunc(ordered, func(a, b models.Task) int {
		rankA, _ := a.Status.Rank()
		rankB, _ := b.Status.Rank()
		if c := cmp.Compare(rankA, rankB); c != 0 {
			return c
		}
		return compareInColumn(a, b)
	})
	return ordered
}

// Store is the in-memory task list. It is not safe for concurrent use; the
// Board serializes access to it.
type Store struct {
	tasks []models.Task
}

func NewStore(tasks []models.Task) *Store {
	s := &Store{}
	s.Replace(tasks)
	return s
}

// Tasks returns a copy of the stored tasks in arrival order.
func (s *Store) Tasks() []models.Task {
	return slices.Clone(s.tasks)
}

// Replace swaps in a freshly fetched list.
func (s *Store) Replace(tasks []models.Task) {
	s.tasks = slices.Clone(tasks)
	if s.tasks == nil {
		s.tasks = []models.Task{}
	}
}

func (s *Store) index(id uint64) int {
	return slices.IndexFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
}

func (s *Store) Find(id uint64) (models.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return models.Task{}, false
	}
	return s.tasks[i], true
}

// ColumnLen counts the tasks currently in status.
func (s *Store) ColumnLen(status models.TaskStatus) int {
	n := 0
	for _, task := range s.tasks {
		if task.Status == status {
			n++
		}
	}
	return n
}

// Snapshot copies the current list for a later Restore.
func (s *Store) Snapshot() []models.Task {
	return s.Tasks()
}

func (s *Store) Restore(snapshot []models.Task) {
	s.Replace(snapshot)
}

// ApplyBatch moves every listed task to its new status and position. Ids
// that are not in the store are ignored.
func (s *Store) ApplyBatch(batch []dto.ReorderItem) {
	for _, item := range batch {
		if i := s.index(item.ID); i >= 0 {
			s.tasks[i].Status = item.Status
			s.tasks[i].Position = item.Position
		}
	}
}

// SetStatus changes a task's status and keeps its position.
func (s *Store) SetStatus(id uint64, status models.TaskStatus) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Status = status
	return true
}

// Put replaces the stored task with the same id.
func (s *Store) Put(task models.Task) bool {
	i := s.index(task.ID)
	if i < 0 {
		return false
	}
	s.tasks[i] = task
	return true
}

func (s *Store) Remove(id uint64) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	return true
}
