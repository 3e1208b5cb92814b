package board

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/yukikurage/opsboard/internal/dto"
	"github.com/yukikurage/opsboard/internal/models"
)

var errBackend = errors.New("backend unavailable")

// fakeAPI is an in-memory TaskAPI. ListTasks answers in reverse id order so
// callers cannot rely on backend ordering.
type fakeAPI struct {
	mu     sync.Mutex
	tasks  map[uint64]models.Task
	nextID uint64

	listErr    error
	createErr  error
	updateErr  error
	deleteErr  error
	reorderErr error

	// partialReorder applies the first batch item before failing.
	partialReorder bool

	onReorder func(items []dto.ReorderItem)
	onUpdate  func(id uint64, req dto.UpdateTaskRequest)

	listCalls int
	creates   []dto.CreateTaskRequest
	updates   []dto.UpdateTaskRequest
	deletes   []uint64
	reorders  [][]dto.ReorderItem
}

func newFakeAPI(tasks ...models.Task) *fakeAPI {
	f := &fakeAPI{tasks: map[uint64]models.Task{}}
	for _, t := range tasks {
		f.tasks[t.ID] = t
		f.nextID = max(f.nextID, t.ID)
	}
	return f
}

func (f *fakeAPI) ListTasks(ctx context.Context) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b models.Task) int {
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		default:
			return 0
		}
	})
	return out, nil
}

func (f *fakeAPI) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, req)
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	task := models.Task{
		ID:          f.nextID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	}
	if req.Position != nil {
		task.Position = *req.Position
	}
	f.tasks[task.ID] = task
	return &task, nil
}

func (f *fakeAPI) UpdateTask(ctx context.Context, id uint64, req dto.UpdateTaskRequest) (*models.Task, error) {
	if f.onUpdate != nil {
		f.onUpdate(id, req)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, req)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	task, ok := f.tasks[id]
	if !ok {
		return nil, errors.New("not found")
	}
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.ClearDueDate {
		task.DueDate = nil
	} else if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Position != nil {
		task.Position = *req.Position
	}
	f.tasks[id] = task
	return &task, nil
}

func (f *fakeAPI) DeleteTask(ctx context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.tasks[id]; !ok {
		return errors.New("not found")
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeAPI) ReorderTasks(ctx context.Context, items []dto.ReorderItem) error {
	if f.onReorder != nil {
		f.onReorder(items)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reorders = append(f.reorders, slices.Clone(items))
	if f.reorderErr != nil {
		if f.partialReorder && len(items) > 0 {
			f.apply(items[:1])
		}
		return f.reorderErr
	}
	f.apply(items)
	return nil
}

func (f *fakeAPI) apply(items []dto.ReorderItem) {
	for _, item := range items {
		if task, ok := f.tasks[item.ID]; ok {
			task.Status = item.Status
			task.Position = item.Position
			f.tasks[item.ID] = task
		}
	}
}

func (f *fakeAPI) networkCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.creates) + len(f.updates) + len(f.deletes) + len(f.reorders)
}

// recorder collects notifications.
type recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

func (r *recorder) all() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.items)
}
