package board

import (
	"context"
	"sync"

	"github.com/yukikurage/opsboard/internal/dto"
	"github.com/yukikurage/opsboard/internal/models"
)

// Board owns the task store and the gestures that change it. Gestures apply
// their change locally, call the API, then reconcile: a failed write restores
// the pre-gesture snapshot and every finished write ends in a refetch.
//
// The mutex guards local state only and is never held across an API call, so
// projections stay readable while a write is in flight. Overlapping gestures
// each act on the store as it is when they fire; the last refetch wins.
type Board struct {
	api      TaskAPI
	notifier Notifier

	mu       sync.Mutex
	store    *Store
	dragging uint64
	dragSet  bool
	loadErr  error

	editor *Editor
}

// New creates an empty board. A nil notifier logs through logrus.
func New(api TaskAPI, notifier Notifier) *Board {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	b := &Board{
		api:      api,
		notifier: notifier,
		store:    NewStore(nil),
	}
	b.editor = &Editor{board: b}
	return b
}

// Refresh replaces the store with a fresh listing. On failure the store is
// left as it was, LoadError reports the failure and a retryable notification
// is raised.
func (b *Board) Refresh(ctx context.Context) error {
	tasks, err := b.api.ListTasks(ctx)
	if err != nil {
		ferr := &FetchError{Err: err}
		b.mu.Lock()
		b.loadErr = ferr
		b.mu.Unlock()
		b.notifier.Notify(Notification{Level: LevelError, Message: ferr.Error(), Retryable: true})
		return ferr
	}

	b.mu.Lock()
	b.store.Replace(tasks)
	b.loadErr = nil
	b.mu.Unlock()
	return nil
}

// LoadError returns the error of the most recent failed Refresh, or nil once
// a Refresh succeeds.
func (b *Board) LoadError() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loadErr
}

// Tasks returns the stored tasks in arrival order.
func (b *Board) Tasks() []models.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.Tasks()
}

// Task looks up one stored task.
func (b *Board) Task(id uint64) (models.Task, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.Find(id)
}

// Kanban returns one column per status in display order.
func (b *Board) Kanban() []Column {
	groups := GroupByStatus(b.Tasks())
	columns := make([]Column, 0, len(models.TaskStatuses))
	for _, status := range models.TaskStatuses {
		columns = append(columns, Column{Status: status, Tasks: groups[status]})
	}
	return columns
}

// Checklist returns every task ordered by (status rank, position, id).
func (b *Board) Checklist() []models.Task {
	return FlattenOrdered(b.Tasks())
}

// BeginDrag marks id as the task being dragged.
func (b *Board) BeginDrag(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dragging, b.dragSet = id, true
}

// AbortDrag ends a drag without a drop.
func (b *Board) AbortDrag() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dragging, b.dragSet = 0, false
}

// Dragging returns the task being dragged, if any.
func (b *Board) Dragging() (uint64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dragging, b.dragSet
}

// OnDrop ends the current drag on the target column. The drag state is
// cleared before the API call. Dropping on the task's own column, or with no
// drag in progress, changes nothing and makes no call.
func (b *Board) OnDrop(ctx context.Context, target models.TaskStatus) error {
	b.mu.Lock()
	id, ok := b.dragging, b.dragSet
	b.dragging, b.dragSet = 0, false
	b.mu.Unlock()
	if !ok {
		return nil
	}

	var batch []dto.ReorderItem
	snapshot, applied := b.applyOptimistic(func(s *Store) bool {
		var changed bool
		batch, changed = ComputeReindex(s.Tasks(), id, target)
		if changed {
			s.ApplyBatch(batch)
		}
		return changed
	})
	if !applied {
		return nil
	}

	err := b.api.ReorderTasks(ctx, batch)
	return b.reconcile(ctx, snapshot, OpReorder, err, false)
}

// Move drags id onto status in one step.
func (b *Board) Move(ctx context.Context, id uint64, status models.TaskStatus) error {
	if !status.Valid() {
		return &ValidationError{Fields: FieldErrors{"status": "unknown status " + string(status)}}
	}
	if _, ok := b.Task(id); !ok {
		return ErrUnknownTask
	}
	b.BeginDrag(id)
	return b.OnDrop(ctx, status)
}

// SetChecked marks a task DONE (checked) or TODO (unchecked). Only the status
// is sent; the task keeps its position.
func (b *Board) SetChecked(ctx context.Context, id uint64, checked bool) error {
	target := models.TaskStatusTodo
	if checked {
		target = models.TaskStatusDone
	}

	found := false
	snapshot, applied := b.applyOptimistic(func(s *Store) bool {
		task, ok := s.Find(id)
		if !ok {
			return false
		}
		found = true
		if task.Status == target {
			return false
		}
		return s.SetStatus(id, target)
	})
	if !found {
		return ErrUnknownTask
	}
	if !applied {
		return nil
	}

	_, err := b.api.UpdateTask(ctx, id, statusOnly(target))
	return b.reconcile(ctx, snapshot, OpUpdate, err, false)
}

// Delete removes a task.
func (b *Board) Delete(ctx context.Context, id uint64) error {
	snapshot, applied := b.applyOptimistic(func(s *Store) bool {
		return s.Remove(id)
	})
	if !applied {
		return ErrUnknownTask
	}

	err := b.api.DeleteTask(ctx, id)
	return b.reconcile(ctx, snapshot, OpDelete, err, false)
}

func statusOnly(status models.TaskStatus) dto.UpdateTaskRequest {
	return dto.UpdateTaskRequest{Status: &status}
}

// Editor returns the board's create/edit form.
func (b *Board) Editor() *Editor {
	return b.editor
}

// applyOptimistic runs mutate against the store and returns the state from
// before it. applied is false when mutate reported no change.
func (b *Board) applyOptimistic(mutate func(s *Store) bool) (snapshot []models.Task, applied bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	snapshot = b.store.Snapshot()
	if !mutate(b.store) {
		return nil, false
	}
	return snapshot, true
}

// reconcile settles a write. On failure it restores snapshot, notifies and
// returns a WriteError. Either way the board is refetched; a failed
// confirmation refetch is returned when the write itself succeeded.
func (b *Board) reconcile(ctx context.Context, snapshot []models.Task, op string, writeErr error, retryable bool) error {
	if writeErr != nil {
		if snapshot != nil {
			b.mu.Lock()
			b.store.Restore(snapshot)
			b.mu.Unlock()
		}

		werr := &WriteError{Op: op, Err: writeErr}
		b.notifier.Notify(Notification{Level: LevelError, Message: werr.Error(), Retryable: retryable})
		_ = b.Refresh(ctx)
		return werr
	}

	return b.Refresh(ctx)
}
