package board

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/yukikurage/opsboard/internal/constants"
	"github.com/yukikurage/opsboard/internal/dto"
	"github.com/yukikurage/opsboard/internal/models"
)

type EditorState int

const (
	EditorClosed EditorState = iota
	EditorOpen
	EditorSubmitting
)

func (s EditorState) String() string {
	switch s {
	case EditorClosed:
		return "closed"
	case EditorOpen:
		return "open"
	case EditorSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

type EditorMode int

const (
	ModeCreate EditorMode = iota
	ModeEdit
)

// Form holds the editable fields as entered. DueDate is YYYY-MM-DD or empty.
type Form struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	DueDate     string
}

// Validate checks a form without touching the network. The result is empty
// when the form may be submitted.
func Validate(form Form) FieldErrors {
	errs := FieldErrors{}

	title := strings.TrimSpace(form.Title)
	switch {
	case title == "":
		errs["title"] = "title is required"
	case len(title) > constants.MaxTitleLength:
		errs["title"] = "title is too long"
	}

	switch {
	case form.Status == "":
		errs["status"] = "status is required"
	case !form.Status.Valid():
		errs["status"] = "unknown status " + string(form.Status)
	}

	switch {
	case form.Priority == "":
		errs["priority"] = "priority is required"
	case !form.Priority.Valid():
		errs["priority"] = "unknown priority " + string(form.Priority)
	}

	if due := strings.TrimSpace(form.DueDate); due != "" {
		if _, err := time.Parse(models.DateLayout, due); err != nil {
			errs["due_date"] = "due date must be a calendar date (YYYY-MM-DD)"
		}
	}

	return errs
}

// Editor is the create/edit form. It moves Closed -> Open -> Submitting and
// back to Closed on success or Cancel. A failed submit returns to Open so
// the same form can be sent again.
type Editor struct {
	board *Board

	mu        sync.Mutex
	state     EditorState
	mode      EditorMode
	taskID    uint64
	form      Form
	fieldErrs FieldErrors
}

// OpenCreate starts a new task in status with MEDIUM priority.
func (e *Editor) OpenCreate(status models.TaskStatus) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == EditorSubmitting {
		return ErrEditorBusy
	}

	e.state = EditorOpen
	e.mode = ModeCreate
	e.taskID = 0
	e.form = Form{Status: status, Priority: models.TaskPriorityMedium}
	e.fieldErrs = nil
	return nil
}

// OpenEdit starts editing a stored task with its current values.
func (e *Editor) OpenEdit(id uint64) error {
	task, ok := e.board.Task(id)
	if !ok {
		return ErrUnknownTask
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == EditorSubmitting {
		return ErrEditorBusy
	}

	form := Form{
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
	}
	if task.DueDate != nil {
		form.DueDate = task.DueDate.String()
	}

	e.state = EditorOpen
	e.mode = ModeEdit
	e.taskID = id
	e.form = form
	e.fieldErrs = nil
	return nil
}

func (e *Editor) State() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Mode reports whether the open form creates or edits, and the edited id.
func (e *Editor) Mode() (EditorMode, uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode, e.taskID
}

func (e *Editor) Form() Form {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form
}

// SetForm replaces the entered values.
func (e *Editor) SetForm(form Form) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.state {
	case EditorOpen:
		e.form = form
		return nil
	case EditorSubmitting:
		return ErrEditorBusy
	default:
		return ErrEditorClosed
	}
}

// Errors returns the field errors of the last rejected submit.
func (e *Editor) Errors() FieldErrors {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(FieldErrors, len(e.fieldErrs))
	for k, v := range e.fieldErrs {
		out[k] = v
	}
	return out
}

// Cancel discards the form.
func (e *Editor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
}

func (e *Editor) reset() {
	e.state = EditorClosed
	e.mode = ModeCreate
	e.taskID = 0
	e.form = Form{}
	e.fieldErrs = nil
}

// Submit validates the form and sends it. Invalid input returns a
// ValidationError and keeps the form open without calling the API. An API
// failure keeps the form open, raises a retryable notification and returns a
// WriteError. Success refetches the board and closes the form. Editing a
// task that has left the board closes the form and returns ErrUnknownTask.
func (e *Editor) Submit(ctx context.Context) error {
	e.mu.Lock()
	switch e.state {
	case EditorClosed:
		e.mu.Unlock()
		return ErrEditorClosed
	case EditorSubmitting:
		e.mu.Unlock()
		return ErrEditorBusy
	}

	if errs := Validate(e.form); len(errs) > 0 {
		e.fieldErrs = errs
		e.mu.Unlock()
		return &ValidationError{Fields: errs}
	}

	e.fieldErrs = nil
	e.state = EditorSubmitting
	form, mode, id := e.form, e.mode, e.taskID
	e.mu.Unlock()

	var err error
	if mode == ModeEdit {
		err = e.submitEdit(ctx, id, form)
	} else {
		err = e.submitCreate(ctx, form)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	var writeErr *WriteError
	if errors.As(err, &writeErr) {
		e.state = EditorOpen
		return err
	}
	e.reset()
	return err
}

func (e *Editor) submitCreate(ctx context.Context, form Form) error {
	b := e.board
	title, due := normalize(form)

	b.mu.Lock()
	position := b.store.ColumnLen(form.Status)
	b.mu.Unlock()

	_, err := b.api.CreateTask(ctx, dto.CreateTaskRequest{
		Title:       title,
		Description: form.Description,
		Status:      form.Status,
		Priority:    form.Priority,
		DueDate:     due,
		Position:    &position,
	})
	return b.reconcile(ctx, nil, OpCreate, err, true)
}

func (e *Editor) submitEdit(ctx context.Context, id uint64, form Form) error {
	b := e.board
	title, due := normalize(form)

	snapshot, applied := b.applyOptimistic(func(s *Store) bool {
		task, ok := s.Find(id)
		if !ok {
			return false
		}
		task.Title = title
		task.Description = form.Description
		task.Status = form.Status
		task.Priority = form.Priority
		task.DueDate = due
		return s.Put(task)
	})
	if !applied {
		return ErrUnknownTask
	}

	req := dto.UpdateTaskRequest{
		Title:       &title,
		Description: &form.Description,
		Status:      &form.Status,
		Priority:    &form.Priority,
	}
	if due != nil {
		req.DueDate = due
	} else {
		req.ClearDueDate = true
	}

	_, err := b.api.UpdateTask(ctx, id, req)
	return b.reconcile(ctx, snapshot, OpUpdate, err, true)
}

// normalize returns the trimmed title and parsed due date of a valid form.
func normalize(form Form) (string, *models.Date) {
	title := strings.TrimSpace(form.Title)
	due := strings.TrimSpace(form.DueDate)
	if due == "" {
		return title, nil
	}
	date, err := models.ParseDate(due)
	if err != nil {
		return title, nil
	}
	return title, &date
}
