package board

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/opsboard/internal/models"
)

func newEditorBoard(t *testing.T, tasks ...models.Task) (*Board, *fakeAPI, *recorder) {
	t.Helper()
	api := newFakeAPI(tasks...)
	notes := &recorder{}
	b := New(api, notes)
	require.NoError(t, b.Refresh(context.Background()))
	return b, api, notes
}

func TestValidate(t *testing.T) {
	valid := Form{Title: "Renew passport", Status: models.TaskStatusTodo, Priority: models.TaskPriorityHigh}

	cases := []struct {
		name   string
		mutate func(f *Form)
		fields []string
	}{
		{"valid", func(f *Form) {}, nil},
		{"valid due date", func(f *Form) { f.DueDate = "2026-02-28" }, nil},
		{"blank title", func(f *Form) { f.Title = "  \t" }, []string{"title"}},
		{"missing status", func(f *Form) { f.Status = "" }, []string{"status"}},
		{"unknown priority", func(f *Form) { f.Priority = "CRITICAL" }, []string{"priority"}},
		{"impossible date", func(f *Form) { f.DueDate = "2026-02-30" }, []string{"due_date"}},
		{"timestamp date", func(f *Form) { f.DueDate = "2026-02-01T10:00:00Z" }, []string{"due_date"}},
		{"several", func(f *Form) { f.Title = ""; f.Priority = "" }, []string{"priority", "title"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := valid
			tc.mutate(&form)
			errs := Validate(form)

			var fields []string
			for field := range errs {
				fields = append(fields, field)
			}
			assert.ElementsMatch(t, tc.fields, fields)
		})
	}
}

func TestEditor_CreateAppendsToColumn(t *testing.T) {
	b, api, _ := newEditorBoard(t,
		task(1, models.TaskStatusInProgress, 0),
		task(2, models.TaskStatusInProgress, 1),
	)
	editor := b.Editor()
	ctx := context.Background()

	require.NoError(t, editor.OpenCreate(models.TaskStatusInProgress))
	assert.Equal(t, EditorOpen, editor.State())
	form := editor.Form()
	assert.Equal(t, models.TaskPriorityMedium, form.Priority)

	form.Title = "  Book dentist  "
	form.DueDate = "2026-11-03"
	require.NoError(t, editor.SetForm(form))
	require.NoError(t, editor.Submit(ctx))

	require.Len(t, api.creates, 1)
	req := api.creates[0]
	assert.Equal(t, "Book dentist", req.Title)
	require.NotNil(t, req.Position)
	assert.Equal(t, 2, *req.Position)
	require.NotNil(t, req.DueDate)
	assert.Equal(t, "2026-11-03", req.DueDate.String())

	assert.Equal(t, EditorClosed, editor.State())
	for _, col := range b.Kanban() {
		if col.Status == models.TaskStatusInProgress {
			assert.Equal(t, []uint64{1, 2, 3}, ids(col.Tasks))
		}
	}
}

func TestEditor_ValidationFailureStaysOpen(t *testing.T) {
	b, api, notes := newEditorBoard(t)
	editor := b.Editor()

	require.NoError(t, editor.OpenCreate(models.TaskStatusTodo))
	err := editor.Submit(context.Background())

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "title")
	assert.Contains(t, editor.Errors(), "title")
	assert.Equal(t, EditorOpen, editor.State())
	assert.Zero(t, api.networkCalls())
	assert.Empty(t, notes.all())
}

func TestEditor_APIFailureStaysOpen(t *testing.T) {
	b, api, notes := newEditorBoard(t)
	api.createErr = errBackend
	editor := b.Editor()
	ctx := context.Background()

	require.NoError(t, editor.OpenCreate(models.TaskStatusDone))
	require.NoError(t, editor.SetForm(Form{Title: "File taxes", Status: models.TaskStatusDone, Priority: models.TaskPriorityLow}))

	err := editor.Submit(ctx)
	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, OpCreate, writeErr.Op)
	assert.Equal(t, EditorOpen, editor.State())
	assert.Equal(t, "File taxes", editor.Form().Title)

	all := notes.all()
	require.Len(t, all, 1)
	assert.True(t, all[0].Retryable)

	api.createErr = nil
	require.NoError(t, editor.Submit(ctx))
	assert.Equal(t, EditorClosed, editor.State())
	assert.Len(t, b.Tasks(), 1)
}

func TestEditor_EditPrefillsAndSendsFullFields(t *testing.T) {
	due := models.NewDate(2026, 4, 9)
	existing := task(5, models.TaskStatusTodo, 3)
	existing.Title = "Draft"
	existing.Description = "first pass"
	existing.DueDate = &due
	b, api, _ := newEditorBoard(t, existing)
	editor := b.Editor()

	require.NoError(t, editor.OpenEdit(5))
	mode, id := editor.Mode()
	assert.Equal(t, ModeEdit, mode)
	assert.Equal(t, uint64(5), id)

	form := editor.Form()
	assert.Equal(t, "Draft", form.Title)
	assert.Equal(t, "first pass", form.Description)
	assert.Equal(t, "2026-04-09", form.DueDate)

	form.Title = "Final"
	form.Status = models.TaskStatusInProgress
	form.DueDate = ""
	require.NoError(t, editor.SetForm(form))
	require.NoError(t, editor.Submit(context.Background()))

	require.Len(t, api.updates, 1)
	req := api.updates[0]
	require.NotNil(t, req.Title)
	assert.Equal(t, "Final", *req.Title)
	require.NotNil(t, req.Description)
	require.NotNil(t, req.Status)
	require.NotNil(t, req.Priority)
	assert.True(t, req.ClearDueDate)
	assert.Nil(t, req.Position)

	updated, _ := b.Task(5)
	assert.Equal(t, models.TaskStatusInProgress, updated.Status)
	assert.Equal(t, 3, updated.Position)
	assert.Nil(t, updated.DueDate)
}

func TestEditor_EditFailureRestoresTask(t *testing.T) {
	b, api, _ := newEditorBoard(t, task(5, models.TaskStatusTodo, 0))
	api.updateErr = errBackend
	editor := b.Editor()

	require.NoError(t, editor.OpenEdit(5))
	form := editor.Form()
	form.Title = "Renamed"
	require.NoError(t, editor.SetForm(form))

	var writeErr *WriteError
	require.ErrorAs(t, editor.Submit(context.Background()), &writeErr)
	assert.Equal(t, EditorOpen, editor.State())

	stored, _ := b.Task(5)
	assert.Equal(t, "task", stored.Title)
}

func TestEditor_EditOfRemovedTaskCloses(t *testing.T) {
	b, api, _ := newEditorBoard(t, task(5, models.TaskStatusTodo, 0))
	editor := b.Editor()
	require.NoError(t, editor.OpenEdit(5))

	api.mu.Lock()
	delete(api.tasks, 5)
	api.mu.Unlock()
	require.NoError(t, b.Refresh(context.Background()))

	assert.ErrorIs(t, editor.Submit(context.Background()), ErrUnknownTask)
	assert.Equal(t, EditorClosed, editor.State())
	assert.Empty(t, api.updates)
}

func TestEditor_Lifecycle(t *testing.T) {
	b, _, _ := newEditorBoard(t)
	editor := b.Editor()

	assert.Equal(t, EditorClosed, editor.State())
	assert.ErrorIs(t, editor.Submit(context.Background()), ErrEditorClosed)
	assert.ErrorIs(t, editor.SetForm(Form{}), ErrEditorClosed)
	assert.ErrorIs(t, editor.OpenEdit(404), ErrUnknownTask)

	require.NoError(t, editor.OpenCreate(models.TaskStatusTodo))
	editor.Cancel()
	assert.Equal(t, EditorClosed, editor.State())
	assert.Equal(t, Form{}, editor.Form())
}
