package board

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnknownTask  = errors.New("task is not on the board")
	ErrEditorClosed = errors.New("editor is not open")
	ErrEditorBusy   = errors.New("editor is submitting")
)

// Write operations reported in WriteError.Op.
const (
	OpCreate  = "create task"
	OpUpdate  = "update task"
	OpDelete  = "delete task"
	OpReorder = "reorder tasks"
)

// FieldErrors maps a form field name to its validation message.
type FieldErrors map[string]string

// ValidationError is returned for form input that never reached the API.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "invalid task: " + strings.Join(parts, "; ")
}

// FetchError means the task list could not be loaded. Calling Refresh again
// retries.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to load tasks: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// WriteError means a create, update, delete or reorder call failed. Any
// optimistic change has been reverted by the time it is returned.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
