package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yukikurage/opsboard/internal/board"
	"github.com/yukikurage/opsboard/internal/models"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a task to the end of a column",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAdd,
}

var editCmd = &cobra.Command{
	Use:   "edit [task-id]",
	Short: "Edit a task's fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var moveCmd = &cobra.Command{
	Use:   "move [task-id] [status]",
	Short: "Move a task to the end of another column",
	Args:  cobra.ExactArgs(2),
	RunE:  runMove,
}

var checkCmd = &cobra.Command{
	Use:   "check [task-id]",
	Short: "Mark a task done",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck(true),
}

var uncheckCmd = &cobra.Command{
	Use:   "uncheck [task-id]",
	Short: "Mark a task to do",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck(false),
}

var rmCmd = &cobra.Command{
	Use:   "rm [task-id]",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

func init() {
	for _, cmd := range []*cobra.Command{addCmd, editCmd} {
		cmd.Flags().String("title", "", "Task title")
		cmd.Flags().String("description", "", "Task description")
		cmd.Flags().String("status", "todo", "Column: todo, in_progress or done")
		cmd.Flags().String("priority", "medium", "Priority: low, medium or high")
		cmd.Flags().String("due", "", "Due date (YYYY-MM-DD); empty clears it on edit")
	}
}

// applyFormFlags overrides form fields with the flags given on the command
// line. Unknown status or priority values are passed through so Validate
// reports them.
func applyFormFlags(cmd *cobra.Command, form *board.Form) {
	flags := cmd.Flags()
	if flags.Changed("title") {
		form.Title, _ = flags.GetString("title")
	}
	if flags.Changed("description") {
		form.Description, _ = flags.GetString("description")
	}
	if flags.Changed("status") {
		raw, _ := flags.GetString("status")
		if status, err := parseStatus(raw); err == nil {
			form.Status = status
		} else {
			form.Status = models.TaskStatus(raw)
		}
	}
	if flags.Changed("priority") {
		raw, _ := flags.GetString("priority")
		if priority, err := parsePriority(raw); err == nil {
			form.Priority = priority
		} else {
			form.Priority = models.TaskPriority(raw)
		}
	}
	if flags.Changed("due") {
		form.DueDate, _ = flags.GetString("due")
	}
}

func runAdd(cmd *cobra.Command, args []string) error {
	b, done, err := openBoard(cmd)
	if err != nil {
		return err
	}
	defer done()

	raw, _ := cmd.Flags().GetString("status")
	status, err := parseStatus(raw)
	if err != nil {
		return err
	}

	editor := b.Editor()
	if err := editor.OpenCreate(status); err != nil {
		return err
	}
	form := editor.Form()
	if len(args) == 1 {
		form.Title = args[0]
	}
	applyFormFlags(cmd, &form)
	if err := editor.SetForm(form); err != nil {
		return err
	}

	if err := editor.Submit(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %q to %s\n", form.Title, statusLabel(form.Status))
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	b, done, err := openBoard(cmd)
	if err != nil {
		return err
	}
	defer done()

	editor := b.Editor()
	if err := editor.OpenEdit(id); err != nil {
		return fmt.Errorf("task #%d: %w", id, err)
	}
	form := editor.Form()
	applyFormFlags(cmd, &form)
	if err := editor.SetForm(form); err != nil {
		return err
	}

	if err := editor.Submit(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated #%d\n", id)
	return nil
}

func runMove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	status, err := parseStatus(args[1])
	if err != nil {
		return err
	}

	b, done, err := openBoard(cmd)
	if err != nil {
		return err
	}
	defer done()

	if err := b.Move(cmd.Context(), id, status); err != nil {
		return fmt.Errorf("task #%d: %w", id, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Moved #%d to %s\n", id, statusLabel(status))
	return nil
}

func runCheck(checked bool) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		b, done, err := openBoard(cmd)
		if err != nil {
			return err
		}
		defer done()

		if err := b.SetChecked(cmd.Context(), id, checked); err != nil {
			return fmt.Errorf("task #%d: %w", id, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), RenderChecklist(b.Checklist()))
		return nil
	}
}

func runRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	b, done, err := openBoard(cmd)
	if err != nil {
		return err
	}
	defer done()

	if err := b.Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("task #%d: %w", id, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted #%d\n", id)
	return nil
}
