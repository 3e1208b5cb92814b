package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the kanban board",
	Args:  cobra.NoArgs,
	RunE:  runBoard,
}

var checklistCmd = &cobra.Command{
	Use:   "checklist",
	Short: "Show every task as a checklist",
	Args:  cobra.NoArgs,
	RunE:  runChecklist,
}

var showCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show one task as the server has it",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	boardCmd.Flags().Int("width", 30, "Width of each column")
}

func runBoard(cmd *cobra.Command, args []string) error {
	width, _ := cmd.Flags().GetInt("width")

	b, done, err := openBoard(cmd)
	if err != nil {
		return err
	}
	defer done()

	fmt.Fprintln(cmd.OutOrStdout(), RenderKanban(b.Kanban(), width))
	return nil
}

func runChecklist(cmd *cobra.Command, args []string) error {
	b, done, err := openBoard(cmd)
	if err != nil {
		return err
	}
	defer done()

	fmt.Fprintln(cmd.OutOrStdout(), RenderChecklist(b.Checklist()))
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	s, err := connect(cmd)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	defer s.close(ctx)

	task, err := s.client.GetTask(ctx, id)
	if err != nil {
		return fmt.Errorf("task #%d: %w", id, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), RenderTask(*task))
	return nil
}
