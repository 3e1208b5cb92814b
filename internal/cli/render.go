package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yukikurage/opsboard/internal/board"
	"github.com/yukikurage/opsboard/internal/models"
)

const (
	ColorTodo       = "33"
	ColorInProgress = "214"
	ColorDone       = "42"
	ColorUnknown    = "243"
	ColorHigh       = "196"
)

func statusColor(status models.TaskStatus) lipgloss.Color {
	switch status {
	case models.TaskStatusTodo:
		return lipgloss.Color(ColorTodo)
	case models.TaskStatusInProgress:
		return lipgloss.Color(ColorInProgress)
	case models.TaskStatusDone:
		return lipgloss.Color(ColorDone)
	default:
		return lipgloss.Color(ColorUnknown)
	}
}

func statusLabel(status models.TaskStatus) string {
	switch status {
	case models.TaskStatusTodo:
		return "To do"
	case models.TaskStatusInProgress:
		return "In progress"
	case models.TaskStatusDone:
		return "Done"
	default:
		return string(status)
	}
}

func priorityMarker(priority models.TaskPriority) string {
	switch priority {
	case models.TaskPriorityHigh:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHigh)).Bold(true).Render("!!")
	case models.TaskPriorityMedium:
		return "!"
	case models.TaskPriorityLow:
		return ""
	default:
		return "?"
	}
}

func cardText(task models.Task) string {
	line := fmt.Sprintf("#%d %s", task.ID, task.Title)
	if marker := priorityMarker(task.Priority); marker != "" {
		line += " " + marker
	}
	if task.DueDate != nil {
		line += "\n" + lipgloss.NewStyle().Faint(true).Render("due "+task.DueDate.String())
	}
	return line
}

// RenderKanban draws one bordered lane per column, side by side.
func RenderKanban(columns []board.Column, width int) string {
	lanes := make([]string, 0, len(columns))
	for _, col := range columns {
		color := statusColor(col.Status)
		header := lipgloss.NewStyle().Bold(true).Foreground(color).
			Render(fmt.Sprintf("%s (%d)", statusLabel(col.Status), len(col.Tasks)))

		cards := []string{header, ""}
		if len(col.Tasks) == 0 {
			cards = append(cards, lipgloss.NewStyle().Faint(true).Render("empty"))
		}
		for _, task := range col.Tasks {
			cards = append(cards, cardText(task))
		}

		lane := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color).
			Width(width).
			Padding(0, 1).
			Render(lipgloss.JoinVertical(lipgloss.Left, cards...))
		lanes = append(lanes, lane)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, lanes...)
}

// RenderChecklist prints one "[x]"/"[ ]" line per task in checklist order.
func RenderChecklist(tasks []models.Task) string {
	if len(tasks) == 0 {
		return "No tasks."
	}

	var sb strings.Builder
	for _, task := range tasks {
		box := "[ ]"
		if task.Status == models.TaskStatusDone {
			box = "[x]"
		}
		status := lipgloss.NewStyle().Foreground(statusColor(task.Status)).Render(statusLabel(task.Status))

		fmt.Fprintf(&sb, "%s #%d %s  %s", box, task.ID, task.Title, status)
		if task.DueDate != nil {
			fmt.Fprintf(&sb, "  due %s", task.DueDate)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// RenderTask prints every field of one task.
func RenderTask(task models.Task) string {
	label := lipgloss.NewStyle().Bold(true)
	due := "none"
	if task.DueDate != nil {
		due = task.DueDate.String()
	}

	lines := []string{
		cardText(models.Task{ID: task.ID, Title: task.Title, Priority: task.Priority}),
		label.Render("Status:   ") + lipgloss.NewStyle().Foreground(statusColor(task.Status)).Render(statusLabel(task.Status)),
		label.Render("Priority: ") + strings.ToLower(string(task.Priority)),
		label.Render("Due:      ") + due,
		label.Render("Position: ") + fmt.Sprint(task.Position),
	}
	if task.Description != "" {
		lines = append(lines, "", task.Description)
	}
	return strings.Join(lines, "\n")
}
