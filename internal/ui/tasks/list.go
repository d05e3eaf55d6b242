// Package tasks renders the task list shared by the dashboard and
// WhatsApp views.
package tasks

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/domain"
	"taskdeck/internal/ui/styles"
)

// ListView renders a column of task cards with one movable cursor and
// at most one expanded step list.
type ListView struct {
	tasks    []domain.Task
	cursor   int
	expanded string
	truncate bool
	styles   *styles.Styles
	width    int
}

// NewListView creates a ListView over the given tasks. When truncate is
// set, collapsed descriptions are shortened to their first words, the
// way the WhatsApp view displays long forwarded text.
func NewListView(tasks []domain.Task, width int, truncate bool) *ListView {
	return &ListView{
		tasks:    tasks,
		truncate: truncate,
		styles:   styles.New(),
		width:    width,
	}
}

// SetCursor sets the cursor position, clamped to the list bounds.
func (lv *ListView) SetCursor(index int) {
	if index < 0 {
		lv.cursor = 0
	} else if index >= len(lv.tasks) {
		lv.cursor = max(0, len(lv.tasks)-1)
	} else {
		lv.cursor = index
	}
}

// SetExpanded marks which task's step list is open.
func (lv *ListView) SetExpanded(id string) {
	lv.expanded = id
}

// Render renders the full list.
func (lv *ListView) Render() string {
	if len(lv.tasks) == 0 {
		return lv.styles.EmptyList.Render("No tasks yet.")
	}

	rows := make([]string, 0, len(lv.tasks))
	for i, task := range lv.tasks {
		rows = append(rows, lv.renderCard(i, task))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (lv *ListView) renderCard(index int, task domain.Task) string {
	var b strings.Builder

	b.WriteString(lv.renderTitleLine(task))

	description := task.Description
	if lv.truncate && lv.expanded != task.ID {
		description = truncateWords(description, 20)
	}
	if description != "" {
		b.WriteString("\n")
		b.WriteString(lv.styles.TaskDesc.Render(description))
	}

	if lv.expanded == task.ID && len(task.Steps) > 0 {
		b.WriteString("\n")
		b.WriteString(lv.renderSteps(task.Steps))
	} else if len(task.Steps) > 0 {
		b.WriteString("\n")
		b.WriteString(lv.styles.StatusHint.Render(fmt.Sprintf("%d steps (enter to show)", len(task.Steps))))
	}

	cardStyle := lv.styles.Row
	if index == lv.cursor {
		cardStyle = lv.styles.RowActive
	} else if task.Completed {
		cardStyle = lv.styles.RowCompleted
	}

	inner := max(20, lv.width-4)
	return cardStyle.Width(inner).Render(b.String())
}

func (lv *ListView) renderTitleLine(task domain.Task) string {
	checkbox := "[ ]"
	titleStyle := lv.styles.TaskTitle
	if task.Completed {
		checkbox = "[x]"
		titleStyle = lv.styles.TaskTitleDone
	}

	line := checkbox + " " + titleStyle.Render(task.Title)
	if task.Completed {
		line += " " + lv.styles.CompletedBadge.Render("Completed")
	}
	return line
}

func (lv *ListView) renderSteps(steps []string) string {
	var b strings.Builder
	b.WriteString(lv.styles.StepHeader.Render("Steps:"))
	for i, step := range steps {
		b.WriteString("\n")
		b.WriteString(lv.styles.StepItem.Render(fmt.Sprintf("  %d. %s", i+1, step)))
	}
	return b.String()
}

// truncateWords shortens text to its first n words, appending an
// ellipsis when anything was cut.
func truncateWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) <= n {
		return text
	}
	return strings.Join(words[:n], " ") + "..."
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
