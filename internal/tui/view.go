package tui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize/english"

	"tasklist/internal/domain"
)

const helpLine = "j/k move • / search • f filter • a add • e edit • space toggle • d delete • ctrl+s save • q quit"

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.header())
	b.WriteString("\n\n")

	if m.mode == modeForm && m.form != nil {
		b.WriteString(m.renderForm())
	} else {
		b.WriteString(m.renderTaskList())
	}

	b.WriteString("\n---\n")
	if m.mode == modeSearch || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	b.WriteString(m.StatusLine())
	b.WriteString("\n")
	b.WriteString(helpLine)
	b.WriteString("\n")
	return b.String()
}

func (m Model) header() string {
	counts := m.manager.Counts()
	return fmt.Sprintf("Tasks [%s] %s, %d completed",
		m.filter.Label(), english.Plural(counts.Total, "task", ""), counts.Completed)
}

func (m Model) renderTaskList() string {
	if len(m.entries) == 0 {
		if m.search.Value() != "" || m.filter != domain.StatusAll {
			return "No matching tasks."
		}
		return "No tasks yet. Press 'a' to add one."
	}

	today := domain.DateOf(timeNow())
	var b strings.Builder
	for _, entry := range m.entries {
		task := entry.Task

		cursor := " "
		if task.ID == m.selectedID {
			cursor = ">"
		}
		checkbox := "[ ]"
		if task.Completed {
			checkbox = "[x]"
		}

		fmt.Fprintf(&b, "%s %s %d. %s", cursor, checkbox, entry.Position(), task.Title)
		if task.DueDate != nil {
			fmt.Fprintf(&b, "  due %s", task.DueDate.Format(m.cfg.Display.DateFormat))
			if task.IsOverdue(today) {
				b.WriteString(" (overdue)")
			}
		}
		if task.Description != "" {
			fmt.Fprintf(&b, "  %s", domain.Truncate(firstLine(task.Description), m.cfg.Display.DescriptionWidth))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderForm() string {
	var b strings.Builder
	if m.form.editingID == "" {
		b.WriteString("Add task\n\n")
	} else {
		b.WriteString("Edit task\n\n")
	}
	for i, input := range m.form.inputs {
		marker := " "
		if i == m.form.focus {
			marker = ">"
		}
		fmt.Fprintf(&b, "%s %s\n  %s\n", marker, fieldLabels[i], input.View())
	}
	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}
