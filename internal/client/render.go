package client

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/ontime/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const noteSnippetWidth = 60

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	labelStyle  = lipgloss.NewStyle().Bold(true)
	emptyStyle  = lipgloss.NewStyle().Faint(true)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func renderTodos(todos []models.Todo) string {
	if len(todos) == 0 {
		return emptyStyle.Render("no todos")
	}

	t := newTable("ID", "TASK", "DUE", "DONE")
	for _, todo := range todos {
		due := "-"
		if todo.DueDate != nil {
			due = todo.DueDate.String()
		}
		done := " "
		if todo.Completed {
			done = doneStyle.Render("x")
		}
		t.Row(strconv.FormatInt(todo.ID, 10), todo.Task, due, done)
	}
	return t.Render()
}

func renderNotes(notes []models.Note) string {
	if len(notes) == 0 {
		return emptyStyle.Render("no notes")
	}

	t := newTable("ID", "CONTENT", "UPDATED")
	for _, note := range notes {
		t.Row(
			strconv.FormatInt(note.ID, 10),
			snippet(note.Content, noteSnippetWidth),
			note.UpdatedAt.Format("2006-01-02 15:04"),
		)
	}
	return t.Render()
}

func renderUser(user models.User) string {
	return strings.Join([]string{
		fmt.Sprintf("%s %d", labelStyle.Render("id:"), user.ID),
		fmt.Sprintf("%s %s", labelStyle.Render("username:"), user.Username),
		fmt.Sprintf("%s %s", labelStyle.Render("email:"), user.Email),
		fmt.Sprintf("%s %s", labelStyle.Render("registered:"), user.CreatedAt.Format("2006-01-02")),
	}, "\n")
}

// snippet flattens s to one line and cuts it to width runes.
func snippet(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
