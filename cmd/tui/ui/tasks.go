package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type tasksLoadedMsg struct {
	page *TaskPage
	err  error
}

type taskDeletedMsg struct{ err error }

// EditTaskMsg asks the root model to open the task form. A nil Task
// means "create new".
type EditTaskMsg struct{ Task *Task }

var statusCycle = []string{"", "Pending", "In Progress", "Completed"}

type TasksModel struct {
	Client    *Client
	Table     table.Model
	Search    textinput.Model
	searching bool
	query     string
	statusIdx int
	Page      int
	Pages     int
	Total     int64
	All       bool
	Rows      []Task
	Err       error
	Info      string
}

func NewTasksModel(c *Client, width, height int) TasksModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Title", Width: 32},
		{Title: "Status", Width: 14},
		{Title: "Owner", Width: 8},
		{Title: "Created", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height-10),
	)
	sStyle := table.DefaultStyles()
	sStyle.Header = sStyle.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	sStyle.Selected = sStyle.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(sStyle)

	search := textinput.New()
	search.Placeholder = "search title"
	search.Prompt = "/"

	return TasksModel{Client: c, Table: t, Search: search, Page: 1}
}

func (m TasksModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TasksModel) loadCmd() tea.Cmd {
	q := TaskListQuery{Search: m.query, Status: statusCycle[m.statusIdx], Page: m.Page, All: m.All}
	client := m.Client
	return func() tea.Msg {
		page, err := client.ListTasks(q)
		return tasksLoadedMsg{page: page, err: err}
	}
}

func (m TasksModel) deleteCmd(id uint) tea.Cmd {
	client := m.Client
	return func() tea.Msg {
		return taskDeletedMsg{err: client.DeleteTask(id)}
	}
}

func (m TasksModel) selected() *Task {
	row := m.Table.SelectedRow()
	if len(row) == 0 {
		return nil
	}
	id, _ := strconv.Atoi(row[0])
	for i := range m.Rows {
		if m.Rows[i].ID == uint(id) {
			return &m.Rows[i]
		}
	}
	return nil
}

func (m TasksModel) Update(msg tea.Msg) (TasksModel, tea.Cmd) {
	var cmd tea.Cmd

	if m.searching {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.Type {
			case tea.KeyEnter:
				m.searching = false
				m.Search.Blur()
				m.query = m.Search.Value()
				m.Page = 1
				return m, m.loadCmd()
			case tea.KeyEsc:
				m.searching = false
				m.Search.Blur()
				m.Search.SetValue(m.query)
				return m, nil
			}
		}
		m.Search, cmd = m.Search.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "/":
			m.searching = true
			return m, m.Search.Focus()
		case "r":
			return m, m.loadCmd()
		case "s":
			m.statusIdx = (m.statusIdx + 1) % len(statusCycle)
			m.Page = 1
			return m, m.loadCmd()
		case "a":
			m.All = !m.All
			m.Page = 1
			return m, m.loadCmd()
		case "right", "l":
			if m.Page < m.Pages {
				m.Page++
				return m, m.loadCmd()
			}
		case "left", "h":
			if m.Page > 1 {
				m.Page--
				return m, m.loadCmd()
			}
		case "n":
			return m, func() tea.Msg { return EditTaskMsg{} }
		case "enter":
			if t := m.selected(); t != nil {
				task := *t
				return m, func() tea.Msg { return EditTaskMsg{Task: &task} }
			}
		case "d":
			if t := m.selected(); t != nil {
				return m, m.deleteCmd(t.ID)
			}
		case "q":
			return m, tea.Quit
		}

	case tasksLoadedMsg:
		if msg.err != nil {
			m.Err = msg.err
			if m.All {
				// most likely a role rejection; fall back to the scoped view
				m.All = false
			}
			return m, nil
		}
		m.Err = nil
		m.Rows = msg.page.Tasks
		m.Total = msg.page.Total
		m.Pages = msg.page.Pages
		m.Page = msg.page.Page
		rows := make([]table.Row, 0, len(msg.page.Tasks))
		for _, t := range msg.page.Tasks {
			rows = append(rows, table.Row{
				strconv.FormatUint(uint64(t.ID), 10),
				t.Title,
				t.Status,
				strconv.FormatUint(uint64(t.OwnerID), 10),
				t.CreatedAt.Format("2006-01-02 15:04"),
			})
		}
		m.Table.SetRows(rows)

	case taskDeletedMsg:
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.Err = nil
		m.Info = "task deleted"
		return m, m.loadCmd()
	}

	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m TasksModel) View() string {
	var b strings.Builder

	title := "Tasks"
	if m.All {
		title = "Tasks - All Users"
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	if m.searching {
		b.WriteString(m.Search.View() + "\n\n")
	}
	b.WriteString(m.Table.View())
	b.WriteString("\n\n")

	filter := statusCycle[m.statusIdx]
	if filter == "" {
		filter = "all"
	}
	b.WriteString(statusMessageStyle(fmt.Sprintf("page %d/%d  total %d  status: %s  search: %q", m.Page, m.Pages, m.Total, filter, m.query)))
	b.WriteString("\n")
	b.WriteString(blurredStyle.Render("/ search  s status  h/l page  n new  enter edit  d delete  a all-users  r refresh  q quit"))

	if m.Info != "" {
		b.WriteString("\n" + statusMessageStyle(m.Info))
	}
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
