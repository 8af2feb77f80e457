package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type taskSavedMsg struct {
	task *Task
	err  error
}

var formStatuses = []string{"Pending", "In Progress", "Completed"}

// TaskFormModel creates a new task or edits an existing one.
type TaskFormModel struct {
	Client    *Client
	TaskID    uint // 0 for create
	Inputs    []textinput.Model
	FocusIdx  int
	statusIdx int
	Err       error
}

const (
	formTitle = iota
	formDescription
	formFieldCount // status chooser sits after the text inputs
)

func NewTaskFormModel(c *Client, t *Task) TaskFormModel {
	inputs := make([]textinput.Model, 2)

	inputs[formTitle] = textinput.New()
	inputs[formTitle].Placeholder = "Buy milk"
	inputs[formTitle].Prompt = "Title: "
	inputs[formTitle].Focus()

	inputs[formDescription] = textinput.New()
	inputs[formDescription].Placeholder = "optional"
	inputs[formDescription].Prompt = "Description: "

	m := TaskFormModel{Client: c, Inputs: inputs}
	if t != nil {
		m.TaskID = t.ID
		m.Inputs[formTitle].SetValue(t.Title)
		m.Inputs[formDescription].SetValue(t.Description)
		for i, s := range formStatuses {
			if s == t.Status {
				m.statusIdx = i
			}
		}
	}
	return m
}

func (m TaskFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m TaskFormModel) Update(msg tea.Msg) (TaskFormModel, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.Inputs))

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			if m.FocusIdx == formFieldCount {
				return m, m.saveCmd()
			}
			m.nextField()
		case tea.KeyTab, tea.KeyDown:
			m.nextField()
		case tea.KeyShiftTab, tea.KeyUp:
			m.prevField()
		case tea.KeyLeft:
			if m.FocusIdx == formFieldCount {
				m.statusIdx--
				if m.statusIdx < 0 {
					m.statusIdx = len(formStatuses) - 1
				}
			}
		case tea.KeyRight:
			if m.FocusIdx == formFieldCount {
				m.statusIdx = (m.statusIdx + 1) % len(formStatuses)
			}
		}

	case taskSavedMsg:
		if msg.err != nil {
			m.Err = msg.err
		}
	}

	for i := range m.Inputs {
		m.Inputs[i], cmds[i] = m.Inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m *TaskFormModel) nextField() {
	if m.FocusIdx < len(m.Inputs) {
		m.Inputs[m.FocusIdx].Blur()
	}
	m.FocusIdx++
	if m.FocusIdx > formFieldCount {
		m.FocusIdx = 0
	}
	if m.FocusIdx < len(m.Inputs) {
		m.Inputs[m.FocusIdx].Focus()
	}
}

func (m *TaskFormModel) prevField() {
	if m.FocusIdx < len(m.Inputs) {
		m.Inputs[m.FocusIdx].Blur()
	}
	m.FocusIdx--
	if m.FocusIdx < 0 {
		m.FocusIdx = formFieldCount
	}
	if m.FocusIdx < len(m.Inputs) {
		m.Inputs[m.FocusIdx].Focus()
	}
}

func (m TaskFormModel) saveCmd() tea.Cmd {
	title := m.Inputs[formTitle].Value()
	description := m.Inputs[formDescription].Value()
	status := formStatuses[m.statusIdx]
	client := m.Client
	id := m.TaskID
	return func() tea.Msg {
		var (
			t   *Task
			err error
		)
		if id == 0 {
			t, err = client.CreateTask(title, description, status)
		} else {
			t, err = client.UpdateTask(id, title, description, status)
		}
		return taskSavedMsg{task: t, err: err}
	}
}

func (m TaskFormModel) View() string {
	var b strings.Builder

	header := "New Task"
	if m.TaskID != 0 {
		header = fmt.Sprintf("Edit Task #%d", m.TaskID)
	}
	b.WriteString(titleStyle.Render(header) + "\n\n")

	for i := range m.Inputs {
		b.WriteString(m.Inputs[i].View() + "\n")
	}

	status := "Status: "
	for i, s := range formStatuses {
		label := s
		if i == m.statusIdx {
			label = focusedStyle.Render("[" + s + "]")
		}
		status += label + " "
	}
	if m.FocusIdx == formFieldCount {
		b.WriteString(focusedStyle.Render("> ") + status)
	} else {
		b.WriteString("  " + status)
	}

	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("Tab to change fields, left/right to pick status, Enter on status to save, Esc to cancel"))

	if m.Err != nil {
		b.WriteString("\n\n")
		b.WriteString(errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
