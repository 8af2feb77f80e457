package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type registerDoneMsg struct{ err error }

type SignupModel struct {
	Client   *Client
	Inputs   []textinput.Model
	FocusIdx int
	Err      error
}

const (
	signupName = iota
	signupEmail
	signupPassword
)

func NewSignupModel(c *Client) SignupModel {
	inputs := make([]textinput.Model, 3)

	inputs[signupName] = textinput.New()
	inputs[signupName].Placeholder = "Jane Doe"
	inputs[signupName].Prompt = "Name: "
	inputs[signupName].Focus()

	inputs[signupEmail] = textinput.New()
	inputs[signupEmail].Placeholder = "you@example.com"
	inputs[signupEmail].Prompt = "Email: "

	inputs[signupPassword] = textinput.New()
	inputs[signupPassword].Placeholder = "password (min 6 chars)"
	inputs[signupPassword].EchoMode = textinput.EchoPassword
	inputs[signupPassword].Prompt = "Password: "

	return SignupModel{Client: c, Inputs: inputs}
}

func (m SignupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SignupModel) Update(msg tea.Msg) (SignupModel, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.Inputs))

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			if m.FocusIdx == len(m.Inputs)-1 {
				return m, m.registerCmd()
			}
			m.nextInput()
		case tea.KeyTab, tea.KeyDown:
			m.nextInput()
		case tea.KeyShiftTab, tea.KeyUp:
			m.prevInput()
		}

	case registerDoneMsg:
		if msg.err != nil {
			m.Err = msg.err
		}
	}

	for i := range m.Inputs {
		m.Inputs[i], cmds[i] = m.Inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m *SignupModel) nextInput() {
	m.Inputs[m.FocusIdx].Blur()
	m.FocusIdx = (m.FocusIdx + 1) % len(m.Inputs)
	m.Inputs[m.FocusIdx].Focus()
}

func (m *SignupModel) prevInput() {
	m.Inputs[m.FocusIdx].Blur()
	m.FocusIdx--
	if m.FocusIdx < 0 {
		m.FocusIdx = len(m.Inputs) - 1
	}
	m.Inputs[m.FocusIdx].Focus()
}

func (m SignupModel) registerCmd() tea.Cmd {
	name := m.Inputs[signupName].Value()
	email := m.Inputs[signupEmail].Value()
	password := m.Inputs[signupPassword].Value()
	client := m.Client
	return func() tea.Msg {
		return registerDoneMsg{err: client.Register(name, email, password)}
	}
}

func (m SignupModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Taskboard - Sign Up") + "\n\n")
	for i := range m.Inputs {
		b.WriteString(m.Inputs[i].View())
		if i < len(m.Inputs)-1 {
			b.WriteRune('\n')
		}
	}
	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("Tab to change fields, Enter to submit, Ctrl+N back to login"))

	if m.Err != nil {
		b.WriteString("\n\n")
		b.WriteString(errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
