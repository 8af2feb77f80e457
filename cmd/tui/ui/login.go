package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type loginDoneMsg struct {
	resp *LoginResult
	err  error
}

type LoginModel struct {
	Client   *Client
	Inputs   []textinput.Model
	FocusIdx int
	Err      error
}

const (
	loginEmail = iota
	loginPassword
)

func NewLoginModel(c *Client) LoginModel {
	inputs := make([]textinput.Model, 2)

	inputs[loginEmail] = textinput.New()
	inputs[loginEmail].Placeholder = "you@example.com"
	inputs[loginEmail].Prompt = "Email: "
	inputs[loginEmail].Focus()

	inputs[loginPassword] = textinput.New()
	inputs[loginPassword].Placeholder = "password"
	inputs[loginPassword].EchoMode = textinput.EchoPassword
	inputs[loginPassword].Prompt = "Password: "

	return LoginModel{Client: c, Inputs: inputs}
}

func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.Inputs))

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			if m.FocusIdx == len(m.Inputs)-1 {
				return m, m.loginCmd()
			}
			m.nextInput()
		case tea.KeyTab, tea.KeyDown:
			m.nextInput()
		case tea.KeyShiftTab, tea.KeyUp:
			m.prevInput()
		}

	case loginDoneMsg:
		if msg.err != nil {
			m.Err = msg.err
		}
	}

	for i := range m.Inputs {
		m.Inputs[i], cmds[i] = m.Inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m *LoginModel) nextInput() {
	m.Inputs[m.FocusIdx].Blur()
	m.FocusIdx = (m.FocusIdx + 1) % len(m.Inputs)
	m.Inputs[m.FocusIdx].Focus()
}

func (m *LoginModel) prevInput() {
	m.Inputs[m.FocusIdx].Blur()
	m.FocusIdx--
	if m.FocusIdx < 0 {
		m.FocusIdx = len(m.Inputs) - 1
	}
	m.Inputs[m.FocusIdx].Focus()
}

func (m LoginModel) loginCmd() tea.Cmd {
	email := m.Inputs[loginEmail].Value()
	password := m.Inputs[loginPassword].Value()
	client := m.Client
	return func() tea.Msg {
		resp, err := client.Login(email, password)
		return loginDoneMsg{resp: resp, err: err}
	}
}

func (m LoginModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Taskboard - Login") + "\n\n")
	for i := range m.Inputs {
		b.WriteString(m.Inputs[i].View())
		if i < len(m.Inputs)-1 {
			b.WriteRune('\n')
		}
	}
	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("Tab to change fields, Enter to submit, Ctrl+N to sign up"))

	if m.Err != nil {
		b.WriteString("\n\n")
		b.WriteString(errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
