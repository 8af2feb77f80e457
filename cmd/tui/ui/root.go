package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type state int

const (
	stateLogin state = iota
	stateSignup
	stateTasks
	stateForm
)

type RootModel struct {
	State    state
	Client   *Client
	Login    LoginModel
	Signup   SignupModel
	Tasks    TasksModel
	Form     TaskFormModel
	Quitting bool
	width    int
	height   int
}

func NewRootModel(serverURL string) RootModel {
	c := NewClient(serverURL)
	return RootModel{
		State:  stateLogin,
		Client: c,
		Login:  NewLoginModel(c),
	}
}

func (m RootModel) Init() tea.Cmd {
	return m.Login.Init()
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.State == stateTasks {
			m.Tasks.Table.SetHeight(msg.Height - 10)
		}

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.Quitting = true
			return m, tea.Quit
		case tea.KeyCtrlN:
			// toggle between login and signup
			switch m.State {
			case stateLogin:
				m.State = stateSignup
				m.Signup = NewSignupModel(m.Client)
				return m, m.Signup.Init()
			case stateSignup:
				m.State = stateLogin
				m.Login = NewLoginModel(m.Client)
				return m, m.Login.Init()
			}
		case tea.KeyEsc:
			if m.State == stateForm {
				m.State = stateTasks
				return m, m.Tasks.loadCmd()
			}
		}
	}

	switch m.State {
	case stateLogin:
		if done, ok := msg.(loginDoneMsg); ok && done.err == nil {
			m.State = stateTasks
			m.Tasks = NewTasksModel(m.Client, m.width, m.height)
			return m, m.Tasks.Init()
		}
		newLogin, cmd := m.Login.Update(msg)
		m.Login = newLogin
		cmds = append(cmds, cmd)

	case stateSignup:
		if done, ok := msg.(registerDoneMsg); ok && done.err == nil {
			// account created; back to login
			m.State = stateLogin
			m.Login = NewLoginModel(m.Client)
			return m, m.Login.Init()
		}
		newSignup, cmd := m.Signup.Update(msg)
		m.Signup = newSignup
		cmds = append(cmds, cmd)

	case stateTasks:
		if edit, ok := msg.(EditTaskMsg); ok {
			m.State = stateForm
			m.Form = NewTaskFormModel(m.Client, edit.Task)
			return m, m.Form.Init()
		}
		newTasks, cmd := m.Tasks.Update(msg)
		m.Tasks = newTasks
		cmds = append(cmds, cmd)

	case stateForm:
		if saved, ok := msg.(taskSavedMsg); ok && saved.err == nil {
			m.State = stateTasks
			return m, m.Tasks.loadCmd()
		}
		newForm, cmd := m.Form.Update(msg)
		m.Form = newForm
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m RootModel) View() string {
	if m.Quitting {
		return "Bye!\n"
	}
	switch m.State {
	case stateLogin:
		return m.Login.View()
	case stateSignup:
		return m.Signup.View()
	case stateTasks:
		return m.Tasks.View()
	case stateForm:
		return m.Form.View()
	}
	return "Unknown state"
}
