package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LoginModel is the sign-in form. Errors render from the session slice's
// normalized error list.
type LoginModel struct {
	deps    Deps
	inputs  []textinput.Model
	focused int
}

const (
	loginFieldLogin = iota
	loginFieldPassword
	loginFieldCount
)

// NewLoginModel creates a blank sign-in form.
func NewLoginModel(deps Deps) LoginModel {
	inputs := make([]textinput.Model, loginFieldCount)
	inputs[loginFieldLogin] = textinput.New()
	inputs[loginFieldLogin].Placeholder = "login or email"
	inputs[loginFieldLogin].Focus()
	inputs[loginFieldPassword] = textinput.New()
	inputs[loginFieldPassword].Placeholder = "password"
	inputs[loginFieldPassword].EchoMode = textinput.EchoPassword
	return LoginModel{deps: deps, inputs: inputs}
}

func (m LoginModel) signInCmd(login, password string) tea.Cmd {
	ctrl := m.deps.Session
	return func() tea.Msg {
		_ = ctrl.SignIn(context.Background(), login, login, password)
		return opDoneMsg{}
	}
}

func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, func() tea.Msg { return QuitAppMsg{} }

		case "ctrl+u":
			return m, func() tea.Msg { return NavigateMsg{Target: ViewSignup} }

		case "tab", "shift+tab", "down", "up":
			m.focused = (m.focused + 1) % loginFieldCount
			for i := range m.inputs {
				if i == m.focused {
					m.inputs[i].Focus()
				} else {
					m.inputs[i].Blur()
				}
			}
			return m, textinput.Blink

		case "enter":
			if m.focused == loginFieldLogin {
				m.focused = loginFieldPassword
				m.inputs[loginFieldLogin].Blur()
				m.inputs[loginFieldPassword].Focus()
				return m, textinput.Blink
			}
			login := strings.TrimSpace(m.inputs[loginFieldLogin].Value())
			password := m.inputs[loginFieldPassword].Value()
			if login == "" || password == "" {
				return m, nil
			}
			return m, m.signInCmd(login, password)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m LoginModel) View() string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render("Sign in"))
	b.WriteString("\n\n")
	b.WriteString("  Login:    " + m.inputs[loginFieldLogin].View() + "\n")
	b.WriteString("  Password: " + m.inputs[loginFieldPassword].View() + "\n")

	session := m.deps.Store.State().Session
	if session.SigningIn {
		b.WriteString("\n" + StyleHelp.Render("Signing in..."))
	}
	if session.FailedSignIn {
		for _, e := range session.Errors {
			line := e.Code
			if e.Description != "" {
				line += ": " + e.Description
			}
			b.WriteString("\n" + StyleError.Render("  "+line))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(StyleHelp.Render("enter sign in · ctrl+u sign up · esc quit"))
	return b.String()
}
