package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/catalogctl/internal/session"
)

const (
	signupFieldEmail = iota
	signupFieldFirstName
	signupFieldLastName
	signupFieldLogin
	signupFieldPassword
	signupFieldCount
)

// SignupModel is the registration form. Success does not sign the user in;
// it returns to the sign-in form.
type SignupModel struct {
	deps      Deps
	inputs    []textinput.Model
	focused   int
	submitted bool
}

// NewSignupModel creates a blank registration form.
func NewSignupModel(deps Deps) SignupModel {
	placeholders := []string{"email", "first name", "last name", "login", "password"}
	inputs := make([]textinput.Model, signupFieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = placeholders[i]
	}
	inputs[signupFieldPassword].EchoMode = textinput.EchoPassword
	inputs[signupFieldEmail].Focus()
	return SignupModel{deps: deps, inputs: inputs}
}

func (m SignupModel) signUpCmd(params session.SignUpParams) tea.Cmd {
	ctrl := m.deps.Session
	return func() tea.Msg {
		_ = ctrl.SignUp(context.Background(), params)
		return opDoneMsg{}
	}
}

func (m SignupModel) Update(msg tea.Msg) (SignupModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, func() tea.Msg { return QuitAppMsg{} }

		case "esc":
			return m, func() tea.Msg { return NavigateMsg{Target: ViewLogin} }

		case "tab", "down":
			return m.focusField((m.focused + 1) % signupFieldCount), textinput.Blink

		case "shift+tab", "up":
			return m.focusField((m.focused + signupFieldCount - 1) % signupFieldCount), textinput.Blink

		case "enter":
			if m.focused != signupFieldPassword {
				return m.focusField(m.focused + 1), textinput.Blink
			}
			m.submitted = true
			return m, m.signUpCmd(session.SignUpParams{
				Email:     strings.TrimSpace(m.inputs[signupFieldEmail].Value()),
				FirstName: strings.TrimSpace(m.inputs[signupFieldFirstName].Value()),
				LastName:  strings.TrimSpace(m.inputs[signupFieldLastName].Value()),
				Login:     strings.TrimSpace(m.inputs[signupFieldLogin].Value()),
				Password:  m.inputs[signupFieldPassword].Value(),
			})
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m SignupModel) focusField(idx int) SignupModel {
	m.focused = idx
	for i := range m.inputs {
		if i == idx {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

func (m SignupModel) View() string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render("Sign up"))
	b.WriteString("\n\n")

	labels := []string{"Email:      ", "First name: ", "Last name:  ", "Login:      ", "Password:   "}
	for i, in := range m.inputs {
		b.WriteString("  " + labels[i] + in.View() + "\n")
	}

	session := m.deps.Store.State().Session
	switch {
	case session.SigningUp:
		b.WriteString("\n" + StyleHelp.Render("Signing up..."))
	case session.FailedSignUp:
		for _, e := range session.Errors {
			line := e.Code
			if e.Description != "" {
				line += ": " + e.Description
			}
			b.WriteString("\n" + StyleError.Render("  "+line))
		}
	case m.submitted:
		b.WriteString("\n" + StyleSuccess.Render("  Account created — sign in to continue"))
	}

	b.WriteString("\n\n")
	b.WriteString(StyleHelp.Render("enter submit · esc back to sign in"))
	return b.String()
}
