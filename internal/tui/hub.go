package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/catalogctl/internal/actions"
	"github.com/blackwell-systems/catalogctl/internal/notify"
	"github.com/blackwell-systems/catalogctl/internal/query"
	"github.com/blackwell-systems/catalogctl/internal/session"
	"github.com/blackwell-systems/catalogctl/internal/store"
)

// View names for the hub's active view.
const (
	ViewLogin  = "login"
	ViewSignup = "signup"
	ViewBrowse = "browse"
	ViewDetail = "detail"
)

// Deps bundles the core engine objects every view consumes.
type Deps struct {
	Store    *store.Store
	Handlers *actions.Handlers
	Session  *session.Controller
	Notify   *notify.Scheduler
}

// HubModel is the top-level orchestrator: it owns the store subscription,
// switches between views, and renders the notification strip.
type HubModel struct {
	deps  Deps
	sub   <-chan struct{}
	state store.State

	view   string
	login  LoginModel
	signup SignupModel
	browse BrowseModel
	detail DetailModel

	width  int
	height int
}

// NewHub creates the hub. The initial view follows the session slice:
// authenticated sessions land on the list, everything else on sign-in.
func NewHub(deps Deps, initial query.ListQuery) HubModel {
	st := deps.Store.State()
	m := HubModel{
		deps:   deps,
		sub:    deps.Store.Subscribe(),
		state:  st,
		view:   ViewLogin,
		login:  NewLoginModel(deps),
		signup: NewSignupModel(deps),
		browse: NewBrowseModel(deps, initial),
	}
	if st.Session.Authenticated {
		m.view = ViewBrowse
	}
	return m
}

// waitForChange re-arms the store subscription.
func waitForChange(sub <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-sub
		return stateChangedMsg{}
	}
}

func (m HubModel) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForChange(m.sub), restoreSessionCmd(m.deps)}
	if m.view == ViewBrowse {
		cmds = append(cmds, m.browse.fetchCmd())
	}
	return tea.Batch(cmds...)
}

// restoreSessionCmd attempts profile restoration on startup.
func restoreSessionCmd(deps Deps) tea.Cmd {
	return func() tea.Msg {
		_ = deps.Session.Restore(context.Background())
		return opDoneMsg{}
	}
}

func (m HubModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.updateActiveView(msg)

	case stateChangedMsg:
		prev := m.state
		m.state = m.deps.Store.State()
		m.browse.syncState(m.state)
		m.detail.syncState(m.state)

		cmds := []tea.Cmd{waitForChange(m.sub)}

		// A forced sign-out from any view drops back to the sign-in form.
		if prev.Session.Authenticated && !m.state.Session.Authenticated {
			m.view = ViewLogin
			m.login = NewLoginModel(m.deps)
		}
		// Successful sign-in or restore lands on the list.
		if !prev.Session.Authenticated && m.state.Session.Authenticated && m.view == ViewLogin {
			m.view = ViewBrowse
			cmds = append(cmds, m.browse.fetchCmd())
		}
		return m, tea.Batch(cmds...)

	case NavigateMsg:
		return m.handleNavigation(msg)

	case QuitAppMsg:
		m.deps.Notify.Stop()
		return m, tea.Quit

	default:
		return m.updateActiveView(msg)
	}
}

func (m HubModel) handleNavigation(msg NavigateMsg) (tea.Model, tea.Cmd) {
	switch msg.Target {
	case ViewLogin:
		m.view = ViewLogin
		m.login = NewLoginModel(m.deps)
		return m, nil

	case ViewSignup:
		m.view = ViewSignup
		m.signup = NewSignupModel(m.deps)
		return m, nil

	case ViewBrowse:
		m.view = ViewBrowse
		// Back-navigation rebuilds the list from the handoff, not from the
		// store, so the user returns to the exact view they left.
		m.browse.setQuery(msg.Return.Query())
		m.browse.syncState(m.state)
		return m, m.browse.fetchCmd()

	case ViewDetail:
		m.view = ViewDetail
		m.detail = NewDetailModel(m.deps, msg.BookID, msg.Return)
		m.detail.syncState(m.state)
		return m, m.detail.Init()

	default:
		return m, nil
	}
}

func (m HubModel) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case ViewLogin:
		m.login, cmd = m.login.Update(msg)
	case ViewSignup:
		m.signup, cmd = m.signup.Update(msg)
	case ViewBrowse:
		m.browse, cmd = m.browse.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	}
	return m, cmd
}

func (m HubModel) View() string {
	var body string
	switch m.view {
	case ViewLogin:
		body = m.login.View()
	case ViewSignup:
		body = m.signup.View()
	case ViewBrowse:
		body = m.browse.View()
	case ViewDetail:
		body = m.detail.View()
	}

	if strip := renderNotification(m.state.Notification); strip != "" {
		return lipgloss.JoinVertical(lipgloss.Left, strip, body)
	}
	return body
}

// renderNotification renders the single active notification, if any.
func renderNotification(n store.NotificationState) string {
	if !n.Open {
		return ""
	}
	var style lipgloss.Style
	switch n.Severity {
	case store.SeveritySuccess:
		style = StyleSuccess
	case store.SeverityError:
		style = StyleError
	case store.SeverityWarning:
		style = StyleHighlight
	default:
		style = StyleGenre
	}
	return style.Render(" " + n.Message + " ")
}
