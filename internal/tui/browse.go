package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/catalogctl/internal/catalog"
	"github.com/blackwell-systems/catalogctl/internal/query"
	"github.com/blackwell-systems/catalogctl/internal/store"
)

// browseKeys are the list view's bindings.
type browseKeys struct {
	quit     key.Binding
	open     key.Binding
	create   key.Binding
	delete   key.Binding
	filter   key.Binding
	reset    key.Binding
	prevPage key.Binding
	nextPage key.Binding
	signOut  key.Binding
}

var browseKeyMap = browseKeys{
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	create: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new book"),
	),
	delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	filter: key.NewBinding(
		key.WithKeys("f", "/"),
		key.WithHelp("f", "filter"),
	),
	reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset filters"),
	),
	prevPage: key.NewBinding(
		key.WithKeys("[", "left"),
		key.WithHelp("[", "prev page"),
	),
	nextPage: key.NewBinding(
		key.WithKeys("]", "right"),
		key.WithHelp("]", "next page"),
	),
	signOut: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "sign out"),
	),
}

// Filter input indexes.
const (
	filterTitle = iota
	filterAuthorID
	filterGenre
	filterCount
)

// BrowseModel is the paged, filtered catalog list. Its query value is the
// view's address: every filter or page change rewrites it, and it is what
// gets handed to the detail view for back-navigation.
type BrowseModel struct {
	deps  Deps
	q     query.ListQuery
	state store.State
	list  list.Model

	filterMode bool
	inputs     []textinput.Model
	focused    int

	confirming bool
	toDelete   *catalog.Book
	deleteErr  string

	width  int
	height int
}

// NewBrowseModel creates the list view addressed at q.
func NewBrowseModel(deps Deps, q query.ListQuery) BrowseModel {
	l := list.New(nil, bookDelegate{}, 0, 14)
	l.Title = "Books"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = StyleHeader

	inputs := make([]textinput.Model, filterCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].CharLimit = 64
	}
	inputs[filterTitle].Placeholder = "title"
	inputs[filterAuthorID].Placeholder = "author id"
	inputs[filterGenre].Placeholder = "genre"

	return BrowseModel{deps: deps, q: q, list: l, inputs: inputs}
}

// setQuery re-addresses the view (used by back-navigation handoff).
func (m *BrowseModel) setQuery(q query.ListQuery) {
	m.q = q
}

// syncState refreshes the view from a store snapshot.
func (m *BrowseModel) syncState(st store.State) {
	m.state = st
	items := make([]list.Item, len(st.List.Items))
	for i, b := range st.List.Items {
		items[i] = BookItem{Book: b}
	}
	m.list.SetItems(items)
}

// fetchCmd loads authors and the addressed page concurrently.
func (m BrowseModel) fetchCmd() tea.Cmd {
	h := m.deps.Handlers
	page, filters := m.q.Page, m.q.Filters
	return func() tea.Msg {
		h.RefreshList(context.Background(), page, filters)
		return opDoneMsg{}
	}
}

// fetchListCmd re-issues only the books fetch (page changes).
func (m BrowseModel) fetchListCmd() tea.Cmd {
	h := m.deps.Handlers
	page, filters := m.q.Page, m.q.Filters
	return func() tea.Msg {
		h.FetchBooksList(context.Background(), page, filters)
		return opDoneMsg{}
	}
}

func (m BrowseModel) deleteCmd(book catalog.Book) tea.Cmd {
	h := m.deps.Handlers
	id := *book.ID
	title := book.Title
	return func() tea.Msg {
		err := h.DeleteBook(context.Background(), id)
		return deleteResultMsg{title: title, err: err}
	}
}

func (m BrowseModel) Update(msg tea.Msg) (BrowseModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case deleteResultMsg:
		if msg.err != nil {
			// Inline error in the confirm overlay, independent of the
			// dispatched deleteError.
			m.deleteErr = msg.err.Error()
			return m, nil
		}
		m.confirming = false
		m.toDelete = nil
		m.deleteErr = ""
		notifier := m.deps.Notify
		title := msg.title
		return m, func() tea.Msg {
			notifier.Show(fmt.Sprintf("Book %q successfully deleted", title), store.SeveritySuccess, 0)
			return opDoneMsg{}
		}

	case tea.KeyMsg:
		if m.filterMode {
			return m.updateFilterForm(msg)
		}
		if m.confirming {
			return m.updateConfirm(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m BrowseModel) updateList(msg tea.KeyMsg) (BrowseModel, tea.Cmd) {
	switch {
	case key.Matches(msg, browseKeyMap.quit):
		return m, func() tea.Msg { return QuitAppMsg{} }

	case key.Matches(msg, browseKeyMap.signOut):
		ctrl := m.deps.Session
		return m, func() tea.Msg {
			ctrl.SignOut()
			return opDoneMsg{}
		}

	case key.Matches(msg, browseKeyMap.filter):
		m.filterMode = true
		m.focused = filterTitle
		m.inputs[filterTitle].SetValue(m.q.Filters.Title)
		if m.q.Filters.AuthorID != nil {
			m.inputs[filterAuthorID].SetValue(strconv.Itoa(*m.q.Filters.AuthorID))
		} else {
			m.inputs[filterAuthorID].SetValue("")
		}
		m.inputs[filterGenre].SetValue(m.q.Filters.Genre)
		m.inputs[filterTitle].Focus()
		return m, textinput.Blink

	case key.Matches(msg, browseKeyMap.reset):
		m.q = query.ListQuery{}
		m.deps.Store.Dispatch(store.FiltersReset{})
		return m, m.fetchListCmd()

	case key.Matches(msg, browseKeyMap.prevPage):
		if m.q.Page > 0 {
			m.q = m.q.WithPage(m.q.Page - 1)
			m.deps.Store.Dispatch(store.PageSet{Page: m.q.Page})
			return m, m.fetchListCmd()
		}
		return m, nil

	case key.Matches(msg, browseKeyMap.nextPage):
		if m.q.Page+1 < m.state.List.TotalPages {
			m.q = m.q.WithPage(m.q.Page + 1)
			m.deps.Store.Dispatch(store.PageSet{Page: m.q.Page})
			return m, m.fetchListCmd()
		}
		return m, nil

	case key.Matches(msg, browseKeyMap.delete):
		if item, ok := m.list.SelectedItem().(BookItem); ok {
			book := item.Book
			if book.ID != nil {
				m.confirming = true
				m.toDelete = &book
				m.deleteErr = ""
			}
		}
		return m, nil

	case key.Matches(msg, browseKeyMap.create):
		ret := query.ReturnState{Page: m.q.Page, Filters: m.q.Filters}
		return m, func() tea.Msg {
			return NavigateMsg{Target: ViewDetail, BookID: 0, Return: ret}
		}

	case key.Matches(msg, browseKeyMap.open):
		if item, ok := m.list.SelectedItem().(BookItem); ok && item.Book.ID != nil {
			id := *item.Book.ID
			ret := query.ReturnState{Page: m.q.Page, Filters: m.q.Filters}
			return m, func() tea.Msg {
				return NavigateMsg{Target: ViewDetail, BookID: id, Return: ret}
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m BrowseModel) updateConfirm(msg tea.KeyMsg) (BrowseModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		if m.toDelete != nil {
			return m, m.deleteCmd(*m.toDelete)
		}
		return m, nil
	case "n", "N", "esc":
		m.confirming = false
		m.toDelete = nil
		m.deleteErr = ""
		return m, nil
	}
	return m, nil
}

func (m BrowseModel) updateFilterForm(msg tea.KeyMsg) (BrowseModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filterMode = false
		for i := range m.inputs {
			m.inputs[i].Blur()
		}
		return m, nil

	case "tab", "shift+tab", "down", "up":
		if msg.String() == "shift+tab" || msg.String() == "up" {
			m.focused = (m.focused + filterCount - 1) % filterCount
		} else {
			m.focused = (m.focused + 1) % filterCount
		}
		for i := range m.inputs {
			if i == m.focused {
				m.inputs[i].Focus()
			} else {
				m.inputs[i].Blur()
			}
		}
		return m, textinput.Blink

	case "enter":
		filters := query.Filters{
			Title: strings.TrimSpace(m.inputs[filterTitle].Value()),
			Genre: strings.TrimSpace(m.inputs[filterGenre].Value()),
		}
		if raw := strings.TrimSpace(m.inputs[filterAuthorID].Value()); raw != "" {
			if id, err := strconv.Atoi(raw); err == nil {
				filters.AuthorID = &id
			}
		}
		m.filterMode = false
		for i := range m.inputs {
			m.inputs[i].Blur()
		}
		// Filter changes rewrite the address to page 0, reduce the filter
		// event (which itself resets the stored page), and re-fetch.
		m.q = m.q.WithFilters(filters)
		m.deps.Store.Dispatch(store.FiltersSet{Filters: filters})
		return m, m.fetchListCmd()
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render("Book Catalog"))
	b.WriteString("\n")
	b.WriteString(StyleHelp.Render("/books?" + m.q.Encode()))
	b.WriteString("\n\n")

	switch {
	case m.filterMode:
		b.WriteString(StyleHeader.Render("Filters"))
		b.WriteString("\n")
		labels := []string{"Title:    ", "Author:   ", "Genre:    "}
		for i, in := range m.inputs {
			b.WriteString("  " + labels[i] + in.View() + "\n")
		}
		b.WriteString("\n" + StyleHelp.Render("enter apply · esc cancel · tab next field"))

	case m.confirming && m.toDelete != nil:
		b.WriteString(StyleError.Render(fmt.Sprintf("Delete %q?", m.toDelete.Title)))
		b.WriteString("\n")
		if m.deleteErr != "" {
			b.WriteString(StyleError.Render("  " + m.deleteErr))
			b.WriteString("\n")
		}
		b.WriteString(StyleHelp.Render("y confirm · n cancel"))

	case m.state.List.LoadingList:
		b.WriteString(StyleHelp.Render("Loading books..."))

	case m.state.List.Error != "":
		b.WriteString(StyleError.Render(m.state.List.Error))

	default:
		b.WriteString(m.list.View())
		b.WriteString("\n")
		b.WriteString(StyleHelp.Render(fmt.Sprintf("page %d/%d · %d books",
			m.state.List.Page+1, max(m.state.List.TotalPages, 1), m.state.List.TotalElements)))
	}

	b.WriteString("\n\n")
	b.WriteString(StyleHelp.Render("enter open · n new · d delete · f filter · r reset · [/] page · ctrl+o sign out · q quit"))
	return b.String()
}
