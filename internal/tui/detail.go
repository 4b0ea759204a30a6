package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/catalogctl/internal/catalog"
	"github.com/blackwell-systems/catalogctl/internal/query"
	"github.com/blackwell-systems/catalogctl/internal/store"
)

// Edit form input indexes.
const (
	fieldTitle = iota
	fieldYear
	fieldGenres
	fieldAuthor
	fieldCount
)

// DetailModel is the detail/edit form for one book (id 0 = new record).
// Validation errors live only here; they are never dispatched.
type DetailModel struct {
	deps   Deps
	bookID int
	ret    query.ReturnState
	state  store.State

	inputs    []textinput.Model
	focused   int
	authorIdx int // index into loaded authors; -1 = unset
	populated bool

	fieldErrs map[string]string
	formErr   string

	width  int
	height int
}

// NewDetailModel creates the form. ret is the list state to return to.
func NewDetailModel(deps Deps, bookID int, ret query.ReturnState) DetailModel {
	inputs := make([]textinput.Model, fieldCount-1) // author is a picker, not an input
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].CharLimit = 128
	}
	inputs[fieldTitle].Placeholder = "title"
	inputs[fieldYear].Placeholder = "year published"
	inputs[fieldGenres].Placeholder = "genres (comma separated)"
	inputs[fieldTitle].Focus()

	return DetailModel{
		deps:      deps,
		bookID:    bookID,
		ret:       ret,
		inputs:    inputs,
		authorIdx: -1,
		fieldErrs: map[string]string{},
	}
}

func (m DetailModel) Init() tea.Cmd {
	h := m.deps.Handlers
	id := m.bookID
	if id == 0 {
		return func() tea.Msg {
			h.FetchAuthors(context.Background())
			return opDoneMsg{}
		}
	}
	return func() tea.Msg {
		h.FetchAuthors(context.Background())
		h.FetchBookDetail(context.Background(), id)
		return opDoneMsg{}
	}
}

// syncState pulls the snapshot and populates the form once the record
// arrives. Re-population is guarded so typed edits survive later updates.
func (m *DetailModel) syncState(st store.State) {
	m.state = st
	if m.populated || m.bookID == 0 {
		return
	}
	book := st.Detail.Current
	if book == nil || book.ID == nil || *book.ID != m.bookID {
		return
	}
	m.inputs[fieldTitle].SetValue(book.Title)
	m.inputs[fieldYear].SetValue(strconv.Itoa(book.YearPublished))
	m.inputs[fieldGenres].SetValue(strings.Join(book.Genres, ", "))
	if book.Author != nil {
		for i, a := range st.List.Authors {
			if a.ID == book.Author.ID {
				m.authorIdx = i
				break
			}
		}
	}
	m.populated = true
}

// formBook assembles the book from form state.
func (m DetailModel) formBook() catalog.Book {
	book := catalog.Book{
		Title: strings.TrimSpace(m.inputs[fieldTitle].Value()),
	}
	if m.bookID != 0 {
		id := m.bookID
		book.ID = &id
	}
	if year, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldYear].Value())); err == nil {
		book.YearPublished = year
	}
	for _, g := range strings.Split(m.inputs[fieldGenres].Value(), ",") {
		if g = strings.TrimSpace(g); g != "" {
			book.Genres = append(book.Genres, g)
		}
	}
	if m.authorIdx >= 0 && m.authorIdx < len(m.state.List.Authors) {
		author := m.state.List.Authors[m.authorIdx]
		book.Author = &author
	}
	return book
}

func (m DetailModel) saveCmd(book catalog.Book) tea.Cmd {
	h := m.deps.Handlers
	return func() tea.Msg {
		_, err := h.SaveBook(context.Background(), book)
		return saveResultMsg{err: err}
	}
}

// backCmd leaves the detail view: the current record is cleared and the
// list is rebuilt from the return handoff.
func (m DetailModel) backCmd() tea.Cmd {
	st := m.deps.Store
	ret := m.ret
	return func() tea.Msg {
		st.Dispatch(store.CurrentBookCleared{})
		return NavigateMsg{Target: ViewBrowse, Return: ret}
	}
}

func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case saveResultMsg:
		if msg.err != nil {
			// Inline form error from the re-raised failure, alongside the
			// dispatched state update.
			m.formErr = msg.err.Error()
			return m, nil
		}
		notifier := m.deps.Notify
		back := m.backCmd()
		return m, tea.Sequence(func() tea.Msg {
			notifier.Show("Book saved", store.SeveritySuccess, 0)
			return opDoneMsg{}
		}, back)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, func() tea.Msg { return QuitAppMsg{} }

		case "esc":
			return m, m.backCmd()

		case "tab", "down":
			return m.focusField((m.focused + 1) % fieldCount), textinput.Blink

		case "shift+tab", "up":
			return m.focusField((m.focused + fieldCount - 1) % fieldCount), textinput.Blink

		case "left", "right":
			if m.focused == fieldAuthor {
				return m.cycleAuthor(msg.String() == "right"), nil
			}

		case "ctrl+s", "enter":
			if msg.String() == "enter" && m.focused != fieldAuthor && m.focused != fieldCount-1 {
				return m.focusField((m.focused + 1) % fieldCount), textinput.Blink
			}
			book := m.formBook()
			m.fieldErrs = ValidateBook(book)
			m.formErr = ""
			if len(m.fieldErrs) > 0 {
				return m, nil
			}
			return m, m.saveCmd(book)
		}
	}

	if m.focused < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m DetailModel) focusField(idx int) DetailModel {
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

func (m DetailModel) cycleAuthor(forward bool) DetailModel {
	n := len(m.state.List.Authors)
	if n == 0 {
		return m
	}
	if forward {
		m.authorIdx = (m.authorIdx + 1) % n
	} else if m.authorIdx <= 0 {
		m.authorIdx = n - 1
	} else {
		m.authorIdx--
	}
	return m
}

func (m DetailModel) View() string {
	var b strings.Builder

	title := "New Book"
	if m.bookID != 0 {
		title = fmt.Sprintf("Book #%d", m.bookID)
	}
	b.WriteString(StyleHeader.Render(title))
	b.WriteString("\n\n")

	if m.bookID != 0 && m.state.Detail.Loading {
		b.WriteString(StyleHelp.Render("Loading book..."))
		return b.String()
	}
	if m.state.Detail.Error != "" && !m.populated && m.bookID != 0 {
		b.WriteString(StyleError.Render(m.state.Detail.Error))
		b.WriteString("\n\n" + StyleHelp.Render("esc back"))
		return b.String()
	}

	labels := []string{"Title:  ", "Year:   ", "Genres: "}
	fields := []string{"title", "year", ""}
	for i, in := range m.inputs {
		b.WriteString("  " + labels[i] + in.View() + "\n")
		if msg, ok := m.fieldErrs[fields[i]]; ok && fields[i] != "" {
			b.WriteString("  " + StyleError.Render(msg) + "\n")
		}
	}

	authorLabel := "(none — ←/→ to pick)"
	if m.authorIdx >= 0 && m.authorIdx < len(m.state.List.Authors) {
		a := m.state.List.Authors[m.authorIdx]
		authorLabel = fmt.Sprintf("%s (%s)", a.Name, a.Country)
	}
	marker := "  "
	if m.focused == fieldAuthor {
		marker = StyleHighlight.Render("› ")
	}
	b.WriteString(marker + "Author: " + StyleNormal.Render(authorLabel) + "\n")
	if msg, ok := m.fieldErrs["author"]; ok {
		b.WriteString("  " + StyleError.Render(msg) + "\n")
	}

	if m.state.Detail.Saving {
		b.WriteString("\n" + StyleHelp.Render("Saving..."))
	}
	if m.formErr != "" {
		b.WriteString("\n" + StyleError.Render(m.formErr))
	}

	b.WriteString("\n\n")
	b.WriteString(StyleHelp.Render("ctrl+s save · esc back · tab next field"))
	return b.String()
}
