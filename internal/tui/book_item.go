package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/blackwell-systems/catalogctl/internal/catalog"
)

// BookItem wraps a catalog book for the list widget.
type BookItem struct {
	Book catalog.Book
}

// FilterValue returns the string the list widget filters on.
func (b BookItem) FilterValue() string {
	return fmt.Sprintf("%s %s %s", b.Book.Title, b.Book.AuthorName(), strings.Join(b.Book.Genres, " "))
}

// bookDelegate renders one book row.
type bookDelegate struct{}

func (d bookDelegate) Height() int  { return 1 }
func (d bookDelegate) Spacing() int { return 0 }
func (d bookDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d bookDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	bookItem, ok := item.(BookItem)
	if !ok {
		return
	}
	b := bookItem.Book

	id := "new"
	if b.ID != nil {
		id = fmt.Sprintf("#%d", *b.ID)
	}
	idStr := fmt.Sprintf("%-6s", id)

	line := fmt.Sprintf("%s %s (%d)", idStr, b.Title, b.YearPublished)
	if author := b.AuthorName(); author != "" {
		line += " — " + author
	}

	genreStr := ""
	if len(b.Genres) > 0 {
		genreStr = " " + StyleGenre.Render("["+strings.Join(b.Genres, ",")+"]")
	}

	width := m.Width()
	if width > 0 {
		line = xansi.Truncate(line, width-4, "…")
	}

	if index == m.Index() {
		_, _ = fmt.Fprint(w, StyleHighlight.Render("› "+line)+genreStr)
		return
	}
	_, _ = fmt.Fprint(w, "  "+StyleNormal.Render(line)+genreStr)
}
