// Package actions orchestrates each catalog operation as a request event,
// a pipeline call, and exactly one terminal event.
package actions

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/catalogctl/internal/api"
	"github.com/blackwell-systems/catalogctl/internal/catalog"
	"github.com/blackwell-systems/catalogctl/internal/query"
	"github.com/blackwell-systems/catalogctl/internal/store"
)

// Operation kinds that may have overlapping in-flight fetches. Each carries
// a generation counter so a response from a superseded request is discarded:
// state reflects the most recently issued request, not the most recently
// resolved one.
const (
	opList = iota
	opAuthors
	opDetail
	opCount
)

// Handlers is the only caller of the request pipeline.
type Handlers struct {
	store  *store.Store
	client *api.Client

	gens [opCount]atomic.Uint64
}

// New wires handlers to the store and pipeline.
func New(st *store.Store, client *api.Client) *Handlers {
	return &Handlers{store: st, client: client}
}

// issue bumps the operation's generation and returns it.
func (h *Handlers) issue(op int) uint64 {
	return h.gens[op].Add(1)
}

// stale reports whether a newer request of the same kind has been issued.
func (h *Handlers) stale(op int, gen uint64) bool {
	return h.gens[op].Load() != gen
}

// FetchBooksList loads one page of the catalog with the given filters.
// Size, sort field and sort order are fixed (10, "id", "DESC").
func (h *Handlers) FetchBooksList(ctx context.Context, page int, filters query.Filters) {
	gen := h.issue(opList)
	h.store.Dispatch(store.BooksListRequested{})

	result, err := h.client.ListBooks(ctx, api.ListBooksRequest{
		Page:     page,
		Size:     api.DefaultPageSize,
		Title:    filters.Title,
		AuthorID: filters.AuthorID,
		Genre:    filters.Genre,
	})
	if h.stale(opList, gen) {
		return
	}
	if err != nil {
		h.store.Dispatch(store.BooksListFailed{Message: api.Display(err, "Failed to load books")})
		return
	}
	h.store.Dispatch(store.BooksListLoaded{Page: result})
}

// FetchAuthors loads the author reference list wholesale.
func (h *Handlers) FetchAuthors(ctx context.Context) {
	gen := h.issue(opAuthors)
	h.store.Dispatch(store.AuthorsRequested{})

	authors, err := h.client.ListAuthors(ctx)
	if h.stale(opAuthors, gen) {
		return
	}
	if err != nil {
		h.store.Dispatch(store.AuthorsFailed{Message: api.Display(err, "Failed to load authors")})
		return
	}
	h.store.Dispatch(store.AuthorsLoaded{Authors: authors})
}

// RefreshList loads authors and the books page concurrently, as the list
// view does on mount. Each fetch still dispatches its own event sequence.
func (h *Handlers) RefreshList(ctx context.Context, page int, filters query.Filters) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		h.FetchAuthors(ctx)
		return nil
	})
	g.Go(func() error {
		h.FetchBooksList(ctx, page, filters)
		return nil
	})
	_ = g.Wait()
}

// FetchBookDetail loads one book into the detail slice.
func (h *Handlers) FetchBookDetail(ctx context.Context, id int) {
	gen := h.issue(opDetail)
	h.store.Dispatch(store.BookDetailRequested{})

	book, err := h.client.GetBook(ctx, id)
	if h.stale(opDetail, gen) {
		return
	}
	if err != nil {
		h.store.Dispatch(store.BookDetailFailed{Message: api.Display(err, "Failed to load book")})
		return
	}
	h.store.Dispatch(store.BookDetailLoaded{Book: book})
}

// SaveBook creates (nil id) or updates (non-nil id) a record. The failure
// is dispatched and also returned so the form can react inline.
func (h *Handlers) SaveBook(ctx context.Context, book catalog.Book) (catalog.Book, error) {
	h.store.Dispatch(store.SaveBookRequested{})

	var (
		saved catalog.Book
		err   error
	)
	if book.IsNew() {
		saved, err = h.client.CreateBook(ctx, book)
	} else {
		saved, err = h.client.UpdateBook(ctx, book)
	}
	if err != nil {
		h.store.Dispatch(store.SaveBookFailed{Message: api.Display(err, "Failed to save book")})
		return catalog.Book{}, err
	}
	h.store.Dispatch(store.SaveBookSucceeded{Book: saved})
	return saved, nil
}

// DeleteBook removes a record. Success trims the list in place without
// re-fetching the page; the failure is dispatched and also returned.
func (h *Handlers) DeleteBook(ctx context.Context, id int) error {
	h.store.Dispatch(store.DeleteBookRequested{})

	if err := h.client.DeleteBook(ctx, id); err != nil {
		h.store.Dispatch(store.DeleteBookFailed{Message: api.Display(err, "Failed to delete book")})
		return err
	}
	h.store.Dispatch(store.DeleteBookSucceeded{ID: id})
	return nil
}
