package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/blackwell-systems/catalogctl/internal/catalog"
)

// DefaultPageSize is the fixed page size for every list fetch.
const DefaultPageSize = 10

// Default sort for the list endpoint.
const (
	DefaultSortBy    = "id"
	DefaultSortOrder = "DESC"
)

// ListBooksRequest is the payload shape of the list endpoint. AuthorID is
// nil when the filter is unset; the service expects an explicit null.
type ListBooksRequest struct {
	Page      int    `json:"page"`
	Size      int    `json:"size"`
	Title     string `json:"title"`
	AuthorID  *int   `json:"authorId"`
	Genre     string `json:"genre"`
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
}

// ListBooks fetches one page of the catalog.
func (c *Client) ListBooks(ctx context.Context, req ListBooksRequest) (catalog.Page, error) {
	if req.Size == 0 {
		req.Size = DefaultPageSize
	}
	if req.SortBy == "" {
		req.SortBy = DefaultSortBy
	}
	if req.SortOrder == "" {
		req.SortOrder = DefaultSortOrder
	}
	var page catalog.Page
	err := c.doJSON(ctx, http.MethodPost, c.catalogURL("api", "book", "_list"), req, &page)
	return page, err
}

// ListAuthors fetches the full author reference list.
func (c *Client) ListAuthors(ctx context.Context) ([]catalog.Author, error) {
	var authors []catalog.Author
	err := c.doJSON(ctx, http.MethodGet, c.catalogURL("api", "author"), nil, &authors)
	return authors, err
}

// GetBook fetches a single book by id.
func (c *Client) GetBook(ctx context.Context, id int) (catalog.Book, error) {
	var book catalog.Book
	err := c.doJSON(ctx, http.MethodGet, c.catalogURL("api", "book", strconv.Itoa(id)), nil, &book)
	return book, err
}

// CreateBook creates a new record; the submitted id must be null.
func (c *Client) CreateBook(ctx context.Context, book catalog.Book) (catalog.Book, error) {
	var created catalog.Book
	err := c.doJSON(ctx, http.MethodPost, c.catalogURL("api", "book"), book, &created)
	return created, err
}

// UpdateBook replaces an existing record.
func (c *Client) UpdateBook(ctx context.Context, book catalog.Book) (catalog.Book, error) {
	var updated catalog.Book
	err := c.doJSON(ctx, http.MethodPut, c.catalogURL("api", "book", strconv.Itoa(*book.ID)), book, &updated)
	return updated, err
}

// DeleteBook removes a record by id.
func (c *Client) DeleteBook(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, c.catalogURL("api", "book", strconv.Itoa(id)), nil, nil)
}
