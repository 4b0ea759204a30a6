package actions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/catalogctl/internal/api"
	"github.com/blackwell-systems/catalogctl/internal/catalog"
	"github.com/blackwell-systems/catalogctl/internal/query"
	"github.com/blackwell-systems/catalogctl/internal/store"
)

type noToken struct{}

func (noToken) Token() string { return "" }

func intPtr(v int) *int { return &v }

// pageOf builds the list endpoint's response for a 25-book catalog paged by
// tens: pages 0 and 1 carry 10 books, page 2 carries 5.
func pageOf(page int) catalog.Page {
	count := 10
	if page == 2 {
		count = 5
	}
	books := make([]catalog.Book, count)
	for i := range books {
		id := page*10 + i + 1
		books[i] = catalog.Book{ID: intPtr(id), Title: fmt.Sprintf("Book %d", id)}
	}
	return catalog.Page{
		Content:       books,
		TotalPages:    3,
		TotalElements: 25,
		CurrentPage:   page,
		PageSize:      10,
	}
}

func newHandlers(t *testing.T, handler http.Handler) (*Handlers, *store.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	st := store.New()
	client := api.New(srv.URL, srv.URL, noToken{}, nil)
	return New(st, client), st
}

func TestFetchBooksList_Pagination(t *testing.T) {
	h, st := newHandlers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/book/_list", r.URL.Path)
		var req api.ListBooksRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, 10, req.Size)
		_ = json.NewEncoder(w).Encode(pageOf(req.Page))
	}))

	h.FetchBooksList(context.Background(), 0, query.Filters{})

	state := st.State()
	assert.False(t, state.List.LoadingList)
	assert.Len(t, state.List.Items, 10)
	assert.Equal(t, 3, state.List.TotalPages)
	assert.Equal(t, 25, state.List.TotalElements)
	assert.Equal(t, 0, state.List.Page)

	h.FetchBooksList(context.Background(), 2, query.Filters{})

	state = st.State()
	assert.Len(t, state.List.Items, 5)
	assert.Equal(t, 2, state.List.Page)
}

func TestFetchBooksList_ForwardsFilters(t *testing.T) {
	var got api.ListBooksRequest
	h, _ := newHandlers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(catalog.Page{})
	}))

	h.FetchBooksList(context.Background(), 1, query.Filters{
		Title:    "dune",
		AuthorID: intPtr(7),
		Genre:    "Sci-Fi",
	})

	assert.Equal(t, 1, got.Page)
	assert.Equal(t, "dune", got.Title)
	require.NotNil(t, got.AuthorID)
	assert.Equal(t, 7, *got.AuthorID)
	assert.Equal(t, "Sci-Fi", got.Genre)
}

func TestFetchBooksList_RemoteFailure(t *testing.T) {
	h, st := newHandlers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"catalog down"}`))
	}))

	h.FetchBooksList(context.Background(), 0, query.Filters{})

	state := st.State()
	assert.False(t, state.List.LoadingList)
	assert.Equal(t, "catalog down", state.List.Error)
	assert.Empty(t, state.List.Items)
}

func TestFetchBooksList_StaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	calls := 0
	h, st := newHandlers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()
		var req api.ListBooksRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if first {
			<-release // hold the first response until the second resolves
		}
		_ = json.NewEncoder(w).Encode(pageOf(req.Page))
	}))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		h.FetchBooksList(context.Background(), 0, query.Filters{})
	}()

	// Wait for the first request to reach the server, then issue the second.
	for {
		mu.Lock()
		n := calls
		mu.Unlock()
		if n >= 1 {
			break
		}
		time.Sleep(time.Millisecond)
	}
	h.FetchBooksList(context.Background(), 2, query.Filters{})
	require.Equal(t, 2, st.State().List.Page)

	close(release)
	wg.Wait()

	// The superseded page-0 response must not overwrite the page-2 state.
	state := st.State()
	assert.Equal(t, 2, state.List.Page)
	assert.Len(t, state.List.Items, 5)
}

func TestFetchAuthors(t *testing.T) {
	h, st := newHandlers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/author", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":1,"name":"Frank Herbert","country":"USA"}]`))
	}))

	h.FetchAuthors(context.Background())

	state := st.State()
	assert.False(t, state.List.LoadingAuthors)
	require.Len(t, state.List.Authors, 1)
	assert.Equal(t, "Frank Herbert", state.List.Authors[0].Name)
}

func TestRefreshList_LoadsBoth(t *testing.T) {
	h, st := newHandlers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/author":
			_, _ = w.Write([]byte(`[{"id":1,"name":"Frank Herbert"}]`))
		case "/api/book/_list":
			_ = json.NewEncoder(w).Encode(pageOf(0))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	h.RefreshList(context.Background(), 0, query.Filters{})

	state := st.State()
	assert.Len(t, state.List.Authors, 1)
	assert.Len(t, state.List.Items, 10)
}

func TestFetchBookDetail(t *testing.T) {
	h, st := newHandlers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/book/5", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":5,"title":"Dune","genres":["Sci-Fi"]}`))
	}))

	h.FetchBookDetail(context.Background(), 5)

	state := st.State()
	assert.False(t, state.Detail.Loading)
	require.NotNil(t, state.Detail.Current)
	assert.Equal(t, "Dune", state.Detail.Current.Title)
}

func TestSaveBook_CreateVsUpdate(t *testing.T) {
	var gotMethod, gotPath string
	h, st := newHandlers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		var book catalog.Book
		_ = json.NewDecoder(r.Body).Decode(&book)
		if book.ID == nil {
			book.ID = intPtr(42)
		}
		_ = json.NewEncoder(w).Encode(book)
	}))

	saved, err := h.SaveBook(context.Background(), catalog.Book{Title: "Dune"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/book", gotPath)
	require.NotNil(t, saved.ID)
	assert.Equal(t, 42, *saved.ID)

	_, err = h.SaveBook(context.Background(), catalog.Book{ID: intPtr(42), Title: "Dune (rev)"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/book/42", gotPath)

	state := st.State()
	assert.False(t, state.Detail.Saving)
	require.NotNil(t, state.Detail.Current)
	assert.Equal(t, "Dune (rev)", state.Detail.Current.Title)
}

func TestSaveBook_FailureDispatchedAndReturned(t *testing.T) {
	h, st := newHandlers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"code":"EMPTY_TITLE","description":"title must not be empty"}]}`))
	}))

	_, err := h.SaveBook(context.Background(), catalog.Book{})

	require.Error(t, err)
	state := st.State()
	assert.False(t, state.Detail.Saving)
	assert.Contains(t, state.Detail.Error, "EMPTY_TITLE")
}

func TestDeleteBook_TrimsListInPlace(t *testing.T) {
	h, st := newHandlers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/book/2", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	st.Dispatch(store.BooksListLoaded{Page: catalog.Page{
		Content: []catalog.Book{
			{ID: intPtr(1), Title: "Dune"},
			{ID: intPtr(2), Title: "Solaris"},
		},
		TotalElements: 25,
		TotalPages:    3,
		PageSize:      10,
	}})

	require.NoError(t, h.DeleteBook(context.Background(), 2))

	state := st.State()
	assert.False(t, state.List.Deleting)
	require.Len(t, state.List.Items, 1)
	assert.Equal(t, "Dune", state.List.Items[0].Title)
	assert.Equal(t, 24, state.List.TotalElements)
}

func TestDeleteBook_FailureDispatchedAndReturned(t *testing.T) {
	h, st := newHandlers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"book is referenced"}`))
	}))

	err := h.DeleteBook(context.Background(), 1)

	require.Error(t, err)
	state := st.State()
	assert.False(t, state.List.Deleting)
	assert.Equal(t, "book is referenced", state.List.DeleteError)
}
