package store

import (
	"time"

	"github.com/blackwell-systems/catalogctl/internal/api"
	"github.com/blackwell-systems/catalogctl/internal/catalog"
	"github.com/blackwell-systems/catalogctl/internal/query"
)

// Event is the sealed union of everything that can change the state tree.
// Only types in this package satisfy it, so the reduction's type switch is
// the exhaustive list of transitions.
type Event interface {
	isEvent()
}

// --- Books list ---

type BooksListRequested struct{}

type BooksListLoaded struct {
	Page catalog.Page
}

type BooksListFailed struct {
	Message string
}

// --- Book detail ---

type BookDetailRequested struct{}

type BookDetailLoaded struct {
	Book catalog.Book
}

type BookDetailFailed struct {
	Message string
}

type CurrentBookCleared struct{}

// --- Save ---

type SaveBookRequested struct{}

type SaveBookSucceeded struct {
	Book catalog.Book
}

type SaveBookFailed struct {
	Message string
}

// --- Delete ---

type DeleteBookRequested struct{}

// DeleteBookSucceeded removes the matching item by identity and decrements
// the total; it deliberately does not trigger a re-fetch.
type DeleteBookSucceeded struct {
	ID int
}

type DeleteBookFailed struct {
	Message string
}

// --- Authors ---

type AuthorsRequested struct{}

type AuthorsLoaded struct {
	Authors []catalog.Author
}

type AuthorsFailed struct {
	Message string
}

// --- List navigation ---

// FiltersSet replaces the filters and returns the list to page 0.
type FiltersSet struct {
	Filters query.Filters
}

type PageSet struct {
	Page int
}

type FiltersReset struct{}

// --- Session ---

type SignInRequested struct{}

type SignInSucceeded struct {
	Profile catalog.Profile
}

type SignInFailed struct {
	Errors []api.FieldError
}

type SignUpRequested struct{}

type SignUpSucceeded struct{}

type SignUpFailed struct {
	Errors []api.FieldError
}

// SignedOut resets the whole session slice to its initial defaults.
type SignedOut struct{}

type ProfileRequested struct{}

type ProfileLoaded struct {
	Profile catalog.Profile
}

type ProfileFailed struct {
	Message string
}

// SessionExpired is dispatched from the pipeline's session-expired path;
// it is the sole channel by which a failed request forces logout.
type SessionExpired struct{}

// --- Notification ---

type NotificationShown struct {
	Message  string
	Severity Severity
	AutoHide time.Duration
}

type NotificationHidden struct{}

func (BooksListRequested) isEvent()  {}
func (BooksListLoaded) isEvent()     {}
func (BooksListFailed) isEvent()     {}
func (BookDetailRequested) isEvent() {}
func (BookDetailLoaded) isEvent()    {}
func (BookDetailFailed) isEvent()    {}
func (CurrentBookCleared) isEvent()  {}
func (SaveBookRequested) isEvent()   {}
func (SaveBookSucceeded) isEvent()   {}
func (SaveBookFailed) isEvent()      {}
func (DeleteBookRequested) isEvent() {}
func (DeleteBookSucceeded) isEvent() {}
func (DeleteBookFailed) isEvent()    {}
func (AuthorsRequested) isEvent()    {}
func (AuthorsLoaded) isEvent()       {}
func (AuthorsFailed) isEvent()       {}
func (FiltersSet) isEvent()          {}
func (PageSet) isEvent()             {}
func (FiltersReset) isEvent()        {}
func (SignInRequested) isEvent()     {}
func (SignInSucceeded) isEvent()     {}
func (SignInFailed) isEvent()        {}
func (SignUpRequested) isEvent()     {}
func (SignUpSucceeded) isEvent()     {}
func (SignUpFailed) isEvent()        {}
func (SignedOut) isEvent()           {}
func (ProfileRequested) isEvent()    {}
func (ProfileLoaded) isEvent()       {}
func (ProfileFailed) isEvent()       {}
func (SessionExpired) isEvent()      {}
func (NotificationShown) isEvent()   {}
func (NotificationHidden) isEvent()  {}
