// Package store holds the process-wide client state tree and the pure
// reduction that is its only mutation path.
package store

import (
	"time"

	"github.com/blackwell-systems/catalogctl/internal/api"
	"github.com/blackwell-systems/catalogctl/internal/catalog"
	"github.com/blackwell-systems/catalogctl/internal/query"
)

// SessionState is the client's belief about whether, and as whom, the user
// is authenticated.
type SessionState struct {
	Authenticated bool
	TokenPresent  bool
	Authorities   []string
	Profile       *catalog.Profile

	SigningIn    bool
	SigningUp    bool
	Restoring    bool
	FailedSignIn bool
	FailedSignUp bool
	Errors       []api.FieldError
}

// Authenticating reports whether any session transition is in flight.
func (s SessionState) Authenticating() bool {
	return s.SigningIn || s.SigningUp || s.Restoring
}

// ListState is the catalog list view's slice of the tree.
type ListState struct {
	Items         []catalog.Book
	Page          int
	PageSize      int
	TotalPages    int
	TotalElements int
	Filters       query.Filters
	SortBy        string
	SortOrder     string
	Authors       []catalog.Author

	LoadingList    bool
	LoadingAuthors bool
	Deleting       bool
	Error          string
	DeleteError    string
}

// DetailState is the catalog detail view's slice of the tree.
type DetailState struct {
	Current *catalog.Book
	Loading bool
	Saving  bool
	Error   string
}

// Severity grades a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// DefaultAutoHide is applied when a notification is shown without an
// explicit auto-hide duration.
const DefaultAutoHide = 5 * time.Second

// NotificationState holds the single active notification. A new show
// supersedes the current one; nothing is queued.
type NotificationState struct {
	Open     bool
	Message  string
	Severity Severity
	AutoHide time.Duration // negative = stays until hidden explicitly
}

// State is the whole client state tree. There is no secondary cache; every
// view renders from this.
type State struct {
	Session      SessionState
	List         ListState
	Detail       DetailState
	Notification NotificationState
}

// Initial returns the tree's documented initial state.
func Initial() State {
	return State{
		List: ListState{
			PageSize:  10,
			SortBy:    "id",
			SortOrder: "DESC",
		},
		Notification: NotificationState{
			Severity: SeverityInfo,
			AutoHide: DefaultAutoHide,
		},
	}
}
