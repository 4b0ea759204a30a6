package tui

import "github.com/blackwell-systems/catalogctl/internal/query"

// stateChangedMsg signals that the store reduced at least one event since
// the last snapshot. The receiving model re-reads the snapshot and re-arms
// the subscription.
type stateChangedMsg struct{}

// opDoneMsg marks the end of an async handler call. State updates arrive
// via stateChangedMsg; this only exists so commands have something to
// return.
type opDoneMsg struct{}

// saveResultMsg carries the synchronously re-raised save failure into the
// form, independent of the dispatched state update.
type saveResultMsg struct {
	err error
}

// deleteResultMsg carries the re-raised delete failure into the confirm
// overlay.
type deleteResultMsg struct {
	title string
	err   error
}

// NavigateMsg switches the active view.
type NavigateMsg struct {
	Target string // "login", "signup", "browse", "detail"

	// Detail navigation payload: the book to open (0 = new record) and the
	// list state to return to.
	BookID int
	Return query.ReturnState
}

// QuitAppMsg quits the program.
type QuitAppMsg struct{}
