package store

import (
	"github.com/blackwell-systems/catalogctl/internal/api"
	"github.com/blackwell-systems/catalogctl/internal/catalog"
)

// Reduce maps (state, event) to the next state. It is pure: no I/O, no
// side effects, and an event value outside the union returns state
// unchanged so change detection stays cheap.
func Reduce(state State, event Event) State {
	switch ev := event.(type) {

	case BooksListRequested:
		state.List.LoadingList = true
		state.List.Error = ""
		return state

	case BooksListLoaded:
		state.List.LoadingList = false
		state.List.Items = ev.Page.Content
		state.List.TotalPages = ev.Page.TotalPages
		state.List.TotalElements = ev.Page.TotalElements
		state.List.Page = ev.Page.CurrentPage
		state.List.PageSize = ev.Page.PageSize
		return state

	case BooksListFailed:
		state.List.LoadingList = false
		state.List.Error = ev.Message
		state.List.Items = nil
		return state

	case BookDetailRequested:
		state.Detail.Loading = true
		state.Detail.Error = ""
		return state

	case BookDetailLoaded:
		book := ev.Book
		state.Detail.Loading = false
		state.Detail.Current = &book
		return state

	case BookDetailFailed:
		state.Detail.Loading = false
		state.Detail.Error = ev.Message
		return state

	case CurrentBookCleared:
		state.Detail.Current = nil
		return state

	case SaveBookRequested:
		state.Detail.Saving = true
		state.Detail.Error = ""
		return state

	case SaveBookSucceeded:
		book := ev.Book
		state.Detail.Saving = false
		state.Detail.Current = &book
		return state

	case SaveBookFailed:
		state.Detail.Saving = false
		state.Detail.Error = ev.Message
		return state

	case DeleteBookRequested:
		state.List.Deleting = true
		state.List.DeleteError = ""
		return state

	case DeleteBookSucceeded:
		state.List.Deleting = false
		kept := make([]catalog.Book, 0, len(state.List.Items))
		removed := false
		for _, b := range state.List.Items {
			if b.ID != nil && *b.ID == ev.ID {
				removed = true
				continue
			}
			kept = append(kept, b)
		}
		// Deleting an id that is not on the page leaves the slice and the
		// total untouched; the request lifecycle still completed.
		if removed {
			state.List.Items = kept
			state.List.TotalElements--
		}
		return state

	case DeleteBookFailed:
		state.List.Deleting = false
		state.List.DeleteError = ev.Message
		return state

	case AuthorsRequested:
		state.List.LoadingAuthors = true
		return state

	case AuthorsLoaded:
		state.List.LoadingAuthors = false
		state.List.Authors = ev.Authors
		return state

	case AuthorsFailed:
		state.List.LoadingAuthors = false
		state.List.Authors = nil
		return state

	case FiltersSet:
		state.List.Filters = ev.Filters
		state.List.Page = 0
		return state

	case PageSet:
		state.List.Page = ev.Page
		return state

	case FiltersReset:
		initial := Initial()
		state.List.Filters = initial.List.Filters
		state.List.Page = 0
		return state

	case SignInRequested:
		state.Session.SigningIn = true
		state.Session.FailedSignIn = false
		state.Session.Errors = nil
		return state

	case SignInSucceeded:
		profile := ev.Profile
		state.Session = SessionState{
			Authenticated: true,
			TokenPresent:  true,
			Authorities:   profile.Authorities,
			Profile:       &profile,
		}
		return state

	case SignInFailed:
		state.Session.SigningIn = false
		state.Session.FailedSignIn = true
		state.Session.Errors = ev.Errors
		return state

	case SignUpRequested:
		state.Session.SigningUp = true
		state.Session.FailedSignUp = false
		state.Session.Errors = nil
		return state

	case SignUpSucceeded:
		state.Session.SigningUp = false
		return state

	case SignUpFailed:
		state.Session.SigningUp = false
		state.Session.FailedSignUp = true
		state.Session.Errors = ev.Errors
		return state

	case SignedOut, SessionExpired:
		state.Session = Initial().Session
		return state

	case ProfileRequested:
		state.Session.Restoring = true
		return state

	case ProfileLoaded:
		profile := ev.Profile
		state.Session = SessionState{
			Authenticated: true,
			TokenPresent:  state.Session.TokenPresent,
			Authorities:   profile.Authorities,
			Profile:       &profile,
		}
		return state

	case ProfileFailed:
		state.Session.Restoring = false
		state.Session.Authenticated = false
		state.Session.Profile = nil
		state.Session.Errors = []api.FieldError{{Code: "PROFILE_ERROR", Description: ev.Message}}
		return state

	case NotificationShown:
		autoHide := ev.AutoHide
		if autoHide == 0 {
			autoHide = DefaultAutoHide
		}
		severity := ev.Severity
		if severity == "" {
			severity = SeverityInfo
		}
		state.Notification = NotificationState{
			Open:     true,
			Message:  ev.Message,
			Severity: severity,
			AutoHide: autoHide,
		}
		return state

	case NotificationHidden:
		state.Notification.Open = false
		state.Notification.Message = ""
		return state

	default:
		return state
	}
}
