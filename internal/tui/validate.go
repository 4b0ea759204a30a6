package tui

import "github.com/blackwell-systems/catalogctl/internal/catalog"

// Year bounds accepted by the edit form.
const (
	minYear = 1
	maxYear = 2025
)

// ValidateBook runs the client-side form checks. The returned map is keyed
// by field name and lives only in the form's local state; validation
// failures are never dispatched into the store.
func ValidateBook(b catalog.Book) map[string]string {
	errs := map[string]string{}
	if b.Title == "" {
		errs["title"] = "Title is required"
	}
	if b.Author == nil {
		errs["author"] = "Author is required"
	}
	if b.YearPublished < minYear || b.YearPublished > maxYear {
		errs["year"] = "Year must be between 1 and 2025"
	}
	return errs
}
