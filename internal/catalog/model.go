package catalog

// Book is one record in the remote catalog.
// A nil ID marks a newly created record the service has not assigned yet.
type Book struct {
	ID            *int     `json:"id"`
	Title         string   `json:"title"`
	YearPublished int      `json:"yearPublished"`
	Genres        []string `json:"genres"`
	Author        *Author  `json:"author"`
}

// IsNew reports whether the book has not been saved to the service yet.
func (b Book) IsNew() bool {
	return b.ID == nil
}

// AuthorName returns the author's name or an empty string for unset authors.
func (b Book) AuthorName() string {
	if b.Author == nil {
		return ""
	}
	return b.Author.Name
}

// Author is reference data loaded wholesale from the catalog service.
type Author struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// Page is one page of the books list as returned by the list endpoint.
type Page struct {
	Content       []Book `json:"content"`
	TotalPages    int    `json:"totalPages"`
	TotalElements int    `json:"totalElements"`
	CurrentPage   int    `json:"currentPage"`
	PageSize      int    `json:"pageSize"`
}

// Profile describes the signed-in user as reported by the user service.
type Profile struct {
	ID            string   `json:"id"`
	Email         string   `json:"email"`
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Login         string   `json:"login"`
	Authorities   []string `json:"authorities"`
	Authenticated bool     `json:"authenticated"`
}

// AuthorByID returns the author with the given id, or nil.
func AuthorByID(authors []Author, id int) *Author {
	for i := range authors {
		if authors[i].ID == id {
			return &authors[i]
		}
	}
	return nil
}
