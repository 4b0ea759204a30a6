package app

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/catalogctl/internal/catalog"
)

func newCreateCmd() *cobra.Command {
	var (
		flagTitle    string
		flagYear     int
		flagGenres   []string
		flagAuthorID int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a book record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			book := catalog.Book{
				Title:         flagTitle,
				YearPublished: flagYear,
				Genres:        flagGenres,
			}
			if cmd.Flags().Changed("author-id") {
				handlers.FetchAuthors(cmd.Context())
				author := catalog.AuthorByID(st.State().List.Authors, flagAuthorID)
				if author == nil {
					return fmt.Errorf("author %d not found", flagAuthorID)
				}
				book.Author = author
			}

			saved, err := handlers.SaveBook(cmd.Context(), book)
			if err != nil {
				return fmt.Errorf("creating book: %w", err)
			}
			color.Green("✓ Created book #%d %q", *saved.ID, saved.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagTitle, "title", "", "Book title")
	cmd.Flags().IntVar(&flagYear, "year", 0, "Year published")
	cmd.Flags().StringSliceVar(&flagGenres, "genre", nil, "Genre (repeatable)")
	cmd.Flags().IntVar(&flagAuthorID, "author-id", 0, "Author id")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}
