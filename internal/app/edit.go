package app

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/catalogctl/internal/catalog"
)

func newEditCmd() *cobra.Command {
	var (
		flagTitle    string
		flagYear     int
		flagGenres   []string
		flagAuthorID int
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update fields of an existing book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid book id %q", args[0])
			}

			handlers.FetchBookDetail(cmd.Context(), id)
			detail := st.State().Detail
			if detail.Error != "" {
				return fmt.Errorf("%s", detail.Error)
			}
			if detail.Current == nil {
				return fmt.Errorf("book %d not found", id)
			}
			book := *detail.Current

			if cmd.Flags().Changed("title") {
				book.Title = flagTitle
			}
			if cmd.Flags().Changed("year") {
				book.YearPublished = flagYear
			}
			if cmd.Flags().Changed("genre") {
				book.Genres = flagGenres
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
				return fmt.Errorf("updating book: %w", err)
			}
			color.Green("✓ Updated book #%d %q", *saved.ID, saved.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagTitle, "title", "", "Book title")
	cmd.Flags().IntVar(&flagYear, "year", 0, "Year published")
	cmd.Flags().StringSliceVar(&flagGenres, "genre", nil, "Genre (repeatable)")
	cmd.Flags().IntVar(&flagAuthorID, "author-id", 0, "Author id")
	return cmd
}
