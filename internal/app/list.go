package app

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/catalogctl/internal/query"
	"github.com/blackwell-systems/catalogctl/internal/store"
)

func newListCmd() *cobra.Command {
	var (
		flagPage     int
		flagTitle    string
		flagAuthorID int
		flagGenre    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books with optional filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := query.Filters{Title: flagTitle, Genre: flagGenre}
			if cmd.Flags().Changed("author-id") {
				id := flagAuthorID
				filters.AuthorID = &id
			}
			q := query.ListQuery{Page: flagPage, Filters: filters}

			st.Dispatch(store.FiltersSet{Filters: filters})
			st.Dispatch(store.PageSet{Page: q.Page})
			handlers.RefreshList(cmd.Context(), q.Page, q.Filters)

			state := st.State().List
			if state.Error != "" {
				return fmt.Errorf("%s", state.Error)
			}

			fmt.Println(color.CyanString("?" + q.Encode()))
			if len(state.Items) == 0 {
				fmt.Println("No books found.")
				return nil
			}

			for _, b := range state.Items {
				id := "new"
				if b.ID != nil {
					id = fmt.Sprintf("%d", *b.ID)
				}
				line := fmt.Sprintf("%-6s %s (%d)", id, b.Title, b.YearPublished)
				if author := b.AuthorName(); author != "" {
					line += " — " + author
				}
				if len(b.Genres) > 0 {
					line += " " + color.CyanString("[%s]", strings.Join(b.Genres, ","))
				}
				fmt.Println(line)
			}

			fmt.Printf("\npage %d/%d · %d books\n",
				state.Page+1, max(state.TotalPages, 1), state.TotalElements)
			return nil
		},
	}

	cmd.Flags().IntVar(&flagPage, "page", 0, "Page to fetch (0-based)")
	cmd.Flags().StringVar(&flagTitle, "title", "", "Filter by title")
	cmd.Flags().IntVar(&flagAuthorID, "author-id", 0, "Filter by author id")
	cmd.Flags().StringVar(&flagGenre, "genre", "", "Filter by genre")
	return cmd
}
