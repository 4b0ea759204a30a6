package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one book",
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
			book := detail.Current
			if book == nil {
				return fmt.Errorf("book %d not found", id)
			}

			fmt.Printf("%s (%d)\n", book.Title, book.YearPublished)
			if book.Author != nil {
				fmt.Printf("  author: %s (%s)\n", book.Author.Name, book.Author.Country)
			}
			if len(book.Genres) > 0 {
				fmt.Printf("  genres: %s\n", strings.Join(book.Genres, ", "))
			}
			return nil
		},
	}
}
