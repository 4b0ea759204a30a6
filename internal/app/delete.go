package app

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	var flagYes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a book record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid book id %q", args[0])
			}

			if !flagYes {
				fmt.Printf("Delete book %d? (y/N): ", id)
				var response string
				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" && response != "yes" {
					return fmt.Errorf("aborted")
				}
			}

			if err := handlers.DeleteBook(cmd.Context(), id); err != nil {
				return fmt.Errorf("deleting book: %w", err)
			}
			color.Green("✓ Deleted book %d", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip confirmation")
	return cmd
}
