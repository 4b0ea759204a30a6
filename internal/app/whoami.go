package app

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sessCtrl.Restore(cmd.Context()); err != nil {
				return fmt.Errorf("fetching profile: %w", err)
			}

			session := st.State().Session
			if !session.Authenticated || session.Profile == nil {
				fmt.Println("Not signed in.")
				if creds.HasToken() {
					color.Yellow("A stored token exists but no session could be restored.")
				}
				return nil
			}

			p := session.Profile
			fmt.Printf("%s %s (%s)\n", p.FirstName, p.LastName, p.Login)
			fmt.Printf("  email:       %s\n", p.Email)
			if len(p.Authorities) > 0 {
				fmt.Printf("  authorities: %s\n", strings.Join(p.Authorities, ", "))
			}
			fmt.Printf("  token:       %v\n", creds.HasToken())
			return nil
		},
	}
}
