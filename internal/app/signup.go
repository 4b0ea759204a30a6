package app

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/catalogctl/internal/session"
)

func newSignupCmd() *cobra.Command {
	var params session.SignUpParams

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account (sign in afterwards)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if params.Login == "" || params.Email == "" {
				return fmt.Errorf("provide --login and --email")
			}
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}
			params.Password = password

			if err := sessCtrl.SignUp(cmd.Context(), params); err != nil {
				for _, e := range st.State().Session.Errors {
					fmt.Fprintln(os.Stderr, color.RedString("  %s: %s", e.Code, e.Description))
				}
				return fmt.Errorf("sign-up failed")
			}
			color.Green("✓ Account created — run 'catalogctl login' to sign in")
			return nil
		},
	}

	cmd.Flags().StringVar(&params.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&params.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&params.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&params.Login, "login", "", "Account login")
	return cmd
}
