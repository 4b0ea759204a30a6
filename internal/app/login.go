package app

import (
	"fmt"
	"os"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd() *cobra.Command {
	var flagLogin string
	var flagEmail string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the user service and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagLogin == "" && flagEmail == "" {
				return fmt.Errorf("provide --login or --email")
			}

			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}

			if err := sessCtrl.SignIn(cmd.Context(), flagEmail, flagLogin, password); err != nil {
				return signInError()
			}

			profile := st.State().Session.Profile
			if profile != nil {
				color.Green("✓ Signed in as %s %s (%s)", profile.FirstName, profile.LastName, profile.Login)
			} else {
				color.Green("✓ Signed in")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flagLogin, "login", "", "Account login")
	cmd.Flags().StringVar(&flagEmail, "email", "", "Account email")
	return cmd
}

// signInError renders the dispatched normalized errors as one CLI error.
func signInError() error {
	session := st.State().Session
	if len(session.Errors) == 0 {
		return fmt.Errorf("sign-in failed")
	}
	for _, e := range session.Errors {
		if e.Description != "" {
			fmt.Fprintln(os.Stderr, color.RedString("  %s: %s", e.Code, e.Description))
		} else {
			fmt.Fprintln(os.Stderr, color.RedString("  %s", e.Code))
		}
	}
	return fmt.Errorf("sign-in failed")
}

// promptPassword reads a password without echo when stdin is a terminal.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	if term.IsTerminal(int(syscall.Stdin)) {
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}
	var password string
	if _, err := fmt.Scanln(&password); err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return password, nil
}
