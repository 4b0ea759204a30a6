package app

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear stored credentials",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			sessCtrl.SignOut()
			color.Green("✓ Signed out")
		},
	}
}
