package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"forumhub/internal/cli/client"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	Long:  "Drop the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := client.Session()
		if !store.Current().IsLoggedIn {
			fmt.Println("Not logged in.")
			return nil
		}
		store.Logout()
		fmt.Println("✓ Signed out")
		return nil
	},
}

func init() {
	AuthCmd.AddCommand(logoutCmd)
}
