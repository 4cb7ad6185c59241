package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"forumhub/internal/cli/client"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display current ForumHub CLI configuration and session state",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("ForumHub Configuration:")
		fmt.Println("")
		fmt.Printf("Server:\n")
		fmt.Printf("  Base URL: %s\n", client.BaseURL())
		fmt.Println("")

		sess := client.Session().Current()
		if sess.IsLoggedIn {
			fmt.Printf("User:\n")
			fmt.Printf("  Username: %s\n", sess.Username)
			if sess.IsAdmin {
				fmt.Printf("  Role: admin\n")
			}
			token := viper.GetString("user.token")
			if len(token) > 20 {
				fmt.Printf("  Token: %s...\n", token[:20])
			}
			fmt.Printf("  Status: ✓ Logged in\n")
		} else {
			fmt.Printf("User: Not logged in\n")
			fmt.Printf("  Run 'forumhub auth login' to authenticate\n")
		}
	},
}

func init() {
	ConfigCmd.AddCommand(showCmd)
}
