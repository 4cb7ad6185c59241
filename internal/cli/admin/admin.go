package admin

import "github.com/spf13/cobra"

var AdminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Moderation commands",
	Long:  "Site dashboard plus category, tag, user, and content management",
}
