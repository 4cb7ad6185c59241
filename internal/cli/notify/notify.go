package notify

import "github.com/spf13/cobra"

var NotifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Notification commands",
	Long:  "List, read, and watch your notifications",
}
