package admin

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"forumhub/internal/cli/client"
	"forumhub/pkg/utils"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show site counters",
	Long:  "Display user, topic, and comment totals with today's activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		d, err := client.New().GetAdminDashboard(ctx)
		if err != nil {
			return fmt.Errorf("failed to load dashboard: %w", err)
		}

		fmt.Println("\nSite Dashboard:")
		fmt.Printf("  Users:    %d  (%d active today)\n", d.TotalUsers, d.LoggedInTodayUsers)
		fmt.Printf("  Topics:   %d  (%d today)\n", d.TotalTopics, d.TopicsCreatedToday)
		fmt.Printf("  Comments: %d  (%d today)\n", d.TotalComments, d.CommentsToday)
		return nil
	},
}

func init() {
	AdminCmd.AddCommand(dashboardCmd)
}
