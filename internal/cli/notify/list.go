package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"forumhub/internal/cli/client"
	"forumhub/internal/notify"
	"forumhub/pkg/models"
	"forumhub/pkg/utils"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications",
	Long:  "Show your notifications grouped by day, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		unreadOnly, _ := cmd.Flags().GetBool("unread")

		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		items, err := client.New().ListNotifications(ctx)
		if err != nil {
			return fmt.Errorf("failed to list notifications: %w", err)
		}

		feed := notify.NewFeed()
		feed.Replace(items)

		if feed.UnreadCount() == 0 && unreadOnly {
			fmt.Println("No unread notifications.")
			return nil
		}

		grouped := feed.Grouped(time.Now())
		for _, group := range []notify.DayGroup{notify.GroupToday, notify.GroupYesterday, notify.GroupOlder} {
			bucket, ok := grouped[group]
			if !ok {
				continue
			}

			printed := false
			for _, n := range bucket {
				if unreadOnly && n.Read {
					continue
				}
				if !printed {
					fmt.Printf("\n%s:\n", group.Label())
					printed = true
				}
				printNotification(n)
			}
		}

		fmt.Printf("\n%d unread of %d total\n", feed.UnreadCount(), len(feed.Items()))
		return nil
	},
}

func printNotification(n models.Notification) {
	marker := " "
	if !n.Read {
		marker = "*"
	}
	fmt.Printf("  %s [%d] %s: %s", marker, n.ID, n.ActorUsername, n.Message)
	if n.TopicID != 0 {
		fmt.Printf("  (topic %d)", n.TopicID)
	}
	fmt.Printf("  %s\n", utils.TimeAgo(n.Timestamp))
}

func init() {
	listCmd.Flags().Bool("unread", false, "Only show unread notifications")
	NotifyCmd.AddCommand(listCmd)
}
