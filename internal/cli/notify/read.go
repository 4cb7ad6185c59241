package notify

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"forumhub/internal/cli/client"
	"forumhub/pkg/utils"
)

var readCmd = &cobra.Command{
	Use:   "read [notification-id]",
	Short: "Mark notifications read",
	Long:  "Mark one notification read, or all with --all",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		c := client.New()

		if all {
			if err := c.MarkAllNotificationsRead(ctx); err != nil {
				return fmt.Errorf("failed to mark all read: %w", err)
			}
			fmt.Println("✓ All notifications marked read")
			return nil
		}

		if len(args) != 1 {
			return fmt.Errorf("pass a notification id or --all")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid notification id %q", args[0])
		}

		if err := c.MarkNotificationRead(ctx, id); err != nil {
			return fmt.Errorf("failed to mark read: %w", err)
		}
		fmt.Printf("✓ Notification %d marked read\n", id)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [notification-id]",
	Short: "Delete notifications",
	Long:  "Delete one notification, or all with --all",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		c := client.New()

		if all {
			if err := c.DeleteAllNotifications(ctx); err != nil {
				return fmt.Errorf("failed to delete all: %w", err)
			}
			fmt.Println("✓ All notifications deleted")
			return nil
		}

		if len(args) != 1 {
			return fmt.Errorf("pass a notification id or --all")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid notification id %q", args[0])
		}

		if err := c.DeleteNotification(ctx, id); err != nil {
			return fmt.Errorf("failed to delete: %w", err)
		}
		fmt.Printf("✓ Notification %d deleted\n", id)
		return nil
	},
}

func init() {
	readCmd.Flags().Bool("all", false, "Mark all notifications read")
	deleteCmd.Flags().Bool("all", false, "Delete all notifications")
	NotifyCmd.AddCommand(readCmd)
	NotifyCmd.AddCommand(deleteCmd)
}
