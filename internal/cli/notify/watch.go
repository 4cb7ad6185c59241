package notify

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"forumhub/internal/cli/client"
	"forumhub/internal/notify"
	"forumhub/pkg/models"
	"forumhub/pkg/utils"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch for new notifications",
	Long:  "Poll the server and print notifications as they arrive; Ctrl+C stops",
	RunE: func(cmd *cobra.Command, args []string) error {
		intervalSecs, _ := cmd.Flags().GetInt("interval")

		c := client.New()
		poller := notify.NewPoller(func(ctx context.Context) ([]models.Notification, error) {
			fetchCtx, cancel := utils.WithTimeout(ctx)
			defer cancel()
			return c.ListNotifications(fetchCtx)
		}, time.Duration(intervalSecs)*time.Second)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		go poller.Run(ctx)

		fmt.Println("Watching for notifications... (Ctrl+C to stop)")

		seen := make(map[int64]bool)
		first := true
		for items := range poller.Updates() {
			for _, n := range items {
				if seen[n.ID] {
					continue
				}
				seen[n.ID] = true
				if first {
					continue // baseline the existing feed silently
				}
				printNotification(n)
			}
			first = false
		}

		fmt.Println("\nStopped.")
		return nil
	},
}

func init() {
	watchCmd.Flags().Int("interval", 30, "Poll interval in seconds")
	NotifyCmd.AddCommand(watchCmd)
}
