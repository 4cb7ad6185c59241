package topic

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"forumhub/internal/cli/client"
	"forumhub/pkg/utils"
)

var showCmd = &cobra.Command{
	Use:   "show <topic-id>",
	Short: "Show a topic",
	Long:  "Display a topic with its first page of comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topicID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid topic id %q", args[0])
		}

		page, _ := cmd.Flags().GetInt("page")
		if page > 0 {
			page--
		}

		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		t, err := client.New().GetTopic(ctx, topicID, page)
		if err != nil {
			return fmt.Errorf("failed to load topic: %w", err)
		}

		fmt.Printf("\n%s\n", t.Title)
		fmt.Printf("By %s  •  %s  •  Rating %+d\n", t.Username, utils.TimeAgo(t.CreatedAt), t.Rating)
		fmt.Printf("Category: %s", t.Category)
		if len(t.Tags) > 0 {
			fmt.Printf("  Tags: %s", strings.Join(t.Tags, ", "))
		}
		fmt.Println()
		if len(t.Attachments) > 0 {
			fmt.Printf("Attachments: %d\n", len(t.Attachments))
		}
		fmt.Printf("\n%s\n", t.Content)

		if len(t.Comments) > 0 {
			fmt.Printf("\nComments:\n\n")
			for _, c := range t.Comments {
				fmt.Printf("  %s  •  %s  •  %+d\n", c.Username, utils.TimeAgo(c.CreatedAt), c.Rating)
				fmt.Printf("  %s\n", c.Content)
				if c.ReplyCount > 0 {
					fmt.Printf("  [%d replies]\n", c.ReplyCount)
				}
				fmt.Println()
			}
		}

		return nil
	},
}

func init() {
	showCmd.Flags().Int("page", 1, "Comment page")
	TopicCmd.AddCommand(showCmd)
}
