package topic

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"forumhub/internal/cli/client"
	"forumhub/pkg/models"
	"forumhub/pkg/utils"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List topics",
	Long:  "List forum topics newest first, one page at a time",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		if page > 0 {
			page-- // pages are zero-based on the wire
		}

		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		result, err := client.New().ListTopics(ctx, page)
		if err != nil {
			return fmt.Errorf("failed to list topics: %w", err)
		}

		printTopicPage(result)
		return nil
	},
}

func printTopicPage(result *models.Page[models.Topic]) {
	fmt.Printf("\nTopics (page %d of %d, %d total):\n\n",
		result.Number+1, result.TotalPages, result.TotalElements)

	for i, t := range result.Content {
		fmt.Printf("%d. %s\n", i+1, t.Title)
		fmt.Printf("   By: %s  •  %s\n", t.Username, utils.TimeAgo(t.CreatedAt))
		fmt.Printf("   Category: %s", t.Category)
		if len(t.Tags) > 0 {
			fmt.Printf("  Tags: %s", strings.Join(t.Tags, ", "))
		}
		fmt.Println()
		fmt.Printf("   Rating: %+d  ID: %d\n\n", t.Rating, t.ID)
	}

	if result.HasNext() {
		fmt.Printf("More: --page %d\n", result.Number+2)
	}
}

func init() {
	listCmd.Flags().Int("page", 1, "Page number")
	TopicCmd.AddCommand(listCmd)
}
