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

var searchCmd = &cobra.Command{
	Use:   "search [title]",
	Short: "Search topics",
	Long:  "Search the forum by title, category, tags, and rating range",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := models.TopicSearchParams{}
		if len(args) > 0 {
			params.Title = strings.Join(args, " ")
		}
		params.Category, _ = cmd.Flags().GetString("category")
		params.Tags, _ = cmd.Flags().GetStringSlice("tags")
		params.SortBy, _ = cmd.Flags().GetString("sort")
		params.SortOrder, _ = cmd.Flags().GetString("order")

		if cmd.Flags().Changed("min-rating") {
			min, _ := cmd.Flags().GetInt("min-rating")
			params.MinRating = &min
		}
		if cmd.Flags().Changed("max-rating") {
			max, _ := cmd.Flags().GetInt("max-rating")
			params.MaxRating = &max
		}

		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		result, err := client.New().SearchTopics(ctx, params)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if len(result.Content) == 0 {
			fmt.Println("No topics matched.")
			return nil
		}

		printTopicPage(result)
		return nil
	},
}

func init() {
	searchCmd.Flags().String("category", "", "Filter by category")
	searchCmd.Flags().StringSlice("tags", nil, "Filter by tags")
	searchCmd.Flags().Int("min-rating", 0, "Minimum rating")
	searchCmd.Flags().Int("max-rating", 0, "Maximum rating")
	searchCmd.Flags().String("sort", "createdAt", "Sort field (createdAt, updatedAt, rating)")
	searchCmd.Flags().String("order", "desc", "Sort order (asc, desc)")
	TopicCmd.AddCommand(searchCmd)
}
