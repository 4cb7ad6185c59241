package admin

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"forumhub/internal/cli/client"
	"forumhub/pkg/utils"
)

var topicEditCmd = &cobra.Command{
	Use:   "topic-edit <id>",
	Short: "Edit a topic",
	Long:  "Rewrite a topic's title, content, category, or tags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid topic id %q", args[0])
		}

		title, _ := cmd.Flags().GetString("title")
		content, _ := cmd.Flags().GetString("content")
		category, _ := cmd.Flags().GetString("category")
		tags, _ := cmd.Flags().GetStringSlice("tags")

		ctx, cancel := utils.WithLongTimeout(context.Background())
		defer cancel()

		updated, err := client.New().EditTopic(ctx, id, title, content, category, tags)
		if err != nil {
			return fmt.Errorf("failed to edit topic: %w", err)
		}

		fmt.Printf("✓ Topic updated: [%d] %s\n", updated.ID, updated.Title)
		return nil
	},
}

var commentDeleteCmd = &cobra.Command{
	Use:   "comment-delete <id>",
	Short: "Delete a comment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid comment id %q", args[0])
		}

		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		if err := client.New().DeleteComment(ctx, id); err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}

		fmt.Printf("✓ Comment %d deleted\n", id)
		return nil
	},
}

func init() {
	topicEditCmd.Flags().String("title", "", "New title")
	topicEditCmd.Flags().String("content", "", "New body")
	topicEditCmd.Flags().String("category", "", "New category")
	topicEditCmd.Flags().StringSlice("tags", nil, "New tags")
	AdminCmd.AddCommand(topicEditCmd)
	AdminCmd.AddCommand(commentDeleteCmd)
}
