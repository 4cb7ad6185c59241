package admin

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"forumhub/internal/cli/client"
	"forumhub/pkg/utils"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags",
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		tags, err := client.New().ListTags(ctx)
		if err != nil {
			return fmt.Errorf("failed to list tags: %w", err)
		}

		fmt.Printf("\nTags (%d):\n\n", len(tags))
		for _, t := range tags {
			fmt.Printf("  [%d] #%s\n", t.ID, t.Name)
		}
		return nil
	},
}

var tagCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		created, err := client.New().CreateTag(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to create tag: %w", err)
		}

		fmt.Printf("✓ Tag created: [%d] #%s\n", created.ID, created.Name)
		return nil
	},
}

var tagUpdateCmd = &cobra.Command{
	Use:   "update <id> <name>",
	Short: "Rename a tag",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid tag id %q", args[0])
		}

		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		updated, err := client.New().UpdateTag(ctx, id, args[1])
		if err != nil {
			return fmt.Errorf("failed to update tag: %w", err)
		}

		fmt.Printf("✓ Tag updated: [%d] #%s\n", updated.ID, updated.Name)
		return nil
	},
}

var tagDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid tag id %q", args[0])
		}

		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		if err := client.New().DeleteTag(ctx, id); err != nil {
			return fmt.Errorf("failed to delete tag: %w", err)
		}

		fmt.Printf("✓ Tag %d deleted\n", id)
		return nil
	},
}

func init() {
	tagCmd.AddCommand(tagListCmd)
	tagCmd.AddCommand(tagCreateCmd)
	tagCmd.AddCommand(tagUpdateCmd)
	tagCmd.AddCommand(tagDeleteCmd)
	AdminCmd.AddCommand(tagCmd)
}
