package admin

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"forumhub/internal/cli/client"
	"forumhub/pkg/utils"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage categories",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		categories, err := client.New().ListAdminCategories(ctx)
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}

		fmt.Printf("\nCategories (%d):\n\n", len(categories))
		for _, c := range categories {
			fmt.Printf("  [%d] %s", c.ID, c.Name)
			if c.Description != "" {
				fmt.Printf(" — %s", c.Description)
			}
			fmt.Println()
		}
		return nil
	},
}

var categoryCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")

		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		created, err := client.New().CreateCategory(ctx, args[0], description)
		if err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}

		fmt.Printf("✓ Category created: [%d] %s\n", created.ID, created.Name)
		return nil
	},
}

var categoryUpdateCmd = &cobra.Command{
	Use:   "update <id> <name>",
	Short: "Rename a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid category id %q", args[0])
		}
		description, _ := cmd.Flags().GetString("description")

		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		updated, err := client.New().UpdateCategory(ctx, id, args[1], description)
		if err != nil {
			return fmt.Errorf("failed to update category: %w", err)
		}

		fmt.Printf("✓ Category updated: [%d] %s\n", updated.ID, updated.Name)
		return nil
	},
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid category id %q", args[0])
		}

		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		if err := client.New().DeleteCategory(ctx, id); err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}

		fmt.Printf("✓ Category %d deleted\n", id)
		return nil
	},
}

func init() {
	categoryCreateCmd.Flags().String("description", "", "Category description")
	categoryUpdateCmd.Flags().String("description", "", "Category description")
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryCreateCmd)
	categoryCmd.AddCommand(categoryUpdateCmd)
	categoryCmd.AddCommand(categoryDeleteCmd)
	AdminCmd.AddCommand(categoryCmd)
}
