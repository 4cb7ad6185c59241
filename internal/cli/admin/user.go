package admin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"forumhub/internal/cli/client"
	"forumhub/pkg/models"
	"forumhub/pkg/utils"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		users, err := client.New().ListUsers(ctx)
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		fmt.Printf("\nUsers (%d):\n\n", len(users))
		for _, u := range users {
			fmt.Printf("  [%d] %s\n", u.ID, u.Username)
		}
		return nil
	},
}

var userUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a user",
	Long:  "Change a user's username and/or replace their avatar",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[0])
		}

		username, _ := cmd.Flags().GetString("username")
		avatarPath, _ := cmd.Flags().GetString("avatar")

		if username == "" && avatarPath == "" {
			return fmt.Errorf("nothing to update; pass --username and/or --avatar")
		}

		var avatar *models.AttachmentUpload
		if avatarPath != "" {
			data, err := os.ReadFile(avatarPath)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", avatarPath, err)
			}
			avatar = &models.AttachmentUpload{
				Filename: filepath.Base(avatarPath),
				Data:     data,
			}
		}

		ctx, cancel := utils.WithLongTimeout(context.Background())
		defer cancel()

		updated, err := client.New().UpdateUser(ctx, id, username, avatar)
		if err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		fmt.Printf("✓ User updated: [%d] %s\n", updated.ID, updated.Username)
		return nil
	},
}

func init() {
	userUpdateCmd.Flags().String("username", "", "New username")
	userUpdateCmd.Flags().String("avatar", "", "Avatar image path")
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userUpdateCmd)
	AdminCmd.AddCommand(userCmd)
}
