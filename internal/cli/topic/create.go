package topic

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"forumhub/internal/cli/client"
	"forumhub/pkg/models"
	"forumhub/pkg/utils"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a topic",
	Long:  "Post a new topic with optional attachments and a banner image",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		content, _ := cmd.Flags().GetString("content")
		category, _ := cmd.Flags().GetString("category")
		tags, _ := cmd.Flags().GetStringSlice("tags")
		attachPaths, _ := cmd.Flags().GetStringSlice("attach")
		bannerPath, _ := cmd.Flags().GetString("banner")

		if err := utils.ValidateTopicTitle(title); err != nil {
			return err
		}
		if err := utils.ValidateContent(content); err != nil {
			return err
		}

		req := models.CreateTopicRequest{
			Title:    title,
			Content:  content,
			Category: category,
			Tags:     tags,
		}

		for _, path := range attachPaths {
			upload, err := readUpload(path)
			if err != nil {
				return err
			}
			req.Attachments = append(req.Attachments, upload)
		}
		if bannerPath != "" {
			upload, err := readUpload(bannerPath)
			if err != nil {
				return err
			}
			req.Banner = &upload
		}

		ctx, cancel := utils.WithLongTimeout(context.Background())
		defer cancel()

		created, err := client.New().CreateTopic(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to create topic: %w", err)
		}

		fmt.Println("✓ Topic created!")
		fmt.Printf("  Title: %s\n", created.Title)
		fmt.Printf("  ID: %d\n", created.ID)

		return nil
	},
}

func readUpload(path string) (models.AttachmentUpload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.AttachmentUpload{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return models.AttachmentUpload{
		Filename: filepath.Base(path),
		Data:     data,
	}, nil
}

func init() {
	createCmd.Flags().String("title", "", "Topic title (required)")
	createCmd.Flags().String("content", "", "Topic body (required)")
	createCmd.Flags().String("category", "", "Category name")
	createCmd.Flags().StringSlice("tags", nil, "Tags")
	createCmd.Flags().StringSlice("attach", nil, "Attachment file paths")
	createCmd.Flags().String("banner", "", "Banner image path")
	createCmd.MarkFlagRequired("title")
	createCmd.MarkFlagRequired("content")
	TopicCmd.AddCommand(createCmd)
}
