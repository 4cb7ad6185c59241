package topic

import "github.com/spf13/cobra"

var TopicCmd = &cobra.Command{
	Use:   "topic",
	Short: "Topic listing and posting commands",
	Long:  "List, search, view, and create forum topics",
}
