package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"forumhub/internal/cli/admin"
	"forumhub/internal/cli/auth"
	cliconfig "forumhub/internal/cli/config"
	"forumhub/internal/cli/notify"
	"forumhub/internal/cli/topic"
	"forumhub/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "forumhub",
	Short: "ForumHub command-line client",
	Long:  "Browse topics, post comments, and manage the forum from the terminal",
}

func main() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(auth.AuthCmd)
	rootCmd.AddCommand(topic.TopicCmd)
	rootCmd.AddCommand(notify.NotifyCmd)
	rootCmd.AddCommand(admin.AdminCmd)
	rootCmd.AddCommand(cliconfig.ConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	logger.Init(logger.Config{Level: "warn", Output: "stderr"})

	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.http_port", 8080)

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".forumhub"))
	}
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("FORUMHUB")
	viper.AutomaticEnv()

	// Missing config file just means defaults
	_ = viper.ReadInConfig()
}
