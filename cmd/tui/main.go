package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"forumhub/internal/session"
	"forumhub/internal/tui"
	"forumhub/internal/tui/config"
	"forumhub/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		fmt.Println("Using default configuration...")
		cfg = config.Default()
	}

	// Logs go to a file; stdout belongs to the terminal UI
	logFile := logPath()
	_ = os.MkdirAll(filepath.Dir(logFile), 0700)
	logger.Init(logger.Config{
		Level:  "info",
		Format: "text",
		Output: logFile,
	})

	// Session persists across runs next to the config
	store := session.NewStore(session.NewFileStore(""))

	// Create TUI application
	app := tui.New(cfg, store)

	// Run the Bubble Tea program
	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func logPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "forumhub-tui.log"
	}
	return filepath.Join(home, ".config", "forumhub", "tui.log")
}
