package auth

import (
	"context"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"forumhub/internal/cli/client"
	"forumhub/pkg/utils"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to ForumHub",
	Long:  "Authenticate with your username or email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")

		if username == "" {
			fmt.Print("Username or email: ")
			fmt.Scanln(&username)
		}

		fmt.Print("Password: ")
		password, _ := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()

		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		c := client.New()
		token, err := c.Signin(ctx, username, string(password))
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		store := client.Session()
		if err := store.Login(token); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		sess := store.Current()
		fmt.Println("✓ Login successful!")
		fmt.Printf("  Welcome back, %s!\n", sess.Username)
		if sess.IsAdmin {
			fmt.Println("  Role: admin")
		}

		return nil
	},
}

func init() {
	loginCmd.Flags().String("username", "", "Username or email")
	AuthCmd.AddCommand(loginCmd)
}
