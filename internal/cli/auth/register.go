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

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account",
	Long:  "Create a new ForumHub account with username, email, and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		email, _ := cmd.Flags().GetString("email")

		if username == "" {
			fmt.Print("Username: ")
			fmt.Scanln(&username)
		}
		if email == "" {
			fmt.Print("Email: ")
			fmt.Scanln(&email)
		}

		if err := utils.ValidateUsername(username); err != nil {
			return err
		}
		if err := utils.ValidateEmail(email); err != nil {
			return err
		}

		fmt.Print("Password: ")
		password, _ := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()

		fmt.Print("Confirm password: ")
		confirm, _ := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()

		if string(password) != string(confirm) {
			return fmt.Errorf("passwords do not match")
		}

		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		if err := client.New().Signup(ctx, username, email, string(password)); err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		fmt.Println("✓ Account created!")
		fmt.Printf("  Username: %s\n", username)
		fmt.Printf("  Email: %s\n", email)
		fmt.Println("\nA verification code was sent to your email.")
		fmt.Println("Next: forumhub auth verify --email " + email)

		return nil
	},
}

func init() {
	registerCmd.Flags().String("username", "", "Username")
	registerCmd.Flags().String("email", "", "Email address")
	AuthCmd.AddCommand(registerCmd)
}
