package auth

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"forumhub/internal/cli/client"
	"forumhub/pkg/utils"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a new account",
	Long:  "Confirm your account with the code sent to your email",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		code, _ := cmd.Flags().GetString("code")
		resend, _ := cmd.Flags().GetBool("resend")

		if email == "" {
			fmt.Print("Email: ")
			fmt.Scanln(&email)
		}

		ctx, cancel := utils.WithTimeout(context.Background())
		defer cancel()

		if resend {
			if err := client.New().ResendCode(ctx, email); err != nil {
				return fmt.Errorf("resend failed: %w", err)
			}
			fmt.Println("✓ Verification code resent")
			return nil
		}

		if code == "" {
			fmt.Print("Verification code: ")
			fmt.Scanln(&code)
		}

		if err := client.New().Verify(ctx, email, code); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}

		fmt.Println("✓ Account verified!")
		fmt.Println("Next: forumhub auth login")

		return nil
	},
}

func init() {
	verifyCmd.Flags().String("email", "", "Email address")
	verifyCmd.Flags().String("code", "", "Verification code")
	verifyCmd.Flags().Bool("resend", false, "Resend the verification code")
	AuthCmd.AddCommand(verifyCmd)
}
