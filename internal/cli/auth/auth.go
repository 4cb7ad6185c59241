package auth

import "github.com/spf13/cobra"

var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Register, verify, sign in, and manage your session",
}

func init() {
	// Commands added in register.go, verify.go, login.go, logout.go
}
