package main

import (
	"fmt"

	"restecho/internal/api"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Generate an API token for server auth",
	Long: `Generate a bearer token and its bcrypt hash. Put the hash into
server.auth.tokenHash in .restecho/config.json and set server.auth.enabled
to true; clients then send the raw token in the Authorization header.
The raw token is shown once and cannot be recovered from the hash.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, hash, err := api.GenerateToken()
		if err != nil {
			return err
		}

		fmt.Printf("Token: %s\n", token)
		fmt.Printf("Hash:  %s\n", hash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}
