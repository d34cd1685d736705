package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mockhotels/brandaudit/internal/config"
)

var hashTokenCmd = &cobra.Command{
	Use:   "hash-token <secret>",
	Short: "Bcrypt-hash an access token for APP_PASSWORD",
	Long:  `Hash a shared access token with bcrypt. Set the output as APP_PASSWORD to avoid keeping the secret in plaintext in the environment.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runHashToken,
}

func init() {
	rootCmd.AddCommand(hashTokenCmd)
}

func runHashToken(cmd *cobra.Command, args []string) error {
	hash, err := config.HashPassword(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
