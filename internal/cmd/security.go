package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/nushell-works/ulidkit/internal/security"
)

func newSecurityAdviceCommand() *cobra.Command {
	adviceCmd := &cobra.Command{
		Use:   "security-advice",
		Short: "Explain where ULIDs are and are not safe to use",
		RunE: func(cmd *cobra.Command, _ []string) error {
			context, _ := cmd.Flags().GetString("context")

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if context != "" {
				return enc.Encode(security.Assess(context))
			}
			return enc.Encode(security.GetAdvice())
		},
	}

	adviceCmd.Flags().StringP("context", "c", "", "assess a specific usage context instead of printing the full advisory")

	return adviceCmd
}
