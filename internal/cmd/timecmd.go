package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nushell-works/ulidkit/internal/timeconv"
)

func newTimeCommand() *cobra.Command {
	timeCmd := &cobra.Command{Use: "time", Short: "Timestamp helpers"}

	nowCmd := &cobra.Command{
		Use:   "now",
		Short: "Print the current time as ISO 8601 UTC",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), timeconv.ToISO8601(timeconv.NowMillis()))
			return nil
		},
	}

	millisCmd := &cobra.Command{
		Use:   "millis",
		Short: "Print the current time as Unix milliseconds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), timeconv.NowMillis())
			return nil
		},
	}

	parseCmd := &cobra.Command{
		Use:   "parse <ms|rfc3339>",
		Short: "Normalize a millisecond count or RFC3339 string to both forms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := timeconv.ParseFlexible(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", ms, timeconv.ToISO8601(ms))
			return nil
		},
	}

	timeCmd.AddCommand(nowCmd, millisCmd, parseCmd)
	return timeCmd
}
