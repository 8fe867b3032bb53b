package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/nushell-works/ulidkit/pkg/ulid"
)

func newSortCommand(env *Env) *cobra.Command {
	sortCmd := &cobra.Command{
		Use:   "sort [ulid...]",
		Short: "Sort ULIDs chronologically",
		Long: "Sort ULIDs chronologically. Lexicographic order of the canonical\n" +
			"encoding matches byte order, so sorting also orders by timestamp.",
		RunE: func(cmd *cobra.Command, args []string) error {
			reverse, _ := cmd.Flags().GetBool("reverse")
			byTimestamp, _ := cmd.Flags().GetBool("by-timestamp-only")

			items, err := readInputs(cmd, args)
			if err != nil {
				return err
			}

			ids := make([]ulid.ULID, 0, len(items))
			for _, in := range items {
				u, err := ulid.Parse(in)
				if err != nil {
					return fmt.Errorf("parse %q: %w", in, err)
				}
				ids = append(ids, u)
			}

			// SliceStable keeps input order for same-timestamp identifiers
			// when only the timestamp is compared.
			sort.SliceStable(ids, func(i, j int) bool {
				var c int
				if byTimestamp {
					switch a, b := ids[i].Timestamp(), ids[j].Timestamp(); {
					case a < b:
						c = -1
					case a > b:
						c = 1
					}
				} else {
					c = ids[i].Compare(ids[j])
				}
				if reverse {
					return c > 0
				}
				return c < 0
			})

			out := cmd.OutOrStdout()
			for _, u := range ids {
				fmt.Fprintln(out, u.String())
			}
			return nil
		},
	}

	sortCmd.Flags().BoolP("reverse", "r", false, "newest first")
	sortCmd.Flags().Bool("by-timestamp-only", false, "ignore randomness; stable among equal timestamps")

	return sortCmd
}
