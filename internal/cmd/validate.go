package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nushell-works/ulidkit/internal/timeconv"
	"github.com/nushell-works/ulidkit/pkg/ulid"
)

func newValidateCommand(env *Env) *cobra.Command {
	validateCmd := &cobra.Command{
		Use:   "validate [ulid...]",
		Short: "Check ULIDs for structural validity",
		Long: "Check ULIDs for structural validity. Reads positional arguments, or\n" +
			"one candidate per line from stdin when no arguments are given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			strict, _ := cmd.Flags().GetBool("strict")
			detailed, _ := cmd.Flags().GetBool("detailed")

			items, err := readInputs(cmd, args)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				return fmt.Errorf("no input: pass ULIDs as arguments or on stdin")
			}

			maxMs := int64(-1)
			if strict || env.Config.Strict {
				maxMs = timeconv.NowMillis()
			}

			out := cmd.OutOrStdout()
			enc := json.NewEncoder(out)
			invalid := 0
			for _, in := range items {
				if detailed {
					report := ulid.ValidateDetailedStrict(in, maxMs)
					if !report.Valid {
						invalid++
					}
					_ = enc.Encode(struct {
						Input string `json:"input"`
						ulid.Report
					}{Input: in, Report: report})
					continue
				}
				ok := ulid.Validate(in)
				if ok && maxMs >= 0 {
					ok = ulid.ValidateStrict(in, maxMs)
				}
				if !ok {
					invalid++
				}
				fmt.Fprintf(out, "%s\t%v\n", in, ok)
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d inputs invalid", invalid, len(items))
			}
			return nil
		},
	}

	validateCmd.Flags().BoolP("strict", "s", false, "additionally require the timestamp not to be in the future")
	validateCmd.Flags().BoolP("detailed", "d", false, "emit a full JSON report per input instead of a verdict")

	return validateCmd
}
