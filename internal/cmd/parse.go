package cmd

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nushell-works/ulidkit/internal/timeconv"
	"github.com/nushell-works/ulidkit/internal/uuidcompat"
	"github.com/nushell-works/ulidkit/pkg/ulid"
)

func newParseCommand(env *Env) *cobra.Command {
	parseCmd := &cobra.Command{
		Use:   "parse [ulid...]",
		Short: "Decode ULIDs into their components",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")

			items, err := readInputs(cmd, args)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				return fmt.Errorf("no input: pass ULIDs as arguments or on stdin")
			}

			out := cmd.OutOrStdout()
			enc := json.NewEncoder(out)
			for _, in := range items {
				u, err := ulid.Parse(in)
				if err != nil {
					return fmt.Errorf("parse %q: %w", in, err)
				}
				switch format {
				case "compact":
					fmt.Fprintf(out, "%s\t%d\t%s\n", u.String(), u.Timestamp(), u.RandomnessHex())
				case "timestamp-only":
					fmt.Fprintln(out, u.Timestamp())
				case "full":
					_ = enc.Encode(ulid.Components{
						ULID:          u.String(),
						TimestampMs:   u.Timestamp(),
						RandomnessHex: u.RandomnessHex(),
						Valid:         true,
					})
				default:
					return fmt.Errorf("unknown format %q; use compact, full, or timestamp-only", format)
				}
			}
			return nil
		},
	}

	parseCmd.Flags().StringP("format", "f", "full", "output format: compact, full, or timestamp-only")

	return parseCmd
}

// inspectReport is the deep per-identifier breakdown emitted by `inspect`.
type inspectReport struct {
	ULID          string `json:"ulid"`
	Valid         bool   `json:"valid"`
	TimestampMs   uint64 `json:"timestamp_ms"`
	Time          string `json:"time"`
	AgeMs         int64  `json:"age_ms"`
	RandomnessHex string `json:"randomness_hex"`
	BytesHex      string `json:"bytes_hex"`
	UUID          string `json:"uuid"`
	Note          string `json:"note,omitempty"`
}

func newInspectCommand(env *Env) *cobra.Command {
	inspectCmd := &cobra.Command{
		Use:   "inspect [ulid...]",
		Short: "Show everything about a ULID: time, randomness, raw bytes, UUID form",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := readInputs(cmd, args)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				return fmt.Errorf("no input: pass ULIDs as arguments or on stdin")
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			for _, in := range items {
				u, err := ulid.Parse(in)
				if err != nil {
					return fmt.Errorf("parse %q: %w", in, err)
				}
				report := inspectReport{
					ULID:          u.String(),
					Valid:         true,
					TimestampMs:   u.Timestamp(),
					Time:          timeconv.ToISO8601(int64(u.Timestamp())),
					AgeMs:         timeconv.NowMillis() - int64(u.Timestamp()),
					RandomnessHex: u.RandomnessHex(),
					BytesHex:      hex.EncodeToString(u.Bytes()),
					UUID:          uuidcompat.FromULID(u).String(),
				}
				if report.AgeMs < 0 {
					report.Note = "timestamp is in the future"
				}
				_ = enc.Encode(report)
			}
			return nil
		},
	}

	return inspectCmd
}
