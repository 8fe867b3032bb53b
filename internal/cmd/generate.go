package cmd

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nushell-works/ulidkit/internal/security"
	"github.com/nushell-works/ulidkit/internal/stream"
	"github.com/nushell-works/ulidkit/pkg/log"
	"github.com/nushell-works/ulidkit/pkg/ulid"
)

func newGenerateCommand(env *Env) *cobra.Command {
	genCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one or more ULIDs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			count, _ := cmd.Flags().GetInt("count")
			tsMs, _ := cmd.Flags().GetInt64("timestamp")
			monotonic, _ := cmd.Flags().GetBool("monotonic")
			format, _ := cmd.Flags().GetString("format")
			context, _ := cmd.Flags().GetString("context")

			if context != "" && security.IsSensitiveContext(context) {
				a := security.Assess(context)
				env.Logger.Warn("potential security concern detected",
					log.Str("context", context),
					log.Str("rating", string(a.Rating)),
				)
			}
			if count < 1 {
				return fmt.Errorf("count must be at least 1")
			}
			if count > env.Config.MaxBulkGeneration {
				return fmt.Errorf("%w: at most %d per request", ulid.ErrBatchLimit, env.Config.MaxBulkGeneration)
			}

			var mono ulid.Monotonic
			out := cmd.OutOrStdout()
			for i := 0; i < count; i++ {
				var u ulid.ULID
				var err error
				switch {
				case tsMs >= 0 && monotonic:
					u, err = env.Gen.NewMonotonicAt(tsMs, &mono)
				case tsMs >= 0:
					u, err = env.Gen.NewAt(tsMs)
				case monotonic:
					u, err = env.Gen.NewMonotonic(&mono)
				default:
					u, err = env.Gen.New()
				}
				if err != nil {
					return err
				}
				if err := printULID(out, u, format); err != nil {
					return err
				}
			}
			return nil
		},
	}

	genCmd.Flags().IntP("count", "n", 1, "number of ULIDs to generate")
	genCmd.Flags().Int64P("timestamp", "t", -1, "pin the millisecond timestamp (default: wall clock)")
	genCmd.Flags().BoolP("monotonic", "m", false, "keep output strictly increasing within one millisecond")
	genCmd.Flags().StringP("format", "f", "string", "output format: string, json, or binary-hex")
	genCmd.Flags().String("context", "", "intended usage context, checked for security-sensitive keywords")

	return genCmd
}

func printULID(out io.Writer, u ulid.ULID, format string) error {
	switch format {
	case "string":
		_, err := fmt.Fprintln(out, u.String())
		return err
	case "json":
		return json.NewEncoder(out).Encode(ulid.Components{
			ULID:          u.String(),
			TimestampMs:   u.Timestamp(),
			RandomnessHex: u.RandomnessHex(),
			Valid:         true,
		})
	case "binary-hex":
		_, err := fmt.Fprintln(out, hex.EncodeToString(u.Bytes()))
		return err
	default:
		return fmt.Errorf("unknown format %q; use string, json, or binary-hex", format)
	}
}

func newGenerateStreamCommand(env *Env) *cobra.Command {
	streamCmd := &cobra.Command{
		Use:   "generate-stream <count>",
		Short: "Generate a large batch of ULIDs with bounded memory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid count %q", args[0])
			}
			batchSize, _ := cmd.Flags().GetInt("batch-size")
			tsMs, _ := cmd.Flags().GetInt64("timestamp")
			uniqueTs, _ := cmd.Flags().GetBool("unique-timestamps")
			monotonic, _ := cmd.Flags().GetBool("monotonic")

			p := stream.New(env.Gen, stream.WithLogger(env.Logger))
			out, err := p.Generate(cmd.Context(), count, stream.GenerateOptions{
				BatchSize:        batchSize,
				TimestampMs:      tsMs,
				UniqueTimestamps: uniqueTs,
				Monotonic:        monotonic,
			})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, id := range out.IDs {
				if !id.IsZero() {
					fmt.Fprintln(w, id.String())
				}
			}
			printSummary(cmd, out.Summary)
			return nil
		},
	}

	streamCmd.Flags().IntP("batch-size", "b", 0, "ULIDs to generate per batch (default from config)")
	streamCmd.Flags().Int64P("timestamp", "t", -1, "base millisecond timestamp (default: wall clock)")
	streamCmd.Flags().BoolP("unique-timestamps", "u", false, "advance the timestamp by 1ms per ULID")
	streamCmd.Flags().BoolP("monotonic", "m", false, "keep output strictly increasing within one millisecond")

	return streamCmd
}

func printSummary(cmd *cobra.Command, s stream.Summary) {
	fmt.Fprintf(cmd.ErrOrStderr(), "processed=%d successes=%d failures=%d aborted=%v rate=%.0f/s\n",
		s.Processed, s.Successes, s.Failures, s.Aborted, s.RatePerSec)
}
