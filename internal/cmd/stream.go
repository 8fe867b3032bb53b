package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nushell-works/ulidkit/internal/stream"
)

func newStreamCommand(env *Env) *cobra.Command {
	streamCmd := &cobra.Command{
		Use:   "stream <validate|parse|extract-timestamp|transform>",
		Short: "Run a batched operation over many ULIDs from stdin",
		Long: "Run a batched operation over many ULIDs read one per line from stdin.\n" +
			"Items are processed in spans of --batch-size; --parallel fans spans out\n" +
			"across a worker pool while preserving input order in the output.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op := stream.Operation(args[0])

			batchSize, _ := cmd.Flags().GetInt("batch-size")
			parallel, _ := cmd.Flags().GetBool("parallel")
			workers, _ := cmd.Flags().GetInt("workers")
			continueOnError, _ := cmd.Flags().GetBool("continue-on-error")
			maxErrors, _ := cmd.Flags().GetInt("max-errors")
			filter, _ := cmd.Flags().GetString("filter")
			strict, _ := cmd.Flags().GetBool("strict")
			quiet, _ := cmd.Flags().GetBool("quiet")

			items, err := readInputs(cmd, nil)
			if err != nil {
				return err
			}

			if batchSize == 0 {
				batchSize = env.Config.DefaultBatchSize
			}
			if workers == 0 {
				workers = env.Config.Workers
			}

			p := stream.New(env.Gen, stream.WithLogger(env.Logger))
			out, err := p.Process(cmd.Context(), op, items, stream.Options{
				BatchSize:       batchSize,
				Parallel:        parallel,
				Workers:         workers,
				ContinueOnError: continueOnError,
				MaxErrors:       maxErrors,
				Strict:          strict || env.Config.Strict,
				Filter:          filter,
				ErrorDetailCap:  env.Config.MaxErrorDetail,
			})
			if err != nil {
				return err
			}

			if !quiet {
				w := cmd.OutOrStdout()
				enc := json.NewEncoder(w)
				for _, r := range out.Results {
					if r.Input == "" {
						// Slot belongs to a batch the job never reached.
						continue
					}
					switch op {
					case stream.OpValidate:
						fmt.Fprintf(w, "%s\t%v\n", r.Input, r.Valid)
					case stream.OpParse:
						if r.Err == nil {
							_ = enc.Encode(r.Parsed)
						}
					case stream.OpExtractTimestamp:
						if r.Err == nil {
							fmt.Fprintln(w, r.TimestampMs)
						}
					case stream.OpTransform:
						if r.Err == nil {
							fmt.Fprintln(w, r.Output)
						}
					}
				}
			}

			printSummary(cmd, out.Summary)
			for _, ie := range out.Summary.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "item %d %q: %s\n", ie.Index, ie.Input, ie.Err)
			}
			if out.State == stream.Aborted {
				return fmt.Errorf("job aborted after %d of %d items", out.Summary.Processed, out.Summary.Submitted)
			}
			return nil
		},
	}

	streamCmd.Flags().IntP("batch-size", "b", 0, "items per batch (default from config)")
	streamCmd.Flags().BoolP("parallel", "p", false, "process batches on a worker pool")
	streamCmd.Flags().IntP("workers", "w", 0, "worker pool size (default: number of CPUs)")
	streamCmd.Flags().Bool("continue-on-error", false, "record item failures and keep going")
	streamCmd.Flags().Int("max-errors", 0, "abort after this many failures (0 = unlimited)")
	streamCmd.Flags().String("filter", "", "CEL expression over input, valid, ts_ms, randomness, now_ms")
	streamCmd.Flags().BoolP("strict", "s", false, "reject timestamps in the future")
	streamCmd.Flags().BoolP("quiet", "q", false, "suppress per-item output, print only the summary")

	return streamCmd
}
