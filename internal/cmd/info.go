package cmd

import (
	"encoding/json"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/nushell-works/ulidkit/internal/stream"
	"github.com/nushell-works/ulidkit/pkg/ulid"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

type toolInfo struct {
	Name                string `json:"name"`
	Version             string `json:"version"`
	GoVersion           string `json:"go_version"`
	Alphabet            string `json:"alphabet"`
	EncodedSize         int    `json:"encoded_size"`
	BinarySize          int    `json:"binary_size"`
	MaxTimestampMs      uint64 `json:"max_timestamp_ms"`
	MaxBulkGeneration   int    `json:"max_bulk_generation"`
	MaxStreamGeneration int    `json:"max_stream_generation"`
}

func newInfoCommand() *cobra.Command {
	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show tool and format constants",
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(toolInfo{
				Name:                "ulidkit",
				Version:             Version,
				GoVersion:           runtime.Version(),
				Alphabet:            ulid.Alphabet,
				EncodedSize:         ulid.EncodedSize,
				BinarySize:          ulid.BinarySize,
				MaxTimestampMs:      ulid.MaxTimestamp,
				MaxBulkGeneration:   ulid.MaxBulkGeneration,
				MaxStreamGeneration: stream.MaxStreamGeneration,
			})
		},
	}

	return infoCmd
}
