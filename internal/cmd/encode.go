package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nushell-works/ulidkit/internal/baseenc"
)

func newEncodeCommand() *cobra.Command {
	encodeCmd := &cobra.Command{
		Use:   "encode <base32|hex> [data]",
		Short: "Encode data with Crockford Base32 or hex",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := oneInput(cmd, args[1:])
			if err != nil {
				return err
			}
			switch args[0] {
			case "base32":
				fmt.Fprintln(cmd.OutOrStdout(), baseenc.Encode([]byte(data)))
			case "hex":
				fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString([]byte(data)))
			default:
				return fmt.Errorf("unknown encoding %q; use base32 or hex", args[0])
			}
			return nil
		},
	}

	return encodeCmd
}

func newDecodeCommand() *cobra.Command {
	decodeCmd := &cobra.Command{
		Use:   "decode <base32|hex> [text]",
		Short: "Decode Crockford Base32 or hex text",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := oneInput(cmd, args[1:])
			if err != nil {
				return err
			}
			var decoded []byte
			switch args[0] {
			case "base32":
				decoded, err = baseenc.Decode(text)
			case "hex":
				decoded, err = hex.DecodeString(text)
			default:
				return fmt.Errorf("unknown encoding %q; use base32 or hex", args[0])
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(decoded)
			return err
		},
	}

	return decodeCmd
}

// oneInput returns the single positional datum, or the first stdin line when
// the argument is omitted.
func oneInput(cmd *cobra.Command, args []string) (string, error) {
	items, err := readInputs(cmd, args)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", fmt.Errorf("no input: pass data as an argument or on stdin")
	}
	return items[0], nil
}
