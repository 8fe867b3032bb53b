package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nushell-works/ulidkit/internal/hashutil"
)

func newHashCommand() *cobra.Command {
	hashCmd := &cobra.Command{Use: "hash", Short: "Hashing and randomness helpers"}

	sha256Cmd := &cobra.Command{
		Use:   "sha256 [data]",
		Short: "SHA-256 digest as hex",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := oneInput(cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hashutil.SHA256([]byte(data)))
			return nil
		},
	}

	sha512Cmd := &cobra.Command{
		Use:   "sha512 [data]",
		Short: "SHA-512 digest as hex",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := oneInput(cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hashutil.SHA512([]byte(data)))
			return nil
		},
	}

	blake3Cmd := &cobra.Command{
		Use:   "blake3 [data]",
		Short: "BLAKE3 digest as hex, with a configurable output length",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			length, _ := cmd.Flags().GetInt("length")
			data, err := oneInput(cmd, args)
			if err != nil {
				return err
			}
			sum, err := hashutil.Blake3([]byte(data), length)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sum)
			return nil
		},
	}
	blake3Cmd.Flags().IntP("length", "l", 32, "digest length in bytes")

	randomCmd := &cobra.Command{
		Use:   "random",
		Short: "Cryptographically secure random bytes as hex",
		RunE: func(cmd *cobra.Command, _ []string) error {
			length, _ := cmd.Flags().GetInt("length")
			out, err := hashutil.RandomHex(length)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	randomCmd.Flags().IntP("length", "l", 16, "number of random bytes")

	hashCmd.AddCommand(sha256Cmd, sha512Cmd, blake3Cmd, randomCmd)
	return hashCmd
}
