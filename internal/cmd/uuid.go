package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nushell-works/ulidkit/internal/uuidcompat"
	"github.com/nushell-works/ulidkit/pkg/ulid"
)

func newUUIDCommand() *cobra.Command {
	uuidCmd := &cobra.Command{Use: "uuid", Short: "UUID interoperability"}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random v4 UUID",
		RunE: func(cmd *cobra.Command, _ []string) error {
			count, _ := cmd.Flags().GetInt("count")
			if count < 1 {
				return fmt.Errorf("count must be at least 1")
			}
			for i := 0; i < count; i++ {
				fmt.Fprintln(cmd.OutOrStdout(), uuidcompat.Generate())
			}
			return nil
		},
	}
	generateCmd.Flags().IntP("count", "n", 1, "number of UUIDs to generate")

	validateCmd := &cobra.Command{
		Use:   "validate [uuid...]",
		Short: "Check UUIDs for validity",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := readInputs(cmd, args)
			if err != nil {
				return err
			}
			invalid := 0
			for _, in := range items {
				ok := uuidcompat.Validate(in)
				if !ok {
					invalid++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%v\n", in, ok)
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d inputs invalid", invalid, len(items))
			}
			return nil
		},
	}

	parseCmd := &cobra.Command{
		Use:   "parse [uuid...]",
		Short: "Decode UUIDs into version and variant",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := readInputs(cmd, args)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, in := range items {
				c, err := uuidcompat.Parse(in)
				if err != nil {
					return fmt.Errorf("parse %q: %w", in, err)
				}
				_ = enc.Encode(c)
			}
			return nil
		},
	}

	fromULIDCmd := &cobra.Command{
		Use:   "from-ulid <ulid>",
		Short: "Reinterpret a ULID's 16 bytes as a UUID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := ulid.Parse(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), uuidcompat.FromULID(u).String())
			return nil
		},
	}

	toULIDCmd := &cobra.Command{
		Use:   "to-ulid <uuid>",
		Short: "Reinterpret a UUID's 16 bytes as a ULID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := uuid.Parse(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), uuidcompat.ToULID(u).String())
			return nil
		},
	}

	uuidCmd.AddCommand(generateCmd, validateCmd, parseCmd, fromULIDCmd, toULIDCmd)
	return uuidCmd
}
