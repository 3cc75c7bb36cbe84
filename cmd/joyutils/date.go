package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/traumschule/joyutils/units"
)

func newDateCmd(a *app) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "date <block|RFC3339 time>",
		Short: "Estimate when a block is produced, or which block is produced at a time",
		Example: `  joyutils date 7000000
  joyutils date 2024-06-01T12:00:00Z`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := units.FallbackReference
			if !offline {
				head, err := a.sidecar().HeadReference(cmd.Context())
				if err != nil {
					a.logger.Warn("could not fetch the head block, estimating from a fixed reference", "error", err)
				} else {
					ref = head
				}
			}
			a.logger.Debug("using reference", "block", ref.Block, "timestamp", ref.Timestamp)

			out := cmd.OutOrStdout()
			if block, err := strconv.ParseUint(args[0], 10, 64); err == nil {
				_, err = fmt.Fprintf(out, "block %d ≈ %s\n", block, units.TimeAt(ref, block).UTC().Format(time.RFC3339))
				return err
			}

			at, err := time.Parse(time.RFC3339, args[0])
			if err != nil {
				return fmt.Errorf("%w: %q is neither a block number nor an RFC3339 time", units.ErrInvalidFormat, args[0])
			}
			block, err := units.BlockAt(ref, at)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(out, "%s ≈ block %d\n", at.UTC().Format(time.RFC3339), block)
			return err
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Estimate from a fixed reference block instead of the chain head")
	return cmd
}
