package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/traumschule/joyutils/units"
)

func newDurationCmd(a *app) *cobra.Command {
	var blocks uint64

	cmd := &cobra.Command{
		Use:   "duration [1y2M3d4h5m6s]",
		Short: "Convert a duration to blocks, or blocks to a duration",
		Example: `  joyutils duration 14d
  joyutils duration --blocks 100800`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if cmd.Flags().Changed("blocks") {
				if len(args) > 0 {
					return fmt.Errorf("pass either a duration or --blocks, not both")
				}
				d := units.BlocksToDuration(blocks)
				_, err := fmt.Fprintf(out, "%d blocks = %s\n", blocks, d)
				return err
			}

			if len(args) == 0 {
				return fmt.Errorf("missing duration")
			}
			d, err := units.ParseDuration(args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(out, "%s = %d blocks (%d seconds)\n", d, units.DurationToBlocks(d), d.TotalSeconds())
			return err
		},
	}

	cmd.Flags().Uint64Var(&blocks, "blocks", 0, "Number of blocks to convert to a duration")
	return cmd
}
