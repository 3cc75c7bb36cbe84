package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/traumschule/joyutils/rpc"
	"github.com/traumschule/joyutils/units"
)

func newBlockTimeCmd(a *app) *cobra.Command {
	var window uint64

	cmd := &cobra.Command{
		Use:   "blocktime",
		Short: "Measure the average block time over recent blocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if window == 0 {
				return fmt.Errorf("--window must be positive")
			}

			client, err := a.substrate()
			if err != nil {
				return err
			}
			reader, err := rpc.NewRetryableChainReader(readAttempts, readDelay, client)
			if err != nil {
				return err
			}

			start, end, err := rpc.MeasureBlockTime(cmd.Context(), reader, window)
			if err != nil {
				return err
			}
			average, err := units.AverageBlockTime(start, end)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "average block time over blocks %d..%d: %s (target %s)\n", start.Block, end.Block, average, units.BlockTime)
			return err
		},
	}

	cmd.Flags().Uint64Var(&window, "window", 100, "Number of blocks to average over")
	return cmd
}
