package main

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"github.com/traumschule/joyutils/fees"
	"github.com/traumschule/joyutils/units"
)

func newFeesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fees",
		Short: "Estimate fees",
	}
	cmd.AddCommand(newVideoFeesCmd(a))
	return cmd
}

func newVideoFeesCmd(a *app) *cobra.Command {
	var (
		objects uint64
		size    string
	)

	cmd := &cobra.Command{
		Use:     "video",
		Short:   "Estimate the cost of publishing a video",
		Example: `  joyutils fees video --objects 3 --size 512.5`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sizeMegabytes, err := math.LegacyNewDecFromStr(size)
			if err != nil {
				return fmt.Errorf("%w: --size %q: %s", fees.ErrInvalidInput, size, err)
			}

			videoFees, err := fees.FetchVideoFees(cmd.Context(), a.sidecar())
			if err != nil {
				return err
			}
			breakdown, err := fees.Estimate(videoFees, objects, sizeMegabytes)
			if err != nil {
				return err
			}

			t := newTable(cmd, table.Row{"Item", "JOY", "Refundable"})
			t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
			t.AppendRows([]table.Row{
				{"Transaction fee", formatHapi(breakdown.TxFee), "no"},
				{"Video state bloat bond", formatHapi(breakdown.VideoStateBond), "yes"},
				{fmt.Sprintf("Data object bonds (%d)", breakdown.NumberOfObjects), formatHapi(breakdown.ObjectsStateBond), "yes"},
				{fmt.Sprintf("Data fee (%s MB)", breakdown.TotalSizeMegabytes.String()), formatHapi(breakdown.DataFee), "no"},
			})
			t.AppendFooter(table.Row{"Total", formatHapi(breakdown.Total), formatHapi(breakdown.Refundable)})
			t.Render()
			return nil
		},
	}

	cmd.Flags().Uint64Var(&objects, "objects", 2, "Number of data objects (media and images)")
	cmd.Flags().StringVar(&size, "size", "", "Total size of all objects in MB")
	_ = cmd.MarkFlagRequired("size")
	return cmd
}

func formatHapi(hapi math.Int) string {
	return units.FormatDecimal(units.HapiToJoy(hapi), 2)
}
