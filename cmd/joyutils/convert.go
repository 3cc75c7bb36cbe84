package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/traumschule/joyutils/units"
)

const (
	unitHapi = "hapi"
	unitJoy  = "joy"
)

func newConvertCmd(a *app) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "convert <amount>",
		Short: "Convert between JOY and HAPI (1 JOY = 10^10 HAPI)",
		Example: `  joyutils convert 0.01
  joyutils convert 100000000 --to joy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				converted string
				err       error
			)
			switch strings.ToLower(to) {
			case unitHapi:
				converted, err = units.ToBaseUnits(args[0], units.JoystreamDecimals)
			case unitJoy:
				converted, err = units.FromBaseUnits(args[0], units.JoystreamDecimals)
			default:
				return fmt.Errorf("--to must be %s or %s, got %q", unitHapi, unitJoy, to)
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", converted, strings.ToUpper(to))
			return err
		},
	}

	cmd.Flags().StringVar(&to, "to", unitHapi, "Target unit (hapi or joy)")
	return cmd
}
