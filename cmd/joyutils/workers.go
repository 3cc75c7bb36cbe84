package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/traumschule/joyutils/lead"
	"github.com/traumschule/joyutils/units"
)

func newWorkersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workers [group]",
		Short: "List a working group's active workers and their salaries",
		Long: `List a working group's active workers and their salaries per term, in JOY and USD at the
configured rate. Without a group, the last used group is listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := a.settings()
			group, err := selectGroup(settings.Get().WorkingGroup, args)
			if err != nil {
				return err
			}
			terms, err := a.terms()
			if err != nil {
				return err
			}

			workers, err := a.indexer().Workers(cmd.Context(), string(group))
			if err != nil {
				return err
			}
			if err := settings.SetWorkingGroup(string(group)); err != nil {
				a.logger.Warn("could not remember the working group", "error", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d workers, term of %d blocks, 1 JOY = %s USD\n",
				group.Title(), len(workers), terms.TermLength, terms.JoyUsdRate.String())

			t := newTable(cmd, table.Row{"ID", "Handle", "Role", "JOY / term", "USD / term"})
			for _, row := range lead.WorkerRows(workers, terms) {
				role := "worker"
				if row.IsLead {
					role = "lead"
				}
				t.AppendRow(table.Row{row.ID, row.Handle, role, units.FormatDecimal(row.JoyPerTerm, 2), units.FormatDecimal(row.UsdPerTerm, 2)})
			}
			t.Render()
			return nil
		},
	}
	return cmd
}

func selectGroup(fallback string, args []string) (lead.WorkingGroup, error) {
	if len(args) > 0 {
		return lead.ParseWorkingGroup(args[0])
	}
	return lead.ParseWorkingGroup(fallback)
}

func (a *app) terms() (lead.Terms, error) {
	settings := a.config.Settings
	rate, err := settings.Rate()
	if err != nil {
		return lead.Terms{}, err
	}
	return lead.Terms{JoyUsdRate: rate, TermLength: settings.TermLength}, nil
}
