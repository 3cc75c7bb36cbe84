package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"cosmossdk.io/math"
	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/traumschule/joyutils/coding"
	"github.com/traumschule/joyutils/dialog"
	"github.com/traumschule/joyutils/extrinsic"
	"github.com/traumschule/joyutils/lead"
	"github.com/traumschule/joyutils/units"
	"github.com/traumschule/joyutils/wallet"
	"golang.org/x/term"
)

const keyringWalletID = "keyring"

var errNotInteractive = errors.New("stdin is not a terminal, pass --yes to submit without confirmation")

func newSalaryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "salary",
		Short: "Manage working group salaries",
	}
	cmd.AddCommand(newSetSalaryCmd(a))
	return cmd
}

func newSetSalaryCmd(a *app) *cobra.Command {
	var (
		yes             bool
		metricsTextfile string
	)

	cmd := &cobra.Command{
		Use:   "set <group> <worker-id> <usd-per-term>",
		Short: "Set a worker's reward so they earn the given USD per term",
		Long: `Set a worker's reward per block so that they earn the given amount of USD per term, at the
configured JOY/USD rate and term length. The transaction is signed with the group lead's role key,
read from the environment variable named by wallet_secret_env.`,
		Example: `  JOYUTILS_SECRET="//Alice" joyutils salary set forum 3 250`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			request, err := parseSalaryRequest(args)
			if err != nil {
				return err
			}
			terms, err := a.terms()
			if err != nil {
				return err
			}
			network, err := a.config.ChainNetwork()
			if err != nil {
				return err
			}

			settings := a.settings()
			wallets := wallet.NewStore(
				[]wallet.Wallet{wallet.NewKeyringWallet(keyringWalletID, a.config.SecretEnv, network.SS58Prefix)},
				settings,
				network.SS58Prefix,
				a.logger,
			)
			if err := wallets.Connect(ctx, keyringWalletID); err != nil {
				return err
			}
			defer func() {
				_ = wallets.Wallet().Disconnect()
			}()

			workers, err := a.indexer().Workers(ctx, string(request.Group))
			if err != nil {
				return err
			}
			plan, err := lead.BuildSetSalary(request, workers, terms, wallets)
			if err != nil {
				return err
			}
			if err := settings.SetWorkingGroup(string(request.Group)); err != nil {
				a.logger.Warn("could not remember the working group", "error", err)
			}
			printPlan(out, plan, terms)

			client, err := a.substrate()
			if err != nil {
				return err
			}
			registry := prometheus.NewRegistry()
			coordinator := extrinsic.NewCoordinator(client, extrinsic.NewMetrics(registry), a.logger)
			d := dialog.New(coordinator, wallets, a.logger, dialog.WithExplorer(network.ExplorerUrl))

			err = runDialog(ctx, out, d, plan.Transaction, plan.LeadRoleKey, func() (bool, error) {
				if yes {
					return true, nil
				}
				return promptConfirm("Sign and submit")
			})

			if metricsTextfile != "" {
				if writeErr := prometheus.WriteToTextfile(metricsTextfile, registry); writeErr != nil {
					a.logger.Warn("could not write metrics", "file", metricsTextfile, "error", writeErr)
				}
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Submit without asking for confirmation")
	cmd.Flags().StringVar(&metricsTextfile, "metrics-textfile", "", "Write submission metrics to this file in the Prometheus text format")
	return cmd
}

func parseSalaryRequest(args []string) (lead.SalaryRequest, error) {
	group, err := lead.ParseWorkingGroup(args[0])
	if err != nil {
		return lead.SalaryRequest{}, err
	}

	workerID, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return lead.SalaryRequest{}, fmt.Errorf("%w: worker id %q", units.ErrInvalidFormat, args[1])
	}

	usd, err := math.LegacyNewDecFromStr(args[2])
	if err != nil {
		return lead.SalaryRequest{}, fmt.Errorf("%w: salary %q: %s", units.ErrInvalidFormat, args[2], err)
	}

	return lead.SalaryRequest{Group: group, WorkerID: &workerID, UsdPerTerm: &usd}, nil
}

func printPlan(out io.Writer, plan *lead.SalaryPlan, terms lead.Terms) {
	current := lead.SuggestedUsdSalary(plan.Worker, terms)

	fmt.Fprintf(out, "%s worker %d (%s)\n", plan.Group.Title(), plan.Worker.RuntimeID, plan.Worker.Handle)
	fmt.Fprintf(out, "  current: %s USD per term\n", units.FormatDecimal(current, 2))
	fmt.Fprintf(out, "  new:     %s USD per term = %s per term = %s HAPI per block\n",
		units.FormatDecimal(plan.UsdPerTerm, 2), units.FormatJoy(plan.JoyPerTerm), plan.HapiPerBlock.String())
}

// runDialog stages tx, asks confirm and submits. Declining closes the dialog without an error.
func runDialog(ctx context.Context, out io.Writer, d *dialog.Dialog, tx *extrinsic.UnsignedTransaction, accountID string, confirm func() (bool, error)) error {
	if err := d.Stage(tx, accountID); err != nil {
		return err
	}
	printView(out, d.View())

	ok, err := confirm()
	if err != nil || !ok {
		d.Close()
		if err == nil {
			fmt.Fprintln(out, color.YellowString("Cancelled"))
		}
		return err
	}

	confirmErr := d.Confirm(ctx)
	printView(out, d.View())
	return confirmErr
}

func printView(out io.Writer, view dialog.View) {
	switch view.State {
	case dialog.StateAwaitingConfirmation:
		fmt.Fprintln(out, color.New(color.Bold).Sprint(view.Status))
		fmt.Fprintf(out, "  call:    %s\n", view.Call)
		for _, arg := range view.Args {
			fmt.Fprintf(out, "  %-8s %s\n", arg.Name+":", arg.Display)
		}
		fmt.Fprintf(out, "  signer:  %s\n", view.AccountID)
	case dialog.StateDone:
		fmt.Fprintln(out, color.GreenString("%s in block %s", view.Status, coding.ShortHash(view.BlockHash)))
		printOutcome(out, view)
	case dialog.StateFailed:
		fmt.Fprintln(out, color.RedString("%s: %s", view.Status, view.Error))
		printOutcome(out, view)
	default:
		fmt.Fprintln(out, view.Status)
	}
}

func printOutcome(out io.Writer, view dialog.View) {
	for _, event := range view.Events {
		fmt.Fprintf(out, "  event: %s\n", event)
	}
	if view.TransactionHash != "" {
		fmt.Fprintf(out, "  hash:  %s\n", view.TransactionHash)
	}
	if view.ExplorerLink != "" {
		fmt.Fprintf(out, "  %s\n", color.CyanString(view.ExplorerLink))
	}
}

func promptConfirm(label string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, errNotInteractive
	}

	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort), errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrEOF):
		return false, nil
	default:
		return false, err
	}
}
