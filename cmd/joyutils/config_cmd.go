package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/traumschule/joyutils/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}
	cmd.AddCommand(newConfigInitCmd(a), newConfigShowCmd(a), newConfigSetCmd(a))
	return cmd
}

func newConfigInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current settings, unless one exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.FileExists(a.configPath) {
				fmt.Fprintf(cmd.OutOrStdout(), "config already exists at %s\n", a.configPath)
				return nil
			}
			if err := a.config.Init(a.configPath, a.logger); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", a.configPath)
			return nil
		},
	}
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.MarshalYamlWithComments(a.config, "effective joyutils configuration")
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigSetCmd(a *app) *cobra.Command {
	var (
		rate       string
		termLength uint64
	)

	cmd := &cobra.Command{
		Use:     "set",
		Short:   "Update persisted settings",
		Example: `  joyutils config set --rate 0.015 --term-length 100800`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := a.settings()
			if cmd.Flags().Changed("rate") {
				if err := settings.SetJoyUsdRate(rate); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("term-length") {
				if err := settings.SetTermLength(termLength); err != nil {
					return err
				}
			}

			current := settings.Get()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "1 JOY = %s USD, term of %d blocks\n", current.JoyUsdRate, current.TermLength)
			return err
		},
	}

	cmd.Flags().StringVar(&rate, "rate", "", "JOY price in USD")
	cmd.Flags().Uint64Var(&termLength, "term-length", 0, "Term length in blocks")
	return cmd
}
