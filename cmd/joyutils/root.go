package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/traumschule/joyutils/config"
	"github.com/traumschule/joyutils/indexer"
	"github.com/traumschule/joyutils/log"
	"github.com/traumschule/joyutils/rpc"
	"github.com/traumschule/joyutils/sidecar"
)

const (
	httpRetries   = 3
	httpRetryWait = 500 * time.Millisecond

	readAttempts = 3
	readDelay    = time.Second
)

// app is the state shared by all commands once the config is loaded.
type app struct {
	configPath string
	network    string
	logLevel   string

	config *config.Config
	logger *log.Logger
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "joyutils",
		Short: "Utilities for the Joystream network",
		Long: `joyutils converts JOY amounts, durations and dates, estimates fees and lets working group
leads inspect and update worker salaries.

Examples:
  # Convert 0.01 JOY to HAPI
  joyutils convert 0.01

  # How many blocks are in 2 weeks?
  joyutils duration 14d

  # Which block will be produced at a given time?
  joyutils date 2024-06-01T12:00:00Z

  # Set a forum worker's salary to 250 USD per term
  joyutils salary set forum 3 250`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath(), "Path to the config file")
	cmd.PersistentFlags().StringVar(&a.network, "network", "", "Network preset (mainnet, local), overrides the config file")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error), overrides the config file")

	cmd.AddCommand(
		newConvertCmd(a),
		newDurationCmd(a),
		newDateCmd(a),
		newBlockTimeCmd(a),
		newFeesCmd(a),
		newWorkersCmd(a),
		newSalaryCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)

	return cmd
}

// load reads the config file, or falls back to defaults when there is none. Priority: default < config
// file < flag.
func (a *app) load(cmd *cobra.Command) error {
	cfg := config.Default()
	if config.FileExists(a.configPath) {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("network") {
		cfg.Network = a.network
		cfg.RpcUrl, cfg.IndexerUrl, cfg.SidecarUrl, cfg.ExplorerUrl = "", "", "", ""
		if err := cfg.ApplyNetworkDefaults(); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	a.config = cfg
	a.logger = log.NewLoggerWithWriter(os.Stderr, cfg.LogLevel)
	a.logger.Debug("loaded config", "file", a.configPath, "network", cfg.Network)
	return nil
}

func (a *app) settings() *config.SettingsStore {
	return config.NewSettingsStore(a.config, a.configPath, a.logger)
}

func (a *app) indexer() *indexer.Client {
	return indexer.NewClient(a.config.IndexerUrl, httpRetries, httpRetryWait, a.logger)
}

func (a *app) sidecar() *sidecar.Client {
	return sidecar.NewClient(a.config.SidecarUrl, httpRetries, httpRetryWait, a.logger)
}

func (a *app) substrate() (*rpc.SubstrateClient, error) {
	return rpc.NewSubstrateClient(a.config.RpcUrl, a.logger)
}
