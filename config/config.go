package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"cosmossdk.io/math"
	"github.com/hashicorp/go-multierror"
	"github.com/traumschule/joyutils/chains"
	"github.com/traumschule/joyutils/log"
	"gopkg.in/yaml.v2"
)

const (
	DefaultDirectory = "~/.joyutils"
	DefaultFileName  = "config.yml"

	header = "joyutils configuration"

	// One week of 6 second blocks.
	DefaultTermLength = 100800
	DefaultJoyUsdRate = "0.02"
	DefaultSecretEnv  = "JOYUTILS_SECRET"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the on-disk configuration. Network endpoints default to the preset named by Network.
type Config struct {
	Network     string `yaml:"network" comment:"Network preset used to fill in missing endpoints (mainnet, local)"`
	RpcUrl      string `yaml:"rpc_url" comment:"Chain websocket RPC endpoint"`
	IndexerUrl  string `yaml:"indexer_url" comment:"GraphQL indexer (query node) endpoint"`
	SidecarUrl  string `yaml:"sidecar_url" comment:"substrate-api-sidecar base URL"`
	ExplorerUrl string `yaml:"explorer_url" comment:"Block explorer base URL, extrinsic links are <explorer_url>/extrinsic/<hash>, empty for none"`
	LogLevel    string `yaml:"log_level" comment:"One of debug, info, warn, error"`
	SecretEnv   string `yaml:"wallet_secret_env" comment:"Environment variable holding the signing account's secret URI or mnemonic"`

	Settings Settings `yaml:"settings" comment:"Persisted preferences, updated by the CLI"`
}

// Settings are the small pieces of user state that survive between runs.
type Settings struct {
	WorkingGroup   string `yaml:"working_group"`
	JoyUsdRate     string `yaml:"joy_usd_rate"`
	TermLength     uint64 `yaml:"term_length"`
	LastUsedWallet string `yaml:"last_used_wallet"`
}

// DefaultPath is where the config lives unless overridden.
func DefaultPath() string {
	return filepath.Join(DefaultDirectory, DefaultFileName)
}

// Default returns a config for the mainnet preset.
func Default() *Config {
	cfg := &Config{
		Network:   chains.Mainnet,
		LogLevel:  "info",
		SecretEnv: DefaultSecretEnv,
		Settings: Settings{
			WorkingGroup: "appWorkingGroup",
			JoyUsdRate:   DefaultJoyUsdRate,
			TermLength:   DefaultTermLength,
		},
	}

	// Mainnet always exists.
	_ = cfg.ApplyNetworkDefaults()
	return cfg
}

// Load reads a config file, filling unset values from defaults and the network preset.
func Load(path string) (*Config, error) {
	expanded, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse decodes YAML config contents on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}

	defaults := Default()
	if cfg.Network == "" {
		cfg.Network = defaults.Network
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if cfg.SecretEnv == "" {
		cfg.SecretEnv = defaults.SecretEnv
	}
	if cfg.Settings.WorkingGroup == "" {
		cfg.Settings.WorkingGroup = defaults.Settings.WorkingGroup
	}
	if cfg.Settings.JoyUsdRate == "" {
		cfg.Settings.JoyUsdRate = defaults.Settings.JoyUsdRate
	}
	if cfg.Settings.TermLength == 0 {
		cfg.Settings.TermLength = defaults.Settings.TermLength
	}

	if err := cfg.ApplyNetworkDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyNetworkDefaults fills empty endpoints from the network preset.
func (c *Config) ApplyNetworkDefaults() error {
	network, err := chains.ByName(c.Network)
	if err != nil {
		return fmt.Errorf("%w: network %q: %w", ErrInvalidConfig, c.Network, err)
	}

	if c.RpcUrl == "" {
		c.RpcUrl = network.RpcUrl
	}
	if c.IndexerUrl == "" {
		c.IndexerUrl = network.IndexerUrl
	}
	if c.SidecarUrl == "" {
		c.SidecarUrl = network.SidecarUrl
	}
	if c.ExplorerUrl == "" {
		c.ExplorerUrl = network.ExplorerUrl
	}
	return nil
}

// ChainNetwork returns the preset with this config's endpoints applied.
func (c *Config) ChainNetwork() (*chains.Network, error) {
	network, err := chains.ByName(c.Network)
	if err != nil {
		return nil, err
	}

	network.RpcUrl = c.RpcUrl
	network.IndexerUrl = c.IndexerUrl
	network.SidecarUrl = c.SidecarUrl
	network.ExplorerUrl = c.ExplorerUrl
	return network, nil
}

// Rate parses the persisted JOY/USD exchange rate.
func (s Settings) Rate() (math.LegacyDec, error) {
	rate, err := math.LegacyNewDecFromStr(s.JoyUsdRate)
	if err != nil {
		return math.LegacyDec{}, fmt.Errorf("%w: joy_usd_rate %q: %s", ErrInvalidConfig, s.JoyUsdRate, err)
	}
	return rate, nil
}

// Validate reports every problem with the config at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if _, err := chains.ByName(c.Network); err != nil {
		result = multierror.Append(result, fmt.Errorf("network %q: %w", c.Network, err))
	}
	if err := validateUrl("rpc_url", c.RpcUrl, "ws", "wss"); err != nil {
		result = multierror.Append(result, err)
	}
	if err := validateUrl("indexer_url", c.IndexerUrl, "http", "https"); err != nil {
		result = multierror.Append(result, err)
	}
	if err := validateUrl("sidecar_url", c.SidecarUrl, "http", "https"); err != nil {
		result = multierror.Append(result, err)
	}
	if c.ExplorerUrl != "" {
		if err := validateUrl("explorer_url", c.ExplorerUrl, "http", "https"); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if !log.IsValidLogLevel(c.LogLevel) {
		result = multierror.Append(result, fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel))
	}
	if c.Settings.TermLength == 0 {
		result = multierror.Append(result, errors.New("settings.term_length must be positive"))
	}
	if rate, err := c.Settings.Rate(); err != nil {
		result = multierror.Append(result, err)
	} else if !rate.IsPositive() {
		result = multierror.Append(result, fmt.Errorf("settings.joy_usd_rate must be positive, got %s", c.Settings.JoyUsdRate))
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Save writes the config with comments, replacing any previous file.
func (c *Config) Save(path string, logger *log.Logger) error {
	return WriteYamlWithComments(c, header, path, true, logger)
}

// Init writes the config only if no file exists yet.
func (c *Config) Init(path string, logger *log.Logger) error {
	return WriteYamlWithComments(c, header, path, false, logger)
}

func validateUrl(name, raw string, schemes ...string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s %q: %w", name, raw, err)
	}
	for _, scheme := range schemes {
		if parsed.Scheme == scheme && parsed.Host != "" {
			return nil
		}
	}
	return fmt.Errorf("%s %q must be a %v url", name, raw, schemes)
}
