package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/traumschule/joyutils/config"
	"github.com/traumschule/joyutils/log"
)

func testLogger() *log.Logger {
	return log.NewLoggerWithWriter(&bytes.Buffer{}, "error")
}

func TestDefault_IsValid(t *testing.T) {
	cfg := config.Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "wss://rpc.joyutils.org", cfg.RpcUrl)
	assert.Equal(t, uint64(config.DefaultTermLength), cfg.Settings.TermLength)
}

func TestParse_FillsDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte("rpc_url: ws://127.0.0.1:9944\nsettings:\n  working_group: forumWorkingGroup\n"))
	require.NoError(t, err)

	assert.Equal(t, "ws://127.0.0.1:9944", cfg.RpcUrl)
	assert.Equal(t, "https://query.joyutils.org/graphql", cfg.IndexerUrl)
	assert.Equal(t, "forumWorkingGroup", cfg.Settings.WorkingGroup)
	assert.Equal(t, config.DefaultJoyUsdRate, cfg.Settings.JoyUsdRate)
}

func TestParse_UnknownNetwork(t *testing.T) {
	_, err := config.Parse([]byte("network: kusama\n"))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := config.Default()
	cfg.RpcUrl = "https://not-a-websocket"
	cfg.LogLevel = "chatty"
	cfg.Settings.TermLength = 0
	cfg.Settings.JoyUsdRate = "-1"

	err := cfg.Validate()
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "rpc_url")
	assert.Contains(t, err.Error(), "log_level")
	assert.Contains(t, err.Error(), "term_length")
	assert.Contains(t, err.Error(), "joy_usd_rate")
}

func TestSaveAndLoad_RoundTripsWithComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	cfg := config.Default()
	cfg.Settings.WorkingGroup = "storageWorkingGroup"

	require.NoError(t, cfg.Save(path, testLogger()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "# joyutils configuration")
	assert.Contains(t, string(raw), "# Chain websocket RPC endpoint\nrpc_url:")

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestInit_DoesNotOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("network: local\n"), 0o600))

	require.NoError(t, config.Default().Init(path, testLogger()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "network: local\n", string(raw))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestSettingsStore_PersistsUpdates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	store := config.NewSettingsStore(config.Default(), path, testLogger())

	require.NoError(t, store.SetWorkingGroup("contentWorkingGroup"))
	require.NoError(t, store.SetJoyUsdRate("0.015"))
	require.NoError(t, store.SetTermLength(201600))
	require.NoError(t, store.SetLastUsedWallet("keyring"))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Settings{
		WorkingGroup:   "contentWorkingGroup",
		JoyUsdRate:     "0.015",
		TermLength:     201600,
		LastUsedWallet: "keyring",
	}, loaded.Settings)
	assert.Equal(t, "keyring", store.LastUsedWallet())
}

func TestSettingsStore_RejectsInvalidValues(t *testing.T) {
	store := config.NewSettingsStore(config.Default(), "", testLogger())

	assert.ErrorIs(t, store.SetJoyUsdRate("zero"), config.ErrInvalidConfig)
	assert.ErrorIs(t, store.SetJoyUsdRate("0"), config.ErrInvalidConfig)
	assert.ErrorIs(t, store.SetTermLength(0), config.ErrInvalidConfig)
	assert.Error(t, store.SetWorkingGroup(""))

	assert.Equal(t, config.DefaultJoyUsdRate, store.Get().JoyUsdRate)
}

func TestExpandHomeDir(t *testing.T) {
	t.Setenv("HOME", "/home/joy")

	assert.Equal(t, "/home/joy/.joyutils/config.yml", config.ExpandHomeDir(config.DefaultPath()))
	assert.Equal(t, "/home/joy", config.ExpandHomeDir("~"))
	assert.Equal(t, "/etc/joyutils.yml", config.ExpandHomeDir("/etc/joyutils.yml"))
	assert.Equal(t, "~joy/config.yml", config.ExpandHomeDir("~joy/config.yml"))
}

func TestLocalNetwork_IsValidWithoutExplorer(t *testing.T) {
	cfg, err := config.Parse([]byte("network: local\n"))
	require.NoError(t, err)

	assert.Empty(t, cfg.ExplorerUrl)
	require.NoError(t, cfg.Validate())

	cfg.ExplorerUrl = "joystream.subscan.io"
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
}
