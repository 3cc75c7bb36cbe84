package chains_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/traumschule/joyutils/chains"
)

func TestByName_ReturnsCopy(t *testing.T) {
	network, err := chains.ByName(chains.Mainnet)
	require.NoError(t, err)

	assert.Equal(t, uint16(126), network.SS58Prefix)
	assert.Equal(t, 10, network.TokenDecimals)

	network.RpcUrl = "ws://mutated"
	again, err := chains.ByName(chains.Mainnet)
	require.NoError(t, err)
	assert.NotEqual(t, "ws://mutated", again.RpcUrl)
}

func TestByName_Unknown(t *testing.T) {
	_, err := chains.ByName("kusama")
	assert.ErrorIs(t, err, chains.ErrUnknownNetwork)
}

func TestExtrinsicURL(t *testing.T) {
	network, err := chains.ByName(chains.Mainnet)
	require.NoError(t, err)

	assert.Equal(t, "https://joystream.subscan.io/extrinsic/0xabc", network.ExtrinsicURL("0xabc"))
	assert.Equal(t, "https://explorer/extrinsic/0x01", chains.ExtrinsicURL("https://explorer/", "0x01"))
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{chains.Local, chains.Mainnet}, chains.Names())
}

func TestExtrinsicURL_LocalHasNoExplorer(t *testing.T) {
	network, err := chains.ByName(chains.Local)
	require.NoError(t, err)

	assert.Empty(t, network.ExplorerUrl)
	assert.Empty(t, network.ExtrinsicURL("0xabc"))
}
