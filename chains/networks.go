package chains

import (
	"errors"
	"sort"
	"time"
)

var ErrUnknownNetwork = errors.New("unknown network")

const (
	Mainnet = "mainnet"
	Local   = "local"
)

// Offline network presets, so the tool works without any configuration.
var networks = map[string]*Network{
	Mainnet: {
		Name:          Mainnet,
		RpcUrl:        "wss://rpc.joyutils.org",
		IndexerUrl:    "https://query.joyutils.org/graphql",
		SidecarUrl:    "https://monitoring.joyutils.org/sidecar/",
		ExplorerUrl:   "https://joystream.subscan.io",
		SS58Prefix:    126,
		TokenSymbol:   "JOY",
		TokenDecimals: 10,
		BlockTime:     6 * time.Second,
	},
	Local: {
		Name:          Local,
		RpcUrl:        "ws://127.0.0.1:9944",
		IndexerUrl:    "http://127.0.0.1:8081/graphql",
		SidecarUrl:    "http://127.0.0.1:8080/",
		// No explorer indexes a local chain.
		ExplorerUrl:   "",
		SS58Prefix:    126,
		TokenSymbol:   "JOY",
		TokenDecimals: 10,
		BlockTime:     6 * time.Second,
	},
}

// ByName returns a copy of the named preset.
func ByName(name string) (*Network, error) {
	network, ok := networks[name]
	if !ok {
		return nil, ErrUnknownNetwork
	}

	copied := *network
	return &copied, nil
}

// Names lists known presets in a stable order.
func Names() []string {
	names := make([]string, 0, len(networks))
	for name := range networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
