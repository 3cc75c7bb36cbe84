package chains

import (
	"fmt"
	"strings"
	"time"
)

// Network describes where a Joystream network's services live and how its token is denominated.
type Network struct {
	Name string

	RpcUrl      string
	IndexerUrl  string
	SidecarUrl  string
	ExplorerUrl string

	SS58Prefix    uint16
	TokenSymbol   string
	TokenDecimals int
	BlockTime     time.Duration
}

// ExtrinsicURL links to an extrinsic on the network's block explorer.
func (n *Network) ExtrinsicURL(transactionHash string) string {
	return ExtrinsicURL(n.ExplorerUrl, transactionHash)
}

// ExtrinsicURL builds `<explorer-base>/extrinsic/<transactionHash>`, or nothing without an explorer.
func ExtrinsicURL(explorerBase, transactionHash string) string {
	if explorerBase == "" {
		return ""
	}
	return fmt.Sprintf("%s/extrinsic/%s", strings.TrimSuffix(explorerBase, "/"), transactionHash)
}
