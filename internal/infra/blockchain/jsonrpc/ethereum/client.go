// Package ethereum implements the txmonitor.Blockchain interface for
// Ethereum-compatible nodes that only expose HTTP. New blocks are discovered
// by polling eth_blockNumber and looked up with eth_getBlockByHash.
package ethereum

import (
	"time"

	"github.com/dubcdr/uni-listen/internal/pkg/transport/jsonrpc"
	"github.com/dubcdr/uni-listen/internal/txmonitor"
)

// defaultPollInterval is the delay between two eth_blockNumber calls.
const defaultPollInterval = 2 * time.Second

// client implements txmonitor.Blockchain over a JSON-RPC connection.
type client struct {
	conn         jsonrpc.Client // Underlying JSON-RPC client used to interact with the Ethereum node
	pollInterval time.Duration  // Delay between polls for new blocks
}

// Ensure client implements the txmonitor.Blockchain interface at compile time.
var _ txmonitor.Blockchain = (*client)(nil)

// Option configures the polling client.
type Option func(*client)

// WithPollInterval sets the delay between polls. Non-positive values are ignored.
func WithPollInterval(d time.Duration) Option {
	return func(c *client) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// NewClient creates a polling Ethereum client using the provided JSON-RPC connection.
func NewClient(conn jsonrpc.Client, opts ...Option) *client {
	c := &client{
		conn:         conn,
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}
