// Package ethereum implements the txmonitor.Blockchain interface on top of
// go-ethereum's ethclient. New heads are pushed over a websocket subscription
// and full blocks are looked up by hash, usually over HTTP.
package ethereum

import (
	"context"
	"fmt"

	"github.com/dubcdr/uni-listen/internal/txmonitor"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// HeadSubscriber streams new chain heads. *ethclient.Client implements it.
type HeadSubscriber interface {
	SubscribeNewHead(ctx context.Context, ch chan<- *types.Header) (ethereum.Subscription, error)
}

// BlockReader looks blocks up by hash. *ethclient.Client implements it.
type BlockReader interface {
	BlockByHash(ctx context.Context, hash common.Hash) (*types.Block, error)
}

// client implements txmonitor.Blockchain.
type client struct {
	heads   HeadSubscriber // push source of new heads
	blocks  BlockReader    // full block lookups
	closers []func()       // releases dialed connections
}

var _ txmonitor.Blockchain = (*client)(nil)

// Close releases the connections opened by Dial. It is a no-op for clients
// built with NewClient.
func (c *client) Close() {
	for _, closeFn := range c.closers {
		closeFn()
	}
}

// NewClient creates a Blockchain reading heads from heads and blocks from blocks.
func NewClient(heads HeadSubscriber, blocks BlockReader) *client {
	return &client{
		heads:  heads,
		blocks: blocks,
	}
}

// Dial connects to wsEndpoint for the head subscription and to httpEndpoint
// for block lookups. Both may point to the same node.
func Dial(ctx context.Context, wsEndpoint, httpEndpoint string) (*client, error) {
	wsClient, err := ethclient.DialContext(ctx, wsEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to websocket endpoint: %w", err)
	}

	httpClient, err := ethclient.DialContext(ctx, httpEndpoint)
	if err != nil {
		wsClient.Close()
		return nil, fmt.Errorf("failed to connect to http endpoint: %w", err)
	}

	c := NewClient(wsClient, httpClient)
	c.closers = []func(){wsClient.Close, httpClient.Close}
	return c, nil
}
