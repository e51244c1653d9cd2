package ethereum

import (
	"context"
	"errors"
	"fmt"

	"github.com/dubcdr/uni-listen/internal/pkg/logger"
	"github.com/dubcdr/uni-listen/internal/pkg/x/chflow"
	"github.com/dubcdr/uni-listen/internal/txmonitor"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
)

// headsBufferSize bounds the heads queued while a block is being processed.
const headsBufferSize = 16

// toTransaction converts a go-ethereum transaction to a txmonitor.Transaction.
func toTransaction(tx *types.Transaction) txmonitor.Transaction {
	return txmonitor.Transaction{
		Hash:  tx.Hash(),
		To:    tx.To(),
		Value: tx.Value(),
		Input: tx.Data(),
	}
}

// toBlock converts a go-ethereum block to a txmonitor.Block.
func toBlock(b *types.Block) txmonitor.Block {
	transactions := make([]txmonitor.Transaction, len(b.Transactions()))
	for i, tx := range b.Transactions() {
		transactions[i] = toTransaction(tx)
	}

	return txmonitor.Block{
		Hash:         b.Hash(),
		Number:       b.NumberU64(),
		Transactions: transactions,
	}
}

// toBlockID builds the announcement of a new head.
func toBlockID(h *types.Header) txmonitor.BlockID {
	id := txmonitor.BlockID{Hash: h.Hash()}
	if h.Number != nil {
		id.Number = h.Number.Uint64()
	}

	return id
}

// forwardHeads relays heads to notificationsCh until ctx is done or the
// subscription fails, in which case the failure is the last notification.
func forwardHeads(ctx context.Context, sub ethereum.Subscription, headsCh <-chan *types.Header, notificationsCh chan<- txmonitor.BlockNotification) {
	defer close(notificationsCh)
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-sub.Err():
			if !ok || err == nil {
				return
			}

			logger.Error(ctx, "head subscription failed", "error", err)
			chflow.Send(ctx, notificationsCh, txmonitor.BlockNotification{Err: err})
			return
		case header := <-headsCh:
			id := toBlockID(header)
			logger.Debug(ctx, "new head", "block_hash", id.Hash.Hex(), "block_number", id.Number)

			if !chflow.Send(ctx, notificationsCh, txmonitor.BlockNotification{ID: id}) {
				return
			}
		}
	}
}

// Subscribe implements txmonitor.Blockchain.
func (c *client) Subscribe(ctx context.Context) (<-chan txmonitor.BlockNotification, error) {
	headsCh := make(chan *types.Header, headsBufferSize)
	sub, err := c.heads.SubscribeNewHead(ctx, headsCh)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to new heads: %w", err)
	}

	notificationsCh := make(chan txmonitor.BlockNotification, headsBufferSize)
	go forwardHeads(ctx, sub, headsCh, notificationsCh)

	return notificationsCh, nil
}

// FetchFullBlock implements txmonitor.Blockchain.
func (c *client) FetchFullBlock(ctx context.Context, id txmonitor.BlockID) (txmonitor.Block, error) {
	b, err := c.blocks.BlockByHash(ctx, id.Hash)
	if errors.Is(err, ethereum.NotFound) {
		return txmonitor.Block{}, fmt.Errorf("%w: %s", txmonitor.ErrBlockNotYetAvailable, id.Hash.Hex())
	}

	if err != nil {
		return txmonitor.Block{}, err
	}

	if b.Hash() != id.Hash {
		return txmonitor.Block{}, fmt.Errorf("%w: requested %s, got %s", txmonitor.ErrMalformedBlock, id.Hash.Hex(), b.Hash().Hex())
	}

	return toBlock(b), nil
}
