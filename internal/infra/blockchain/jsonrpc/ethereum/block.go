package ethereum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/dubcdr/uni-listen/internal/pkg/logger"
	"github.com/dubcdr/uni-listen/internal/pkg/transport/jsonrpc"
	"github.com/dubcdr/uni-listen/internal/pkg/x/chflow"
	"github.com/dubcdr/uni-listen/internal/txmonitor"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// notificationsBufferSize bounds the announcements queued while a block is processed.
const notificationsBufferSize = 16

type (
	// TransactionResponse holds the transaction fields of eth_getBlockByHash the monitor uses.
	TransactionResponse struct {
		Hash  common.Hash     `json:"hash"`
		To    *common.Address `json:"to"`
		Value *hexutil.Big    `json:"value"`
		Input hexutil.Bytes   `json:"input"`
	}

	// HeaderResponse holds the identity of a block, as returned by eth_getBlockByNumber without transactions.
	HeaderResponse struct {
		Hash   common.Hash    `json:"hash"`
		Number hexutil.Uint64 `json:"number"`
	}

	// BlockResponse holds a block with its full transaction objects.
	BlockResponse struct {
		HeaderResponse
		Transactions []TransactionResponse `json:"transactions"`
	}
)

// toMonitorTransaction converts a TransactionResponse to a txmonitor.Transaction.
func (t TransactionResponse) toMonitorTransaction() txmonitor.Transaction {
	value := new(big.Int)
	if t.Value != nil {
		value = t.Value.ToInt()
	}

	return txmonitor.Transaction{
		Hash:  t.Hash,
		To:    t.To,
		Value: value,
		Input: t.Input,
	}
}

// toMonitorBlock converts a BlockResponse to a txmonitor.Block.
func (b BlockResponse) toMonitorBlock() txmonitor.Block {
	transactions := make([]txmonitor.Transaction, len(b.Transactions))
	for i, t := range b.Transactions {
		transactions[i] = t.toMonitorTransaction()
	}

	return txmonitor.Block{
		Hash:         b.Hash,
		Number:       uint64(b.Number),
		Transactions: transactions,
	}
}

// toBlockID converts a HeaderResponse to the announcement of a block.
func (h HeaderResponse) toBlockID() txmonitor.BlockID {
	return txmonitor.BlockID{Hash: h.Hash, Number: uint64(h.Number)}
}

// getLatestBlockNumber fetches the latest block number from the Ethereum node.
func (c *client) getLatestBlockNumber(ctx context.Context) (uint64, error) {
	data, err := c.conn.Fetch(ctx, "eth_blockNumber")
	if err != nil {
		return 0, err
	}

	var blockNumber hexutil.Uint64
	if err := json.Unmarshal(data, &blockNumber); err != nil {
		return 0, fmt.Errorf("invalid block number: %w", err)
	}

	return uint64(blockNumber), nil
}

// getHeaderByNumber retrieves the hash and number of a block, without its transactions.
func (c *client) getHeaderByNumber(ctx context.Context, blockNumber uint64) (HeaderResponse, error) {
	data, err := c.conn.Fetch(ctx, "eth_getBlockByNumber", hexutil.EncodeUint64(blockNumber), false)
	if err != nil {
		return HeaderResponse{}, err
	}

	var header HeaderResponse
	if err := json.Unmarshal(data, &header); err != nil {
		return HeaderResponse{}, fmt.Errorf("invalid header of block %d: %w", blockNumber, err)
	}

	return header, nil
}

// getBlockByHash retrieves a full block by its hash. Undecodable data is
// reported as txmonitor.ErrMalformedBlock.
func (c *client) getBlockByHash(ctx context.Context, hash common.Hash) (BlockResponse, error) {
	data, err := c.conn.Fetch(ctx, "eth_getBlockByHash", hash.Hex(), true)
	if err != nil {
		return BlockResponse{}, err
	}

	var blockResponse BlockResponse
	if err := json.Unmarshal(data, &blockResponse); err != nil {
		return BlockResponse{}, fmt.Errorf("%w: %s: %w", txmonitor.ErrMalformedBlock, hash.Hex(), err)
	}

	return blockResponse, nil
}

// pollNewBlocks announces every block after lastBlockNumber up to the latest
// block number and returns the number of the last block announced.
//
// A block the node reports as latest but cannot serve by number yet stops the
// round early; it is picked up again on the next poll. Any other failure is
// returned with the progress made so far.
func (c *client) pollNewBlocks(ctx context.Context, lastBlockNumber uint64, notificationsCh chan<- txmonitor.BlockNotification) (uint64, error) {
	latestBlockNumber, err := c.getLatestBlockNumber(ctx)
	if err != nil {
		return lastBlockNumber, err
	}

	for number := lastBlockNumber + 1; number <= latestBlockNumber; number++ {
		header, err := c.getHeaderByNumber(ctx, number)
		if errors.Is(err, jsonrpc.ErrNullResult) {
			logger.Debug(ctx, "block not served yet", "block_number", number)
			return lastBlockNumber, nil
		}

		if err != nil {
			return lastBlockNumber, err
		}

		if !chflow.Send(ctx, notificationsCh, txmonitor.BlockNotification{ID: header.toBlockID()}) {
			return lastBlockNumber, ctx.Err()
		}

		lastBlockNumber = number
	}

	return lastBlockNumber, nil
}

// Subscribe implements txmonitor.Blockchain.
//
// Only blocks produced after the call are announced. A polling failure is
// sent as the last notification before the channel is closed.
func (c *client) Subscribe(ctx context.Context) (<-chan txmonitor.BlockNotification, error) {
	lastBlockNumber, err := c.getLatestBlockNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch the latest block number: %w", err)
	}

	notificationsCh := make(chan txmonitor.BlockNotification, notificationsBufferSize)
	go func() {
		defer close(notificationsCh)

		ticker := time.NewTicker(c.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				lastBlockNumber, err = c.pollNewBlocks(ctx, lastBlockNumber, notificationsCh)
				if err != nil {
					if ctx.Err() == nil {
						logger.Error(ctx, "block polling failed", "error", err, "last_block_number", lastBlockNumber)
						chflow.Send(ctx, notificationsCh, txmonitor.BlockNotification{Err: err})
					}
					return
				}
			}
		}
	}()

	return notificationsCh, nil
}

// FetchFullBlock implements txmonitor.Blockchain.
func (c *client) FetchFullBlock(ctx context.Context, id txmonitor.BlockID) (txmonitor.Block, error) {
	blockResponse, err := c.getBlockByHash(ctx, id.Hash)
	if errors.Is(err, jsonrpc.ErrNullResult) {
		return txmonitor.Block{}, fmt.Errorf("%w: %s", txmonitor.ErrBlockNotYetAvailable, id.Hash.Hex())
	}

	if err != nil {
		return txmonitor.Block{}, err
	}

	if blockResponse.Hash != id.Hash {
		return txmonitor.Block{}, fmt.Errorf("%w: requested %s, got %s", txmonitor.ErrMalformedBlock, id.Hash.Hex(), blockResponse.Hash.Hex())
	}

	return blockResponse.toMonitorBlock(), nil
}
