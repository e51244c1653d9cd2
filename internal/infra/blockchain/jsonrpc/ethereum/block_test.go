package ethereum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/dubcdr/uni-listen/internal/pkg/logger"
	"github.com/dubcdr/uni-listen/internal/pkg/transport/jsonrpc"
	jsonrpctest "github.com/dubcdr/uni-listen/internal/pkg/transport/jsonrpc/mocks"
	"github.com/dubcdr/uni-listen/internal/txmonitor"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	_ = logger.Init("error")
}

var router = common.HexToAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D")

func hashOf(n uint64) common.Hash {
	return common.BigToHash(new(big.Int).SetUint64(n + 0xb000))
}

func headerJSON(n uint64) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{"hash":%q,"number":%q}`, hashOf(n).Hex(), hexutil.EncodeUint64(n)))
}

func TestTransactionResponse_toMonitorTransaction(t *testing.T) {
	t.Run("converts every field", func(t *testing.T) {
		to := router
		tr := TransactionResponse{
			Hash:  common.HexToHash("0x01"),
			To:    &to,
			Value: (*hexutil.Big)(big.NewInt(1000)),
			Input: hexutil.Bytes{0x7f, 0xf3, 0x6a, 0xb5},
		}

		tx := tr.toMonitorTransaction()

		assert.Equal(t, txmonitor.Transaction{
			Hash:  common.HexToHash("0x01"),
			To:    &to,
			Value: big.NewInt(1000),
			Input: []byte{0x7f, 0xf3, 0x6a, 0xb5},
		}, tx)
	})

	t.Run("defaults a missing value to zero", func(t *testing.T) {
		tx := TransactionResponse{}.toMonitorTransaction()

		require.NotNil(t, tx.Value)
		assert.Zero(t, tx.Value.Sign())
		assert.Nil(t, tx.To)
	})
}

func TestBlockResponse_toMonitorBlock(t *testing.T) {
	t.Run("converts BlockResponse to txmonitor.Block", func(t *testing.T) {
		blockResp := BlockResponse{
			HeaderResponse: HeaderResponse{Hash: hashOf(16), Number: 16},
			Transactions: []TransactionResponse{
				{Hash: common.HexToHash("0x01")},
				{Hash: common.HexToHash("0x02")},
			},
		}

		block := blockResp.toMonitorBlock()

		assert.Equal(t, hashOf(16), block.Hash)
		assert.Equal(t, uint64(16), block.Number)
		require.Len(t, block.Transactions, 2)
		assert.Equal(t, common.HexToHash("0x01"), block.Transactions[0].Hash)
		assert.Equal(t, common.HexToHash("0x02"), block.Transactions[1].Hash)
	})
}

func TestClient_getLatestBlockNumber(t *testing.T) {
	t.Run("returns latest block number successfully", func(t *testing.T) {
		mockClient := jsonrpctest.NewClient(t)
		mockClient.EXPECT().Fetch(mock.Anything, "eth_blockNumber").Return(json.RawMessage(`"0x10"`), nil)

		result, err := NewClient(mockClient).getLatestBlockNumber(t.Context())

		assert.NoError(t, err)
		assert.Equal(t, uint64(16), result)
	})

	t.Run("returns error when fetch fails", func(t *testing.T) {
		mockClient := jsonrpctest.NewClient(t)
		mockClient.EXPECT().Fetch(mock.Anything, "eth_blockNumber").Return(nil, errors.New("fetch error"))

		_, err := NewClient(mockClient).getLatestBlockNumber(t.Context())

		assert.Error(t, err)
	})

	t.Run("returns error on invalid response", func(t *testing.T) {
		mockClient := jsonrpctest.NewClient(t)
		mockClient.EXPECT().Fetch(mock.Anything, "eth_blockNumber").Return(json.RawMessage(`"not-a-hex-string"`), nil)

		_, err := NewClient(mockClient).getLatestBlockNumber(t.Context())

		assert.ErrorContains(t, err, "invalid block number")
	})
}

func TestClient_pollNewBlocks(t *testing.T) {
	t.Run("announces every block after the last one up to latest", func(t *testing.T) {
		mockClient := jsonrpctest.NewClient(t)
		mockClient.EXPECT().Fetch(mock.Anything, "eth_blockNumber").Return(json.RawMessage(`"0x13"`), nil)
		for n := uint64(0x11); n <= 0x13; n++ {
			mockClient.EXPECT().Fetch(mock.Anything, "eth_getBlockByNumber", hexutil.EncodeUint64(n), false).Return(headerJSON(n), nil)
		}

		events := make(chan txmonitor.BlockNotification, 10)
		last, err := NewClient(mockClient).pollNewBlocks(t.Context(), 0x10, events)

		require.NoError(t, err)
		assert.Equal(t, uint64(0x13), last)

		close(events)
		var got []txmonitor.BlockID
		for ev := range events {
			assert.NoError(t, ev.Err)
			got = append(got, ev.ID)
		}
		assert.Equal(t, []txmonitor.BlockID{
			{Hash: hashOf(0x11), Number: 0x11},
			{Hash: hashOf(0x12), Number: 0x12},
			{Hash: hashOf(0x13), Number: 0x13},
		}, got)
	})

	t.Run("announces nothing when no block was produced", func(t *testing.T) {
		mockClient := jsonrpctest.NewClient(t)
		mockClient.EXPECT().Fetch(mock.Anything, "eth_blockNumber").Return(json.RawMessage(`"0x20"`), nil)

		events := make(chan txmonitor.BlockNotification, 1)
		last, err := NewClient(mockClient).pollNewBlocks(t.Context(), 0x20, events)

		require.NoError(t, err)
		assert.Equal(t, uint64(0x20), last)
		assert.Empty(t, events)
	})

	t.Run("stops early when a block is not served yet", func(t *testing.T) {
		mockClient := jsonrpctest.NewClient(t)
		mockClient.EXPECT().Fetch(mock.Anything, "eth_blockNumber").Return(json.RawMessage(`"0x12"`), nil)
		mockClient.EXPECT().Fetch(mock.Anything, "eth_getBlockByNumber", "0x11", false).Return(headerJSON(0x11), nil)
		mockClient.EXPECT().Fetch(mock.Anything, "eth_getBlockByNumber", "0x12", false).
			Return(nil, fmt.Errorf("%w: eth_getBlockByNumber", jsonrpc.ErrNullResult))

		events := make(chan txmonitor.BlockNotification, 2)
		last, err := NewClient(mockClient).pollNewBlocks(t.Context(), 0x10, events)

		require.NoError(t, err)
		assert.Equal(t, uint64(0x11), last, "the unavailable block is retried on the next poll")
		assert.Len(t, events, 1)
	})

	t.Run("returns the error and progress when a lookup fails", func(t *testing.T) {
		mockClient := jsonrpctest.NewClient(t)
		expectedErr := errors.New("rpc error")
		mockClient.EXPECT().Fetch(mock.Anything, "eth_blockNumber").Return(json.RawMessage(`"0x12"`), nil)
		mockClient.EXPECT().Fetch(mock.Anything, "eth_getBlockByNumber", "0x11", false).Return(headerJSON(0x11), nil)
		mockClient.EXPECT().Fetch(mock.Anything, "eth_getBlockByNumber", "0x12", false).Return(nil, expectedErr)

		events := make(chan txmonitor.BlockNotification, 2)
		last, err := NewClient(mockClient).pollNewBlocks(t.Context(), 0x10, events)

		assert.ErrorIs(t, err, expectedErr)
		assert.Equal(t, uint64(0x11), last)
	})

	t.Run("returns the error when the latest block number cannot be read", func(t *testing.T) {
		mockClient := jsonrpctest.NewClient(t)
		expectedErr := errors.New("rpc error")
		mockClient.EXPECT().Fetch(mock.Anything, "eth_blockNumber").Return(nil, expectedErr)

		last, err := NewClient(mockClient).pollNewBlocks(t.Context(), 0x5, make(chan txmonitor.BlockNotification))

		assert.ErrorIs(t, err, expectedErr)
		assert.Equal(t, uint64(0x5), last)
	})
}

func TestClient_Subscribe(t *testing.T) {
	t.Run("announces blocks produced after the subscription", func(t *testing.T) {
		mockClient := jsonrpctest.NewClient(t)
		mockClient.EXPECT().Fetch(mock.Anything, "eth_blockNumber").Return(json.RawMessage(`"0x10"`), nil).Once()
		mockClient.EXPECT().Fetch(mock.Anything, "eth_blockNumber").Return(json.RawMessage(`"0x11"`), nil)
		mockClient.EXPECT().Fetch(mock.Anything, "eth_getBlockByNumber", "0x11", false).Return(headerJSON(0x11), nil).Once()

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		notifications, err := NewClient(mockClient, WithPollInterval(5*time.Millisecond)).Subscribe(ctx)
		require.NoError(t, err)

		select {
		case n := <-notifications:
			assert.NoError(t, n.Err)
			assert.Equal(t, txmonitor.BlockID{Hash: hashOf(0x11), Number: 0x11}, n.ID)
		case <-time.After(2 * time.Second):
			t.Fatal("no block announced")
		}

		cancel()
		for range notifications {
		}
	})

	t.Run("ends the stream with the polling error", func(t *testing.T) {
		mockClient := jsonrpctest.NewClient(t)
		expectedErr := errors.New("connection reset")
		mockClient.EXPECT().Fetch(mock.Anything, "eth_blockNumber").Return(json.RawMessage(`"0x10"`), nil).Once()
		mockClient.EXPECT().Fetch(mock.Anything, "eth_blockNumber").Return(nil, expectedErr).Once()

		notifications, err := NewClient(mockClient, WithPollInterval(time.Millisecond)).Subscribe(t.Context())
		require.NoError(t, err)

		var received []txmonitor.BlockNotification
		for n := range notifications {
			received = append(received, n)
		}

		require.Len(t, received, 1)
		assert.ErrorIs(t, received[0].Err, expectedErr)
	})

	t.Run("fails when the latest block number cannot be read", func(t *testing.T) {
		mockClient := jsonrpctest.NewClient(t)
		mockClient.EXPECT().Fetch(mock.Anything, "eth_blockNumber").Return(nil, errors.New("unauthorized"))

		notifications, err := NewClient(mockClient).Subscribe(t.Context())

		assert.ErrorContains(t, err, "unauthorized")
		assert.Nil(t, notifications)
	})
}

func TestClient_FetchFullBlock(t *testing.T) {
	id := txmonitor.BlockID{Hash: hashOf(16), Number: 16}

	t.Run("returns the converted block", func(t *testing.T) {
		mockClient := jsonrpctest.NewClient(t)
		rawJSON := json.RawMessage(fmt.Sprintf(`{
			"hash": %q,
			"number": "0x10",
			"transactions": [
				{"hash": %q, "from": "0x00000000000000000000000000000000000000aa", "to": %q, "value": "0x3e8", "input": "0x7ff36ab5"},
				{"hash": %q, "to": null, "value": "0x0", "input": "0x6080"}
			]
		}`, id.Hash.Hex(), common.HexToHash("0x01").Hex(), router.Hex(), common.HexToHash("0x02").Hex()))
		mockClient.EXPECT().Fetch(mock.Anything, "eth_getBlockByHash", id.Hash.Hex(), true).Return(rawJSON, nil)

		block, err := NewClient(mockClient).FetchFullBlock(t.Context(), id)

		require.NoError(t, err)
		assert.Equal(t, id.Hash, block.Hash)
		assert.Equal(t, uint64(16), block.Number)
		require.Len(t, block.Transactions, 2)
		assert.Equal(t, router, *block.Transactions[0].To)
		assert.Equal(t, int64(1000), block.Transactions[0].Value.Int64())
		assert.Equal(t, []byte{0x7f, 0xf3, 0x6a, 0xb5}, block.Transactions[0].Input)
		assert.Nil(t, block.Transactions[1].To)
	})

	t.Run("maps a null result to ErrBlockNotYetAvailable", func(t *testing.T) {
		mockClient := jsonrpctest.NewClient(t)
		mockClient.EXPECT().Fetch(mock.Anything, "eth_getBlockByHash", id.Hash.Hex(), true).
			Return(nil, fmt.Errorf("%w: eth_getBlockByHash", jsonrpc.ErrNullResult))

		_, err := NewClient(mockClient).FetchFullBlock(t.Context(), id)

		assert.ErrorIs(t, err, txmonitor.ErrBlockNotYetAvailable)
	})

	t.Run("rejects unparsable block data", func(t *testing.T) {
		mockClient := jsonrpctest.NewClient(t)
		mockClient.EXPECT().Fetch(mock.Anything, "eth_getBlockByHash", id.Hash.Hex(), true).
			Return(json.RawMessage(`{"hash": "0xabc", "transactions": []}`), nil)

		_, err := NewClient(mockClient).FetchFullBlock(t.Context(), id)

		assert.ErrorIs(t, err, txmonitor.ErrMalformedBlock)
	})

	t.Run("rejects a block with another hash", func(t *testing.T) {
		mockClient := jsonrpctest.NewClient(t)
		mockClient.EXPECT().Fetch(mock.Anything, "eth_getBlockByHash", id.Hash.Hex(), true).Return(headerJSON(17), nil)

		_, err := NewClient(mockClient).FetchFullBlock(t.Context(), id)

		assert.ErrorIs(t, err, txmonitor.ErrMalformedBlock)
	})

	t.Run("returns transport errors unchanged", func(t *testing.T) {
		mockClient := jsonrpctest.NewClient(t)
		expectedErr := errors.New("rpc failure")
		mockClient.EXPECT().Fetch(mock.Anything, "eth_getBlockByHash", id.Hash.Hex(), true).Return(nil, expectedErr)

		_, err := NewClient(mockClient).FetchFullBlock(t.Context(), id)

		assert.ErrorIs(t, err, expectedErr)
		assert.NotErrorIs(t, err, txmonitor.ErrMalformedBlock)
	})
}

func TestNewClient(t *testing.T) {
	t.Run("uses the default poll interval", func(t *testing.T) {
		mockConn := jsonrpctest.NewClient(t)

		c := NewClient(mockConn)

		assert.Equal(t, mockConn, c.conn)
		assert.Equal(t, defaultPollInterval, c.pollInterval)

		// Compile-time interface check
		var _ txmonitor.Blockchain = c
	})

	t.Run("applies a custom poll interval and ignores invalid ones", func(t *testing.T) {
		assert.Equal(t, time.Second, NewClient(nil, WithPollInterval(time.Second)).pollInterval)
		assert.Equal(t, defaultPollInterval, NewClient(nil, WithPollInterval(0)).pollInterval)
	})
}
