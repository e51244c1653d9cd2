package txmonitor

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// BlockID identifies a block announced by the chain subscription.
type BlockID struct {
	Hash   common.Hash // Block hash, the lookup key
	Number uint64      // Block height when the transport knows it, zero otherwise
}

// Transaction is the part of a transaction the monitor inspects.
type Transaction struct {
	Hash  common.Hash     // Transaction hash
	To    *common.Address // Recipient, nil for contract creation
	Value *big.Int        // Transferred amount in wei
	Input []byte          // Call payload
}

// Block is a fully retrieved block with its transactions in block order.
type Block struct {
	Hash         common.Hash
	Number       uint64
	Transactions []Transaction
}

// BlockNotification is one element of the subscription stream.
// A notification with a non-nil Err ends the stream.
type BlockNotification struct {
	ID  BlockID
	Err error
}
