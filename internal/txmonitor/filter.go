package txmonitor

import "github.com/ethereum/go-ethereum/common"

// FilterByRecipient returns the transactions of block sent to target, in block
// order. Contract creations never match.
func FilterByRecipient(block Block, target common.Address) []Transaction {
	matched := make([]Transaction, 0)
	for _, tx := range block.Transactions {
		if tx.To != nil && *tx.To == target {
			matched = append(matched, tx)
		}
	}

	return matched
}
