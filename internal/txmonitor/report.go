package txmonitor

import (
	"fmt"
	"math/big"

	"github.com/dubcdr/uni-listen/internal/calldecoder"
	"github.com/dubcdr/uni-listen/internal/report"

	"github.com/shopspring/decimal"
)

// etherDecimals is the number of decimals between wei and ether.
const etherDecimals = 18

const (
	waitingText        = "Waiting for next transaction..."
	noMatchText        = "No matching transactions"
	unsupportedMethod  = "Unsupported method"
	blockTextFormat    = "New block %s"
	txnTextFormat      = "txn :: %s"
	valueTextFormat    = "swap %s ETH"
	argumentTextFormat = "%s: %v"
)

// formatEther renders a wei amount in ether without trailing zeros.
func formatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}

	return decimal.NewFromBigInt(wei, -etherDecimals).String()
}

func waitingMessage() report.Message {
	return report.NewMessage(report.Waiting(waitingText))
}

// blockSummaryMessage announces block and whether any transaction matched.
func blockSummaryMessage(block Block, matched int) report.Message {
	msg := report.NewMessage(report.Done(fmt.Sprintf(blockTextFormat, block.Hash.Hex())))
	if matched == 0 {
		msg.Append(report.Info(noMatchText))
	}

	return msg
}

// transactionMessage describes the decoding outcome of one matched transaction.
func transactionMessage(tx Transaction, result calldecoder.Result) report.Message {
	msg := report.NewMessage(report.Log(1, fmt.Sprintf(txnTextFormat, tx.Hash.Hex())))

	switch r := result.(type) {
	case calldecoder.Decoded:
		msg.Append(report.Log(2, fmt.Sprintf(valueTextFormat, formatEther(tx.Value))))
		for _, arg := range r.Highlighted() {
			msg.Append(report.Log(2, fmt.Sprintf(argumentTextFormat, arg.Name, arg.Value)))
		}
	default:
		msg.Append(report.Log(2, unsupportedMethod))
	}

	return msg
}
