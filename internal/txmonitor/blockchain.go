package txmonitor

import (
	"context"
	"errors"
)

var (
	// ErrBlockNotYetAvailable is returned by FetchFullBlock when the node has
	// announced a block it cannot serve yet.
	ErrBlockNotYetAvailable = errors.New("block not yet available")

	// ErrMalformedBlock is returned by FetchFullBlock for block data that
	// cannot be trusted, such as a hash different from the requested one.
	ErrMalformedBlock = errors.New("malformed block")

	// ErrSubscriptionClosed is returned when the block stream ends while the
	// monitor is still running.
	ErrSubscriptionClosed = errors.New("block subscription closed")
)

// Blockchain is the chain client the monitor reads from.
type Blockchain interface {
	// Subscribe starts streaming new block announcements.
	//
	// The channel is closed when ctx is canceled. A notification carrying an
	// error is the last one sent.
	Subscribe(ctx context.Context) (<-chan BlockNotification, error)

	// FetchFullBlock retrieves the block identified by id with every transaction.
	//
	// It returns ErrBlockNotYetAvailable when the node does not know the block
	// yet and ErrMalformedBlock when the returned data is inconsistent.
	FetchFullBlock(ctx context.Context, id BlockID) (Block, error)
}
