package txmonitor

import (
	"context"
	"errors"
	"time"

	"github.com/dubcdr/uni-listen/internal/calldecoder"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// instrumentationName scopes the tracer and meter of this package.
const instrumentationName = "github.com/dubcdr/uni-listen/internal/txmonitor"

const (
	outcomeDecoded     = "decoded"
	outcomeUnsupported = "unsupported"
)

// metrics groups the instruments recorded per block.
type metrics struct {
	blocksProcessed     metric.Int64Counter
	transactionsMatched metric.Int64Counter
	transactionsDecoded metric.Int64Counter
	blockDuration       metric.Float64Histogram
}

// newMetrics creates every instrument. On error the returned instruments are
// still safe to use.
func newMetrics(meter metric.Meter) (metrics, error) {
	var (
		m    metrics
		err  error
		errs []error
	)

	m.blocksProcessed, err = meter.Int64Counter("unilisten.blocks.processed",
		metric.WithDescription("Blocks fetched, filtered and decoded"),
		metric.WithUnit("{block}"),
	)
	errs = append(errs, err)

	m.transactionsMatched, err = meter.Int64Counter("unilisten.transactions.matched",
		metric.WithDescription("Transactions sent to the target address"),
		metric.WithUnit("{transaction}"),
	)
	errs = append(errs, err)

	m.transactionsDecoded, err = meter.Int64Counter("unilisten.transactions.decoded",
		metric.WithDescription("Matched transactions by decoding outcome"),
		metric.WithUnit("{transaction}"),
	)
	errs = append(errs, err)

	m.blockDuration, err = meter.Float64Histogram("unilisten.block.processing.duration",
		metric.WithDescription("Time from block announcement to the last transaction report"),
		metric.WithUnit("s"),
	)
	errs = append(errs, err)

	return m, errors.Join(errs...)
}

func (m metrics) recordDecode(ctx context.Context, result calldecoder.Result) {
	outcome := outcomeUnsupported
	if _, ok := result.(calldecoder.Decoded); ok {
		outcome = outcomeDecoded
	}

	m.transactionsDecoded.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m metrics) recordBlock(ctx context.Context, matched int, startedAt time.Time) {
	m.blocksProcessed.Add(ctx, 1)
	m.transactionsMatched.Add(ctx, int64(matched))
	m.blockDuration.Record(ctx, time.Since(startedAt).Seconds())
}
