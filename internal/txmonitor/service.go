// Package txmonitor follows new blocks, picks the transactions sent to one
// contract and reports how their call payloads decode.
//
// For each announced block the service fetches the full block, filters its
// transactions by recipient, reports a block summary and then decodes every
// match on a bounded pool of workers, each reporting its own result. The next
// block is awaited only once every report of the current one is written.
package txmonitor

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/dubcdr/uni-listen/internal/calldecoder"
	"github.com/dubcdr/uni-listen/internal/pkg/logger"
	"github.com/dubcdr/uni-listen/internal/pkg/resilience/retry"
	"github.com/dubcdr/uni-listen/internal/pkg/x/chflow"
	"github.com/dubcdr/uni-listen/internal/report"

	"github.com/ethereum/go-ethereum/common"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Decoder turns a call payload into a decoding result.
type Decoder interface {
	Decode(payload []byte) calldecoder.Result
}

// Service runs the monitoring pipeline.
type Service interface {
	// Run blocks until ctx is canceled, in which case it returns nil, or until
	// a fatal error occurs: subscription failure, block retrieval failure or a
	// report that cannot be written.
	Run(ctx context.Context) error
}

// config holds optional settings of the service.
type config struct {
	workers        int
	fetchRetry     retry.Retry
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// Option configures the service.
type Option func(*config)

// WithWorkers bounds the number of transactions decoded concurrently.
// Values below 1 are ignored. Default: runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.workers = n
		}
	}
}

// WithFetchRetry retries block retrieval with r. r decides which errors are
// worth another attempt; without this option the first failure is fatal.
func WithFetchRetry(r retry.Retry) Option {
	return func(c *config) {
		c.fetchRetry = r
	}
}

// WithTracerProvider replaces the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) {
		c.tracerProvider = tp
	}
}

// WithMeterProvider replaces the global meter provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *config) {
		c.meterProvider = mp
	}
}

// IsRetryableFetchError reports whether a FetchFullBlock error may succeed on
// a later attempt.
func IsRetryableFetchError(err error) bool {
	return errors.Is(err, ErrBlockNotYetAvailable)
}

// service is the default Service implementation.
type service struct {
	target     common.Address // recipient the transactions are filtered on
	blockchain Blockchain     // source of blocks
	decoder    Decoder        // call payload decoder
	reporter   report.Reporter
	workers    int
	fetchRetry retry.Retry // nil means no retry

	tracer  trace.Tracer
	metrics metrics
}

var _ Service = (*service)(nil)

// emit writes msg, wrapping the reporter error.
func (s *service) emit(ctx context.Context, msg report.Message) error {
	if err := s.reporter.Emit(ctx, msg); err != nil {
		return fmt.Errorf("failed to emit report: %w", err)
	}

	return nil
}

// fetchBlock retrieves the full block, through fetchRetry when configured.
func (s *service) fetchBlock(ctx context.Context, id BlockID) (Block, error) {
	if s.fetchRetry == nil {
		return s.blockchain.FetchFullBlock(ctx, id)
	}

	var block Block
	errs := s.fetchRetry.Execute(ctx, func() error {
		var err error
		block, err = s.blockchain.FetchFullBlock(ctx, id)
		if IsRetryableFetchError(err) {
			logger.Debug(ctx, "block not available yet", "error", err)
		}
		return err
	})
	if len(errs) > 0 {
		return Block{}, errors.Join(errs...)
	}

	return block, nil
}

// decodeAll decodes and reports txs on at most s.workers goroutines and waits
// for all of them. In-flight decodes are never canceled.
func (s *service) decodeAll(ctx context.Context, txs []Transaction) error {
	var g errgroup.Group
	g.SetLimit(s.workers)

	for _, tx := range txs {
		g.Go(func() error {
			result := s.decoder.Decode(tx.Input)
			s.metrics.recordDecode(ctx, result)

			if unsupported, ok := result.(calldecoder.Unsupported); ok {
				logger.Debug(ctx, "transaction not decoded", "tx_hash", tx.Hash.Hex(), "reason", unsupported.Reason)
			}

			return s.emit(ctx, transactionMessage(tx, result))
		})
	}

	return g.Wait()
}

// processBlock runs one iteration of the pipeline for the announced block.
func (s *service) processBlock(ctx context.Context, id BlockID) (err error) {
	startedAt := time.Now()

	ctx, span := s.tracer.Start(ctx, "txmonitor.processBlock", trace.WithAttributes(
		attribute.String("block.hash", id.Hash.Hex()),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	ctx = logger.Derive(ctx, "block_hash", id.Hash.Hex())

	block, err := s.fetchBlock(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch block %s: %w", id.Hash.Hex(), err)
	}

	matched := FilterByRecipient(block, s.target)
	span.SetAttributes(
		attribute.Int64("block.number", int64(block.Number)),
		attribute.Int("block.transactions", len(block.Transactions)),
		attribute.Int("block.matched", len(matched)),
	)

	if err := s.emit(ctx, blockSummaryMessage(block, len(matched))); err != nil {
		return err
	}

	if err := s.decodeAll(ctx, matched); err != nil {
		return err
	}

	s.metrics.recordBlock(ctx, len(matched), startedAt)
	logger.Info(ctx, "block processed",
		"block_number", block.Number,
		"transactions", len(block.Transactions),
		"matched", len(matched),
		"duration", time.Since(startedAt),
	)
	return nil
}

// Run implements Service.
func (s *service) Run(ctx context.Context) error {
	notifications, err := s.blockchain.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to new blocks: %w", err)
	}

	logger.Info(ctx, "monitoring started", "target", s.target.Hex(), "workers", s.workers)

	for {
		if err := s.emit(ctx, waitingMessage()); err != nil {
			return stopped(ctx, err)
		}

		notification, ok := chflow.Receive(ctx, notifications)
		if ctx.Err() != nil {
			return nil
		}

		if !ok {
			return ErrSubscriptionClosed
		}

		if notification.Err != nil {
			return fmt.Errorf("block subscription failed: %w", notification.Err)
		}

		if err := s.processBlock(ctx, notification.ID); err != nil {
			return stopped(ctx, err)
		}
	}
}

// stopped returns nil when err only reflects the cancellation of ctx.
func stopped(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		logger.Debug(ctx, "monitor stopped while processing", "error", err)
		return nil
	}

	return err
}

// New creates a Service reporting every transaction of blockchain sent to target.
func New(target common.Address, blockchain Blockchain, decoder Decoder, reporter report.Reporter, opts ...Option) *service {
	cfg := config{
		workers:        runtime.GOMAXPROCS(0),
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	m, err := newMetrics(cfg.meterProvider.Meter(instrumentationName))
	if err != nil {
		logger.Warn(context.Background(), "failed to create metric instruments", "error", err)
	}

	return &service{
		target:     target,
		blockchain: blockchain,
		decoder:    decoder,
		reporter:   reporter,
		workers:    cfg.workers,
		fetchRetry: cfg.fetchRetry,
		tracer:     cfg.tracerProvider.Tracer(instrumentationName),
		metrics:    m,
	}
}
