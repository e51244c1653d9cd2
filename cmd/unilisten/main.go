package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dubcdr/uni-listen/internal/calldecoder"
	"github.com/dubcdr/uni-listen/internal/config"
	"github.com/dubcdr/uni-listen/internal/handlers/cli"
	"github.com/dubcdr/uni-listen/internal/infra/blockchain/ethereum"
	pollethereum "github.com/dubcdr/uni-listen/internal/infra/blockchain/jsonrpc/ethereum"
	"github.com/dubcdr/uni-listen/internal/pkg/logger"
	"github.com/dubcdr/uni-listen/internal/pkg/resilience/retry"
	"github.com/dubcdr/uni-listen/internal/pkg/telemetry"
	transporthttp "github.com/dubcdr/uni-listen/internal/pkg/transport/http"
	"github.com/dubcdr/uni-listen/internal/pkg/transport/jsonrpc"
	"github.com/dubcdr/uni-listen/internal/report"
	"github.com/dubcdr/uni-listen/internal/txmonitor"
)

// shutdownTimeout bounds the flush of telemetry on exit.
const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		return err
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		return err
	}
	defer logger.Sync()

	if cfg.TelemetryEnabled {
		shutdown, err := initTelemetry(ctx, cfg)
		if err != nil {
			logger.Error(ctx, "failed to initialize telemetry", "error", err)
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()

			if err := shutdown(ctx); err != nil {
				logger.Warn(ctx, "failed to flush telemetry", "error", err)
			}
		}()
	}

	registryOpts, err := cfg.RegistryOptions()
	if err != nil {
		logger.Error(ctx, "failed to load the method registry options", "error", err)
		return err
	}

	registry, err := calldecoder.NewRegistry(cfg.MonitoredMethods, registryOpts...)
	if err != nil {
		logger.Error(ctx, "failed to build the method registry", "error", err)
		return err
	}

	if err := cli.Run(ctx, newMonitorFactory(cfg, registry), registry); err != nil {
		logger.Error(ctx, "unilisten stopped", "error", err)
		return err
	}

	return nil
}

func initTelemetry(ctx context.Context, cfg config.Config) (telemetry.ShutdownFunc, error) {
	var opts []telemetry.Option
	if cfg.TelemetryEndpoint != "" {
		opts = append(opts, telemetry.WithEndpoint(cfg.TelemetryEndpoint))
	}
	if cfg.TelemetryInsecure {
		opts = append(opts, telemetry.WithInsecure())
	}

	return telemetry.Init(ctx, cfg.ServiceName, opts...)
}

// newMonitorFactory wires the chain client, decoder and report sink selected
// by cfg into a transaction monitor.
func newMonitorFactory(cfg config.Config, registry *calldecoder.Registry) cli.MonitorFactory {
	return func(ctx context.Context) (txmonitor.Service, func(), error) {
		chain, closeFn, err := newBlockchain(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}

		var sinkOpts []report.Option
		if !cfg.ReportColor {
			sinkOpts = append(sinkOpts, report.WithColor(false))
		}

		opts := []txmonitor.Option{txmonitor.WithWorkers(cfg.DecodeWorkers)}
		if cfg.FetchRetryAttempts > 0 {
			opts = append(opts, txmonitor.WithFetchRetry(retry.New(
				retry.WithAttempts(cfg.FetchRetryAttempts+1),
				retry.WithDelay(cfg.FetchRetryDelay),
				retry.WithRetryIf(txmonitor.IsRetryableFetchError),
			)))
		}

		logger.Info(ctx, "starting monitor",
			"target", cfg.Target().Hex(),
			"methods", cfg.MonitoredMethods,
			"push", cfg.PushEnabled(),
			"workers", cfg.DecodeWorkers,
		)

		monitor := txmonitor.New(cfg.Target(), chain, registry, report.NewSink(os.Stdout, sinkOpts...), opts...)
		return monitor, closeFn, nil
	}
}

// newBlockchain dials the websocket endpoint when one is configured and falls
// back to polling the HTTP endpoint otherwise.
func newBlockchain(ctx context.Context, cfg config.Config) (txmonitor.Blockchain, func(), error) {
	httpURL, err := cfg.HTTPURL()
	if err != nil {
		return nil, nil, err
	}

	if cfg.PushEnabled() {
		wsURL, err := cfg.WSURL()
		if err != nil {
			return nil, nil, err
		}

		client, err := ethereum.Dial(ctx, wsURL, httpURL)
		if err != nil {
			return nil, nil, err
		}

		return client, client.Close, nil
	}

	conn := jsonrpc.NewClient(httpURL, transporthttp.NewClient())
	client := pollethereum.NewClient(conn, pollethereum.WithPollInterval(cfg.PollInterval))
	return client, func() {}, nil
}
