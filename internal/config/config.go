// Package config loads the monitor settings from the environment.
//
// Values are read with envconfig after an optional dotenv file has been merged
// into the process environment. Variables already set in the environment win
// over the file. The resulting Config is checked with the validator package
// before it is returned.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/dubcdr/uni-listen/internal/calldecoder"
	"github.com/dubcdr/uni-listen/internal/pkg/validator"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DefaultEnvFile is the dotenv file read by Load when it exists.
const DefaultEnvFile = ".env"

// Config holds the monitor settings.
type Config struct {
	WSEndpoint      string `envconfig:"WS_ENDPOINT" validate:"omitempty,ws_endpoint"`
	HTTPEndpoint    string `envconfig:"HTTP_ENDPOINT" validate:"required,http_endpoint"`
	InfuraProjectID string `envconfig:"INFURA_PROJECT_ID"`

	TargetAddress    string   `envconfig:"TARGET_ADDRESS" default:"0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D" validate:"required,eth_addr"`
	MonitoredMethods []string `envconfig:"MONITORED_METHODS" default:"swapExactETHForTokens" validate:"required,min=1,dive,required"`

	// ReportedArguments overrides calldecoder.DefaultHighlights when set.
	ReportedArguments []string `envconfig:"REPORTED_ARGUMENTS" validate:"dive,required"`
	// ABIFile replaces the embedded router ABI when set.
	ABIFile           string   `envconfig:"ABI_FILE" validate:"omitempty,file"`

	// DecodeWorkers of zero means one worker per usable CPU.
	DecodeWorkers int `envconfig:"DECODE_WORKERS" default:"0" validate:"gte=0"`

	PollInterval       time.Duration `envconfig:"POLL_INTERVAL" default:"2s" validate:"gt=0"`
	FetchRetryAttempts uint          `envconfig:"FETCH_RETRY_ATTEMPTS" default:"0"`
	FetchRetryDelay    time.Duration `envconfig:"FETCH_RETRY_DELAY" default:"500ms" validate:"gte=0"`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error panic fatal"`
	ReportColor bool   `envconfig:"REPORT_COLOR" default:"true"`

	TelemetryEnabled  bool   `envconfig:"TELEMETRY_ENABLED" default:"false"`
	TelemetryEndpoint string `envconfig:"TELEMETRY_ENDPOINT" validate:"omitempty,hostname_port"`
	TelemetryInsecure bool   `envconfig:"TELEMETRY_INSECURE" default:"false"`
	ServiceName       string `envconfig:"SERVICE_NAME" default:"unilisten" validate:"required"`
}

// Load reads the configuration from the environment, merging envFile first
// when it exists. A missing envFile is not an error.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}

	for i, method := range cfg.MonitoredMethods {
		cfg.MonitoredMethods[i] = strings.TrimSpace(method)
	}
	for i, name := range cfg.ReportedArguments {
		cfg.ReportedArguments[i] = strings.TrimSpace(name)
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, err
	}

	if cfg.DecodeWorkers == 0 {
		cfg.DecodeWorkers = runtime.GOMAXPROCS(0)
	}

	return cfg, nil
}

// Target returns the filtered contract address.
func (c Config) Target() common.Address {
	return common.HexToAddress(c.TargetAddress)
}

// RegistryOptions returns the calldecoder options selected by ABI_FILE and
// REPORTED_ARGUMENTS.
func (c Config) RegistryOptions() ([]calldecoder.Option, error) {
	var opts []calldecoder.Option

	if c.ABIFile != "" {
		abiJSON, err := os.ReadFile(c.ABIFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read ABI file: %w", err)
		}
		opts = append(opts, calldecoder.WithABI(abiJSON))
	}

	if len(c.ReportedArguments) > 0 {
		opts = append(opts, calldecoder.WithHighlights(c.ReportedArguments...))
	}

	return opts, nil
}

// PushEnabled reports whether blocks are announced over a websocket subscription
// rather than by polling the HTTP endpoint.
func (c Config) PushEnabled() bool {
	return c.WSEndpoint != ""
}

// WSURL returns the websocket endpoint, with the Infura project ID appended when set.
func (c Config) WSURL() (string, error) {
	return c.withProjectID(c.WSEndpoint)
}

// HTTPURL returns the HTTP endpoint, with the Infura project ID appended when set.
func (c Config) HTTPURL() (string, error) {
	return c.withProjectID(c.HTTPEndpoint)
}

func (c Config) withProjectID(endpoint string) (string, error) {
	if c.InfuraProjectID == "" || endpoint == "" {
		return endpoint, nil
	}

	u, err := url.JoinPath(endpoint, c.InfuraProjectID)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}

	return u, nil
}
