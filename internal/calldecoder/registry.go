package calldecoder

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// uniswapV2RouterABI holds the swap family of the Uniswap V2 router.
//
//go:embed abi/uniswap_v2_router.json
var uniswapV2RouterABI []byte

// DefaultMethods is the monitored method list used when none is configured.
var DefaultMethods = []string{"swapExactETHForTokens"}

// DefaultHighlights lists the input names reported for a decoded call when
// the method declares them.
var DefaultHighlights = []string{"amountIn", "amountInMax", "amountOut", "amountOutMin", "to"}

var (
	// ErrNoSignatures is the Unsupported reason of a registry without signatures.
	ErrNoSignatures = errors.New("no signatures registered")

	// ErrUnknownMethod is returned by NewRegistry for a method missing from the ABI.
	ErrUnknownMethod = errors.New("method not found in ABI")

	// ErrDuplicateMethod is returned by NewRegistry when a method is listed twice.
	ErrDuplicateMethod = errors.New("method listed more than once")
)

// Signature binds a method schema to the input names worth reporting.
type Signature struct {
	Name       string     // Method name
	Method     abi.Method // Parsed schema, including the 4-byte ID
	Highlights []string   // Input names marked for reporting
}

// Selector returns the 0x-prefixed method ID.
func (s Signature) Selector() string {
	return hexutil.Encode(s.Method.ID)
}

func (s Signature) highlights(input string) bool {
	return slices.Contains(s.Highlights, input)
}

// Registry is an ordered, read-only set of signatures. The order is the
// priority in which payloads are matched. A Registry is safe for concurrent use.
// The zero value holds no signatures.
type Registry struct {
	signatures []Signature
}

// config holds the settings used to build a Registry.
type config struct {
	abiJSON    []byte
	highlights []string
}

// Option configures NewRegistry.
type Option func(*config)

// WithABI replaces the embedded router ABI with the given JSON definition.
func WithABI(abiJSON []byte) Option {
	return func(c *config) {
		c.abiJSON = abiJSON
	}
}

// WithHighlights replaces DefaultHighlights.
func WithHighlights(names ...string) Option {
	return func(c *config) {
		c.highlights = names
	}
}

// NewRegistry builds a Registry holding methods, in the given order, taken
// from the Uniswap V2 router ABI unless WithABI is provided.
func NewRegistry(methods []string, opts ...Option) (*Registry, error) {
	cfg := config{
		abiJSON:    uniswapV2RouterABI,
		highlights: DefaultHighlights,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	parsed, err := abi.JSON(bytes.NewReader(cfg.abiJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse abi: %w", err)
	}

	signatures := make([]Signature, 0, len(methods))
	for _, name := range methods {
		method, ok := parsed.Methods[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, name)
		}

		if slices.ContainsFunc(signatures, func(s Signature) bool { return s.Name == name }) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMethod, name)
		}

		var highlights []string
		for _, input := range method.Inputs {
			if slices.Contains(cfg.highlights, input.Name) {
				highlights = append(highlights, input.Name)
			}
		}

		signatures = append(signatures, Signature{
			Name:       name,
			Method:     method,
			Highlights: highlights,
		})
	}

	return &Registry{signatures: signatures}, nil
}

// Signatures returns a copy of the registered signatures in priority order.
func (r *Registry) Signatures() []Signature {
	return slices.Clone(r.signatures)
}

// Decode tries every signature in priority order and returns the first
// Decoded. When none matches, the Unsupported reason joins every attempt.
func (r *Registry) Decode(payload []byte) Result {
	if len(r.signatures) == 0 {
		return Unsupported{Reason: ErrNoSignatures}
	}

	errs := make([]error, 0, len(r.signatures))
	for _, sig := range r.signatures {
		decoded, err := Decode(payload, sig)
		if err == nil {
			return decoded
		}

		errs = append(errs, err)
	}

	return Unsupported{Reason: errors.Join(errs...)}
}
