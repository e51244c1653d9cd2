// Package calldecoder decodes transaction call payloads against a registry of
// known contract method signatures.
//
// Decoding is strict: a payload matches a signature only when its 4-byte
// selector equals the method ID and the remaining bytes are exactly the
// canonical ABI encoding of the method inputs. Truncated payloads, trailing
// bytes and non-zero padding are all rejected.
package calldecoder

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// selectorLength is the size of the method selector that prefixes every call payload.
const selectorLength = 4

var (
	// ErrPayloadTooShort is returned when the payload cannot hold a selector.
	ErrPayloadTooShort = errors.New("payload shorter than a method selector")

	// ErrSelectorMismatch is returned when the payload selector differs from the method ID.
	ErrSelectorMismatch = errors.New("selector mismatch")

	// ErrMalformedArguments is returned when the argument bytes are not the canonical
	// encoding of the method inputs.
	ErrMalformedArguments = errors.New("malformed arguments")
)

// Decode decodes payload as a call to sig.
func Decode(payload []byte, sig Signature) (Decoded, error) {
	if len(payload) < selectorLength {
		return Decoded{}, fmt.Errorf("%w: got %d bytes", ErrPayloadTooShort, len(payload))
	}

	selector, data := payload[:selectorLength], payload[selectorLength:]
	if !bytes.Equal(selector, sig.Method.ID) {
		return Decoded{}, fmt.Errorf("%w: %s is not %s (%s)", ErrSelectorMismatch, hexutil.Encode(selector), sig.Selector(), sig.Name)
	}

	values, err := sig.Method.Inputs.Unpack(data)
	if err != nil {
		return Decoded{}, fmt.Errorf("%w: %s: %w", ErrMalformedArguments, sig.Name, err)
	}

	canonical, err := sig.Method.Inputs.Pack(values...)
	if err != nil {
		return Decoded{}, fmt.Errorf("%w: %s: %w", ErrMalformedArguments, sig.Name, err)
	}

	if !bytes.Equal(canonical, data) {
		return Decoded{}, fmt.Errorf("%w: %s: non-canonical encoding (%d bytes, expected %d)", ErrMalformedArguments, sig.Name, len(data), len(canonical))
	}

	args := make([]Argument, len(values))
	for i, input := range sig.Method.Inputs {
		args[i] = Argument{
			Name:        input.Name,
			Type:        input.Type.String(),
			Value:       values[i],
			Highlighted: sig.highlights(input.Name),
		}
	}

	return Decoded{
		Method:   sig.Name,
		Selector: sig.Selector(),
		Args:     args,
	}, nil
}
