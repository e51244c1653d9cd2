// Package validator wraps go-playground/validator with the monitor's custom
// tags and a standardized, multi-error formatting of validation failures.
//
// Besides the stock tags (required, eth_addr, min, ...) it registers:
//
//   - http_endpoint: an absolute URL whose scheme is http or https.
//   - ws_endpoint:   an absolute URL whose scheme is ws or wss.
package validator

import (
	"errors"
	"fmt"
	"net/url"
	"slices"

	gvalidator "github.com/go-playground/validator/v10"
)

// ErrValidationFailed is the first error of the chain returned by Validate when
// one or more fields violate their rules.
var ErrValidationFailed = errors.New("struct validation failed")

// validator is the package singleton, configured on import.
var validator *gvalidator.Validate

// errStringFormat describes a single field violation.
//
// Example: "'TargetAddress': value '0x12' does not meet the requirements for the 'eth_addr' validation"
const errStringFormat = "'%s': value '%v' does not meet the requirements for the '%s' validation"

var (
	httpSchemes = []string{"http", "https"}
	wsSchemes   = []string{"ws", "wss"}
)

func init() {
	validator = gvalidator.New(gvalidator.WithRequiredStructEnabled())

	validator.RegisterValidation("http_endpoint", schemeValidation(httpSchemes))
	validator.RegisterValidation("ws_endpoint", schemeValidation(wsSchemes))
}

// schemeValidation accepts absolute URLs with a host and one of the given schemes.
func schemeValidation(schemes []string) gvalidator.Func {
	return func(fl gvalidator.FieldLevel) bool {
		u, err := url.Parse(fl.Field().String())
		if err != nil || u.Host == "" {
			return false
		}

		return slices.Contains(schemes, u.Scheme)
	}
}

// formatError turns validator.ValidationErrors into ErrValidationFailed joined
// with one formatted message per field. Other errors are returned unchanged.
func formatError(err error) error {
	var validationErrors gvalidator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := []error{ErrValidationFailed}
	for _, validationErr := range validationErrors {
		errs = append(errs, fmt.Errorf(errStringFormat,
			validationErr.Field(),
			validationErr.Value(),
			validationErr.Tag(),
		))
	}

	return errors.Join(errs...)
}

// Validate checks v against its `validate` struct tags.
//
//	if err := validator.Validate(cfg); errors.Is(err, validator.ErrValidationFailed) {
//	    // report the offending fields
//	}
func Validate(v any) error {
	if err := validator.Struct(v); err != nil {
		return formatError(err)
	}

	return nil
}
