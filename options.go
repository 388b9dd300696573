package abicoder

import (
	"github.com/ethereum/go-ethereum/log"
)

// EncodeOption configures an Encode operation.
type EncodeOption func(*EncodingRules)

// DecodeOption configures a Decode operation.
type DecodeOption func(*DecodingRules)

// EncodingRules holds configuration for encoding.
type EncodingRules struct {
	// ShouldOptimize deduplicates identical dynamic sub-values.
	ShouldOptimize bool
	// ShouldAnnotate produces a human-readable trace instead of raw hex.
	ShouldAnnotate bool
	// Selector is prepended to the calldata when non-empty.
	Selector string

	logger log.Logger
}

// DecodingRules holds configuration for decoding.
type DecodingRules struct {
	// IsStrictMode forces a full decode even when the payload is empty.
	IsStrictMode bool
	// StructsAsObjects decodes tuples to map[string]any instead of []any.
	StructsAsObjects bool
	// Selector must prefix the calldata when non-empty.
	Selector string

	logger log.Logger
}

// DefaultEncodingRules returns the default encoding configuration.
func DefaultEncodingRules() EncodingRules {
	return EncodingRules{
		ShouldOptimize: false,
		ShouldAnnotate: false,
		logger:         log.Root(),
	}
}

// DefaultDecodingRules returns the default decoding configuration.
func DefaultDecodingRules() DecodingRules {
	return DecodingRules{
		IsStrictMode:     false,
		StructsAsObjects: true,
		logger:           log.Root(),
	}
}

func newEncodingRules(opts []EncodeOption) EncodingRules {
	rules := DefaultEncodingRules()
	for _, opt := range opts {
		opt(&rules)
	}
	return rules
}

func newDecodingRules(opts []DecodeOption) DecodingRules {
	rules := DefaultDecodingRules()
	for _, opt := range opts {
		opt(&rules)
	}
	return rules
}

// WithOptimize enables or disables deduplication of identical sub-values.
func WithOptimize(enabled bool) EncodeOption {
	return func(r *EncodingRules) {
		r.ShouldOptimize = enabled
	}
}

// WithAnnotate enables or disables the human-readable annotated output.
func WithAnnotate(enabled bool) EncodeOption {
	return func(r *EncodingRules) {
		r.ShouldAnnotate = enabled
	}
}

// WithSelector prepends a 4-byte function selector (0x-prefixed hex) to the output.
func WithSelector(selector string) EncodeOption {
	return func(r *EncodingRules) {
		r.Selector = selector
	}
}

// WithEncodeLogger sets the logger used while encoding.
// Default is log.Root().
func WithEncodeLogger(logger log.Logger) EncodeOption {
	return func(r *EncodingRules) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithStrictMode enables or disables strict decoding.
// When disabled (default), an empty payload decodes to the type's default value.
func WithStrictMode(enabled bool) DecodeOption {
	return func(r *DecodingRules) {
		r.IsStrictMode = enabled
	}
}

// WithStructsAsObjects controls whether tuples decode to maps (default) or slices.
func WithStructsAsObjects(enabled bool) DecodeOption {
	return func(r *DecodingRules) {
		r.StructsAsObjects = enabled
	}
}

// WithExpectedSelector requires the calldata to begin with the given selector.
func WithExpectedSelector(selector string) DecodeOption {
	return func(r *DecodingRules) {
		r.Selector = selector
	}
}

// WithDecodeLogger sets the logger used while decoding.
// Default is log.Root().
func WithDecodeLogger(logger log.Logger) DecodeOption {
	return func(r *DecodingRules) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Logger returns the configured logger, falling back to log.Root().
func (r EncodingRules) Logger() log.Logger {
	if r.logger == nil {
		return log.Root()
	}
	return r.logger
}

// Logger returns the configured logger, falling back to log.Root().
func (r DecodingRules) Logger() log.Logger {
	if r.logger == nil {
		return log.Root()
	}
	return r.logger
}
