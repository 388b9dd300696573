package abicoder

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions.
var (
	// ErrNoRoot indicates the calldata container was serialized before a root was set.
	ErrNoRoot = errors.New("abicoder: root block is not set")

	// ErrRootAlreadySet indicates SetRoot was called twice on the same container.
	ErrRootAlreadySet = errors.New("abicoder: root block is already set")

	// ErrParentRequired indicates a dependent type was encoded without a parent block.
	ErrParentRequired = errors.New("abicoder: dependent type requires a parent block")

	// ErrInvalidSelector indicates a malformed 4-byte function selector.
	ErrInvalidSelector = errors.New("abicoder: invalid selector")

	// ErrSelectorMismatch indicates calldata does not begin with the expected selector.
	ErrSelectorMismatch = errors.New("abicoder: calldata does not start with selector")

	// ErrOffsetNotAssigned indicates a block offset was read before offset assignment.
	ErrOffsetNotAssigned = errors.New("abicoder: block offset not assigned")

	// ErrOutOfBounds indicates a read past the end of the calldata payload.
	ErrOutOfBounds = errors.New("abicoder: read out of bounds")

	// ErrInvalidHex indicates the calldata is not a well-formed hex string.
	ErrInvalidHex = errors.New("abicoder: invalid hex data")

	// ErrValueOutOfRange indicates a numeric value does not fit its ABI type.
	ErrValueOutOfRange = errors.New("abicoder: value out of range")

	// ErrLengthMismatch indicates a value has the wrong number of elements or bytes.
	ErrLengthMismatch = errors.New("abicoder: length mismatch")

	// ErrTypeMismatch indicates a Go value cannot be converted to the ABI type.
	ErrTypeMismatch = errors.New("abicoder: type mismatch")

	// ErrInvalidSignature indicates a type or function signature could not be parsed.
	ErrInvalidSignature = errors.New("abicoder: invalid signature")

	// ErrUnknownMember indicates a tuple value names a member the tuple does not have.
	ErrUnknownMember = errors.New("abicoder: unknown tuple member")
)

// SelectorError describes a selector rejected by Calldata.SetSelector.
type SelectorError struct {
	Selector string
	Reason   string
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("abicoder: invalid selector %q: %s", e.Selector, e.Reason)
}

func (e *SelectorError) Unwrap() error {
	return ErrInvalidSelector
}

// SelectorMismatchError indicates calldata that does not start with the expected selector.
type SelectorMismatchError struct {
	Expected string
	Calldata string
}

func (e *SelectorMismatchError) Error() string {
	got := e.Calldata
	if len(got) > len(e.Expected) {
		got = got[:len(e.Expected)] + "..."
	}
	return fmt.Sprintf("abicoder: expected selector %s, got calldata %s", e.Expected, got)
}

func (e *SelectorMismatchError) Unwrap() error {
	return ErrSelectorMismatch
}

// OutOfBoundsError describes a read beyond the calldata payload.
type OutOfBoundsError struct {
	Offset int
	Length int
	Size   int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("abicoder: reading %d bytes at offset %d exceeds payload of %d bytes", e.Length, e.Offset, e.Size)
}

func (e *OutOfBoundsError) Unwrap() error {
	return ErrOutOfBounds
}

// SignatureError wraps failures while parsing a type or function signature.
type SignatureError struct {
	Signature string
	Err       error
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("abicoder: signature %q: %v", e.Signature, e.Err)
}

func (e *SignatureError) Unwrap() error {
	return e.Err
}

// MethodNotFoundError indicates the ABI doesn't have the requested method.
type MethodNotFoundError struct {
	Method string
}

func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("abicoder: method %q not found in ABI", e.Method)
}

// EncodingError indicates a failure while turning a value into calldata blocks.
type EncodingError struct {
	Name  string
	Type  string
	Value any
	Err   error
}

func (e *EncodingError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("abicoder: encoding %s (%s) from %T: %v", e.Name, e.Type, e.Value, e.Err)
	}
	return fmt.Sprintf("abicoder: encoding %s from %T: %v", e.Type, e.Value, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// DecodingError indicates a failure while reading a value back from calldata.
type DecodingError struct {
	Name   string
	Type   string
	Offset int
	Err    error
}

func (e *DecodingError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("abicoder: decoding %s (%s) at offset %d: %v", e.Name, e.Type, e.Offset, e.Err)
	}
	return fmt.Sprintf("abicoder: decoding %s at offset %d: %v", e.Type, e.Offset, e.Err)
}

func (e *DecodingError) Unwrap() error {
	return e.Err
}
