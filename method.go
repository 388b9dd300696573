package abicoder

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Method encodes and decodes the calldata and return data of one contract function.
type Method struct {
	name      string
	signature string
	selector  string
	inputs    DataType
	outputs   DataType
}

// NewMethod creates a method from its name and argument tuples.
// A nil outputs descriptor means the function returns nothing.
func NewMethod(name string, inputs, outputs *TypeDescriptor) (*Method, error) {
	if inputs == nil || inputs.kind != KindTuple {
		return nil, &SignatureError{Signature: name, Err: fmt.Errorf("%w: inputs must be a tuple", ErrInvalidSignature)}
	}
	if outputs == nil {
		outputs = TupleOf()
	}
	if outputs.kind != KindTuple {
		return nil, &SignatureError{Signature: name, Err: fmt.Errorf("%w: outputs must be a tuple", ErrInvalidSignature)}
	}
	signature := name + inputs.Signature()
	return &Method{
		name:      name,
		signature: signature,
		selector:  ComputeSelector(signature),
		inputs:    NewDataType(inputs, name),
		outputs:   NewDataType(outputs, name),
	}, nil
}

// ParseMethod creates a method from a signature such as
// "transfer(address to,uint256 amount) returns (bool)".
func ParseMethod(signature string) (*Method, error) {
	fn, err := ParseSignature(signature)
	if err != nil {
		return nil, err
	}
	return NewMethod(fn.Name, fn.Inputs, fn.Outputs)
}

// MustParseMethod is like ParseMethod but panics on error.
func MustParseMethod(signature string) *Method {
	m, err := ParseMethod(signature)
	if err != nil {
		panic(err)
	}
	return m
}

// NewMethodFromABI converts a method parsed by go-ethereum.
func NewMethodFromABI(m abi.Method) (*Method, error) {
	inputs, err := FromArguments(m.Inputs)
	if err != nil {
		return nil, err
	}
	outputs, err := FromArguments(m.Outputs)
	if err != nil {
		return nil, err
	}
	return NewMethod(m.RawName, inputs, outputs)
}

// ComputeSelector returns the first 4 bytes of the keccak256 hash of a
// canonical function signature, as 0x-prefixed hex.
func ComputeSelector(signature string) string {
	return hexutil.Encode(crypto.Keccak256([]byte(signature))[:SelectorSize])
}

// Name returns the function name.
func (m *Method) Name() string { return m.name }

// Signature returns the canonical signature, e.g. "f(string[],string[])".
func (m *Method) Signature() string { return m.signature }

// Selector returns the 4-byte selector as 0x-prefixed hex.
func (m *Method) Selector() string { return m.selector }

// Inputs returns the argument tuple data type.
func (m *Method) Inputs() DataType { return m.inputs }

// ReturnType returns the return value tuple data type.
func (m *Method) ReturnType() DataType { return m.outputs }

// Encode returns the calldata for a call with args: the selector followed by
// the encoded argument tuple. args may be a positional []any, a map keyed by
// argument name, or a struct.
func (m *Method) Encode(args any, opts ...EncodeOption) (string, error) {
	opts = append(opts, WithSelector(m.selector))
	return Encode(m.inputs, args, opts...)
}

// Decode reads the arguments of a call. The calldata must start with the selector.
func (m *Method) Decode(calldata string, opts ...DecodeOption) (any, error) {
	opts = append(opts, WithExpectedSelector(m.selector))
	return Decode(m.inputs, calldata, opts...)
}

// DecodeAsArray reads the arguments of a call in declaration order.
func (m *Method) DecodeAsArray(calldata string, opts ...DecodeOption) ([]any, error) {
	opts = append(opts, WithExpectedSelector(m.selector))
	return DecodeAsArray(m.inputs, calldata, opts...)
}

// StrictDecode reads the arguments of a call: nil for none, the value itself
// for one, and the positional values otherwise.
func (m *Method) StrictDecode(calldata string, opts ...DecodeOption) (any, error) {
	values, err := m.DecodeAsArray(calldata, opts...)
	if err != nil {
		return nil, err
	}
	return unwrapValues(values), nil
}

// EncodeReturnValues encodes return data, which carries no selector.
func (m *Method) EncodeReturnValues(values any, opts ...EncodeOption) (string, error) {
	return Encode(m.outputs, values, opts...)
}

// DecodeReturnValues decodes return data.
func (m *Method) DecodeReturnValues(returndata string, opts ...DecodeOption) (any, error) {
	return Decode(m.outputs, returndata, opts...)
}

// StrictDecodeReturnValue decodes return data like StrictDecode.
func (m *Method) StrictDecodeReturnValue(returndata string, opts ...DecodeOption) (any, error) {
	values, err := DecodeAsArray(m.outputs, returndata, opts...)
	if err != nil {
		return nil, err
	}
	return unwrapValues(values), nil
}

func unwrapValues(values []any) any {
	switch len(values) {
	case 0:
		return nil
	case 1:
		return values[0]
	default:
		return values
	}
}
