package abicoder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Kind identifies the ABI type family of a TypeDescriptor.
type Kind uint8

const (
	// KindAddress is a 20-byte account address.
	KindAddress Kind = iota

	// KindBool is a boolean encoded as a single word.
	KindBool

	// KindUint is an unsigned integer of 8 to 256 bits.
	KindUint

	// KindInt is a two's complement signed integer of 8 to 256 bits.
	KindInt

	// KindFixedBytes is a bytesN value (1 <= N <= 32), right-padded.
	KindFixedBytes

	// KindFunction is a 24-byte function reference (address + selector).
	KindFunction

	// KindBytes is a dynamic byte string.
	KindBytes

	// KindString is a dynamic UTF-8 string.
	KindString

	// KindArray is a fixed-length array T[N].
	KindArray

	// KindSlice is a dynamic-length array T[].
	KindSlice

	// KindTuple is an ordered group of named members.
	KindTuple
)

var kindNames = [...]string{
	KindAddress:    "address",
	KindBool:       "bool",
	KindUint:       "uint",
	KindInt:        "int",
	KindFixedBytes: "bytesN",
	KindFunction:   "function",
	KindBytes:      "bytes",
	KindString:     "string",
	KindArray:      "array",
	KindSlice:      "slice",
	KindTuple:      "tuple",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Member is a named tuple component.
type Member struct {
	Name string
	Type *TypeDescriptor
}

// TypeDescriptor is an immutable description of one ABI type.
type TypeDescriptor struct {
	kind    Kind
	size    int // bits for ints, bytes for bytesN, length for arrays
	elem    *TypeDescriptor
	members []Member
}

// Kind returns the type family.
func (t *TypeDescriptor) Kind() Kind { return t.kind }

// Size returns the bit width of integers, the byte width of bytesN,
// or the length of a fixed array. It is zero for every other kind.
func (t *TypeDescriptor) Size() int { return t.size }

// Elem returns the element type of an array or slice, nil otherwise.
func (t *TypeDescriptor) Elem() *TypeDescriptor { return t.elem }

// Members returns a copy of the tuple members.
func (t *TypeDescriptor) Members() []Member {
	out := make([]Member, len(t.members))
	copy(out, t.members)
	return out
}

// Signature returns the canonical ABI type string, e.g. "(uint256,string)[]".
func (t *TypeDescriptor) Signature() string {
	switch t.kind {
	case KindAddress, KindBool, KindBytes, KindString, KindFunction:
		return t.kind.String()
	case KindUint:
		return "uint" + strconv.Itoa(t.size)
	case KindInt:
		return "int" + strconv.Itoa(t.size)
	case KindFixedBytes:
		return "bytes" + strconv.Itoa(t.size)
	case KindArray:
		return t.elem.Signature() + "[" + strconv.Itoa(t.size) + "]"
	case KindSlice:
		return t.elem.Signature() + "[]"
	case KindTuple:
		parts := make([]string, len(t.members))
		for i, m := range t.members {
			parts[i] = m.Type.Signature()
		}
		return "(" + strings.Join(parts, ",") + ")"
	}
	return ""
}

func (t *TypeDescriptor) String() string {
	return t.Signature()
}

// IsDynamic returns true if the encoded size depends on the value
// (bytes, string, slices, and arrays or tuples containing them).
func (t *TypeDescriptor) IsDynamic() bool {
	switch t.kind {
	case KindBytes, KindString, KindSlice:
		return true
	case KindArray:
		return t.elem.IsDynamic()
	case KindTuple:
		for _, m := range t.members {
			if m.Type.IsDynamic() {
				return true
			}
		}
	}
	return false
}

// headSize returns the number of bytes a value of t occupies at its static
// position: one word for dynamic types, the sum of the parts otherwise.
func headSize(t *TypeDescriptor) int {
	if t.IsDynamic() {
		return WordSize
	}
	switch t.kind {
	case KindArray:
		return t.size * headSize(t.elem)
	case KindTuple:
		size := 0
		for _, m := range t.members {
			size += headSize(m.Type)
		}
		return size
	}
	return WordSize
}

// memberKey returns the key a tuple member is addressed by in decoded values.
// Unnamed members are keyed by position.
func memberKey(m Member, index int) string {
	if m.Name != "" {
		return m.Name
	}
	return strconv.Itoa(index)
}

// ArrayOf returns the descriptor of elem[length].
func ArrayOf(elem *TypeDescriptor, length int) *TypeDescriptor {
	return &TypeDescriptor{kind: KindArray, size: length, elem: elem}
}

// SliceOf returns the descriptor of elem[].
func SliceOf(elem *TypeDescriptor) *TypeDescriptor {
	return &TypeDescriptor{kind: KindSlice, elem: elem}
}

// TupleOf returns a tuple descriptor with the given members.
func TupleOf(members ...Member) *TypeDescriptor {
	out := make([]Member, len(members))
	copy(out, members)
	return &TypeDescriptor{kind: KindTuple, members: out}
}

// elementary builds a scalar descriptor from its canonical or aliased name.
func elementary(name string) (*TypeDescriptor, error) {
	switch name {
	case "address":
		return &TypeDescriptor{kind: KindAddress}, nil
	case "bool":
		return &TypeDescriptor{kind: KindBool}, nil
	case "string":
		return &TypeDescriptor{kind: KindString}, nil
	case "bytes":
		return &TypeDescriptor{kind: KindBytes}, nil
	case "function":
		return &TypeDescriptor{kind: KindFunction}, nil
	case "byte":
		return &TypeDescriptor{kind: KindFixedBytes, size: 1}, nil
	case "uint":
		return &TypeDescriptor{kind: KindUint, size: 256}, nil
	case "int":
		return &TypeDescriptor{kind: KindInt, size: 256}, nil
	}

	var (
		kind   Kind
		suffix string
	)
	switch {
	case strings.HasPrefix(name, "uint"):
		kind, suffix = KindUint, name[4:]
	case strings.HasPrefix(name, "int"):
		kind, suffix = KindInt, name[3:]
	case strings.HasPrefix(name, "bytes"):
		kind, suffix = KindFixedBytes, name[5:]
	default:
		return nil, fmt.Errorf("%w: unsupported type %q", ErrInvalidSignature, name)
	}

	size, err := strconv.Atoi(suffix)
	if err != nil || strings.HasPrefix(suffix, "0") {
		return nil, fmt.Errorf("%w: unsupported type %q", ErrInvalidSignature, name)
	}
	if kind == KindFixedBytes {
		if size < 1 || size > 32 {
			return nil, fmt.Errorf("%w: bytes size %d out of range [1, 32]", ErrInvalidSignature, size)
		}
	} else if size < 8 || size > 256 || size%8 != 0 {
		return nil, fmt.Errorf("%w: integer size %d must be a multiple of 8 in [8, 256]", ErrInvalidSignature, size)
	}
	return &TypeDescriptor{kind: kind, size: size}, nil
}

// FromABIType converts a type parsed by go-ethereum into a descriptor.
func FromABIType(t abi.Type) (*TypeDescriptor, error) {
	switch t.T {
	case abi.IntTy:
		return &TypeDescriptor{kind: KindInt, size: t.Size}, nil
	case abi.UintTy:
		return &TypeDescriptor{kind: KindUint, size: t.Size}, nil
	case abi.BoolTy:
		return &TypeDescriptor{kind: KindBool}, nil
	case abi.AddressTy:
		return &TypeDescriptor{kind: KindAddress}, nil
	case abi.StringTy:
		return &TypeDescriptor{kind: KindString}, nil
	case abi.BytesTy:
		return &TypeDescriptor{kind: KindBytes}, nil
	case abi.FixedBytesTy:
		return &TypeDescriptor{kind: KindFixedBytes, size: t.Size}, nil
	case abi.HashTy:
		return &TypeDescriptor{kind: KindFixedBytes, size: 32}, nil
	case abi.FunctionTy:
		return &TypeDescriptor{kind: KindFunction}, nil
	case abi.SliceTy:
		elem, err := FromABIType(*t.Elem)
		if err != nil {
			return nil, err
		}
		return SliceOf(elem), nil
	case abi.ArrayTy:
		elem, err := FromABIType(*t.Elem)
		if err != nil {
			return nil, err
		}
		return ArrayOf(elem, t.Size), nil
	case abi.TupleTy:
		members := make([]Member, len(t.TupleElems))
		for i, elem := range t.TupleElems {
			desc, err := FromABIType(*elem)
			if err != nil {
				return nil, err
			}
			name := ""
			if i < len(t.TupleRawNames) {
				name = t.TupleRawNames[i]
			}
			members[i] = Member{Name: name, Type: desc}
		}
		return TupleOf(members...), nil
	}
	return nil, &SignatureError{Signature: t.String(), Err: fmt.Errorf("%w: unsupported ABI type", ErrInvalidSignature)}
}

// FromArguments converts a go-ethereum argument list into a tuple descriptor.
func FromArguments(args abi.Arguments) (*TypeDescriptor, error) {
	members := make([]Member, len(args))
	for i, arg := range args {
		desc, err := FromABIType(arg.Type)
		if err != nil {
			return nil, err
		}
		members[i] = Member{Name: arg.Name, Type: desc}
	}
	return TupleOf(members...), nil
}
