package abicoder

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

var (
	bigIntType  = reflect.TypeOf(big.Int{})
	byteType    = reflect.TypeOf(byte(0))
	addressType = reflect.TypeOf(common.Address{})
)

// toBigInt converts the Go integer representations accepted for intN/uintN.
// Supported: *big.Int, big.Int, *uint256.Int, every Go integer kind, and
// decimal or 0x-prefixed strings.
func toBigInt(value any) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		if v == nil {
			return nil, fmt.Errorf("%w: nil *big.Int", ErrTypeMismatch)
		}
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case *uint256.Int:
		if v == nil {
			return nil, fmt.Errorf("%w: nil *uint256.Int", ErrTypeMismatch)
		}
		return v.ToBig(), nil
	case uint256.Int:
		return v.ToBig(), nil
	case string:
		n, ok := new(big.Int).SetString(strings.TrimSpace(v), 0)
		if !ok {
			return nil, fmt.Errorf("%w: cannot parse %q as integer", ErrTypeMismatch, v)
		}
		return n, nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Int).SetUint64(rv.Uint()), nil
	}
	return nil, fmt.Errorf("%w: %T is not an integer", ErrTypeMismatch, value)
}

// toAddress converts common.Address, 20-byte slices or arrays, and hex strings.
func toAddress(value any) (common.Address, error) {
	switch v := value.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		if v != nil {
			return *v, nil
		}
	case string:
		if common.IsHexAddress(v) {
			return common.HexToAddress(v), nil
		}
		return common.Address{}, fmt.Errorf("%w: %q is not a hex address", ErrTypeMismatch, v)
	case []byte:
		if len(v) != common.AddressLength {
			return common.Address{}, fmt.Errorf("%w: address needs %d bytes, got %d", ErrLengthMismatch, common.AddressLength, len(v))
		}
		return common.BytesToAddress(v), nil
	}
	if b, ok := byteArray(value); ok && len(b) == common.AddressLength {
		return common.BytesToAddress(b), nil
	}
	return common.Address{}, fmt.Errorf("%w: %T is not an address", ErrTypeMismatch, value)
}

// toBool accepts bool values only.
func toBool(value any) (bool, error) {
	if b, ok := value.(bool); ok {
		return b, nil
	}
	return false, fmt.Errorf("%w: %T is not a bool", ErrTypeMismatch, value)
}

// toBytes converts []byte, byte arrays (including common.Hash), and 0x-prefixed hex strings.
func toBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case common.Hash:
		return v.Bytes(), nil
	case string:
		b, err := hexutil.Decode(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not 0x-prefixed hex: %v", ErrTypeMismatch, v, err)
		}
		return b, nil
	}
	if b, ok := byteArray(value); ok {
		return b, nil
	}
	return nil, fmt.Errorf("%w: %T is not a byte string", ErrTypeMismatch, value)
}

// toText converts string and []byte values.
func toText(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}
	return "", fmt.Errorf("%w: %T is not a string", ErrTypeMismatch, value)
}

// byteArray copies the contents of a [N]byte value.
func byteArray(value any) ([]byte, bool) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Array || rv.Type().Elem() != byteType {
		return nil, false
	}
	out := make([]byte, rv.Len())
	reflect.Copy(reflect.ValueOf(out), rv)
	return out, true
}

// toSlice converts any slice or array into its elements.
func toSlice(value any) ([]any, error) {
	if v, ok := value.([]any); ok {
		return v, nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: %T is not a slice or array", ErrTypeMismatch, value)
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

// toTupleValues orders a tuple value by member position. Accepted forms are
// map[string]any keyed by member name (or position for unnamed members),
// positional slices, and structs whose fields match member names, either via
// an `abi:"name"` tag or case-insensitively.
func toTupleValues(value any, members []Member) ([]any, error) {
	switch v := value.(type) {
	case map[string]any:
		return mapTupleValues(v, members)
	case []any:
		if len(v) != len(members) {
			return nil, fmt.Errorf("%w: tuple has %d members, got %d values", ErrLengthMismatch, len(members), len(v))
		}
		return v, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		if rv.Type() == bigIntType || rv.Type() == addressType {
			break
		}
		return structTupleValues(rv, members)
	case reflect.Slice, reflect.Array:
		values, err := toSlice(rv.Interface())
		if err != nil {
			return nil, err
		}
		return toTupleValues(values, members)
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			m := make(map[string]any, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				m[iter.Key().String()] = iter.Value().Interface()
			}
			return mapTupleValues(m, members)
		}
	}
	return nil, fmt.Errorf("%w: %T is not a tuple value", ErrTypeMismatch, value)
}

func mapTupleValues(m map[string]any, members []Member) ([]any, error) {
	out := make([]any, len(members))
	known := make(map[string]bool, len(members))
	for i, member := range members {
		key := memberKey(member, i)
		known[key] = true
		v, ok := m[key]
		if !ok {
			return nil, fmt.Errorf("%w: missing value for member %q", ErrUnknownMember, key)
		}
		out[i] = v
	}
	for key := range m {
		if !known[key] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMember, key)
		}
	}
	return out, nil
}

func structTupleValues(rv reflect.Value, members []Member) ([]any, error) {
	rt := rv.Type()
	out := make([]any, len(members))
	for i, member := range members {
		key := memberKey(member, i)
		found := false
		for f := 0; f < rt.NumField(); f++ {
			field := rt.Field(f)
			if !field.IsExported() {
				continue
			}
			if tag, ok := field.Tag.Lookup("abi"); ok {
				if tag != key {
					continue
				}
			} else if !strings.EqualFold(field.Name, key) {
				continue
			}
			out[i] = rv.Field(f).Interface()
			found = true
			break
		}
		if !found {
			return nil, fmt.Errorf("%w: struct %s has no field for member %q", ErrUnknownMember, rt, key)
		}
	}
	return out, nil
}
