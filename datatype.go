package abicoder

import (
	"strconv"
	"strings"
)

// DataType encodes and decodes values of one ABI type.
type DataType interface {
	// Name returns the dotted path of the value, e.g. "order.makerAssetData".
	Name() string

	// Descriptor returns the described ABI type.
	Descriptor() *TypeDescriptor

	// GenerateCalldataBlock builds the block tree representing value inside cd.
	// parent is the set that will contain the returned block, or NoBlock for a root.
	GenerateCalldataBlock(cd *Calldata, value any, parent BlockID) (BlockID, error)

	// GenerateValue reads a value at the cursor of raw.
	GenerateValue(raw *RawCalldata, rules DecodingRules) (any, error)

	// DefaultValue returns the value decoded from an empty payload in non-strict mode.
	DefaultValue(rules DecodingRules) any

	// SignatureType returns the canonical ABI type string.
	SignatureType() string

	// Signature returns the type string, prefixed with the field name when detailed.
	Signature(detailed bool) string

	// IsStatic reports whether the encoding at the value's own slot has a fixed size.
	IsStatic() bool
}

// dataType holds what every concrete type shares.
type dataType struct {
	name       string // dotted path
	fieldName  string // unscoped name within the parent
	parentName string
	desc       *TypeDescriptor
}

func (t *dataType) Name() string                { return t.name }
func (t *dataType) Descriptor() *TypeDescriptor { return t.desc }
func (t *dataType) SignatureType() string       { return t.desc.Signature() }

func (t *dataType) Signature(detailed bool) string {
	if detailed && t.fieldName != "" {
		return t.desc.Signature() + " " + t.fieldName
	}
	return t.desc.Signature()
}

func (t *dataType) encodingError(value any, err error) error {
	return &EncodingError{Name: t.name, Type: t.desc.Signature(), Value: value, Err: err}
}

func (t *dataType) decodingError(offset int, err error) error {
	return &DecodingError{Name: t.name, Type: t.desc.Signature(), Offset: offset, Err: err}
}

// NewDataType creates the root data type for desc. The name prefixes every
// block and error produced for the value; it may be empty.
func NewDataType(desc *TypeDescriptor, name string) DataType {
	return newDataType(desc, name, name, "", false)
}

// ParseDataType parses a type signature and returns its root data type.
func ParseDataType(signature string) (DataType, error) {
	desc, err := ParseType(signature)
	if err != nil {
		return nil, err
	}
	return NewDataType(desc, ""), nil
}

// MustParseDataType is like ParseDataType but panics on error.
func MustParseDataType(signature string) DataType {
	dt, err := ParseDataType(signature)
	if err != nil {
		panic(err)
	}
	return dt
}

// newDataType is the type factory. Dynamic types that have a parent are
// wrapped in a pointer, since they are encoded out of line.
func newDataType(desc *TypeDescriptor, name, fieldName, parentName string, hasParent bool) DataType {
	base := dataType{name: name, fieldName: fieldName, parentName: parentName, desc: desc}

	var dt DataType
	switch desc.kind {
	case KindAddress:
		dt = &addressDataType{dataType: base}
	case KindBool:
		dt = &boolDataType{dataType: base}
	case KindUint, KindInt:
		dt = newNumberDataType(base)
	case KindFixedBytes, KindFunction:
		dt = &staticBytesDataType{dataType: base}
	case KindBytes:
		dt = &dynamicBytesDataType{dataType: base}
	case KindString:
		dt = &stringDataType{dataType: base}
	case KindArray, KindSlice:
		dt = &arrayDataType{dataType: base}
	case KindTuple:
		dt = newTupleDataType(base)
	default:
		panic("abicoder: unhandled kind " + desc.kind.String())
	}

	if hasParent && !dt.IsStatic() {
		return &pointerDataType{dataType: base, destination: dt}
	}
	return dt
}

// childName joins a parent path and a member key.
func childName(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// elementName returns the path of an array element.
func elementName(parent string, index int) string {
	return parent + "[" + strconv.Itoa(index) + "]"
}

// Encode serializes value against dt and returns 0x-prefixed hex calldata,
// or an annotated dump when WithAnnotate is set.
//
// A root that is not a tuple is encoded as a single-member argument list, so
// dynamic roots start with their offset word as in any ABI call.
func Encode(dt DataType, value any, opts ...EncodeOption) (string, error) {
	rules := newEncodingRules(opts)
	cd := NewCalldata(rules)
	if rules.Selector != "" {
		if err := cd.SetSelector(rules.Selector); err != nil {
			return "", err
		}
	}
	root, err := generateRoot(cd, dt, value)
	if err != nil {
		return "", err
	}
	if err := cd.SetRoot(root); err != nil {
		return "", err
	}
	return cd.String()
}

// generateRoot builds the block tree of a root value.
func generateRoot(cd *Calldata, dt DataType, value any) (BlockID, error) {
	if dt.Descriptor().kind == KindTuple {
		return dt.GenerateCalldataBlock(cd, value, NoBlock)
	}
	args := rootArgument(dt)
	set := cd.AddSet(dt.Name(), dt.SignatureType(), "", nil)
	member, err := args.GenerateCalldataBlock(cd, value, set)
	if err != nil {
		return NoBlock, err
	}
	if err := cd.SetMembers(set, member); err != nil {
		return NoBlock, err
	}
	return set, nil
}

// rootArgument returns the member type used to encode a non-tuple root.
func rootArgument(dt DataType) DataType {
	return newDataType(dt.Descriptor(), dt.Name(), dt.Name(), "", true)
}

// Decode reads a value of dt from hex calldata.
//
// When a selector is expected and the calldata does not start with it, Decode
// fails. An empty payload decodes to dt's default value unless strict mode is on.
func Decode(dt DataType, calldata string, opts ...DecodeOption) (any, error) {
	rules := newDecodingRules(opts)
	hasSelector := rules.Selector != ""
	if hasSelector && !hasSelectorPrefix(calldata, rules.Selector) {
		return nil, &SelectorMismatchError{Expected: rules.Selector, Calldata: calldata}
	}
	raw, err := NewRawCalldata(calldata, hasSelector)
	if err != nil {
		return nil, err
	}
	if !rules.IsStrictMode && raw.SizeInBytes() == 0 {
		rules.Logger().Trace("Decoded empty calldata to default value", "type", dt.SignatureType())
		return dt.DefaultValue(rules), nil
	}
	return decodeRoot(dt, raw, rules)
}

func decodeRoot(dt DataType, raw *RawCalldata, rules DecodingRules) (any, error) {
	if dt.Descriptor().kind == KindTuple {
		return dt.GenerateValue(raw, rules)
	}
	raw.StartScope()
	defer raw.EndScope()
	return rootArgument(dt).GenerateValue(raw, rules)
}

func hasSelectorPrefix(calldata, selector string) bool {
	return strings.HasPrefix(strings.ToLower(normalizeHex(calldata)), strings.ToLower(normalizeHex(selector)))
}

// normalizeHex returns s with a lower-case 0x prefix.
func normalizeHex(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return "0x" + s[2:]
	}
	return "0x" + s
}

// DecodeAsArray decodes like Decode and flattens the result: tuples become
// their member values in declaration order, arrays their elements, and any
// other value a single-element slice.
func DecodeAsArray(dt DataType, calldata string, opts ...DecodeOption) ([]any, error) {
	value, err := Decode(dt, calldata, opts...)
	if err != nil {
		return nil, err
	}
	return flatten(dt.Descriptor(), value), nil
}

func flatten(desc *TypeDescriptor, value any) []any {
	switch v := value.(type) {
	case map[string]any:
		if desc.kind != KindTuple {
			break
		}
		out := make([]any, len(desc.members))
		for i, m := range desc.members {
			out[i] = v[memberKey(m, i)]
		}
		return out
	case []any:
		return v
	}
	return []any{value}
}
