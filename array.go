package abicoder

import (
	"fmt"

	"github.com/holiman/uint256"
)

// arrayDataType encodes fixed (T[N]) and dynamic (T[]) arrays as a set of
// element blocks. Dynamic arrays carry their length word as the set header.
type arrayDataType struct {
	dataType
}

func (t *arrayDataType) isDynamicLength() bool {
	return t.desc.kind == KindSlice
}

// elementType creates the data type of element i.
func (t *arrayDataType) elementType(i int) DataType {
	return newDataType(t.desc.elem, elementName(t.name, i), "", t.name, true)
}

func (t *arrayDataType) GenerateCalldataBlock(cd *Calldata, value any, parent BlockID) (BlockID, error) {
	values, err := toSlice(value)
	if err != nil {
		return NoBlock, t.encodingError(value, err)
	}

	var header []byte
	if t.isDynamicLength() {
		length := uint256.NewInt(uint64(len(values))).Bytes32()
		header = length[:]
	} else if len(values) != t.desc.size {
		return NoBlock, t.encodingError(value, fmt.Errorf("%w: %s needs %d elements, got %d", ErrLengthMismatch, t.SignatureType(), t.desc.size, len(values)))
	}

	set := cd.AddSet(t.name, t.SignatureType(), t.parentName, header)
	members := make([]BlockID, len(values))
	for i, v := range values {
		members[i], err = t.elementType(i).GenerateCalldataBlock(cd, v, set)
		if err != nil {
			return NoBlock, err
		}
	}
	if err := cd.SetMembers(set, members...); err != nil {
		return NoBlock, err
	}
	return set, nil
}

func (t *arrayDataType) GenerateValue(raw *RawCalldata, rules DecodingRules) (any, error) {
	offset := raw.Offset()
	length := t.desc.size
	if t.isDynamicLength() {
		n, err := raw.PopOffset()
		if err != nil {
			return nil, t.decodingError(offset, err)
		}
		length = n
	}
	if elemSize := headSize(t.desc.elem); elemSize > 0 && length > raw.Remaining()/elemSize {
		return nil, t.decodingError(offset, &OutOfBoundsError{Offset: raw.Offset(), Length: length * elemSize, Size: raw.SizeInBytes()})
	}

	raw.StartScope()
	defer raw.EndScope()

	values := make([]any, length)
	for i := range values {
		v, err := t.elementType(i).GenerateValue(raw, rules)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func (t *arrayDataType) DefaultValue(rules DecodingRules) any {
	if t.isDynamicLength() {
		return []any{}
	}
	values := make([]any, t.desc.size)
	for i := range values {
		values[i] = t.elementType(i).DefaultValue(rules)
	}
	return values
}

func (t *arrayDataType) IsStatic() bool {
	return !t.desc.IsDynamic()
}
