package abicoder

import (
	"fmt"
)

// pointerDataType wraps a dynamic type. At the value's own slot it encodes a
// single word holding the offset of the destination data, which is placed
// after the static part of the enclosing set.
type pointerDataType struct {
	dataType
	destination DataType
}

// Destination returns the wrapped data type.
func (t *pointerDataType) Destination() DataType {
	return t.destination
}

func (t *pointerDataType) GenerateCalldataBlock(cd *Calldata, value any, parent BlockID) (BlockID, error) {
	if parent == NoBlock {
		return NoBlock, t.encodingError(value, fmt.Errorf("%w: %s", ErrParentRequired, t.SignatureType()))
	}
	dependency, err := t.destination.GenerateCalldataBlock(cd, value, parent)
	if err != nil {
		return NoBlock, err
	}
	id, err := cd.AddPointer(t.name, t.SignatureType(), t.parentName, dependency, parent)
	if err != nil {
		return NoBlock, t.encodingError(value, err)
	}
	return id, nil
}

// GenerateValue reads the offset word, decodes the destination there, and
// restores the cursor so the following members continue after the word.
func (t *pointerDataType) GenerateValue(raw *RawCalldata, rules DecodingRules) (any, error) {
	offset := raw.Offset()
	relative, err := raw.PopOffset()
	if err != nil {
		return nil, t.decodingError(offset, err)
	}
	resume := raw.Offset()
	if err := raw.SetOffset(raw.ToAbsoluteOffset(relative)); err != nil {
		return nil, t.decodingError(offset, err)
	}
	value, err := t.destination.GenerateValue(raw, rules)
	if err != nil {
		return nil, err
	}
	if err := raw.SetOffset(resume); err != nil {
		return nil, t.decodingError(offset, err)
	}
	return value, nil
}

func (t *pointerDataType) DefaultValue(rules DecodingRules) any {
	return t.destination.DefaultValue(rules)
}

func (t *pointerDataType) Signature(detailed bool) string {
	return t.destination.Signature(detailed)
}

// IsStatic is true: the pointer word itself has a fixed size.
func (t *pointerDataType) IsStatic() bool { return true }
