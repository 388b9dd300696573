package abicoder

// stringDataType encodes a UTF-8 string like dynamic bytes.
type stringDataType struct {
	dataType
}

func (t *stringDataType) GenerateCalldataBlock(cd *Calldata, value any, parent BlockID) (BlockID, error) {
	s, err := toText(value)
	if err != nil {
		return NoBlock, t.encodingError(value, err)
	}
	return cd.AddBlob(t.name, t.SignatureType(), t.parentName, encodeDynamicBytes([]byte(s))), nil
}

func (t *stringDataType) GenerateValue(raw *RawCalldata, rules DecodingRules) (any, error) {
	offset := raw.Offset()
	b, err := decodeDynamicBytes(raw, rules)
	if err != nil {
		return nil, t.decodingError(offset, err)
	}
	return string(b), nil
}

func (t *stringDataType) DefaultValue(DecodingRules) any {
	return ""
}

func (t *stringDataType) IsStatic() bool { return false }
