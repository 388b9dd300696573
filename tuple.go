package abicoder

import (
	"strings"
)

// tupleDataType encodes a tuple as a headerless set of member blocks.
type tupleDataType struct {
	dataType
	members []DataType
	keys    []string
}

func newTupleDataType(base dataType) *tupleDataType {
	t := &tupleDataType{dataType: base}
	for i, m := range base.desc.members {
		key := memberKey(m, i)
		t.keys = append(t.keys, key)
		t.members = append(t.members, newDataType(m.Type, childName(base.name, key), m.Name, base.name, true))
	}
	return t
}

// Members returns the member data types in declaration order.
func (t *tupleDataType) Members() []DataType {
	out := make([]DataType, len(t.members))
	copy(out, t.members)
	return out
}

func (t *tupleDataType) GenerateCalldataBlock(cd *Calldata, value any, parent BlockID) (BlockID, error) {
	values, err := toTupleValues(value, t.desc.members)
	if err != nil {
		return NoBlock, t.encodingError(value, err)
	}

	set := cd.AddSet(t.name, t.SignatureType(), t.parentName, nil)
	blocks := make([]BlockID, len(values))
	for i, v := range values {
		blocks[i], err = t.members[i].GenerateCalldataBlock(cd, v, set)
		if err != nil {
			return NoBlock, err
		}
	}
	if err := cd.SetMembers(set, blocks...); err != nil {
		return NoBlock, err
	}
	return set, nil
}

func (t *tupleDataType) GenerateValue(raw *RawCalldata, rules DecodingRules) (any, error) {
	raw.StartScope()
	defer raw.EndScope()

	values := make([]any, len(t.members))
	for i, member := range t.members {
		v, err := member.GenerateValue(raw, rules)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return t.shape(values, rules), nil
}

// shape returns member values as an object keyed by member name, or as a
// positional slice when structs are not converted to objects.
func (t *tupleDataType) shape(values []any, rules DecodingRules) any {
	if !rules.StructsAsObjects {
		return values
	}
	obj := make(map[string]any, len(values))
	for i, v := range values {
		obj[t.keys[i]] = v
	}
	return obj
}

func (t *tupleDataType) DefaultValue(rules DecodingRules) any {
	values := make([]any, len(t.members))
	for i, member := range t.members {
		values[i] = member.DefaultValue(rules)
	}
	return t.shape(values, rules)
}

// Signature returns the tuple type; detailed signatures name every member.
func (t *tupleDataType) Signature(detailed bool) string {
	if !detailed {
		return t.SignatureType()
	}
	parts := make([]string, len(t.members))
	for i, member := range t.members {
		parts[i] = member.Signature(true)
	}
	sig := "(" + strings.Join(parts, ",") + ")"
	if t.fieldName != "" {
		sig += " " + t.fieldName
	}
	return sig
}

func (t *tupleDataType) IsStatic() bool {
	return !t.desc.IsDynamic()
}
