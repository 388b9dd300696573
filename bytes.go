package abicoder

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// functionSize is the width of a function reference: address followed by selector.
const functionSize = common.AddressLength + SelectorSize

// staticBytesDataType encodes bytesN and function values right-padded to one word.
type staticBytesDataType struct {
	dataType
}

func (t *staticBytesDataType) width() int {
	if t.desc.kind == KindFunction {
		return functionSize
	}
	return t.desc.size
}

func (t *staticBytesDataType) GenerateCalldataBlock(cd *Calldata, value any, parent BlockID) (BlockID, error) {
	b, err := toBytes(value)
	if err != nil {
		return NoBlock, t.encodingError(value, err)
	}
	if len(b) != t.width() {
		return NoBlock, t.encodingError(value, fmt.Errorf("%w: %s needs %d bytes, got %d", ErrLengthMismatch, t.SignatureType(), t.width(), len(b)))
	}
	return cd.AddBlob(t.name, t.SignatureType(), t.parentName, common.RightPadBytes(b, WordSize)), nil
}

func (t *staticBytesDataType) GenerateValue(raw *RawCalldata, rules DecodingRules) (any, error) {
	offset := raw.Offset()
	word, err := raw.PopWord()
	if err != nil {
		return nil, t.decodingError(offset, err)
	}
	if rules.IsStrictMode && !isZero(word[t.width():]) {
		return nil, t.decodingError(offset, ErrValueOutOfRange)
	}
	return common.CopyBytes(word[:t.width()]), nil
}

func (t *staticBytesDataType) DefaultValue(DecodingRules) any {
	return make([]byte, t.width())
}

func (t *staticBytesDataType) IsStatic() bool { return true }

// dynamicBytesDataType encodes a length word followed by the right-padded data.
type dynamicBytesDataType struct {
	dataType
}

func (t *dynamicBytesDataType) GenerateCalldataBlock(cd *Calldata, value any, parent BlockID) (BlockID, error) {
	b, err := toBytes(value)
	if err != nil {
		return NoBlock, t.encodingError(value, err)
	}
	return cd.AddBlob(t.name, t.SignatureType(), t.parentName, encodeDynamicBytes(b)), nil
}

func (t *dynamicBytesDataType) GenerateValue(raw *RawCalldata, rules DecodingRules) (any, error) {
	offset := raw.Offset()
	b, err := decodeDynamicBytes(raw, rules)
	if err != nil {
		return nil, t.decodingError(offset, err)
	}
	return b, nil
}

func (t *dynamicBytesDataType) DefaultValue(DecodingRules) any {
	return []byte{}
}

func (t *dynamicBytesDataType) IsStatic() bool { return false }

// encodeDynamicBytes returns the length word followed by b padded to whole words.
func encodeDynamicBytes(b []byte) []byte {
	length := uint256.NewInt(uint64(len(b))).Bytes32()
	out := make([]byte, 0, WordSize+wordAligned(len(b)))
	out = append(out, length[:]...)
	return append(out, common.RightPadBytes(b, wordAligned(len(b)))...)
}

// decodeDynamicBytes reads a length word and the padded data that follows it.
func decodeDynamicBytes(raw *RawCalldata, rules DecodingRules) ([]byte, error) {
	length, err := raw.PopOffset()
	if err != nil {
		return nil, err
	}
	padded, err := raw.PopWords(wordAligned(length) / WordSize)
	if err != nil {
		return nil, err
	}
	if rules.IsStrictMode && !isZero(padded[length:]) {
		return nil, fmt.Errorf("%w: non-zero padding", ErrValueOutOfRange)
	}
	return common.CopyBytes(padded[:length]), nil
}

// wordAligned rounds n up to a multiple of WordSize.
func wordAligned(n int) int {
	return (n + WordSize - 1) / WordSize * WordSize
}
