package abicoder

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
)

// boolDataType encodes true as 1 and false as 0 in a single word.
type boolDataType struct {
	dataType
}

func (t *boolDataType) GenerateCalldataBlock(cd *Calldata, value any, parent BlockID) (BlockID, error) {
	b, err := toBool(value)
	if err != nil {
		return NoBlock, t.encodingError(value, err)
	}
	word := math.PaddedBigBytes(common.Big0, WordSize)
	if b {
		word = math.PaddedBigBytes(common.Big1, WordSize)
	}
	return cd.AddBlob(t.name, t.SignatureType(), t.parentName, word), nil
}

func (t *boolDataType) GenerateValue(raw *RawCalldata, rules DecodingRules) (any, error) {
	offset := raw.Offset()
	word, err := raw.PopWord()
	if err != nil {
		return nil, t.decodingError(offset, err)
	}
	if rules.IsStrictMode && (!isZero(word[:WordSize-1]) || word[WordSize-1] > 1) {
		return nil, t.decodingError(offset, ErrValueOutOfRange)
	}
	return common.BytesToHash(word) != common.Hash{}, nil
}

func (t *boolDataType) DefaultValue(DecodingRules) any {
	return false
}

func (t *boolDataType) IsStatic() bool { return true }
