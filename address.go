package abicoder

import (
	"github.com/ethereum/go-ethereum/common"
)

// addressDataType encodes a 20-byte address left-padded to one word.
type addressDataType struct {
	dataType
}

func (t *addressDataType) GenerateCalldataBlock(cd *Calldata, value any, parent BlockID) (BlockID, error) {
	addr, err := toAddress(value)
	if err != nil {
		return NoBlock, t.encodingError(value, err)
	}
	return cd.AddBlob(t.name, t.SignatureType(), t.parentName, common.LeftPadBytes(addr.Bytes(), WordSize)), nil
}

func (t *addressDataType) GenerateValue(raw *RawCalldata, rules DecodingRules) (any, error) {
	offset := raw.Offset()
	word, err := raw.PopWord()
	if err != nil {
		return nil, t.decodingError(offset, err)
	}
	if rules.IsStrictMode && !isZero(word[:WordSize-common.AddressLength]) {
		return nil, t.decodingError(offset, ErrValueOutOfRange)
	}
	return common.BytesToAddress(word[WordSize-common.AddressLength:]), nil
}

func (t *addressDataType) DefaultValue(DecodingRules) any {
	return common.Address{}
}

func (t *addressDataType) IsStatic() bool { return true }

func isZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
