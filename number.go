package abicoder

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
)

// numberDataType encodes uintN and intN as 32-byte two's complement words.
type numberDataType struct {
	dataType
	signed   bool
	min, max *big.Int
}

func newNumberDataType(base dataType) *numberDataType {
	bits := uint(base.desc.size)
	t := &numberDataType{dataType: base, signed: base.desc.kind == KindInt}
	if t.signed {
		t.max = new(big.Int).Sub(math.BigPow(2, int64(bits-1)), big.NewInt(1))
		t.min = new(big.Int).Neg(math.BigPow(2, int64(bits-1)))
	} else {
		t.max = new(big.Int).Sub(math.BigPow(2, int64(bits)), big.NewInt(1))
		t.min = new(big.Int)
	}
	return t
}

func (t *numberDataType) GenerateCalldataBlock(cd *Calldata, value any, parent BlockID) (BlockID, error) {
	n, err := toBigInt(value)
	if err != nil {
		return NoBlock, t.encodingError(value, err)
	}
	if err := t.checkRange(n); err != nil {
		return NoBlock, t.encodingError(value, err)
	}
	// U256Bytes converts in place.
	word := math.U256Bytes(new(big.Int).Set(n))
	return cd.AddBlob(t.name, t.SignatureType(), t.parentName, word), nil
}

// wordModulus is 2^256, used to read a word as a two's complement integer.
var wordModulus = math.BigPow(2, 256)

func (t *numberDataType) checkRange(n *big.Int) error {
	if n.Cmp(t.min) < 0 || n.Cmp(t.max) > 0 {
		return fmt.Errorf("%w: %s does not fit %s", ErrValueOutOfRange, n, t.SignatureType())
	}
	return nil
}

func (t *numberDataType) GenerateValue(raw *RawCalldata, rules DecodingRules) (any, error) {
	offset := raw.Offset()
	word, err := raw.PopWord()
	if err != nil {
		return nil, t.decodingError(offset, err)
	}
	n := new(big.Int).SetBytes(word)
	if t.signed && n.Bit(255) == 1 {
		n.Sub(n, wordModulus)
	}
	if rules.IsStrictMode {
		if err := t.checkRange(n); err != nil {
			return nil, t.decodingError(offset, err)
		}
	}
	return n, nil
}

func (t *numberDataType) DefaultValue(DecodingRules) any {
	return new(big.Int)
}

func (t *numberDataType) IsStatic() bool { return true }
