package abicoder

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// RawCalldata is a read cursor over an ABI-encoded payload.
//
// Offsets are relative to the end of the selector. Tuples and arrays open a
// scope at the offset where their members begin; pointer words are resolved
// relative to the innermost scope.
type RawCalldata struct {
	data     []byte
	selector []byte
	offset   int
	scopes   []int
}

// NewRawCalldata parses hex calldata (with or without 0x prefix). When
// hasSelector is set, the first 4 bytes are consumed as the selector.
func NewRawCalldata(calldata string, hasSelector bool) (*RawCalldata, error) {
	data, err := decodeHex(calldata)
	if err != nil {
		return nil, err
	}
	return NewRawCalldataFromBytes(data, hasSelector)
}

// NewRawCalldataFromBytes wraps an already decoded payload.
func NewRawCalldataFromBytes(data []byte, hasSelector bool) (*RawCalldata, error) {
	rc := &RawCalldata{scopes: []int{0}}
	if hasSelector {
		if len(data) < SelectorSize {
			return nil, &OutOfBoundsError{Offset: 0, Length: SelectorSize, Size: len(data)}
		}
		rc.selector = data[:SelectorSize]
		data = data[SelectorSize:]
	}
	rc.data = data
	return rc, nil
}

func decodeHex(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	data, err := hexutil.Decode("0x" + s[2:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return data, nil
}

// Selector returns the consumed selector as 0x-prefixed hex, or "".
func (r *RawCalldata) Selector() string {
	if r.selector == nil {
		return ""
	}
	return hexutil.Encode(r.selector)
}

// SizeInBytes returns the payload size, excluding the selector.
func (r *RawCalldata) SizeInBytes() int {
	return len(r.data)
}

// Remaining returns the number of bytes after the cursor.
func (r *RawCalldata) Remaining() int {
	return len(r.data) - r.offset
}

// Offset returns the cursor position.
func (r *RawCalldata) Offset() int {
	return r.offset
}

// SetOffset moves the cursor. The offset may equal the payload size.
func (r *RawCalldata) SetOffset(offset int) error {
	if offset < 0 || offset > len(r.data) {
		return &OutOfBoundsError{Offset: offset, Length: 0, Size: len(r.data)}
	}
	r.offset = offset
	return nil
}

// PopWord reads one 32-byte word and advances the cursor.
func (r *RawCalldata) PopWord() ([]byte, error) {
	return r.PopWords(1)
}

// PopWords reads n words and advances the cursor.
func (r *RawCalldata) PopWords(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining()/WordSize {
		return nil, &OutOfBoundsError{Offset: r.offset, Length: n * WordSize, Size: len(r.data)}
	}
	length := n * WordSize
	out := r.data[r.offset : r.offset+length]
	r.offset += length
	return out, nil
}

// PopOffset reads a word holding an offset or length and returns it as an int.
// Values that cannot address the payload are rejected.
func (r *RawCalldata) PopOffset() (int, error) {
	start := r.offset
	word, err := r.PopWord()
	if err != nil {
		return 0, err
	}
	v := new(uint256.Int).SetBytes32(word)
	if !v.IsUint64() || v.Uint64() > uint64(len(r.data)) {
		return 0, &OutOfBoundsError{Offset: start, Length: WordSize, Size: len(r.data)}
	}
	return int(v.Uint64()), nil
}

// StartScope opens a scope at the current cursor position.
func (r *RawCalldata) StartScope() {
	r.scopes = append(r.scopes, r.offset)
}

// EndScope closes the innermost scope. The outermost scope is never closed.
func (r *RawCalldata) EndScope() {
	if len(r.scopes) > 1 {
		r.scopes = r.scopes[:len(r.scopes)-1]
	}
}

// ToAbsoluteOffset resolves an offset relative to the innermost scope.
func (r *RawCalldata) ToAbsoluteOffset(relative int) int {
	return r.scopes[len(r.scopes)-1] + relative
}
