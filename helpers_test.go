package abicoder

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// leftWord left-pads a hex string to one word.
func leftWord(h string) string {
	return strings.Repeat("0", 2*WordSize-len(h)) + h
}

// rightWord right-pads a hex string to one word.
func rightWord(h string) string {
	return h + strings.Repeat("0", 2*WordSize-len(h))
}

// calldataHex joins words into 0x-prefixed calldata.
func calldataHex(words ...string) string {
	return "0x" + strings.Join(words, "")
}

// normalize maps decoded values onto comparable forms.
func normalize(v any) any {
	switch x := v.(type) {
	case *big.Int:
		return "int:" + x.String()
	case []byte:
		return "bytes:" + hex.EncodeToString(x)
	case common.Address:
		return "address:" + x.Hex()
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = normalize(x[i])
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = normalize(e)
		}
		return out
	}
	return v
}
