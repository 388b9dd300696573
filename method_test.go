package abicoder

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const erc20ABI = `[
	{"type":"function","name":"transfer","stateMutability":"nonpayable",
	 "inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"approve","stateMutability":"nonpayable",
	 "inputs":[{"name":"spender","type":"address"},{"name":"value","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view",
	 "inputs":[{"name":"owner","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"multicall","stateMutability":"nonpayable",
	 "inputs":[{"name":"calls","type":"tuple[]","components":[
		{"name":"target","type":"address"},
		{"name":"data","type":"bytes"}]}],
	 "outputs":[{"name":"results","type":"bytes[]"}]}
]`

func TestComputeSelector(t *testing.T) {
	tests := []struct {
		signature string
		want      string
	}{
		{"transfer(address,uint256)", "0xa9059cbb"},
		{"approve(address,uint256)", "0x095ea7b3"},
		{"balanceOf(address)", "0x70a08231"},
	}

	for _, tt := range tests {
		t.Run(tt.signature, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeSelector(tt.signature))
		})
	}
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("transfer(address to, uint256 amount) returns (bool)")
	require.NoError(t, err)

	assert.Equal(t, "transfer", m.Name())
	assert.Equal(t, "transfer(address,uint256)", m.Signature())
	assert.Equal(t, "0xa9059cbb", m.Selector())
	assert.Equal(t, "(address to,uint256 amount) transfer", m.Inputs().Signature(true))
	assert.Equal(t, "(bool)", m.ReturnType().SignatureType())

	t.Run("invalid", func(t *testing.T) {
		_, err := ParseMethod("transfer(address")
		assert.ErrorIs(t, err, ErrInvalidSignature)
		assert.Panics(t, func() { MustParseMethod("transfer(address") })
	})

	t.Run("inputs must be a tuple", func(t *testing.T) {
		_, err := NewMethod("f", MustParseType("uint256"), nil)
		assert.ErrorIs(t, err, ErrInvalidSignature)

		_, err = NewMethod("f", TupleOf(), MustParseType("uint256"))
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})
}

func TestMethodEncodeDecode(t *testing.T) {
	m := MustParseMethod("transfer(address to,uint256 amount)")
	amount := big.NewInt(1_000_000)

	encoded, err := m.Encode(map[string]any{"to": testAddress, "amount": amount})
	require.NoError(t, err)

	want := "0xa9059cbb" + leftWord(strings.ToLower(testAddress.Hex()[2:])) + leftWord("0f4240")
	assert.Equal(t, want, encoded)

	t.Run("positional and struct args encode the same", func(t *testing.T) {
		positional, err := m.Encode([]any{testAddress, amount})
		require.NoError(t, err)
		assert.Equal(t, want, positional)

		structured, err := m.Encode(struct {
			To     any
			Amount *big.Int
		}{To: testAddress.Hex(), Amount: amount})
		require.NoError(t, err)
		assert.Equal(t, want, structured)
	})

	t.Run("decode", func(t *testing.T) {
		got, err := m.Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, normalize(map[string]any{"to": testAddress, "amount": amount}), normalize(got))
	})

	t.Run("decode as array", func(t *testing.T) {
		got, err := m.DecodeAsArray(encoded)
		require.NoError(t, err)
		assert.Equal(t, normalize([]any{testAddress, amount}), normalize(got))
	})

	t.Run("strict decode", func(t *testing.T) {
		got, err := m.StrictDecode(encoded)
		require.NoError(t, err)
		assert.Equal(t, normalize([]any{testAddress, amount}), normalize(got))
	})

	t.Run("wrong selector", func(t *testing.T) {
		_, err := m.Decode("0x095ea7b3" + encoded[SelectorHexLength:])
		assert.ErrorIs(t, err, ErrSelectorMismatch)
	})

	t.Run("matches go-ethereum packing", func(t *testing.T) {
		parsed, err := abi.JSON(strings.NewReader(erc20ABI))
		require.NoError(t, err)

		packed, err := parsed.Pack("transfer", testAddress, amount)
		require.NoError(t, err)
		assert.Equal(t, hexutil.Encode(packed), encoded)
	})
}

func TestMethodDuplicateArguments(t *testing.T) {
	m := MustParseMethod("f(string[],string[])")
	names := []string{"foo", "bar", "blitz"}

	plain, err := m.Encode([]any{names, names})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(plain, m.Selector()))
	assert.Len(t, plain, SelectorHexLength+2*22*WordSize)
	assert.Equal(t, leftWord("40")+leftWord("0180"), plain[SelectorHexLength:SelectorHexLength+4*WordSize])

	optimized, err := m.Encode([]any{names, names}, WithOptimize(true))
	require.NoError(t, err)
	assert.Equal(t, m.Selector()+strings.Join([]string{
		leftWord("40"),
		leftWord("40"),
		leftWord("03"),
		leftWord("60"),
		leftWord("a0"),
		leftWord("e0"),
		leftWord("03"),
		rightWord("666f6f"),
		leftWord("03"),
		rightWord("626172"),
		leftWord("05"),
		rightWord("626c69747a"),
	}, ""), optimized)

	for name, calldata := range map[string]string{"plain": plain, "optimized": optimized} {
		t.Run(name, func(t *testing.T) {
			got, err := m.StrictDecode(calldata)
			require.NoError(t, err)

			want := []any{"foo", "bar", "blitz"}
			assert.Equal(t, []any{want, want}, got)
		})
	}
}

func TestMethodReturnValues(t *testing.T) {
	m := MustParseMethod("balanceOf(address owner) returns (uint256)")

	encoded, err := m.EncodeReturnValues([]any{big.NewInt(100)})
	require.NoError(t, err)
	assert.Equal(t, calldataHex(leftWord("64")), encoded)

	got, err := m.DecodeReturnValues(encoded)
	require.NoError(t, err)
	assert.Equal(t, normalize(map[string]any{"0": big.NewInt(100)}), normalize(got))

	value, err := m.StrictDecodeReturnValue(encoded)
	require.NoError(t, err)
	assert.Equal(t, int64(100), value.(*big.Int).Int64())

	t.Run("empty return data", func(t *testing.T) {
		value, err := m.StrictDecodeReturnValue("0x")
		require.NoError(t, err)
		assert.Equal(t, 0, value.(*big.Int).Sign())

		_, err = m.StrictDecodeReturnValue("0x", WithStrictMode(true))
		assert.ErrorIs(t, err, ErrOutOfBounds)
	})

	t.Run("no outputs", func(t *testing.T) {
		void := MustParseMethod("ping()")
		value, err := void.StrictDecodeReturnValue("0x")
		require.NoError(t, err)
		assert.Nil(t, value)

		args, err := void.StrictDecode(void.Selector())
		require.NoError(t, err)
		assert.Nil(t, args)
	})

	t.Run("multiple outputs", func(t *testing.T) {
		pair := MustParseMethod("getReserves() returns (uint112 reserve0, uint112 reserve1, uint32 ts)")
		encoded, err := pair.EncodeReturnValues(map[string]any{"reserve0": 1, "reserve1": 2, "ts": 3})
		require.NoError(t, err)

		got, err := pair.StrictDecodeReturnValue(encoded)
		require.NoError(t, err)
		assert.Equal(t, normalize([]any{big.NewInt(1), big.NewInt(2), big.NewInt(3)}), normalize(got))
	})
}

func TestNewMethodFromABI(t *testing.T) {
	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	require.NoError(t, err)

	for name, gethMethod := range parsed.Methods {
		t.Run(name, func(t *testing.T) {
			m, err := NewMethodFromABI(gethMethod)
			require.NoError(t, err)
			assert.Equal(t, gethMethod.Sig, m.Signature())
			assert.Equal(t, hexutil.Encode(gethMethod.ID), m.Selector())
		})
	}

	t.Run("tuple arguments match go-ethereum packing", func(t *testing.T) {
		type call struct {
			Target any
			Data   []byte
		}
		calls := []struct {
			Target common.Address
			Data   []byte
		}{
			{Target: testAddress, Data: []byte{0xde, 0xad}},
			{Target: testAddress, Data: []byte{0xde, 0xad}},
		}
		packed, err := parsed.Pack("multicall", calls)
		require.NoError(t, err)

		m, err := NewMethodFromABI(parsed.Methods["multicall"])
		require.NoError(t, err)

		encoded, err := m.Encode([]any{[]call{
			{Target: testAddress, Data: []byte{0xde, 0xad}},
			{Target: testAddress, Data: []byte{0xde, 0xad}},
		}})
		require.NoError(t, err)
		assert.Equal(t, hexutil.Encode(packed), encoded)

		optimized, err := m.Encode([]any{calls}, WithOptimize(true))
		require.NoError(t, err)
		assert.Less(t, len(optimized), len(encoded))

		plain, err := m.Decode(encoded)
		require.NoError(t, err)
		deduped, err := m.Decode(optimized)
		require.NoError(t, err)
		assert.Equal(t, normalize(plain), normalize(deduped))
	})
}
