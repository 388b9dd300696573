package abicoder

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseABI(t *testing.T) {
	contract, err := ParseABI(erc20ABI)
	require.NoError(t, err)

	assert.Equal(t, []string{"approve", "balanceOf", "multicall", "transfer"}, contract.MethodNames())
	assert.True(t, contract.HasMethod("transfer"))
	assert.False(t, contract.HasMethod("mint"))
	assert.Len(t, contract.Parsed().Methods, 4)

	t.Run("invalid json", func(t *testing.T) {
		_, err := ParseABI("not json")
		assert.Error(t, err)
		assert.Panics(t, func() { MustParseABI("not json") })
	})
}

func TestABIMethod(t *testing.T) {
	contract := MustParseABI(erc20ABI)

	m, err := contract.Method("transfer")
	require.NoError(t, err)
	assert.Equal(t, "0xa9059cbb", m.Selector())

	_, err = contract.Method("mint")
	var notFound *MethodNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "mint", notFound.Method)
}

func TestABIDecodeCall(t *testing.T) {
	contract := MustParseABI(erc20ABI)
	approve, err := contract.Method("approve")
	require.NoError(t, err)

	calldata, err := approve.Encode([]any{testAddress, 7})
	require.NoError(t, err)

	t.Run("method by selector", func(t *testing.T) {
		m, err := contract.MethodBySelector(calldata)
		require.NoError(t, err)
		assert.Equal(t, "approve", m.Name())

		upper, err := contract.MethodBySelector("0x095EA7B3")
		require.NoError(t, err)
		assert.Equal(t, "approve", upper.Name())
	})

	t.Run("decode call", func(t *testing.T) {
		m, args, err := contract.DecodeCall(calldata)
		require.NoError(t, err)
		assert.Equal(t, "approve", m.Name())
		assert.Equal(t, normalize(map[string]any{"spender": testAddress, "value": big.NewInt(7)}), normalize(args))
	})

	t.Run("unknown selector", func(t *testing.T) {
		_, _, err := contract.DecodeCall("0xdeadbeef")
		assert.ErrorIs(t, err, ErrSelectorMismatch)

		_, err = contract.MethodBySelector("0x12")
		assert.ErrorIs(t, err, ErrSelectorMismatch)
	})
}
