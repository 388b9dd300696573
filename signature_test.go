package abicoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		input string
		want  string
		kind  Kind
	}{
		{"uint256", "uint256", KindUint},
		{"uint", "uint256", KindUint},
		{"int", "int256", KindInt},
		{"int8", "int8", KindInt},
		{"byte", "bytes1", KindFixedBytes},
		{"bytes32", "bytes32", KindFixedBytes},
		{"function", "function", KindFunction},
		{"string[]", "string[]", KindSlice},
		{"uint8[2][]", "uint8[2][]", KindSlice},
		{"(uint256,string)", "(uint256,string)", KindTuple},
		{"tuple(uint256,string)[]", "(uint256,string)[]", KindSlice},
		{"(uint256 amount, string memo)", "(uint256,string)", KindTuple},
		{"  ( address to , (bool ok, bytes data)[2] calls ) ", "(address,(bool,bytes)[2])", KindTuple},
		{"()", "()", KindTuple},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			desc, err := ParseType(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, desc.Signature())
			assert.Equal(t, tt.kind, desc.Kind())
		})
	}
}

func TestParseTypeMemberNames(t *testing.T) {
	desc := MustParseType("(uint256 amount,(address to,bytes) call)")

	members := desc.Members()
	require.Len(t, members, 2)
	assert.Equal(t, "amount", members[0].Name)
	assert.Equal(t, "call", members[1].Name)

	inner := members[1].Type.Members()
	require.Len(t, inner, 2)
	assert.Equal(t, "to", inner[0].Name)
	assert.Equal(t, "", inner[1].Name)
}

func TestParseTypeCanonicalHasNoMemberNames(t *testing.T) {
	for _, input := range []string{
		"(uint256,(address,bytes)[])",
		"(bool,(string,uint8[2])[])[]",
		"((uint256,string)[2],bytes32)",
	} {
		t.Run(input, func(t *testing.T) {
			desc, err := ParseType(input)
			require.NoError(t, err)
			assert.Equal(t, input, desc.Signature())

			var check func(d *TypeDescriptor)
			check = func(d *TypeDescriptor) {
				if d.Elem() != nil {
					check(d.Elem())
				}
				for _, m := range d.Members() {
					assert.Empty(t, m.Name)
					check(m.Type)
				}
			}
			check(desc)
		})
	}
}

func TestParseSignatureCanonicalMatchesABI(t *testing.T) {
	fn, err := ParseSignature("multicall((address,bytes)[],uint256)")
	require.NoError(t, err)
	assert.Equal(t, "multicall", fn.Name)
	assert.Equal(t, "multicall((address,bytes)[],uint256)", fn.Canonical())
	require.Len(t, fn.Inputs.Members(), 2)
	assert.Empty(t, fn.Inputs.Members()[0].Name)
	assert.Equal(t, KindSlice, fn.Inputs.Members()[0].Type.Kind())
}

func TestParseTypeErrors(t *testing.T) {
	tests := []string{
		"",
		"foo",
		"uint7",
		"uint264",
		"uint08",
		"bytes0",
		"bytes33",
		"uint256[",
		"uint256[0]",
		"uint256[x]",
		"(uint256",
		"(uint256,,string)",
		"uint256 extra",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := ParseType(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSignature)

			var sigErr *SignatureError
			require.ErrorAs(t, err, &sigErr)
			assert.Equal(t, input, sigErr.Signature)
		})
	}
}

func TestMustParseTypePanics(t *testing.T) {
	assert.Panics(t, func() { MustParseType("uint7") })
	assert.NotPanics(t, func() { MustParseType("uint256") })
}

func TestParseSignature(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		fnName    string
		canonical string
		outputs   string
	}{
		{"canonical", "transfer(address,uint256)", "transfer", "transfer(address,uint256)", "()"},
		{"named params", "transfer(address to, uint256 amount)", "transfer", "transfer(address,uint256)", "()"},
		{"function keyword", "function approve(address spender, uint256 value)", "approve", "approve(address,uint256)", "()"},
		{"returns", "balanceOf(address owner) returns (uint256)", "balanceOf", "balanceOf(address)", "(uint256)"},
		{"data locations", "f(string memory s, bytes calldata b)", "f", "f(string,bytes)", "()"},
		{"no params", "totalSupply() returns (uint256 supply)", "totalSupply", "totalSupply()", "(uint256)"},
		{"tuple params", "swap((address,uint256)[] legs, bytes data)", "swap", "swap((address,uint256)[],bytes)", "()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := ParseSignature(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.fnName, fn.Name)
			assert.Equal(t, tt.canonical, fn.Canonical())
			assert.Equal(t, tt.outputs, fn.Outputs.Signature())
		})
	}
}

func TestParseSignatureErrors(t *testing.T) {
	tests := []string{
		"",
		"transfer",
		"(address)",
		"transfer(address",
		"transfer(address) returns",
		"transfer(address) extra",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := ParseSignature(input)
			assert.ErrorIs(t, err, ErrInvalidSignature)
		})
	}
}
