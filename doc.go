// Package abicoder encodes and decodes Ethereum contract ABI calldata.
//
// Values are turned into a tree of calldata blocks before they are
// serialized. This makes it possible to:
//   - Assign every block a byte offset from a single traversal
//   - Deduplicate structurally identical dynamic values, shrinking calldata
//   - Render an annotated, word-by-word trace of the encoding
//
// # Basic Usage
//
// Parse a type or function signature and encode a value:
//
//	dt := abicoder.MustParseDataType("(uint256 a,string b)")
//	hex, err := abicoder.Encode(dt, map[string]any{"a": 5, "b": "hi"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	value, err := abicoder.Decode(dt, hex)
//
// Methods prepend their selector:
//
//	m := abicoder.MustParseMethod("f(string[] a,string[] b)")
//	names := []string{"foo", "bar", "blitz"}
//	calldata, err := m.Encode([]any{names, names}, abicoder.WithOptimize(true))
//
// # Block Tree
//
// The tree has three block kinds:
//
//   - BlobBlock: a word-aligned payload (scalars, bytes, strings)
//   - SetBlock: the members of a tuple or array, headed by the length word
//     of dynamic arrays
//   - PointerBlock: the offset word of a dynamic value stored out of line
//
// A set is serialized as its members followed by the dependencies of its
// pointers, in member order, which is the head/tail layout of the ABI.
//
// # Optimization
//
// With WithOptimize(true), pointers whose targets are byte-identical are
// redirected to a single copy of the data. Only whole-block duplicates are
// detected; the last occurrence in encoding order is the one kept.
//
// # Values
//
// Decoding produces *big.Int for integers, common.Address, bool, []byte for
// bytes and bytesN, string, []any for arrays, and map[string]any for tuples
// (or []any with WithStructsAsObjects(false)). Encoding accepts those plus the
// usual Go equivalents (native integers, *uint256.Int, hex strings, structs).
//
// # References
//
//   - https://docs.soliditylang.org/en/latest/abi-spec.html
package abicoder
