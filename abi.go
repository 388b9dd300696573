package abicoder

import (
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ABI holds the methods of a contract parsed from its JSON ABI.
type ABI struct {
	parsed     abi.ABI
	methods    map[string]*Method
	bySelector map[string]*Method
}

// ParseABI parses a JSON ABI string.
func ParseABI(abiJSON string) (*ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, err
	}
	return NewABI(parsed)
}

// MustParseABI is like ParseABI but panics on error.
func MustParseABI(abiJSON string) *ABI {
	a, err := ParseABI(abiJSON)
	if err != nil {
		panic(err)
	}
	return a
}

// NewABI wraps an ABI parsed by go-ethereum. Methods are keyed by their
// go-ethereum name, which disambiguates overloads ("foo", "foo0", ...).
func NewABI(parsed abi.ABI) (*ABI, error) {
	a := &ABI{
		parsed:     parsed,
		methods:    make(map[string]*Method, len(parsed.Methods)),
		bySelector: make(map[string]*Method, len(parsed.Methods)),
	}
	for name, m := range parsed.Methods {
		method, err := NewMethodFromABI(m)
		if err != nil {
			return nil, err
		}
		a.methods[name] = method
		a.bySelector[method.Selector()] = method
	}
	return a, nil
}

// Parsed returns the underlying go-ethereum ABI.
func (a *ABI) Parsed() abi.ABI {
	return a.parsed
}

// Method returns the named method.
func (a *ABI) Method(name string) (*Method, error) {
	m, ok := a.methods[name]
	if !ok {
		return nil, &MethodNotFoundError{Method: name}
	}
	return m, nil
}

// MethodBySelector returns the method whose selector prefixes calldata.
func (a *ABI) MethodBySelector(calldata string) (*Method, error) {
	hex := strings.ToLower(normalizeHex(calldata))
	if len(hex) >= SelectorHexLength {
		if m, ok := a.bySelector[hex[:SelectorHexLength]]; ok {
			return m, nil
		}
	}
	return nil, &SelectorMismatchError{Expected: "any known selector", Calldata: calldata}
}

// DecodeCall identifies the method called by calldata and decodes its arguments.
func (a *ABI) DecodeCall(calldata string, opts ...DecodeOption) (*Method, any, error) {
	m, err := a.MethodBySelector(calldata)
	if err != nil {
		return nil, nil, err
	}
	args, err := m.Decode(calldata, opts...)
	if err != nil {
		return nil, nil, err
	}
	return m, args, nil
}

// HasMethod returns true if the ABI has a method with the given name.
func (a *ABI) HasMethod(name string) bool {
	_, ok := a.methods[name]
	return ok
}

// MethodNames returns all method names, sorted.
func (a *ABI) MethodNames() []string {
	names := make([]string, 0, len(a.methods))
	for name := range a.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
