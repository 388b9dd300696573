package abicoder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// FunctionSignature is a parsed "name(inputs) returns (outputs)" declaration.
type FunctionSignature struct {
	Name    string
	Inputs  *TypeDescriptor
	Outputs *TypeDescriptor
}

// ParseType parses a canonical or human-readable ABI type string.
// Tuple members may carry names: "(uint256 amount,string memo)[]".
func ParseType(signature string) (*TypeDescriptor, error) {
	if fn, ok := parseCanonical("f(" + signature + ")"); ok && len(fn.Inputs.members) == 1 {
		return fn.Inputs.members[0].Type, nil
	}
	p := &sigParser{input: signature}
	p.skipSpace()
	t, err := p.parseType()
	if err != nil {
		return nil, &SignatureError{Signature: signature, Err: err}
	}
	p.skipSpace()
	if !p.done() {
		return nil, &SignatureError{Signature: signature, Err: p.errorf("unexpected trailing input")}
	}
	return t, nil
}

// MustParseType is like ParseType but panics on error.
func MustParseType(signature string) *TypeDescriptor {
	t, err := ParseType(signature)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseSignature parses a function signature such as "transfer(address,uint256)"
// or "balanceOf(address owner) returns (uint256)".
func ParseSignature(signature string) (*FunctionSignature, error) {
	if fn, ok := parseCanonical(signature); ok {
		return fn, nil
	}
	p := &sigParser{input: signature}
	p.skipSpace()
	if strings.HasPrefix(p.rest(), "function ") {
		p.pos += len("function ")
		p.skipSpace()
	}
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, &SignatureError{Signature: signature, Err: err}
	}
	p.skipSpace()
	inputs, err := p.parseTuple()
	if err != nil {
		return nil, &SignatureError{Signature: signature, Err: err}
	}
	fn := &FunctionSignature{Name: name, Inputs: inputs, Outputs: TupleOf()}

	p.skipSpace()
	if strings.HasPrefix(p.rest(), "returns") {
		p.pos += len("returns")
		p.skipSpace()
		outputs, err := p.parseTuple()
		if err != nil {
			return nil, &SignatureError{Signature: signature, Err: err}
		}
		fn.Outputs = outputs
		p.skipSpace()
	}
	if !p.done() {
		return nil, &SignatureError{Signature: signature, Err: p.errorf("unexpected trailing input")}
	}
	return fn, nil
}

// Canonical returns the signature used for selector computation, e.g. "f(string[],string[])".
func (fs *FunctionSignature) Canonical() string {
	return fs.Name + fs.Inputs.Signature()
}

// parseCanonical parses a canonical "name(types)" signature with go-ethereum's
// selector parser. Member names, returns clauses, whitespace, type aliases and
// fixed-size tuple arrays are left to sigParser.
func parseCanonical(signature string) (*FunctionSignature, bool) {
	if strings.ContainsAny(signature, " \t\r\n") {
		return nil, false
	}
	sel, err := abi.ParseSelector(signature)
	if err != nil {
		return nil, false
	}
	args := make(abi.Arguments, len(sel.Inputs))
	for i, in := range sel.Inputs {
		typ, err := abi.NewType(in.Type, in.InternalType, in.Components)
		if err != nil {
			return nil, false
		}
		args[i] = abi.Argument{Type: typ}
	}
	inputs, err := FromArguments(args)
	if err != nil {
		return nil, false
	}
	return &FunctionSignature{Name: sel.Name, Inputs: withoutNames(inputs), Outputs: TupleOf()}, true
}

// withoutNames drops the placeholder member names the selector parser assigns.
func withoutNames(t *TypeDescriptor) *TypeDescriptor {
	switch t.kind {
	case KindSlice:
		return SliceOf(withoutNames(t.elem))
	case KindArray:
		return ArrayOf(withoutNames(t.elem), t.size)
	case KindTuple:
		members := make([]Member, len(t.members))
		for i, m := range t.members {
			members[i] = Member{Type: withoutNames(m.Type)}
		}
		return TupleOf(members...)
	}
	return t
}

type sigParser struct {
	input string
	pos   int
}

func (p *sigParser) done() bool { return p.pos >= len(p.input) }

func (p *sigParser) rest() string { return p.input[p.pos:] }

func (p *sigParser) peek() byte {
	if p.done() {
		return 0
	}
	return p.input[p.pos]
}

func (p *sigParser) skipSpace() {
	for !p.done() && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t' || p.input[p.pos] == '\n') {
		p.pos++
	}
}

func (p *sigParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at position %d", ErrInvalidSignature, fmt.Sprintf(format, args...), p.pos)
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentifierSymbol(c byte) bool {
	return c == '$' || c == '_'
}

func (p *sigParser) parseIdentifier() (string, error) {
	start := p.pos
	if p.done() || !(isAlpha(p.peek()) || isIdentifierSymbol(p.peek())) {
		return "", p.errorf("expected identifier")
	}
	for !p.done() && (isAlpha(p.peek()) || isDigit(p.peek()) || isIdentifierSymbol(p.peek())) {
		p.pos++
	}
	return p.input[start:p.pos], nil
}

// parseType parses a base type followed by any number of array suffixes.
func (p *sigParser) parseType() (*TypeDescriptor, error) {
	var (
		t   *TypeDescriptor
		err error
	)
	switch {
	case p.peek() == '(':
		t, err = p.parseTuple()
	case strings.HasPrefix(p.rest(), "tuple("):
		p.pos += len("tuple")
		t, err = p.parseTuple()
	default:
		var name string
		name, err = p.parseIdentifier()
		if err == nil {
			t, err = elementary(name)
		}
	}
	if err != nil {
		return nil, err
	}

	for p.peek() == '[' {
		p.pos++
		start := p.pos
		for isDigit(p.peek()) {
			p.pos++
		}
		digits := p.input[start:p.pos]
		if p.peek() != ']' {
			return nil, p.errorf("unterminated array suffix")
		}
		p.pos++
		if digits == "" {
			t = SliceOf(t)
			continue
		}
		length, convErr := strconv.Atoi(digits)
		if convErr != nil || length == 0 {
			return nil, p.errorf("invalid array length %q", digits)
		}
		t = ArrayOf(t, length)
	}
	return t, nil
}

// parseTuple parses "(" [param {"," param}] ")" where param is a type with an optional name.
func (p *sigParser) parseTuple() (*TypeDescriptor, error) {
	if p.peek() != '(' {
		return nil, p.errorf("expected '('")
	}
	p.pos++
	p.skipSpace()

	var members []Member
	if p.peek() == ')' {
		p.pos++
		return TupleOf(), nil
	}
	for {
		p.skipSpace()
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		var name string
		if p.peek() != ',' && p.peek() != ')' {
			name, err = p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			// Data location and indexed keywords carry no encoding meaning.
			if name == "indexed" || name == "memory" || name == "calldata" || name == "storage" {
				p.skipSpace()
				name = ""
				if p.peek() != ',' && p.peek() != ')' {
					if name, err = p.parseIdentifier(); err != nil {
						return nil, err
					}
				}
			}
			p.skipSpace()
		}
		members = append(members, Member{Name: name, Type: t})

		switch p.peek() {
		case ',':
			p.pos++
		case ')':
			p.pos++
			return TupleOf(members...), nil
		default:
			return nil, p.errorf("expected ',' or ')'")
		}
	}
}
