package parse

import (
	"errors"
	"fmt"
	"slices"

	"github.com/midbel/formulae/formula/builtins"
	"github.com/midbel/formulae/formula/lexer"
	"github.com/midbel/formulae/formula/op"
	"github.com/midbel/formulae/value"
)

var ErrMalformed = errors.New("malformed token tree")

// Factory creates the node of tok once its operands have been added to the
// tree. It returns false when it does not handle tok.
type Factory func(p *Parser, tok *lexer.Node, children []int) (Node, bool)

type factory struct {
	name     string
	priority int
	create   Factory
}

const (
	PrioUnion     = 100
	PrioPrefix    = 90
	PrioPostfix   = 80
	PrioBinary    = 70
	PrioCall      = 60
	PrioReference = 50
	PrioLiteral   = 40
	PrioArray     = 30
	PrioName      = 20
)

type Parser struct {
	registry  *builtins.Registry
	factories []factory

	tree *Tree
}

func NewParser(reg *builtins.Registry) *Parser {
	if reg == nil {
		reg = builtins.Default()
	}
	p := Parser{
		registry: reg,
	}
	p.Register("union", PrioUnion, parseUnion)
	p.Register("prefix", PrioPrefix, parsePrefix)
	p.Register("postfix", PrioPostfix, parsePostfix)
	p.Register("binary", PrioBinary, parseBinary)
	p.Register("call", PrioCall, parseCall)
	p.Register("reference", PrioReference, parseReference)
	p.Register("literal", PrioLiteral, parseLiteral)
	p.Register("array", PrioArray, parseArray)
	p.Register("name", PrioName, parseName)
	return &p
}

// Register adds a factory. Factories are tried from the highest priority
// to the lowest, in registration order for equal priorities.
func (p *Parser) Register(name string, priority int, fn Factory) {
	p.factories = append(p.factories, factory{
		name:     name,
		priority: priority,
		create:   fn,
	})
	slices.SortStableFunc(p.factories, func(a, b factory) int {
		return b.priority - a.priority
	})
}

func (p *Parser) Registry() *builtins.Registry {
	return p.registry
}

func Parse(root *lexer.Node) (*Tree, error) {
	return NewParser(nil).Parse(root)
}

func ParseString(formula string) (*Tree, error) {
	return NewParser(nil).ParseString(formula)
}

func (p *Parser) ParseString(formula string) (*Tree, error) {
	root, err := lexer.Tokenize(formula)
	if err != nil {
		return nil, err
	}
	return p.Parse(root)
}

// Parse builds the tree of root. The sequences of root are put in postfix
// order first if they are not already.
func (p *Parser) Parse(root *lexer.Node) (*Tree, error) {
	if root == nil || root.Type != op.Root {
		return nil, fmt.Errorf("%w: root expected", ErrMalformed)
	}
	p.tree = new(Tree)
	defer func() {
		p.tree = nil
	}()

	lexer.Suffix(root)
	ix, err := p.parseSequence(root)
	if err != nil {
		return nil, err
	}
	tree := p.tree
	tree.Root = ix
	return tree, nil
}

func (p *Parser) parseSequence(seq *lexer.Node) (int, error) {
	var stack []int
	pop := func(n int) ([]int, error) {
		if len(stack) < n {
			return nil, fmt.Errorf("%w: missing operand at offset %d", ErrMalformed, seq.Offset)
		}
		list := slices.Clone(stack[len(stack)-n:])
		stack = stack[:len(stack)-n]
		return list, nil
	}
	for _, tok := range seq.Children {
		var (
			children []int
			err      error
			ix       int
		)
		switch {
		case op.IsBinary(tok.Type):
			children, err = pop(2)
		case op.IsPrefix(tok.Type), op.IsPostfix(tok.Type):
			children, err = pop(1)
		case tok.Type == op.BegGrp:
			ix, err = p.parseSequence(tok)
			if err != nil {
				return 0, err
			}
			stack = append(stack, ix)
			continue
		case tok.Type == op.Call:
			children, err = p.parseArgs(tok)
		case tok.Type == op.Root, tok.Type == op.Arg, tok.Type == op.Row:
			err = fmt.Errorf("%w: unexpected %s at offset %d", ErrMalformed, tok.Type, tok.Offset)
		}
		if err != nil {
			return 0, err
		}
		stack = append(stack, p.create(tok, children))
	}
	if len(stack) != 1 {
		return 0, fmt.Errorf("%w: %d operands left at offset %d", ErrMalformed, len(stack), seq.Offset)
	}
	return stack[0], nil
}

func (p *Parser) parseArgs(call *lexer.Node) ([]int, error) {
	var list []int
	for _, arg := range call.Children {
		if arg.Type != op.Arg {
			return nil, fmt.Errorf("%w: argument expected in call to %s", ErrMalformed, call.Token)
		}
		if len(arg.Children) == 0 {
			ix := p.tree.append(Node{
				Kind:   KindBlank,
				Offset: arg.Offset,
				Value:  value.Blank{},
			})
			list = append(list, ix)
			continue
		}
		ix, err := p.parseSequence(arg)
		if err != nil {
			return nil, err
		}
		list = append(list, ix)
	}
	return list, nil
}

// create gives tok to the factories and adds the node of the first one
// accepting it. A token no factory accepts becomes an invalid node holding
// #NAME?.
func (p *Parser) create(tok *lexer.Node, children []int) int {
	for _, f := range p.factories {
		n, ok := f.create(p, tok, children)
		if !ok {
			continue
		}
		n.Token = tok.Token
		n.Offset = tok.Offset
		n.Op = tok.Type
		n.Priority = f.priority
		if n.Children == nil {
			n.Children = children
		}
		return p.tree.append(n)
	}
	return p.tree.append(Node{
		Kind:     KindInvalid,
		Token:    tok.Token,
		Offset:   tok.Offset,
		Op:       tok.Type,
		Children: children,
		Value:    value.ErrName,
	})
}
