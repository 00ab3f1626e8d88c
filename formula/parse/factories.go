package parse

import (
	"strconv"
	"strings"

	"github.com/midbel/formulae/formula/lexer"
	"github.com/midbel/formulae/formula/op"
	"github.com/midbel/formulae/layout"
	"github.com/midbel/formulae/value"
)

func parseUnion(_ *Parser, tok *lexer.Node, children []int) (Node, bool) {
	if tok.Type != op.Union || len(children) != 2 {
		return Node{}, false
	}
	return Node{Kind: KindUnion}, true
}

func parsePrefix(_ *Parser, tok *lexer.Node, children []int) (Node, bool) {
	if !op.IsPrefix(tok.Type) || len(children) != 1 {
		return Node{}, false
	}
	return Node{Kind: KindPrefix}, true
}

func parsePostfix(_ *Parser, tok *lexer.Node, children []int) (Node, bool) {
	if !op.IsPostfix(tok.Type) || len(children) != 1 {
		return Node{}, false
	}
	return Node{Kind: KindPostfix}, true
}

func parseBinary(_ *Parser, tok *lexer.Node, children []int) (Node, bool) {
	if !op.IsBinary(tok.Type) || len(children) != 2 {
		return Node{}, false
	}
	return Node{Kind: KindBinary}, true
}

// parseCall binds the call to its definition. Unknown functions give #NAME?
// and a wrong number of arguments #N/A. The arguments stay in the tree in
// both cases.
func parseCall(p *Parser, tok *lexer.Node, children []int) (Node, bool) {
	if tok.Type != op.Call {
		return Node{}, false
	}
	def, ok := p.registry.Lookup(tok.Token)
	if !ok {
		return Node{Kind: KindInvalid, Value: value.ErrName}, true
	}
	if !def.Accept(len(children)) {
		return Node{Kind: KindInvalid, Value: value.ErrNA, Func: def}, true
	}
	return Node{Kind: KindCall, Func: def}, true
}

func parseReference(_ *Parser, tok *lexer.Node, _ []int) (Node, bool) {
	if tok.Type != op.Reference {
		return Node{}, false
	}
	addr, err := layout.ParseAddress(tok.Token)
	if err != nil {
		return Node{Kind: KindInvalid, Value: value.ErrRef}, true
	}
	return Node{Kind: KindReference, Address: addr}, true
}

func parseLiteral(_ *Parser, tok *lexer.Node, _ []int) (Node, bool) {
	val, ok := constant(tok)
	if !ok {
		return Node{}, false
	}
	var kind Kind
	switch tok.Type {
	case op.Number:
		kind = KindNumber
	case op.Literal:
		kind = KindText
	case op.Boolean:
		kind = KindBoolean
	case op.Error:
		kind = KindError
	}
	return Node{Kind: kind, Value: val}, true
}

func parseArray(_ *Parser, tok *lexer.Node, _ []int) (Node, bool) {
	if tok.Type != op.BegArr {
		return Node{}, false
	}
	data := make([][]value.ScalarValue, 0, len(tok.Children))
	for _, row := range tok.Children {
		list := make([]value.ScalarValue, 0, len(row.Children))
		for _, c := range row.Children {
			v, ok := constant(c)
			if !ok {
				v = value.ErrValue
			}
			list = append(list, v)
		}
		data = append(data, list)
	}
	return Node{Kind: KindArray, Value: value.NewArray(data)}, true
}

func parseName(_ *Parser, tok *lexer.Node, _ []int) (Node, bool) {
	if tok.Type != op.Ident {
		return Node{}, false
	}
	return Node{Kind: KindName}, true
}

func constant(tok *lexer.Node) (value.ScalarValue, bool) {
	switch tok.Type {
	case op.Number:
		f, err := strconv.ParseFloat(tok.Token, 64)
		if err != nil {
			return value.ErrValue, true
		}
		return value.Float(f), true
	case op.Literal:
		return value.Text(tok.Token), true
	case op.Boolean:
		return value.Boolean(strings.EqualFold(tok.Token, "TRUE")), true
	case op.Error:
		e, ok := value.ParseError(tok.Token)
		if !ok {
			return value.ErrName, true
		}
		return e, true
	default:
		return nil, false
	}
}
