package lexer

import (
	"github.com/midbel/formulae/formula/op"
)

// Tokenize scans formula and builds its token tree. The sequences of the
// tree are in infix order until Suffix is called.
func Tokenize(formula string) (*Node, error) {
	m := maker{
		scan: Scan(formula),
	}
	root := createNode(op.Root, "=", 0)
	end, err := m.sequence(root)
	if err != nil {
		return nil, err
	}
	if end.Type != op.EOF {
		return nil, syntaxError(end.Offset, "unexpected %s", end)
	}
	if len(root.Children) == 0 {
		return nil, syntaxError(0, "empty formula")
	}
	return root, nil
}

type maker struct {
	scan *Scanner
}

// sequence fills seq with operands and operators until it reads a token
// closing the sequence. That token is returned to the caller.
func (m *maker) sequence(seq *Node) (Token, error) {
	operand := true
	for {
		tok, err := m.scan.Scan()
		if err != nil {
			return tok, err
		}
		switch tok.Type {
		case op.EOF, op.Comma, op.Semicolon, op.EndGrp, op.EndArr:
			if operand && len(seq.Children) > 0 {
				return tok, syntaxError(tok.Offset, "missing operand before %s", tok)
			}
			return tok, nil
		case op.Add, op.Sub:
			if operand {
				tok.Type = op.Neg
				if tok.Literal == op.Symbol(op.Add) {
					tok.Type = op.Pos
				}
				seq.Append(createLeaf(tok))
				break
			}
			seq.Append(createLeaf(tok))
			operand = true
		case op.Percent:
			if operand {
				return tok, syntaxError(tok.Offset, "unexpected %s", tok)
			}
			seq.Append(createLeaf(tok))
		default:
			if op.IsBinary(tok.Type) {
				if operand {
					return tok, syntaxError(tok.Offset, "unexpected %s", tok)
				}
				seq.Append(createLeaf(tok))
				operand = true
				break
			}
			if !operand {
				return tok, syntaxError(tok.Offset, "unexpected %s: operator expected", tok)
			}
			node, err := m.operand(tok)
			if err != nil {
				return tok, err
			}
			seq.Append(node)
			operand = false
		}
	}
}

func (m *maker) operand(tok Token) (*Node, error) {
	switch tok.Type {
	case op.BegGrp:
		return m.group(tok)
	case op.Call:
		return m.call(tok)
	case op.BegArr:
		return m.array(tok)
	case op.Number, op.Literal, op.Boolean, op.Error, op.Reference, op.Ident:
		return createLeaf(tok), nil
	default:
		return nil, syntaxError(tok.Offset, "unexpected %s", tok)
	}
}

func (m *maker) group(tok Token) (*Node, error) {
	grp := createNode(op.BegGrp, "()", tok.Offset)
	end, err := m.sequence(grp)
	if err != nil {
		return nil, err
	}
	switch {
	case end.Type == op.EOF:
		return nil, syntaxError(tok.Offset, "unbalanced parenthesis")
	case end.Type != op.EndGrp:
		return nil, syntaxError(end.Offset, "unexpected %s in group", end)
	case len(grp.Children) == 0:
		return nil, syntaxError(tok.Offset, "empty group")
	}
	return grp, nil
}

func (m *maker) call(tok Token) (*Node, error) {
	call := createNode(op.Call, tok.Literal, tok.Offset)
	for {
		arg := createNode(op.Arg, "", m.scan.pos)
		end, err := m.sequence(arg)
		if err != nil {
			return nil, err
		}
		switch end.Type {
		case op.Comma:
			call.Append(arg)
		case op.EndGrp:
			if len(call.Children) > 0 || len(arg.Children) > 0 {
				call.Append(arg)
			}
			return call, nil
		case op.EOF:
			return nil, syntaxError(tok.Offset, "unbalanced parenthesis in call to %s", tok.Literal)
		default:
			return nil, syntaxError(end.Offset, "unexpected %s in call to %s", end, tok.Literal)
		}
	}
}

func (m *maker) array(tok Token) (*Node, error) {
	var (
		arr = createNode(op.BegArr, "{}", tok.Offset)
		row = createNode(op.Row, "", tok.Offset)
	)
	for {
		item, err := m.constant()
		if err != nil {
			return nil, err
		}
		row.Append(item)

		next, err := m.scan.Scan()
		if err != nil {
			return nil, err
		}
		switch next.Type {
		case op.Comma:
		case op.Semicolon, op.EndArr:
			if len(arr.Children) > 0 && len(arr.Children[0].Children) != len(row.Children) {
				return nil, syntaxError(next.Offset, "array rows have different sizes")
			}
			arr.Append(row)
			if next.Type == op.EndArr {
				return arr, nil
			}
			row = createNode(op.Row, "", next.Offset)
		case op.EOF:
			return nil, syntaxError(tok.Offset, "unbalanced brace")
		default:
			return nil, syntaxError(next.Offset, "unexpected %s in array", next)
		}
	}
}

func (m *maker) constant() (*Node, error) {
	tok, err := m.scan.Scan()
	if err != nil {
		return nil, err
	}
	var neg bool
	if tok.Type == op.Sub || tok.Type == op.Add {
		neg = tok.Type == op.Sub
		offset := tok.Offset
		if tok, err = m.scan.Scan(); err != nil {
			return nil, err
		}
		if tok.Type != op.Number {
			return nil, syntaxError(offset, "number expected after sign in array")
		}
		tok.Offset = offset
	}
	switch tok.Type {
	case op.Number:
		if neg {
			tok.Literal = "-" + tok.Literal
		}
	case op.Literal, op.Boolean, op.Error:
	default:
		return nil, syntaxError(tok.Offset, "unexpected %s in array: constant expected", tok)
	}
	return createLeaf(tok), nil
}
