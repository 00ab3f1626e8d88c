package lexer

import (
	"errors"
	"fmt"

	"github.com/midbel/formulae/formula/op"
)

var ErrSyntax = errors.New("syntax error")

type ParseError struct {
	Offset  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", ErrSyntax, e.Offset, e.Message)
}

func (e *ParseError) Unwrap() error {
	return ErrSyntax
}

func syntaxError(offset int, msg string, args ...any) error {
	return &ParseError{
		Offset:  offset,
		Message: fmt.Sprintf(msg, args...),
	}
}

type Token struct {
	Literal string
	Type    op.Op
	Offset  int
}

func (t Token) String() string {
	var str string
	switch t.Type {
	case op.Invalid:
		return "<invalid>"
	case op.EOF:
		return "<eof>"
	case op.Number:
		str = "number"
	case op.Literal:
		str = "literal"
	case op.Boolean:
		str = "boolean"
	case op.Error:
		str = "error"
	case op.Reference:
		str = "reference"
	case op.Ident:
		str = "identifier"
	case op.Call:
		str = "function"
	case op.Comma:
		return "<comma>"
	case op.Semicolon:
		return "<semicolon>"
	case op.BegGrp:
		return "<beg-group>"
	case op.EndGrp:
		return "<end-group>"
	case op.BegArr:
		return "<beg-array>"
	case op.EndArr:
		return "<end-array>"
	default:
		if sym := op.Symbol(t.Type); sym != "" {
			return fmt.Sprintf("<%s>", sym)
		}
		return "<unknown>"
	}
	return fmt.Sprintf("%s(%s)", str, t.Literal)
}
