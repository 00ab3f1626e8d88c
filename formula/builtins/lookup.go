package builtins

import (
	"github.com/midbel/formulae/value"
)

func Row(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, ErrArity
	}
	if e, ok := args[0].(value.Error); ok {
		return e, nil
	}
	ref, ok := args[0].(value.Reference)
	if !ok {
		return value.ErrValue, nil
	}
	if ref.IsColumn() {
		return value.Float(1), nil
	}
	return value.Float(ref.Range.Starts.Line), nil
}

func Column(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, ErrArity
	}
	if e, ok := args[0].(value.Error); ok {
		return e, nil
	}
	ref, ok := args[0].(value.Reference)
	if !ok {
		return value.ErrValue, nil
	}
	if ref.IsRow() {
		return value.Float(1), nil
	}
	return value.Float(ref.Range.Starts.Column), nil
}
