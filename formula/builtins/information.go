package builtins

import (
	"github.com/midbel/formulae/value"
)

func IsNumber(args []value.Value) (value.Value, error) {
	return unary(args, func(v value.ScalarValue) value.ScalarValue {
		return value.Boolean(value.IsNumber(v))
	})
}

func IsText(args []value.Value) (value.Value, error) {
	return unary(args, func(v value.ScalarValue) value.ScalarValue {
		return value.Boolean(value.IsText(v))
	})
}

func IsBlank(args []value.Value) (value.Value, error) {
	return unary(args, func(v value.ScalarValue) value.ScalarValue {
		return value.Boolean(value.IsBlank(v))
	})
}

func IsError(args []value.Value) (value.Value, error) {
	return unary(args, func(v value.ScalarValue) value.ScalarValue {
		return value.Boolean(value.IsError(v))
	})
}

// TypeOf returns the numeric code of the type of its argument: 1 for
// numbers and blanks, 2 for texts, 4 for booleans, 16 for errors and 64
// for arrays.
func TypeOf(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, ErrArity
	}
	var code float64
	switch args[0].(type) {
	case value.Array:
		code = 64
	case value.Error:
		code = 16
	case value.Boolean:
		code = 4
	case value.Text:
		code = 2
	default:
		code = 1
	}
	return value.Float(code), nil
}
