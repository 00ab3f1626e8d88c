package builtins

import (
	"github.com/midbel/formulae/value"
)

// If returns its second argument when the condition is true and the third
// one, FALSE when missing, otherwise.
func If(args []value.Value) (value.Value, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, ErrArity
	}
	if len(args) == 2 {
		args = append(args[:2:2], value.Boolean(false))
	}
	if cond, ok := args[0].(value.ScalarValue); ok {
		if value.IsError(cond) {
			return cond, nil
		}
		b, err := value.CastToBool(cond)
		if err != nil {
			return value.ErrorOf(err), nil
		}
		if b {
			return branch(args[1]), nil
		}
		return branch(args[2]), nil
	}
	res := elementwise(args, func(list []value.ScalarValue) value.ScalarValue {
		if value.IsError(list[0]) {
			return list[0]
		}
		b, err := value.CastToBool(list[0])
		if err != nil {
			return value.ErrorOf(err)
		}
		if b {
			return branch(list[1]).(value.ScalarValue)
		}
		return branch(list[2]).(value.ScalarValue)
	})
	return res, nil
}

// branch gives the value of the selected branch of IF. An empty branch is 0.
func branch(val value.Value) value.Value {
	if _, ok := val.(value.Blank); ok {
		return value.Float(0)
	}
	return val
}
