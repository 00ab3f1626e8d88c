package builtins

import (
	"strings"
	"unicode/utf8"

	"github.com/midbel/formulae/value"
)

func Concatenate(args []value.Value) (value.Value, error) {
	res := elementwise(args, func(list []value.ScalarValue) value.ScalarValue {
		var str strings.Builder
		for _, v := range list {
			t, err := value.CastToText(v)
			if err != nil {
				return value.ErrorOf(err)
			}
			str.WriteString(string(t))
		}
		return value.Text(str.String())
	})
	return res, nil
}

func Len(args []value.Value) (value.Value, error) {
	return unary(args, func(v value.ScalarValue) value.ScalarValue {
		t, err := value.CastToText(v)
		if err != nil {
			return value.ErrorOf(err)
		}
		return value.Float(utf8.RuneCountInString(string(t)))
	})
}

func Upper(args []value.Value) (value.Value, error) {
	return unary(args, func(v value.ScalarValue) value.ScalarValue {
		t, err := value.CastToText(v)
		if err != nil {
			return value.ErrorOf(err)
		}
		return value.Text(strings.ToUpper(string(t)))
	})
}

func Lower(args []value.Value) (value.Value, error) {
	return unary(args, func(v value.ScalarValue) value.ScalarValue {
		t, err := value.CastToText(v)
		if err != nil {
			return value.ErrorOf(err)
		}
		return value.Text(strings.ToLower(string(t)))
	})
}
