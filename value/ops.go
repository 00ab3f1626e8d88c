package value

import (
	"cmp"
	"math"
	"strings"

	"golang.org/x/text/cases"
)

func Add(left, right ScalarValue) ScalarValue {
	return arith(left, right, func(x, y float64) ScalarValue {
		return checkFloat(x + y)
	})
}

func Sub(left, right ScalarValue) ScalarValue {
	return arith(left, right, func(x, y float64) ScalarValue {
		return checkFloat(x - y)
	})
}

func Mul(left, right ScalarValue) ScalarValue {
	return arith(left, right, func(x, y float64) ScalarValue {
		return checkFloat(x * y)
	})
}

func Div(left, right ScalarValue) ScalarValue {
	return arith(left, right, func(x, y float64) ScalarValue {
		if y == 0 {
			return ErrDiv0
		}
		return checkFloat(x / y)
	})
}

func Pow(left, right ScalarValue) ScalarValue {
	return arith(left, right, func(x, y float64) ScalarValue {
		if x == 0 {
			if y == 0 {
				return ErrNum
			}
			if y < 0 {
				return ErrDiv0
			}
		}
		return checkFloat(math.Pow(x, y))
	})
}

func Negate(val ScalarValue) ScalarValue {
	return Mul(Float(-1), val)
}

func Identity(val ScalarValue) ScalarValue {
	return val
}

func Percent(val ScalarValue) ScalarValue {
	return Div(val, Float(100))
}

func Concat(left, right ScalarValue) ScalarValue {
	if e, ok := FirstError(left, right); ok {
		return e
	}
	x, err := CastToText(left)
	if err != nil {
		return ErrorOf(err)
	}
	y, err := CastToText(right)
	if err != nil {
		return ErrorOf(err)
	}
	return Text(x + y)
}

func Equal(left, right ScalarValue) ScalarValue {
	return compare(left, right, func(c int) bool { return c == 0 })
}

func NotEqual(left, right ScalarValue) ScalarValue {
	return compare(left, right, func(c int) bool { return c != 0 })
}

func Less(left, right ScalarValue) ScalarValue {
	return compare(left, right, func(c int) bool { return c < 0 })
}

func LessEqual(left, right ScalarValue) ScalarValue {
	return compare(left, right, func(c int) bool { return c <= 0 })
}

func Greater(left, right ScalarValue) ScalarValue {
	return compare(left, right, func(c int) bool { return c > 0 })
}

func GreaterEqual(left, right ScalarValue) ScalarValue {
	return compare(left, right, func(c int) bool { return c >= 0 })
}

// Compare orders two non error scalars: numbers come before texts and
// texts before booleans. Texts are compared without case and a blank takes
// the zero value of the other operand.
func Compare(left, right ScalarValue) int {
	left, right = blankAs(left, right), blankAs(right, left)
	rl, rr := rank(left), rank(right)
	if rl != rr {
		return cmp.Compare(rl, rr)
	}
	switch x := left.(type) {
	case Numeric:
		y := right.(Numeric)
		return cmp.Compare(x.Number(), y.Number())
	case Text:
		fold := cases.Fold()
		return strings.Compare(fold.String(string(x)), fold.String(string(right.(Text))))
	case Boolean:
		y := right.(Boolean)
		switch {
		case x == y:
			return 0
		case !bool(x):
			return -1
		default:
			return 1
		}
	default:
		return 0
	}
}

func compare(left, right ScalarValue, accept func(int) bool) ScalarValue {
	if e, ok := FirstError(left, right); ok {
		return e
	}
	return Boolean(accept(Compare(left, right)))
}

func arith(left, right ScalarValue, do func(float64, float64) ScalarValue) ScalarValue {
	if e, ok := FirstError(left, right); ok {
		return e
	}
	x, err := CastToFloat(left)
	if err != nil {
		return ErrorOf(err)
	}
	y, err := CastToFloat(right)
	if err != nil {
		return ErrorOf(err)
	}
	return do(float64(x), float64(y))
}

func checkFloat(f float64) ScalarValue {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ErrNum
	}
	return Float(f)
}

func blankAs(val, other ScalarValue) ScalarValue {
	if !IsBlank(val) {
		return val
	}
	switch other.(type) {
	case Text:
		return Text("")
	case Boolean:
		return Boolean(false)
	default:
		return Float(0)
	}
}

func rank(val ScalarValue) int {
	switch val.(type) {
	case Numeric:
		return 0
	case Text:
		return 1
	case Boolean:
		return 2
	default:
		return 3
	}
}
