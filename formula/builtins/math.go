package builtins

import (
	"math"

	"github.com/midbel/formulae/value"
)

func Abs(args []value.Value) (value.Value, error) {
	return unary(args, func(v value.ScalarValue) value.ScalarValue {
		f, err := numeric(v)
		if err != nil {
			return err
		}
		return value.Float(math.Abs(f))
	})
}

func Sqrt(args []value.Value) (value.Value, error) {
	return unary(args, func(v value.ScalarValue) value.ScalarValue {
		f, err := numeric(v)
		if err != nil {
			return err
		}
		if f < 0 {
			return value.ErrNum
		}
		return value.Float(math.Sqrt(f))
	})
}

// Round rounds half away from zero. A negative number of digits rounds on
// the left of the decimal point.
func Round(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, ErrArity
	}
	res := elementwise(args, func(list []value.ScalarValue) value.ScalarValue {
		return binaryNumeric(list, func(x, digits float64) value.ScalarValue {
			digits = math.Trunc(digits)
			if digits < 0 {
				scale := math.Pow(10, -digits)
				return value.Float(math.Round(x/scale) * scale)
			}
			scale := math.Pow(10, digits)
			return value.Float(math.Round(x*scale) / scale)
		})
	})
	return res, nil
}

func Floor(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, ErrArity
	}
	res := elementwise(args, func(list []value.ScalarValue) value.ScalarValue {
		return binaryNumeric(list, func(x, step float64) value.ScalarValue {
			return multiple(x, step, math.Floor)
		})
	})
	return res, nil
}

func Ceil(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, ErrArity
	}
	res := elementwise(args, func(list []value.ScalarValue) value.ScalarValue {
		return binaryNumeric(list, func(x, step float64) value.ScalarValue {
			return multiple(x, step, math.Ceil)
		})
	})
	return res, nil
}

func multiple(x, step float64, do func(float64) float64) value.ScalarValue {
	switch {
	case step == 0:
		if x == 0 {
			return value.Float(0)
		}
		return value.ErrDiv0
	case x > 0 && step < 0:
		return value.ErrNum
	}
	return value.Float(do(x/step) * step)
}

func binaryNumeric(list []value.ScalarValue, do func(float64, float64) value.ScalarValue) value.ScalarValue {
	if e, ok := value.FirstError(list[0], list[1]); ok {
		return e
	}
	x, err := numeric(list[0])
	if err != nil {
		return err
	}
	y, err := numeric(list[1])
	if err != nil {
		return err
	}
	return do(x, y)
}
