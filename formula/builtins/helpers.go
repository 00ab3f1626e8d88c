package builtins

import (
	"github.com/midbel/formulae/layout"
	"github.com/midbel/formulae/value"
)

// elementwise calls do once per position after expanding every argument to
// the shape made of the largest line and column counts of the array
// arguments. Without array arguments do is called once with the scalars.
// A scalar error argument is returned as is.
func elementwise(args []value.Value, do func([]value.ScalarValue) value.ScalarValue) value.Value {
	var (
		dim    layout.Dimension
		arrays bool
	)
	for _, a := range args {
		switch a := a.(type) {
		case value.Error:
			return a
		case value.Array:
			dim = dim.Max(a.Dimension())
			arrays = true
		case value.ScalarValue:
		default:
			return value.ErrValue
		}
	}
	if !arrays {
		list := make([]value.ScalarValue, len(args))
		for i := range args {
			list[i] = args[i].(value.ScalarValue)
		}
		return do(list)
	}
	expanded := make([]value.Array, len(args))
	for i := range args {
		arr, _ := value.CastToArray(args[i])
		expanded[i] = arr.Expand(dim.Lines, dim.Columns)
	}
	data := make([][]value.ScalarValue, dim.Lines)
	for i := range data {
		data[i] = make([]value.ScalarValue, dim.Columns)
		for j := range data[i] {
			list := make([]value.ScalarValue, len(expanded))
			for k := range expanded {
				list[k] = expanded[k].At(i, j)
			}
			data[i][j] = do(list)
		}
	}
	return value.NewArray(data)
}

func unary(args []value.Value, do func(value.ScalarValue) value.ScalarValue) (value.Value, error) {
	if len(args) != 1 {
		return nil, ErrArity
	}
	return value.Unary(args[0], do), nil
}

// numeric converts a scalar argument where a number is required. Texts
// must look like a number, booleans count as 1 or 0 and blanks as 0.
func numeric(v value.ScalarValue) (float64, value.ScalarValue) {
	if v, ok := v.(value.Error); ok {
		return 0, v
	}
	f, err := value.CastToFloat(v)
	if err != nil {
		return 0, value.ErrorOf(err)
	}
	return float64(f), nil
}

// collector gathers the numbers of the arguments given to an aggregate.
//
// Scalar arguments follow the numeric coercion: texts must look like a
// number and booleans count as 1 or 0. Values found inside arrays are
// numbers only unless the options say otherwise. Blanks are skipped.
type collector struct {
	arrayText   bool
	arrayBool   bool
	scalarBlank bool
}

func (c collector) collect(args []value.Value) ([]float64, value.Value) {
	var list []float64
	for _, a := range args {
		switch a := a.(type) {
		case value.Array:
			for v := range a.All() {
				switch v := v.(type) {
				case value.Error:
					return nil, v
				case value.Numeric:
					list = append(list, v.Number())
				case value.Text:
					if c.arrayText {
						list = append(list, 0)
					}
				case value.Boolean:
					if c.arrayBool {
						list = append(list, boolToFloat(v))
					}
				}
			}
		case value.Blank:
			if c.scalarBlank {
				list = append(list, 0)
			}
		case value.ScalarValue:
			f, err := numeric(a)
			if err != nil {
				return nil, err
			}
			list = append(list, f)
		default:
			return nil, value.ErrValue
		}
	}
	return list, nil
}

func boolToFloat(b value.Boolean) float64 {
	if b {
		return 1
	}
	return 0
}
