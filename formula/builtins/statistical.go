package builtins

import (
	"math"

	"github.com/midbel/formulae/value"
)

func Min(args []value.Value) (value.Value, error) {
	return reduce(args, math.Inf(1), value.Array.Min, math.Min)
}

func Max(args []value.Value) (value.Value, error) {
	return reduce(args, math.Inf(-1), value.Array.Max, math.Max)
}

// reduce implements MIN and MAX: scalar texts must be numbers, scalar
// booleans are coerced, arrays are reduced on their own and blanks are
// skipped. Without any number the result is 0.
func reduce(args []value.Value, seed float64, arr func(value.Array) value.ScalarValue, do func(float64, float64) float64) (value.Value, error) {
	if len(args) == 0 {
		return value.ErrNA, nil
	}
	var (
		acc   = seed
		found bool
	)
	for _, a := range args {
		var v value.Value = a
		if x, ok := v.(value.Array); ok {
			v = arr(x)
		}
		switch x := v.(type) {
		case value.Error:
			return x, nil
		case value.Blank:
			continue
		case value.ScalarValue:
			f, err := numeric(x)
			if err != nil {
				return err, nil
			}
			acc = do(acc, f)
			found = true
		default:
			return value.ErrValue, nil
		}
	}
	if !found {
		return value.Float(0), nil
	}
	return value.Float(acc), nil
}

func Sum(args []value.Value) (value.Value, error) {
	list, err := collector{}.collect(args)
	if err != nil {
		return err, nil
	}
	var total float64
	for _, f := range list {
		total += f
	}
	return value.Float(total), nil
}

func Avg(args []value.Value) (value.Value, error) {
	list, err := collector{}.collect(args)
	if err != nil {
		return err, nil
	}
	if len(list) == 0 {
		return value.ErrDiv0, nil
	}
	var total float64
	for _, f := range list {
		total += f
	}
	return value.Float(total / float64(len(list))), nil
}

// Count counts the numbers found in its arguments. Errors and texts that do
// not look like a number are not counted.
func Count(args []value.Value) (value.Value, error) {
	var count int
	for _, a := range args {
		switch a := a.(type) {
		case value.Array:
			for v := range a.All() {
				if value.IsNumber(v) {
					count++
				}
			}
		case value.Numeric, value.Boolean:
			count++
		case value.Text:
			if value.IsRealNumber(string(a)) {
				count++
			}
		}
	}
	return value.Float(count), nil
}

func CountA(args []value.Value) (value.Value, error) {
	var count int
	for _, a := range args {
		switch a := a.(type) {
		case value.Array:
			for v := range a.All() {
				if !value.IsBlank(v) {
					count++
				}
			}
		case value.Blank:
		default:
			count++
		}
	}
	return value.Float(count), nil
}

// VarPA computes the population variance of its arguments. Texts found in
// arrays count as 0 and booleans as 1 or 0.
func VarPA(args []value.Value) (value.Value, error) {
	c := collector{
		arrayText:   true,
		arrayBool:   true,
		scalarBlank: true,
	}
	list, err := c.collect(args)
	if err != nil {
		return err, nil
	}
	if len(list) == 0 {
		return value.ErrDiv0, nil
	}
	var mean float64
	for _, f := range list {
		mean += f
	}
	mean /= float64(len(list))

	var sum float64
	for _, f := range list {
		sum += (f - mean) * (f - mean)
	}
	return value.Float(sum / float64(len(list))), nil
}
