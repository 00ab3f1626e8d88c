package value

import (
	"iter"
	"math"
	"strings"

	"github.com/midbel/formulae/layout"
)

// Array is a rectangular block of scalars. Origin, Unit and Sheet are set
// when the array comes from a reference.
type Array struct {
	Data   [][]ScalarValue
	Origin layout.Position
	Unit   string
	Sheet  string
}

func NewArray(data [][]ScalarValue) Array {
	return Array{
		Data: data,
	}
}

func Scalar(val ScalarValue) Array {
	return NewArray([][]ScalarValue{{val}})
}

func (Array) Type() string {
	return TypeArray
}

func (Array) Kind() ValueKind {
	return KindArray
}

func (a Array) String() string {
	var str strings.Builder
	str.WriteString("{")
	for i, row := range a.Data {
		if i > 0 {
			str.WriteString(";")
		}
		for j, v := range row {
			if j > 0 {
				str.WriteString(",")
			}
			if t, ok := v.(Text); ok {
				str.WriteString("\"")
				str.WriteString(strings.ReplaceAll(string(t), "\"", "\"\""))
				str.WriteString("\"")
				continue
			}
			str.WriteString(v.String())
		}
	}
	str.WriteString("}")
	return str.String()
}

func (a Array) Dimension() layout.Dimension {
	var (
		d layout.Dimension
		n = len(a.Data)
	)
	if n > 0 {
		d.Lines = int64(n)
		d.Columns = int64(len(a.Data[0]))
	}
	return d
}

// At returns the value at row and col (0 based). Out of bounds positions
// and missing cells are blank.
func (a Array) At(row, col int) ScalarValue {
	if row < 0 || row >= len(a.Data) {
		return Blank{}
	}
	v := a.Data[row]
	if col < 0 || col >= len(v) || v[col] == nil {
		return Blank{}
	}
	return v[col]
}

func (a Array) All() iter.Seq[ScalarValue] {
	return func(yield func(ScalarValue) bool) {
		dim := a.Dimension()
		for i := range dim.Lines {
			for j := range dim.Columns {
				if !yield(a.At(int(i), int(j))) {
					return
				}
			}
		}
	}
}

// Map returns a new array of the same shape.
func (a Array) Map(do func(ScalarValue, int, int) ScalarValue) Array {
	var (
		dim  = a.Dimension()
		data = make([][]ScalarValue, dim.Lines)
	)
	for i := range data {
		data[i] = make([]ScalarValue, dim.Columns)
		for j := range data[i] {
			data[i][j] = do(a.At(i, j), i, j)
		}
	}
	x := NewArray(data)
	x.Origin, x.Unit, x.Sheet = a.Origin, a.Unit, a.Sheet
	return x
}

// Expand stretches the array to lines x columns. A single row or a single
// column is repeated, other positions out of the original bounds hold #N/A.
func (a Array) Expand(lines, columns int64) Array {
	var (
		dim  = a.Dimension()
		data = make([][]ScalarValue, lines)
	)
	for i := range data {
		data[i] = make([]ScalarValue, columns)
		for j := range data[i] {
			data[i][j] = a.pick(dim, int64(i), int64(j))
		}
	}
	return NewArray(data)
}

func (a Array) pick(dim layout.Dimension, row, col int64) ScalarValue {
	if dim.Lines == 1 {
		row = 0
	}
	if dim.Columns == 1 {
		col = 0
	}
	if row >= dim.Lines || col >= dim.Columns {
		return ErrNA
	}
	return a.At(int(row), int(col))
}

// Unwrap returns the single value of a 1x1 array and the array itself
// otherwise.
func (a Array) Unwrap() Value {
	dim := a.Dimension()
	if dim.Lines == 1 && dim.Columns == 1 {
		return a.At(0, 0)
	}
	return a
}

// Min returns the smallest number of the array. Texts holding a number are
// counted, other texts, booleans and blanks are ignored, the first error
// found is returned. An array without numbers
// gives a blank.
func (a Array) Min() ScalarValue {
	return a.reduce(math.Inf(1), math.Min)
}

// Max returns the greatest number of the array with the same rules as Min.
func (a Array) Max() ScalarValue {
	return a.reduce(math.Inf(-1), math.Max)
}

func (a Array) reduce(seed float64, do func(float64, float64) float64) ScalarValue {
	var (
		acc   = seed
		found bool
	)
	for v := range a.All() {
		switch v := v.(type) {
		case Error:
			return v
		case Text:
			if n, ok := parseNumber(string(v)); ok {
				acc = do(acc, n)
				found = true
			}
		case Numeric:
			acc = do(acc, v.Number())
			found = true
		}
	}
	if !found {
		return Blank{}
	}
	return Float(acc)
}

// Broadcast applies do position by position over left and right after
// expanding both operands to their common shape.
func Broadcast(left, right Value, do func(ScalarValue, ScalarValue) ScalarValue) Value {
	ls, lok := left.(ScalarValue)
	rs, rok := right.(ScalarValue)
	if lok && rok {
		return do(ls, rs)
	}
	la, err := CastToArray(left)
	if err != nil {
		return ErrValue
	}
	ra, err := CastToArray(right)
	if err != nil {
		return ErrValue
	}
	var (
		ldim = la.Dimension()
		rdim = ra.Dimension()
		dim  = ldim.Max(rdim)
		data = make([][]ScalarValue, dim.Lines)
	)
	for i := range data {
		data[i] = make([]ScalarValue, dim.Columns)
		for j := range data[i] {
			var (
				x = la.pick(ldim, int64(i), int64(j))
				y = ra.pick(rdim, int64(i), int64(j))
			)
			data[i][j] = do(x, y)
		}
	}
	return NewArray(data)
}

// Unary applies do to a scalar or to every value of an array.
func Unary(val Value, do func(ScalarValue) ScalarValue) Value {
	switch v := val.(type) {
	case ScalarValue:
		return do(v)
	case Array:
		return v.Map(func(s ScalarValue, _, _ int) ScalarValue {
			return do(s)
		})
	default:
		return ErrValue
	}
}
