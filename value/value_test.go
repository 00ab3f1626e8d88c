package value

import (
	"testing"
	"time"

	"github.com/midbel/formulae/layout"
)

func TestArithmetic(t *testing.T) {
	tests := []struct {
		Name  string
		Do    func(ScalarValue, ScalarValue) ScalarValue
		Left  ScalarValue
		Right ScalarValue
		Want  ScalarValue
	}{
		{Name: "add", Do: Add, Left: Float(1), Right: Float(2), Want: Float(3)},
		{Name: "add-text", Do: Add, Left: Text("1.5"), Right: Float(2), Want: Float(3.5)},
		{Name: "add-bool", Do: Add, Left: Boolean(true), Right: Float(2), Want: Float(3)},
		{Name: "add-blank", Do: Add, Left: Blank{}, Right: Float(2), Want: Float(2)},
		{Name: "add-invalid", Do: Add, Left: Text("foo"), Right: Float(2), Want: ErrValue},
		{Name: "sub", Do: Sub, Left: Float(1), Right: Float(2), Want: Float(-1)},
		{Name: "mul", Do: Mul, Left: Float(3), Right: Text(" 4 "), Want: Float(12)},
		{Name: "div", Do: Div, Left: Float(1), Right: Float(4), Want: Float(0.25)},
		{Name: "div-zero", Do: Div, Left: Float(1), Right: Float(0), Want: ErrDiv0},
		{Name: "div-blank", Do: Div, Left: Float(1), Right: Blank{}, Want: ErrDiv0},
		{Name: "pow", Do: Pow, Left: Float(2), Right: Float(10), Want: Float(1024)},
		{Name: "pow-zero", Do: Pow, Left: Float(0), Right: Float(0), Want: ErrNum},
		{Name: "pow-neg", Do: Pow, Left: Float(0), Right: Float(-1), Want: ErrDiv0},
		{Name: "pow-root", Do: Pow, Left: Float(-8), Right: Float(0.5), Want: ErrNum},
		{Name: "error-left", Do: Add, Left: ErrNA, Right: ErrRef, Want: ErrNA},
		{Name: "error-right", Do: Mul, Left: Text("foo"), Right: ErrRef, Want: ErrRef},
		{Name: "concat", Do: Concat, Left: Text("a"), Right: Float(1.5), Want: Text("a1.5")},
		{Name: "concat-bool", Do: Concat, Left: Boolean(false), Right: Blank{}, Want: Text("FALSE")},
		{Name: "concat-error", Do: Concat, Left: Text("a"), Right: ErrDiv0, Want: ErrDiv0},
		{Name: "formatted", Do: Add, Left: WithPattern(1, DefaultDatePattern), Right: Float(1), Want: Float(2)},
	}
	for _, c := range tests {
		got := c.Do(c.Left, c.Right)
		if got != c.Want {
			t.Errorf("%s: result mismatched! want %s, got %s", c.Name, c.Want, got)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		Left  ScalarValue
		Right ScalarValue
		Want  int
	}{
		{Left: Float(1), Right: Float(2), Want: -1},
		{Left: Float(2), Right: Float(2), Want: 0},
		{Left: Float(100), Right: Text("1"), Want: -1},
		{Left: Text("zzz"), Right: Boolean(false), Want: -1},
		{Left: Text("abc"), Right: Text("ABC"), Want: 0},
		{Left: Text("abc"), Right: Text("abd"), Want: -1},
		{Left: Boolean(true), Right: Boolean(false), Want: 1},
		{Left: Blank{}, Right: Float(0), Want: 0},
		{Left: Blank{}, Right: Text(""), Want: 0},
		{Left: Blank{}, Right: Boolean(false), Want: 0},
		{Left: Blank{}, Right: Blank{}, Want: 0},
		{Left: WithPattern(10, DefaultDatePattern), Right: Float(10), Want: 0},
	}
	for _, c := range tests {
		if got := Compare(c.Left, c.Right); got != c.Want {
			t.Errorf("%s/%s: comparison mismatched! want %d, got %d", c.Left, c.Right, c.Want, got)
		}
	}
	if got := Less(ErrNA, Float(1)); got != ErrNA {
		t.Errorf("error not propagated! want %s, got %s", ErrNA, got)
	}
}

func TestIsRealNumber(t *testing.T) {
	tests := []struct {
		Input string
		Want  bool
	}{
		{Input: "1", Want: true},
		{Input: " 2.34 ", Want: true},
		{Input: "-1e3", Want: true},
		{Input: ".5", Want: true},
		{Input: "", Want: false},
		{Input: " ", Want: false},
		{Input: "test", Want: false},
		{Input: "Inf", Want: false},
		{Input: "NaN", Want: false},
		{Input: "0x10", Want: false},
		{Input: "1_000", Want: false},
	}
	for _, c := range tests {
		if got := IsRealNumber(c.Input); got != c.Want {
			t.Errorf("%q: want %t, got %t", c.Input, c.Want, got)
		}
	}
}

func TestBroadcast(t *testing.T) {
	var (
		row = NewArray([][]ScalarValue{{Float(1), Float(2), Float(3)}})
		col = NewArray([][]ScalarValue{{Float(10)}, {Float(20)}})
		two = NewArray([][]ScalarValue{{Float(1), Float(2)}})
	)
	tests := []struct {
		Name  string
		Left  Value
		Right Value
		Want  string
	}{
		{Name: "scalar", Left: Float(1), Right: Float(2), Want: "3"},
		{Name: "scalar-array", Left: Float(1), Right: row, Want: "{2,3,4}"},
		{Name: "array-scalar", Left: row, Right: Float(1), Want: "{2,3,4}"},
		{Name: "row-col", Left: row, Right: col, Want: "{11,12,13;21,22,23}"},
		{Name: "mismatch", Left: row, Right: two, Want: "{2,4,#N/A}"},
	}
	for _, c := range tests {
		got := Broadcast(c.Left, c.Right, Add)
		if got.String() != c.Want {
			t.Errorf("%s: result mismatched! want %s, got %s", c.Name, c.Want, got)
		}
	}
}

func TestArrayReduce(t *testing.T) {
	tests := []struct {
		Name  string
		Input Array
		Min   ScalarValue
		Max   ScalarValue
	}{
		{
			Name: "mixed",
			Input: NewArray([][]ScalarValue{
				{Float(1), Text(" "), Float(1.23), Boolean(true), Boolean(false), Blank{}},
				{Float(0), Text("100"), Text("2.34"), Text("test"), Float(-3), Blank{}},
			}),
			Min: Float(-3),
			Max: Float(100),
		},
		{
			Name: "numeric texts",
			Input: NewArray([][]ScalarValue{
				{Text("-7"), Float(1)},
				{Text(" 12 "), Text("abc")},
			}),
			Min: Float(-7),
			Max: Float(12),
		},
		{
			Name: "booleans",
			Input: NewArray([][]ScalarValue{
				{Float(-3), Blank{}},
				{Boolean(false), Boolean(true)},
			}),
			Min: Float(-3),
			Max: Float(-3),
		},
		{
			Name: "error",
			Input: NewArray([][]ScalarValue{
				{Float(1), Blank{}},
				{Float(0), ErrValue},
			}),
			Min: ErrValue,
			Max: ErrValue,
		},
		{
			Name:  "empty",
			Input: NewArray([][]ScalarValue{{Text("a"), Blank{}}}),
			Min:   Blank{},
			Max:   Blank{},
		},
	}
	for _, c := range tests {
		if got := c.Input.Min(); got != c.Min {
			t.Errorf("%s: min mismatched! want %s, got %s", c.Name, c.Min, got)
		}
		if got := c.Input.Max(); got != c.Max {
			t.Errorf("%s: max mismatched! want %s, got %s", c.Name, c.Max, got)
		}
	}
}

func TestArrayExpand(t *testing.T) {
	tests := []struct {
		Input Array
		Lines int64
		Cols  int64
		Want  string
	}{
		{Input: Scalar(Float(1)), Lines: 2, Cols: 2, Want: "{1,1;1,1}"},
		{Input: NewArray([][]ScalarValue{{Float(1), Float(2)}}), Lines: 2, Cols: 3, Want: "{1,2,#N/A;1,2,#N/A}"},
		{Input: NewArray([][]ScalarValue{{Float(1)}, {Float(2)}}), Lines: 2, Cols: 2, Want: "{1,1;2,2}"},
	}
	for _, c := range tests {
		got := c.Input.Expand(c.Lines, c.Cols)
		if got.String() != c.Want {
			t.Errorf("%s: expand mismatched! want %s, got %s", c.Input, c.Want, got)
		}
	}
}

func TestReferenceUnion(t *testing.T) {
	ref := func(str string) Reference {
		rg, err := layout.ParseRange(str)
		if err != nil {
			t.Fatalf("%s: fail to parse range: %s", str, err)
		}
		return Reference{Unit: "book", Sheet: "s1", Range: rg}
	}
	tests := []struct {
		Left  Reference
		Right Value
		Want  string
	}{
		{Left: ref("A1"), Right: ref("C3"), Want: "A1:C3"},
		{Left: ref("1:1"), Right: ref("3:4"), Want: "1:4"},
		{Left: ref("B:B"), Right: ref("A:A"), Want: "A:B"},
		{Left: ref("1:1"), Right: ref("A:A"), Want: "#REF!"},
		{Left: ref("A1"), Right: ref("B1:B4"), Want: "A1:B4"},
		{Left: ref("A1:A2"), Right: ref("C3"), Want: "A1:C3"},
		{Left: ref("B2:C3"), Right: ref("A1:B2"), Want: "A1:C3"},
		{Left: ref("A1:B2"), Right: ref("C:C"), Want: "#REF!"},
		{Left: ref("A1"), Right: ErrNA, Want: "#REF!"},
		{Left: ref("A1"), Right: Float(1), Want: "#REF!"},
		{Left: ref("A1"), Right: Reference{Unit: "book", Sheet: "s2", Range: layout.SingleCell(layout.Position{Line: 2, Column: 2})}, Want: "#REF!"},
	}
	for _, c := range tests {
		got := c.Left.Union(c.Right)
		if got.String() != c.Want {
			t.Errorf("%s:%s: union mismatched! want %s, got %s", c.Left, c.Right, c.Want, got)
		}
	}
}

func TestDateSerial(t *testing.T) {
	tests := []struct {
		Date   time.Time
		Serial float64
	}{
		{Date: time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), Serial: 1},
		{Date: time.Date(1900, 2, 28, 0, 0, 0, 0, time.UTC), Serial: 59},
		{Date: time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC), Serial: 61},
		{Date: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), Serial: 43831},
		{Date: time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC), Serial: 45351.5},
	}
	for _, c := range tests {
		if got := TimeToSerial(c.Date); got != c.Serial {
			t.Errorf("%s: serial mismatched! want %f, got %f", c.Date, c.Serial, got)
		}
		if got := SerialToTime(c.Serial); !got.Equal(c.Date) {
			t.Errorf("%f: date mismatched! want %s, got %s", c.Serial, c.Date, got)
		}
	}
}
