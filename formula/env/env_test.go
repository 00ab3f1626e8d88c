package env

import (
	"errors"
	"reflect"
	"testing"

	"github.com/midbel/formulae/layout"
	"github.com/midbel/formulae/value"
)

type fakeSource struct {
	cells  map[layout.Position]value.ScalarValue
	merges []layout.Range
}

func createSource() fakeSource {
	merged, _ := layout.ParseRange("B2:C3")
	return fakeSource{
		cells: map[layout.Position]value.ScalarValue{
			{Line: 1, Column: 1}: value.Float(1),
			{Line: 1, Column: 2}: value.Text("foo"),
			{Line: 2, Column: 1}: value.Boolean(true),
			{Line: 2, Column: 2}: value.Float(42),
			{Line: 3, Column: 1}: value.ErrDiv0,
		},
		merges: []layout.Range{merged},
	}
}

func (s fakeSource) CellValue(unit, sheet string, line, column int64) (value.ScalarValue, error) {
	if unit != "book" || sheet != "sheet1" {
		return nil, errors.New("unknown sheet")
	}
	return s.cells[layout.Position{Line: line, Column: column}], nil
}

func (s fakeSource) MergedRange(_, _ string, line, column int64) (layout.Range, bool) {
	pos := layout.Position{Line: line, Column: column}
	for _, rg := range s.merges {
		if rg.Contains(pos) {
			return rg, true
		}
	}
	return layout.Range{}, false
}

func (s fakeSource) ResolveSheet(unit, name string) (string, bool) {
	if unit == "book" && (name == "Sheet1" || name == "sheet1") {
		return "sheet1", true
	}
	return "", false
}

func (s fakeSource) ResolveUnit(name string) (string, bool) {
	return "book", name == "Book"
}

func (s fakeSource) Dimension(_, _ string) (layout.Dimension, error) {
	return layout.Dimension{Lines: 3, Columns: 3}, nil
}

func mustAddress(t *testing.T, str string) layout.Address {
	t.Helper()
	addr, err := layout.ParseAddress(str)
	if err != nil {
		t.Fatalf("%s: fail to parse address: %s", str, err)
	}
	return addr
}

func TestReference(t *testing.T) {
	env := New(createSource(), "book", "sheet1")
	tests := []struct {
		Addr string
		Fail bool
	}{
		{Addr: "A1"},
		{Addr: "Sheet1!A1:B2"},
		{Addr: "[Book]Sheet1!C3"},
		{Addr: "Other!A1", Fail: true},
		{Addr: "[Unknown]Sheet1!A1", Fail: true},
	}
	for _, c := range tests {
		got := env.Reference(mustAddress(t, c.Addr))
		if c.Fail {
			if got != value.ErrRef {
				t.Errorf("%s: want %s, got %s", c.Addr, value.ErrRef, got)
			}
			continue
		}
		ref, ok := got.(value.Reference)
		if !ok {
			t.Errorf("%s: reference expected, got %s", c.Addr, got)
			continue
		}
		if ref.Unit != "book" || ref.Sheet != "sheet1" {
			t.Errorf("%s: reference not bound to sheet1 (%s/%s)", c.Addr, ref.Unit, ref.Sheet)
		}
	}
}

func TestMaterialize(t *testing.T) {
	env := New(createSource(), "book", "sheet1")
	tests := []struct {
		Addr string
		Want value.Value
	}{
		{
			Addr: "A1",
			Want: value.Float(1),
		},
		{
			Addr: "B1",
			Want: value.Text("foo"),
		},
		{
			Addr: "C3",
			Want: value.Float(42),
		},
		{
			Addr: "D4",
			Want: value.Blank{},
		},
		{
			Addr: "A1:B2",
			Want: value.NewArray([][]value.ScalarValue{
				{value.Float(1), value.Text("foo")},
				{value.Boolean(true), value.Float(42)},
			}),
		},
		{
			Addr: "B2:C2",
			Want: value.NewArray([][]value.ScalarValue{
				{value.Float(42), value.Blank{}},
			}),
		},
		{
			Addr: "A:A",
			Want: value.NewArray([][]value.ScalarValue{
				{value.Float(1)},
				{value.Boolean(true)},
				{value.ErrDiv0},
			}),
		},
	}
	for _, c := range tests {
		ref := env.Reference(mustAddress(t, c.Addr))
		got := env.Deref(ref)
		if arr, ok := got.(value.Array); ok {
			got = value.NewArray(arr.Data)
		}
		if !reflect.DeepEqual(got, c.Want) {
			t.Errorf("%s: values mismatched! want %s, got %s", c.Addr, c.Want, got)
		}
	}
}

func TestMaterializeOrigin(t *testing.T) {
	env := New(createSource(), "book", "sheet1")
	ref := env.Reference(mustAddress(t, "2:3")).(value.Reference)
	arr, ok := env.Materialize(ref).(value.Array)
	if !ok {
		t.Fatalf("array expected")
	}
	want := layout.Position{Line: 2, Column: 1}
	if !arr.Origin.Equal(want) {
		t.Errorf("origin mismatched! want %s, got %s", want, arr.Origin)
	}
	if dim := arr.Dimension(); dim.Lines != 2 || dim.Columns != 3 {
		t.Errorf("dimension mismatched! want 2x3, got %dx%d", dim.Lines, dim.Columns)
	}
}

func TestMaterializeWithoutSource(t *testing.T) {
	env := Empty()
	ref := env.Reference(mustAddress(t, "A1"))
	if got := env.Deref(ref); got != value.ErrRef {
		t.Errorf("want %s, got %s", value.ErrRef, got)
	}
	if got := env.Reference(mustAddress(t, "Sheet1!A1")); got != value.ErrRef {
		t.Errorf("want %s, got %s", value.ErrRef, got)
	}
}

func TestResolve(t *testing.T) {
	parent := Empty()
	parent.Define("Rate", value.Float(0.2))

	env := Enclosed(parent)
	env.Define("total", value.Float(100))

	if v, err := env.Resolve("RATE"); err != nil || v != value.Float(0.2) {
		t.Errorf("rate: want 0.2, got %v (%v)", v, err)
	}
	if v, err := env.Resolve("Total"); err != nil || v != value.Float(100) {
		t.Errorf("total: want 100, got %v (%v)", v, err)
	}
	if _, err := env.Resolve("missing"); !errors.Is(err, ErrUndefined) {
		t.Errorf("missing: want %s, got %v", ErrUndefined, err)
	}
}
