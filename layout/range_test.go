package layout

import (
	"testing"
)

func mustRange(t *testing.T, str string) Range {
	t.Helper()
	rg, err := ParseRange(str)
	if err != nil {
		t.Fatalf("%s: fail to parse range: %s", str, err)
	}
	return rg
}

func TestRangeUnion(t *testing.T) {
	tests := []struct {
		Left  string
		Right string
		Want  string
	}{
		{Left: "A1", Right: "C3", Want: "A1:C3"},
		{Left: "C1", Right: "A3", Want: "A1:C3"},
		{Left: "B2:C3", Right: "A1", Want: "A1:C3"},
		{Left: "1:2", Right: "5:5", Want: "1:5"},
		{Left: "B:B", Right: "D:E", Want: "B:E"},
	}
	for _, c := range tests {
		got := mustRange(t, c.Left).Union(mustRange(t, c.Right))
		if got.String() != c.Want {
			t.Errorf("%s:%s: union mismatched! want %s, got %s", c.Left, c.Right, c.Want, got)
		}
	}
}

func TestRangeIntersects(t *testing.T) {
	tests := []struct {
		Left  string
		Right string
		Want  bool
	}{
		{Left: "A1:B2", Right: "B2:C3", Want: true},
		{Left: "A1:B2", Right: "C3:D4", Want: false},
		{Left: "A:A", Right: "A10", Want: true},
		{Left: "2:2", Right: "A1:Z1", Want: false},
		{Left: "2:2", Right: "B:B", Want: true},
	}
	for _, c := range tests {
		got := mustRange(t, c.Left).Intersects(mustRange(t, c.Right))
		if got != c.Want {
			t.Errorf("%s/%s: intersection mismatched! want %t, got %t", c.Left, c.Right, c.Want, got)
		}
	}
}

func TestRangeBound(t *testing.T) {
	dim := Dimension{Lines: 10, Columns: 4}
	tests := []struct {
		Input string
		Want  string
	}{
		{Input: "B:C", Want: "B1:C10"},
		{Input: "2:3", Want: "A2:D3"},
		{Input: "A1:B2", Want: "A1:B2"},
	}
	for _, c := range tests {
		got := mustRange(t, c.Input).Bound(dim)
		if got.String() != c.Want {
			t.Errorf("%s: bound mismatched! want %s, got %s", c.Input, c.Want, got)
		}
	}
}

func TestColumnName(t *testing.T) {
	tests := []struct {
		Index int64
		Want  string
	}{
		{Index: 1, Want: "A"},
		{Index: 26, Want: "Z"},
		{Index: 27, Want: "AA"},
		{Index: 702, Want: "ZZ"},
		{Index: 703, Want: "AAA"},
		{Index: MaxColumns, Want: "XFD"},
	}
	for _, c := range tests {
		if got := ColumnName(c.Index); got != c.Want {
			t.Errorf("%d: column name mismatched! want %s, got %s", c.Index, c.Want, got)
		}
		ix, _ := ParseIndex(c.Want)
		if ix != c.Index {
			t.Errorf("%s: index mismatched! want %d, got %d", c.Want, c.Index, ix)
		}
	}
}
