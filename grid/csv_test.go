package grid

import (
	"reflect"
	"strings"
	"testing"

	"github.com/midbel/formulae/layout"
	"github.com/midbel/formulae/value"
)

func TestLoadCSV(t *testing.T) {
	const data = "name,qty,price,ok\nfoo,2,1.5,true\n\"bar, baz\",,#N/A,FALSE\n"

	store, err := LoadCSV(strings.NewReader(data), "orders", 0)
	if err != nil {
		t.Fatalf("fail to load csv: %s", err)
	}
	unit, ok := store.ResolveUnit("")
	if !ok || unit != "orders" {
		t.Fatalf("workbook mismatched! want orders, got %s", unit)
	}
	sheet, ok := store.ResolveSheet(unit, "")
	if !ok || sheet != "orders" {
		t.Fatalf("sheet mismatched! want orders, got %s", sheet)
	}
	tests := []struct {
		Addr string
		Want value.ScalarValue
	}{
		{Addr: "A1", Want: value.Text("name")},
		{Addr: "B2", Want: value.Float(2)},
		{Addr: "C2", Want: value.Float(1.5)},
		{Addr: "D2", Want: value.Boolean(true)},
		{Addr: "A3", Want: value.Text("bar, baz")},
		{Addr: "B3", Want: value.Blank{}},
		{Addr: "C3", Want: value.ErrNA},
		{Addr: "D3", Want: value.Boolean(false)},
	}
	for _, c := range tests {
		pos, _ := layout.ParsePosition(c.Addr)
		got, err := store.CellValue(unit, sheet, pos.Line, pos.Column)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", c.Addr, err)
			continue
		}
		if !reflect.DeepEqual(got, c.Want) {
			t.Errorf("%s: value mismatched! want %v, got %v", c.Addr, c.Want, got)
		}
	}
	dim, _ := store.Dimension(unit, sheet)
	if want := (layout.Dimension{Lines: 3, Columns: 4}); dim != want {
		t.Errorf("dimension mismatched! want %+v, got %+v", want, dim)
	}
}

func TestLoadCSVSeparator(t *testing.T) {
	store, err := LoadCSV(strings.NewReader("1;2\n3;4\n"), "data", ';')
	if err != nil {
		t.Fatalf("fail to load csv: %s", err)
	}
	got, err := store.CellValue("data", "data", 2, 2)
	if err != nil || !reflect.DeepEqual(got, value.Float(4)) {
		t.Errorf("B2 mismatched! want 4, got %v (%v)", got, err)
	}
	if _, err := LoadCSV(strings.NewReader("\"unterminated\n"), "bad", 0); err == nil {
		t.Errorf("loading invalid csv should fail")
	}
}
