package grid

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/midbel/formulae/formula/eval"
	"github.com/midbel/formulae/layout"
	"github.com/midbel/formulae/value"
)

const sample = `
workbooks:
  - name: Budget
    active: Summary
    names:
      rate: "=0.5"
      amounts: "=Data!A1:A3"
    sheets:
      - name: Data
        names:
          half: "=rate/2"
          top: "=MAX(A1:A3)"
        cells:
          A1: 10
          A2: 20.5
          A3: "30"
          B1: true
          B2: "#N/A"
          B3: ~
      - name: Summary
        merges: [A1:B2]
        cells:
          A1: total
          C3: 1
  - name: Other
    sheets:
      - name: Sheet1
        cells:
          A1: 100
`

func loadSample(t *testing.T) *Store {
	t.Helper()
	store, err := Load(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("fail to load workbooks: %s", err)
	}
	return store
}

func TestLoad(t *testing.T) {
	store := loadSample(t)
	tests := []struct {
		Book  string
		Sheet string
		Addr  string
		Want  value.ScalarValue
	}{
		{Book: "Budget", Sheet: "Data", Addr: "A1", Want: value.Float(10)},
		{Book: "Budget", Sheet: "Data", Addr: "A2", Want: value.Float(20.5)},
		{Book: "Budget", Sheet: "Data", Addr: "A3", Want: value.Text("30")},
		{Book: "Budget", Sheet: "Data", Addr: "B1", Want: value.Boolean(true)},
		{Book: "Budget", Sheet: "Data", Addr: "B2", Want: value.ErrNA},
		{Book: "Budget", Sheet: "Data", Addr: "B3", Want: value.Blank{}},
		{Book: "Budget", Sheet: "Data", Addr: "Z10", Want: value.Blank{}},
		{Book: "budget", Sheet: "summary", Addr: "A1", Want: value.Text("total")},
		{Book: "Other", Sheet: "SHEET1", Addr: "A1", Want: value.Float(100)},
	}
	for _, c := range tests {
		book, err := store.Workbook(c.Book)
		if err != nil {
			t.Errorf("%s: workbook not found: %s", c.Book, err)
			continue
		}
		sh, err := book.Sheet(c.Sheet)
		if err != nil {
			t.Errorf("%s: sheet not found: %s", c.Sheet, err)
			continue
		}
		pos, _ := layout.ParsePosition(c.Addr)
		got, err := sh.Value(pos)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", c.Addr, err)
			continue
		}
		if !reflect.DeepEqual(got, c.Want) {
			t.Errorf("%s!%s: value mismatched! want %v, got %v", c.Sheet, c.Addr, c.Want, got)
		}
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []string{
		"",
		"workbooks: []",
		"workbooks:\n  - sheets: []",
		"workbooks:\n  - name: B\n    sheets:\n      - name: S\n        cells:\n          A0: 1",
		"workbooks:\n  - name: B\n    sheets:\n      - name: S\n        cells:\n          A1: [1, 2]",
		"workbooks:\n  - name: B\n    sheets:\n      - name: S\n        merges: [A1:B2, B2:C3]",
		"workbooks:\n  - name: B\n    sheets:\n      - name: S\n      - name: s",
		"workbooks:\n  - name: B\n    active: Missing\n    sheets:\n      - name: S",
		"workbooks:\n  - name: B\n    sheets:\n      - name: S\n  - name: b\n    sheets:\n      - name: S",
	}
	for _, str := range tests {
		if _, err := Load(strings.NewReader(str)); err == nil {
			t.Errorf("%q: expected error loading document", str)
		}
	}
}

func TestSource(t *testing.T) {
	store := loadSample(t)

	unit, ok := store.ResolveUnit("")
	if !ok || unit != "budget" {
		t.Fatalf("default workbook mismatched! want budget, got %s", unit)
	}
	sheet, ok := store.ResolveSheet(unit, "")
	if !ok || sheet != "summary" {
		t.Fatalf("active sheet mismatched! want summary, got %s", sheet)
	}
	if _, ok := store.ResolveSheet(unit, "Missing"); ok {
		t.Errorf("unknown sheet should not be resolved")
	}
	if _, ok := store.ResolveUnit("Missing"); ok {
		t.Errorf("unknown workbook should not be resolved")
	}

	dim, err := store.Dimension(unit, sheet)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if want := (layout.Dimension{Lines: 3, Columns: 3}); dim != want {
		t.Errorf("dimension mismatched! want %+v, got %+v", want, dim)
	}
	rg, ok := store.MergedRange(unit, sheet, 2, 2)
	if !ok || rg.String() != "A1:B2" {
		t.Errorf("merged range mismatched! want A1:B2, got %s", rg)
	}
	if _, ok := store.MergedRange(unit, sheet, 3, 3); ok {
		t.Errorf("C3 should not be merged")
	}
	if _, err := store.CellValue(unit, "missing", 1, 1); !errors.Is(err, ErrFound) {
		t.Errorf("reading unknown sheet should fail with ErrFound, got %v", err)
	}
}

func TestEvaluate(t *testing.T) {
	store := loadSample(t)
	book, _ := store.Workbook("")
	sheet, err := book.Sheet("Data")
	if err != nil {
		t.Fatalf("sheet Data not found: %s", err)
	}
	engine := eval.NewEngine(store,
		eval.WithContext("Budget", "Data"),
		eval.WithNames(book.Names),
		eval.WithLocalNames(sheet.Names),
	)

	tests := []struct {
		Formula string
		Want    value.Value
	}{
		{Formula: "=A1+A2", Want: value.Float(30.5)},
		{Formula: "=SUM(A1:A3)", Want: value.Float(30.5)},
		{Formula: "=SUM(amounts)*rate", Want: value.Float(15.25)},
		{Formula: "=A1+A3", Want: value.Float(40)},
		{Formula: "=B2", Want: value.ErrNA},
		{Formula: "=Summary!A1", Want: value.Text("total")},
		{Formula: "=Summary!B2", Want: value.Text("total")},
		{Formula: "=[Other]Sheet1!A1/A1", Want: value.Float(10)},
		{Formula: "=Missing!A1", Want: value.ErrRef},
		{Formula: "=COUNTA(A:B)", Want: value.Float(5)},
		{Formula: "=half", Want: value.Float(0.25)},
		{Formula: "=top", Want: value.Float(30)},
		{Formula: "=COUNTA(A1:A2:B1)", Want: value.Float(4)},
	}
	for _, c := range tests {
		got, err := engine.Calculate(context.Background(), c.Formula)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", c.Formula, err)
			continue
		}
		if !reflect.DeepEqual(got, c.Want) {
			t.Errorf("%s: result mismatched! want %v, got %v", c.Formula, c.Want, got)
		}
	}
}
