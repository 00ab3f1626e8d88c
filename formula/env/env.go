package env

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"

	"github.com/midbel/formulae/layout"
	"github.com/midbel/formulae/value"
)

var ErrUndefined = errors.New("undefined identifier")

// Source gives read access to the cells of one or more workbooks. Units and
// sheets are opaque identifiers obtained from ResolveUnit and ResolveSheet.
// Lines and columns are 1-based.
type Source interface {
	CellValue(unit, sheet string, line, column int64) (value.ScalarValue, error)
	MergedRange(unit, sheet string, line, column int64) (layout.Range, bool)
	ResolveSheet(unit, name string) (string, bool)
	ResolveUnit(name string) (string, bool)
	Dimension(unit, sheet string) (layout.Dimension, error)
}

// Environment binds references written in a formula to a source and holds
// the defined names. It is not modified during an evaluation and can be
// shared between goroutines once set up.
type Environment struct {
	source Source
	unit   string
	sheet  string
	name   string

	values map[string]value.Value
	parent *Environment
}

func Empty() *Environment {
	return New(nil, "", "")
}

// New creates an environment reading from src. Unit and sheet are the
// identifiers used by references without qualifiers.
func New(src Source, unit, sheet string) *Environment {
	env := Environment{
		source: src,
		unit:   unit,
		sheet:  sheet,
		name:   sheet,
		values: make(map[string]value.Value),
	}
	return &env
}

func Enclosed(parent *Environment) *Environment {
	env := Environment{
		source: parent.source,
		unit:   parent.unit,
		sheet:  parent.sheet,
		name:   parent.name,
		values: make(map[string]value.Value),
		parent: parent,
	}
	return &env
}

func (e *Environment) Source() Source {
	return e.source
}

func (e *Environment) Unit() string {
	return e.unit
}

func (e *Environment) Sheet() string {
	return e.sheet
}

// SetSheetName changes the name displayed for references to the default
// sheet when it differs from its identifier.
func (e *Environment) SetSheetName(name string) {
	e.name = name
}

func (e *Environment) Define(ident string, val value.Value) {
	e.values[foldName(ident)] = val
}

func (e *Environment) Resolve(ident string) (value.Value, error) {
	v, ok := e.values[foldName(ident)]
	if ok {
		return v, nil
	}
	if e.parent == nil {
		return nil, fmt.Errorf("%s: %w", ident, ErrUndefined)
	}
	return e.parent.Resolve(ident)
}

// Reference binds addr to its unit and sheet. Unknown workbooks or sheets
// give #REF!.
func (e *Environment) Reference(addr layout.Address) value.Value {
	ref := value.Reference{
		Unit:  e.unit,
		Sheet: e.sheet,
		Range: addr.Range,
	}
	if addr.Book != "" {
		if e.source == nil {
			return value.ErrRef
		}
		unit, ok := e.source.ResolveUnit(addr.Book)
		if !ok {
			return value.ErrRef
		}
		ref.Unit = unit
	}
	if addr.Sheet != "" {
		if e.source == nil {
			return value.ErrRef
		}
		sheet, ok := e.source.ResolveSheet(ref.Unit, addr.Sheet)
		if !ok {
			return value.ErrRef
		}
		ref.Sheet = sheet
		ref.Name = addr.Sheet
	} else if addr.Book == "" {
		ref.Name = e.name
	}
	return ref
}

// Materialize reads the cells of ref. Rows and columns references are
// bounded by the dimension of their sheet. A single cell inside a merged
// region reads the top left cell of the region, the other cells covered by
// a merge are blank inside a wider range.
func (e *Environment) Materialize(ref value.Reference) value.Value {
	if e.source == nil {
		return value.ErrRef
	}
	rg := ref.Range
	if rg.Open() {
		dim, err := e.source.Dimension(ref.Unit, ref.Sheet)
		if err != nil {
			return value.ErrRef
		}
		rg = rg.Bound(dim)
	}
	if ref.IsCell() {
		pos := rg.Starts
		if mr, ok := e.source.MergedRange(ref.Unit, ref.Sheet, pos.Line, pos.Column); ok {
			pos = mr.Starts
		}
		v, err := e.cell(ref, pos)
		if err != nil {
			return value.ErrorOf(err)
		}
		arr := value.Scalar(v)
		arr.Origin, arr.Unit, arr.Sheet = rg.Starts, ref.Unit, ref.Sheet
		return arr
	}
	var (
		dim  = rg.Dimension()
		data = make([][]value.ScalarValue, dim.Lines)
	)
	for i := range data {
		data[i] = make([]value.ScalarValue, dim.Columns)
		for j := range data[i] {
			pos := layout.Position{
				Line:   rg.Starts.Line + int64(i),
				Column: rg.Starts.Column + int64(j),
			}
			if mr, ok := e.source.MergedRange(ref.Unit, ref.Sheet, pos.Line, pos.Column); ok && !mr.Starts.Equal(pos) {
				data[i][j] = value.Blank{}
				continue
			}
			v, err := e.cell(ref, pos)
			if err != nil {
				return value.ErrorOf(err)
			}
			data[i][j] = v
		}
	}
	arr := value.NewArray(data)
	arr.Origin, arr.Unit, arr.Sheet = rg.Starts, ref.Unit, ref.Sheet
	return arr
}

func (e *Environment) cell(ref value.Reference, pos layout.Position) (value.ScalarValue, error) {
	v, err := e.source.CellValue(ref.Unit, ref.Sheet, pos.Line, pos.Column)
	if err != nil {
		var code value.Error
		if errors.As(err, &code) {
			return nil, code
		}
		return nil, fmt.Errorf("%w: %s", value.ErrRef, err)
	}
	if v == nil {
		v = value.Blank{}
	}
	return v, nil
}

// Deref materializes val when it is a reference. A single cell becomes a
// scalar.
func (e *Environment) Deref(val value.Value) value.Value {
	ref, ok := val.(value.Reference)
	if !ok {
		return val
	}
	res := e.Materialize(ref)
	if arr, ok := res.(value.Array); ok {
		return arr.Unwrap()
	}
	return res
}

func foldName(ident string) string {
	return cases.Fold().String(ident)
}
