package oxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/midbel/formulae/layout"
	"github.com/midbel/formulae/value"
)

const (
	TypeSharedStr = "s"
	TypeInlineStr = "inlineStr"
	TypeFormula   = "str"
	TypeDate      = "d"
	TypeError     = "e"
	TypeBool      = "b"
	TypeNumber    = "n"
)

// date1904Offset is the number of days between the epochs of the 1900 and
// 1904 date systems.
const date1904Offset = 1462

var (
	ErrFile  = errors.New("invalid spreadsheet")
	ErrFound = errors.New("not found")
)

type SheetState int8

const (
	StateVisible SheetState = 1 << iota
	StateHidden
	StateVeryHidden
)

func (s SheetState) String() string {
	switch s {
	case StateHidden:
		return "hidden"
	case StateVeryHidden:
		return "veryHidden"
	default:
		return "visible"
	}
}

func (s *SheetState) UnmarshalXMLAttr(attr xml.Attr) error {
	switch attr.Value {
	case "visible", "":
		*s = StateVisible
	case "hidden":
		*s = StateHidden
	case "veryHidden":
		*s = StateVeryHidden
	default:
		return fmt.Errorf("%w: unknown sheet state %s", ErrFile, attr.Value)
	}
	return nil
}

// Sheet holds the values cached in a worksheet. Formulas are kept as
// written in the file and are never recomputed when the file is read.
type Sheet struct {
	Id     string
	Label  string
	Index  int
	Active bool
	State  SheetState
	Size   layout.Dimension

	key      string
	names    map[string]string
	cells    map[layout.Position]value.ScalarValue
	formulas map[layout.Position]string
	merges   []layout.Range
}

func NewSheet(name string) *Sheet {
	s := Sheet{
		Label:    name,
		State:    StateVisible,
		key:      fold(name),
		names:    make(map[string]string),
		cells:    make(map[layout.Position]value.ScalarValue),
		formulas: make(map[layout.Position]string),
	}
	return &s
}

// Names returns the names defined for the sheet only.
func (s *Sheet) Names() map[string]string {
	return maps.Clone(s.names)
}

func (s *Sheet) Value(pos layout.Position) value.ScalarValue {
	v, ok := s.cells[pos]
	if !ok {
		return value.Blank{}
	}
	return v
}

// Formula returns the formula stored in the cell at pos prefixed with =.
func (s *Sheet) Formula(pos layout.Position) (string, bool) {
	f, ok := s.formulas[pos]
	if !ok {
		return "", false
	}
	return "=" + f, true
}

func (s *Sheet) Merged(pos layout.Position) (layout.Range, bool) {
	for _, rg := range s.merges {
		if rg.Contains(pos) {
			return rg, true
		}
	}
	return layout.Range{}, false
}

func (s *Sheet) Dimension() layout.Dimension {
	return s.Size
}

func (s *Sheet) setValue(pos layout.Position, val value.ScalarValue) {
	s.cells[pos] = val
	s.Size = s.Size.Max(layout.Dimension{Lines: pos.Line, Columns: pos.Column})
}

func (s *Sheet) merge(rg layout.Range) {
	s.merges = append(s.merges, rg)
	s.Size = s.Size.Max(layout.Dimension{Lines: rg.Ends.Line, Columns: rg.Ends.Column})
}

// File is a workbook read from an xlsx archive. It is usable as the single
// workbook of an evaluation: the name of the file, without its extension,
// is the name to use in [Book] qualifiers.
type File struct {
	Name     string
	Date1904 bool

	key           string
	names         map[string]string
	sheets        []*Sheet
	sharedStrings []string
	dateStyles    []bool
}

func NewFile(name string) *File {
	name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	file := File{
		Name:  name,
		key:   fold(name),
		names: make(map[string]string),
	}
	return &file
}

// Open reads the workbook stored in file.
func Open(file string) (*File, error) {
	rs, err := readFile(file)
	if err != nil {
		return nil, err
	}
	defer rs.Close()
	return rs.ReadFile(NewFile(file))
}

// ActiveSheet gives the sheet selected when the workbook was saved, the
// first sheet when none is marked.
func (f *File) ActiveSheet() (*Sheet, error) {
	if len(f.sheets) == 0 {
		return nil, fmt.Errorf("%s: %w: no sheets", f.Name, ErrFile)
	}
	ix := slices.IndexFunc(f.sheets, func(s *Sheet) bool {
		return s.Active
	})
	if ix < 0 {
		ix = 0
	}
	return f.sheets[ix], nil
}

func (f *File) Sheet(name string) (*Sheet, error) {
	ix := slices.IndexFunc(f.sheets, func(s *Sheet) bool {
		return s.key == fold(name)
	})
	if ix < 0 {
		return nil, fmt.Errorf("sheet %s %w", name, ErrFound)
	}
	return f.sheets[ix], nil
}

func (f *File) Sheets() []*Sheet {
	return slices.Clone(f.sheets)
}

// dateValue turns the numbers displayed with a date format into date serials
// of the 1900 system.
func (f *File) dateValue(style string, val value.ScalarValue) value.ScalarValue {
	n, ok := val.(value.Float)
	if !ok || style == "" {
		return val
	}
	ix, err := strconv.Atoi(style)
	if err != nil || ix < 0 || ix >= len(f.dateStyles) || !f.dateStyles[ix] {
		return val
	}
	if f.Date1904 {
		n += date1904Offset
	}
	return value.WithPattern(n, value.DefaultDatePattern)
}

// Names returns the defined names of the workbook with their formula.
func (f *File) Names() map[string]string {
	return maps.Clone(f.names)
}

func (f *File) ResolveUnit(name string) (string, bool) {
	if name == "" || fold(name) == f.key {
		return f.key, true
	}
	return "", false
}

func (f *File) ResolveSheet(unit, name string) (string, bool) {
	if _, ok := f.ResolveUnit(unit); !ok {
		return "", false
	}
	var (
		sh  *Sheet
		err error
	)
	if name == "" {
		sh, err = f.ActiveSheet()
	} else {
		sh, err = f.Sheet(name)
	}
	if err != nil {
		return "", false
	}
	return sh.key, true
}

func (f *File) CellValue(unit, sheet string, line, column int64) (value.ScalarValue, error) {
	sh, err := f.sheet(unit, sheet)
	if err != nil {
		return nil, err
	}
	return sh.Value(layout.Position{Line: line, Column: column}), nil
}

func (f *File) MergedRange(unit, sheet string, line, column int64) (layout.Range, bool) {
	sh, err := f.sheet(unit, sheet)
	if err != nil {
		return layout.Range{}, false
	}
	return sh.Merged(layout.Position{Line: line, Column: column})
}

func (f *File) Dimension(unit, sheet string) (layout.Dimension, error) {
	sh, err := f.sheet(unit, sheet)
	if err != nil {
		return layout.Dimension{}, err
	}
	return sh.Dimension(), nil
}

func (f *File) sheet(unit, sheet string) (*Sheet, error) {
	if _, ok := f.ResolveUnit(unit); !ok {
		return nil, fmt.Errorf("workbook %s %w", unit, ErrFound)
	}
	return f.Sheet(sheet)
}

func fold(name string) string {
	return cases.Fold().String(name)
}
