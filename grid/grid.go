package grid

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/text/cases"

	"github.com/midbel/formulae/layout"
	"github.com/midbel/formulae/value"
)

var (
	ErrExist  = errors.New("already exists")
	ErrFound  = errors.New("not found")
	ErrMerge  = errors.New("overlapping merged ranges")
	ErrBounds = errors.New("position out of bounds")
)

// Store is an in memory collection of workbooks. The first workbook added
// is the default one. Workbooks and sheets are identified by their folded
// names so lookups ignore case.
type Store struct {
	books []*Workbook
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Add(book *Workbook) error {
	if _, err := s.Workbook(book.Name); err == nil {
		return fmt.Errorf("workbook %s: %w", book.Name, ErrExist)
	}
	s.books = append(s.books, book)
	return nil
}

// Workbook returns the workbook with the given name. An empty name gives
// the default workbook.
func (s *Store) Workbook(name string) (*Workbook, error) {
	if name == "" && len(s.books) > 0 {
		return s.books[0], nil
	}
	ix := slices.IndexFunc(s.books, func(b *Workbook) bool {
		return b.id == fold(name)
	})
	if ix < 0 {
		return nil, fmt.Errorf("workbook %s: %w", name, ErrFound)
	}
	return s.books[ix], nil
}

func (s *Store) Workbooks() []*Workbook {
	return slices.Clone(s.books)
}

func (s *Store) ResolveUnit(name string) (string, bool) {
	book, err := s.Workbook(name)
	if err != nil {
		return "", false
	}
	return book.id, true
}

func (s *Store) ResolveSheet(unit, name string) (string, bool) {
	book, err := s.Workbook(unit)
	if err != nil {
		return "", false
	}
	var sh *Sheet
	if name == "" {
		sh, err = book.ActiveSheet()
	} else {
		sh, err = book.Sheet(name)
	}
	if err != nil {
		return "", false
	}
	return sh.id, true
}

func (s *Store) CellValue(unit, sheet string, line, column int64) (value.ScalarValue, error) {
	sh, err := s.sheet(unit, sheet)
	if err != nil {
		return nil, err
	}
	return sh.Value(layout.Position{Line: line, Column: column})
}

func (s *Store) MergedRange(unit, sheet string, line, column int64) (layout.Range, bool) {
	sh, err := s.sheet(unit, sheet)
	if err != nil {
		return layout.Range{}, false
	}
	return sh.Merged(layout.Position{Line: line, Column: column})
}

func (s *Store) Dimension(unit, sheet string) (layout.Dimension, error) {
	sh, err := s.sheet(unit, sheet)
	if err != nil {
		return layout.Dimension{}, err
	}
	return sh.Dimension(), nil
}

func (s *Store) sheet(unit, sheet string) (*Sheet, error) {
	book, err := s.Workbook(unit)
	if err != nil {
		return nil, err
	}
	return book.Sheet(sheet)
}

// Workbook holds sheets and the formulas of the names it defines.
type Workbook struct {
	Name   string
	Active string
	Names  map[string]string

	id     string
	sheets []*Sheet
}

func NewWorkbook(name string) *Workbook {
	return &Workbook{
		Name:  name,
		Names: make(map[string]string),
		id:    fold(name),
	}
}

func (b *Workbook) AddSheet(name string) (*Sheet, error) {
	if _, err := b.Sheet(name); err == nil {
		return nil, fmt.Errorf("sheet %s: %w", name, ErrExist)
	}
	sh := Sheet{
		Name:  name,
		Names: make(map[string]string),
		id:    fold(name),
		cells: make(map[layout.Position]value.ScalarValue),
	}
	b.sheets = append(b.sheets, &sh)
	return &sh, nil
}

func (b *Workbook) Sheet(name string) (*Sheet, error) {
	ix := slices.IndexFunc(b.sheets, func(s *Sheet) bool {
		return s.id == fold(name)
	})
	if ix < 0 {
		return nil, fmt.Errorf("sheet %s: %w", name, ErrFound)
	}
	return b.sheets[ix], nil
}

// ActiveSheet gives the sheet named by Active or the first sheet of the
// workbook when Active is empty.
func (b *Workbook) ActiveSheet() (*Sheet, error) {
	if b.Active != "" {
		return b.Sheet(b.Active)
	}
	if len(b.sheets) == 0 {
		return nil, fmt.Errorf("%s: no sheets", b.Name)
	}
	return b.sheets[0], nil
}

func (b *Workbook) Sheets() []*Sheet {
	return slices.Clone(b.sheets)
}

// Sheet holds cells and merges. Names are defined names visible from the
// formulas evaluated in the context of the sheet only.
type Sheet struct {
	Name  string
	Names map[string]string

	id     string
	size   layout.Dimension
	cells  map[layout.Position]value.ScalarValue
	merges []layout.Range
}

func (s *Sheet) SetValue(pos layout.Position, val value.ScalarValue) error {
	if pos.Line <= 0 || pos.Column <= 0 || pos.Line > layout.MaxLines || pos.Column > layout.MaxColumns {
		return fmt.Errorf("%s: %w", pos, ErrBounds)
	}
	if val == nil {
		val = value.Blank{}
	}
	s.cells[pos] = val
	s.grow(layout.Dimension{Lines: pos.Line, Columns: pos.Column})
	return nil
}

// Value returns the value stored at pos, blank when the cell is empty.
func (s *Sheet) Value(pos layout.Position) (value.ScalarValue, error) {
	if pos.Line <= 0 || pos.Column <= 0 {
		return nil, fmt.Errorf("%s: %w", pos, ErrBounds)
	}
	v, ok := s.cells[pos]
	if !ok {
		return value.Blank{}, nil
	}
	return v, nil
}

// Merge registers rg as a merged region. Regions can not overlap.
func (s *Sheet) Merge(rg layout.Range) error {
	if rg.Open() {
		return fmt.Errorf("%s: %w", rg, ErrBounds)
	}
	rg = rg.Normalize()
	for _, other := range s.merges {
		if other.Intersects(rg) {
			return fmt.Errorf("%s and %s: %w", rg, other, ErrMerge)
		}
	}
	s.merges = append(s.merges, rg)
	s.grow(layout.Dimension{Lines: rg.Ends.Line, Columns: rg.Ends.Column})
	return nil
}

func (s *Sheet) Merged(pos layout.Position) (layout.Range, bool) {
	for _, rg := range s.merges {
		if rg.Contains(pos) {
			return rg, true
		}
	}
	return layout.Range{}, false
}

// Dimension gives the size of the smallest range anchored at A1 holding
// every cell and merged region of the sheet.
func (s *Sheet) Dimension() layout.Dimension {
	return s.size
}

func (s *Sheet) grow(dim layout.Dimension) {
	s.size = s.size.Max(dim)
}

func fold(name string) string {
	return cases.Fold().String(name)
}
