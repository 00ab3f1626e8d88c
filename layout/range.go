package layout

import (
	"fmt"
	"strconv"
	"strings"
)

type Kind int8

const (
	KindCell Kind = iota
	KindRange
	KindRow
	KindColumn
)

func (k Kind) String() string {
	switch k {
	case KindCell:
		return "cell"
	case KindRange:
		return "range"
	case KindRow:
		return "row"
	case KindColumn:
		return "column"
	default:
		return "unknown"
	}
}

type Range struct {
	Starts Position
	Ends   Position
}

func NewRange(starts, ends Position) Range {
	r := Range{
		Starts: starts,
		Ends:   ends,
	}
	return r.Normalize()
}

func SingleCell(pos Position) Range {
	return NewRange(pos, pos)
}

// ParseRange accepts a single cell (A1), a cell range (A1:B2), a column
// range (A:C) or a row range (1:3). Anchors ($) are ignored.
func ParseRange(str string) (Range, error) {
	fst, lst, ok := strings.Cut(str, ":")
	if !ok {
		pos, err := ParsePosition(fst)
		if err != nil {
			return Range{}, err
		}
		return SingleCell(pos), nil
	}
	if strings.Contains(lst, ":") {
		return Range{}, fmt.Errorf("%w: %s", ErrAddress, str)
	}
	if starts, err := ParsePosition(fst); err == nil {
		ends, err := ParsePosition(lst)
		if err != nil {
			return Range{}, err
		}
		return NewRange(starts, ends), nil
	}
	if lo, ok := parseLine(fst); ok {
		hi, ok := parseLine(lst)
		if !ok {
			return Range{}, fmt.Errorf("%w: %s", ErrAddress, str)
		}
		return NewRange(Position{Line: lo}, Position{Line: hi}), nil
	}
	if lo, ok := parseColumn(fst); ok {
		hi, ok := parseColumn(lst)
		if !ok {
			return Range{}, fmt.Errorf("%w: %s", ErrAddress, str)
		}
		return NewRange(Position{Column: lo}, Position{Column: hi}), nil
	}
	return Range{}, fmt.Errorf("%w: %s", ErrAddress, str)
}

func parseLine(str string) (int64, bool) {
	str = strings.TrimPrefix(str, "$")
	if !isDigits(str) || str[0] == '0' {
		return 0, false
	}
	n, err := strconv.ParseInt(str, 10, 64)
	if err != nil || n > MaxLines {
		return 0, false
	}
	return n, true
}

func parseColumn(str string) (int64, bool) {
	str = strings.TrimPrefix(str, "$")
	ix, offset := ParseIndex(str)
	if offset == 0 || offset != len(str) || ix > MaxColumns {
		return 0, false
	}
	return ix, true
}

func (r Range) Kind() Kind {
	switch {
	case r.Starts.Column == 0 && r.Ends.Column == 0:
		return KindRow
	case r.Starts.Line == 0 && r.Ends.Line == 0:
		return KindColumn
	case r.Starts.Equal(r.Ends):
		return KindCell
	default:
		return KindRange
	}
}

// Open reports whether the range spans whole rows or whole columns.
func (r Range) Open() bool {
	k := r.Kind()
	return k == KindRow || k == KindColumn
}

func (r Range) Contains(pos Position) bool {
	if r.Starts.Line > 0 && (pos.Line < r.Starts.Line || pos.Line > r.Ends.Line) {
		return false
	}
	if r.Starts.Column > 0 && (pos.Column < r.Starts.Column || pos.Column > r.Ends.Column) {
		return false
	}
	return true
}

func (r Range) Intersects(other Range) bool {
	var (
		a = r.Bound(Dimension{Lines: MaxLines, Columns: MaxColumns})
		b = other.Bound(Dimension{Lines: MaxLines, Columns: MaxColumns})
	)
	if a.Ends.Line < b.Starts.Line || b.Ends.Line < a.Starts.Line {
		return false
	}
	return a.Ends.Column >= b.Starts.Column && b.Ends.Column >= a.Starts.Column
}

// Union returns the bounding box of both ranges.
func (r Range) Union(other Range) Range {
	x := Range{
		Starts: Position{
			Line:   min(r.Starts.Line, other.Starts.Line),
			Column: min(r.Starts.Column, other.Starts.Column),
		},
		Ends: Position{
			Line:   max(r.Ends.Line, other.Ends.Line),
			Column: max(r.Ends.Column, other.Ends.Column),
		},
	}
	return x
}

// Bound replaces the open sides of a row or column range with the limits
// given by dim.
func (r Range) Bound(dim Dimension) Range {
	switch r.Kind() {
	case KindRow:
		r.Starts.Column = 1
		r.Ends.Column = max(dim.Columns, 1)
	case KindColumn:
		r.Starts.Line = 1
		r.Ends.Line = max(dim.Lines, 1)
	}
	return r
}

func (r Range) Width() int64 {
	return r.Ends.Column - r.Starts.Column + 1
}

func (r Range) Height() int64 {
	return r.Ends.Line - r.Starts.Line + 1
}

func (r Range) Dimension() Dimension {
	return Dimension{
		Lines:   r.Height(),
		Columns: r.Width(),
	}
}

func (r Range) String() string {
	if r.Kind() == KindCell {
		return r.Starts.Addr()
	}
	return fmt.Sprintf("%s:%s", r.Starts.Addr(), r.Ends.Addr())
}

func (r Range) Normalize() Range {
	var x Range
	x.Starts.Line = min(r.Starts.Line, r.Ends.Line)
	x.Starts.Column = min(r.Starts.Column, r.Ends.Column)
	x.Ends.Line = max(r.Starts.Line, r.Ends.Line)
	x.Ends.Column = max(r.Starts.Column, r.Ends.Column)
	return x
}
