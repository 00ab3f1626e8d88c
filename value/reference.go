package value

import (
	"github.com/midbel/formulae/layout"
)

// Reference designates a cell, a range, whole rows or whole columns of a
// sheet. It is resolved into values by the evaluation environment.
type Reference struct {
	Unit  string
	Sheet string
	// Name is the sheet name as written in the formula, used for display.
	Name  string
	Range layout.Range
}

func (Reference) Type() string {
	return TypeReference
}

func (Reference) Kind() ValueKind {
	return KindReference
}

func (r Reference) String() string {
	if r.Name == "" {
		return r.Range.String()
	}
	return layout.QuoteSheet(r.Name) + "!" + r.Range.String()
}

func (r Reference) IsCell() bool {
	return r.Range.Kind() == layout.KindCell
}

func (r Reference) IsRow() bool {
	return r.Range.Kind() == layout.KindRow
}

func (r Reference) IsColumn() bool {
	return r.Range.Kind() == layout.KindColumn
}

func (r Reference) SameSheet(other Reference) bool {
	return r.Unit == other.Unit && r.Sheet == other.Sheet
}

// Union combines two references of the same kind living on the same sheet
// into their bounding box. Cells and ranges are both areas of the sheet and
// can be mixed. Any other combination is #REF!.
func (r Reference) Union(other Value) Value {
	x, ok := other.(Reference)
	if !ok || !r.SameSheet(x) {
		return ErrRef
	}
	if areaKind(r.Range.Kind()) != areaKind(x.Range.Kind()) {
		return ErrRef
	}
	r.Range = r.Range.Union(x.Range)
	return r
}

func areaKind(k layout.Kind) layout.Kind {
	if k == layout.KindRange {
		return layout.KindCell
	}
	return k
}

func (r Reference) Intersects(other Reference) bool {
	return r.SameSheet(other) && r.Range.Intersects(other.Range)
}
