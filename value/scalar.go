package value

import (
	"math"
	"strconv"
)

type Blank struct{}

func (Blank) Type() string {
	return TypeBlank
}

func (Blank) Kind() ValueKind {
	return KindScalar
}

func (Blank) String() string {
	return ""
}

func (Blank) Scalar() any {
	return nil
}

type Float float64

func (Float) Type() string {
	return TypeNumber
}

func (Float) Kind() ValueKind {
	return KindScalar
}

func (f Float) String() string {
	return formatFloat(float64(f))
}

func (f Float) Scalar() any {
	return float64(f)
}

func (f Float) Number() float64 {
	return float64(f)
}

// Formatted is a number carrying the pattern it should be displayed with.
// The pattern has no effect on computation.
type Formatted struct {
	Float
	Pattern string
}

func WithPattern(f Float, pattern string) Formatted {
	return Formatted{
		Float:   f,
		Pattern: pattern,
	}
}

type Text string

func (Text) Type() string {
	return TypeText
}

func (Text) Kind() ValueKind {
	return KindScalar
}

func (t Text) String() string {
	return string(t)
}

func (t Text) Scalar() any {
	return string(t)
}

type Boolean bool

func (Boolean) Type() string {
	return TypeBool
}

func (Boolean) Kind() ValueKind {
	return KindScalar
}

func (b Boolean) String() string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func (b Boolean) Scalar() any {
	return bool(b)
}

func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(f, 'g', 15, 64), 64)
	if err == nil {
		f = rounded
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
