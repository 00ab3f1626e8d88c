package value

import (
	"errors"
	"fmt"

	"github.com/midbel/formulae/layout"
)

type ValueKind int8

const (
	KindScalar ValueKind = 1 << iota
	KindError
	KindArray
	KindReference
)

const (
	TypeNumber    = "number"
	TypeText      = "text"
	TypeBool      = "boolean"
	TypeBlank     = "blank"
	TypeError     = "error"
	TypeArray     = "array"
	TypeReference = "reference"
)

var ErrCast = errors.New("value can not be cast to target type")

type Value interface {
	Kind() ValueKind
	Type() string
	fmt.Stringer
}

type ScalarValue interface {
	Value
	Scalar() any
}

type ArrayValue interface {
	Value
	Dimension() layout.Dimension
	At(int, int) ScalarValue
}

// Numeric is implemented by the values holding a number, with or without a
// display pattern.
type Numeric interface {
	ScalarValue
	Number() float64
}

func IsError(v Value) bool {
	_, ok := v.(Error)
	return ok
}

func IsNumber(v Value) bool {
	_, ok := v.(Numeric)
	return ok
}

func IsText(v Value) bool {
	_, ok := v.(Text)
	return ok
}

func IsBoolean(v Value) bool {
	_, ok := v.(Boolean)
	return ok
}

func IsBlank(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Blank)
	return ok
}

func IsArray(v Value) bool {
	_, ok := v.(Array)
	return ok
}

func IsReference(v Value) bool {
	_, ok := v.(Reference)
	return ok
}

// FirstError returns the first error found in values.
func FirstError(values ...Value) (Error, bool) {
	for _, v := range values {
		if e, ok := v.(Error); ok {
			return e, true
		}
	}
	return Error{}, false
}
