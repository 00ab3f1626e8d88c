package value

import (
	"errors"
)

type ErrorCode string

const (
	CodeNull  ErrorCode = "#NULL!"
	CodeDiv0  ErrorCode = "#DIV/0!"
	CodeValue ErrorCode = "#VALUE!"
	CodeRef   ErrorCode = "#REF!"
	CodeName  ErrorCode = "#NAME?"
	CodeNum   ErrorCode = "#NUM!"
	CodeNA    ErrorCode = "#N/A"
	CodeSpill ErrorCode = "#SPILL!"
)

var (
	ErrNull  = createError(CodeNull)
	ErrDiv0  = createError(CodeDiv0)
	ErrValue = createError(CodeValue)
	ErrRef   = createError(CodeRef)
	ErrName  = createError(CodeName)
	ErrNum   = createError(CodeNum)
	ErrNA    = createError(CodeNA)
	ErrSpill = createError(CodeSpill)
)

var codes = []Error{
	ErrNull,
	ErrDiv0,
	ErrValue,
	ErrRef,
	ErrName,
	ErrNum,
	ErrNA,
	ErrSpill,
}

type Error struct {
	code ErrorCode
}

func createError(code ErrorCode) Error {
	return Error{
		code: code,
	}
}

// ParseError returns the error value written as str (#N/A, #REF!...).
func ParseError(str string) (Error, bool) {
	for _, e := range codes {
		if string(e.code) == str {
			return e, true
		}
	}
	return Error{}, false
}

// ErrorOf converts err into a spreadsheet error, #VALUE! being used for
// anything that is not already one.
func ErrorOf(err error) Error {
	var e Error
	if errors.As(err, &e) {
		return e
	}
	return ErrValue
}

func (e Error) Code() ErrorCode {
	return e.code
}

func (Error) Type() string {
	return TypeError
}

func (Error) Kind() ValueKind {
	return KindError
}

func (e Error) Error() string {
	return string(e.code)
}

func (e Error) String() string {
	return string(e.code)
}

func (e Error) Scalar() any {
	return string(e.code)
}
