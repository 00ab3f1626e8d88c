package value

import (
	"math"
	"strconv"
	"strings"
)

// IsRealNumber reports whether str is the textual form of a finite number.
func IsRealNumber(str string) bool {
	_, ok := parseNumber(str)
	return ok
}

func parseNumber(str string) (float64, bool) {
	str = strings.TrimSpace(str)
	if str == "" || strings.ContainsAny(str, "xX_") {
		return 0, false
	}
	n, err := strconv.ParseFloat(str, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

func CastToArray(val Value) (Array, error) {
	switch v := val.(type) {
	case Array:
		return v, nil
	case ScalarValue:
		return Scalar(v), nil
	default:
		return Array{}, ErrCast
	}
}

func True(val Value) bool {
	b, err := CastToBool(val)
	return err == nil && bool(b)
}

// CastToFloat applies the coercion of numeric operators. The returned error
// is the spreadsheet error to report when the cast is not possible.
func CastToFloat(val Value) (Float, error) {
	switch v := val.(type) {
	case Numeric:
		return Float(v.Number()), nil
	case Boolean:
		if v {
			return 1, nil
		}
		return 0, nil
	case Blank:
		return 0, nil
	case Text:
		n, ok := parseNumber(string(v))
		if !ok {
			return 0, ErrValue
		}
		return Float(n), nil
	case Error:
		return 0, v
	default:
		return 0, ErrValue
	}
}

func CastToText(val Value) (Text, error) {
	switch v := val.(type) {
	case Text:
		return v, nil
	case Numeric:
		return Text(formatFloat(v.Number())), nil
	case Boolean:
		return Text(v.String()), nil
	case Blank:
		return "", nil
	case Error:
		return "", v
	default:
		return "", ErrValue
	}
}

func CastToBool(val Value) (Boolean, error) {
	switch v := val.(type) {
	case Boolean:
		return v, nil
	case Numeric:
		return Boolean(v.Number() != 0), nil
	case Blank:
		return false, nil
	case Text:
		switch strings.ToUpper(strings.TrimSpace(string(v))) {
		case "TRUE":
			return true, nil
		case "FALSE":
			return false, nil
		default:
			return false, ErrValue
		}
	case Error:
		return false, v
	default:
		return false, ErrValue
	}
}
