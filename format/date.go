package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/midbel/formulae/value"
)

// dateField is a code of a date pattern. Numeric fields are written with at
// least Width digits, or Padded digits when the code is preceded by a 0.
type dateField struct {
	Code   string
	Width  int
	Padded int
	Value  func(time.Time) int
	Name   func(time.Time) string
}

// longest codes first.
var dateFields = []dateField{
	{Code: "YYYY", Value: time.Time.Year},
	{Code: "MMMM", Name: func(t time.Time) string { return t.Month().String() }},
	{Code: "DDDD", Name: func(t time.Time) string { return t.Weekday().String() }},
	{Code: "MMM", Name: func(t time.Time) string { return t.Month().String()[:3] }},
	{Code: "DDD", Name: func(t time.Time) string { return t.Weekday().String()[:3] }},
	{Code: "JJJ", Padded: 3, Value: time.Time.YearDay},
	{Code: "YY", Width: 2, Value: func(t time.Time) int { return t.Year() % 100 }},
	{Code: "MM", Padded: 2, Value: func(t time.Time) int { return int(t.Month()) }},
	{Code: "DD", Padded: 2, Value: time.Time.Day},
	{Code: "hh", Padded: 2, Value: time.Time.Hour},
	{Code: "mm", Padded: 2, Value: time.Time.Minute},
	{Code: "ss", Padded: 2, Value: time.Time.Second},
}

func matchField(str string) (*dateField, bool) {
	for i := range dateFields {
		if strings.HasPrefix(str, dateFields[i].Code) {
			return &dateFields[i], true
		}
	}
	return nil, false
}

type dateToken struct {
	field *dateField
	width int
	text  string
}

func (t dateToken) write(w *strings.Builder, when time.Time) {
	switch {
	case t.field == nil:
		w.WriteString(t.text)
	case t.field.Name != nil:
		w.WriteString(t.field.Name(when))
	default:
		str := strconv.Itoa(t.field.Value(when))
		for n := len(str); n < t.width; n++ {
			w.WriteByte('0')
		}
		w.WriteString(str)
	}
}

func compileDate(pattern string) ([]dateToken, error) {
	var (
		list []dateToken
		lit  strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			list = append(list, dateToken{text: lit.String()})
			lit.Reset()
		}
	}
	for i := 0; i < len(pattern); {
		switch pattern[i] {
		case '"':
			j := strings.IndexByte(pattern[i+1:], '"')
			if j < 0 {
				return nil, fmt.Errorf("%w: unterminated literal in %q", ErrPattern, pattern)
			}
			lit.WriteString(pattern[i+1 : i+1+j])
			i += j + 2
			continue
		case '\\':
			if i+1 >= len(pattern) {
				return nil, fmt.Errorf("%w: nothing to escape in %q", ErrPattern, pattern)
			}
			r, z := utf8.DecodeRuneInString(pattern[i+1:])
			lit.WriteRune(r)
			i += z + 1
			continue
		}
		start := i
		if pattern[i] == '0' {
			start++
		}
		if f, ok := matchField(pattern[start:]); ok && (start == i || f.Padded > 0) {
			flush()
			tok := dateToken{
				field: f,
				width: f.Width,
			}
			if start > i {
				tok.width = f.Padded
			}
			list = append(list, tok)
			i = start + len(f.Code)
			continue
		}
		r, z := utf8.DecodeRuneInString(pattern[i:])
		lit.WriteRune(r)
		i += z
	}
	flush()
	return list, nil
}

// IsDatePattern reports whether pattern holds at least one date or time
// field outside of its literal text.
func IsDatePattern(pattern string) bool {
	list, err := compileDate(pattern)
	if err != nil {
		return false
	}
	for _, t := range list {
		if t.field != nil {
			return true
		}
	}
	return false
}

type dateFormatter struct {
	tokens []dateToken
}

func ParseDateFormatter(pattern string) (Formatter, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty date pattern", ErrPattern)
	}
	list, err := compileDate(pattern)
	if err != nil {
		return nil, err
	}
	return dateFormatter{tokens: list}, nil
}

// Format writes the date of a serial number.
func (f dateFormatter) Format(v value.Value) (string, error) {
	n, ok := v.(value.Numeric)
	if !ok {
		return "", fmt.Errorf("%w: %s is not a date", ErrFormat, v.Type())
	}
	var (
		when = value.SerialToTime(n.Number())
		str  strings.Builder
	)
	for _, t := range f.tokens {
		t.write(&str, when)
	}
	return str.String(), nil
}
