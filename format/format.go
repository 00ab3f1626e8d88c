package format

import (
	"errors"
	"strings"

	"github.com/midbel/formulae/value"
)

const (
	DefaultNumberPattern = "#######.00"
	DefaultDatePattern   = value.DefaultDatePattern
)

var (
	ErrPattern = errors.New("invalid pattern")
	ErrFormat  = errors.New("value can not be formatted")
)

type Formatter interface {
	Format(value.Value) (string, error)
}

// ValueFormatter formats values by type. Numbers carrying a pattern are
// formatted with it unless a formatter has been set for dates and the
// pattern is a date pattern. It is not safe for concurrent use.
type ValueFormatter struct {
	formatters map[string]Formatter
	date       Formatter
	patterns   map[string]Formatter
}

func FormatValue() *ValueFormatter {
	vf := ValueFormatter{
		formatters: make(map[string]Formatter),
		patterns:   make(map[string]Formatter),
	}
	return &vf
}

func (vf *ValueFormatter) Set(kind string, formatter Formatter) {
	vf.formatters[kind] = formatter
}

func (vf *ValueFormatter) Number(pattern string) error {
	f, err := ParseNumberFormatter(pattern)
	if err == nil {
		vf.Set(value.TypeNumber, f)
	}
	return err
}

func (vf *ValueFormatter) Date(pattern string) error {
	f, err := ParseDateFormatter(pattern)
	if err == nil {
		vf.date = f
	}
	return err
}

func (vf *ValueFormatter) Format(v value.Value) (string, error) {
	switch v := v.(type) {
	case value.Array:
		return vf.formatArray(v)
	case value.Formatted:
		f, err := vf.pattern(v.Pattern)
		if err != nil {
			return "", err
		}
		return f.Format(v)
	}
	f, ok := vf.formatters[v.Type()]
	if ok {
		return f.Format(v)
	}
	return v.String(), nil
}

func (vf *ValueFormatter) pattern(pattern string) (Formatter, error) {
	if IsDatePattern(pattern) && vf.date != nil {
		return vf.date, nil
	}
	if f, ok := vf.patterns[pattern]; ok {
		return f, nil
	}
	var (
		f   Formatter
		err error
	)
	if IsDatePattern(pattern) {
		f, err = ParseDateFormatter(pattern)
	} else {
		f, err = ParseNumberFormatter(pattern)
	}
	if err != nil {
		return nil, err
	}
	vf.patterns[pattern] = f
	return f, nil
}

func (vf *ValueFormatter) formatArray(arr value.Array) (string, error) {
	var str strings.Builder
	str.WriteString("{")
	for i, row := range arr.Data {
		if i > 0 {
			str.WriteString(";")
		}
		for j := range row {
			if j > 0 {
				str.WriteString(",")
			}
			s, err := vf.Format(arr.At(i, j))
			if err != nil {
				return "", err
			}
			str.WriteString(s)
		}
	}
	str.WriteString("}")
	return str.String(), nil
}

type strFormatter struct{}

func FormatString() Formatter {
	return strFormatter{}
}

func (strFormatter) Format(v value.Value) (string, error) {
	return v.String(), nil
}

type boolFormatter struct {
	yes string
	no  string
}

func FormatBool(yes, no string) Formatter {
	return boolFormatter{
		yes: yes,
		no:  no,
	}
}

func (f boolFormatter) Format(v value.Value) (string, error) {
	if value.True(v) {
		return f.yes, nil
	}
	return f.no, nil
}
