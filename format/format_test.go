package format

import (
	"errors"
	"testing"
	"time"

	"github.com/midbel/formulae/value"
)

func TestFormatter(t *testing.T) {
	tests := []struct {
		Input value.Value
		Want  string
	}{
		{
			Input: value.Float(42),
			Want:  "42",
		},
		{
			Input: value.Float(123),
			Want:  "123",
		},
		{
			Input: value.Float(3.14),
			Want:  "3.14",
		},
		{
			Input: value.Date(time.Date(2026, 2, 20, 14, 5, 9, 0, time.UTC)),
			Want:  "2026-02-20",
		},
		{
			Input: value.WithPattern(value.Float(1234.5), "#,##0.00"),
			Want:  "1,234.50",
		},
		{
			Input: value.Text("foobar"),
			Want:  "foobar",
		},
		{
			Input: value.Boolean(true),
			Want:  "true",
		},
		{
			Input: value.ErrDiv0,
			Want:  "#DIV/0!",
		},
		{
			Input: value.NewArray([][]value.ScalarValue{
				{value.Float(1), value.Float(2.5)},
				{value.Boolean(false), value.Text("x")},
			}),
			Want: "{1,2.5;false,x}",
		},
	}
	vf := FormatValue()
	vf.Number("###.##")
	vf.Date("YYYY-0MM-0DD")
	vf.Set(value.TypeText, FormatString())
	vf.Set(value.TypeBool, FormatBool("true", "false"))
	for _, c := range tests {
		got, err := vf.Format(c.Input)
		if err != nil {
			t.Errorf("fail to format value (%v): %s", c.Input, err)
			continue
		}
		if got != c.Want {
			t.Errorf("%v: results mismatched! want %s - got %s", c.Input, c.Want, got)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		Pattern string
		Input   float64
		Want    string
	}{
		{Pattern: DefaultNumberPattern, Input: 42, Want: "42.00"},
		{Pattern: "0.00", Input: 1, Want: "1.00"},
		{Pattern: "000", Input: 7, Want: "007"},
		{Pattern: "#,##0", Input: 1234567, Want: "1,234,567"},
		{Pattern: "+0.#", Input: 2.25, Want: "+2.3"},
		{Pattern: "0.##", Input: -0.5, Want: "-0.5"},
		{Pattern: "0.0%", Input: 0.125, Want: "12.5%"},
		{Pattern: "#,##0.00;(#,##0.00)", Input: -1234.5, Want: "(1,234.50)"},
		{Pattern: "0;-0;\"zero\"", Input: 0, Want: "zero"},
		{Pattern: "0;;", Input: -3, Want: ""},
		{Pattern: "\"$\"#,##0", Input: 1500, Want: "$1,500"},
		{Pattern: "0.00 \\E\\U\\R", Input: 2, Want: "2.00 EUR"},
		{Pattern: "0", Input: -0.2, Want: "0"},
		{Pattern: GeneralPattern, Input: 0.1, Want: "0.1"},
	}
	for _, c := range tests {
		f, err := ParseNumberFormatter(c.Pattern)
		if err != nil {
			t.Errorf("%s: error parsing pattern: %s", c.Pattern, err)
			continue
		}
		got, err := f.Format(value.Float(c.Input))
		if err != nil {
			t.Errorf("%s: fail to format number: %s", c.Pattern, err)
			continue
		}
		if got != c.Want {
			t.Errorf("%s (%f): results mismatched! want %s - got %s", c.Pattern, c.Input, c.Want, got)
		}
	}
}

func TestParseNumberInvalid(t *testing.T) {
	tests := []string{
		"",
		".",
		"+",
		"\"unterminated 0",
		"0;0;0;0",
		"0.#0",
		"0.0.0",
		"0 x 0",
	}
	for _, str := range tests {
		_, err := ParseNumberFormatter(str)
		if !errors.Is(err, ErrPattern) {
			t.Errorf("%s: invalid pattern error expected, got %v", str, err)
		}
	}
}
