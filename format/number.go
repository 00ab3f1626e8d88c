package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/midbel/formulae/value"
)

const GeneralPattern = "General"

// numberSection is one part of a number pattern. A pattern holds up to
// three sections separated by semicolons used for positive, negative and
// zero values. An empty section hides the values it applies to. Only the
// first section requires a digit placeholder.
type numberSection struct {
	prefix string
	suffix string

	minInt int
	minDec int
	maxDec int

	grouping bool
	percent  bool
	hidden   bool
	textOnly bool
}

type numberFormatter struct {
	sections []numberSection
}

// ParseNumberFormatter compiles a number pattern. Digits are written with
// 0 (mandatory) and # (optional), a comma between digits groups thousands,
// % scales the value by 100. Text between double quotes and characters
// escaped with a backslash are copied as is.
func ParseNumberFormatter(pattern string) (Formatter, error) {
	if strings.EqualFold(pattern, GeneralPattern) {
		return generalFormatter{}, nil
	}
	parts, err := splitSections(pattern)
	if err != nil {
		return nil, err
	}
	if len(parts) > 3 {
		return nil, fmt.Errorf("%w: too many sections in %q", ErrPattern, pattern)
	}
	var nf numberFormatter
	for i, p := range parts {
		if p == "" && i > 0 {
			nf.sections = append(nf.sections, numberSection{hidden: true})
			continue
		}
		sec, err := parseSection(p, i == 0)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %s", ErrPattern, pattern, err)
		}
		nf.sections = append(nf.sections, sec)
	}
	return nf, nil
}

func (nf numberFormatter) Format(v value.Value) (string, error) {
	n, ok := v.(value.Numeric)
	if !ok {
		return "", fmt.Errorf("%w: %s is not a number", ErrFormat, v.Type())
	}
	var (
		num  = n.Number()
		sec  = nf.sections[0]
		sign bool
	)
	switch {
	case num < 0 && len(nf.sections) > 1:
		sec, num = nf.sections[1], -num
	case num == 0 && len(nf.sections) > 2:
		sec = nf.sections[2]
	case num < 0:
		sign, num = true, -num
	}
	return sec.format(num, sign), nil
}

func (s numberSection) format(num float64, sign bool) string {
	if s.hidden {
		return ""
	}
	if s.textOnly {
		return s.prefix
	}
	if s.percent {
		num *= 100
	}
	scale := math.Pow10(s.maxDec)
	num = math.Round(num*scale) / scale

	str := strconv.FormatFloat(num, 'f', s.maxDec, 64)
	left, right, _ := strings.Cut(str, ".")
	right = strings.TrimRight(right, "0")
	if n := len(right); n < s.minDec {
		right += strings.Repeat("0", s.minDec-n)
	}
	if n := len(left); n < s.minInt {
		left = strings.Repeat("0", s.minInt-n) + left
	}
	if s.grouping {
		left = groupThousands(left)
	}

	var w strings.Builder
	if sign && strings.Trim(left+right, "0,") != "" {
		w.WriteByte('-')
	}
	w.WriteString(s.prefix)
	w.WriteString(left)
	if right != "" {
		w.WriteByte('.')
		w.WriteString(right)
	}
	w.WriteString(s.suffix)
	return w.String()
}

func parseSection(str string, required bool) (numberSection, error) {
	var (
		sec      numberSection
		prefix   strings.Builder
		suffix   strings.Builder
		digits   bool
		decimal  bool
		optional bool
	)
	literal := func(s string) {
		if digits {
			suffix.WriteString(s)
		} else {
			prefix.WriteString(s)
		}
	}
	for i := 0; i < len(str); i++ {
		switch c := str[i]; c {
		case '"':
			j := strings.IndexByte(str[i+1:], '"')
			if j < 0 {
				return sec, fmt.Errorf("unterminated literal")
			}
			literal(str[i+1 : i+1+j])
			i += j + 1
		case '\\':
			if i+1 >= len(str) {
				return sec, fmt.Errorf("nothing to escape")
			}
			_, z := utf8.DecodeRuneInString(str[i+1:])
			literal(str[i+1 : i+1+z])
			i += z
		case '0', '#':
			if suffix.Len() > 0 {
				return sec, fmt.Errorf("digit placeholder after literal text")
			}
			digits = true
			if !decimal {
				if c == '0' {
					sec.minInt++
				}
				break
			}
			if c == '0' {
				if optional {
					return sec, fmt.Errorf("mandatory digit after optional digit")
				}
				sec.minDec++
			} else {
				optional = true
			}
			sec.maxDec++
		case ',':
			if !digits || decimal {
				literal(",")
				break
			}
			sec.grouping = true
		case '.':
			if decimal {
				return sec, fmt.Errorf("decimal separator repeated")
			}
			decimal = true
		case '%':
			sec.percent = true
			literal("%")
		default:
			_, z := utf8.DecodeRuneInString(str[i:])
			literal(str[i : i+z])
			i += z - 1
		}
	}
	if !digits && required {
		return sec, fmt.Errorf("no digit placeholder")
	}
	sec.textOnly = !digits
	sec.prefix = prefix.String()
	sec.suffix = suffix.String()
	return sec, nil
}

// splitSections cuts pattern on the semicolons found outside of quoted text.
func splitSections(pattern string) ([]string, error) {
	var (
		parts  []string
		offset int
		quoted bool
	)
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '"':
			quoted = !quoted
		case '\\':
			i++
		case ';':
			if quoted {
				break
			}
			parts = append(parts, pattern[offset:i])
			offset = i + 1
		}
	}
	if quoted {
		return nil, fmt.Errorf("%w: unterminated literal in %q", ErrPattern, pattern)
	}
	return append(parts, pattern[offset:]), nil
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var (
		w    strings.Builder
		head = len(digits) % 3
	)
	w.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		if w.Len() > 0 {
			w.WriteByte(',')
		}
		w.WriteString(digits[i : i+3])
	}
	return w.String()
}

type generalFormatter struct{}

func (generalFormatter) Format(v value.Value) (string, error) {
	n, ok := v.(value.Numeric)
	if !ok {
		return "", fmt.Errorf("%w: %s is not a number", ErrFormat, v.Type())
	}
	return strconv.FormatFloat(n.Number(), 'f', -1, 64), nil
}
