package layout

import (
	"fmt"
	"strings"
)

// Address is a range optionally qualified by a sheet and a workbook name:
// [Book]Sheet!A1:B2.
type Address struct {
	Book  string
	Sheet string
	Range Range
}

func ParseAddress(str string) (Address, error) {
	var (
		addr Address
		rest = str
	)
	if strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end <= 1 {
			return addr, fmt.Errorf("%w: %s", ErrAddress, str)
		}
		addr.Book, rest = rest[1:end], rest[end+1:]
	}
	if strings.HasPrefix(rest, "'") {
		name, tail, err := unquoteSheet(rest)
		if err != nil {
			return addr, fmt.Errorf("%w: %s", err, str)
		}
		if !strings.HasPrefix(tail, "!") {
			return addr, fmt.Errorf("%w: %s", ErrAddress, str)
		}
		addr.Sheet, rest = name, tail[1:]
	} else if ix := strings.IndexByte(rest, '!'); ix >= 0 {
		if ix == 0 {
			return addr, fmt.Errorf("%w: %s", ErrAddress, str)
		}
		addr.Sheet, rest = rest[:ix], rest[ix+1:]
	}
	if addr.Book != "" && addr.Sheet == "" {
		return addr, fmt.Errorf("%w: workbook without sheet: %s", ErrAddress, str)
	}
	rg, err := ParseRange(rest)
	if err != nil {
		return addr, err
	}
	addr.Range = rg
	return addr, nil
}

func (a Address) String() string {
	var str strings.Builder
	if a.Book != "" {
		str.WriteString("[")
		str.WriteString(a.Book)
		str.WriteString("]")
	}
	if a.Sheet != "" {
		str.WriteString(QuoteSheet(a.Sheet))
		str.WriteString("!")
	}
	str.WriteString(a.Range.String())
	return str.String()
}

// QuoteSheet wraps name in single quotes when it can not be written bare
// in a formula.
func QuoteSheet(name string) string {
	if !needQuote(name) {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func needQuote(name string) bool {
	if name == "" {
		return true
	}
	if c := name[0]; c >= '0' && c <= '9' {
		return true
	}
	for _, c := range name {
		if isLetter(c) || (c >= '0' && c <= '9') || c == '_' || c == '.' || c > 127 {
			continue
		}
		return true
	}
	return IsAddress(name)
}

func unquoteSheet(str string) (string, string, error) {
	var name strings.Builder
	for i := 1; i < len(str); i++ {
		if str[i] != '\'' {
			name.WriteByte(str[i])
			continue
		}
		if i+1 < len(str) && str[i+1] == '\'' {
			name.WriteByte('\'')
			i++
			continue
		}
		if name.Len() == 0 {
			break
		}
		return name.String(), str[i+1:], nil
	}
	return "", "", fmt.Errorf("%w: unterminated sheet name", ErrAddress)
}
