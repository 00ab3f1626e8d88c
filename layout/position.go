package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// Position is a 1-based cell coordinate. A zero Line or Column means the
// whole column or the whole row respectively.
type Position struct {
	Line   int64
	Column int64
}

func ParsePosition(addr string) (Position, error) {
	var (
		pos    Position
		offset int
	)
	addr = strings.TrimPrefix(addr, "$")
	pos.Column, offset = ParseIndex(addr)
	if offset == 0 || pos.Column > MaxColumns {
		return pos, fmt.Errorf("%w: %s", ErrAddress, addr)
	}
	rest := strings.TrimPrefix(addr[offset:], "$")
	if rest == "" || rest[0] == '0' || !isDigits(rest) {
		return pos, fmt.Errorf("%w: %s", ErrAddress, addr)
	}
	line, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || line > MaxLines {
		return pos, fmt.Errorf("%w: %s", ErrAddress, addr)
	}
	pos.Line = line
	return pos, nil
}

func (p Position) Equal(other Position) bool {
	return p.Line == other.Line && p.Column == other.Column
}

func (p Position) Addr() string {
	switch {
	case p.Line == 0:
		return ColumnName(p.Column)
	case p.Column == 0:
		return strconv.FormatInt(p.Line, 10)
	default:
		return ColumnName(p.Column) + strconv.FormatInt(p.Line, 10)
	}
}

func (p Position) String() string {
	return p.Addr()
}

func IsAddress(addr string) bool {
	_, err := ParsePosition(addr)
	return err == nil
}

// ParseIndex reads the column letters at the start of str and returns the
// column index with the number of bytes consumed.
func ParseIndex(str string) (int64, int) {
	if len(str) == 0 {
		return 0, 0
	}
	var (
		offset int
		index  int64
	)
	for offset < len(str) && isLetter(rune(str[offset])) {
		delta := byte('A')
		if isLower(rune(str[offset])) {
			delta = 'a'
		}
		index = index*26 + int64(str[offset]-delta+1)
		offset++
		if index > MaxColumns {
			break
		}
	}
	return index, offset
}

func ColumnName(ix int64) string {
	var result string
	for ix > 0 {
		ix--
		result = string(rune('A')+rune(ix%26)) + result
		ix /= 26
	}
	return result
}

func isDigits(str string) bool {
	for i := 0; i < len(str); i++ {
		if str[i] < '0' || str[i] > '9' {
			return false
		}
	}
	return len(str) > 0
}

func isLower(c rune) bool {
	return c >= 'a' && c <= 'z'
}

func isUpper(c rune) bool {
	return c >= 'A' && c <= 'Z'
}

func isLetter(c rune) bool {
	return isLower(c) || isUpper(c)
}
