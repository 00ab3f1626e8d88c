package lexer

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/midbel/formulae/formula/op"
	"github.com/midbel/formulae/layout"
	"github.com/midbel/formulae/value"
)

type ScannerState struct {
	pos  int
	next int
	char rune
	size int
}

type Scanner struct {
	input []byte
	pos   int
	next  int
	char  rune

	buf bytes.Buffer
}

func Scan(formula string) *Scanner {
	scan := Scanner{
		input: []byte(formula),
	}
	scan.read()
	scan.skipBlanks()
	if scan.char == equal {
		scan.read()
	}
	return &scan
}

func (s *Scanner) Save() ScannerState {
	return ScannerState{
		pos:  s.pos,
		next: s.next,
		char: s.char,
		size: s.buf.Len(),
	}
}

func (s *Scanner) Restore(state ScannerState) {
	s.pos = state.pos
	s.next = state.next
	s.char = state.char
	s.buf.Truncate(state.size)
}

func (s *Scanner) Scan() (Token, error) {
	s.skipBlanks()

	var (
		tok Token
		err error
	)
	tok.Offset = s.pos
	if s.done() {
		tok.Type = op.EOF
		return tok, nil
	}
	defer s.reset()
	switch {
	case isOperator(s.char):
		s.scanOperator(&tok)
	case isDelimiter(s.char):
		s.scanDelimiter(&tok)
	case s.char == dquote:
		err = s.scanLiteral(&tok)
	case s.char == pound:
		err = s.scanError(&tok)
	case isDigit(s.char) || (s.char == dot && isDigit(s.peek())):
		err = s.scanNumber(&tok)
	case s.char == lsquare || s.char == squote || isWordStart(s.char):
		err = s.scanIdent(&tok)
	default:
		err = syntaxError(s.pos, "unexpected character %q", s.char)
	}
	return tok, err
}

func (s *Scanner) scanIdent(tok *Token) error {
	if s.char == lsquare {
		for !s.done() && s.char != rsquare {
			s.write()
			s.read()
		}
		if s.char != rsquare {
			return syntaxError(tok.Offset, "unterminated workbook name")
		}
		s.write()
		s.read()
		if s.char != squote && !isWordStart(s.char) {
			return syntaxError(s.pos, "sheet name expected after workbook")
		}
	}
	var qualified bool
	if s.char == squote {
		if err := s.scanQuotedSheet(); err != nil {
			return err
		}
		if s.char != bang {
			return syntaxError(s.pos, "'!' expected after sheet name")
		}
		qualified = true
	} else {
		s.scanWord()
		qualified = s.char == bang
	}
	mark := 0
	if qualified {
		s.write()
		s.read()
		mark = s.buf.Len()
		if !isWordChar(s.char) {
			return syntaxError(s.pos, "reference expected after sheet name")
		}
		s.scanWord()
	}
	if s.char == colon {
		s.scanRangeEnd(mark)
	}
	tok.Literal = s.literal()
	switch {
	case qualified || strings.HasPrefix(tok.Literal, "["):
		if _, err := layout.ParseAddress(tok.Literal); err != nil {
			return syntaxError(tok.Offset, "invalid reference %s", tok.Literal)
		}
		tok.Type = op.Reference
	case s.char == lparen:
		s.read()
		tok.Type = op.Call
	case strings.EqualFold(tok.Literal, "true") || strings.EqualFold(tok.Literal, "false"):
		tok.Type = op.Boolean
		tok.Literal = strings.ToUpper(tok.Literal)
	case isReference(tok.Literal):
		tok.Type = op.Reference
	default:
		tok.Type = op.Ident
	}
	return nil
}

// scanRangeEnd extends the reference being scanned with the second half of
// a range when what follows the colon makes a valid range with the text
// written since mark.
func (s *Scanner) scanRangeEnd(mark int) {
	var (
		state = s.Save()
		first = s.literal()[mark:]
	)
	s.read()
	if !isWordChar(s.char) {
		s.Restore(state)
		return
	}
	from := s.buf.Len()
	s.scanWord()
	second := s.literal()[from:]
	s.buf.Truncate(from)
	if s.char == bang || s.char == lparen {
		s.Restore(state)
		return
	}
	if _, err := layout.ParseRange(first + ":" + second); err != nil {
		s.Restore(state)
		return
	}
	s.buf.WriteRune(colon)
	s.buf.WriteString(second)
}

func (s *Scanner) scanQuotedSheet() error {
	offset := s.pos
	s.write()
	s.read()
	for !s.done() {
		if s.char == squote {
			s.write()
			s.read()
			if s.char != squote {
				return nil
			}
		}
		s.write()
		s.read()
	}
	return syntaxError(offset, "unterminated sheet name")
}

func (s *Scanner) scanWord() {
	for !s.done() && isWordChar(s.char) {
		s.write()
		s.read()
	}
}

func (s *Scanner) scanNumber(tok *Token) error {
	tok.Type = op.Number
	for !s.done() && isDigit(s.char) {
		s.write()
		s.read()
	}
	if s.char == colon && s.buf.Len() > 0 {
		s.scanRangeEnd(0)
		if str := s.literal(); strings.Contains(str, ":") {
			tok.Type = op.Reference
			tok.Literal = str
			return nil
		}
	}
	if s.char == dot {
		s.write()
		s.read()
		for !s.done() && isDigit(s.char) {
			s.write()
			s.read()
		}
	}
	if s.char == 'e' || s.char == 'E' {
		s.write()
		s.read()
		if s.char == plus || s.char == minus {
			s.write()
			s.read()
		}
		if !isDigit(s.char) {
			return syntaxError(s.pos, "invalid number %s", s.literal())
		}
		for !s.done() && isDigit(s.char) {
			s.write()
			s.read()
		}
	}
	if isWordStart(s.char) {
		return syntaxError(s.pos, "unexpected character %q after number", s.char)
	}
	tok.Literal = s.literal()
	return nil
}

func (s *Scanner) scanLiteral(tok *Token) error {
	s.read()
	for !s.done() {
		if s.char == dquote {
			s.read()
			if s.char != dquote {
				tok.Type = op.Literal
				tok.Literal = s.literal()
				return nil
			}
		}
		s.write()
		s.read()
	}
	return syntaxError(tok.Offset, "unterminated string")
}

func (s *Scanner) scanError(tok *Token) error {
	rest := strings.ToUpper(string(s.input[s.pos:]))
	for _, code := range errorCodes {
		if !strings.HasPrefix(rest, code) {
			continue
		}
		for range len(code) {
			s.read()
		}
		tok.Type = op.Error
		tok.Literal = code
		return nil
	}
	return syntaxError(tok.Offset, "unknown error literal")
}

func (s *Scanner) scanOperator(tok *Token) {
	tok.Type = op.Invalid
	switch s.char {
	case amper:
		tok.Type = op.Concat
	case percent:
		tok.Type = op.Percent
	case plus:
		tok.Type = op.Add
	case minus:
		tok.Type = op.Sub
	case star:
		tok.Type = op.Mul
	case slash:
		tok.Type = op.Div
	case caret:
		tok.Type = op.Pow
	case langle:
		tok.Type = op.Lt
		if k := s.peek(); k == equal {
			s.read()
			tok.Type = op.Le
		} else if k == rangle {
			s.read()
			tok.Type = op.Ne
		}
	case rangle:
		tok.Type = op.Gt
		if s.peek() == equal {
			s.read()
			tok.Type = op.Ge
		}
	case equal:
		tok.Type = op.Eq
	case colon:
		tok.Type = op.Union
	default:
	}
	tok.Literal = op.Symbol(tok.Type)
	s.read()
}

func (s *Scanner) scanDelimiter(tok *Token) {
	tok.Type = op.Invalid
	switch s.char {
	case comma:
		tok.Type = op.Comma
	case semi:
		tok.Type = op.Semicolon
	case lparen:
		tok.Type = op.BegGrp
	case rparen:
		tok.Type = op.EndGrp
	case lcurly:
		tok.Type = op.BegArr
	case rcurly:
		tok.Type = op.EndArr
	default:
	}
	tok.Literal = string(s.char)
	s.read()
}

func (s *Scanner) literal() string {
	return s.buf.String()
}

func (s *Scanner) write() {
	s.buf.WriteRune(s.char)
}

func (s *Scanner) reset() {
	s.buf.Reset()
}

func (s *Scanner) read() {
	if s.next >= len(s.input) {
		s.pos = len(s.input)
		s.char = 0
		return
	}
	r, n := utf8.DecodeRune(s.input[s.next:])
	s.char, s.pos, s.next = r, s.next, s.next+n
}

func (s *Scanner) peek() rune {
	if s.next >= len(s.input) {
		return 0
	}
	r, _ := utf8.DecodeRune(s.input[s.next:])
	return r
}

func (s *Scanner) done() bool {
	return s.char == 0
}

func (s *Scanner) skipBlanks() {
	for isBlank(s.char) {
		s.read()
	}
}

var errorCodes = []string{
	string(value.CodeDiv0),
	string(value.CodeValue),
	string(value.CodeSpill),
	string(value.CodeNull),
	string(value.CodeName),
	string(value.CodeNum),
	string(value.CodeRef),
	string(value.CodeNA),
}

func isReference(str string) bool {
	_, err := layout.ParseAddress(str)
	return err == nil
}

const (
	underscore = '_'
	bang       = '!'
	semi       = ';'
	comma      = ','
	rparen     = ')'
	lparen     = '('
	lcurly     = '{'
	rcurly     = '}'
	squote     = '\''
	dquote     = '"'
	space      = ' '
	tab        = '\t'
	plus       = '+'
	minus      = '-'
	star       = '*'
	slash      = '/'
	caret      = '^'
	equal      = '='
	langle     = '<'
	rangle     = '>'
	colon      = ':'
	dot        = '.'
	amper      = '&'
	percent    = '%'
	dollar     = '$'
	nl         = '\n'
	cr         = '\r'
	pound      = '#'
	lsquare    = '['
	rsquare    = ']'
)

func isLetter(c rune) bool {
	if c < utf8.RuneSelf {
		return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == underscore
	}
	return unicode.IsLetter(c)
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isWordStart(c rune) bool {
	return isLetter(c) || c == dollar
}

func isWordChar(c rune) bool {
	return isLetter(c) || isDigit(c) || c == dollar || c == dot
}

func isBlank(c rune) bool {
	return c == space || c == tab || c == nl || c == cr
}

func isDelimiter(c rune) bool {
	return c == semi || c == lparen || c == rparen ||
		c == comma || c == lcurly || c == rcurly
}

func isOperator(c rune) bool {
	return c == plus || c == minus || c == slash || c == star ||
		c == langle || c == rangle || c == colon || c == equal ||
		c == caret || c == amper || c == percent
}
