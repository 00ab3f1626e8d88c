package op

type Op rune

const (
	Invalid Op = 0

	EOF Op = 1 << iota
	Number
	Literal
	Boolean
	Error
	Reference
	Ident
	Add
	Sub
	Mul
	Div
	Percent
	Pow
	Concat
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	Union
	Pos
	Neg
	Comma
	Semicolon
	Begin
	End
	Root
	Arg
	Row
)

const (
	groupTok Op = 1 << iota
	arrayTok
	callTok
)

const (
	BegGrp = groupTok | Begin
	EndGrp = groupTok | End
	BegArr = arrayTok | Begin
	EndArr = arrayTok | End
	Call   = callTok | Begin
)

var mapping = map[Op]string{
	Add:     "+",
	Sub:     "-",
	Mul:     "*",
	Pow:     "^",
	Div:     "/",
	Percent: "%",
	Concat:  "&",
	Eq:      "=",
	Ne:      "<>",
	Lt:      "<",
	Le:      "<=",
	Gt:      ">",
	Ge:      ">=",
	Union:   ":",
	Pos:     "+",
	Neg:     "-",
}

var names = map[Op]string{
	EOF:       "eof",
	Number:    "number",
	Literal:   "literal",
	Boolean:   "boolean",
	Error:     "error",
	Reference: "reference",
	Ident:     "name",
	Comma:     "comma",
	Semicolon: "semicolon",
	BegGrp:    "group",
	EndGrp:    "end-group",
	BegArr:    "array",
	EndArr:    "end-array",
	Call:      "call",
	Root:      "root",
	Arg:       "argument",
	Row:       "row",
	Pos:       "prefix",
	Neg:       "prefix",
	Percent:   "postfix",
}

func Symbol(oper Op) string {
	return mapping[oper]
}

func (o Op) String() string {
	if str, ok := names[o]; ok {
		return str
	}
	if IsBinary(o) {
		return "operator"
	}
	return "invalid"
}

func IsBinary(oper Op) bool {
	switch oper {
	case Add, Sub, Mul, Div, Pow, Concat, Eq, Ne, Lt, Le, Gt, Ge, Union:
		return true
	default:
		return false
	}
}

func IsPrefix(oper Op) bool {
	return oper == Pos || oper == Neg
}

func IsPostfix(oper Op) bool {
	return oper == Percent
}

func IsOperator(oper Op) bool {
	return IsBinary(oper) || IsPrefix(oper) || IsPostfix(oper)
}

func IsComparison(oper Op) bool {
	switch oper {
	case Eq, Ne, Lt, Le, Gt, Ge:
		return true
	default:
		return false
	}
}

// IsContainer reports whether nodes of this type hold a sequence of child
// nodes instead of a single token.
func IsContainer(oper Op) bool {
	switch oper {
	case Root, BegGrp, Call, Arg, BegArr, Row:
		return true
	default:
		return false
	}
}
