package parse

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/midbel/formulae/formula/op"
)

func Dump(tree *Tree) string {
	var buf bytes.Buffer
	if tree != nil && tree.Len() > 0 {
		dumpNode(&buf, tree, tree.Root)
	}
	return buf.String()
}

func dumpNode(w io.Writer, tree *Tree, ix int) {
	n := tree.At(ix)
	switch n.Kind {
	case KindNumber:
		io.WriteString(w, "number(")
		io.WriteString(w, n.Value.String())
		io.WriteString(w, ")")
	case KindText:
		io.WriteString(w, "literal(")
		io.WriteString(w, strconv.Quote(n.Value.String()))
		io.WriteString(w, ")")
	case KindBoolean:
		io.WriteString(w, "boolean(")
		io.WriteString(w, n.Value.String())
		io.WriteString(w, ")")
	case KindError:
		io.WriteString(w, "error(")
		io.WriteString(w, n.Value.String())
		io.WriteString(w, ")")
	case KindBlank:
		io.WriteString(w, "blank()")
	case KindArray:
		io.WriteString(w, "array(")
		io.WriteString(w, n.Value.String())
		io.WriteString(w, ")")
	case KindReference:
		io.WriteString(w, "reference(")
		io.WriteString(w, n.Address.String())
		io.WriteString(w, ")")
	case KindName:
		io.WriteString(w, "name(")
		io.WriteString(w, n.Token)
		io.WriteString(w, ")")
	case KindPrefix:
		io.WriteString(w, "unary(")
		dumpNode(w, tree, n.Children[0])
		io.WriteString(w, ", ")
		io.WriteString(w, op.Symbol(n.Op))
		io.WriteString(w, ")")
	case KindPostfix:
		io.WriteString(w, "postfix(")
		dumpNode(w, tree, n.Children[0])
		io.WriteString(w, ", ")
		io.WriteString(w, op.Symbol(n.Op))
		io.WriteString(w, ")")
	case KindBinary:
		io.WriteString(w, "binary(")
		dumpNode(w, tree, n.Children[0])
		io.WriteString(w, ", ")
		dumpNode(w, tree, n.Children[1])
		io.WriteString(w, ", ")
		io.WriteString(w, op.Symbol(n.Op))
		io.WriteString(w, ")")
	case KindUnion:
		io.WriteString(w, "union(")
		dumpNode(w, tree, n.Children[0])
		io.WriteString(w, ", ")
		dumpNode(w, tree, n.Children[1])
		io.WriteString(w, ")")
	case KindCall:
		io.WriteString(w, "call(")
		io.WriteString(w, n.Func.Name)
		dumpArgs(w, tree, n.Children)
		io.WriteString(w, ")")
	case KindInvalid:
		io.WriteString(w, "invalid(")
		io.WriteString(w, n.Token)
		io.WriteString(w, ", ")
		io.WriteString(w, n.Value.String())
		dumpArgs(w, tree, n.Children)
		io.WriteString(w, ")")
	default:
		io.WriteString(w, fmt.Sprintf("unknown(%s)", n.Kind))
	}
}

func dumpArgs(w io.Writer, tree *Tree, list []int) {
	if len(list) == 0 {
		return
	}
	io.WriteString(w, ", args: ")
	for i, c := range list {
		if i > 0 {
			io.WriteString(w, ", ")
		}
		dumpNode(w, tree, c)
	}
}
