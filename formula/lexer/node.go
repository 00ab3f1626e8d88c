package lexer

import (
	"strings"

	"github.com/midbel/formulae/formula/op"
)

// Node is one unit of the token tree: a leaf holding an operand or an
// operator, or a container holding a sequence (root, group, argument, array
// row) or a list of sequences (call arguments, array rows).
type Node struct {
	Token    string
	Type     op.Op
	Offset   int
	Children []*Node

	suffix bool
}

func createNode(kind op.Op, token string, offset int) *Node {
	return &Node{
		Token:  token,
		Type:   kind,
		Offset: offset,
	}
}

func createLeaf(tok Token) *Node {
	return createNode(tok.Type, tok.Literal, tok.Offset)
}

func (n *Node) Leaf() bool {
	return !op.IsContainer(n.Type)
}

func (n *Node) Append(child *Node) {
	n.Children = append(n.Children, child)
}

// Suffixed reports whether the sequence of the node has been reordered in
// postfix order.
func (n *Node) Suffixed() bool {
	return n.suffix
}

type Serialized struct {
	Token    string       `yaml:"token,omitempty" json:"token,omitempty"`
	Type     string       `yaml:"type" json:"type"`
	Children []Serialized `yaml:"children,omitempty" json:"children,omitempty"`
}

func (n *Node) Serialize() Serialized {
	s := Serialized{
		Token: n.Token,
		Type:  n.Type.String(),
	}
	for _, c := range n.Children {
		s.Children = append(s.Children, c.Serialize())
	}
	return s
}

func (n *Node) String() string {
	var str strings.Builder
	n.write(&str)
	return str.String()
}

func (n *Node) write(str *strings.Builder) {
	switch n.Type {
	case op.Root, op.Arg:
		writeSequence(str, n.Children, " ")
	case op.BegGrp:
		str.WriteString("(")
		writeSequence(str, n.Children, " ")
		str.WriteString(")")
	case op.Call:
		str.WriteString(n.Token)
		str.WriteString("(")
		writeSequence(str, n.Children, ", ")
		str.WriteString(")")
	case op.BegArr:
		str.WriteString("{")
		writeSequence(str, n.Children, ";")
		str.WriteString("}")
	case op.Row:
		writeSequence(str, n.Children, ",")
	case op.Neg:
		str.WriteString("neg")
	case op.Pos:
		str.WriteString("pos")
	case op.Literal:
		str.WriteString("\"")
		str.WriteString(strings.ReplaceAll(n.Token, "\"", "\"\""))
		str.WriteString("\"")
	default:
		str.WriteString(n.Token)
	}
}

func writeSequence(str *strings.Builder, list []*Node, sep string) {
	for i, c := range list {
		if i > 0 {
			str.WriteString(sep)
		}
		c.write(str)
	}
}
