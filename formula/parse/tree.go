package parse

import (
	"iter"

	"github.com/midbel/formulae/formula/builtins"
	"github.com/midbel/formulae/formula/op"
	"github.com/midbel/formulae/layout"
	"github.com/midbel/formulae/value"
)

type Kind int8

const (
	KindInvalid Kind = iota
	KindBlank
	KindNumber
	KindText
	KindBoolean
	KindError
	KindArray
	KindReference
	KindName
	KindPrefix
	KindPostfix
	KindBinary
	KindUnion
	KindCall
)

var kindNames = map[Kind]string{
	KindInvalid:   "invalid",
	KindBlank:     "blank",
	KindNumber:    "number",
	KindText:      "text",
	KindBoolean:   "boolean",
	KindError:     "error",
	KindArray:     "array",
	KindReference: "reference",
	KindName:      "name",
	KindPrefix:    "prefix",
	KindPostfix:   "postfix",
	KindBinary:    "binary",
	KindUnion:     "union",
	KindCall:      "call",
}

func (k Kind) String() string {
	if str, ok := kindNames[k]; ok {
		return str
	}
	return "unknown"
}

// Constant reports whether nodes of this kind hold their value.
func (k Kind) Constant() bool {
	switch k {
	case KindInvalid, KindBlank, KindNumber, KindText, KindBoolean, KindError, KindArray:
		return true
	default:
		return false
	}
}

// Node is an element of the tree. Children are indices in the same tree.
type Node struct {
	Kind     Kind
	Token    string
	Offset   int
	Op       op.Op
	Children []int

	Value   value.Value
	Address layout.Address
	Func    builtins.Definition

	Priority int
}

// Tree stores the nodes of a formula in the order they were created:
// children always come before their parent and the root is the last node.
type Tree struct {
	Nodes []Node
	Root  int
}

func (t *Tree) Len() int {
	return len(t.Nodes)
}

func (t *Tree) At(ix int) *Node {
	return &t.Nodes[ix]
}

func (t *Tree) append(n Node) int {
	t.Nodes = append(t.Nodes, n)
	return len(t.Nodes) - 1
}

// PostOrder yields the indices of the nodes reachable from the root,
// children before their parent.
func (t *Tree) PostOrder() iter.Seq[int] {
	return func(yield func(int) bool) {
		if len(t.Nodes) == 0 {
			return
		}
		t.walk(t.Root, yield)
	}
}

func (t *Tree) walk(ix int, yield func(int) bool) bool {
	for _, c := range t.Nodes[ix].Children {
		if !t.walk(c, yield) {
			return false
		}
	}
	return yield(ix)
}

// Names returns the defined names used by the formula.
func (t *Tree) Names() []string {
	var list []string
	for ix := range t.PostOrder() {
		if n := t.Nodes[ix]; n.Kind == KindName {
			list = append(list, n.Token)
		}
	}
	return list
}

// References returns the addresses of the formula as written.
func (t *Tree) References() []layout.Address {
	var list []layout.Address
	for ix := range t.PostOrder() {
		if n := t.Nodes[ix]; n.Kind == KindReference {
			list = append(list, n.Address)
		}
	}
	return list
}
