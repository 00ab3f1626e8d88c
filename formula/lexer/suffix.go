package lexer

import (
	"github.com/midbel/formulae/formula/op"
)

const (
	powLowest = iota
	powCmp
	powConcat
	powAdd
	powMul
	powPow
	powPercent
	powUnary
	powUnion
)

var bindings = map[op.Op]int{
	op.Eq:      powCmp,
	op.Ne:      powCmp,
	op.Lt:      powCmp,
	op.Le:      powCmp,
	op.Gt:      powCmp,
	op.Ge:      powCmp,
	op.Concat:  powConcat,
	op.Add:     powAdd,
	op.Sub:     powAdd,
	op.Mul:     powMul,
	op.Div:     powMul,
	op.Pow:     powPow,
	op.Percent: powPercent,
	op.Pos:     powUnary,
	op.Neg:     powUnary,
	op.Union:   powUnion,
}

// Precedence returns the binding power of an operator, higher binding
// tighter.
func Precedence(oper op.Op) int {
	return bindings[oper]
}

// Suffix reorders every sequence of the tree in postfix order. A postfix
// sequence is not a fixed point of the reordering (1 2 - 3 - would become
// 1 2 3 - -), so every sequence records that it has been reordered and is
// left untouched afterwards. Calling Suffix more than once has no effect.
func Suffix(root *Node) *Node {
	if root == nil {
		return root
	}
	for _, c := range root.Children {
		if !c.Leaf() {
			Suffix(c)
		}
	}
	switch root.Type {
	case op.Root, op.BegGrp, op.Arg:
		if !root.suffix {
			root.Children = postfix(root.Children)
			root.suffix = true
		}
	default:
	}
	return root
}

func postfix(list []*Node) []*Node {
	var (
		output = make([]*Node, 0, len(list))
		stack  []*Node
	)
	pop := func() {
		n := len(stack) - 1
		output = append(output, stack[n])
		stack = stack[:n]
	}
	for _, n := range list {
		switch {
		case op.IsPrefix(n.Type):
			stack = append(stack, n)
		case op.IsPostfix(n.Type):
			for len(stack) > 0 && Precedence(stack[len(stack)-1].Type) > Precedence(n.Type) {
				pop()
			}
			output = append(output, n)
		case op.IsBinary(n.Type):
			curr := Precedence(n.Type)
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				prev := Precedence(top.Type)
				if prev < curr || (prev == curr && !op.IsBinary(top.Type)) {
					break
				}
				pop()
			}
			stack = append(stack, n)
		default:
			output = append(output, n)
		}
	}
	for len(stack) > 0 {
		pop()
	}
	return output
}
