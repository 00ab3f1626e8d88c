package eval

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/midbel/formulae/formula/builtins"
	"github.com/midbel/formulae/formula/env"
	"github.com/midbel/formulae/formula/op"
	"github.com/midbel/formulae/formula/parse"
	"github.com/midbel/formulae/value"
)

var ErrEval = errors.New("expression can not be evaluated")

type (
	binaryFunc func(value.ScalarValue, value.ScalarValue) value.ScalarValue
	unaryFunc  func(value.ScalarValue) value.ScalarValue
)

var binaries = map[op.Op]binaryFunc{
	op.Add:    value.Add,
	op.Sub:    value.Sub,
	op.Mul:    value.Mul,
	op.Div:    value.Div,
	op.Pow:    value.Pow,
	op.Concat: value.Concat,
	op.Eq:     value.Equal,
	op.Ne:     value.NotEqual,
	op.Lt:     value.Less,
	op.Le:     value.LessEqual,
	op.Gt:     value.Greater,
	op.Ge:     value.GreaterEqual,
}

var unaries = map[op.Op]unaryFunc{
	op.Neg:     value.Negate,
	op.Pos:     value.Identity,
	op.Percent: value.Percent,
}

// interpreter evaluates a tree once. The value of each node is stored at
// the index of the node so that a node only reads the values of its
// children.
type interpreter struct {
	tree       *parse.Tree
	env        *env.Environment
	values     []value.Value
	concurrent bool
}

func newInterpreter(tree *parse.Tree, ev *env.Environment, concurrent bool) *interpreter {
	return &interpreter{
		tree:       tree,
		env:        ev,
		values:     make([]value.Value, tree.Len()),
		concurrent: concurrent,
	}
}

// run evaluates the tree and returns the value of its root as computed,
// references included.
func (i *interpreter) run() (value.Value, error) {
	if i.tree.Len() == 0 {
		return nil, fmt.Errorf("%w: empty tree", ErrEval)
	}
	if i.concurrent {
		if err := i.walk(i.tree.Root); err != nil {
			return nil, err
		}
		return i.values[i.tree.Root], nil
	}
	for ix := range i.tree.PostOrder() {
		v, err := i.exec(ix)
		if err != nil {
			return nil, err
		}
		i.values[ix] = v
	}
	return i.values[i.tree.Root], nil
}

// walk evaluates the children of a node in parallel before the node itself.
func (i *interpreter) walk(ix int) error {
	children := i.tree.At(ix).Children
	if len(children) == 1 {
		if err := i.walk(children[0]); err != nil {
			return err
		}
	} else if len(children) > 1 {
		var grp errgroup.Group
		for _, c := range children {
			grp.Go(func() (err error) {
				defer func() {
					if r := recover(); r != nil {
						err = fmt.Errorf("%w: %v", ErrEval, r)
					}
				}()
				return i.walk(c)
			})
		}
		if err := grp.Wait(); err != nil {
			return err
		}
	}
	v, err := i.exec(ix)
	if err != nil {
		return err
	}
	i.values[ix] = v
	return nil
}

func (i *interpreter) exec(ix int) (value.Value, error) {
	n := i.tree.At(ix)
	switch n.Kind {
	case parse.KindInvalid, parse.KindBlank, parse.KindNumber, parse.KindText,
		parse.KindBoolean, parse.KindError, parse.KindArray:
		return n.Value, nil
	case parse.KindReference:
		return i.env.Reference(n.Address), nil
	case parse.KindName:
		return i.execName(n)
	case parse.KindPrefix, parse.KindPostfix:
		return i.execUnary(n)
	case parse.KindBinary:
		return i.execBinary(n)
	case parse.KindUnion:
		return i.execUnion(n)
	case parse.KindCall:
		return i.execCall(n)
	default:
		return nil, fmt.Errorf("%w: unknown node %s", ErrEval, n.Kind)
	}
}

func (i *interpreter) execName(n *parse.Node) (value.Value, error) {
	v, err := i.env.Resolve(n.Token)
	if err != nil {
		if errors.Is(err, env.ErrUndefined) {
			return value.ErrName, nil
		}
		return nil, err
	}
	return v, nil
}

func (i *interpreter) execUnary(n *parse.Node) (value.Value, error) {
	do, ok := unaries[n.Op]
	if !ok {
		return nil, fmt.Errorf("%w: unknown operator %s", ErrEval, n.Token)
	}
	val := i.env.Deref(i.values[n.Children[0]])
	return value.Unary(val, do), nil
}

func (i *interpreter) execBinary(n *parse.Node) (value.Value, error) {
	do, ok := binaries[n.Op]
	if !ok {
		return nil, fmt.Errorf("%w: unknown operator %s", ErrEval, n.Token)
	}
	var (
		left  = i.env.Deref(i.values[n.Children[0]])
		right = i.env.Deref(i.values[n.Children[1]])
	)
	if e, ok := value.FirstError(left, right); ok {
		return e, nil
	}
	return value.Broadcast(left, right, do), nil
}

func (i *interpreter) execUnion(n *parse.Node) (value.Value, error) {
	var (
		left  = i.values[n.Children[0]]
		right = i.values[n.Children[1]]
	)
	ref, ok := left.(value.Reference)
	if !ok {
		return value.ErrRef, nil
	}
	return ref.Union(right), nil
}

// execCall gives the values of the arguments to the function. References
// are read into arrays unless the function asks for them.
func (i *interpreter) execCall(n *parse.Node) (value.Value, error) {
	args := make([]value.Value, len(n.Children))
	for j, c := range n.Children {
		arg := i.values[c]
		if ref, ok := arg.(value.Reference); ok && !n.Func.References {
			arg = i.env.Materialize(ref)
		}
		args[j] = arg
	}
	res, err := n.Func.Call(args)
	if err != nil {
		if errors.Is(err, builtins.ErrArity) {
			return value.ErrNA, nil
		}
		return nil, fmt.Errorf("%s: %w", n.Func.Name, err)
	}
	if res == nil {
		return value.Blank{}, nil
	}
	return res, nil
}

// result turns the value of the root into the value of the formula.
func result(ev *env.Environment, val value.Value) value.Value {
	val = ev.Deref(val)
	if arr, ok := val.(value.Array); ok {
		return arr.Unwrap()
	}
	return val
}
