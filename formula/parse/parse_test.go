package parse

import (
	"errors"
	"slices"
	"testing"

	"github.com/midbel/formulae/formula/lexer"
	"github.com/midbel/formulae/formula/op"
	"github.com/midbel/formulae/value"
)

func TestParse(t *testing.T) {
	tests := []struct {
		Expr string
		Want string
	}{
		{
			Expr: "=1+2*3",
			Want: "binary(number(1), binary(number(2), number(3), *), +)",
		},
		{
			Expr: "=(1+2)*3",
			Want: "binary(binary(number(1), number(2), +), number(3), *)",
		},
		{
			Expr: "=2^3^2",
			Want: "binary(binary(number(2), number(3), ^), number(2), ^)",
		},
		{
			Expr: "=-2^2",
			Want: "binary(unary(number(2), -), number(2), ^)",
		},
		{
			Expr: "=5%",
			Want: "postfix(number(5), %)",
		},
		{
			Expr: "=1<2<3",
			Want: "binary(binary(number(1), number(2), <), number(3), <)",
		},
		{
			Expr: "=\"a\"&TRUE",
			Want: "binary(literal(\"a\"), boolean(TRUE), &)",
		},
		{
			Expr: "=#N/A",
			Want: "error(#N/A)",
		},
		{
			Expr: "=SUM(A1:B2, 1)",
			Want: "call(SUM, args: reference(A1:B2), number(1))",
		},
		{
			Expr: "=sum(1,,2)",
			Want: "call(SUM, args: number(1), blank(), number(2))",
		},
		{
			Expr: "=Sheet1!A1:Sheet1!B2",
			Want: "union(reference(Sheet1!A1), reference(Sheet1!B2))",
		},
		{
			Expr: "='My sheet'!a1*2",
			Want: "binary(reference('My sheet'!A1), number(2), *)",
		},
		{
			Expr: "={1,2;3,-4}",
			Want: "array({1,2;3,-4})",
		},
		{
			Expr: "=total*2",
			Want: "binary(name(total), number(2), *)",
		},
		{
			Expr: "=FOO(1)+1",
			Want: "binary(invalid(FOO, #NAME?, args: number(1)), number(1), +)",
		},
		{
			Expr: "=ROUND(1)",
			Want: "invalid(ROUND, #N/A, args: number(1))",
		},
	}
	for _, c := range tests {
		tree, err := ParseString(c.Expr)
		if err != nil {
			t.Errorf("%s: fail to parse: %s", c.Expr, err)
			continue
		}
		if got := Dump(tree); got != c.Want {
			t.Errorf("%s: tree mismatched! want %s, got %s", c.Expr, c.Want, got)
		}
	}
}

func TestParseSyntaxError(t *testing.T) {
	tests := []string{
		"=1+",
		"=SUM(1",
		"=\"abc",
		"=(1+2))",
	}
	for _, c := range tests {
		_, err := ParseString(c)
		if !errors.Is(err, lexer.ErrSyntax) {
			t.Errorf("%s: syntax error expected, got %v", c, err)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []*lexer.Node{
		nil,
		{Type: op.Arg},
		{
			Type: op.Root,
			Children: []*lexer.Node{
				{Type: op.Add, Token: "+"},
			},
		},
		{
			Type: op.Root,
			Children: []*lexer.Node{
				{Type: op.Number, Token: "1"},
				{Type: op.Number, Token: "2"},
			},
		},
	}
	for i, root := range tests {
		_, err := Parse(root)
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("tree %d: malformed error expected, got %v", i, err)
		}
	}
}

func TestParsePriority(t *testing.T) {
	p := NewParser(nil)
	p.Register("pi", PrioName+5, func(_ *Parser, tok *lexer.Node, _ []int) (Node, bool) {
		if tok.Type != op.Ident || tok.Token != "PI" {
			return Node{}, false
		}
		return Node{Kind: KindNumber, Value: value.Float(3.14)}, true
	})
	tree, err := p.ParseString("=PI*rate")
	if err != nil {
		t.Fatalf("fail to parse: %s", err)
	}
	want := "binary(number(3.14), name(rate), *)"
	if got := Dump(tree); got != want {
		t.Errorf("tree mismatched! want %s, got %s", want, got)
	}
	root := tree.At(tree.Root)
	if root.Priority != PrioBinary {
		t.Errorf("priority mismatched! want %d, got %d", PrioBinary, root.Priority)
	}
	if n := tree.At(root.Children[0]); n.Priority != PrioName+5 {
		t.Errorf("priority mismatched! want %d, got %d", PrioName+5, n.Priority)
	}

	tree, err = p.ParseString("=A1:B1")
	if err != nil {
		t.Fatalf("fail to parse: %s", err)
	}
	if n := tree.At(tree.Root); n.Kind != KindReference {
		t.Errorf("reference expected, got %s", n.Kind)
	}
	tree, err = p.ParseString("=A1:INDEX")
	if err != nil {
		t.Fatalf("fail to parse: %s", err)
	}
	if n := tree.At(tree.Root); n.Kind != KindUnion || n.Priority != PrioUnion {
		t.Errorf("union expected, got %s (%d)", n.Kind, n.Priority)
	}
}

func TestPostOrder(t *testing.T) {
	tree, err := ParseString("=MAX(1, 2*3) - total")
	if err != nil {
		t.Fatalf("fail to parse: %s", err)
	}
	var list []int
	for ix := range tree.PostOrder() {
		for _, c := range tree.At(ix).Children {
			if !slices.Contains(list, c) {
				t.Errorf("node %d visited before its child %d", ix, c)
			}
		}
		list = append(list, ix)
	}
	if len(list) != tree.Len() {
		t.Errorf("number of nodes mismatched! want %d, got %d", tree.Len(), len(list))
	}
	if list[len(list)-1] != tree.Root {
		t.Errorf("root should be visited last")
	}
	if names := tree.Names(); !slices.Equal(names, []string{"total"}) {
		t.Errorf("names mismatched! want [total], got %v", names)
	}
}

func TestReferences(t *testing.T) {
	tree, err := ParseString("=SUM(A1:B2, Sheet2!C3) + rate * $D$4")
	if err != nil {
		t.Fatalf("fail to parse: %s", err)
	}
	var got []string
	for _, addr := range tree.References() {
		got = append(got, addr.String())
	}
	want := []string{"A1:B2", "Sheet2!C3", "D4"}
	if !slices.Equal(got, want) {
		t.Errorf("references mismatched! want %v, got %v", want, got)
	}
	if names := tree.Names(); !slices.Equal(names, []string{"rate"}) {
		t.Errorf("names mismatched! want [rate], got %v", names)
	}
}
