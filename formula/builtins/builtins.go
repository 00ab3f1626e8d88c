package builtins

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/midbel/formulae/internal/ds"
	"github.com/midbel/formulae/value"
)

var (
	ErrArity   = errors.New("invalid number of arguments")
	ErrExist   = errors.New("function already registered")
	ErrInvalid = errors.New("invalid function definition")
)

const Variadic = -1

type Builtin func([]value.Value) (value.Value, error)

// Definition describes a function callable from a formula. MaxArgs is
// Variadic for functions accepting any number of arguments. Functions with
// References set receive references as written instead of the values they
// point to.
type Definition struct {
	Name       string
	MinArgs    int
	MaxArgs    int
	References bool
	Exec       Builtin
}

func (d Definition) Accept(n int) bool {
	if n < d.MinArgs {
		return false
	}
	return d.MaxArgs == Variadic || n <= d.MaxArgs
}

func (d Definition) Call(args []value.Value) (value.Value, error) {
	if !d.Accept(len(args)) {
		return nil, fmt.Errorf("%s: %w (%d)", d.Name, ErrArity, len(args))
	}
	return d.Exec(args)
}

// Registry maps function names to their definition. Lookups ignore case.
// Functions should be registered before the registry is shared between
// goroutines.
type Registry struct {
	defs  map[string]Definition
	names *ds.Trie[string]
}

func NewRegistry() *Registry {
	return &Registry{
		defs:  make(map[string]Definition),
		names: ds.NewTrie[string](),
	}
}

var Default = sync.OnceValue(func() *Registry {
	reg := NewRegistry()
	for _, def := range catalog {
		if err := reg.Register(def); err != nil {
			panic(err)
		}
	}
	return reg
})

func (r *Registry) Register(def Definition) error {
	if def.Name == "" || def.Exec == nil {
		return ErrInvalid
	}
	if def.MaxArgs != Variadic && def.MaxArgs < def.MinArgs {
		return fmt.Errorf("%w: %s: max arguments lower than min arguments", ErrInvalid, def.Name)
	}
	name := canonical(def.Name)
	if _, ok := r.defs[name]; ok {
		return fmt.Errorf("%w: %s", ErrExist, name)
	}
	def.Name = name
	r.defs[name] = def
	r.names.Register(strings.Split(name, ""), name)
	return nil
}

func (r *Registry) Lookup(name string) (Definition, bool) {
	def, ok := r.defs[canonical(name)]
	return def, ok
}

// Complete returns the names of the functions starting with prefix in
// lexical order.
func (r *Registry) Complete(prefix string) []string {
	var (
		list []string
		path []string
	)
	if prefix != "" {
		path = strings.Split(canonical(prefix), "")
	}
	r.names.Walk(path, func(_ []string, name string) {
		list = append(list, name)
	})
	return list
}

func (r *Registry) Names() []string {
	list := make([]string, 0, len(r.defs))
	for name := range r.defs {
		list = append(list, name)
	}
	slices.Sort(list)
	return list
}

func canonical(name string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(name))
}

var catalog = []Definition{
	{Name: "MIN", MinArgs: 0, MaxArgs: Variadic, Exec: Min},
	{Name: "MAX", MinArgs: 0, MaxArgs: Variadic, Exec: Max},
	{Name: "SUM", MinArgs: 1, MaxArgs: Variadic, Exec: Sum},
	{Name: "AVERAGE", MinArgs: 1, MaxArgs: Variadic, Exec: Avg},
	{Name: "COUNT", MinArgs: 1, MaxArgs: Variadic, Exec: Count},
	{Name: "COUNTA", MinArgs: 1, MaxArgs: Variadic, Exec: CountA},
	{Name: "VARPA", MinArgs: 1, MaxArgs: Variadic, Exec: VarPA},
	{Name: "ISNUMBER", MinArgs: 1, MaxArgs: 1, Exec: IsNumber},
	{Name: "ISTEXT", MinArgs: 1, MaxArgs: 1, Exec: IsText},
	{Name: "ISBLANK", MinArgs: 1, MaxArgs: 1, Exec: IsBlank},
	{Name: "ISERROR", MinArgs: 1, MaxArgs: 1, Exec: IsError},
	{Name: "TYPE", MinArgs: 1, MaxArgs: 1, Exec: TypeOf},
	{Name: "ABS", MinArgs: 1, MaxArgs: 1, Exec: Abs},
	{Name: "SQRT", MinArgs: 1, MaxArgs: 1, Exec: Sqrt},
	{Name: "ROUND", MinArgs: 2, MaxArgs: 2, Exec: Round},
	{Name: "FLOOR", MinArgs: 2, MaxArgs: 2, Exec: Floor},
	{Name: "CEILING", MinArgs: 2, MaxArgs: 2, Exec: Ceil},
	{Name: "EDATE", MinArgs: 2, MaxArgs: 2, Exec: Edate},
	{Name: "DATE", MinArgs: 3, MaxArgs: 3, Exec: Date},
	{Name: "CONCATENATE", MinArgs: 1, MaxArgs: Variadic, Exec: Concatenate},
	{Name: "LEN", MinArgs: 1, MaxArgs: 1, Exec: Len},
	{Name: "UPPER", MinArgs: 1, MaxArgs: 1, Exec: Upper},
	{Name: "LOWER", MinArgs: 1, MaxArgs: 1, Exec: Lower},
	{Name: "IF", MinArgs: 2, MaxArgs: 3, Exec: If},
	{Name: "ROW", MinArgs: 1, MaxArgs: 1, References: true, Exec: Row},
	{Name: "COLUMN", MinArgs: 1, MaxArgs: 1, References: true, Exec: Column},
}
