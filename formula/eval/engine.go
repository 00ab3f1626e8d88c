package eval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/midbel/formulae/formula/builtins"
	"github.com/midbel/formulae/formula/env"
	"github.com/midbel/formulae/formula/lexer"
	"github.com/midbel/formulae/formula/parse"
	"github.com/midbel/formulae/value"
)

// Engine compiles and evaluates formulas against a source. An engine is
// safe for concurrent use once created.
type Engine struct {
	env        *env.Environment
	registry   *builtins.Registry
	logger     *slog.Logger
	concurrent bool
}

func NewEngine(src env.Source, opts ...Option) *Engine {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.registry == nil {
		cfg.registry = builtins.Default()
	}
	e := Engine{
		registry:   cfg.registry,
		logger:     cfg.logger,
		concurrent: cfg.concurrent,
	}
	unit, sheet := cfg.unit, cfg.sheet
	if src != nil {
		if id, ok := src.ResolveUnit(unit); ok {
			unit = id
		}
		if id, ok := src.ResolveSheet(unit, sheet); ok {
			sheet = id
		}
	}
	e.env = env.New(src, unit, sheet)
	if cfg.sheet != "" {
		e.env.SetSheetName(cfg.sheet)
	}
	e.defineNames(cfg.names)
	if len(cfg.locals) > 0 {
		e.env = env.Enclosed(e.env)
		e.defineNames(cfg.locals)
	}
	return &e
}

func (e *Engine) Registry() *builtins.Registry {
	return e.registry
}

func (e *Engine) Environment() *env.Environment {
	return e.env
}

// defineNames evaluates the formula of each name in lexical order. A name
// can only use the names defined before it.
func (e *Engine) defineNames(names map[string]string) {
	list := make([]string, 0, len(names))
	for n := range names {
		list = append(list, n)
	}
	slices.Sort(list)
	for _, n := range list {
		prog, err := e.Compile(names[n])
		if err != nil {
			e.logger.Warn("invalid defined name", "name", n, "formula", names[n], "err", err)
			e.env.Define(n, value.ErrName)
			continue
		}
		val, err := prog.eval()
		if err != nil {
			e.logger.Warn("defined name can not be evaluated", "name", n, "err", err)
			val = value.ErrName
		}
		e.env.Define(n, val)
	}
}

// Program is a compiled formula. It can be run any number of times.
type Program struct {
	Formula string

	tree   *parse.Tree
	engine *Engine
}

func (e *Engine) Compile(formula string) (*Program, error) {
	root, err := lexer.Tokenize(formula)
	if err != nil {
		return nil, err
	}
	tree, err := parse.NewParser(e.registry).Parse(root)
	if err != nil {
		return nil, err
	}
	for _, n := range tree.Nodes {
		if n.Kind == parse.KindInvalid && n.Value == value.ErrName {
			e.logger.Debug("unknown function", "name", n.Token, "offset", n.Offset)
		}
	}
	e.logger.Debug("formula compiled", "formula", formula, "nodes", tree.Len())
	prog := Program{
		Formula: formula,
		tree:    tree,
		engine:  e,
	}
	return &prog, nil
}

func (p *Program) Tree() *parse.Tree {
	return p.tree
}

// Run evaluates the program from scratch.
func (p *Program) Run(ctx context.Context) (res value.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			p.engine.logger.ErrorContext(ctx, "evaluation aborted", "formula", p.Formula, "panic", r)
			res, err = nil, fmt.Errorf("%w: %v", ErrEval, r)
		}
	}()
	now := time.Now()
	val, err := p.eval()
	if err != nil {
		return nil, err
	}
	res = result(p.engine.env, val)
	p.engine.logger.DebugContext(ctx, "formula evaluated", "formula", p.Formula, "elapsed", time.Since(now), "type", res.Type())
	return res, nil
}

func (p *Program) eval() (value.Value, error) {
	it := newInterpreter(p.tree, p.engine.env, p.engine.concurrent)
	return it.run()
}

// Calculate compiles and runs formula. Syntax errors give #VALUE!, the
// returned error is only set when the engine itself fails.
func (e *Engine) Calculate(ctx context.Context, formula string) (value.Value, error) {
	prog, err := e.Compile(formula)
	if err != nil {
		var perr *lexer.ParseError
		if errors.As(err, &perr) || errors.Is(err, parse.ErrMalformed) {
			e.logger.DebugContext(ctx, "invalid formula", "formula", formula, "err", err)
			return value.ErrValue, nil
		}
		e.logger.ErrorContext(ctx, "formula can not be compiled", "formula", formula, "err", err)
		return nil, err
	}
	return prog.Run(ctx)
}

// Future is the pending result of a calculation started with Go.
type Future struct {
	done chan struct{}
	val  value.Value
	err  error
}

// Go starts the calculation of formula in its own goroutine.
func (e *Engine) Go(ctx context.Context, formula string) *Future {
	f := Future{
		done: make(chan struct{}),
	}
	go func() {
		defer close(f.done)
		f.val, f.err = e.Calculate(ctx, formula)
	}()
	return &f
}

func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the calculation completes or ctx is done. The
// calculation keeps running in the later case.
func (f *Future) Wait(ctx context.Context) (value.Value, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
