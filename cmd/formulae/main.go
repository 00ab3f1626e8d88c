package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/midbel/cli"
	"gopkg.in/yaml.v3"

	"github.com/midbel/formulae/format"
	"github.com/midbel/formulae/formula/builtins"
	"github.com/midbel/formulae/formula/env"
	"github.com/midbel/formulae/formula/eval"
	"github.com/midbel/formulae/formula/lexer"
	"github.com/midbel/formulae/formula/parse"
	"github.com/midbel/formulae/grid"
	"github.com/midbel/formulae/layout"
	"github.com/midbel/formulae/oxml"
	"github.com/midbel/formulae/value"
)

var (
	errFail  = errors.New("fail")
	errUsage = errors.New("usage")
)

var (
	summary = "formulae"
	help    = "evaluate and inspect spreadsheet formulas against yaml, csv or xlsx workbooks"
)

func main() {
	root := prepare()
	root.SetSummary(summary)
	root.SetHelp(help)

	err := run(root, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		root.Help()
		os.Exit(2)
	}
	if errors.Is(err, errUsage) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err != nil {
		if s, ok := err.(cli.SuggestionError); ok && len(s.Others) > 0 {
			fmt.Fprintln(os.Stderr, "similar command(s)")
			for _, n := range s.Others {
				fmt.Fprintln(os.Stderr, "-", n)
			}
		}
		if !errors.Is(err, errFail) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// run parses the options common to all commands before executing the
// command named by the remaining arguments.
func run(root *cli.CommandTrie, args []string) error {
	set := cli.NewFlagSet("formulae")
	if err := set.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %s", errUsage, err)
	}
	return root.Execute(set.Args())
}

func prepare() *cli.CommandTrie {
	root := cli.New()
	root.Register([]string{"eval"}, &evalCmd)
	root.Register([]string{"lex"}, &lexCmd)
	root.Register([]string{"ast"}, &astCmd)
	root.Register([]string{"functions"}, &functionsCmd)
	return root
}

var evalCmd = cli.Command{
	Name:    "eval",
	Alias:   []string{"calc"},
	Summary: "evaluate formulas against a workbook",
	Usage:   "eval [-f workbook] [-b book] [-s sheet] [-a] [-c] [-v] <formula> [<formula>,...]",
	Handler: &EvalCommand{},
}

var lexCmd = cli.Command{
	Name:    "lex",
	Alias:   []string{"tokens"},
	Summary: "print the token tree of a formula",
	Usage:   "lex [-i] <formula>",
	Handler: &LexCommand{},
}

var astCmd = cli.Command{
	Name:    "ast",
	Alias:   []string{"parse"},
	Summary: "print the syntax tree of a formula",
	Usage:   "ast [-r] <formula>",
	Handler: &AstCommand{},
}

var functionsCmd = cli.Command{
	Name:    "functions",
	Alias:   []string{"funcs"},
	Summary: "list the functions available in formulas",
	Usage:   "functions [prefix]",
	Handler: &ListFunctionsCommand{},
}

type EvalCommand struct {
	File       string
	Book       string
	Sheet      string
	Number     string
	Date       string
	Addresses  bool
	Concurrent bool
	Verbose    bool
}

func (c EvalCommand) Run(args []string) error {
	set := cli.NewFlagSet("eval")
	set.StringVar(&c.File, "f", "", "workbook to read cells from (yaml, xlsx, csv or tsv)")
	set.StringVar(&c.Book, "b", "", "default workbook")
	set.StringVar(&c.Sheet, "s", "", "default sheet")
	set.StringVar(&c.Number, "n", "", "number pattern")
	set.StringVar(&c.Date, "d", format.DefaultDatePattern, "date pattern")
	set.BoolVar(&c.Addresses, "a", false, "evaluate the formulas stored in the given cells (xlsx only)")
	set.BoolVar(&c.Concurrent, "c", false, "evaluate sub expressions concurrently")
	set.BoolVar(&c.Verbose, "v", false, "verbose")
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() == 0 {
		return fmt.Errorf("no formula given")
	}
	logger := createLogger(c.Verbose)

	src, err := openSource(c.File)
	if err != nil {
		return err
	}
	formulas := set.Args()
	if c.Addresses {
		if formulas, err = storedFormulas(src, c.Sheet, formulas); err != nil {
			return err
		}
	}
	globals, locals := definedNames(src, c.Book, c.Sheet)
	opts := []eval.Option{
		eval.WithLogger(logger),
		eval.WithContext(c.Book, c.Sheet),
		eval.WithNames(globals),
		eval.WithLocalNames(locals),
	}
	if c.Concurrent {
		opts = append(opts, eval.WithConcurrency(true))
	}
	engine := eval.NewEngine(src, opts...)

	vf := format.FormatValue()
	if c.Number != "" {
		if err := vf.Number(c.Number); err != nil {
			return err
		}
	}
	if err := vf.Date(c.Date); err != nil {
		return err
	}
	vf.Set(value.TypeText, format.FormatString())
	vf.Set(value.TypeBool, format.FormatBool("TRUE", "FALSE"))

	var (
		ctx     = context.Background()
		futures = make([]*eval.Future, len(formulas))
		failed  bool
	)
	for i := range formulas {
		futures[i] = engine.Go(ctx, formulas[i])
	}
	for i, f := range futures {
		res, err := f.Wait(ctx)
		if err != nil {
			logger.Error("evaluation failed", "formula", formulas[i], "err", err)
			failed = true
			continue
		}
		str, err := vf.Format(res)
		if err != nil {
			str = res.String()
		}
		if len(formulas) > 1 {
			fmt.Fprintf(os.Stdout, "%s: ", formulas[i])
		}
		fmt.Fprintln(os.Stdout, str)
	}
	if failed {
		return errFail
	}
	return nil
}

type LexCommand struct {
	Infix bool
}

func (c LexCommand) Run(args []string) error {
	set := cli.NewFlagSet("lex")
	set.BoolVar(&c.Infix, "i", false, "keep the infix order of operators")
	if err := set.Parse(args); err != nil {
		return err
	}
	root, err := lexer.Tokenize(set.Arg(0))
	if err != nil {
		return err
	}
	if !c.Infix {
		root = lexer.Suffix(root)
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(root.Serialize())
}

type AstCommand struct {
	Deps bool
}

func (c AstCommand) Run(args []string) error {
	set := cli.NewFlagSet("ast")
	set.BoolVar(&c.Deps, "r", false, "print the references and the names used by the formula")
	if err := set.Parse(args); err != nil {
		return err
	}
	tree, err := parse.ParseString(set.Arg(0))
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, parse.Dump(tree))
	if !c.Deps {
		return nil
	}
	for _, addr := range tree.References() {
		fmt.Fprintln(os.Stdout, "reference:", addr)
	}
	for _, name := range tree.Names() {
		fmt.Fprintln(os.Stdout, "name:", name)
	}
	return nil
}

type ListFunctionsCommand struct{}

func (c ListFunctionsCommand) Run(args []string) error {
	set := cli.NewFlagSet("functions")
	if err := set.Parse(args); err != nil {
		return err
	}
	var (
		reg = builtins.Default()
		w   = tabwriter.NewWriter(os.Stdout, 8, 4, 2, ' ', 0)
	)
	defer w.Flush()
	for _, name := range reg.Complete(set.Arg(0)) {
		def, ok := reg.Lookup(name)
		if !ok {
			continue
		}
		maxArgs := "..."
		if def.MaxArgs != builtins.Variadic {
			maxArgs = fmt.Sprint(def.MaxArgs)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", def.Name, def.MinArgs, maxArgs)
	}
	return nil
}

func createLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	opts := slog.HandlerOptions{
		Level: level,
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &opts))
}

func openSource(file string) (env.Source, error) {
	if file == "" {
		return nil, nil
	}
	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".yml", ".yaml":
		return grid.Open(file)
	case ".xlsx":
		return oxml.Open(file)
	case ".csv":
		return grid.OpenCSV(file, ',')
	case ".tsv":
		return grid.OpenCSV(file, '\t')
	default:
		return nil, fmt.Errorf("%s: unsupported workbook format", ext)
	}
}

// definedNames gives the names of the workbook and the names of the sheet
// used as context.
func definedNames(src env.Source, book, sheet string) (map[string]string, map[string]string) {
	switch src := src.(type) {
	case *grid.Store:
		wb, err := src.Workbook(book)
		if err != nil {
			return nil, nil
		}
		var sh *grid.Sheet
		if sheet == "" {
			sh, err = wb.ActiveSheet()
		} else {
			sh, err = wb.Sheet(sheet)
		}
		if err != nil {
			return wb.Names, nil
		}
		return wb.Names, sh.Names
	case *oxml.File:
		var (
			sh  *oxml.Sheet
			err error
		)
		if sheet == "" {
			sh, err = src.ActiveSheet()
		} else {
			sh, err = src.Sheet(sheet)
		}
		if err != nil {
			return src.Names(), nil
		}
		return src.Names(), sh.Names()
	default:
		return nil, nil
	}
}

func storedFormulas(src env.Source, sheet string, addrs []string) ([]string, error) {
	file, ok := src.(*oxml.File)
	if !ok {
		return nil, fmt.Errorf("stored formulas are only available in xlsx workbooks")
	}
	var list []string
	for _, str := range addrs {
		addr, err := layout.ParseAddress(str)
		if err != nil {
			return nil, err
		}
		if addr.Sheet == "" {
			addr.Sheet = sheet
		}
		var sh *oxml.Sheet
		if addr.Sheet == "" {
			sh, err = file.ActiveSheet()
		} else {
			sh, err = file.Sheet(addr.Sheet)
		}
		if err != nil {
			return nil, err
		}
		formula, ok := sh.Formula(addr.Range.Starts)
		if !ok {
			return nil, fmt.Errorf("%s: no formula stored", str)
		}
		list = append(list, formula)
	}
	return list, nil
}
