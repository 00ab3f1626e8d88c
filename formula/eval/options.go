package eval

import (
	"log/slog"
	"maps"

	"github.com/midbel/formulae/formula/builtins"
)

type config struct {
	logger     *slog.Logger
	registry   *builtins.Registry
	unit       string
	sheet      string
	concurrent bool
	names      map[string]string
	locals     map[string]string
}

type Option func(*config)

// WithLogger sets the logger used by the engine. slog.Default is used
// otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

func WithRegistry(reg *builtins.Registry) Option {
	return func(cfg *config) {
		cfg.registry = reg
	}
}

// WithContext sets the workbook and the sheet used by the references
// without qualifiers.
func WithContext(unit, sheet string) Option {
	return func(cfg *config) {
		cfg.unit = unit
		cfg.sheet = sheet
	}
}

// WithConcurrency evaluates the operands of a node in parallel.
func WithConcurrency(enabled bool) Option {
	return func(cfg *config) {
		cfg.concurrent = enabled
	}
}

// WithNames defines names from formulas. A name refering to a range keeps
// the reference instead of the values of the range.
func WithNames(names map[string]string) Option {
	return func(cfg *config) {
		if cfg.names == nil {
			cfg.names = make(map[string]string)
		}
		maps.Copy(cfg.names, names)
	}
}

// WithLocalNames defines names visible only from the sheet given to
// WithContext. They hide the names of the workbook with the same name and
// can use them.
func WithLocalNames(names map[string]string) Option {
	return func(cfg *config) {
		if cfg.locals == nil {
			cfg.locals = make(map[string]string)
		}
		maps.Copy(cfg.locals, names)
	}
}
