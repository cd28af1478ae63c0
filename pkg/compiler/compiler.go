// Package compiler rewrites GaiaScript source into JavaScript.
//
// Compilation is a fixed, linear sequence of named find/replace passes over
// the source text. There is no parser and no intermediate representation:
// each pass sees the text produced by the previous one.
//
// The default pipeline is:
//
//	numbers → symbols → functions → state → components → styles → cleanup
//
// TypeScript output is identical to JavaScript output. The Go target always
// produces the same fixed program.
package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/leapstack-labs/gaia/pkg/symbols"
)

// Options control a single compilation.
type Options struct {
	Target Target // selects the esbuild loader; go skips Check and Minify
	Debug  bool   // record per-pass diagnostics
	Check  bool   // fail when the JavaScript does not parse
	Minify bool   // strip whitespace from the JavaScript
}

// Result is the outcome of a compilation.
type Result struct {
	BuildID     string        `json:"build_id"`
	Success     bool          `json:"success"`
	JavaScript  string        `json:"javascript"`
	TypeScript  string        `json:"typescript"`
	Go          string        `json:"go"`
	Diagnostics []string      `json:"diagnostics"`
	Errors      []string      `json:"errors,omitempty"`
	Duration    time.Duration `json:"duration"`
}

// Output returns the generated text for target.
func (r *Result) Output(t Target) string {
	switch t {
	case TargetTypeScript:
		return r.TypeScript
	case TargetGo:
		return r.Go
	default:
		return r.JavaScript
	}
}

// Compiler holds a built pipeline. It is safe for concurrent use.
type Compiler struct {
	passes []Pass
	logger *slog.Logger
}

type settings struct {
	passNames []string
	extra     []symbols.Entry
	extraPass []Pass
	logger    *slog.Logger
}

// Option configures New.
type Option func(*settings)

// WithPasses replaces the default pipeline with the named passes, in order.
func WithPasses(names ...string) Option {
	return func(s *settings) { s.passNames = names }
}

// WithSymbols adds entries to the substitution dictionary. Existing symbols
// are overridden in place.
func WithSymbols(extra []symbols.Entry) Option {
	return func(s *settings) { s.extra = append(s.extra, extra...) }
}

// WithExtraPasses appends passes after the named pipeline and before cleanup
// when cleanup is present.
func WithExtraPasses(p ...Pass) Option {
	return func(s *settings) { s.extraPass = append(s.extraPass, p...) }
}

// WithLogger sets the logger used for pass tracing.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// Dictionary returns the default substitution dictionary.
func Dictionary() symbols.Table {
	tables := make([]symbols.Table, 0, len(symbols.CompilerTables))
	for _, name := range symbols.CompilerTables {
		tables = append(tables, symbols.MustGet(name))
	}
	return symbols.Merge("compiler", tables...)
}

// New builds a compiler.
func New(opts ...Option) (*Compiler, error) {
	s := &settings{passNames: DefaultPasses}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}

	env := &Env{
		Symbols: Dictionary().With(s.extra).Entries,
		Logger:  s.logger,
	}

	passes := make([]Pass, 0, len(s.passNames)+len(s.extraPass))
	for _, name := range s.passNames {
		p, err := buildPass(name, env)
		if err != nil {
			return nil, err
		}
		passes = append(passes, p)
	}

	if len(s.extraPass) > 0 {
		at := len(passes)
		if at > 0 && passes[at-1].Name() == PassCleanup {
			at--
		}
		tail := append([]Pass{}, passes[at:]...)
		passes = append(append(passes[:at], s.extraPass...), tail...)
	}

	return &Compiler{passes: passes, logger: s.logger}, nil
}

// Passes returns the pipeline pass names in order.
func (c *Compiler) Passes() []string {
	names := make([]string, len(c.passes))
	for i, p := range c.passes {
		names[i] = p.Name()
	}
	return names
}

// Compile runs the pipeline over source. Failures are reported in the
// result; Compile itself never returns an error.
func (c *Compiler) Compile(ctx context.Context, source string, opts Options) *Result {
	start := time.Now()
	res := &Result{
		BuildID:     uuid.NewString(),
		Diagnostics: []string{},
	}
	defer func() { res.Duration = time.Since(start) }()

	if opts.Debug {
		res.Diagnostics = append(res.Diagnostics, fmt.Sprintf("Compiling %d characters", len([]rune(source))))
	}

	processed := norm.NFC.String(source)
	for _, p := range c.passes {
		if err := ctx.Err(); err != nil {
			return c.fail(res, fmt.Errorf("compilation cancelled: %w", err))
		}

		out, err := p.Apply(processed)
		if err != nil {
			return c.fail(res, fmt.Errorf("pass %s: %w", p.Name(), err))
		}
		c.logger.Debug("pass applied", "pass", p.Name(), "in", len(processed), "out", len(out))
		if opts.Debug {
			res.Diagnostics = append(res.Diagnostics, fmt.Sprintf("Pass %s: %d → %d bytes", p.Name(), len(processed), len(out)))
		}
		processed = out
	}

	// The Go output does not depend on the JavaScript, so it is never checked.
	js := processed
	if opts.Target != TargetGo && (opts.Check || opts.Minify) {
		checked, diags, errs := transformJS(js, opts.Target, opts.Minify)
		res.Diagnostics = append(res.Diagnostics, diags...)
		switch {
		case len(errs) > 0 && opts.Check:
			res.Errors = append(res.Errors, errs...)
			res.Diagnostics = append(res.Diagnostics, "JavaScript check failed")
			return res
		case len(errs) > 0:
			for _, e := range errs {
				res.Diagnostics = append(res.Diagnostics, "minify skipped: "+e)
			}
		case opts.Minify:
			js = checked
		}
	}

	res.Success = true
	res.JavaScript = js
	res.TypeScript = js
	res.Go = GoProgram()
	return res
}

func (c *Compiler) fail(res *Result, err error) *Result {
	c.logger.Warn("compilation failed", "error", err)
	res.Success = false
	res.Errors = append(res.Errors, err.Error())
	res.Diagnostics = append(res.Diagnostics, err.Error())
	return res
}

// CompileMultiple compiles every source concurrently. The returned map is
// keyed like sources. An error is returned only when ctx is cancelled.
func (c *Compiler) CompileMultiple(ctx context.Context, sources map[string]string, opts Options) (map[string]*Result, error) {
	results := make(map[string]*Result, len(sources))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for name, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := c.Compile(gctx, src, opts)
			mu.Lock()
			results[name] = res
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
