// Package runner reads lambda source, resolves named definitions and
// reduces the result under a configurable budget.
package runner

import (
	"context"
	"log/slog"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/kr/pretty"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/vic/calcula/pkg/church"
	"github.com/vic/calcula/pkg/lambda"
)

// Decoding selects how a normal form is converted to a host value.
type Decoding string

// traceCapacity bounds the beta reductions recorded per run.
const traceCapacity = 10_000

const (
	DecodeNone Decoding = ""
	DecodeInt  Decoding = "int"
	DecodeBool Decoding = "bool"
)

// ParseDecoding validates a decoding name.
func ParseDecoding(s string) (Decoding, error) {
	switch d := Decoding(s); d {
	case DecodeNone, DecodeInt, DecodeBool:
		return d, nil
	default:
		return DecodeNone, errors.Errorf("unknown decoding %q (want int or bool)", s)
	}
}

// Runner parses and reduces lambda source.
type Runner struct {
	Config Config
	// Trace records the leftmost-outermost reduction sequence in
	// Result.Steps, starting with the resolved input. With Config.Weak the
	// sequence ends at the first lambda.
	Trace bool
	// Decode converts the normal form to a host value in Result.Value.
	Decode Decoding
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Result is the outcome of reducing one source.
type Result struct {
	Name string
	// Term is the normal form (or weak head form).
	Term lambda.PureTerm
	// Output is Term printed.
	Output string
	// Value is the decoded Term, nil without a decoding.
	Value any
	Stats lambda.Stats
	Steps []string
	// Events holds the reducer's beta reductions when tracing.
	Events  []lambda.TraceEvent
	Elapsed time.Duration
}

// RunFile reduces the source file at path.
func (r *Runner) RunFile(ctx context.Context, path string) (*Result, error) {
	source, err := readSource(path)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, path, source)
}

// Run reduces source. name identifies it in errors and logs.
func (r *Runner) Run(ctx context.Context, name, source string) (*Result, error) {
	env, err := r.environment()
	if err != nil {
		return nil, err
	}
	return r.run(ctx, env, name, source)
}

// RunFiles reduces several files concurrently. Results are in the order of
// paths; the first failure cancels the rest.
func (r *Runner) RunFiles(ctx context.Context, paths []string) ([]*Result, error) {
	env, err := r.environment()
	if err != nil {
		return nil, err
	}

	results := make([]*Result, len(paths))
	eg, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		eg.Go(func() error {
			source, err := readSource(path)
			if err != nil {
				return err
			}
			res, err := r.run(gctx, env, path, source)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) run(ctx context.Context, env *environment, name, source string) (*Result, error) {
	logger := r.logger().With("file", name)

	names := lambda.Names{}
	parsed, err := lambda.ParseWith[lambda.Pure](source, names)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", name)
	}
	term := env.resolve(parsed, names)
	if logger.Enabled(ctx, slog.LevelDebug) {
		logger.Debug("parsed", "term", lambda.Debug(term), "tree", pretty.Sprint(term))
	}

	res := &Result{Name: name}
	if r.Trace {
		res.Steps, err = r.trace(ctx, term, r.printer(names, term))
		if err != nil {
			return nil, errors.Wrapf(err, "%s", name)
		}
	}

	reducer := lambda.Reducer[lambda.Pure]{Weak: r.Config.Weak, MaxSteps: r.Config.MaxSteps}
	if r.Trace || logger.Enabled(ctx, slog.LevelDebug) {
		reducer.EnableTrace(traceCapacity)
	}
	start := time.Now()
	result, err := reducer.Reduce(ctx, term)
	res.Elapsed = time.Since(start)
	res.Stats = reducer.Stats()
	if err != nil {
		logger.Debug("reduction stopped", "beta", res.Stats.BetaReductions, "error", err)
		return nil, errors.Wrapf(err, "%s", name)
	}
	events := reducer.TraceSnapshot()
	for _, ev := range events {
		logger.Debug("beta", "step", ev.Step, "param", ev.Param, "renames", ev.Renames)
	}
	if r.Trace {
		res.Events = events
	}
	logger.Debug("reduced",
		"beta", res.Stats.BetaReductions,
		"renames", res.Stats.Renames,
		"elapsed", res.Elapsed)

	res.Term = result
	res.Output = r.printer(names, result).PrintUnreduced(result)
	res.Value, err = decode(r.Decode, result)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", name)
	}
	return res, nil
}

// trace steps term in normal order until it has no redex, recording every
// intermediate form. In weak mode it stops at the first lambda.
func (r *Runner) trace(ctx context.Context, term lambda.PureTerm, p *lambda.Printer[lambda.Pure]) ([]string, error) {
	steps := []string{p.PrintUnreduced(term)}
	for n := uint64(0); ; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if r.Config.MaxSteps > 0 && n >= r.Config.MaxSteps {
			return nil, errors.Wrapf(lambda.ErrStepLimit, "tracing after %d steps", n)
		}
		if _, ok := term.(lambda.Abs[lambda.Pure]); ok && r.Config.Weak {
			return steps, nil
		}
		next, ok := lambda.Step(term)
		if !ok {
			return steps, nil
		}
		term = next
		steps = append(steps, p.PrintUnreduced(term))
	}
}

// printer names the free variables of term after their source names when
// KeepNames is set. Bound variables always get generated names.
func (r *Runner) printer(names lambda.Names, term lambda.PureTerm) *lambda.Printer[lambda.Pure] {
	p := lambda.NewPrinter[lambda.Pure]()
	if r.Config.KeepNames {
		nameFree(p, names, term)
	}
	return p
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func nameFree(p *lambda.Printer[lambda.Pure], names lambda.Names, term lambda.PureTerm) {
	free := lambda.FreeVariables(term)
	for name, b := range names {
		if free.Contains(b) {
			p.Name(b, name)
		}
	}
}

func decode(d Decoding, term lambda.PureTerm) (any, error) {
	switch d {
	case DecodeNone:
		return nil, nil
	case DecodeInt:
		n, err := church.DecodeNumeral(term)
		if err != nil {
			return nil, err
		}
		return n, nil
	case DecodeBool:
		b, err := church.DecodeBool(term)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, errors.Errorf("unknown decoding %q", d)
	}
}

func readSource(path string) (string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "reading source")
	}
	return string(source), nil
}

// environment resolves identifiers to definitions.
type environment struct {
	prelude bool
	defs    map[string]lambda.PureTerm
}

func (r *Runner) environment() (*environment, error) {
	env := &environment{
		prelude: r.Config.Prelude,
		defs:    make(map[string]lambda.PureTerm, len(r.Config.Define)),
	}
	for _, def := range r.Config.Define {
		names := lambda.Names{}
		term, err := lambda.ParseWith[lambda.Pure](def.Term, names)
		if err != nil {
			return nil, errors.Wrapf(err, "define %s", def.Name)
		}
		env.defs[def.Name] = env.resolve(term, names)
	}
	return env, nil
}

func (env *environment) lookup(name string) (lambda.PureTerm, bool) {
	if term, ok := env.defs[name]; ok {
		return term, true
	}
	if env.prelude {
		return church.Lookup(name)
	}
	return nil, false
}

// resolve binds every free identifier of term that has a definition with a
// let around term.
func (env *environment) resolve(term lambda.PureTerm, names lambda.Names) lambda.PureTerm {
	free := lambda.FreeVariables(term)
	for _, name := range slices.Sorted(maps.Keys(names)) {
		b := names[name]
		if !free.Contains(b) {
			continue
		}
		if def, ok := env.lookup(name); ok {
			term = lambda.Let(b, def, term)
		}
	}
	return term
}

// Format reprints source without reducing it. Free variables keep their
// names; bound variables are renamed a, b, c, ...
func Format(source string) (string, error) {
	names := lambda.Names{}
	term, err := lambda.ParseWith[lambda.Pure](source, names)
	if err != nil {
		return "", err
	}
	p := lambda.NewPrinter[lambda.Pure]()
	nameFree(p, names, term)
	return p.PrintUnreduced(term), nil
}
