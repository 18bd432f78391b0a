package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
	"github.com/kr/pretty"
	"github.com/lmittmann/tint"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vic/calcula/pkg/lambda"
	"github.com/vic/calcula/pkg/runner"
)

// Config holds the command line configuration
type Config struct {
	Debug      bool
	ConfigPath string
	MaxSteps   uint64
	Weak       bool
	KeepNames  bool
	Prelude    bool
	Raw        bool
	Trace      bool
	As         string
	Dump       bool
	Stats      bool
}

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle = lipgloss.NewStyle().Bold(true)
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	stepStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func main() {
	var cfg Config

	rootCmd := &cobra.Command{
		Use:   "calcula [flags] [file...]",
		Short: "Untyped lambda calculus reducer",
		Long: `Calcula parses untyped lambda calculus terms, reduces them with
capture-avoiding substitution and prints the result with generated names.

Terms are written λx.body (or \x.body), application is juxtaposition and
parentheses group. With no files the term is read from standard input.`,
		Example: `  # Reduce a term from stdin
  echo '(λx.λy.x) a b' | calcula

  # Use the Church prelude and decode the result as a number
  echo 'mul 2 3' | calcula --prelude --as int

  # Show every beta step and the reduction counts
  calcula --trace --stats examples/succ.lam`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cfg.Debug)
			r, err := newRunner(cmd, cfg)
			if err != nil {
				return err
			}
			return run(cmd.Context(), r, cfg, args)
		},
	}

	pflags := rootCmd.PersistentFlags()
	pflags.BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging")
	pflags.StringVar(&cfg.ConfigPath, "config", "", "Config file (default: nearest "+runner.ConfigFile+")")
	pflags.Uint64Var(&cfg.MaxSteps, "max-steps", 0, "Stop after this many beta reductions (0 means no limit)")
	pflags.BoolVar(&cfg.Weak, "weak", false, "Do not reduce under lambdas")
	pflags.BoolVar(&cfg.KeepNames, "keep-names", false, "Print free variables with their source names")
	pflags.BoolVar(&cfg.Prelude, "prelude", false, "Resolve free names against the Church prelude")

	rootCmd.Flags().BoolVar(&cfg.Raw, "raw", false, "Print bindings by their unique labels")
	rootCmd.Flags().BoolVar(&cfg.Trace, "trace", false, "Print every beta step")
	rootCmd.Flags().StringVar(&cfg.As, "as", "", "Decode the result as a Church value (int, bool)")
	rootCmd.Flags().BoolVar(&cfg.Dump, "dump", false, "Dump the reduced term structure")
	rootCmd.Flags().BoolVar(&cfg.Stats, "stats", false, "Print reduction statistics to stderr")

	rootCmd.AddCommand(fmtCmd(), replCmd(&cfg))

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithCommit("dev"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))
}

// newRunner merges the config file, the environment and the command line,
// in increasing order of precedence.
func newRunner(cmd *cobra.Command, cfg Config) (*runner.Runner, error) {
	var config runner.Config
	if cfg.ConfigPath != "" {
		loaded, err := runner.LoadConfig(cfg.ConfigPath)
		if err != nil {
			return nil, err
		}
		config = *loaded
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "getting working directory")
		}
		path, found, err := runner.FindConfig(cwd)
		if err != nil {
			return nil, err
		}
		if found != nil {
			slog.Debug("loaded config", "path", path)
			config = *found
		}
	}

	if err := config.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("max-steps") {
		config.MaxSteps = cfg.MaxSteps
	}
	if flags.Changed("weak") {
		config.Weak = cfg.Weak
	}
	if flags.Changed("keep-names") {
		config.KeepNames = cfg.KeepNames
	}
	if flags.Changed("prelude") {
		config.Prelude = cfg.Prelude
	}

	decode, err := runner.ParseDecoding(cfg.As)
	if err != nil {
		return nil, err
	}

	return &runner.Runner{
		Config: config,
		Trace:  cfg.Trace,
		Decode: decode,
		Logger: slog.Default(),
	}, nil
}

func run(ctx context.Context, r *runner.Runner, cfg Config, args []string) error {
	var results []*runner.Result
	if len(args) == 0 {
		source, err := io.ReadAll(os.Stdin)
		if err != nil {
			return errors.Wrap(err, "reading stdin")
		}
		res, err := r.Run(ctx, "<stdin>", string(source))
		if err != nil {
			return err
		}
		results = []*runner.Result{res}
	} else {
		var err error
		results, err = r.RunFiles(ctx, args)
		if err != nil {
			return err
		}
	}

	for _, res := range results {
		printResult(os.Stdout, res, cfg, len(results) > 1)
	}
	if cfg.Stats {
		printStats(os.Stderr, results)
	}
	return nil
}

func printResult(w io.Writer, res *runner.Result, cfg Config, named bool) {
	if named {
		fmt.Fprintln(w, titleStyle.Render(res.Name+":"))
	}
	for i, step := range res.Steps {
		fmt.Fprintf(w, "%s %s\n", stepStyle.Render(fmt.Sprintf("%4d", i)), step)
	}

	switch {
	case res.Value != nil:
		fmt.Fprintln(w, res.Value)
	case cfg.Raw:
		fmt.Fprintln(w, lambda.Debug(res.Term))
	default:
		fmt.Fprintln(w, res.Output)
	}

	if cfg.Dump {
		pretty.Fprintf(w, "%# v\n", res.Term)
	}
}

func printStats(w io.Writer, results []*runner.Result) {
	var (
		elapsed time.Duration
		total   lambda.Stats
	)
	for _, res := range results {
		elapsed += res.Elapsed
		total.BetaReductions += res.Stats.BetaReductions
		total.Renames += res.Stats.Renames
	}
	seconds := elapsed.Seconds()

	row := func(label string, n uint64) {
		line := labelStyle.Render(fmt.Sprintf("  %-16s", label)) + valueStyle.Render(fmt.Sprintf("%8d", n))
		if seconds > 0 {
			line += labelStyle.Render(fmt.Sprintf(" (%.2f ops/sec)", float64(n)/seconds))
		}
		fmt.Fprintln(w, line)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Stats:"))
	fmt.Fprintln(w, labelStyle.Render(fmt.Sprintf("  %-16s", "Time:"))+valueStyle.Render(elapsed.String()))
	row("Beta reductions:", total.BetaReductions)
	row("Renames:", total.Renames)
}
