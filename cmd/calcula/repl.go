package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/vic/calcula/pkg/runner"
)

var (
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	resultStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	welcomeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
)

type replCommandDef struct {
	name string
	desc string
}

var replCommandDefs = []replCommandDef{
	{"def", "Define a name: :def name term"},
	{"env", "List definitions"},
	{"reset", "Forget all definitions"},
	{"help", "Show this help"},
	{"quit", "Leave the REPL"},
}

func replCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Reduce terms interactively",
		Long: `Read terms line by line and print their normal forms.

Definitions made with :def are substituted for free names in later lines.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cfg.Debug)
			r, err := newRunner(cmd, *cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, welcomeStyle.Render("calcula repl, :help for commands"))
			return newRepl(r, os.Stdin, os.Stdout).loop(cmd.Context())
		},
	}
}

type repl struct {
	runner *runner.Runner
	in     *bufio.Scanner
	out    io.Writer
	// base holds the definitions from the config file
	base []runner.Definition
}

func newRepl(r *runner.Runner, in io.Reader, out io.Writer) *repl {
	return &repl{
		runner: r,
		in:     bufio.NewScanner(in),
		out:    out,
		base:   append([]runner.Definition(nil), r.Config.Define...),
	}
}

func (r *repl) loop(ctx context.Context) error {
	for {
		fmt.Fprint(r.out, promptStyle.Render("λ> "))
		if !r.in.Scan() {
			fmt.Fprintln(r.out)
			return r.in.Err()
		}

		line := strings.TrimSpace(r.in.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, ":"):
			if quit := r.handleCommand(line[1:]); quit {
				return nil
			}
		default:
			r.eval(ctx, line)
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

func (r *repl) eval(ctx context.Context, line string) {
	res, err := r.runner.Run(ctx, "repl", line)
	if err != nil {
		fmt.Fprintln(r.out, errorStyle.Render(err.Error()))
		return
	}
	if res.Value != nil {
		fmt.Fprintln(r.out, resultStyle.Render(fmt.Sprint(res.Value)))
		return
	}
	fmt.Fprintln(r.out, resultStyle.Render(res.Output))
}

func (r *repl) handleCommand(cmdLine string) bool {
	parts := strings.Fields(cmdLine)
	if len(parts) == 0 {
		fmt.Fprintln(r.out, errorStyle.Render("empty command"))
		return false
	}

	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "help":
		fmt.Fprintln(r.out, "Available commands:")
		for _, def := range replCommandDefs {
			fmt.Fprintln(r.out, dimStyle.Render(fmt.Sprintf("  :%-5s - %s", def.name, def.desc)))
		}

	case "def":
		if len(args) < 2 {
			fmt.Fprintln(r.out, errorStyle.Render("usage: :def name term"))
			return false
		}
		r.define(args[0], strings.Join(args[1:], " "))

	case "env":
		if len(r.runner.Config.Define) == 0 {
			fmt.Fprintln(r.out, dimStyle.Render("no definitions"))
		}
		for _, def := range r.runner.Config.Define {
			fmt.Fprintf(r.out, "%s = %s\n", def.Name, def.Term)
		}

	case "reset":
		r.runner.Config.Define = append([]runner.Definition(nil), r.base...)
		fmt.Fprintln(r.out, resultStyle.Render("Definitions reset."))

	case "quit", "exit", "q":
		return true

	default:
		fmt.Fprintln(r.out, errorStyle.Render(fmt.Sprintf("unknown command :%s", cmd)))
	}
	return false
}

func (r *repl) define(name, source string) {
	if !isName(name) {
		fmt.Fprintln(r.out, errorStyle.Render(fmt.Sprintf("invalid name %q", name)))
		return
	}
	formatted, err := runner.Format(source)
	if err != nil {
		fmt.Fprintln(r.out, errorStyle.Render(err.Error()))
		return
	}

	def := runner.Definition{Name: name, Term: formatted}
	i := slices.IndexFunc(r.runner.Config.Define, func(d runner.Definition) bool { return d.Name == name })
	if i >= 0 {
		r.runner.Config.Define[i] = def
	} else {
		r.runner.Config.Define = append(r.runner.Config.Define, def)
	}

	slog.Debug("defined", "name", name, "term", formatted)
	fmt.Fprintln(r.out, dimStyle.Render(fmt.Sprintf("%s = %s", name, formatted)))
}

func isName(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return s != ""
}
