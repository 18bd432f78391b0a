package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vic/calcula/pkg/runner"
)

const sourceExt = ".lam"

func fmtCmd() *cobra.Command {
	var (
		write bool
		list  bool
	)

	cmd := &cobra.Command{
		Use:   "fmt [flags] [path...]",
		Short: "Format lambda terms",
		Long: `Parse lambda terms and print them back without reducing them.

Bound variables are renamed a, b, c, ... in binding order; free variables
keep their names. By default fmt prints the formatted source to stdout.
Use -w to write the result back to the source file.
Use -l to list files that would be changed.`,
		Example: `  # Format a file and print to stdout
  calcula fmt succ.lam

  # Format all .lam files in a directory in place
  calcula fmt -w ./examples`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd.OutOrStdout(), args, write, list)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write result to source file instead of stdout")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List files that would be formatted")

	return cmd
}

func runFmt(w io.Writer, paths []string, write, list bool) error {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return errors.Wrapf(err, "accessing %s", path)
		}

		if info.IsDir() {
			entries, err := os.ReadDir(path)
			if err != nil {
				return errors.Wrapf(err, "reading directory %s", path)
			}
			for _, entry := range entries {
				if !entry.IsDir() && strings.HasSuffix(entry.Name(), sourceExt) {
					files = append(files, filepath.Join(path, entry.Name()))
				}
			}
		} else {
			files = append(files, path)
		}
	}

	for _, file := range files {
		if err := formatFile(w, file, write, list); err != nil {
			return errors.Wrapf(err, "formatting %s", file)
		}
	}

	return nil
}

func formatFile(w io.Writer, path string, write, list bool) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	formatted, err := runner.Format(string(source))
	if err != nil {
		return err
	}
	formatted += "\n"

	changed := string(source) != formatted

	if list && !write {
		if changed {
			fmt.Fprintln(w, path)
		}
		return nil
	}

	if write {
		if changed {
			if err := os.WriteFile(path, []byte(formatted), 0644); err != nil {
				return err
			}
			if list {
				fmt.Fprintln(w, path)
			}
		}
		return nil
	}

	fmt.Fprint(w, formatted)
	return nil
}
