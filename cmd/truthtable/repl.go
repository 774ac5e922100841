package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"dmath-truthtable/internal/render"
	"dmath-truthtable/internal/view"
)

const replPrompt = "formula> "

const replHelp = `Enter a formula to see its truth table.
Commands:
  .help   show this help
  .quit   exit (also .exit or Ctrl-D)`

func newReplCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactively submit formulas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rl, err := readline.NewEx(&readline.Config{
				Prompt:          replPrompt,
				HistoryFile:     historyFile(),
				AutoComplete:    readline.NewPrefixCompleter(readline.PcItem(".help"), readline.PcItem(".quit"), readline.PcItem(".exit")),
				InterruptPrompt: "^C",
				EOFPrompt:       ".quit",
				Stdin:           io.NopCloser(cmd.InOrStdin()),
				Stdout:          cmd.OutOrStdout(),
				Stderr:          cmd.ErrOrStderr(),
			})
			if err != nil {
				return fmt.Errorf("failed to initialize REPL: %w", err)
			}
			defer func() { _ = rl.Close() }()

			p := view.New(a.client)
			unsubscribe := p.Subscribe(printer(cmd.OutOrStdout(), cmd.ErrOrStderr(), a.cfg.Format))
			defer unsubscribe()

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")

			return repl(cmd.Context(), rl, p, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringP("format", "f", "", "output format: table, json, csv, markdown (default table)")

	return cmd
}

// lineReader is the part of *readline.Instance the loop needs.
type lineReader interface {
	Readline() (string, error)
}

// repl submits every line read from lines until EOF or .quit.
func repl(ctx context.Context, lines lineReader, p *view.Presenter, out io.Writer) error {
	for {
		line, err := lines.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case ".quit", ".exit":
			return nil
		case ".help":
			_, _ = fmt.Fprintln(out, replHelp)
			continue
		}

		p.SetFormula(line)
		// Failures are shown by the printer.
		_ = p.Submit(ctx)
	}
}

// printer renders every completed submission once.
func printer(out, errOut io.Writer, format string) func(view.State) {
	var printed uint64
	return func(s view.State) {
		if s.Pending || s.Seq <= printed {
			return
		}
		printed = s.Seq
		if s.Err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %s\n", s.Message())
			return
		}
		if err := render.Write(out, s.Model, format); err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		}
		_, _ = fmt.Fprintln(out)
	}
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".truthtable_history")
}
