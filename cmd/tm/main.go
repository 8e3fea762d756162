package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/reusee/dscope"
	"github.com/reusee/turing/cmds"
	"github.com/reusee/turing/debugs"
	"github.com/reusee/turing/loaders"
	"github.com/reusee/turing/logs"
	"github.com/reusee/turing/metrics"
	"github.com/reusee/turing/modes"
	"github.com/reusee/turing/sessions"
)

var (
	tableFile    = cmds.Var[string]("-file", "transition table file, prompted for when unset")
	reportFile   = cmds.Var[string]("-report", "write a json run report to the file")
	printMetrics = cmds.Switch("-metrics", "print metrics to stderr after the run")
	tapAfterRun  = cmds.Switch("-tap", "open a starlark repl on the halted machine")
)

func main() {
	cmds.Execute(os.Args[1:])

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)
	code := run(ctx, scope, os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(
	ctx context.Context,
	scope dscope.Scope,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
) (code int) {
	scope.Call(func(
		logger logs.Logger,
		newSession sessions.NewSession,
		newSpan logs.NewSpan,
		m *metrics.Metrics,
		tap debugs.Tap,
	) {
		ctx, _ := newSpan(ctx, "session")
		session := newSession()
		defer session.Close()

		// the tape line is printed on every path, empty if nothing was loaded
		printTape := func() {
			output, err := session.Render()
			if err != nil {
				logger.ErrorContext(ctx, "render tape", "error", err)
			}
			fmt.Fprintln(stdout, output)
		}
		fatal := func(err error) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			printTape()
			code = 1
		}

		prompter := loaders.NewPrompter(stdin, stdout)

		name := *tableFile
		if name == "" {
			var err error
			name, err = prompter.Filename()
			if err != nil {
				fatal(err)
				return
			}
		}
		if err := session.LoadTableFile(name); err != nil {
			fatal(err)
			return
		}

		line, err := prompter.Tape()
		if err != nil {
			fatal(err)
			return
		}
		if err := session.LoadTape(line); err != nil {
			fatal(err)
			return
		}

		if _, err := session.Run(ctx); err != nil {
			fatal(err)
			return
		}
		printTape()

		if *reportFile != "" {
			if err := writeReport(session, *reportFile); err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				code = 1
			}
		}
		if *printMetrics {
			if err := m.WriteText(stderr); err != nil {
				logger.ErrorContext(ctx, "write metrics", "error", err)
			}
		}
		if *tapAfterRun {
			tap(ctx, "halted", session.Globals())
		}
	})
	return
}

func writeReport(session *sessions.Session, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := session.WriteReport(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
