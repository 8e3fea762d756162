package sessions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/reusee/turing/arenas"
	"github.com/reusee/turing/loaders"
	"github.com/reusee/turing/logs"
	"github.com/reusee/turing/machines"
	"github.com/reusee/turing/metrics"
	"github.com/reusee/turing/tables"
	"github.com/reusee/turing/tapes"
	"github.com/reusee/turing/tmconfigs"
)

var ErrNotLoaded = errors.New("session not loaded")

// Session holds everything one run needs. All of it lives in Arena and is
// released at once by Close.
type Session struct {
	Arena *arenas.Arena
	Table *tables.Table
	Tape  *tapes.Tape

	DeclaredStates int
	States         []string
	Diagnostics    []loaders.Diagnostic

	Machine *machines.Machine

	config  tmconfigs.Machine
	logger  logs.Logger
	metrics *metrics.Metrics
	newSpan logs.NewSpan
	closed  bool
}

func (s *Session) Config() tmconfigs.Machine {
	return s.config
}

func (s *Session) LoadTableFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := s.LoadTable(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func (s *Session) LoadTable(r io.Reader) error {
	def, err := loaders.ParseTable(r, loaders.Options{
		Strict: s.config.Strict,
	})
	if def != nil {
		s.DeclaredStates = def.DeclaredStates
		s.States = def.States
		s.Diagnostics = append(s.Diagnostics, def.Diagnostics...)
		for _, diagnostic := range def.Diagnostics {
			s.logger.Warn("table file",
				"line", diagnostic.Line,
				"diagnostic", diagnostic.Message,
			)
		}
	}
	if err != nil {
		return err
	}

	for _, transition := range def.Transitions {
		if err := s.Table.Insert(transition); err != nil {
			return err
		}
	}
	s.logger.Info("table loaded",
		"states", len(s.States),
		"transitions", s.Table.Len(),
	)
	return nil
}

func (s *Session) LoadTape(line string) error {
	if line == "" {
		return loaders.ErrEmptyTape
	}
	if err := s.Tape.Load(line); err != nil {
		return fmt.Errorf("load tape: %w", err)
	}
	s.logger.Info("tape loaded",
		"cells", s.Tape.Len(),
	)
	return nil
}

// Run executes the loaded machine until it halts or ctx is done.
// ctx is checked between steps.
func (s *Session) Run(ctx context.Context) (result machines.Result, err error) {
	ctx, _ = s.newSpan(ctx, "run")
	defer func() {
		err = logs.WrapSpan(ctx, err)
	}()

	if s.Tape.Len() == 0 {
		return result, fmt.Errorf("%w: empty tape", ErrNotLoaded)
	}
	s.Machine, err = machines.New(s.Table, s.Tape, s.config.Options())
	if err != nil {
		return result, err
	}
	defer func() {
		result = s.Machine.Result()
		s.metrics.Finish(result)
		s.metrics.Tape(s.Tape)
		s.metrics.Arena(s.Arena)
	}()

	for event, err := range s.Machine.Run {
		if err != nil {
			return result, err
		}
		switch event.Outcome {
		case machines.HaltedNoTransition:
			s.logger.WarnContext(ctx, "no transition found",
				"symbol", string(event.Read),
				"state", s.Machine.State,
				"steps", s.Machine.Steps,
			)
		case machines.HaltedStepLimit:
			s.logger.WarnContext(ctx, "step limit reached",
				"limit", s.config.MaxSteps,
				"state", s.Machine.State,
			)
		default:
			s.logger.DebugContext(ctx, "step",
				"step", event.Step,
				"transition", event.Transition.String(),
				"grew", event.Grew,
			)
		}
		if err := ctx.Err(); err != nil && !event.Outcome.Halted() {
			return result, fmt.Errorf("interrupted after %d steps: %w", s.Machine.Steps, err)
		}
	}

	s.logger.InfoContext(ctx, "halted",
		"outcome", s.Machine.Outcome,
		"steps", s.Machine.Steps,
		"state", s.Machine.State,
	)
	return result, nil
}

// Render returns the tape between its outermost non-blank cells.
func (s *Session) Render() (string, error) {
	if s.closed {
		return "", nil
	}
	return s.Tape.Render()
}

// Lookup describes the transition for a key, or returns "" for none.
func (s *Session) Lookup(symbol string, state string) string {
	if len(symbol) != 1 {
		return ""
	}
	transition, err := s.Table.Lookup(symbol[0], state)
	if err != nil {
		return ""
	}
	return transition.String()
}

// Globals are the values bound in a debug tap.
func (s *Session) Globals() map[string]any {
	output, _ := s.Render()
	ret := map[string]any{
		"tape":   output,
		"cells":  s.Tape.Len(),
		"states": s.States,
		"lookup": s.Lookup,
	}
	if s.Machine != nil {
		ret["state"] = s.Machine.State
		ret["steps"] = s.Machine.Steps
		ret["outcome"] = s.Machine.Outcome.String()
	}
	return ret
}

// Close releases the arena. Handles held by the table and tape are dangling afterwards.
func (s *Session) Close() int {
	if s.closed {
		return 0
	}
	s.closed = true
	n := s.Arena.ReleaseAll()
	s.logger.Debug("arena released",
		"blocks", n,
	)
	return n
}
