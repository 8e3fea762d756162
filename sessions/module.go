package sessions

import (
	"github.com/reusee/dscope"
	"github.com/reusee/turing/arenas"
	"github.com/reusee/turing/debugs"
	"github.com/reusee/turing/logs"
	"github.com/reusee/turing/metrics"
	"github.com/reusee/turing/tables"
	"github.com/reusee/turing/tapes"
	"github.com/reusee/turing/tmconfigs"
)

type Module struct {
	dscope.Module
	Logs    logs.Module
	Configs tmconfigs.Module
	Metrics metrics.Module
	Debugs  debugs.Module
}

// NewSession returns an empty session with its own arena.
type NewSession func() *Session

func (Module) NewSession(
	logger logs.Logger,
	config tmconfigs.Machine,
	m *metrics.Metrics,
	newSpan logs.NewSpan,
) NewSession {
	return func() *Session {
		arena := arenas.New(config.ArenaLimit)
		return &Session{
			Arena:   arena,
			Table:   tables.New(arena, config.TableCapacity),
			Tape:    tapes.New(arena),
			config:  config,
			logger:  logger,
			metrics: m,
			newSpan: newSpan,
		}
	}
}
