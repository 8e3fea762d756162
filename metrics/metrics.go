package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
	"github.com/reusee/dscope"
	"github.com/reusee/turing/arenas"
	"github.com/reusee/turing/machines"
	"github.com/reusee/turing/tapes"
)

type Module struct {
	dscope.Module
}

// Metrics are per scope, so tests and sessions never share counters.
type Metrics struct {
	Registry    *prometheus.Registry
	Steps       prometheus.Counter
	Halts       *prometheus.CounterVec
	TapeCells   prometheus.Gauge
	ArenaBlocks prometheus.Gauge
	ArenaBytes  prometheus.Gauge
}

func (Module) Metrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Metrics{
		Registry: registry,

		Steps: factory.NewCounter(prometheus.CounterOpts{
			Name: "tm_steps_total",
			Help: "Total number of transitions applied",
		}),

		Halts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tm_halts_total",
				Help: "Total number of finished runs",
			},
			[]string{"outcome"},
		),

		TapeCells: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tm_tape_cells",
			Help: "Number of cells on the tape",
		}),

		ArenaBlocks: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tm_arena_blocks",
			Help: "Number of live arena blocks",
		}),

		ArenaBytes: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tm_arena_bytes",
			Help: "Bytes held by live arena blocks",
		}),
	}
}

// Finish records a run; Steps only counts applied transitions.
func (m *Metrics) Finish(result machines.Result) {
	m.Steps.Add(float64(result.Steps))
	if result.Outcome.Halted() {
		m.Halt(result.Outcome)
	}
}

func (m *Metrics) Halt(outcome machines.Outcome) {
	m.Halts.WithLabelValues(outcome.String()).Inc()
}

func (m *Metrics) Tape(tape *tapes.Tape) {
	m.TapeCells.Set(float64(tape.Len()))
}

func (m *Metrics) Arena(arena *arenas.Arena) {
	m.ArenaBlocks.Set(float64(arena.Live()))
	m.ArenaBytes.Set(float64(arena.Used()))
}

// WriteText writes all metrics in the prometheus text format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.Registry.Gather()
	if err != nil {
		return err
	}
	encoder := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := encoder.Encode(family); err != nil {
			return err
		}
	}
	return nil
}
