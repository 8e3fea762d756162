package sessions

import (
	"io"

	gojson "github.com/goccy/go-json"
	"github.com/reusee/turing/loaders"
	"github.com/reusee/turing/machines"
)

type Report struct {
	Outcome     machines.Outcome     `json:"outcome"`
	Steps       int                  `json:"steps"`
	State       string               `json:"state"`
	Output      string               `json:"output"`
	Cells       int                  `json:"cells"`
	Transitions int                  `json:"transitions"`
	States      []string             `json:"states"`
	Diagnostics []loaders.Diagnostic `json:"diagnostics"`
}

func (s *Session) Report() (Report, error) {
	report := Report{
		Cells:       s.Tape.Len(),
		Transitions: s.Table.Len(),
		States:      s.States,
		Diagnostics: s.Diagnostics,
	}
	if s.Machine != nil {
		result := s.Machine.Result()
		report.Outcome = result.Outcome
		report.Steps = result.Steps
		report.State = result.State
	}
	output, err := s.Render()
	if err != nil {
		return report, err
	}
	report.Output = output
	return report, nil
}

func (s *Session) WriteReport(w io.Writer) error {
	report, err := s.Report()
	if err != nil {
		return err
	}
	encoder := gojson.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
