package machines

import "fmt"

type Outcome int

const (
	Running Outcome = iota
	HaltedNormal
	HaltedNoTransition
	HaltedStepLimit
)

func (o Outcome) Halted() bool {
	return o != Running
}

func (o Outcome) String() string {
	switch o {
	case Running:
		return "running"
	case HaltedNormal:
		return "halted-normal"
	case HaltedNoTransition:
		return "halted-no-transition"
	case HaltedStepLimit:
		return "halted-step-limit"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}
