package tmconfigs

import (
	"github.com/reusee/turing/cmds"
	"github.com/reusee/turing/configs"
	"github.com/reusee/turing/machines"
	"github.com/reusee/turing/tables"
	"github.com/reusee/turing/vars"
)

// Machine holds the run settings after flags and config files are merged.
type Machine struct {
	MaxSteps      int
	StartState    string
	HaltState     string
	TableCapacity int
	// ArenaLimit in bytes, zero for no limit
	ArenaLimit int
	Strict     bool
}

var (
	maxStepsFlag      = cmds.Var[int]("-max-steps", "step limit, default", "100000")
	startStateFlag    = cmds.Var[string]("-start", "start state, default", machines.StartState)
	haltStateFlag     = cmds.Var[string]("-halt", "halt state, default", machines.HaltState)
	tableCapacityFlag = cmds.Var[int]("-table-capacity", "transition table slots, default", "5003")
	arenaLimitFlag    = cmds.Var[int]("-arena-limit", "arena byte budget, default unlimited")
	strictFlag        = cmds.Switch("-strict", "reject malformed counts in table files")
)

func (Module) Machine(
	loader configs.Loader,
) Machine {
	return Machine{
		MaxSteps: vars.FirstNonZero(
			*maxStepsFlag,
			configs.First[int](loader, "max_steps"),
			machines.MaxSteps,
		),
		StartState: vars.FirstNonZero(
			*startStateFlag,
			configs.First[string](loader, "start_state"),
			machines.StartState,
		),
		HaltState: vars.FirstNonZero(
			*haltStateFlag,
			configs.First[string](loader, "halt_state"),
			machines.HaltState,
		),
		TableCapacity: vars.FirstNonZero(
			*tableCapacityFlag,
			configs.First[int](loader, "table_capacity"),
			tables.Capacity,
		),
		ArenaLimit: vars.FirstNonZero(
			*arenaLimitFlag,
			configs.First[int](loader, "arena_limit"),
		),
		Strict: *strictFlag || configs.First[bool](loader, "strict"),
	}
}

func (m Machine) Options() machines.Options {
	return machines.Options{
		StartState: m.StartState,
		HaltState:  m.HaltState,
		MaxSteps:   m.MaxSteps,
	}
}
