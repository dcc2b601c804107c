package thisconfigs

import (
	"github.com/reusee/thislang/cmds"
	"github.com/reusee/thislang/configs"
	"github.com/reusee/thislang/logs"
	"github.com/reusee/thislang/vars"
)

// StackCapacity is the initial operand stack capacity. Zero leaves the
// virtual machine default.
type StackCapacity int

var _ configs.Configurable = StackCapacity(0)

func (StackCapacity) ConfigPath() string {
	return "stack_capacity"
}

var stackCapacityFlag = cmds.Var[int]("-stack", "initial operand stack capacity")

func (Module) StackCapacity(
	loader configs.Loader,
	logger logs.Logger,
) StackCapacity {
	logOrigin(logger, loader, StackCapacity(0))
	return vars.FirstNonZero(
		// flag
		StackCapacity(*stackCapacityFlag),
		// config
		vars.DerefOrZero(
			configs.First[*StackCapacity](loader, StackCapacity(0).ConfigPath()),
		),
	)
}
