package thisconfigs

import (
	"github.com/reusee/thislang/cmds"
	"github.com/reusee/thislang/configs"
	"github.com/reusee/thislang/logs"
)

// Optimize enables constant folding.
type Optimize bool

var _ configs.Configurable = Optimize(false)

func (Optimize) ConfigPath() string {
	return "optimize"
}

var noOptimize = cmds.Switch("-O0", "disable constant folding")

func (Module) Optimize(
	loader configs.Loader,
	logger logs.Logger,
) Optimize {
	// flag
	if *noOptimize {
		return false
	}
	// config
	logOrigin(logger, loader, Optimize(false))
	if v, ok := configs.Lookup[Optimize](loader); ok {
		return v
	}
	return true
}
