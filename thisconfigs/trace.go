package thisconfigs

import (
	"github.com/reusee/thislang/cmds"
	"github.com/reusee/thislang/configs"
	"github.com/reusee/thislang/logs"
)

// Trace enables the staged compilation trace.
type Trace bool

var _ configs.Configurable = Trace(false)

func (Trace) ConfigPath() string {
	return "trace"
}

var quiet = cmds.Switch("-quiet", "print program output only")

func (Module) Trace(
	loader configs.Loader,
	logger logs.Logger,
) Trace {
	if *quiet {
		return false
	}
	logOrigin(logger, loader, Trace(false))
	if v, ok := configs.Lookup[Trace](loader); ok {
		return v
	}
	return true
}
