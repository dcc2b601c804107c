package thisconfigs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/thislang/configs"
	"github.com/reusee/thislang/logs"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}
