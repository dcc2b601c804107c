package thisconfigs

import (
	"github.com/reusee/thislang/configs"
	"github.com/reusee/thislang/logs"
)

func logOrigin(logger logs.Logger, loader configs.Loader, c configs.Configurable) {
	origin, err := loader.Origin(c.ConfigPath())
	if err != nil {
		return
	}
	logger.Debug("config value",
		"path", c.ConfigPath(),
		"file", origin,
	)
}
