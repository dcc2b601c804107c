package thisconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/thislang/configs"
	"github.com/reusee/thislang/logs"
)

//go:embed schema.cue
var schema string

var filenames = []string{
	"thisc.cue",
	".thisc.cue",
}

// SearchDirs lists directories probed for config files, most specific first.
type SearchDirs []string

func (Module) SearchDirs() (ret SearchDirs) {
	// working directory
	if dir, err := os.Getwd(); err == nil {
		ret = append(ret, dir)
	}
	// user config dir
	if dir, err := os.UserConfigDir(); err == nil {
		ret = append(ret, dir)
	}
	// system wide
	ret = append(ret, "/etc")
	return
}

func (Module) ConfigsLoader(
	logger logs.Logger,
	dirs SearchDirs,
) configs.Loader {

	var paths []string
	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}

	if len(paths) > 0 {
		logger.Info("config file",
			"paths", paths,
		)
	}

	return configs.NewLoader(paths, schema)
}
