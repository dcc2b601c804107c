package pipelines

import (
	"io"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/thislang/debugs"
	"github.com/reusee/thislang/logs"
	"github.com/reusee/thislang/thisconfigs"
)

type Module struct {
	dscope.Module
	Configs thisconfigs.Module
	Logs    logs.Module
	Debugs  debugs.Module
}

// Output receives program output.
type Output io.Writer

func (Module) Output() Output {
	return os.Stdout
}

// TraceWriter receives the staged trace when tracing is enabled.
type TraceWriter io.Writer

func (Module) TraceWriter() TraceWriter {
	return os.Stdout
}
