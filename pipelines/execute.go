package pipelines

import (
	"fmt"
	"io"

	"github.com/reusee/thislang/thisvm"
)

type ExecuteOptions struct {
	Stdout        io.Writer // program output, if nil, default to os.Stdout
	StackCapacity int
	Trace         io.Writer // frame events, nil to disable
	// OnEvent, if not nil, sees every event; returning false stops the run
	OnEvent func(*thisvm.Event) bool
}

// Execute runs code to completion on a fresh VM. The VM is returned even
// on error, for inspection.
func Execute(code []thisvm.Instruction, options *ExecuteOptions) (*thisvm.VM, error) {
	var opts ExecuteOptions
	if options != nil {
		opts = *options
	}
	trace := &tracer{w: opts.Trace}

	vm := thisvm.NewVM(code, &thisvm.Options{
		Stdout:        opts.Stdout,
		StackCapacity: opts.StackCapacity,
	})
	trace.banner(StageExecute)

	for ev, err := range vm.Run {
		if err != nil {
			return vm, err
		}
		trace.event(ev)
		if opts.OnEvent != nil && !opts.OnEvent(ev) {
			break
		}
	}

	if trace.err != nil {
		return vm, fmt.Errorf("write trace: %w", trace.err)
	}
	return vm, nil
}
