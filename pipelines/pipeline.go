package pipelines

import (
	"context"
	"io"
	"time"

	"github.com/reusee/thislang/logs"
	"github.com/reusee/thislang/modes"
	"github.com/reusee/thislang/thisconfigs"
	"github.com/reusee/thislang/thisvm"
)

type Result struct {
	*Compiled
	VM *thisvm.VM
}

// Pipeline compiles and executes one source. Result is non-nil whenever
// compilation succeeded, so a failed run can still be inspected.
type Pipeline func(ctx context.Context, name string, r io.Reader) (*Result, error)

func (Module) Pipeline(
	logger logs.Logger,
	newSpan logs.NewSpan,
	mode modes.Mode,
	optimize thisconfigs.Optimize,
	trace thisconfigs.Trace,
	capacity thisconfigs.StackCapacity,
	output Output,
	traceWriter TraceWriter,
) Pipeline {
	return func(ctx context.Context, name string, r io.Reader) (_ *Result, err error) {
		ctx, _ = newSpan(ctx, "")
		defer func() {
			if err != nil {
				err = logs.WrapSpan(ctx, err)
			}
		}()

		var traceTo io.Writer
		if trace {
			traceTo = traceWriter
		}

		t0 := time.Now()
		compiled, err := Compile(name, r, &CompileOptions{
			NoOptimize: !bool(optimize),
			Verify:     mode == modes.ModeDevelopment,
			Trace:      traceTo,
		})
		if err != nil {
			logger.DebugContext(ctx, "compile failed",
				"source", name,
				"error", err,
			)
			return nil, err
		}
		logger.DebugContext(ctx, "compiled",
			"source", name,
			"tokens", len(compiled.Tokens),
			"statements", len(compiled.Program.Stmts),
			"folded", compiled.Stats.Folded,
			"instructions", len(compiled.Code),
			"duration", time.Since(t0),
		)

		t0 = time.Now()
		vm, err := Execute(compiled.Code, &ExecuteOptions{
			Stdout:        output,
			StackCapacity: int(capacity),
			Trace:         traceTo,
		})
		result := &Result{
			Compiled: compiled,
			VM:       vm,
		}
		if err != nil {
			logger.DebugContext(ctx, "execute failed",
				"source", name,
				"error", err,
			)
			return result, err
		}
		logger.DebugContext(ctx, "executed",
			"source", name,
			"max_depth", vm.MaxDepth,
			"globals", len(vm.Globals),
			"duration", time.Since(t0),
		)

		return result, nil
	}
}
