package debugs

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/thislang/logs"
	"github.com/reusee/thislang/thisvm"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Tap opens an interactive starlark session over the state of vm.
type Tap func(ctx context.Context, what string, vm *thisvm.VM)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
}

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, vm *thisvm.VM) {
		bindings := Bindings(vm)
		logger.InfoContext(ctx, "tap: "+what,
			"bindings", slices.Sorted(maps.Keys(bindings)),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		thread := &starlark.Thread{
			Name: "repl",
		}
		repl.REPLOptions(fileOptions, thread, bindings)
	}
}

// Eval evaluates a single starlark expression over the state of vm.
func Eval(vm *thisvm.VM, expr string) (starlark.Value, error) {
	thread := &starlark.Thread{
		Name: "eval",
	}
	return starlark.EvalOptions(fileOptions, thread, "<tap>", expr, Bindings(vm))
}
