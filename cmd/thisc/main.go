package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/thislang/cmds"
	"github.com/reusee/thislang/debugs"
	"github.com/reusee/thislang/modes"
	"github.com/reusee/thislang/pipelines"
	"github.com/reusee/thislang/thisconfigs"
	"github.com/reusee/thislang/thisvm"
)

var (
	paths = cmds.Positional()

	tap          = cmds.Switch("-tap", "open a starlark session over the final machine state")
	disasmOnly   = cmds.Switch("-disasm", "print generated code without running it")
	snapshotPath = cmds.Var[string]("-snapshot", "write the final machine state to a file")
)

func main() {
	cmds.Execute(os.Args[1:])

	if len(*paths) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags...] <source_file>\n", os.Args[0])
		cmds.PrintUsage()
		os.Exit(1)
	}
	path := (*paths)[0]

	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", path, err)
		os.Exit(1)
	}

	scope := dscope.New(
		new(pipelines.Module),
		modes.ForProduction(),
	)

	if *disasmOnly {
		scope.Call(func(
			optimize thisconfigs.Optimize,
		) {
			compiled, err := pipelines.Compile(path, bytes.NewReader(content), &pipelines.CompileOptions{
				NoOptimize: !bool(optimize),
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			if err := thisvm.Disassemble(os.Stdout, compiled.Code); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		})
		return
	}

	scope.Call(func(
		pipeline pipelines.Pipeline,
		tapVM debugs.Tap,
	) {
		ctx := context.Background()
		result, err := pipeline(ctx, path, bytes.NewReader(content))

		if result != nil && *snapshotPath != "" {
			if err := writeSnapshot(*snapshotPath, result.VM); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing snapshot: %v\n", err)
				os.Exit(1)
			}
		}

		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if *tap {
			tapVM(ctx, path, result.VM)
		}
	})
}

func writeSnapshot(path string, vm *thisvm.VM) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := vm.Snapshot(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
