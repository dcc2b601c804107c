package cmds

import (
	"fmt"
	"os"
)

var GlobalExecutor = NewExecutor()

func Define(name string, command *Command) {
	GlobalExecutor.Define(name, command)
}

// Positional collects every argument that names no command.
func Positional() *[]string {
	var ret []string
	GlobalExecutor.Positional(func(arg string) error {
		ret = append(ret, arg)
		return nil
	})
	return &ret
}

// Execute runs args against the global executor, exiting with status 1 on error.
func Execute(args []string) {
	if err := GlobalExecutor.Execute(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		GlobalExecutor.PrintUsage()
		os.Exit(1)
	}
}

func PrintUsage() {
	GlobalExecutor.PrintUsage()
}
