package debugs

import (
	"strings"

	"github.com/reusee/thislang/thisvm"
	"go.starlark.net/starlark"
)

// Bindings exposes the state of vm to starlark. Program globals are also
// bound by name and win over the fixed names on collision.
func Bindings(vm *thisvm.VM) starlark.StringDict {
	ret := starlark.StringDict{
		"globals": toStarlarkValue(vm.GlobalsCopy()),
		"stack":   toStarlarkValue(vm.OperandStack),
		"depth":   starlark.MakeInt(vm.Depth()),
		"ip":      starlark.MakeInt(vm.IP),
		"code":    toStarlarkValue(vm.Code),
		"disasm": toStarlarkValue(func() string {
			buf := new(strings.Builder)
			if err := thisvm.Disassemble(buf, vm.Code); err != nil {
				return err.Error()
			}
			return buf.String()
		}),
	}
	for name, value := range vm.Globals {
		ret[name] = starlark.MakeInt64(value)
	}
	return ret
}
