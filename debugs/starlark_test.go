package debugs

import (
	"testing"

	"github.com/reusee/thislang/thisvm"
	"go.starlark.net/starlark"
)

func TestToStarlarkValue(t *testing.T) {
	type frame struct {
		Locals   map[string]int64
		ReturnIP int
		hidden   int
	}

	testCases := []struct {
		name     string
		input    any
		expected starlark.Value
	}{
		{"nil", nil, starlark.None},
		{"bool", true, starlark.True},
		{"string", "x", starlark.String("x")},
		{"int", 42, starlark.MakeInt(42)},
		{"int64", int64(-7), starlark.MakeInt64(-7)},
		{"uint8", uint8(3), starlark.MakeUint(3)},
		{"opcode", thisvm.OpAdd, starlark.String("ADD")},
		{"instruction", thisvm.Push(5), starlark.String("PUSH 5")},
		{"stack", []int64{1, 2}, starlark.NewList([]starlark.Value{starlark.MakeInt(1), starlark.MakeInt(2)})},
		{"globals", map[string]int64{"x": 1}, func() starlark.Value {
			d := starlark.NewDict(1)
			d.SetKey(starlark.String("x"), starlark.MakeInt(1))
			return d
		}()},
		{"struct", frame{Locals: map[string]int64{"n": 2}, ReturnIP: 9, hidden: 1}, func() starlark.Value {
			locals := starlark.NewDict(1)
			locals.SetKey(starlark.String("n"), starlark.MakeInt(2))
			d := starlark.NewDict(2)
			d.SetKey(starlark.String("Locals"), locals)
			d.SetKey(starlark.String("ReturnIP"), starlark.MakeInt(9))
			return d
		}()},
		{"nil pointer", (*frame)(nil), starlark.None},
		{"frames", []frame{{ReturnIP: 1}}, func() starlark.Value {
			d := starlark.NewDict(2)
			d.SetKey(starlark.String("Locals"), starlark.NewDict(0))
			d.SetKey(starlark.String("ReturnIP"), starlark.MakeInt(1))
			return starlark.NewList([]starlark.Value{d})
		}()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := toStarlarkValue(tc.input)
			equal, err := starlark.Equal(actual, tc.expected)
			if err != nil {
				t.Fatalf("comparison failed: %v", err)
			}
			if !equal {
				t.Errorf("toStarlarkValue(%#v) = %v, want %v", tc.input, actual, tc.expected)
			}
		})
	}

	t.Run("panic on unsupported type", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("toStarlarkValue did not panic on unsupported type")
			}
		}()
		toStarlarkValue(make(chan bool))
	})
}
