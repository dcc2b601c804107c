package cmds

import (
	"strings"
	"testing"
)

func TestUsage(t *testing.T) {
	executor := NewExecutor()
	executor.Define("-stack", Func(func(int) {}).Desc("operand stack capacity"))
	executor.Define("-O0", Func(func() {}).Desc("disable constant folding").Alias("-no-opt"))
	executor.Define("trace", Sub(map[string]*Command{
		"on": Func(func() {}).Desc("ON"),
		"off": Sub(map[string]*Command{
			"quiet": Func(func() {}).Desc("QUIET"),
		}).Desc("OFF"),
	}).Desc("TRACE"))

	buf := new(strings.Builder)
	executor.WriteUsage(buf)
	out := buf.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %q", out)
	}
	if !strings.HasPrefix(lines[0], "-O0 (-no-opt)") {
		t.Fatalf("got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "-h (help, -help, --help)") {
		t.Fatalf("got %q", lines[1])
	}
	if !strings.HasPrefix(lines[4], "  off") {
		t.Fatalf("got %q", lines[4])
	}
	if !strings.HasPrefix(lines[5], "    quiet") || !strings.HasSuffix(lines[5], "QUIET") {
		t.Fatalf("got %q", lines[5])
	}
	if strings.Count(out, "-no-opt") != 1 {
		t.Fatalf("alias listed twice: %q", out)
	}
}
