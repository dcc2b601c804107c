package cmds

import (
	"fmt"
	"strings"
	"testing"
)

func TestVar(t *testing.T) {
	depth := Var[int]("-TestVar-depth", "depth")
	entry := Var[string]("-TestVar-entry", "entry")
	GlobalExecutor.MustExecute([]string{
		"-TestVar-depth", "42",
		"-TestVar-entry", "main",
	})
	if *depth != 42 {
		t.Fatal()
	}
	if *entry != "main" {
		t.Fatal()
	}
	GlobalExecutor.MustExecute([]string{
		"-TestVar-depth.",
	})
	if *depth != 0 {
		t.Fatalf("got %d", *depth)
	}
}

func TestSwitch(t *testing.T) {
	foo := Switch("-TestSwitch", "switch")
	GlobalExecutor.MustExecute([]string{
		"-TestSwitch",
	})
	if *foo != true {
		t.Fatal()
	}
	GlobalExecutor.MustExecute([]string{
		"!-TestSwitch",
	})
	if *foo != false {
		t.Fatal()
	}
}

func TestCollect(t *testing.T) {
	list := Collect[string]("-TestCollect", "collect")
	GlobalExecutor.MustExecute([]string{
		"-TestCollect", "a.this",
		"-TestCollect", "b.this",
	})
	if str := fmt.Sprintf("%v", *list); str != "[a.this b.this]" {
		t.Fatalf("got %s", str)
	}
}

func TestTypedVar(t *testing.T) {
	type Path string
	v := Var[Path]("-TestTypedVar", "typed")
	GlobalExecutor.MustExecute([]string{
		"-TestTypedVar", "main.this",
	})
	if *v != "main.this" {
		t.Fatal()
	}
}

func TestHelperDescriptions(t *testing.T) {
	Switch("-TestHelperDescriptions", "describe me")
	buf := new(strings.Builder)
	GlobalExecutor.WriteUsage(buf)
	if !strings.Contains(buf.String(), "describe me") {
		t.Fatalf("got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "undo -TestHelperDescriptions") {
		t.Fatalf("got %q", buf.String())
	}
}
