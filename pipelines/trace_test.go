package pipelines

import (
	"bytes"
	"strings"
	"testing"
)

func TestTrace(t *testing.T) {
	src := `fn count(n: int) -> int {
	if n == 0 {
		return 0;
	};
	print(n);
	return count(n - 1);
};
print(count(2));
`
	out := new(bytes.Buffer)
	testScope(t, out, true).Call(func(
		pipeline Pipeline,
	) {
		if _, err := pipeline(t.Context(), "count.this", strings.NewReader(src)); err != nil {
			t.Fatal(err)
		}
	})
	trace := out.String()

	// stages in order
	last := -1
	for _, stage := range []string{
		StageSource,
		StageLex,
		StageParse,
		StageOptimize,
		StageGenerate,
		StageExecute,
	} {
		i := strings.Index(trace, "=="+stage+"==")
		if i < 0 {
			t.Fatalf("no %s in\n%s", stage, trace)
		}
		if i < last {
			t.Fatalf("%s out of order", stage)
		}
		last = i
	}

	for _, want := range []string{
		src + "\n" + "108\n",
		"Func\nIdentifier(count)\nLeftParen\n",
		"FunctionDeclaration count(n: int) -> int\n",
		" 0 DECLARE count (end ",
	} {
		if !strings.Contains(trace, want) {
			t.Fatalf("no %q in\n%s", want, trace)
		}
	}

	// frame events interleave with program output
	_, vmTrace, _ := strings.Cut(trace, StageExecute+"==================\n")
	want := `allocate stack frame for function count
2
tail call - reuse stack frame for function count
1
tail call - reuse stack frame for function count
0
`
	if vmTrace != want {
		t.Fatalf("got %q", vmTrace)
	}
}

func TestQuiet(t *testing.T) {
	out := new(bytes.Buffer)
	testScope(t, out, false).Call(func(
		pipeline Pipeline,
	) {
		if _, err := pipeline(t.Context(), "test", strings.NewReader("print(1);")); err != nil {
			t.Fatal(err)
		}
	})
	if out.String() != "1\n" {
		t.Fatalf("got %q", out.String())
	}
}
