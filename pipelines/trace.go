package pipelines

import (
	"fmt"
	"io"

	"github.com/reusee/thislang/thislang"
	"github.com/reusee/thislang/thisvm"
)

const (
	StageSource   = "SOURCE CODE"
	StageLex      = "LEXICAL ANALYZE"
	StageParse    = "PARSE"
	StageOptimize = "AFTER OPTIMIZE"
	StageGenerate = "CODE GENERATE"
	StageExecute  = "VIRTUAL MACHINE"
)

// tracer writes the staged trace. A nil writer disables it.
type tracer struct {
	w   io.Writer
	err error
}

func (t *tracer) enabled() bool {
	return t.w != nil && t.err == nil
}

func (t *tracer) printf(format string, args ...any) {
	if !t.enabled() {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *tracer) banner(stage string) {
	t.printf("==================%s==================\n", stage)
}

func (t *tracer) source(src *thislang.Source) {
	t.banner(StageSource)
	t.printf("%s\n%d\n", src.Content, len(src.Content))
}

func (t *tracer) tokens(tokens []*thislang.Token) {
	t.banner(StageLex)
	for _, token := range tokens {
		t.printf("%s\n", token)
	}
}

func (t *tracer) program(stage string, program *thislang.Program) {
	t.banner(stage)
	if !t.enabled() {
		return
	}
	t.err = thislang.Dump(t.w, program)
}

func (t *tracer) code(code []thisvm.Instruction) {
	t.banner(StageGenerate)
	if !t.enabled() {
		return
	}
	t.err = thisvm.Disassemble(t.w, code)
}

func (t *tracer) event(ev *thisvm.Event) {
	switch ev.Kind {
	case thisvm.EventCall:
		t.printf("allocate stack frame for function %s\n", ev.Name)
	case thisvm.EventTailCall:
		t.printf("tail call - reuse stack frame for function %s\n", ev.Name)
	}
}
