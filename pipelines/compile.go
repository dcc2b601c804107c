package pipelines

import (
	"fmt"
	"io"

	"github.com/reusee/thislang/procs"
	"github.com/reusee/thislang/thisgen"
	"github.com/reusee/thislang/thislang"
	"github.com/reusee/thislang/thisopt"
	"github.com/reusee/thislang/thisvm"
)

type CompileOptions struct {
	NoOptimize bool      // skip constant folding
	Verify     bool      // check the generated code before returning it
	Trace      io.Writer // staged trace, nil to disable
}

// Compiled holds the product of every compilation stage.
type Compiled struct {
	Source    *thislang.Source
	Tokens    []*thislang.Token
	Program   *thislang.Program
	Optimized *thislang.Program
	Stats     thisopt.Stats
	Code      []thisvm.Instruction
}

func Compile(name string, r io.Reader, options *CompileOptions) (*Compiled, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return CompileSource(thislang.NewSource(name, string(content)), options)
}

type compileState struct {
	CompileOptions
	trace    *tracer
	compiled *Compiled
}

type stage = procs.Func[*compileState]

var compileStages = []stage{
	lexStage,
	parseStage,
	optimizeStage,
	generateStage,
}

func CompileSource(src *thislang.Source, options *CompileOptions) (*Compiled, error) {
	state := &compileState{
		compiled: &Compiled{
			Source: src,
		},
	}
	if options != nil {
		state.CompileOptions = *options
	}
	state.trace = &tracer{w: state.Trace}
	state.trace.source(src)

	var stages procs.Procs[*compileState]
	for _, s := range compileStages {
		stages = append(stages, s)
	}
	if err := procs.Drain[*compileState](state, stages); err != nil {
		return nil, err
	}

	if state.trace.err != nil {
		return nil, fmt.Errorf("write trace: %w", state.trace.err)
	}
	return state.compiled, nil
}

func lexStage(state *compileState) (procs.Proc[*compileState], error) {
	tokens, err := thislang.Tokenize(state.compiled.Source)
	if err != nil {
		return nil, err
	}
	state.compiled.Tokens = tokens
	state.trace.tokens(tokens)
	return nil, nil
}

func parseStage(state *compileState) (procs.Proc[*compileState], error) {
	program, err := thislang.Parse(thislang.NewSliceTokenStream(state.compiled.Tokens))
	if err != nil {
		return nil, err
	}
	state.compiled.Program = program
	state.trace.program(StageParse, program)
	return nil, nil
}

func optimizeStage(state *compileState) (procs.Proc[*compileState], error) {
	c := state.compiled
	if state.NoOptimize {
		c.Optimized = c.Program
	} else {
		c.Optimized, c.Stats = thisopt.OptimizeWithStats(c.Program)
	}
	state.trace.program(StageOptimize, c.Optimized)
	return nil, nil
}

func generateStage(state *compileState) (procs.Proc[*compileState], error) {
	code, err := thisgen.Generate(state.compiled.Optimized)
	if err != nil {
		return nil, err
	}
	state.compiled.Code = code
	if state.Verify {
		// checked before the listing is traced
		return stage(verifyStage), nil
	}
	state.trace.code(code)
	return nil, nil
}

func verifyStage(state *compileState) (procs.Proc[*compileState], error) {
	if err := thisvm.Verify(state.compiled.Code); err != nil {
		return nil, err
	}
	state.trace.code(state.compiled.Code)
	return nil, nil
}
