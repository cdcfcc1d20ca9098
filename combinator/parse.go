package combinator

import (
	"fmt"
	"io"
	"os"
)

// StepKind tags a Step.
type StepKind int

const (
	SingleStep StepKind = iota
	PipelineStep
)

// Step is either one parser or a pipeline of parsers threaded one after
// the other.
type Step struct {
	Kind   StepKind
	Parser *Parser   // SingleStep
	Stages []*Parser // PipelineStep
}

// Single returns a Step applying p.
func Single(p *Parser) Step {
	return Step{Kind: SingleStep, Parser: p}
}

// Pipeline returns a Step applying stages in order. It stops at the first
// stage that leaves the state failed.
func Pipeline(stages ...*Parser) Step {
	return Step{Kind: PipelineStep, Stages: stages}
}

// Apply runs the step on s.
func (st Step) Apply(s State) State {
	switch st.Kind {
	case SingleStep:
		if st.Parser == nil {
			return s
		}
		return st.Parser.Parse(s)
	case PipelineStep:
		for _, p := range st.Stages {
			if s.Failed() {
				break
			}
			s = p.Parse(s)
		}
		return s
	default:
		panic(fmt.Sprintf("combinator: unknown step kind %d", st.Kind))
	}
}

// Run applies step to the initial state of input.
func Run(input string, step Step) State {
	return step.Apply(NewState(input))
}

// ParseText applies parsers in order to the initial state of input and
// returns the final state.
func ParseText(input string, parsers ...*Parser) State {
	if len(parsers) == 1 {
		return Run(input, Single(parsers[0]))
	}
	return Run(input, Pipeline(parsers...))
}

// ParseReader reads all of r and parses it with ParseText. The error is
// only for reading; parse failures are reported on the State.
func ParseReader(r io.Reader, parsers ...*Parser) (State, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return State{}, fmt.Errorf("read input: %w", err)
	}
	return ParseText(string(data), parsers...), nil
}

// ParseFile reads filename and parses it with ParseText.
func ParseFile(filename string, parsers ...*Parser) (State, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return State{}, fmt.Errorf("read %s: %w", filename, err)
	}
	return ParseText(string(data), parsers...), nil
}
