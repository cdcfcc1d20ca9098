package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/lippy/combinator"
	"github.com/dhamidi/lippy/config"
	"github.com/dhamidi/lippy/ebnflex"
	"github.com/dhamidi/lippy/grammar"
)

// language is a grammar selected by the configuration.
type language struct {
	cfg   *config.Config
	rules *ebnflex.Rules // nil for the standard grammar
	start *combinator.Parser
}

func loadLanguage(cfg *config.Config) (*language, error) {
	if cfg.IsStandard() {
		p, ok := grammar.Standard().Rule(cfg.Start)
		if !ok {
			return nil, fmt.Errorf("standard grammar has no rule %q", cfg.Start)
		}
		return &language{cfg: cfg, start: p}, nil
	}

	g, err := ebnflex.LoadGrammar(cfg.Grammar)
	if err != nil {
		return nil, err
	}
	if err := ebnflex.Check(g, cfg.Start); err != nil {
		return nil, fmt.Errorf("check %s: %w", cfg.Grammar, err)
	}
	rules, err := ebnflex.Compile(g, ebnflex.WithSkip(cfg.Skip...))
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", cfg.Grammar, err)
	}
	p, _ := rules.Parser(cfg.Start)
	return &language{cfg: cfg, rules: rules, start: p}, nil
}

// Parse parses the whole of input with the start rule.
func (l *language) Parse(input string) combinator.State {
	if l.rules != nil {
		st, _ := l.rules.Parse(l.cfg.Start, input)
		return st
	}
	return combinator.ParseText(input, l.start, combinator.EOF)
}

// readInput reads the named file, or standard input for "" and "-".
func readInput(filename string) (string, error) {
	if filename == "" || filename == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}
