package main

import (
	"errors"
	"fmt"

	"github.com/dhamidi/lippy/combinator"
	"github.com/dhamidi/lippy/ebnflex"
	"github.com/dhamidi/lippy/grammar"
	"github.com/spf13/cobra"
)

func newLexCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "lex [file]",
		Short: "Split a file (or stdin) into tokens",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.load()
			if err != nil {
				return err
			}
			filename := ""
			if len(args) > 0 {
				filename = args[0]
			}
			input, err := readInput(filename)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if cfg.IsStandard() {
				skip := make([]grammar.Kind, len(cfg.Skip))
				for i, k := range cfg.Skip {
					skip[i] = grammar.Kind(k)
				}
				tokens, lexErr := grammar.NewLexer(grammar.Standard(), skip...).Lex(input)
				for _, tok := range tokens {
					fmt.Fprintf(out, "%s\t%q\n", tok.Kind, tok.Text())
				}
				var d *combinator.Diagnostic
				if lexErr != nil {
					if errors.As(lexErr, &d) {
						line, col := d.Innermost().LineColumn(input)
						return fmt.Errorf("%d:%d: %s", line, col, d.Innermost().Message)
					}
					return lexErr
				}
				return nil
			}

			lang, err := loadLanguage(cfg)
			if err != nil {
				return err
			}
			skip := make(map[string]bool, len(cfg.Skip))
			for _, k := range cfg.Skip {
				skip[k] = true
			}
			for _, tok := range ebnflex.Tokenize(lang.rules, []byte(input), filename) {
				if !skip[tok.Kind] {
					fmt.Fprintln(out, tok)
				}
			}
			return nil
		},
	}
}
