package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/dhamidi/lippy/format"
	"github.com/dhamidi/lippy/watch"
	"github.com/spf13/cobra"
)

var errParseFailed = errors.New("parse failed")

func newParseCmd(s *settings) *cobra.Command {
	var outputFormat string
	var watchInput bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a file (or stdin) and print the result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s.overrides.Format = outputFormat
			s.overrides.Watch = watchInput
			cfg, err := s.load()
			if err != nil {
				return err
			}
			lang, err := loadLanguage(cfg)
			if err != nil {
				return err
			}
			encoder, err := format.New(cfg.Format, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			filename := ""
			if len(args) > 0 {
				filename = args[0]
			}

			run := func() error {
				input, err := readInput(filename)
				if err != nil {
					return err
				}
				st := lang.Parse(input)
				if err := encoder.Encode(st); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
				if st.Failed() {
					return errParseFailed
				}
				return nil
			}

			if !cfg.Watch {
				return run()
			}

			if filename == "" || filename == "-" {
				return errors.New("--watch needs a file argument")
			}
			if err := run(); err != nil && !errors.Is(err, errParseFailed) {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return watchAndRun(ctx, run, filename)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format: text, line, json, yaml")
	cmd.Flags().BoolVarP(&watchInput, "watch", "w", false, "parse again whenever the file changes")

	return cmd
}

func watchAndRun(ctx context.Context, run func() error, filename string) error {
	w := watch.New(func(string) {
		if err := run(); err != nil && !errors.Is(err, errParseFailed) {
			log.Errorf("%s", err)
		}
	}, filename)
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	log.Noticef("watching %s", filename)
	<-ctx.Done()
	return nil
}
