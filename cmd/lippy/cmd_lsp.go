package main

import (
	"github.com/dhamidi/lippy/lsp"
	"github.com/spf13/cobra"
)

func newLSPCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start a Language Server Protocol server reporting parse errors",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.load()
			if err != nil {
				return err
			}
			lang, err := loadLanguage(cfg)
			if err != nil {
				return err
			}
			server := lsp.NewServer(version, lang.Parse)
			return server.RunStdio()
		},
	}
}
