package main

import (
	"os"

	"github.com/dhamidi/lippy/config"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

var log = commonlog.GetLogger("lippy")

// settings are the persistent flags shared by all subcommands.
type settings struct {
	verbose    int
	configPath string
	overrides  config.Config
}

func (s *settings) load() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if s.configPath != "" {
		cfg, err = config.LoadFile(s.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	cfg.Merge(s.overrides)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		log.Debugf("using %s", cfg.Path)
	}
	return cfg, nil
}

func main() {
	s := &settings{}

	rootCmd := &cobra.Command{
		Use:   "lippy",
		Short: "Parse text with parser combinators",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(s.verbose, nil)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&s.verbose, "verbose", "v", "increase log verbosity")
	flags.StringVar(&s.configPath, "config", "", "configuration file (default: nearest "+config.FileName+")")
	flags.StringVarP(&s.overrides.Grammar, "grammar", "g", "", `grammar: "std" or an .ebnf file`)
	flags.StringVar(&s.overrides.Start, "start", "", "start production")
	flags.StringSliceVar(&s.overrides.Skip, "skip", nil, "token kinds to skip")

	rootCmd.AddCommand(newParseCmd(s))
	rootCmd.AddCommand(newLexCmd(s))
	rootCmd.AddCommand(newEbnfCmd())
	rootCmd.AddCommand(newLSPCmd(s))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
