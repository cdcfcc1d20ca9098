// Package config loads lippy.toml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dhamidi/lippy/format"
)

// FileName is the name of the configuration file looked up by Find.
const FileName = "lippy.toml"

// StandardGrammar selects the built-in grammar instead of an EBNF file.
const StandardGrammar = "std"

// Config holds the settings shared by the lippy subcommands.
type Config struct {
	Grammar string   `toml:"grammar"` // "std" or a path to an .ebnf file
	Start   string   `toml:"start"`   // start production of an EBNF grammar
	Format  string   `toml:"format"`
	Skip    []string `toml:"skip"` // token kinds dropped from lex output and skipped in EBNF grammars
	Watch   bool     `toml:"watch"`

	// Path is the file the configuration was loaded from, if any.
	Path string `toml:"-"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Grammar: StandardGrammar,
		Start:   "Program",
		Format:  "text",
	}
}

// Load finds lippy.toml starting in the current directory.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom finds lippy.toml in dir or one of its parents and loads it. If
// there is none, the defaults are returned.
func LoadFrom(dir string) (*Config, error) {
	path, err := Find(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// Find returns the path of the nearest lippy.toml at or above dir, or ""
// if there is none.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LoadFile reads the configuration at path on top of the defaults. A
// relative grammar path is resolved against the file's directory.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("load %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	cfg.Path = path
	if cfg.Grammar != StandardGrammar && !filepath.IsAbs(cfg.Grammar) {
		cfg.Grammar = filepath.Join(filepath.Dir(path), cfg.Grammar)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}

// Merge overrides c with the non-zero fields of o.
func (c *Config) Merge(o Config) {
	if o.Grammar != "" {
		c.Grammar = o.Grammar
	}
	if o.Start != "" {
		c.Start = o.Start
	}
	if o.Format != "" {
		c.Format = o.Format
	}
	if len(o.Skip) > 0 {
		c.Skip = o.Skip
	}
	if o.Watch {
		c.Watch = true
	}
}

// Validate checks that the settings can be acted upon.
func (c *Config) Validate() error {
	if c.Grammar == "" {
		return errors.New("grammar must not be empty")
	}
	if c.Grammar != StandardGrammar && c.Start == "" {
		return fmt.Errorf("grammar %s needs a start production", c.Grammar)
	}
	if _, err := format.New(c.Format, nil); err != nil {
		return err
	}
	return nil
}

// IsStandard reports whether the built-in grammar is selected.
func (c *Config) IsStandard() bool {
	return c.Grammar == StandardGrammar
}
