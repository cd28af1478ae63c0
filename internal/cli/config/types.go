// Package config provides configuration management for the gaia CLI.
//
// Values are layered, highest precedence first: command-line flags,
// GAIA_* environment variables, the gaia.yaml project file, and defaults.
package config

import (
	"github.com/leapstack-labs/gaia/pkg/analysis"
	"github.com/leapstack-labs/gaia/pkg/compiler"
)

// Config holds all CLI configuration options.
type Config struct {
	Target       string         `koanf:"target" yaml:"target"`
	OutDir       string         `koanf:"out_dir" yaml:"out_dir,omitempty"`
	ExtDir       string         `koanf:"ext_dir" yaml:"ext_dir"`
	Verbose      bool           `koanf:"verbose" yaml:"verbose,omitempty"`
	OutputFormat string         `koanf:"output" yaml:"output"`
	Compiler     CompilerConfig `koanf:"compiler" yaml:"compiler"`
	Symbols      SymbolsConfig  `koanf:"symbols" yaml:"symbols"`
	Analysis     AnalysisConfig `koanf:"analysis" yaml:"analysis"`

	// ProjectRoot is the directory holding gaia.yaml, or the working
	// directory when there is none. Relative paths are resolved against it.
	ProjectRoot string `koanf:"-" yaml:"-"`
}

// CompilerConfig configures the compile pipeline.
type CompilerConfig struct {
	Passes []string `koanf:"passes" yaml:"passes,omitempty"`
	Check  bool     `koanf:"check" yaml:"check"`
	Minify bool     `koanf:"minify" yaml:"minify"`
	Debug  bool     `koanf:"debug" yaml:"debug"`
}

// SymbolsConfig adds symbols to the compiler dictionary.
type SymbolsConfig struct {
	// Extra maps symbol to meaning.
	Extra map[string]string `koanf:"extra" yaml:"extra,omitempty"`
}

// AnalysisConfig configures token estimation.
type AnalysisConfig struct {
	Ratios analysis.Estimator `koanf:"ratios" yaml:"ratios"`
}

// Default configuration values.
const (
	DefaultTarget = string(compiler.TargetJavaScript)
	DefaultExtDir = "ext"
	DefaultOutput = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// Config file names, in lookup order.
var configFileNames = []string{"gaia.yaml", "gaia.yml"}

// ConfigFileName is the file written by "gaia init".
const ConfigFileName = "gaia.yaml"

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Target:       DefaultTarget,
		ExtDir:       DefaultExtDir,
		OutputFormat: DefaultOutput,
		Compiler: CompilerConfig{
			Passes: append([]string(nil), compiler.DefaultPasses...),
		},
		Analysis: AnalysisConfig{Ratios: analysis.DefaultEstimator()},
	}
}
