package config

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/gaia/pkg/compiler"
)

var validOutputs = map[string]bool{"": true, "auto": true, "text": true, "markdown": true, "json": true}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := compiler.ParseTarget(c.Target); err != nil {
		return err
	}

	if !validOutputs[c.OutputFormat] {
		return fmt.Errorf("unknown output format %q (want auto, text, markdown or json)", c.OutputFormat)
	}

	known := make(map[string]bool)
	for _, name := range compiler.PassNames() {
		known[name] = true
	}
	for _, name := range c.Compiler.Passes {
		if !known[name] {
			return fmt.Errorf("compiler.passes: %w: %q", compiler.ErrUnknownPass, name)
		}
	}

	r := c.Analysis.Ratios
	if r.CJK < 0 || r.Math < 0 || r.ASCII < 0 {
		return fmt.Errorf("analysis.ratios must not be negative")
	}

	return nil
}

// ValidateOutDir checks that the output directory exists, creating it when
// create is set.
func (c *Config) ValidateOutDir(create bool) error {
	if c.OutDir == "" {
		return nil
	}
	info, err := os.Stat(c.OutDir)
	switch {
	case os.IsNotExist(err) && create:
		return os.MkdirAll(c.OutDir, 0o750)
	case os.IsNotExist(err):
		return fmt.Errorf("output directory does not exist: %s\nHint: Create the directory or use --out-dir to specify a different path", c.OutDir)
	case err != nil:
		return err
	case !info.IsDir():
		return fmt.Errorf("output path is not a directory: %s", c.OutDir)
	}
	return nil
}
