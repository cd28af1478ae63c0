package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gaia/pkg/analysis"
	"github.com/leapstack-labs/gaia/pkg/compiler"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// TestConfig_Validate tests the Config.Validate method.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		errSubstr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "typescript", mutate: func(c *Config) { c.Target = "TypeScript" }},
		{name: "json output", mutate: func(c *Config) { c.OutputFormat = "json" }},
		{
			name:      "unknown target",
			mutate:    func(c *Config) { c.Target = "rust" },
			errSubstr: "unknown target",
		},
		{
			name:      "unknown output",
			mutate:    func(c *Config) { c.OutputFormat = "html" },
			errSubstr: "unknown output format",
		},
		{
			name:      "unknown pass",
			mutate:    func(c *Config) { c.Compiler.Passes = []string{"numbers", "nope"} },
			errSubstr: `unknown pass: "nope"`,
		},
		{
			name:      "negative ratio",
			mutate:    func(c *Config) { c.Analysis.Ratios.Math = -1 },
			errSubstr: "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestConfig_ValidateOutDir(t *testing.T) {
	dir := t.TempDir()

	cfg := &Config{}
	assert.NoError(t, cfg.ValidateOutDir(false), "empty out_dir means stdout")

	cfg.OutDir = filepath.Join(dir, "dist")
	err := cfg.ValidateOutDir(false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")

	require.NoError(t, cfg.ValidateOutDir(true))
	assert.DirExists(t, cfg.OutDir)

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0600))
	cfg.OutDir = file
	err = cfg.ValidateOutDir(true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "javascript", cfg.Target)
	assert.Equal(t, "auto", cfg.OutputFormat)
	assert.Equal(t, compiler.DefaultPasses, cfg.Compiler.Passes)
	assert.Equal(t, analysis.DefaultEstimator(), cfg.Analysis.Ratios)
	assert.Empty(t, cfg.OutDir)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(wd, "ext"), cfg.ExtDir)
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, `target: typescript
out_dir: dist
ext_dir: symbols
compiler:
  passes: [numbers, symbols, cleanup]
  check: true
symbols:
  extra:
    "⊕": add
analysis:
  ratios:
    math: 0.5
`)

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "typescript", cfg.Target)
	assert.Equal(t, filepath.Join(dir, "dist"), cfg.OutDir)
	assert.Equal(t, filepath.Join(dir, "symbols"), cfg.ExtDir)
	assert.Equal(t, []string{"numbers", "symbols", "cleanup"}, cfg.Compiler.Passes)
	assert.True(t, cfg.Compiler.Check)
	assert.False(t, cfg.Compiler.Minify)
	assert.Equal(t, map[string]string{"⊕": "add"}, cfg.Symbols.Extra)
	assert.InDelta(t, 0.5, cfg.Analysis.Ratios.Math, 1e-9)
	assert.InDelta(t, analysis.DefaultCJKRatio, cfg.Analysis.Ratios.CJK, 1e-9)
	assert.Equal(t, cfgPath, GetConfigFileUsed())
}

func TestLoadConfig_FindsFileUpward(t *testing.T) {
	ResetConfig()
	root := t.TempDir()
	writeConfig(t, root, "target: ts\n")
	nested := filepath.Join(root, "src", "app")
	require.NoError(t, os.MkdirAll(nested, 0750))
	t.Chdir(nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "ts", cfg.Target)
	assert.Equal(t, filepath.Base(root), filepath.Base(cfg.ProjectRoot))
	assert.Equal(t, filepath.Join(cfg.ProjectRoot, "ext"), cfg.ExtDir)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		ResetConfig()
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing.yaml")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		ResetConfig()
		cfgPath := writeConfig(t, t.TempDir(), "target: [")
		_, err := LoadConfig(cfgPath, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config file")
	})

	t.Run("invalid target", func(t *testing.T) {
		ResetConfig()
		cfgPath := writeConfig(t, t.TempDir(), "target: cobol\n")
		_, err := LoadConfig(cfgPath, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
		assert.ErrorIs(t, err, compiler.ErrUnknownTarget)
	})
}

// TestLoadConfig_FlagPrecedence tests that flags override env vars and config file.
func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, t.TempDir(), "target: javascript\n")

	t.Setenv("GAIA_TARGET", "go")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("target", "", "compile target")
	flags.Bool("check", false, "check output")
	require.NoError(t, flags.Set("target", "typescript"))
	require.NoError(t, flags.Set("check", "true"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, "typescript", cfg.Target, "flag value should override config file and env var")
	assert.True(t, cfg.Compiler.Check, "--check maps to compiler.check")
}

// TestLoadConfig_EnvPrecedenceOverFile tests that env vars override config file.
func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, t.TempDir(), "target: javascript\ncompiler:\n  minify: false\n")

	t.Setenv("GAIA_TARGET", "go")
	t.Setenv("GAIA_COMPILER__MINIFY", "true")
	t.Setenv("GAIA_COMPILER__PASSES", "numbers,cleanup")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "go", cfg.Target, "env var should override config file")
	assert.True(t, cfg.Compiler.Minify)
	assert.Equal(t, []string{"numbers", "cleanup"}, cfg.Compiler.Passes)
}

// TestLoadConfig_FlagNotSetUsesEnv tests that unset flags fall back to env vars.
func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, t.TempDir(), "target: javascript\n")

	t.Setenv("GAIA_TARGET", "typescript")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("target", "javascript", "compile target")

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, "typescript", cfg.Target, "env var should be used when flag is not set")
}

func TestLoadConfig_PathFlagsRelativeToWorkingDir(t *testing.T) {
	ResetConfig()
	root := t.TempDir()
	cfgPath := writeConfig(t, root, "ext_dir: from_file\n")
	work := t.TempDir()
	t.Chdir(work)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("ext-dir", "", "extensions directory")
	require.NoError(t, flags.Set("ext-dir", "local"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "local"), cfg.ExtDir)
}
