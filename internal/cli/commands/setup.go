package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/gaia/internal/cli/config"
	"github.com/leapstack-labs/gaia/internal/cli/output"
	"github.com/leapstack-labs/gaia/internal/extension"
	"github.com/leapstack-labs/gaia/pkg/compiler"
	"github.com/leapstack-labs/gaia/pkg/symbols"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	cfg := config.Default()
	cfg.Target = getEnvOrDefault(config.EnvPrefix+"TARGET", cfg.Target)
	cfg.ExtDir = getEnvOrDefault(config.EnvPrefix+"EXT_DIR", cfg.ExtDir)
	cfg.OutDir = os.Getenv(config.EnvPrefix + "OUT_DIR")
	cfg.Verbose = os.Getenv(config.EnvPrefix+"VERBOSE") == "true"
	cfg.OutputFormat = getEnvOrDefault(config.EnvPrefix+"OUTPUT", cfg.OutputFormat)
	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// loadExtensions reads the configured extensions directory.
func (c *CommandContext) loadExtensions() ([]*extension.Extension, error) {
	exts, err := extension.NewLoader(c.Cfg.ExtDir, c.Logger).Load()
	if err != nil {
		return nil, err
	}
	if len(exts) > 0 {
		c.Logger.Debug("loaded extensions", "dir", c.Cfg.ExtDir, "count", len(exts))
	}
	return exts, nil
}

// newCompiler builds a compiler from the configured passes, extensions and
// extra symbols.
func (c *CommandContext) newCompiler() (*compiler.Compiler, error) {
	exts, err := c.loadExtensions()
	if err != nil {
		return nil, err
	}

	extra := extension.Entries(exts)
	if len(c.Cfg.Symbols.Extra) > 0 {
		extra = append(extra, symbols.EntriesFromMap(c.Cfg.Symbols.Extra, "config")...)
	}

	opts := []compiler.Option{
		compiler.WithSymbols(extra),
		compiler.WithExtraPasses(extension.Passes(exts)...),
		compiler.WithLogger(c.Logger),
	}
	if len(c.Cfg.Compiler.Passes) > 0 {
		opts = append(opts, compiler.WithPasses(c.Cfg.Compiler.Passes...))
	}

	comp, err := compiler.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build compiler: %w", err)
	}
	return comp, nil
}

// compileOptions returns the configured options for target.
func (c *CommandContext) compileOptions(target compiler.Target) compiler.Options {
	return compiler.Options{
		Target: target,
		Debug:  c.Cfg.Compiler.Debug,
		Check:  c.Cfg.Compiler.Check,
		Minify: c.Cfg.Compiler.Minify,
	}
}

// readInput returns the first argument, the --file contents, or stdin.
func readInput(cmd *cobra.Command, args []string, file string) (string, error) {
	switch {
	case file != "":
		data, err := os.ReadFile(file) //nolint:gosec // user-provided path
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
}
