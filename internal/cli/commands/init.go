package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/gaia/internal/cli/config"
	"github.com/leapstack-labs/gaia/internal/cli/output"
	"github.com/leapstack-labs/gaia/pkg/compiler"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Force   bool
	Example bool
	Target  string
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	opts := &InitOptions{}

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new GaiaScript project",
		Long: `Initialize a new GaiaScript project.

This creates:
  - gaia.yaml configuration file
  - main.gaia starter program
  - ext/ directory for symbol extensions

Use --example to create a project with several sources and one extension
of each kind (YAML manifest, markdown dictionary, Starlark).`,
		Example: `  # Initialize in current directory
  gaia init

  # Initialize a TypeScript project in a new directory
  gaia init my-project --target typescript

  # Initialize with a full example
  gaia init --example

  # Force overwrite existing config
  gaia init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			// Create renderer
			cfg := getConfig()
			mode := output.Mode(cfg.OutputFormat)
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

			return runInit(r, dir, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&opts.Example, "example", false, "Create a full example project")
	cmd.Flags().StringVarP(&opts.Target, "target", "t", config.DefaultTarget, "Default compile target")

	return cmd
}

// projectConfig returns the gaia.yaml written for a new project.
func projectConfig(target compiler.Target, example bool) *config.Config {
	cfg := config.Default()
	cfg.Target = string(target)
	if example {
		cfg.OutDir = "dist"
	}
	return cfg
}

func writeProjectConfig(path string, cfg *config.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	header := "# GaiaScript project configuration.\n# Values can be overridden with GAIA_* environment variables and flags.\n"
	return os.WriteFile(path, append([]byte(header), data...), 0600)
}

func runInit(r *output.Renderer, dir string, opts *InitOptions) error {
	target, err := compiler.ParseTarget(opts.Target)
	if err != nil {
		return err
	}

	// Create directory if specified and doesn't exist
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// Check if config already exists
	configPath := filepath.Join(dir, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !opts.Force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", config.ConfigFileName)
	}

	templateName := "minimal"
	if opts.Example {
		templateName = "example"
	}

	if err := writeProjectConfig(configPath, projectConfig(target, opts.Example)); err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}
	if err := copyTemplate(templateName, dir, opts.Force); err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	files, _ := listTemplateFiles(templateName)
	groups := groupTemplateFiles(append([]string{config.ConfigFileName}, files...))

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(groups)
	}

	for _, section := range []struct{ key, title string }{
		{"project", "Project"},
		{"sources", "Sources"},
		{"extensions", "Extensions"},
	} {
		r.Header(2, section.title)
		for _, f := range groups[section.key] {
			r.StatusLine(f, "success", "")
		}
		r.Println("")
	}

	r.Success("GaiaScript project initialized!")
	r.Println("")
	r.Println("Next steps:")
	if opts.Example {
		r.Println("  gaia compile src        Compile every source into dist/")
		r.Println("  gaia analyze            Show the token savings report")
		r.Println("  gaia symbols            Browse the symbol tables")
		r.Println("  gaia repl               Try GaiaScript interactively")
		return nil
	}
	r.Println("  1. Edit main.gaia")
	r.Println("  2. Add project symbols to ext/")
	r.Printf("  3. Run 'gaia compile main.gaia' to produce main.%s\n", target.Extension())
	return nil
}
