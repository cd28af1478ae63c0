package commands

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/gaia/internal/cli/output"
	"github.com/leapstack-labs/gaia/pkg/compiler"
)

// SourceExt is the file extension of GaiaScript sources.
const SourceExt = ".gaia"

// CompileOptions holds options for the compile command.
type CompileOptions struct {
	Target string
	Out    string
	OutDir string
	Debug  bool
	Check  bool
	Minify bool
	Watch  bool
}

// NewCompileCommand creates the compile command.
func NewCompileCommand() *cobra.Command {
	opts := &CompileOptions{}

	cmd := &cobra.Command{
		Use:   "compile <input...>",
		Short: "Compile GaiaScript to JavaScript, TypeScript or Go",
		Long: `Compile GaiaScript source files.

Each input is a .gaia file or a directory searched recursively for .gaia
files. Output is written to the working directory as <name>.<ext> unless
--out or --out-dir says otherwise. Use --out - to print to stdout.

The compiler rewrites the source in a fixed sequence of passes: numbers,
symbols, functions, state, components, styles and cleanup. Extensions in
the extensions directory add symbols and Starlark transform passes.`,
		Example: `  # Compile to JavaScript
  gaia compile main.gaia

  # Compile to TypeScript and print the result
  gaia compile main.gaia -t ts --out -

  # Compile a directory, checking the generated JavaScript parses
  gaia compile src --out-dir dist --check

  # Recompile whenever a source changes
  gaia compile src --out-dir dist --watch`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Target, "target", "t", "", "Compile target (javascript|typescript|go)")
	cmd.Flags().StringVarP(&opts.Out, "out", "O", "", "Output file, or - for stdout (single input only)")
	cmd.Flags().StringVar(&opts.OutDir, "out-dir", "", "Directory for generated files")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "Print per-pass diagnostics")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "Fail when the generated JavaScript does not parse")
	cmd.Flags().BoolVar(&opts.Minify, "minify", false, "Minify the generated JavaScript")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Recompile when sources change")

	_ = cmd.RegisterFlagCompletionFunc("target", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		targets := compiler.Targets()
		names := make([]string, len(targets))
		for i, t := range targets {
			names[i] = string(t)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// compileJob is a resolved compile invocation.
type compileJob struct {
	cc       *CommandContext
	comp     *compiler.Compiler
	inputs   []string
	target   compiler.Target
	options  compiler.Options
	out      string
	outDir   string
	toStdout bool
}

func runCompile(cmd *cobra.Command, args []string, opts *CompileOptions) error {
	cc := NewCommandContext(cmd)
	cfg := cc.Cfg

	// Flags set on this command win over the loaded configuration.
	targetName := cfg.Target
	if cmd.Flags().Changed("target") {
		targetName = opts.Target
	}
	target, err := compiler.ParseTarget(targetName)
	if err != nil {
		return err
	}

	options := cc.compileOptions(target)
	if cmd.Flags().Changed("debug") {
		options.Debug = opts.Debug
	}
	if cmd.Flags().Changed("check") {
		options.Check = opts.Check
	}
	if cmd.Flags().Changed("minify") {
		options.Minify = opts.Minify
	}

	outDir := cfg.OutDir
	if cmd.Flags().Changed("out-dir") {
		outDir = opts.OutDir
	}

	inputs, err := collectInputs(args)
	if err != nil {
		return err
	}
	if opts.Out != "" && len(inputs) > 1 {
		return fmt.Errorf("--out accepts a single input, got %d", len(inputs))
	}
	if opts.Watch && opts.Out == "-" {
		return fmt.Errorf("--watch cannot write to stdout")
	}

	comp, err := cc.newCompiler()
	if err != nil {
		return err
	}

	job := &compileJob{
		cc:       cc,
		comp:     comp,
		inputs:   inputs,
		target:   target,
		options:  options,
		out:      opts.Out,
		outDir:   outDir,
		toStdout: opts.Out == "-",
	}

	if err := job.checkOutputs(); err != nil {
		return err
	}

	if outDir != "" && !job.toStdout {
		cfgCopy := *cfg
		cfgCopy.OutDir = outDir
		if err := cfgCopy.ValidateOutDir(true); err != nil {
			return err
		}
	}

	failed, err := job.run(cmd.Context())
	if err != nil {
		return err
	}

	if opts.Watch {
		return watchAndCompile(cmd.Context(), job, args)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to compile", failed, len(inputs))
	}
	return nil
}

// collectInputs expands directories into the .gaia files they contain.
func collectInputs(args []string) ([]string, error) {
	var inputs []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			inputs = append(inputs, p)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("input file not found: %s", arg)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}

		var found []string
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) == SourceExt {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", arg, err)
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no %s files in %s", SourceExt, arg)
		}
		sort.Strings(found)
		for _, f := range found {
			add(f)
		}
	}
	return inputs, nil
}

// outputPath returns where the result for input is written.
func (j *compileJob) outputPath(input string) string {
	if j.out != "" {
		return j.out
	}
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + "." + j.target.Extension()
	if j.outDir != "" {
		return filepath.Join(j.outDir, name)
	}
	return name
}

// checkOutputs fails when two inputs would write the same output file.
func (j *compileJob) checkOutputs() error {
	if j.toStdout {
		return nil
	}
	written := make(map[string]string, len(j.inputs))
	for _, in := range j.inputs {
		out := filepath.Clean(j.outputPath(in))
		if prev, ok := written[out]; ok {
			return fmt.Errorf("%s and %s both compile to %s", prev, in, out)
		}
		written[out] = in
	}
	return nil
}

// run compiles every input once and returns the number of failures.
func (j *compileJob) run(ctx context.Context) (int, error) {
	sources := make(map[string]string, len(j.inputs))
	for _, in := range j.inputs {
		data, err := os.ReadFile(in) //nolint:gosec // user-provided path
		if err != nil {
			return 0, fmt.Errorf("failed to read %s: %w", in, err)
		}
		sources[in] = string(data)
	}

	results, err := j.comp.CompileMultiple(ctx, sources, j.options)
	if err != nil {
		return 0, err
	}

	r := j.cc.Renderer
	summary := output.CompileOutput{Files: make([]output.CompileFile, 0, len(j.inputs))}

	for _, in := range j.inputs {
		res := results[in]
		file := output.CompileFile{
			Input:       in,
			Target:      string(j.target),
			BuildID:     res.BuildID,
			Success:     res.Success,
			Diagnostics: res.Diagnostics,
			Errors:      res.Errors,
		}

		if res.Success {
			summary.Succeeded++
			code := res.Output(j.target)
			if j.toStdout {
				file.Code = code
			} else {
				file.Output = j.outputPath(in)
				if err := os.WriteFile(file.Output, []byte(code), 0o644); err != nil { //nolint:gosec // generated source is not secret
					return 0, fmt.Errorf("failed to write %s: %w", file.Output, err)
				}
			}
			j.cc.Logger.Debug("compiled", "input", in, "target", j.target, "build_id", res.BuildID, "duration", res.Duration)
		} else {
			summary.Failed++
		}
		summary.Files = append(summary.Files, file)
	}

	if r.EffectiveMode() == output.ModeJSON {
		return summary.Failed, r.JSON(summary)
	}

	for _, f := range summary.Files {
		j.renderFile(f)
	}
	return summary.Failed, nil
}

func (j *compileJob) renderFile(f output.CompileFile) {
	r := j.cc.Renderer
	styles := r.Styles()

	switch {
	case !f.Success:
		r.Error("Compilation failed: " + f.Input)
		for _, e := range f.Errors {
			r.Error("  " + e)
		}
		for _, d := range f.Diagnostics {
			r.Warning("  " + d)
		}
		return
	case j.toStdout:
		r.Println(strings.TrimRight(f.Code, "\n"))
	default:
		r.StatusLine(f.Input+" → "+f.Output, "success", "")
	}

	if j.options.Debug && len(f.Diagnostics) > 0 {
		r.Println(styles.Bold.Render("Diagnostics:"))
		for _, d := range f.Diagnostics {
			r.Println(styles.Muted.Render("  " + d))
		}
	}
}
