package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/gaia/internal/cli/output"
	"github.com/leapstack-labs/gaia/internal/extension"
	"github.com/leapstack-labs/gaia/pkg/analysis"
	"github.com/leapstack-labs/gaia/pkg/compiler"
	"github.com/leapstack-labs/gaia/pkg/symbols"
)

// samplesSymbols selects the symbol inventory instead of a sample set.
const samplesSymbols = "symbols"

// AnalyzeOptions holds options for the analyze command.
type AnalyzeOptions struct {
	Samples string
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Estimate the token savings of GaiaScript",
		Long: `Compare GaiaScript with the code it stands for.

With a file, the file is compiled to JavaScript and the two are compared.
Without one, a built-in sample set is measured. The "symbols" set lists
every dictionary entry with the tokens it saves.

Token counts are estimates: CJK, math and ASCII runes are weighted by the
analysis.ratios configuration.`,
		Example: `  # Efficiency report over the built-in samples
  gaia analyze

  # Vector number report
  gaia analyze --samples vectors

  # Measure a source file
  gaia analyze main.gaia`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	sets := append(analysis.SampleSetNames(), samplesSymbols)
	cmd.Flags().StringVar(&opts.Samples, "samples", analysis.SetEfficiency, "Sample set ("+strings.Join(sets, "|")+")")
	_ = cmd.RegisterFlagCompletionFunc("samples", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return sets, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, opts *AnalyzeOptions) error {
	cc := NewCommandContext(cmd)
	est := cc.Cfg.Analysis.Ratios
	if est == (analysis.Estimator{}) {
		est = analysis.DefaultEstimator()
	}

	if len(args) == 1 {
		return analyzeFile(cmd, cc, est, args[0])
	}

	if opts.Samples == samplesSymbols {
		tables := symbols.All()
		exts, err := cc.loadExtensions()
		if err != nil {
			return err
		}
		if t := extension.Table(exts); t.Len() > 0 {
			tables = append(tables, t)
		}
		return renderInventory(cc.Renderer, est.SymbolInventory(tables))
	}

	samples, err := analysis.Samples(opts.Samples)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("GaiaScript %s report", opts.Samples)
	return renderReport(cc.Renderer, est.Compare(title, samples))
}

func analyzeFile(cmd *cobra.Command, cc *CommandContext, est analysis.Estimator, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided path
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	comp, err := cc.newCompiler()
	if err != nil {
		return err
	}
	res := comp.Compile(cmd.Context(), string(data), compiler.Options{Target: compiler.TargetJavaScript})
	if !res.Success {
		return fmt.Errorf("compilation failed: %s", strings.Join(res.Errors, "; "))
	}

	row := est.CompareSource(filepath.Base(path), string(data), res.JavaScript)
	report := analysis.Report{Title: "GaiaScript source report", Rows: []analysis.Row{row}, Total: row}
	report.Total.Name = "TOTAL"
	return renderReport(cc.Renderer, report)
}

func renderReport(r *output.Renderer, report analysis.Report) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(report)
	}

	r.Header(1, report.Title)

	rows := make([][]string, 0, len(report.Rows)+1)
	for _, row := range append(report.Rows, report.Total) {
		rows = append(rows, []string{
			row.Name,
			strconv.Itoa(row.TraditionalChars),
			strconv.Itoa(row.SymbolicChars),
			output.FormatPercent(row.CharReduction),
			strconv.Itoa(row.TraditionalTokens),
			strconv.Itoa(row.SymbolicTokens),
			output.FormatPercent(row.TokenReduction),
		})
	}
	r.Table([]string{"Sample", "Traditional Chars", "Gaia Chars", "Char Reduction", "Traditional Tokens", "Gaia Tokens", "Token Reduction"}, rows)

	t := report.Total
	r.KeyValue("Characters", fmt.Sprintf("%d → %d (%s reduction)", t.TraditionalChars, t.SymbolicChars, output.FormatPercent(t.CharReduction)))
	r.KeyValue("Tokens", fmt.Sprintf("%d → %d (%s reduction)", t.TraditionalTokens, t.SymbolicTokens, output.FormatPercent(t.TokenReduction)))
	return nil
}

func renderInventory(r *output.Renderer, rows []analysis.SymbolRow) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(rows)
	}

	r.Header(1, fmt.Sprintf("Symbol inventory (%d entries)", len(rows)))

	saved := 0
	cells := make([][]string, len(rows))
	for i, row := range rows {
		saved += row.Saved
		cells[i] = []string{row.Table, row.Symbol, row.Meaning, strconv.Itoa(row.SymbolTokens), strconv.Itoa(row.MeaningTokens), strconv.Itoa(row.Saved)}
	}
	r.Table([]string{"Table", "Symbol", "Meaning", "Symbol Tokens", "Meaning Tokens", "Saved"}, cells)
	r.KeyValue("Tokens saved per use of every entry", strconv.Itoa(saved))
	return nil
}
