package analysis

import (
	"github.com/leapstack-labs/gaia/pkg/symbols"
)

// Sample pairs a spelled-out snippet with its symbolic form.
type Sample struct {
	Name        string `json:"name" yaml:"name"`
	Traditional string `json:"traditional" yaml:"traditional"`
	Symbolic    string `json:"symbolic" yaml:"symbolic"`
}

// Row is one line of a comparison report.
type Row struct {
	Name              string  `json:"name"`
	TraditionalChars  int     `json:"traditional_chars"`
	SymbolicChars     int     `json:"symbolic_chars"`
	CharReduction     float64 `json:"char_reduction"`
	TraditionalTokens int     `json:"traditional_tokens"`
	SymbolicTokens    int     `json:"symbolic_tokens"`
	TokenReduction    float64 `json:"token_reduction"`
}

// Report is a comparison over several samples.
type Report struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
	Total Row    `json:"total"`
}

func (e Estimator) row(name, traditional, symbolic string) Row {
	t := e.Estimate(traditional)
	s := e.Estimate(symbolic)
	return Row{
		Name:              name,
		TraditionalChars:  t.Runes,
		SymbolicChars:     s.Runes,
		CharReduction:     Reduction(t.Runes, s.Runes),
		TraditionalTokens: t.Tokens,
		SymbolicTokens:    s.Tokens,
		TokenReduction:    Reduction(t.Tokens, s.Tokens),
	}
}

// Compare measures every sample and totals the result. Totals are sums of
// the per-row counts, so the total token reduction is weighted by size.
func (e Estimator) Compare(title string, samples []Sample) Report {
	report := Report{
		Title: title,
		Rows:  make([]Row, 0, len(samples)),
		Total: Row{Name: "TOTAL"},
	}

	for _, s := range samples {
		r := e.row(s.Name, s.Traditional, s.Symbolic)
		report.Rows = append(report.Rows, r)

		report.Total.TraditionalChars += r.TraditionalChars
		report.Total.SymbolicChars += r.SymbolicChars
		report.Total.TraditionalTokens += r.TraditionalTokens
		report.Total.SymbolicTokens += r.SymbolicTokens
	}

	report.Total.CharReduction = Reduction(report.Total.TraditionalChars, report.Total.SymbolicChars)
	report.Total.TokenReduction = Reduction(report.Total.TraditionalTokens, report.Total.SymbolicTokens)
	return report
}

// Compare runs DefaultEstimator().Compare.
func Compare(title string, samples []Sample) Report {
	return DefaultEstimator().Compare(title, samples)
}

// CompareSource compares GaiaScript source with the code it compiled to.
// The compiled code plays the traditional role.
func (e Estimator) CompareSource(name, source, compiled string) Row {
	return e.row(name, compiled, source)
}

// SymbolRow describes one dictionary entry.
type SymbolRow struct {
	Table         string `json:"table"`
	Symbol        string `json:"symbol"`
	Meaning       string `json:"meaning"`
	SymbolTokens  int    `json:"symbol_tokens"`
	MeaningTokens int    `json:"meaning_tokens"`
	Saved         int    `json:"saved"`
}

// SymbolInventory estimates the saving of every entry in tables, in table
// order. Saved is negative when the symbol costs more than its meaning.
func (e Estimator) SymbolInventory(tables []symbols.Table) []SymbolRow {
	var rows []SymbolRow
	for _, t := range tables {
		for _, entry := range t.Entries {
			st := e.Estimate(entry.Symbol).Tokens
			mt := e.Estimate(entry.Meaning).Tokens
			rows = append(rows, SymbolRow{
				Table:         t.Name,
				Symbol:        entry.Symbol,
				Meaning:       entry.Meaning,
				SymbolTokens:  st,
				MeaningTokens: mt,
				Saved:         mt - st,
			})
		}
	}
	return rows
}
