package symbols

// Names of the built-in tables.
const (
	TableMath      = "math"
	TableTypes     = "types"
	TableCSS       = "css"
	TableOperators = "operators"
	TableKeywords  = "keywords"
	TableNames     = "names"
	TableWords     = "words"
)

// CompilerTables are the tables the compiler substitutes, in order.
var CompilerTables = []string{TableMath, TableTypes, TableCSS, TableOperators}

func init() {
	Register(Table{
		Name:        TableMath,
		Description: "Structural symbols for functions, state and components",
		Entries: []Entry{
			{Symbol: "λ", Meaning: "function"},
			{Symbol: "Σ", Meaning: "let state = "},
			{Symbol: "∆", Meaning: "const Component_"},
			{Symbol: "Ω", Meaning: "function App"},
			{Symbol: "Φ", Meaning: "style"},
		},
	})

	Register(Table{
		Name:        TableTypes,
		Description: "Data type symbols",
		Entries: []Entry{
			{Symbol: "ℝ", Meaning: "number"},
			{Symbol: "𝕊", Meaning: "string"},
			{Symbol: "𝔸", Meaning: "Array"},
			{Symbol: "𝕆", Meaning: "Object"},
			{Symbol: "𝔹", Meaning: "boolean"},
		},
	})

	Register(Table{
		Name:        TableCSS,
		Description: "CSS property shorthand",
		Entries: []Entry{
			{Symbol: "ρ", Meaning: "color"},
			{Symbol: "β", Meaning: "border"},
			{Symbol: "φ", Meaning: "padding"},
			{Symbol: "μ", Meaning: "margin"},
			{Symbol: "δ", Meaning: "display"},
			{Symbol: "τ", Meaning: "transition"},
			{Symbol: "κ", Meaning: "background"},
		},
	})

	Register(Table{
		Name:        TableOperators,
		Description: "Control flow, operators and CSS values",
		Entries: []Entry{
			{Symbol: "∇", Meaning: "if"},
			{Symbol: "⊘", Meaning: "else"},
			{Symbol: "¬", Meaning: "!"},
			{Symbol: "≡", Meaning: "==="},
			{Symbol: "✱", Meaning: "*"},
			{Symbol: "⊥", Meaning: "none"},
			{Symbol: "⚡", Meaning: "pointer"},
			{Symbol: "◐", Meaning: "center"},
			{Symbol: "☰", Meaning: "flex"},
			{Symbol: "⊞", Meaning: "grid"},
		},
	})

	Register(Table{
		Name:        TableKeywords,
		Description: "Han keyword characters",
		Entries: []Entry{
			{Symbol: "函", Meaning: "function"},
			{Symbol: "變", Meaning: "variable"},
			{Symbol: "常", Meaning: "constant"},
			{Symbol: "類", Meaning: "class"},
			{Symbol: "狀", Meaning: "state"},
			{Symbol: "組", Meaning: "component"},
			{Symbol: "界", Meaning: "interface"},
			{Symbol: "樣", Meaning: "style"},
			{Symbol: "導", Meaning: "import"},
			{Symbol: "型", Meaning: "type"},
			{Symbol: "模", Meaning: "module"},
			{Symbol: "空", Meaning: "namespace"},
		},
	})

	Register(Table{
		Name:        TableNames,
		Description: "Spoken names of mathematical symbols",
		Entries: []Entry{
			{Symbol: "λ", Meaning: "lambda"},
			{Symbol: "Σ", Meaning: "sigma"},
			{Symbol: "Ω", Meaning: "omega"},
			{Symbol: "Δ", Meaning: "delta"},
			{Symbol: "Φ", Meaning: "phi"},
			{Symbol: "Ψ", Meaning: "psi"},
			{Symbol: "∅", Meaning: "empty"},
			{Symbol: "∞", Meaning: "infinity"},
			{Symbol: "⊕", Meaning: "plus"},
			{Symbol: "⊗", Meaning: "times"},
			{Symbol: "→", Meaning: "arrow"},
			{Symbol: "⇒", Meaning: "implies"},
		},
	})

	Register(Table{
		Name:        TableWords,
		Description: "Word codes for English prose",
		Entries:     wordEntries(),
	})
}

// wordCodes are the word-encoder codes, keyed by lowercase word.
var wordCodes = [][2]string{
	{"the", "w₀"}, {"of", "w₁"}, {"and", "w₂"}, {"to", "w₃"}, {"a", "w₄"},
	{"in", "w₅"}, {"is", "w₆"}, {"you", "w₇"}, {"are", "w₈"}, {"for", "w₉"},
	{"it", "w₁₀"}, {"with", "w₁₁"}, {"on", "w₁₂"}, {"this", "w₁₃"}, {"but", "w₁₄"},
	{"her", "w₁₅"}, {"or", "w₁₆"}, {"his", "w₁₇"}, {"she", "w₁₈"}, {"will", "w₁₉"},
	{"execution", "w₈₁"}, {"commands", "w₈₂"}, {"gaiascript", "w₈₃"}, {"language", "w₈₄"},
	{"requirements", "w₈₅"}, {"always", "w₈₆"}, {"use", "w₈₇"}, {"code", "w₈₈"},
	{"style", "w₈₉"}, {"guidelines", "w₉₀"}, {"imports", "w₉₁"}, {"formatting", "w₉₂"},
	{"naming", "w₉₃"}, {"state", "w₉₄"}, {"declaration", "w₉₅"}, {"functions", "w₉₆"},
	{"ui", "w₉₇"}, {"components", "w₉₈"}, {"styles", "w₉₉"}, {"variable", "w₁₀₀"},
	{"interpolation", "w₁₀₁"}, {"error", "w₁₀₂"}, {"handling", "w₁₀₃"}, {"standard", "w₁₀₄"},
	{"project", "w₁₀₅"}, {"structure", "w₁₀₆"}, {"ecosystem", "w₁₀₇"}, {"technical", "w₁₀₈"},
	{"specification", "w₁₀₉"}, {"system", "w₁₁₀"}, {"description", "w₁₁₁"}, {"features", "w₁₁₂"},
	{"tech", "w₁₁₃"}, {"syntax", "w₁₁₄"}, {"numbers", "w₁₁₅"}, {"operations", "w₁₁₆"},
	{"layers", "w₁₁₇"}, {"return", "w₁₂₇"}, {"const", "w₁₂₈"}, {"try", "w₁₄₉"}, {"catch", "w₁₅₀"},
}

// Word tables map code → word so that Apply decodes prose.
func wordEntries() []Entry {
	entries := make([]Entry, len(wordCodes))
	for i, wc := range wordCodes {
		entries[i] = Entry{Symbol: wc[1], Meaning: wc[0], Category: "word"}
	}
	return entries
}
