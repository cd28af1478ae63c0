package output

// CompileFile is the JSON result for one compiled input.
type CompileFile struct {
	Input       string   `json:"input"`
	Output      string   `json:"output,omitempty"`
	Target      string   `json:"target"`
	BuildID     string   `json:"build_id"`
	Success     bool     `json:"success"`
	Code        string   `json:"code,omitempty"`
	Diagnostics []string `json:"diagnostics,omitempty"`
	Errors      []string `json:"errors,omitempty"`
}

// CompileOutput is the JSON output of "gaia compile".
type CompileOutput struct {
	Files     []CompileFile `json:"files"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
}

// Conversion is one encode or decode result.
type Conversion struct {
	Input  string `json:"input"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ConversionOutput is the JSON output of "gaia encode" and "gaia decode".
type ConversionOutput struct {
	Scheme  string       `json:"scheme"`
	Results []Conversion `json:"results"`
}

// TextOutput is the JSON output of the text transform commands.
type TextOutput struct {
	Operation string `json:"operation"`
	Input     string `json:"input"`
	Output    string `json:"output"`
}

// TableInfo summarizes a symbol table.
type TableInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Entries     int    `json:"entries"`
}

// VersionInfo is the JSON output of "gaia version".
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}
