package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/gaia/internal/cli/config"
	"github.com/leapstack-labs/gaia/internal/cli/output"
	"github.com/leapstack-labs/gaia/internal/extension"
	"github.com/leapstack-labs/gaia/pkg/compiler"
	"github.com/leapstack-labs/gaia/pkg/symbols"
)

// Health check statuses.
const (
	checkPass  = "pass"
	checkWarn  = "warn"
	checkError = "error"
)

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run a project health check",
		Long: `Check a GaiaScript project for problems before compiling it.

The doctor command reports:
- Project summary (sources, extensions, dictionary size)
- Health checks grouped by category (Config, Extensions, Sources, Output)
- Health score (0-100)
- Actionable recommendations

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Run health check
  gaia doctor

  # Output as JSON
  gaia doctor -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd)
		},
	}
	return cmd
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Summary         ProjectSummary `json:"summary"`
	HealthChecks    []HealthCheck  `json:"health_checks"`
	Score           int            `json:"score"`
	Recommendations []string       `json:"recommendations"`
	IssueCount      int            `json:"issue_count"`
}

// ProjectSummary contains project-level statistics.
type ProjectSummary struct {
	Root       string `json:"root"`
	ConfigFile string `json:"config_file,omitempty"`
	Target     string `json:"target"`
	Sources    int    `json:"sources"`
	Extensions int    `json:"extensions"`
	Symbols    int    `json:"symbols"`
	Passes     int    `json:"passes"`
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	RuleID  string   `json:"rule_id"`
	Name    string   `json:"name"`
	Group   string   `json:"group"`
	Status  string   `json:"status"` // "pass", "warn", "error"
	Details []string `json:"details,omitempty"`
}

// IssueCount is the number of findings; a failed check without details
// counts once.
func (h HealthCheck) IssueCount() int {
	if h.Status == checkPass {
		return 0
	}
	if len(h.Details) == 0 {
		return 1
	}
	return len(h.Details)
}

func newCheck(id, name, group string) HealthCheck {
	return HealthCheck{RuleID: id, Name: name, Group: group, Status: checkPass}
}

func (h *HealthCheck) flag(status, detail string) {
	if status == checkError || h.Status == checkPass {
		h.Status = status
	}
	if detail != "" {
		h.Details = append(h.Details, detail)
	}
}

func runDoctor(cmd *cobra.Command) error {
	cc := NewCommandContext(cmd)
	cfg := cc.Cfg
	r := cc.Renderer

	root := cfg.ProjectRoot
	if root == "" {
		root = "."
	}
	summary := ProjectSummary{
		Root:       root,
		ConfigFile: config.GetConfigFileUsed(),
		Target:     cfg.Target,
		Passes:     len(cfg.Compiler.Passes),
	}

	var checks []HealthCheck

	cfgCheck := newCheck("GC01", "Project configuration file", "config")
	if summary.ConfigFile == "" {
		cfgCheck.flag(checkWarn, "no "+config.ConfigFileName+" found; defaults are in use")
	}
	targetCheck := newCheck("GC02", "Compile target and passes", "config")
	if err := cfg.Validate(); err != nil {
		targetCheck.flag(checkError, err.Error())
	}
	checks = append(checks, cfgCheck, targetCheck)

	extChecks, exts := checkExtensions(cc)
	summary.Extensions = len(exts)
	summary.Symbols = dictionarySize(exts)
	checks = append(checks, extChecks...)

	srcChecks, sources := checkSources(cmd.Context(), cc, root, exts)
	summary.Sources = sources
	checks = append(checks, srcChecks...)

	outCheck := newCheck("GO01", "Output directory", "output")
	if err := cfg.ValidateOutDir(false); err != nil {
		outCheck.flag(checkWarn, strings.SplitN(err.Error(), "\n", 2)[0])
	}
	checks = append(checks, outCheck)

	doctorOutput := buildDoctorOutput(summary, checks)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(doctorOutput)
	case output.ModeMarkdown:
		return renderDoctorMarkdown(r, doctorOutput)
	default:
		return renderDoctorText(r, doctorOutput)
	}
}

func checkExtensions(cc *CommandContext) ([]HealthCheck, []*extension.Extension) {
	load := newCheck("GE01", "Extensions load", "extensions")
	conflicts := newCheck("GE02", "Extension symbols do not shadow built-ins", "extensions")

	if _, err := os.Stat(cc.Cfg.ExtDir); os.IsNotExist(err) {
		return []HealthCheck{load, conflicts}, nil
	}

	exts, err := cc.loadExtensions()
	if err != nil {
		load.flag(checkError, err.Error())
		return []HealthCheck{load, conflicts}, nil
	}

	builtin := make(map[string]string)
	for _, name := range symbols.CompilerTables {
		for _, e := range symbols.MustGet(name).Entries {
			builtin[e.Symbol] = e.Meaning
		}
	}
	for _, ext := range exts {
		for _, e := range ext.Entries {
			if meaning, ok := builtin[e.Symbol]; ok && meaning != e.Meaning {
				conflicts.flag(checkWarn, fmt.Sprintf("%s: %s is %q, built-in is %q", ext.Name, e.Symbol, e.Meaning, meaning))
			}
		}
	}

	return []HealthCheck{load, conflicts}, exts
}

func checkSources(ctx context.Context, cc *CommandContext, root string, exts []*extension.Extension) ([]HealthCheck, int) {
	compiles := newCheck("GS01", "Sources compile", "sources")
	leftovers := newCheck("GS02", "No symbols left in output", "sources")

	inputs, err := collectInputs([]string{root})
	if err != nil {
		compiles.flag(checkWarn, fmt.Sprintf("no %s sources under %s", SourceExt, root))
		return []HealthCheck{compiles, leftovers}, 0
	}

	comp, err := cc.newCompiler()
	if err != nil {
		compiles.flag(checkError, err.Error())
		return []HealthCheck{compiles, leftovers}, len(inputs)
	}

	dictionary := leftoverSymbols(exts)
	for _, in := range inputs {
		name, relErr := filepath.Rel(root, in)
		if relErr != nil {
			name = in
		}

		data, err := os.ReadFile(in) //nolint:gosec // discovered source file
		if err != nil {
			compiles.flag(checkError, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		res := comp.Compile(ctx, string(data), compiler.Options{Target: compiler.TargetJavaScript})
		if !res.Success {
			compiles.flag(checkError, fmt.Sprintf("%s: %s", name, strings.Join(res.Errors, "; ")))
			continue
		}

		var found []string
		for _, sym := range dictionary {
			if strings.Contains(res.JavaScript, sym) {
				found = append(found, sym)
			}
		}
		if len(found) > 0 {
			leftovers.flag(checkWarn, fmt.Sprintf("%s: %s", name, strings.Join(found, " ")))
		}
	}

	return []HealthCheck{compiles, leftovers}, len(inputs)
}

// leftoverSymbols lists the symbols a complete compile replaces, sorted.
func leftoverSymbols(exts []*extension.Extension) []string {
	set := map[string]bool{"⊗": true, "#⟨": true}
	for _, name := range symbols.CompilerTables {
		for _, e := range symbols.MustGet(name).Entries {
			set[e.Symbol] = true
		}
	}
	for _, e := range extension.Entries(exts) {
		set[e.Symbol] = true
	}

	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func dictionarySize(exts []*extension.Extension) int {
	n := len(extension.Entries(exts))
	for _, name := range symbols.CompilerTables {
		n += symbols.MustGet(name).Len()
	}
	return n
}

func buildDoctorOutput(summary ProjectSummary, checks []HealthCheck) *DoctorOutput {
	groupOrder := map[string]int{"config": 0, "extensions": 1, "sources": 2, "output": 3}
	sort.SliceStable(checks, func(i, j int) bool {
		if checks[i].Group != checks[j].Group {
			return groupOrder[checks[i].Group] < groupOrder[checks[j].Group]
		}
		return checks[i].RuleID < checks[j].RuleID
	})

	issues := 0
	for _, c := range checks {
		issues += c.IssueCount()
	}

	return &DoctorOutput{
		Summary:         summary,
		HealthChecks:    checks,
		Score:           calculateHealthScore(checks, summary.Sources),
		Recommendations: generateRecommendations(checks),
		IssueCount:      issues,
	}
}

// calculateHealthScore computes a health score from 0-100.
// Errors cost twice as much as warnings; with more sources each issue
// weighs less.
func calculateHealthScore(checks []HealthCheck, sourceCount int) int {
	if len(checks) == 0 {
		return 100
	}

	score := 100.0

	basePenalty := 5.0
	if sourceCount > 10 {
		basePenalty = 3.0
	}
	if sourceCount > 50 {
		basePenalty = 2.0
	}
	if sourceCount > 100 {
		basePenalty = 1.0
	}

	for _, check := range checks {
		switch check.Status {
		case checkError:
			score -= float64(check.IssueCount()) * basePenalty * 2
		case checkWarn:
			score -= float64(check.IssueCount()) * basePenalty
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return int(score)
}

// generateRecommendations creates actionable recommendations based on findings.
func generateRecommendations(checks []HealthCheck) []string {
	var recommendations []string
	seen := make(map[string]bool)

	for _, check := range checks {
		if check.Status == checkPass {
			continue
		}

		rec := getRecommendation(check.RuleID)
		if rec != "" && !seen[rec] {
			recommendations = append(recommendations, rec)
			seen[rec] = true
		}
	}

	if len(recommendations) > 5 {
		recommendations = recommendations[:5]
	}

	return recommendations
}

// getRecommendation returns a recommendation for a specific check.
func getRecommendation(ruleID string) string {
	switch ruleID {
	case "GC01":
		return "Run 'gaia init' to create a gaia.yaml for the project"
	case "GC02":
		return "Fix the target or compiler.passes in gaia.yaml"
	case "GE01":
		return "Fix or remove the extension files that fail to load"
	case "GE02":
		return "Pick extension symbols that are not already in the built-in tables"
	case "GS01":
		return "Fix the sources that fail to compile, or add a .gaia file"
	case "GS02":
		return "Enable the symbols and numbers passes, or define the leftover symbols in ext/"
	case "GO01":
		return "Create out_dir or pass --out-dir when compiling"
	default:
		return ""
	}
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render("GaiaScript Project Health Report"))
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	r.Println("")

	r.Println(styles.Header2.Render("Project Summary"))
	r.Printf("   Root: %s | Target: %s\n", out.Summary.Root, out.Summary.Target)
	r.Printf("   Sources: %d | Extensions: %d | Symbols: %d | Passes: %d\n",
		out.Summary.Sources, out.Summary.Extensions, out.Summary.Symbols, out.Summary.Passes)
	r.Println("")

	r.Println(styles.Header2.Render("Health Checks"))
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println(styles.Bold.Render("   " + titleCaser.String(currentGroup)))
			r.Println(styles.Muted.Render("   " + strings.Repeat("-", 40)))
		}

		icon := styles.Success.Render("✓")
		switch check.Status {
		case checkWarn:
			icon = styles.Warning.Render("!")
		case checkError:
			icon = styles.Error.Render("✗")
		}

		status := fmt.Sprintf("%s %s: %s", icon, check.RuleID, check.Name)
		if n := check.IssueCount(); n > 0 {
			status += fmt.Sprintf(" (%d issues)", n)
		}
		r.Println("   " + status)

		for i, detail := range check.Details {
			if i >= 3 {
				r.Println(styles.Muted.Render(fmt.Sprintf("       ... and %d more", len(check.Details)-3)))
				break
			}
			r.Println(styles.Muted.Render("       - " + detail))
		}
	}
	r.Println("")

	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	scoreStyle := styles.Success
	if out.Score < 70 {
		scoreStyle = styles.Warning
	}
	if out.Score < 50 {
		scoreStyle = styles.Error
	}
	r.Printf("   Health Score: %s\n", scoreStyle.Render(fmt.Sprintf("%d/100", out.Score)))
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Println(styles.Header2.Render("Recommendations"))
		for i, rec := range out.Recommendations {
			r.Printf("   %d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) error {
	r.Println("# GaiaScript Project Health Report")
	r.Println("")

	r.Println("## Project Summary")
	r.Println("")
	r.Println(output.FormatKeyValue("Root", out.Summary.Root))
	if out.Summary.ConfigFile != "" {
		r.Println(output.FormatKeyValue("Config", out.Summary.ConfigFile))
	}
	r.Println(output.FormatKeyValue("Target", out.Summary.Target))
	r.Printf("- **Sources:** %d\n", out.Summary.Sources)
	r.Printf("- **Extensions:** %d\n", out.Summary.Extensions)
	r.Printf("- **Symbols:** %d\n", out.Summary.Symbols)
	r.Printf("- **Passes:** %d\n", out.Summary.Passes)
	r.Println("")

	r.Println("## Health Checks")
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println("### " + titleCaser.String(currentGroup))
			r.Println("")
		}

		status := "PASS"
		switch check.Status {
		case checkWarn:
			status = "WARN"
		case checkError:
			status = "ERROR"
		}

		r.Printf("- **[%s]** %s: %s", status, check.RuleID, check.Name)
		if n := check.IssueCount(); n > 0 {
			r.Printf(" (%d issues)", n)
		}
		r.Println("")

		for _, detail := range check.Details {
			r.Printf("  - %s\n", detail)
		}
	}
	r.Println("")

	r.Println("## Health Score")
	r.Println("")
	r.Printf("**%d/100**\n", out.Score)
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Println("## Recommendations")
		r.Println("")
		for i, rec := range out.Recommendations {
			r.Printf("%d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}
