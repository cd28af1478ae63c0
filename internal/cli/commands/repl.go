package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/gaia/pkg/compiler"
	"github.com/leapstack-labs/gaia/pkg/number"
	"github.com/leapstack-labs/gaia/pkg/symbols"
)

const replPrompt = "gaia> "

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Compile GaiaScript interactively",
		Long: `Start an interactive session. Each line is compiled and the generated
code is printed. End a line with \ to continue it on the next line.

Type .help for commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}
	return cmd
}

// replSession holds the state of an interactive session.
type replSession struct {
	ctx    context.Context
	comp   *compiler.Compiler
	target compiler.Target
	opts   compiler.Options
	out    io.Writer
	errOut io.Writer
}

func runREPL(cmd *cobra.Command) error {
	cc := NewCommandContext(cmd)

	target, err := compiler.ParseTarget(cc.Cfg.Target)
	if err != nil {
		return err
	}
	comp, err := cc.newCompiler()
	if err != nil {
		return err
	}

	s := &replSession{
		ctx:    cmd.Context(),
		comp:   comp,
		target: target,
		opts:   cc.compileOptions(target),
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     replHistoryFile(),
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(s.out, "GaiaScript REPL (target: %s)\n", s.target)
	_, _ = fmt.Fprintln(s.out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(s.out)

	return s.loop(rl)
}

// lineReader is the part of *readline.Instance the session loop uses.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// loop reads and handles input until .quit, EOF or a read error.
func (s *replSession) loop(rl lineReader) error {
	var multiLineBuffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			multiLineBuffer.Reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("readline: %w", err)
		}

		if strings.HasSuffix(line, `\`) {
			multiLineBuffer.WriteString(strings.TrimSuffix(line, `\`))
			multiLineBuffer.WriteString("\n")
			rl.SetPrompt(" ...> ")
			continue
		}
		multiLineBuffer.WriteString(line)
		input := multiLineBuffer.String()
		multiLineBuffer.Reset()
		rl.SetPrompt(replPrompt)

		if quit := s.handle(input); quit {
			return nil
		}
	}
}

func replHistoryFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "gaia")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return ""
	}
	return filepath.Join(dir, "repl_history")
}

// handle processes one input and reports whether the session should end.
func (s *replSession) handle(input string) bool {
	line := strings.TrimSpace(input)
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, ".") {
		return s.dotCommand(line)
	}

	res := s.comp.Compile(s.ctx, input, s.opts)
	if !res.Success {
		for _, e := range res.Errors {
			_, _ = fmt.Fprintf(s.errOut, "Error: %s\n", e)
		}
		return false
	}
	for _, d := range res.Diagnostics {
		_, _ = fmt.Fprintf(s.errOut, "  %s\n", d)
	}
	_, _ = fmt.Fprintln(s.out, strings.TrimRight(res.Output(s.target), "\n"))
	return false
}

func (s *replSession) dotCommand(line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	arg := strings.TrimSpace(strings.TrimPrefix(line, parts[0]))

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printGaiaREPLHelp(s.out)

	case ".target":
		if arg == "" {
			_, _ = fmt.Fprintf(s.out, "target: %s\n", s.target)
			return false
		}
		t, err := compiler.ParseTarget(arg)
		if err != nil {
			_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
			return false
		}
		s.target = t
		s.opts.Target = t
		_, _ = fmt.Fprintf(s.out, "target: %s\n", s.target)

	case ".passes":
		_, _ = fmt.Fprintln(s.out, strings.Join(s.comp.Passes(), " → "))

	case ".expand":
		_, _ = fmt.Fprintln(s.out, symbols.Expand(arg))

	case ".decode":
		n, err := number.ParseBase64(arg)
		if err != nil {
			_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
			return false
		}
		_, _ = fmt.Fprintln(s.out, n)

	default:
		_, _ = fmt.Fprintf(s.errOut, "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printGaiaREPLHelp(w io.Writer) {
	help := `
Commands:
  .help             Show this help message
  .target [name]    Show or set the target (javascript, typescript, go)
  .passes           Show the compiler passes
  .expand <text>    Expand Han keywords and named symbols
  .decode <#⟨..⟩>   Decode a Base64 number literal
  .quit / .exit     Exit the REPL

Tips:
  - Each line is compiled on its own
  - End a line with \ to continue on the next line
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

func newREPLCompleter() *readline.PrefixCompleter {
	targets := make([]readline.PrefixCompleterInterface, 0, len(compiler.Targets()))
	for _, t := range compiler.Targets() {
		targets = append(targets, readline.PcItem(string(t)))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".target", targets...),
		readline.PcItem(".passes"),
		readline.PcItem(".expand"),
		readline.PcItem(".decode"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
