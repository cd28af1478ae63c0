package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gaia/internal/cli/config"
)

const counterSource = "Σ{count: ⊗∅, label: 𝕊{Clicks}}\n" +
	"λ{increment} counter = counter + ⊗α {/λ}\n" +
	"Ω{✱}\n"

const counterJS = "let state = {\n" +
	"  count: 0,\n" +
	"  label: 'Clicks'\n" +
	"};\n" +
	"function increment() {\n" +
	"  state.counter++; render();\n" +
	"}\n" +
	"export default function App()"

// useDefaultConfig clears any loaded configuration and unsets the GAIA_*
// variables commands fall back to. t.Setenv restores them afterwards.
func useDefaultConfig(t *testing.T) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	for _, key := range []string{"TARGET", "EXT_DIR", "OUT_DIR", "VERBOSE", "OUTPUT"} {
		name := config.EnvPrefix + key
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

// inProject changes into a fresh project directory holding files.
func inProject(t *testing.T, files map[string]string) string {
	t.Helper()
	useDefaultConfig(t)

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	}
	t.Chdir(dir)
	return dir
}

func execute(cmd *cobra.Command, args ...string) (stdout, stderr string, err error) {
	outBuf, errBuf := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(outBuf)
	cmd.SetErr(errBuf)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewCompileCommand(), "compile <input...>", []string{"target", "out", "out-dir", "debug", "check", "minify", "watch"}},
		{NewEncodeCommand(), "encode <number...>", []string{"scheme"}},
		{NewDecodeCommand(), "decode <literal...>", []string{"scheme"}},
		{NewExpandCommand(), "expand [text]", []string{"file"}},
		{NewCompressCommand(), "compress [text]", []string{"file"}},
		{NewWordsCommand(), "words <text...>", []string{"decode"}},
		{NewSymbolsCommand(), "symbols [table]", []string{"find"}},
		{NewAnalyzeCommand(), "analyze [file]", []string{"samples"}},
		{NewREPLCommand(), "repl", nil},
		{NewDoctorCommand(), "doctor", nil},
		{NewInitCommand(), "init [directory]", []string{"force", "example", "target"}},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			assert.NotEmpty(t, tt.cmd.Long, "Long should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func TestGetConfig_EnvFallback(t *testing.T) {
	useDefaultConfig(t)
	t.Setenv("GAIA_TARGET", "go")
	t.Setenv("GAIA_OUTPUT", "json")

	cfg := getConfig()
	assert.Equal(t, "go", cfg.Target)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, config.DefaultExtDir, cfg.ExtDir)
}

func TestGetConfig_PrefersLoadedConfig(t *testing.T) {
	useDefaultConfig(t)
	t.Chdir(t.TempDir())

	loaded, err := config.LoadConfig("", nil)
	require.NoError(t, err)
	assert.Same(t, loaded, getConfig())
}

func TestNewCompiler_UsesExtensionsAndExtraSymbols(t *testing.T) {
	inProject(t, map[string]string{
		"ext/async.yaml": "symbols:\n  - symbol: ⟿\n    meaning: await\n",
		"ext/shout.star": "def transform(source):\n    return source + '\\n// done'\n",
	})

	cmd := NewCompileCommand()
	cc := NewCommandContext(cmd)
	cc.Cfg.Symbols.Extra = map[string]string{"⊕": "add"}

	comp, err := cc.newCompiler()
	require.NoError(t, err)
	assert.Contains(t, comp.Passes(), "ext:shout")

	res := comp.Compile(t.Context(), "⟿ ⊕", cc.compileOptions("javascript"))
	require.True(t, res.Success, "errors: %v", res.Errors)
	assert.Equal(t, "await add\n// done", res.JavaScript)
}

func TestNewCompiler_BadExtension(t *testing.T) {
	inProject(t, map[string]string{"ext/bad.json": "{"})

	cc := NewCommandContext(NewCompileCommand())
	_, err := cc.newCompiler()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extensions/bad.json")
}

func TestReadInput(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(file, []byte("from file"), 0600))

	cmd := &cobra.Command{}
	cmd.SetIn(bytes.NewBufferString("from stdin"))

	got, err := readInput(cmd, []string{"a", "b"}, "")
	require.NoError(t, err)
	assert.Equal(t, "a b", got)

	got, err = readInput(cmd, nil, file)
	require.NoError(t, err)
	assert.Equal(t, "from file", got)

	got, err = readInput(cmd, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "from stdin", got)

	_, err = readInput(cmd, nil, filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
