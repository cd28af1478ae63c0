package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gaia/internal/cli/config"
	"github.com/leapstack-labs/gaia/internal/cli/output"
	"github.com/leapstack-labs/gaia/internal/cli/testutil"
)

// runRoot executes the root command in dir with a clean configuration.
func runRoot(t *testing.T, dir string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Chdir(dir)
	for _, key := range []string{"TARGET", "EXT_DIR", "OUT_DIR", "VERBOSE", "OUTPUT"} {
		name := config.EnvPrefix + key
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	cfgFile = ""

	outBuf, errBuf := new(bytes.Buffer), new(bytes.Buffer)
	cmd := NewRootCmd()
	cmd.SetOut(outBuf)
	cmd.SetErr(errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	want := []string{"version", "compile", "encode", "decode", "expand", "compress", "words", "symbols", "analyze", "repl", "doctor", "init", "completion"}
	for _, name := range want {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	for _, flag := range []string{"config", "verbose", "output", "ext-dir"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRoot_CompileUsesProjectConfig(t *testing.T) {
	dir := testutil.SetupTestProject(t, nil)

	stdout, _, err := runRoot(t, dir, "compile", "src/main.gaia")
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ src/main.gaia")
	testutil.AssertNoANSI(t, stdout)

	got, err := os.ReadFile(filepath.Join(dir, "dist", "main.js"))
	require.NoError(t, err)
	assert.Contains(t, string(got), "export default function App()")
}

func TestRoot_ConfigFromSubdirectory(t *testing.T) {
	dir := testutil.SetupTestProject(t, map[string]string{
		"gaia.yaml": "target: typescript\nout_dir: dist\n",
	})

	_, _, err := runRoot(t, filepath.Join(dir, "src"), "compile", "main.gaia")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "dist", "main.ts"))
}

func TestRoot_OutputFlag(t *testing.T) {
	dir := testutil.SetupTestProject(t, nil)

	stdout, _, err := runRoot(t, dir, "-o", "json", "encode", "100")
	require.NoError(t, err)

	var out output.ConversionOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out.Results, 1)
	assert.Equal(t, "#⟨Bk⟩", out.Results[0].Output)
}

func TestRoot_MarkdownOutput(t *testing.T) {
	dir := testutil.SetupTestProject(t, nil)

	stdout, _, err := runRoot(t, dir, "symbols", "math")
	require.NoError(t, err)
	testutil.AssertValidMarkdown(t, stdout)
	testutil.AssertNoANSI(t, stdout)
	assert.Contains(t, stdout, "| λ | function |")
}

func TestRoot_ExtDirFlag(t *testing.T) {
	dir := testutil.SetupTestProject(t, map[string]string{
		"other/units.json": `{"symbols": [{"symbol": "㎝", "meaning": "centimeters"}]}`,
	})

	stdout, _, err := runRoot(t, dir, "--ext-dir", "other", "symbols", "extensions")
	require.NoError(t, err)
	assert.Contains(t, stdout, "| ㎝ | centimeters |")
	assert.NotContains(t, stdout, "await")
}

func TestRoot_Verbose(t *testing.T) {
	dir := testutil.SetupTestProject(t, nil)

	_, stderr, err := runRoot(t, dir, "-v", "symbols")
	require.NoError(t, err)
	assert.Contains(t, stderr, "using config file")
	assert.Contains(t, stderr, "loaded extensions")
}

func TestRoot_ConfigErrors(t *testing.T) {
	dir := testutil.SetupTestProject(t, nil)

	_, _, err := runRoot(t, dir, "--config", "missing.yaml", "symbols")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "gaia.yaml"), []byte("target: cobol\n"), 0600))
	_, _, err = runRoot(t, dir, "symbols")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestRoot_Completion(t *testing.T) {
	dir := testutil.SetupTestProject(t, nil)

	stdout, _, err := runRoot(t, dir, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, stdout, "gaia")
}

func TestGetConfig_Default(t *testing.T) {
	cfg := GetConfig(t.Context())
	assert.Equal(t, config.DefaultTarget, cfg.Target)
	assert.NotNil(t, GetRenderer(t.Context()))
}
