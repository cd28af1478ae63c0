// Package main provides tests for the gaia CLI.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gaia/internal/cli"
	"github.com/leapstack-labs/gaia/internal/cli/config"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gaia v"+cli.Version)
}

func TestInitThenCompile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := run(t, "init")
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, "gaia.yaml"))

	_, err = run(t, "compile", "main.gaia")
	require.NoError(t, err)

	js, err := os.ReadFile(filepath.Join(dir, "main.js"))
	require.NoError(t, err)
	assert.Contains(t, string(js), "export default function App()")
}

func TestRoundTripNumbers(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "encode", "4096")
	require.NoError(t, err)
	assert.Equal(t, "#⟨BAA⟩\n", out)

	out, err = run(t, "decode", "#⟨BAA⟩")
	require.NoError(t, err)
	assert.Equal(t, "4096\n", out)
}

func TestUnknownCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := run(t, "transpile")
	assert.Error(t, err)
}
