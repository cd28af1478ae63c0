package compiler

import (
	"fmt"
	"go/format"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

const goProgram = `package main

import "fmt"

func main() {
	fmt.Println("GaiaScript Go output")
}
`

// GoProgram returns the Go target output. It does not depend on the source.
func GoProgram() string {
	src, err := format.Source([]byte(goProgram))
	if err != nil {
		return goProgram
	}
	return string(src)
}

// transformJS runs code through esbuild. It returns the transformed code,
// warnings as diagnostics, and errors.
func transformJS(code string, target Target, minify bool) (string, []string, []string) {
	loader := api.LoaderJSX
	if target == TargetTypeScript {
		loader = api.LoaderTSX
	}

	result := api.Transform(code, api.TransformOptions{
		Loader:           loader,
		MinifyWhitespace: minify,
		LogLevel:         api.LogLevelSilent,
	})

	warnings := make([]string, 0, len(result.Warnings))
	for _, m := range result.Warnings {
		warnings = append(warnings, "warning: "+formatMessage(m))
	}
	errs := make([]string, 0, len(result.Errors))
	for _, m := range result.Errors {
		errs = append(errs, formatMessage(m))
	}
	return strings.TrimSpace(string(result.Code)), warnings, errs
}

// Check parses code as the given target and returns its syntax errors.
func Check(code string, target Target) []string {
	if target == TargetGo {
		return nil
	}
	_, _, errs := transformJS(code, target, false)
	return errs
}

func formatMessage(m api.Message) string {
	if m.Location == nil {
		return m.Text
	}
	return fmt.Sprintf("%d:%d: %s", m.Location.Line, m.Location.Column+1, m.Text)
}
