package compiler

import (
	"errors"
	"fmt"
	"strings"
)

// Target is an output language.
type Target string

// Supported targets.
const (
	TargetJavaScript Target = "javascript"
	TargetTypeScript Target = "typescript"
	TargetGo         Target = "go"
)

// ErrUnknownTarget is returned by ParseTarget.
var ErrUnknownTarget = errors.New("unknown target")

// Targets lists every supported target.
func Targets() []Target {
	return []Target{TargetJavaScript, TargetTypeScript, TargetGo}
}

// ParseTarget accepts a target name or its common short form (js, ts).
// The empty string selects JavaScript.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "javascript", "js":
		return TargetJavaScript, nil
	case "typescript", "ts":
		return TargetTypeScript, nil
	case "go", "golang":
		return TargetGo, nil
	}
	return "", fmt.Errorf("%w: %q (want javascript, typescript or go)", ErrUnknownTarget, s)
}

// Extension returns the file extension for generated files, without the dot.
func (t Target) Extension() string {
	switch t {
	case TargetTypeScript:
		return "ts"
	case TargetGo:
		return "go"
	case TargetJavaScript:
		return "js"
	}
	return "out"
}

func (t Target) String() string { return string(t) }
