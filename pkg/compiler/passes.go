package compiler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/leapstack-labs/gaia/pkg/number"
	"github.com/leapstack-labs/gaia/pkg/symbols"
)

// Built-in pass names.
const (
	PassNumbers    = "numbers"
	PassSymbols    = "symbols"
	PassKeywords   = "keywords"
	PassFunctions  = "functions"
	PassState      = "state"
	PassComponents = "components"
	PassStyles     = "styles"
	PassCleanup    = "cleanup"
)

// DefaultPasses is the standard pipeline.
var DefaultPasses = []string{
	PassNumbers,
	PassSymbols,
	PassFunctions,
	PassState,
	PassComponents,
	PassStyles,
	PassCleanup,
}

func init() {
	RegisterPass(PassNumbers, func(*Env) Pass { return NewPass(PassNumbers, decodeNumbers) })
	RegisterPass(PassSymbols, func(env *Env) Pass {
		entries := env.Symbols
		return textPass(PassSymbols, func(s string) string { return symbols.Apply(s, entries) })
	})
	RegisterPass(PassKeywords, func(*Env) Pass { return textPass(PassKeywords, symbols.Expand) })
	RegisterPass(PassFunctions, func(*Env) Pass { return textPass(PassFunctions, transformFunctions) })
	RegisterPass(PassState, func(*Env) Pass { return textPass(PassState, transformState) })
	RegisterPass(PassComponents, func(*Env) Pass { return textPass(PassComponents, transformComponents) })
	RegisterPass(PassStyles, func(*Env) Pass { return textPass(PassStyles, transformStyles) })
	RegisterPass(PassCleanup, func(*Env) Pass { return textPass(PassCleanup, cleanupSyntax) })
}

// replaceSubmatch is ReplaceAllStringFunc with access to capture groups.
// Unmatched optional groups are "".
func replaceSubmatch(re *regexp.Regexp, src string, fn func(groups []string) string) string {
	matches := re.FindAllStringSubmatchIndex(src, -1)
	if matches == nil {
		return src
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(src[last:m[0]])
		groups := make([]string, len(m)/2)
		for i := range groups {
			if m[2*i] >= 0 {
				groups[i] = src[m[2*i]:m[2*i+1]]
			}
		}
		b.WriteString(fn(groups))
		last = m[1]
	}
	b.WriteString(src[last:])
	return b.String()
}

// numbers

var (
	compositePattern = regexp.MustCompile(`(\d+)⊗([①②③④⑤⑥⑦⑧⑨⑩])`)
	vectorPattern    = regexp.MustCompile(`⊗([∅αβγδεζηθι①②③④⑤⑥⑦⑧⑨⑩πe∞χ●⊤⊥◐◯½¼¾⅓⅔]+)`)
)

// decodeNumbers rewrites numeric literals to decimal. It runs before symbol
// substitution because several digit symbols are also dictionary symbols.
func decodeNumbers(src string) (string, error) {
	var firstErr error

	src = replaceSubmatch(number.LiteralPattern, src, func(g []string) string {
		n, err := number.FromBase64(g[1])
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("base64 literal %s: %w", g[0], err)
			}
			return g[0]
		}
		return strconv.FormatUint(n, 10)
	})
	if firstErr != nil {
		return "", firstErr
	}

	src = replaceSubmatch(compositePattern, src, func(g []string) string {
		ones, _ := number.CircledValue([]rune(g[2])[0])
		return g[1] + strconv.Itoa(ones)
	})

	src = replaceSubmatch(vectorPattern, src, func(g []string) string {
		v, err := number.DecodeVector(g[1])
		if err != nil {
			// Mixed runs such as ⊗α① have no defined value; leave them.
			return g[0]
		}
		return number.FormatVectorValue(v)
	})

	return src, nil
}

// functions

var (
	blockFunctionPattern  = regexp.MustCompile(`(?s)function\s*\{([^,}]+)(?:,\s*([^}]+))?\}\s*([^{]*?)\s*\{/function\s*\}`)
	lambdaFunctionPattern = regexp.MustCompile(`(?s)function⟨([^,⟩]+)(?:,([^⟩]+))?⟩([^⟨]*)⟨/function⟩`)
)

type bodyRewrite struct {
	re   *regexp.Regexp
	repl string
}

// bodyRewrites turn bare state assignments into state updates followed by a
// re-render.
var bodyRewrites = []bodyRewrite{
	{regexp.MustCompile(`counter\s*=\s*counter\s*\+\s*1`), "state.counter++; render();"},
	{regexp.MustCompile(`counter\s*=\s*counter\s*-\s*1`), "state.counter--; render();"},
	{regexp.MustCompile(`active\s*=\s*!active`), "state.active = !state.active; render();"},
	{regexp.MustCompile(`currentExample\s*=\s*(\S+)`), "state.currentExample = ${1}; render();"},
}

func cleanFunctionBody(body string) string {
	for _, rw := range bodyRewrites {
		body = rw.re.ReplaceAllString(body, rw.repl)
	}
	return strings.TrimSpace(body)
}

func paramList(params string) string {
	if strings.TrimSpace(params) == "" {
		return ""
	}
	parts := strings.Split(params, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

func transformFunctions(src string) string {
	src = replaceSubmatch(blockFunctionPattern, src, func(g []string) string {
		name := strings.TrimSpace(g[1])
		return fmt.Sprintf("function %s(%s) {\n  %s\n}", name, paramList(g[2]), cleanFunctionBody(g[3]))
	})

	return replaceSubmatch(lambdaFunctionPattern, src, func(g []string) string {
		name := strings.TrimSpace(g[1])
		return fmt.Sprintf("function %s(%s) {\n%s\n}", name, paramList(g[2]), g[3])
	})
}

// state

var (
	stateOpenPattern  = regexp.MustCompile(`let\s+state\s*=\s*\{`)
	stringValue       = regexp.MustCompile(`string\s*\{([^}]+)\}`)
	arrayValue        = regexp.MustCompile(`Array\s*\{([^}]+)\}`)
	objectValue       = regexp.MustCompile(`Object\s*\{([^}]+)\}`)
	propertyKeyPrefix = regexp.MustCompile(`^([^:\s]+)\s*:\s*`)
)

// matchingBrace returns the index of the brace closing the one at open, or -1.
func matchingBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits s on sep outside brackets, braces, parens and quotes.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '{' || c == '[' || c == '(':
			depth++
		case c == '}' || c == ']' || c == ')':
			depth--
		case c == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

func cleanStateContent(content string) string {
	content = stringValue.ReplaceAllString(content, "'${1}'")
	content = arrayValue.ReplaceAllString(content, "[${1}]")
	content = objectValue.ReplaceAllString(content, "{${1}}")

	var lines []string
	for _, part := range splitTopLevel(content, ',') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		part = propertyKeyPrefix.ReplaceAllString(part, "${1}: ")
		lines = append(lines, "  "+part)
	}
	return strings.Join(lines, ",\n")
}

func transformState(src string) string {
	var b strings.Builder
	for {
		loc := stateOpenPattern.FindStringIndex(src)
		if loc == nil {
			break
		}
		open := loc[1] - 1
		end := matchingBrace(src, open)
		if end < 0 {
			break
		}
		b.WriteString(src[:loc[0]])
		b.WriteString("let state = {\n")
		b.WriteString(cleanStateContent(src[open+1 : end]))
		b.WriteString("\n};")
		src = src[end+1:]
	}
	b.WriteString(src)
	return b.String()
}

// components

var (
	appComponentPattern  = regexp.MustCompile(`function\s+App\s*\{\s*\*\s*\}`)
	componentCallPattern = regexp.MustCompile(`function\s*\{([^}]+)\}`)
)

func transformComponents(src string) string {
	src = appComponentPattern.ReplaceAllString(src, "export default function App()")
	return componentCallPattern.ReplaceAllString(src, "${1}()")
}

// styles

var styleBlockPattern = regexp.MustCompile(`\{([^}]*'[^']*':\s*'[^']*'[^}]*)\}`)

func transformStyles(src string) string {
	return replaceSubmatch(styleBlockPattern, src, func(g []string) string {
		var props []string
		for _, style := range strings.Split(g[1], ",") {
			style = strings.TrimSpace(style)
			if style == "" {
				continue
			}
			key, value, ok := strings.Cut(style, ":")
			if !ok {
				props = append(props, "  "+style)
				continue
			}
			key = strings.Trim(strings.TrimSpace(key), `'"`)
			value = strings.Trim(strings.TrimSpace(value), `'"`)
			props = append(props, fmt.Sprintf("  %s: '%s'", key, value))
		}
		return "{\n" + strings.Join(props, ",\n") + "\n}"
	})
}

// cleanup

var cleanupRewrites = []bodyRewrite{
	{regexp.MustCompile(`\{/function\s*\}`), ""},
	{regexp.MustCompile(`(?m)\{/function\s*$`), ""},
	{regexp.MustCompile(`(?m)^[ \t]*\*`), ""},
	{regexp.MustCompile("(?m)^\\s*```[^`]*```"), ""},
	{regexp.MustCompile(`import\s*\{[^}]*\}\s*from\s*"react";`), `import React, { useState, useEffect } from "react";`},
	{regexp.MustCompile(`\n\s*\n\s*\n`), "\n\n"},
	{regexp.MustCompile(`(?m)^\s*\n`), ""},
}

func cleanupSyntax(src string) string {
	for _, rw := range cleanupRewrites {
		src = rw.re.ReplaceAllLiteralString(src, rw.repl)
	}
	return strings.TrimSpace(src)
}
