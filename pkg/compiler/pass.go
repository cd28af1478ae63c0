package compiler

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/leapstack-labs/gaia/pkg/symbols"
)

// Pass is one find/replace stage of the pipeline.
type Pass interface {
	Name() string
	Apply(src string) (string, error)
}

// ErrUnknownPass is returned when a pipeline names an unregistered pass.
var ErrUnknownPass = errors.New("unknown pass")

type funcPass struct {
	name string
	fn   func(string) (string, error)
}

func (p funcPass) Name() string                     { return p.name }
func (p funcPass) Apply(src string) (string, error) { return p.fn(src) }

// NewPass wraps fn as a Pass.
func NewPass(name string, fn func(string) (string, error)) Pass {
	return funcPass{name: name, fn: fn}
}

// textPass wraps an infallible rewrite.
func textPass(name string, fn func(string) string) Pass {
	return funcPass{name: name, fn: func(s string) (string, error) { return fn(s), nil }}
}

// Env is what a PassFactory can draw on when building its pass.
type Env struct {
	// Symbols is the substitution dictionary, in replacement order.
	Symbols []symbols.Entry
	Logger  *slog.Logger
}

// PassFactory builds a pass for a compiler instance.
type PassFactory func(env *Env) Pass

var passRegistry = struct {
	mu        sync.RWMutex
	factories map[string]PassFactory
}{factories: make(map[string]PassFactory)}

// RegisterPass makes a pass available by name. Call this from init().
func RegisterPass(name string, f PassFactory) {
	passRegistry.mu.Lock()
	defer passRegistry.mu.Unlock()
	passRegistry.factories[name] = f
}

// PassNames returns every registered pass name, sorted.
func PassNames() []string {
	passRegistry.mu.RLock()
	defer passRegistry.mu.RUnlock()

	names := make([]string, 0, len(passRegistry.factories))
	for name := range passRegistry.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func buildPass(name string, env *Env) (Pass, error) {
	passRegistry.mu.RLock()
	f, ok := passRegistry.factories[name]
	passRegistry.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPass, name)
	}
	return f(env), nil
}
