package extension

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.starlark.net/starlark"

	"github.com/leapstack-labs/gaia/pkg/number"
	"github.com/leapstack-labs/gaia/pkg/symbols"
)

// predeclared are the builtins visible to Starlark extensions.
var predeclared = starlark.StringDict{
	"encode_base64": starlark.NewBuiltin("encode_base64", builtinEncodeBase64),
	"decode_base64": starlark.NewBuiltin("decode_base64", builtinDecodeBase64),
	"decode_vector": starlark.NewBuiltin("decode_vector", builtinDecodeVector),
	"expand":        starlark.NewBuiltin("expand", builtinExpand),
}

func builtinEncodeBase64(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var n int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &n); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%s: negative number %d", b.Name(), n)
	}
	return starlark.String(number.ToBase64(uint64(n))), nil
}

func builtinDecodeBase64(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var s string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &s); err != nil {
		return nil, err
	}
	n, err := number.FromBase64(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return starlark.MakeUint64(n), nil
}

func builtinDecodeVector(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var s string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &s); err != nil {
		return nil, err
	}
	v, err := number.DecodeVector(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return starlark.Float(v), nil
}

func builtinExpand(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var s string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &s); err != nil {
		return nil, err
	}
	return starlark.String(symbols.Expand(s)), nil
}

func (l *Loader) execStarlark(ext *Extension, content []byte) error {
	if err := validateName(ext.Name); err != nil {
		return err
	}

	thread := &starlark.Thread{
		Name:  "load:" + ext.Name,
		Print: printer(l.logger, ext.Name),
	}

	globals, err := starlark.ExecFile(thread, ext.Path, content, predeclared) //nolint:staticcheck // SA1019: will migrate to ExecFileOptions later
	if err != nil {
		return fmt.Errorf("starlark execution error: %v", err)
	}
	globals.Freeze()

	if v, ok := globals["symbols"]; ok {
		words, err := wordMap(v)
		if err != nil {
			return err
		}
		ext.Entries = entriesFromWords(words, ext.Name)
	}

	if v, ok := globals["transform"]; ok {
		fn, ok := v.(starlark.Callable)
		if !ok {
			return fmt.Errorf("transform must be a function, got %s", v.Type())
		}
		ext.Transform = &transformPass{
			name: PassPrefix + ext.Name,
			fn:   fn,
			pool: newThreadPool(printer(l.logger, ext.Name)),
		}
	}

	return nil
}

func printer(logger *slog.Logger, name string) func(*starlark.Thread, string) {
	return func(_ *starlark.Thread, msg string) {
		logger.Debug("extension print", "extension", name, "msg", msg)
	}
}

func wordMap(v starlark.Value) (map[string]string, error) {
	if _, ok := v.(*starlark.Dict); !ok {
		return nil, fmt.Errorf("symbols must be a dict, got %s", v.Type())
	}
	raw, err := toGo(v)
	if err != nil {
		return nil, fmt.Errorf("symbols: %w", err)
	}

	words := make(map[string]string)
	for word, code := range raw.(map[string]any) {
		s, ok := code.(string)
		if !ok {
			return nil, fmt.Errorf("symbols: code for %q must be a string, got %T", word, code)
		}
		words[word] = s
	}
	return words, nil
}

// toGo converts a Starlark value to string, int64, float64, bool, []any,
// map[string]any or nil.
func toGo(v starlark.Value) (any, error) {
	switch val := v.(type) {
	case starlark.NoneType:
		return nil, nil

	case starlark.String:
		return string(val), nil

	case starlark.Int:
		i64, ok := val.Int64()
		if !ok {
			return val.String(), nil
		}
		return i64, nil

	case starlark.Float:
		return float64(val), nil

	case starlark.Bool:
		return bool(val), nil

	case *starlark.List:
		result := make([]any, val.Len())
		for i := 0; i < val.Len(); i++ {
			gv, err := toGo(val.Index(i))
			if err != nil {
				return nil, fmt.Errorf("list index %d: %w", i, err)
			}
			result[i] = gv
		}
		return result, nil

	case *starlark.Dict:
		result := make(map[string]any)
		for _, item := range val.Items() {
			key, ok := item[0].(starlark.String)
			if !ok {
				return nil, fmt.Errorf("dict key must be string, got %s", item[0].Type())
			}
			gv, err := toGo(item[1])
			if err != nil {
				return nil, fmt.Errorf("dict key %q: %w", key, err)
			}
			result[string(key)] = gv
		}
		return result, nil

	default:
		return val.String(), nil
	}
}

// validateName checks that a Starlark extension name is an identifier.
func validateName(name string) error {
	if name == "" {
		return errors.New("extension name cannot be empty")
	}
	for i, r := range name {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return fmt.Errorf("extension name contains invalid character %q: %s", r, name)
		}
	}
	return nil
}

// transformPass runs a Starlark transform(source) function as a compiler
// pass. Calls may run concurrently; each takes its own thread.
type transformPass struct {
	name string
	fn   starlark.Callable
	pool *threadPool
}

func (p *transformPass) Name() string { return p.name }

func (p *transformPass) Apply(src string) (string, error) {
	thread := p.pool.get(p.name)
	defer p.pool.put(thread)

	v, err := starlark.Call(thread, p.fn, starlark.Tuple{starlark.String(src)}, nil)
	if err != nil {
		return "", fmt.Errorf("transform: %w", err)
	}
	out, ok := starlark.AsString(v)
	if !ok {
		return "", fmt.Errorf("transform must return a string, got %s", v.Type())
	}
	return out, nil
}

const maxPooledThreads = 8

type threadPool struct {
	mu      sync.Mutex
	threads []*starlark.Thread
	printFn func(*starlark.Thread, string)
}

func newThreadPool(printFn func(*starlark.Thread, string)) *threadPool {
	return &threadPool{printFn: printFn}
}

func (p *threadPool) get(name string) *starlark.Thread {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n := len(p.threads); n > 0 {
		thread := p.threads[n-1]
		p.threads = p.threads[:n-1]
		thread.Name = name
		return thread
	}
	return &starlark.Thread{Name: name, Print: p.printFn}
}

func (p *threadPool) put(thread *starlark.Thread) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.threads) < maxPooledThreads {
		p.threads = append(p.threads, thread)
	}
}
