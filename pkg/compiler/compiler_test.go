package compiler

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gaia/internal/testutil"
	"github.com/leapstack-labs/gaia/pkg/symbols"
)

const counterSource = "Σ{count: ⊗∅, label: 𝕊{Clicks}}\n" +
	"λ{increment} counter = counter + ⊗α {/λ}\n" +
	"Ω{✱}\n"

func newCompiler(t *testing.T, opts ...Option) *Compiler {
	t.Helper()
	c, err := New(opts...)
	require.NoError(t, err)
	return c
}

func TestCompile_Counter(t *testing.T) {
	c := newCompiler(t)

	res := c.Compile(context.Background(), counterSource, Options{Target: TargetJavaScript})
	require.True(t, res.Success, "errors: %v", res.Errors)

	want := "let state = {\n" +
		"  count: 0,\n" +
		"  label: 'Clicks'\n" +
		"};\n" +
		"function increment() {\n" +
		"  state.counter++; render();\n" +
		"}\n" +
		"export default function App()"
	assert.Equal(t, want, res.JavaScript)
	assert.Equal(t, res.JavaScript, res.TypeScript)
	assert.NotEmpty(t, res.BuildID)
	assert.Empty(t, res.Errors)
}

func TestCompile_GoOutputIsFixed(t *testing.T) {
	c := newCompiler(t)

	a := c.Compile(context.Background(), counterSource, Options{Target: TargetGo})
	b := c.Compile(context.Background(), "anything at all", Options{Target: TargetGo})

	require.True(t, a.Success)
	require.True(t, b.Success)
	assert.Equal(t, GoProgram(), a.Go)
	assert.Equal(t, a.Go, b.Go)
	assert.Contains(t, a.Go, "package main")
	assert.Contains(t, a.Go, `fmt.Println("GaiaScript Go output")`)
	assert.Equal(t, a.Go, a.Output(TargetGo))
}

func TestCompile_EmptySource(t *testing.T) {
	c := newCompiler(t)

	res := c.Compile(context.Background(), "", Options{})
	require.True(t, res.Success)
	assert.Empty(t, res.JavaScript)
}

func TestCompile_Debug(t *testing.T) {
	c := newCompiler(t)

	res := c.Compile(context.Background(), "⊗βε", Options{Debug: true})
	require.True(t, res.Success)
	require.Len(t, res.Diagnostics, 1+len(DefaultPasses))
	assert.Equal(t, "Compiling 3 characters", res.Diagnostics[0])
	assert.True(t, strings.HasPrefix(res.Diagnostics[1], "Pass numbers: "))
	assert.Equal(t, "25", res.JavaScript)
}

func TestCompile_NoDiagnosticsWithoutDebug(t *testing.T) {
	c := newCompiler(t)

	res := c.Compile(context.Background(), "⊗βε", Options{})
	require.True(t, res.Success)
	assert.Empty(t, res.Diagnostics)
}

func TestCompile_PassFailure(t *testing.T) {
	c := newCompiler(t)

	res := c.Compile(context.Background(), "n = #⟨Q//////////⟩", Options{})
	assert.False(t, res.Success)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "pass numbers")
	assert.Contains(t, res.Errors[0], "overflow")
	assert.Empty(t, res.JavaScript)
}

func TestCompile_Logging(t *testing.T) {
	logger, logs := testutil.NewCaptureLogger()
	c := newCompiler(t, WithLogger(logger))

	res := c.Compile(context.Background(), "⊗βε", Options{})
	require.True(t, res.Success)
	assert.Contains(t, logs.String(), "pass applied")
	assert.Contains(t, logs.String(), "pass=numbers")

	c.Compile(context.Background(), "n = #⟨Q//////////⟩", Options{})
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "compilation failed")
}

func TestCompile_Cancelled(t *testing.T) {
	c := newCompiler(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := c.Compile(ctx, counterSource, Options{})
	assert.False(t, res.Success)
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0], "cancelled")
}

func TestCompile_Check(t *testing.T) {
	c := newCompiler(t)

	t.Run("valid", func(t *testing.T) {
		src := "Σ{count: ⊗∅}\nλ{inc} counter = counter + ⊗α {/λ}\n"
		res := c.Compile(context.Background(), src, Options{Check: true})
		require.True(t, res.Success, "errors: %v", res.Errors)
		assert.Contains(t, res.JavaScript, "function inc()")
	})

	t.Run("invalid", func(t *testing.T) {
		// The App component has no body, so the output does not parse.
		res := c.Compile(context.Background(), counterSource, Options{Check: true})
		assert.False(t, res.Success)
		assert.NotEmpty(t, res.Errors)
		assert.Contains(t, res.Diagnostics, "JavaScript check failed")
	})
}

func TestCompile_CheckFollowsTarget(t *testing.T) {
	c, err := New(WithPasses(PassNumbers))
	require.NoError(t, err)

	tests := []struct {
		name    string
		target  Target
		source  string
		success bool
	}{
		{name: "typescript accepts annotations", target: TargetTypeScript, source: "const x: number = ⊗α;", success: true},
		{name: "javascript rejects annotations", target: TargetJavaScript, source: "const x: number = ⊗α;", success: false},
		{name: "go output is not checked", target: TargetGo, source: "function (", success: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.Compile(context.Background(), tt.source, Options{Target: tt.target, Check: true, Minify: true})
			assert.Equal(t, tt.success, res.Success, "errors: %v", res.Errors)
			if tt.target == TargetGo {
				assert.Equal(t, GoProgram(), res.Go)
				assert.Empty(t, res.Diagnostics)
			}
		})
	}
}

func TestCompile_Minify(t *testing.T) {
	c := newCompiler(t)

	src := "Σ{count: ⊗∅}\nλ{inc} counter = counter + ⊗α {/λ}\n"
	res := c.Compile(context.Background(), src, Options{Minify: true})
	require.True(t, res.Success, "errors: %v", res.Errors)
	assert.NotContains(t, res.JavaScript, "\n")
	assert.Contains(t, res.JavaScript, "function inc()")
}

func TestCompile_MinifyKeepsOutputOnSyntaxError(t *testing.T) {
	c := newCompiler(t)

	res := c.Compile(context.Background(), counterSource, Options{Minify: true})
	assert.True(t, res.Success)
	assert.Empty(t, res.Errors)
	require.NotEmpty(t, res.Diagnostics)
	assert.True(t, strings.HasPrefix(res.Diagnostics[0], "minify skipped: "))
	assert.Contains(t, res.JavaScript, "export default function App()")
}

func TestCheck(t *testing.T) {
	assert.Empty(t, Check("const x = 1;", TargetJavaScript))
	assert.Empty(t, Check("const x: number = 1;", TargetTypeScript))
	assert.Empty(t, Check("not go at all {", TargetGo))

	errs := Check("function (", TargetJavaScript)
	require.NotEmpty(t, errs)
	assert.Regexp(t, `^\d+:\d+: `, errs[0])
}

func TestNew_UnknownPass(t *testing.T) {
	_, err := New(WithPasses(PassNumbers, "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownPass)
	assert.Contains(t, err.Error(), `"nope"`)
}

func TestNew_PassOrder(t *testing.T) {
	upper := NewPass("upper", func(s string) (string, error) { return strings.ToUpper(s), nil })

	tests := []struct {
		name string
		opts []Option
		want []string
	}{
		{
			name: "default",
			want: DefaultPasses,
		},
		{
			name: "extra before cleanup",
			opts: []Option{WithExtraPasses(upper)},
			want: []string{"numbers", "symbols", "functions", "state", "components", "styles", "upper", "cleanup"},
		},
		{
			name: "extra appended without cleanup",
			opts: []Option{WithPasses(PassNumbers), WithExtraPasses(upper)},
			want: []string{"numbers", "upper"},
		},
		{
			name: "custom pipeline",
			opts: []Option{WithPasses(PassKeywords, PassCleanup)},
			want: []string{"keywords", "cleanup"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCompiler(t, tt.opts...)
			assert.Equal(t, tt.want, c.Passes())
		})
	}
}

func TestCompile_ExtraPassRuns(t *testing.T) {
	upper := NewPass("upper", func(s string) (string, error) { return strings.ToUpper(s), nil })
	c := newCompiler(t, WithPasses(PassNumbers), WithExtraPasses(upper))

	res := c.Compile(context.Background(), "x = ⊗βε", Options{})
	require.True(t, res.Success)
	assert.Equal(t, "X = 25", res.JavaScript)
}

func TestCompile_WithSymbols(t *testing.T) {
	c := newCompiler(t, WithSymbols([]symbols.Entry{{Symbol: "⟿", Meaning: "await"}}))

	res := c.Compile(context.Background(), "⟿ load()", Options{})
	require.True(t, res.Success)
	assert.Equal(t, "await load()", res.JavaScript)
}

func TestCompile_KeywordsPass(t *testing.T) {
	c := newCompiler(t, WithPasses(PassKeywords))

	res := c.Compile(context.Background(), "函 x", Options{})
	require.True(t, res.Success)
	assert.Equal(t, "function x", res.JavaScript)
}

func TestCompileMultiple(t *testing.T) {
	c := newCompiler(t)

	sources := map[string]string{
		"a.gaia": "⊗βε",
		"b.gaia": "#⟨Bk⟩",
		"c.gaia": "#⟨Q//////////⟩",
	}
	results, err := c.CompileMultiple(context.Background(), sources, Options{})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "25", results["a.gaia"].JavaScript)
	assert.Equal(t, "100", results["b.gaia"].JavaScript)
	assert.False(t, results["c.gaia"].Success)
	assert.NotEqual(t, results["a.gaia"].BuildID, results["b.gaia"].BuildID)
}

func TestCompileMultiple_Cancelled(t *testing.T) {
	c := newCompiler(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.CompileMultiple(ctx, map[string]string{"a": "x"}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in      string
		want    Target
		wantErr bool
	}{
		{in: "", want: TargetJavaScript},
		{in: "js", want: TargetJavaScript},
		{in: "javascript", want: TargetJavaScript},
		{in: "ts", want: TargetTypeScript},
		{in: "TypeScript", want: TargetTypeScript},
		{in: "go", want: TargetGo},
		{in: "golang", want: TargetGo},
		{in: "rust", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTarget(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownTarget)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTarget_Extension(t *testing.T) {
	assert.Equal(t, "js", TargetJavaScript.Extension())
	assert.Equal(t, "ts", TargetTypeScript.Extension())
	assert.Equal(t, "go", TargetGo.Extension())
}
