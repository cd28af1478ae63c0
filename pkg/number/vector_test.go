package number

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeVector(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"⊗∅", 0},
		{"⊗α", 1},
		{"⊗ι", 9},
		{"⊗βε", 25},
		{"⊗αζ", 16},
		{"⊗α∅∅", 100},
		{"⊗α⊗∅⊗ε", 105},
		{"⊗⑦", 7},
		{"⊗⑩", 10},
		{"⊗χ", 10},
		{"⊗●", 100},
		{"⊗½", 0.5},
		{"⊗π", math.Pi},
		{"⊗e", math.E},
		{"γγ", 33},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := DecodeVector(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeVector_Infinity(t *testing.T) {
	got, err := DecodeVector("⊗∞")
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))
	assert.Equal(t, "Infinity", FormatVectorValue(got))
}

func TestDecodeVector_Invalid(t *testing.T) {
	for _, input := range []string{"", "⊗", "⊗x", "⊗αx", "⊗χα", "⊗α⊗", "⊗ααααααααααααααααααααα"} {
		t.Run(input, func(t *testing.T) {
			_, err := DecodeVector(input)
			assert.Error(t, err)
		})
	}
}

func TestEncodeVector(t *testing.T) {
	assert.Equal(t, "⊗∅", EncodeVector(0))
	assert.Equal(t, "⊗αζ", EncodeVector(16))
	assert.Equal(t, "⊗α∅ε", EncodeVector(105))
}

func TestVectorRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 9, 10, 11, 99, 100, 1 << 40, 1<<53 - 1}
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		values = append(values, uint64(rng.Int63n(1<<53)))
	}

	for _, n := range values {
		got, err := DecodeVector(EncodeVector(n))
		require.NoError(t, err, "n=%d", n)
		require.Equal(t, float64(n), got, "round trip of %d", n)
	}
}

func TestFormatVectorValue(t *testing.T) {
	assert.Equal(t, "25", FormatVectorValue(25))
	assert.Equal(t, "0.5", FormatVectorValue(0.5))
	assert.Equal(t, "3.141592653589793", FormatVectorValue(math.Pi))
	assert.Equal(t, "-Infinity", FormatVectorValue(math.Inf(-1)))
}

func TestVectorSymbols(t *testing.T) {
	syms := VectorSymbols()
	assert.Equal(t, "∅", syms[0])
	assert.Contains(t, syms, "π")
	assert.Len(t, syms, len(vectorSymbols))
}

func TestCircledValue(t *testing.T) {
	v, ok := CircledValue('⑥')
	assert.True(t, ok)
	assert.Equal(t, 6, v)

	_, ok = CircledValue('6')
	assert.False(t, ok)
}

func TestHan(t *testing.T) {
	assert.Equal(t, "零", EncodeHan(0))
	assert.Equal(t, "九", EncodeHan(9))
	assert.Equal(t, "42", EncodeHan(42))
	assert.Equal(t, "-1", EncodeHan(-1))

	n, err := DecodeHan("七")
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = DecodeHan("128")
	require.NoError(t, err)
	assert.Equal(t, 128, n)

	_, err = DecodeHan("十一")
	assert.Error(t, err)
}
