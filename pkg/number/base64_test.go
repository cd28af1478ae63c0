package number

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBase64(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "A"},
		{1, "B"},
		{10, "K"},
		{63, "/"},
		{64, "BA"},
		{100, "Bk"},
		{123, "B7"},
		{1000, "Po"},
		{1000000, "D0JA"},
		{1000000000, "7msoA"},
		{math.MaxUint64, "P//////////"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ToBase64(tt.n))
		})
	}
}

func TestFromBase64(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    uint64
		wantErr error
	}{
		{name: "zero", input: "A", want: 0},
		{name: "sixty four", input: "BA", want: 64},
		{name: "leading zero digits", input: "AAB", want: 1},
		{name: "plus and slash", input: "+/", want: 62*64 + 63},
		{name: "billion", input: "7msoA", want: 1000000000},
		{name: "max", input: "P//////////", want: math.MaxUint64},
		{name: "empty", input: "", wantErr: ErrEmpty},
		{name: "invalid ascii", input: "B-A", wantErr: ErrInvalidDigit},
		{name: "invalid unicode", input: "Bé", wantErr: ErrInvalidDigit},
		{name: "overflow", input: "Q//////////", wantErr: ErrOverflow},
		{name: "too long", input: "BAAAAAAAAAAA", wantErr: ErrOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromBase64(tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromBase64_InvalidDigitError(t *testing.T) {
	_, err := FromBase64("AB$C")

	var digitErr *InvalidDigitError
	require.True(t, errors.As(err, &digitErr))
	assert.Equal(t, '$', digitErr.Char)
	assert.Equal(t, 2, digitErr.Offset)
	assert.Contains(t, err.Error(), "offset 2")
}

func TestBase64RoundTrip(t *testing.T) {
	values := []uint64{0, 1, 63, 64, 65, 4095, 4096, 1 << 32, 1<<63 - 1, 1 << 63, math.MaxUint64}
	for i := uint64(0); i < 5000; i++ {
		values = append(values, i)
	}
	rng := rand.New(rand.NewSource(6841))
	for i := 0; i < 5000; i++ {
		values = append(values, rng.Uint64())
	}

	for _, n := range values {
		got, err := FromBase64(ToBase64(n))
		require.NoError(t, err, "n=%d", n)
		require.Equal(t, n, got, "round trip of %d via %q", n, ToBase64(n))
	}
}

func TestFormatAndParseBase64(t *testing.T) {
	assert.Equal(t, "#⟨Bk⟩", FormatBase64(100))

	got, err := ParseBase64("  #⟨B7⟩\n")
	require.NoError(t, err)
	assert.Equal(t, uint64(123), got)

	for _, bad := range []string{"Bk", "#⟨⟩", "#⟨B-k⟩", "x #⟨Bk⟩", "#<Bk>"} {
		_, err := ParseBase64(bad)
		assert.ErrorIs(t, err, ErrInvalidFormat, "input %q", bad)
	}
}

func TestLiteralPattern(t *testing.T) {
	matches := LiteralPattern.FindAllStringSubmatch("size: #⟨K⟩, max: #⟨BA⟩", -1)
	require.Len(t, matches, 2)
	assert.Equal(t, "K", matches[0][1])
	assert.Equal(t, "BA", matches[1][1])
}
