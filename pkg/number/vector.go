package number

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// VectorPrefix introduces a vector number.
const VectorPrefix = "⊗"

// ErrInvalidVector is returned for symbols that are not vector digits.
var ErrInvalidVector = errors.New("invalid vector number")

// vectorDigits are the positional digits 0-9, in order.
var vectorDigits = []rune("∅αβγδεζηθι")

// vectorSymbols are the single-symbol values. Positional digits are included
// so a one-symbol number resolves here before the positional walk.
var vectorSymbols = map[string]float64{
	"∅": 0, "α": 1, "β": 2, "γ": 3, "δ": 4,
	"ε": 5, "ζ": 6, "η": 7, "θ": 8, "ι": 9,

	"①": 1, "②": 2, "③": 3, "④": 4, "⑤": 5,
	"⑥": 6, "⑦": 7, "⑧": 8, "⑨": 9, "⑩": 10,

	"π": math.Pi, "e": math.E, "∞": math.Inf(1),

	"χ": 10, "●": 100, "⊤": 1, "⊥": 0, "◐": 50, "◯": 0,

	"½": 0.5, "¼": 0.25, "¾": 0.75, "⅓": 0.333, "⅔": 0.667,
}

// VectorSymbols lists every symbol DecodeVector understands, digits first.
func VectorSymbols() []string {
	out := make([]string, 0, len(vectorSymbols))
	for _, d := range vectorDigits {
		out = append(out, string(d))
	}
	for _, s := range []string{
		"①", "②", "③", "④", "⑤", "⑥", "⑦", "⑧", "⑨", "⑩",
		"π", "e", "∞", "χ", "●", "⊤", "⊥", "◐", "◯",
		"½", "¼", "¾", "⅓", "⅔",
	} {
		out = append(out, s)
	}
	return out
}

// CircledValue returns the value of a circled digit ①..⑩.
func CircledValue(r rune) (int, bool) {
	if r >= '①' && r <= '⑩' {
		return int(r-'①') + 1, true
	}
	return 0, false
}

func digitValue(r rune) (int, bool) {
	for i, d := range vectorDigits {
		if d == r {
			return i, true
		}
	}
	return 0, false
}

// DecodeVector decodes a vector number such as ⊗βε (25), ⊗π or the chained
// form ⊗α⊗∅⊗ε (105). The leading ⊗ is optional.
func DecodeVector(s string) (float64, error) {
	body := strings.TrimPrefix(s, VectorPrefix)
	if body == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVector, s)
	}

	// Chained numbers are one digit per ⊗ group.
	if strings.Contains(body, VectorPrefix) {
		var digits strings.Builder
		for _, part := range strings.Split(body, VectorPrefix) {
			v, err := decodePositional(part)
			if err != nil {
				return 0, fmt.Errorf("%w: %q", ErrInvalidVector, s)
			}
			digits.WriteString(strconv.FormatUint(v, 10))
		}
		v, err := strconv.ParseUint(digits.String(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrOverflow, s)
		}
		return float64(v), nil
	}

	if v, ok := vectorSymbols[body]; ok {
		return v, nil
	}

	v, err := decodePositional(body)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", err, s)
	}
	return float64(v), nil
}

func decodePositional(body string) (uint64, error) {
	if body == "" {
		return 0, ErrInvalidVector
	}
	var value uint64
	for _, r := range body {
		d, ok := digitValue(r)
		if !ok {
			return 0, ErrInvalidVector
		}
		if value > (math.MaxUint64-uint64(d))/10 {
			return 0, ErrOverflow
		}
		value = value*10 + uint64(d)
	}
	return value, nil
}

// EncodeVector renders n as a positional vector number, e.g. ⊗αζ for 16.
func EncodeVector(n uint64) string {
	dec := strconv.FormatUint(n, 10)
	var b strings.Builder
	b.WriteString(VectorPrefix)
	for i := 0; i < len(dec); i++ {
		b.WriteRune(vectorDigits[dec[i]-'0'])
	}
	return b.String()
}

// FormatVectorValue renders a decoded value the way a JavaScript number
// prints: integers without a fraction, ∞ as Infinity.
func FormatVectorValue(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case math.IsNaN(v):
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
