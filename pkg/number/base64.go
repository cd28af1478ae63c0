package number

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Alphabet is the digit alphabet of Base64 numbers. The index of a character
// is its digit value.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

const base = 64

// Sentinel errors returned by the Base64 decoder.
var (
	ErrEmpty         = errors.New("empty base64 number")
	ErrInvalidDigit  = errors.New("invalid base64 character")
	ErrOverflow      = errors.New("base64 number overflows uint64")
	ErrInvalidFormat = errors.New("invalid base64 number format")
)

// InvalidDigitError reports a character outside Alphabet.
type InvalidDigitError struct {
	Char   rune
	Offset int // byte offset in the input
}

func (e *InvalidDigitError) Error() string {
	return fmt.Sprintf("invalid base64 character %q at offset %d", e.Char, e.Offset)
}

// Unwrap allows errors.Is(err, ErrInvalidDigit).
func (e *InvalidDigitError) Unwrap() error { return ErrInvalidDigit }

// digitValues maps an ASCII byte to its digit value, or -1.
var digitValues = func() [256]int8 {
	var t [256]int8
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		t[Alphabet[i]] = int8(i)
	}
	return t
}()

// ToBase64 encodes n using the Base64 number alphabet. Zero encodes as "A".
func ToBase64(n uint64) string {
	if n == 0 {
		return Alphabet[:1]
	}

	// 11 base-64 digits cover the full uint64 range.
	var buf [11]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = Alphabet[n%base]
		n /= base
	}
	return string(buf[i:])
}

// FromBase64 decodes a Base64 number. It rejects the empty string, any
// character outside Alphabet and values that do not fit in a uint64.
func FromBase64(s string) (uint64, error) {
	if s == "" {
		return 0, ErrEmpty
	}

	var value uint64
	for i, r := range s {
		if r >= 256 || digitValues[r] < 0 {
			return 0, &InvalidDigitError{Char: r, Offset: i}
		}
		if value > (math.MaxUint64-uint64(digitValues[r]))/base {
			return 0, ErrOverflow
		}
		value = value*base + uint64(digitValues[r])
	}
	return value, nil
}

// literalPattern matches a complete #⟨…⟩ literal.
var literalPattern = regexp.MustCompile(`^#⟨([A-Za-z0-9+/]+)⟩$`)

// LiteralPattern matches #⟨…⟩ literals embedded in text. The first submatch is
// the digit string.
var LiteralPattern = regexp.MustCompile(`#⟨([A-Za-z0-9+/]+)⟩`)

// FormatBase64 renders n as a GaiaScript literal, e.g. #⟨Bk⟩ for 100.
func FormatBase64(n uint64) string {
	return "#⟨" + ToBase64(n) + "⟩"
}

// ParseBase64 decodes a single #⟨…⟩ literal. Surrounding whitespace is ignored.
func ParseBase64(s string) (uint64, error) {
	m := literalPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return FromBase64(m[1])
}
