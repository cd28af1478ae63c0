package symbols

import (
	"regexp"
	"strings"
	"sync"
)

// Expand rewrites Han keywords and named math symbols into English words.
//
//	Expand("函 λ") == "function lambda"
func Expand(text string) string {
	text = Apply(text, MustGet(TableKeywords).Entries)
	return Apply(text, MustGet(TableNames).Entries)
}

var (
	compressOnce     sync.Once
	compressPatterns []compressPattern
)

type compressPattern struct {
	re     *regexp.Regexp
	symbol string
}

// Compress is the inverse of the keyword half of Expand: whole English
// keywords become their Han character. Words inside identifiers are kept.
//
//	Compress("function functional") == "函 functional"
func Compress(text string) string {
	compressOnce.Do(func() {
		for _, e := range MustGet(TableKeywords).Entries {
			compressPatterns = append(compressPatterns, compressPattern{
				re:     regexp.MustCompile(`\b` + regexp.QuoteMeta(e.Meaning) + `\b`),
				symbol: e.Symbol,
			})
		}
	})

	for _, p := range compressPatterns {
		text = p.re.ReplaceAllLiteralString(text, p.symbol)
	}
	return text
}

// EncodeWord returns the word code for word, matched case-insensitively, or
// word unchanged when it has no code.
func EncodeWord(word string) string {
	lower := strings.ToLower(word)
	for _, wc := range wordCodes {
		if wc[0] == lower {
			return wc[1]
		}
	}
	return word
}

// EncodeWords encodes every whitespace-separated word of text.
func EncodeWords(text string) string {
	fields := strings.Fields(text)
	for i, f := range fields {
		fields[i] = EncodeWord(f)
	}
	return strings.Join(fields, " ")
}

var wordCodePattern = regexp.MustCompile(`w[₀-₉]+`)

// DecodeWords replaces word codes in text with their words. Codes are
// matched greedily, so w₁₀ is never read as w₁ followed by ₀.
func DecodeWords(text string) string {
	words := MustGet(TableWords)
	return wordCodePattern.ReplaceAllStringFunc(text, func(code string) string {
		if w, ok := words.Lookup(code); ok {
			return w
		}
		return code
	})
}
