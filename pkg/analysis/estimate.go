// Package analysis estimates how many LLM tokens GaiaScript notation saves
// compared to its spelled-out equivalent.
//
// Estimates are heuristic. Each rune is weighted by its script class and the
// weights are summed and rounded up; no real tokenizer is involved.
package analysis

import (
	"math"
	"unicode"
	"unicode/utf8"
)

// Default weights, in tokens per rune.
const (
	DefaultCJKRatio   = 0.7
	DefaultMathRatio  = 0.4
	DefaultASCIIRatio = 0.25
)

// Estimator weights runes by class. Whitespace costs nothing.
type Estimator struct {
	CJK   float64 `koanf:"cjk" json:"cjk" yaml:"cjk"`
	Math  float64 `koanf:"math" json:"math" yaml:"math"`
	ASCII float64 `koanf:"ascii" json:"ascii" yaml:"ascii"`
}

// DefaultEstimator returns an Estimator with the default weights.
func DefaultEstimator() Estimator {
	return Estimator{CJK: DefaultCJKRatio, Math: DefaultMathRatio, ASCII: DefaultASCIIRatio}
}

// Estimate is the measured size of a piece of text.
type Estimate struct {
	Runes  int `json:"runes"`
	Bytes  int `json:"bytes"`
	Tokens int `json:"tokens"`
}

// RuneClass is the weighting class of a rune.
type RuneClass int

// Rune classes.
const (
	ClassSpace RuneClass = iota
	ClassASCII
	ClassCJK
	ClassMath
)

// Classify returns the weighting class of r. Anything that is neither
// whitespace, ASCII nor CJK counts as a math symbol.
func Classify(r rune) RuneClass {
	switch {
	case unicode.IsSpace(r):
		return ClassSpace
	case r < utf8.RuneSelf:
		return ClassASCII
	case unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul):
		return ClassCJK
	}
	return ClassMath
}

// Estimate measures s.
func (e Estimator) Estimate(s string) Estimate {
	var counts [4]int
	for _, r := range s {
		counts[Classify(r)]++
	}

	weighted := float64(counts[ClassASCII])*e.ASCII +
		float64(counts[ClassCJK])*e.CJK +
		float64(counts[ClassMath])*e.Math

	return Estimate{
		Runes:  utf8.RuneCountInString(s),
		Bytes:  len(s),
		Tokens: roundUp(weighted),
	}
}

// roundUp is math.Ceil that ignores float noise below a millionth.
func roundUp(v float64) int {
	return int(math.Ceil(math.Round(v*1e6) / 1e6))
}

// Reduction is the percentage by which after is smaller than before.
// It is 0 when before is 0.
func Reduction(before, after int) float64 {
	if before == 0 {
		return 0
	}
	return float64(before-after) / float64(before) * 100
}
