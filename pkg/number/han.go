package number

import (
	"fmt"
	"strconv"
)

var hanDigits = []string{"零", "一", "二", "三", "四", "五", "六", "七", "八", "九"}

// EncodeHan returns the Han digit for 0-9 and the decimal form otherwise.
func EncodeHan(n int) string {
	if n >= 0 && n < len(hanDigits) {
		return hanDigits[n]
	}
	return strconv.Itoa(n)
}

// DecodeHan accepts a single Han digit or a decimal integer.
func DecodeHan(s string) (int, error) {
	for i, d := range hanDigits {
		if s == d {
			return i, nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not a han digit or integer: %q", s)
	}
	return n, nil
}
