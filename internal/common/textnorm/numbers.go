package textnorm

import "strconv"

var numberWords = map[string]int{
	"zero":     0,
	"un":       1,
	"une":      1,
	"one":      1,
	"a":        1,
	"an":       1,
	"deux":     2,
	"two":      2,
	"trois":    3,
	"three":    3,
	"quatre":   4,
	"four":     4,
	"cinq":     5,
	"five":     5,
	"six":      6,
	"sept":     7,
	"seven":    7,
	"huit":     8,
	"eight":    8,
	"neuf":     9,
	"nine":     9,
	"dix":      10,
	"ten":      10,
	"onze":     11,
	"eleven":   11,
	"douze":    12,
	"twelve":   12,
	"treize":   13,
	"thirteen": 13,
	"quatorze": 14,
	"fourteen": 14,
	"quinze":   15,
	"fifteen":  15,
	"seize":    16,
	"sixteen":  16,
	"premier":  1,
	"1er":      1,
}

// NumberWordPattern is a regexp alternation of every word ParseNumber
// understands, for embedding in larger patterns.
const NumberWordPattern = `\d+|1er|premier|zero|une?|one|an?|deux|two|trois|three|quatre|four|cinq|five|six|sept|seven|huit|eight|neuf|nine|dix|ten|onze|eleven|douze|twelve|treize|thirteen|quatorze|fourteen|quinze|fifteen|seize|sixteen`

// ParseNumber reads a normalized word as a small non-negative integer:
// digits, "1er", or a French or English number word.
func ParseNumber(word string) (int, bool) {
	if n, err := strconv.Atoi(word); err == nil {
		return n, n >= 0
	}
	n, ok := numberWords[word]
	return n, ok
}
