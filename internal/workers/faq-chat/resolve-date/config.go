package resolvedate

import "time"

// frenchMonths maps folded French month names and their usual abbreviations.
var frenchMonths = map[string]time.Month{
	"janvier":   time.January,
	"janv":      time.January,
	"fevrier":   time.February,
	"fevr":      time.February,
	"fev":       time.February,
	"mars":      time.March,
	"avril":     time.April,
	"avr":       time.April,
	"mai":       time.May,
	"juin":      time.June,
	"juillet":   time.July,
	"juil":      time.July,
	"aout":      time.August,
	"septembre": time.September,
	"sept":      time.September,
	"octobre":   time.October,
	"oct":       time.October,
	"novembre":  time.November,
	"nov":       time.November,
	"decembre":  time.December,
	"dec":       time.December,
}

var (
	todayPhrases    = []string{"aujourd hui", "aujourdhui", "today"}
	tomorrowPhrases = []string{"demain", "tomorrow"}
	dayAfterPhrases = []string{"apres demain", "apresdemain", "day after tomorrow", "overmorrow"}
)

const (
	relativeDayPrepositions = `dans|in`
	relativeDayUnits        = `jours?|days?`
)
