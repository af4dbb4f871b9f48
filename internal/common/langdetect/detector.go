// Package langdetect identifies the language of a visitor message among the
// supported set.
package langdetect

import (
	"github.com/abadojack/whatlanggo"

	"archibald/internal/common/textnorm"
)

var isoLangs = map[string]whatlanggo.Lang{
	"fr": whatlanggo.Fra,
	"en": whatlanggo.Eng,
	"de": whatlanggo.Deu,
	"es": whatlanggo.Spa,
	"pt": whatlanggo.Por,
	"nl": whatlanggo.Nld,
	"it": whatlanggo.Ita,
}

var englishMonths = map[string]bool{
	"january":   true,
	"february":  true,
	"march":     true,
	"april":     true,
	"may":       true,
	"june":      true,
	"july":      true,
	"august":    true,
	"september": true,
	"october":   true,
	"november":  true,
	"december":  true,
}

type Detector struct {
	options   whatlanggo.Options
	codes     map[whatlanggo.Lang]string
	supported map[string]bool
	fallback  string
}

// New restricts detection to the supported ISO 639-1 codes. Codes without a
// detector model are accepted but can only be returned by the fallback.
func New(supported []string, fallback string) *Detector {
	d := &Detector{
		options:   whatlanggo.Options{Whitelist: map[whatlanggo.Lang]bool{}},
		codes:     map[whatlanggo.Lang]string{},
		supported: map[string]bool{},
		fallback:  fallback,
	}
	for _, code := range supported {
		d.supported[code] = true
		if lang, ok := isoLangs[code]; ok {
			d.options.Whitelist[lang] = true
			d.codes[lang] = code
		}
	}
	return d
}

// Detect returns the language code and whether it was actually detected.
// Messages naming an English month are taken as English.
func (d *Detector) Detect(text string) (string, bool) {
	words := textnorm.Words(text)
	if len(words) == 0 {
		return d.fallback, false
	}

	if d.supported["en"] {
		for _, w := range words {
			if englishMonths[w] {
				return "en", true
			}
		}
	}

	if len(d.codes) == 0 {
		return d.fallback, false
	}

	info := whatlanggo.DetectWithOptions(text, d.options)
	code, ok := d.codes[info.Lang]
	if !ok {
		return d.fallback, false
	}
	return code, true
}

func (d *Detector) Fallback() string { return d.fallback }
