// Package classifyintent tags a working-language message with the topics it
// asks about.
package classifyintent

import (
	"sort"
	"strings"

	"archibald/internal/common/textnorm"
	"archibald/internal/models"
)

// Classifier is immutable once built and safe for concurrent use.
type Classifier struct {
	matchers map[Tag][]matcher
}

// New compiles table. Keywords are folded the same way messages are, so the
// table may be written with or without accents.
func New(table Table) *Classifier {
	c := &Classifier{matchers: make(map[Tag][]matcher, len(table))}

	for tag, byLang := range table {
		langs := make([]string, 0, len(byLang))
		for lang := range byLang {
			langs = append(langs, lang)
		}
		sort.Strings(langs)

		seen := make(map[string]bool)
		for _, lang := range langs {
			for _, kw := range byLang[lang] {
				prefix := strings.HasSuffix(kw, "*")
				phrase := textnorm.Normalize(strings.TrimSuffix(kw, "*"))
				key := phrase
				if prefix {
					key += "*"
				}
				if phrase == "" || seen[key] {
					continue
				}
				seen[key] = true
				c.matchers[tag] = append(c.matchers[tag], matcher{phrase: phrase, prefix: prefix, raw: kw})
			}
		}
	}
	return c
}

// Default returns a classifier over DefaultKeywords.
func Default() *Classifier {
	return New(DefaultKeywords)
}

// Classify never fails; text with no keyword hit yields all tags false.
func (c *Classifier) Classify(text string) models.IntentTags {
	norm := textnorm.Normalize(text)
	return models.IntentTags{
		Schedule: c.matches(norm, TagSchedule),
		Price:    c.matches(norm, TagPrice),
		Pet:      c.matches(norm, TagPet),
		Parking:  c.matches(norm, TagParking),
	}
}

// Explain returns the keywords that fired for each tag, for logging.
func (c *Classifier) Explain(text string) map[Tag][]string {
	norm := textnorm.Normalize(text)
	out := make(map[Tag][]string)
	for tag, ms := range c.matchers {
		for _, m := range ms {
			if m.match(norm) {
				out[tag] = append(out[tag], m.raw)
			}
		}
	}
	return out
}

func (c *Classifier) matches(norm string, tag Tag) bool {
	for _, m := range c.matchers[tag] {
		if m.match(norm) {
			return true
		}
	}
	return false
}

func (m matcher) match(norm string) bool {
	if m.prefix {
		return textnorm.ContainsPrefix(norm, m.phrase)
	}
	return textnorm.ContainsPhrase(norm, m.phrase)
}
