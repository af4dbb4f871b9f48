// Package resolvedate turns the date a visitor refers to ("demain",
// "dans 3 jours", "le 14 juillet") into a calendar date.
package resolvedate

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"archibald/internal/common/textnorm"
	"archibald/internal/models"
)

var (
	monthAlternation = func() string {
		names := make([]string, 0, len(frenchMonths))
		for name := range frenchMonths {
			names = append(names, name)
		}
		// Longest first so "septembre" wins over "sept".
		sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
		return strings.Join(names, "|")
	}()

	inDaysRe = regexp.MustCompile(`\b(?:` + relativeDayPrepositions + `) (` + textnorm.NumberWordPattern + `) (?:` + relativeDayUnits + `)\b`)

	// "le 14 juillet", "14 juillet 2025", "1er mai"
	dayMonthRe = regexp.MustCompile(`\b(?:le )?(\d{1,2}|1er|premier) (` + monthAlternation + `)\b(?: (\d{4})\b)?`)

	numericDateRe = regexp.MustCompile(`\b\d{1,4}[/.\-]\d{1,2}[/.\-]\d{2,4}\b`)

	englishMonthRe = regexp.MustCompile(`(?i)\b(?:(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.? \d{1,2}(?:st|nd|rd|th)?(?:,? \d{4})?|\d{1,2}(?:st|nd|rd|th)? (?:of )?(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*(?:,? \d{4})?)\b`)

	ordinalSuffixRe = regexp.MustCompile(`(?i)(\d)(st|nd|rd|th)\b`)
)

// Resolver is stateless and safe for concurrent use.
type Resolver struct {
	loc *time.Location
}

// New returns a resolver that interprets fuzzy dates in loc.
func New(loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{loc: loc}
}

// Resolve returns the date text refers to, relative to the calendar date of
// ref. The first matching rule wins; any parse failure yields false.
func (r *Resolver) Resolve(text string, ref time.Time) (models.Date, bool) {
	today := models.DateOf(ref.In(r.loc))
	norm := textnorm.Normalize(text)

	if containsAny(norm, todayPhrases) {
		return today, true
	}

	// "après-demain" contains "demain", so the longer phrases are removed
	// before looking for tomorrow.
	if containsAny(stripPhrases(norm, dayAfterPhrases), tomorrowPhrases) {
		return today.AddDays(1), true
	}
	if containsAny(norm, dayAfterPhrases) {
		return today.AddDays(2), true
	}

	if m := inDaysRe.FindStringSubmatch(norm); m != nil {
		if n, ok := textnorm.ParseNumber(m[1]); ok && n > 0 {
			return today.AddDays(n), true
		}
	}

	if m := dayMonthRe.FindStringSubmatch(norm); m != nil {
		return resolveDayMonth(m, today)
	}

	return r.fuzzy(text, today)
}

// resolveDayMonth handles the French day-month forms. An explicit year is
// used as is; without one the reference year applies, rolled forward when
// the date is already past.
func resolveDayMonth(m []string, today models.Date) (models.Date, bool) {
	day, ok := textnorm.ParseNumber(m[1])
	if !ok {
		return models.Date{}, false
	}
	month := frenchMonths[m[2]]

	if m[3] != "" {
		year, err := strconv.Atoi(m[3])
		if err != nil {
			return models.Date{}, false
		}
		return models.NewDate(year, month, day)
	}

	d, ok := models.NewDate(today.Year, month, day)
	if !ok {
		return models.Date{}, false
	}
	if d.Before(today) {
		return models.NewDate(today.Year+1, month, day)
	}
	return d, true
}

// fuzzy hands date-looking fragments of the raw text (numeric dates, English
// month names) to a generic parser. Free text around them is never parsed.
func (r *Resolver) fuzzy(text string, today models.Date) (models.Date, bool) {
	candidates := numericDateRe.FindAllString(text, -1)
	candidates = append(candidates, englishMonthRe.FindAllString(text, -1)...)

	for _, c := range candidates {
		c = ordinalSuffixRe.ReplaceAllString(c, "$1")
		c = strings.Replace(c, " of ", " ", 1)

		t, err := dateparse.ParseIn(c, r.loc, dateparse.PreferMonthFirst(false))
		if err != nil {
			continue
		}
		if t.Year() == 0 {
			d, ok := models.NewDate(today.Year, t.Month(), t.Day())
			if ok && d.Before(today) {
				d, ok = models.NewDate(today.Year+1, t.Month(), t.Day())
			}
			return d, ok
		}
		return models.DateOf(t), true
	}
	return models.Date{}, false
}

func containsAny(norm string, phrases []string) bool {
	for _, p := range phrases {
		if textnorm.ContainsPhrase(norm, p) {
			return true
		}
	}
	return false
}

func stripPhrases(norm string, phrases []string) string {
	padded := " " + norm + " "
	for _, p := range phrases {
		padded = strings.ReplaceAll(padded, " "+p+" ", " ")
	}
	return strings.TrimSpace(padded)
}
