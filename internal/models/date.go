package models

import (
	"encoding/json"
	"fmt"
	"time"

	"archibald/internal/common/textnorm"
)

// Date is a calendar date without time of day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

const dateLayout = "2006-01-02"

// NewDate validates y-m-d against the calendar; 31 February is rejected
// rather than normalized to March.
func NewDate(year int, month time.Month, day int) (Date, bool) {
	if month < time.January || month > time.December || day < 1 {
		return Date{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, false
	}
	return Date{Year: year, Month: month, Day: day}, true
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate reads the YYYY-MM-DD form used in the knowledge base.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) IsZero() bool { return d == Date{} }

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) AddDays(n int) Date { return DateOf(d.Time().AddDate(0, 0, n)) }

func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

func (d Date) Before(o Date) bool { return d.Time().Before(o.Time()) }

func (d Date) After(o Date) bool { return d.Time().After(o.Time()) }

// Within reports whether start <= d <= end.
func (d Date) Within(start, end Date) bool {
	return !d.Before(start) && !d.After(end)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(dateLayout)
}

// French renders d as "02/06/2024", the form used in visitor-facing text.
func (d Date) French() string {
	return d.Time().Format("02/01/2006")
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil || *s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(*s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var weekdaysFR = [...]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}

// FrenchWeekday returns the lower-case French name of wd.
func FrenchWeekday(wd time.Weekday) string {
	return weekdaysFR[wd]
}

var weekdayNames = map[string]time.Weekday{
	"dimanche":  time.Sunday,
	"sunday":    time.Sunday,
	"lundi":     time.Monday,
	"monday":    time.Monday,
	"mardi":     time.Tuesday,
	"tuesday":   time.Tuesday,
	"mercredi":  time.Wednesday,
	"wednesday": time.Wednesday,
	"jeudi":     time.Thursday,
	"thursday":  time.Thursday,
	"vendredi":  time.Friday,
	"friday":    time.Friday,
	"samedi":    time.Saturday,
	"saturday":  time.Saturday,
}

// ParseWeekday accepts French or English day names in any case.
func ParseWeekday(name string) (time.Weekday, bool) {
	wd, ok := weekdayNames[textnorm.Normalize(name)]
	return wd, ok
}
