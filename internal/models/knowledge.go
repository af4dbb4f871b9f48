package models

import (
	"time"

	"archibald/internal/common/textnorm"
)

// ScheduleKind tags the two schedule entry variants.
type ScheduleKind string

const (
	ScheduleRegular     ScheduleKind = "regular"
	ScheduleExceptional ScheduleKind = "exceptional"
)

// ScheduleEntry is either a regular opening window or a list of exceptional
// openings. Exactly one of Regular and Exceptional is set, matching Kind.
type ScheduleEntry struct {
	Kind        ScheduleKind         `json:"type"`
	Regular     *RegularOpening      `json:"regular,omitempty"`
	Exceptional []ExceptionalOpening `json:"exceptional,omitempty"`
}

// RegularOpening covers an inclusive date window on selected weekdays.
type RegularOpening struct {
	StartDate Date           `json:"startDate"`
	EndDate   Date           `json:"endDate"`
	DaysOpen  []time.Weekday `json:"daysOpen"`
	Hours     string         `json:"hours"`
	LastEntry string         `json:"lastEntry"`
}

// OpenOn reports whether d falls inside the window on an open weekday.
func (r *RegularOpening) OpenOn(d Date) bool {
	if !d.Within(r.StartDate, r.EndDate) {
		return false
	}
	wd := d.Weekday()
	for _, open := range r.DaysOpen {
		if open == wd {
			return true
		}
	}
	return false
}

type ExceptionalOpening struct {
	Date      Date   `json:"date"`
	Hours     string `json:"hours"`
	LastEntry string `json:"lastEntry"`
}

// PricingRule holds the ticket tariff.
type PricingRule struct {
	AdultPrice        float64 `json:"adultPrice"`
	ChildPrice        float64 `json:"childPrice"`
	ChildFreeBelowAge int     `json:"childFreeBelowAge"`
	AdultAgeThreshold int     `json:"adultAgeThreshold"`
	URL               string  `json:"url,omitempty"`
}

// DefaultPricingRule is used when the knowledge base carries no full tariff.
func DefaultPricingRule() PricingRule {
	return PricingRule{
		AdultPrice:        7,
		ChildPrice:        4,
		ChildFreeBelowAge: 5,
		AdultAgeThreshold: 13,
	}
}

type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type InfoEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Well-known general information keys.
const (
	InfoPetPolicy = "pet_policy"
	InfoParking   = "parking"
	InfoURL       = "url"
)

// KnowledgeBase is built once at startup and never mutated afterwards.
// Exceptional schedule entries precede regular ones.
type KnowledgeBase struct {
	Schedule    []ScheduleEntry `json:"schedule"`
	Pricing     PricingRule     `json:"pricing"`
	GeneralInfo []InfoEntry     `json:"generalInformation"`
	FAQ         []FAQEntry      `json:"faq"`
}

// Info looks up a general information value by key, ignoring case and accents.
func (kb *KnowledgeBase) Info(key string) (string, bool) {
	want := textnorm.Normalize(key)
	for _, e := range kb.GeneralInfo {
		if textnorm.Normalize(e.Key) == want {
			return e.Value, true
		}
	}
	return "", false
}
