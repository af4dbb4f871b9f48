// Package knowledge turns the raw knowledge base document into the immutable
// models.KnowledgeBase used by every chat request.
package knowledge

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"archibald/internal/common/validation"
	"archibald/internal/models"
)

// Section names of the raw document.
const (
	SectionSchedule              = "schedule"
	SectionPricing               = "pricing"
	SectionGeneralInformation    = "general_information"
	SectionFAQ                   = "faq"
	SectionQuestionsAndResponses = "questions_and_responses"
)

// Warning describes a skipped section or entry. Index is -1 for whole
// sections.
type Warning struct {
	Section string `json:"section"`
	Index   int    `json:"index"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	if w.Index < 0 {
		return fmt.Sprintf("%s: %s", w.Section, w.Message)
	}
	return fmt.Sprintf("%s[%d]: %s", w.Section, w.Index, w.Message)
}

// Report summarizes a preprocessing run.
type Report struct {
	Warnings       []Warning `json:"warnings,omitempty"`
	ScheduleCount  int       `json:"scheduleEntries"`
	InfoCount      int       `json:"generalInformation"`
	FAQCount       int       `json:"faqEntries"`
	DefaultPricing bool      `json:"defaultPricing"`
}

type preprocessor struct {
	kb     *models.KnowledgeBase
	report *Report
}

// Preprocess builds a knowledge base from a decoded document. It never fails:
// unknown sections and malformed entries are reported and skipped.
func Preprocess(raw map[string]interface{}) (*models.KnowledgeBase, *Report) {
	p := &preprocessor{
		kb:     &models.KnowledgeBase{Pricing: models.DefaultPricingRule()},
		report: &Report{DefaultPricing: true},
	}

	// Deterministic warning order regardless of map iteration.
	sections := make([]string, 0, len(raw))
	for name := range raw {
		sections = append(sections, name)
	}
	sort.Strings(sections)

	for _, name := range sections {
		items := raw[name]
		switch name {
		case SectionSchedule:
			p.schedule(items)
		case SectionPricing:
			p.pricing(items)
		case SectionGeneralInformation:
			p.generalInformation(items)
		case SectionFAQ, SectionQuestionsAndResponses:
			p.faq(name, items)
		default:
			p.warn(name, -1, "unknown section ignored")
		}
	}

	// Exceptional entries take precedence over regular ones.
	sort.SliceStable(p.kb.Schedule, func(i, j int) bool {
		return p.kb.Schedule[i].Kind == models.ScheduleExceptional &&
			p.kb.Schedule[j].Kind != models.ScheduleExceptional
	})

	p.report.ScheduleCount = len(p.kb.Schedule)
	p.report.InfoCount = len(p.kb.GeneralInfo)
	p.report.FAQCount = len(p.kb.FAQ)
	return p.kb, p.report
}

func (p *preprocessor) warn(section string, index int, format string, args ...interface{}) {
	p.report.Warnings = append(p.report.Warnings, Warning{
		Section: section,
		Index:   index,
		Message: fmt.Sprintf(format, args...),
	})
}

func (p *preprocessor) list(section string, items interface{}) ([]interface{}, bool) {
	list, ok := items.([]interface{})
	if !ok {
		p.warn(section, -1, "expected a list, got %T", items)
	}
	return list, ok
}

func (p *preprocessor) check(section string, index int, s *validation.Schema, doc interface{}) bool {
	res := s.Validate(doc)
	if !res.Valid {
		p.warn(section, index, "malformed entry skipped: %s", res)
	}
	return res.Valid
}

func (p *preprocessor) schedule(items interface{}) {
	list, ok := p.list(SectionSchedule, items)
	if !ok {
		return
	}

	for i, item := range list {
		entry, ok := item.(map[string]interface{})
		if !ok {
			p.warn(SectionSchedule, i, "expected an object, got %T", item)
			continue
		}

		switch entry["type"] {
		case string(models.ScheduleRegular):
			if p.check(SectionSchedule, i, regularScheduleSchema, entry) {
				p.regular(i, entry)
			}
		case string(models.ScheduleExceptional):
			if p.check(SectionSchedule, i, exceptionalScheduleSchema, entry) {
				p.exceptional(i, entry)
			}
		default:
			p.warn(SectionSchedule, i, "unknown schedule type %v", entry["type"])
		}
	}
}

func (p *preprocessor) regular(index int, entry map[string]interface{}) {
	start, err := models.ParseDate(entry["start_date"].(string))
	if err != nil {
		p.warn(SectionSchedule, index, "%v", err)
		return
	}
	end, err := models.ParseDate(entry["end_date"].(string))
	if err != nil {
		p.warn(SectionSchedule, index, "%v", err)
		return
	}
	if end.Before(start) {
		p.warn(SectionSchedule, index, "end_date %s precedes start_date %s", end, start)
		return
	}

	var days []time.Weekday
	for _, raw := range entry["days_open"].([]interface{}) {
		name, _ := raw.(string)
		wd, ok := models.ParseWeekday(name)
		if !ok {
			p.warn(SectionSchedule, index, "unknown weekday %q ignored", name)
			continue
		}
		days = append(days, wd)
	}
	if len(days) == 0 {
		p.warn(SectionSchedule, index, "no valid weekday in days_open")
		return
	}

	p.kb.Schedule = append(p.kb.Schedule, models.ScheduleEntry{
		Kind: models.ScheduleRegular,
		Regular: &models.RegularOpening{
			StartDate: start,
			EndDate:   end,
			DaysOpen:  days,
			Hours:     entry["hours"].(string),
			LastEntry: stringField(entry, "last_entry"),
		},
	})
}

func (p *preprocessor) exceptional(index int, entry map[string]interface{}) {
	var openings []models.ExceptionalOpening
	for j, raw := range entry["exceptional_opening"].([]interface{}) {
		if !p.check(SectionSchedule, index, exceptionalOpeningSchema, raw) {
			continue
		}
		o := raw.(map[string]interface{})
		d, err := models.ParseDate(o["date"].(string))
		if err != nil {
			p.warn(SectionSchedule, index, "exceptional_opening[%d]: %v", j, err)
			continue
		}
		openings = append(openings, models.ExceptionalOpening{
			Date:      d,
			Hours:     o["hours"].(string),
			LastEntry: stringField(o, "last_entry"),
		})
	}
	if len(openings) == 0 {
		p.warn(SectionSchedule, index, "exceptional entry has no usable opening")
		return
	}

	p.kb.Schedule = append(p.kb.Schedule, models.ScheduleEntry{
		Kind:        models.ScheduleExceptional,
		Exceptional: openings,
	})
}

func (p *preprocessor) pricing(items interface{}) {
	obj, ok := items.(map[string]interface{})
	if !ok {
		p.warn(SectionPricing, -1, "expected an object, got %T; default tariff kept", items)
		return
	}

	rule := models.DefaultPricingRule()
	switch {
	case fullPricingSchema.Validate(obj).Valid:
		rule.AdultPrice, _ = number(obj["adult_price"])
		rule.ChildPrice, _ = number(obj["child_price"])
		free, _ := number(obj["child_free_below_age"])
		threshold, _ := number(obj["adult_age_threshold"])
		rule.ChildFreeBelowAge = int(free)
		rule.AdultAgeThreshold = int(threshold)
	case reducedPricingSchema.Validate(obj).Valid:
		rule.AdultPrice, _ = number(obj["adult"])
		rule.ChildPrice, _ = number(obj["child"])
	default:
		if url := stringField(obj, "url"); url != "" {
			rule.URL = url
			p.kb.Pricing = rule
		}
		p.warn(SectionPricing, -1, "no usable tariff fields; default tariff kept")
		return
	}

	if rule.ChildFreeBelowAge > rule.AdultAgeThreshold {
		p.warn(SectionPricing, -1, "child_free_below_age %d exceeds adult_age_threshold %d; default tariff kept",
			rule.ChildFreeBelowAge, rule.AdultAgeThreshold)
		return
	}

	rule.URL = stringField(obj, "url")
	p.kb.Pricing = rule
	p.report.DefaultPricing = false
}

func (p *preprocessor) generalInformation(items interface{}) {
	// Free-form object: every scalar field becomes an entry.
	if obj, ok := items.(map[string]interface{}); ok {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v, ok := scalar(obj[k])
			if !ok {
				p.warn(SectionGeneralInformation, -1, "field %q is not a scalar value", k)
				continue
			}
			p.kb.GeneralInfo = append(p.kb.GeneralInfo, models.InfoEntry{Key: k, Value: v})
		}
		return
	}

	list, ok := p.list(SectionGeneralInformation, items)
	if !ok {
		return
	}
	for i, item := range list {
		if !p.check(SectionGeneralInformation, i, infoEntrySchema, item) {
			continue
		}
		entry := item.(map[string]interface{})
		value, _ := scalar(entry["value"])
		p.kb.GeneralInfo = append(p.kb.GeneralInfo, models.InfoEntry{
			Key:   entry["key"].(string),
			Value: value,
		})
	}
}

func (p *preprocessor) faq(section string, items interface{}) {
	list, ok := p.list(section, items)
	if !ok {
		return
	}
	for i, item := range list {
		if !p.check(section, i, faqEntrySchema, item) {
			continue
		}
		entry := item.(map[string]interface{})
		answer := stringField(entry, "answer")
		if answer == "" {
			answer = stringField(entry, "response")
		}
		p.kb.FAQ = append(p.kb.FAQ, models.FAQEntry{
			Question: entry["question"].(string),
			Answer:   answer,
		})
	}
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func scalar(v interface{}) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case bool:
		return strconv.FormatBool(s), true
	}
	if f, ok := number(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return "", false
}
