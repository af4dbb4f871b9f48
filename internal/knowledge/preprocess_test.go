package knowledge

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archibald/internal/models"
)

func decodeJSON(t *testing.T, doc string) map[string]interface{} {
	t.Helper()
	raw, err := Decode([]byte(doc), ".json")
	require.NoError(t, err)
	return raw
}

func TestPreprocess_FullDocument(t *testing.T) {
	raw := decodeJSON(t, `{
		"schedule": [
			{"type": "regular", "start_date": "2024-04-01", "end_date": "2024-09-30",
			 "days_open": ["samedi", "Sunday"], "hours": "10h-19h", "last_entry": "18h30"},
			{"type": "exceptional", "exceptional_opening": [
				{"date": "2024-05-01", "hours": "14h-18h", "last_entry": "17h30"}
			]}
		],
		"pricing": {"adult_price": 8, "child_price": 5, "child_free_below_age": 4, "adult_age_threshold": 12, "url": "https://example.org/tarifs"},
		"general_information": [{"key": "pet_policy", "value": "Pas d'animaux dans la tour."}],
		"faq": [{"question": "Q1 ?", "answer": "A1"}, {"question": "Q2 ?", "response": "A2"}],
		"questions_and_responses": [{"question": "Q3 ?", "response": "A3"}]
	}`)

	kb, report := Preprocess(raw)

	assert.Empty(t, report.Warnings)
	assert.False(t, report.DefaultPricing)

	require.Len(t, kb.Schedule, 2)
	assert.Equal(t, models.ScheduleExceptional, kb.Schedule[0].Kind, "exceptional entries come first")
	assert.Equal(t, models.ScheduleRegular, kb.Schedule[1].Kind)
	assert.Equal(t, []time.Weekday{time.Saturday, time.Sunday}, kb.Schedule[1].Regular.DaysOpen)
	assert.Equal(t, "18h30", kb.Schedule[1].Regular.LastEntry)
	assert.Equal(t, "2024-05-01", kb.Schedule[0].Exceptional[0].Date.String())

	assert.Equal(t, models.PricingRule{
		AdultPrice: 8, ChildPrice: 5, ChildFreeBelowAge: 4, AdultAgeThreshold: 12,
		URL: "https://example.org/tarifs",
	}, kb.Pricing)

	pet, ok := kb.Info(models.InfoPetPolicy)
	assert.True(t, ok)
	assert.Equal(t, "Pas d'animaux dans la tour.", pet)

	require.Len(t, kb.FAQ, 3)
	assert.Equal(t, "A2", kb.FAQ[1].Answer, "response is accepted in place of answer")
	assert.Equal(t, "A3", kb.FAQ[2].Answer)
}

func TestPreprocess_SkipsMalformedEntries(t *testing.T) {
	raw := decodeJSON(t, `{
		"schedule": [
			"not an object",
			{"type": "seasonal"},
			{"type": "regular", "start_date": "2024-13-01", "end_date": "2024-09-30", "days_open": ["lundi"], "hours": "10h"},
			{"type": "regular", "start_date": "2024-04-01", "end_date": "2024-09-30", "days_open": ["funday"], "hours": "10h"},
			{"type": "regular", "start_date": "2024-10-01", "end_date": "2024-09-30", "days_open": ["lundi"], "hours": "10h"},
			{"type": "regular", "start_date": "2024-04-01", "end_date": "2024-09-30", "days_open": ["lundi"]},
			{"type": "exceptional", "exceptional_opening": [{"date": "2024-02-30", "hours": "10h"}, {"hours": "10h"}]},
			{"type": "regular", "start_date": "2024-04-01", "end_date": "2024-09-30", "days_open": ["lundi"], "hours": "10h"}
		],
		"general_information": [{"key": "a"}, {"key": "b", "value": 3}, 42],
		"faq": [{"question": "no answer"}, {"question": "", "answer": "x"}, {"question": "ok ?", "answer": "ok"}],
		"weather": {"today": "sunny"}
	}`)

	kb, report := Preprocess(raw)

	require.Len(t, kb.Schedule, 1)
	assert.Equal(t, models.ScheduleRegular, kb.Schedule[0].Kind)

	require.Len(t, kb.GeneralInfo, 1)
	assert.Equal(t, models.InfoEntry{Key: "b", Value: "3"}, kb.GeneralInfo[0])

	require.Len(t, kb.FAQ, 1)
	assert.Equal(t, "ok ?", kb.FAQ[0].Question)

	assert.Equal(t, models.DefaultPricingRule(), kb.Pricing)
	assert.True(t, report.DefaultPricing)

	var unknownSection bool
	for _, w := range report.Warnings {
		if w.Section == "weather" {
			unknownSection = true
			assert.Equal(t, -1, w.Index)
		}
	}
	assert.True(t, unknownSection, "unknown sections are reported")
	assert.GreaterOrEqual(t, len(report.Warnings), 12)
}

func TestPreprocess_PricingVariants(t *testing.T) {
	tests := []struct {
		name        string
		pricing     string
		want        models.PricingRule
		wantDefault bool
	}{
		{
			name:    "reduced form keeps age bands",
			pricing: `{"url": "https://example.org", "adult": 9, "child": 4.5}`,
			want:    models.PricingRule{AdultPrice: 9, ChildPrice: 4.5, ChildFreeBelowAge: 5, AdultAgeThreshold: 13, URL: "https://example.org"},
		},
		{
			name:        "url only",
			pricing:     `{"url": "https://example.org"}`,
			want:        models.PricingRule{AdultPrice: 7, ChildPrice: 4, ChildFreeBelowAge: 5, AdultAgeThreshold: 13, URL: "https://example.org"},
			wantDefault: true,
		},
		{
			name:        "inconsistent age bands",
			pricing:     `{"adult_price": 7, "child_price": 4, "child_free_below_age": 15, "adult_age_threshold": 13}`,
			want:        models.DefaultPricingRule(),
			wantDefault: true,
		},
		{
			name:        "negative price",
			pricing:     `{"adult_price": -7, "child_price": 4, "child_free_below_age": 5, "adult_age_threshold": 13}`,
			want:        models.DefaultPricingRule(),
			wantDefault: true,
		},
		{
			name:        "not an object",
			pricing:     `[7, 4]`,
			want:        models.DefaultPricingRule(),
			wantDefault: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pricing interface{}
			require.NoError(t, json.Unmarshal([]byte(tt.pricing), &pricing))

			kb, report := Preprocess(map[string]interface{}{SectionPricing: pricing})
			assert.Equal(t, tt.want, kb.Pricing)
			assert.Equal(t, tt.wantDefault, report.DefaultPricing)
		})
	}
}

func TestPreprocess_FreeFormGeneralInformation(t *testing.T) {
	raw := decodeJSON(t, `{"general_information": {
		"url": "https://phareducapferret.com",
		"pet_policy": "Animaux interdits dans la tour",
		"height_m": 53,
		"nested": {"a": 1}
	}}`)

	kb, report := Preprocess(raw)

	assert.Equal(t, []models.InfoEntry{
		{Key: "height_m", Value: "53"},
		{Key: "pet_policy", Value: "Animaux interdits dans la tour"},
		{Key: "url", Value: "https://phareducapferret.com"},
	}, kb.GeneralInfo)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0].String(), "nested")
}

func TestPreprocess_Empty(t *testing.T) {
	kb, report := Preprocess(map[string]interface{}{})
	assert.Empty(t, kb.Schedule)
	assert.Empty(t, kb.FAQ)
	assert.Equal(t, models.DefaultPricingRule(), kb.Pricing)
	assert.Empty(t, report.Warnings)
}
