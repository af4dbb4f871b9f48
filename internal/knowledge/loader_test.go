package knowledge

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "archibald/internal/common/errors"
	"archibald/internal/common/logger"
	"archibald/internal/models"
)

const yamlDoc = `
schedule:
  - type: regular
    start_date: "2024-04-01"
    end_date: "2024-09-30"
    days_open: [lundi, mardi]
    hours: 10h - 19h
    last_entry: 18h30
pricing:
  adult_price: 7
  child_price: 4
  child_free_below_age: 5
  adult_age_threshold: 13
faq:
  - question: Peut-on pique-niquer ?
    answer: Oui, dans le jardin.
`

func TestFileSource_YAMLAndJSON(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "kb.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlDoc), 0o600))

	kb, report, err := Load(context.Background(), NewFileSource(yamlPath), logger.NewTestLogger(t))
	require.NoError(t, err)
	assert.Empty(t, report.Warnings)
	require.Len(t, kb.Schedule, 1)
	assert.Equal(t, "10h - 19h", kb.Schedule[0].Regular.Hours)
	assert.False(t, report.DefaultPricing)
	require.Len(t, kb.FAQ, 1)
}

func TestLoad_BundledKnowledgeFile(t *testing.T) {
	kb, report, err := Load(context.Background(), NewFileSource("../../configs/knowledge.json"), logger.NewTestLogger(t))
	require.NoError(t, err)

	assert.Empty(t, report.Warnings)
	assert.Equal(t, models.ScheduleExceptional, kb.Schedule[0].Kind)
	assert.Equal(t, 7.0, kb.Pricing.AdultPrice)
	assert.Len(t, kb.FAQ, 4)
	_, ok := kb.Info(models.InfoParking)
	assert.True(t, ok)
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load(context.Background(), NewFileSource(filepath.Join(t.TempDir(), "missing.json")), logger.NewNoOpLogger())
	require.Error(t, err)

	stdErr := apperrors.AsStandardError(err)
	assert.Equal(t, apperrors.ErrCodeKnowledgeBaseUnavailable, stdErr.Code)
	assert.Contains(t, stdErr.Metadata["source"], "missing.json")
}

const yamlUnquotedDates = `
schedule:
  - type: regular
    start_date: 2024-04-01
    end_date: 2024-09-30
    days_open: [samedi, dimanche]
    hours: 10h - 19h
  - type: exceptional
    exceptional_opening:
      - date: 2024-12-26
        hours: 14h - 17h
`

func TestDecode_YAMLUnquotedDates(t *testing.T) {
	raw, err := Decode([]byte(yamlUnquotedDates), ".yaml")
	require.NoError(t, err)

	entries := raw["schedule"].([]interface{})
	regular := entries[0].(map[string]interface{})
	assert.Equal(t, "2024-04-01", regular["start_date"])
	assert.Equal(t, "2024-09-30", regular["end_date"])
	opening := entries[1].(map[string]interface{})["exceptional_opening"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "2024-12-26", opening["date"])

	kb, report := Preprocess(raw)
	assert.Empty(t, report.Warnings)
	require.Len(t, kb.Schedule, 2)
	assert.Equal(t, models.ScheduleExceptional, kb.Schedule[0].Kind)
	assert.Equal(t, "2024-04-01", kb.Schedule[1].Regular.StartDate.String())
}

func TestDecode(t *testing.T) {
	raw, err := Decode([]byte(`{"faq": []}`), ".JSON")
	require.NoError(t, err)
	assert.Contains(t, raw, "faq")

	raw, err = Decode([]byte(""), ".yml")
	require.NoError(t, err)
	assert.Empty(t, raw)

	_, err = Decode([]byte(`{"faq": [`), ".json")
	assert.Error(t, err)
}
