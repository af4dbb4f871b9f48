package knowledge

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archibald/internal/common/logger"
	"archibald/internal/models"
)

var sectionsQuery = regexp.QuoteMeta(`SELECT section, payload FROM "knowledge_sections" ORDER BY position, section`)

func TestPostgresSource_Fetch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"section", "payload"}).
		AddRow("schedule", []byte(`[{"type": "regular", "start_date": "2024-04-01", "end_date": "2024-09-30", "days_open": ["lundi"], "hours": "10h-19h"}]`)).
		AddRow("pricing", []byte(`{"adult": 8, "child": 4}`)).
		AddRow("faq", []byte(`[{"question": "A ?", "answer": "a"}]`)).
		AddRow("faq", []byte(`[{"question": "B ?", "answer": "b"}]`)).
		AddRow("schedule", []byte(`[{"type": "exceptional", "exceptional_opening": [{"date": "2024-05-01", "hours": "14h-18h"}]}]`))
	mock.ExpectQuery(sectionsQuery).WillReturnRows(rows)

	kb, report, err := Load(context.Background(), NewPostgresSource(db, "knowledge_sections"), logger.NewTestLogger(t))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Empty(t, report.Warnings)
	require.Len(t, kb.Schedule, 2)
	assert.Equal(t, models.ScheduleExceptional, kb.Schedule[0].Kind)
	assert.Equal(t, 8.0, kb.Pricing.AdultPrice)
	require.Len(t, kb.FAQ, 2)
	assert.Equal(t, "B ?", kb.FAQ[1].Question)
}

func TestPostgresSource_InvalidPayloadIsReported(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(sectionsQuery).WillReturnRows(
		sqlmock.NewRows([]string{"section", "payload"}).AddRow("faq", []byte(`{broken`)),
	)

	kb, report, err := Load(context.Background(), NewPostgresSource(db, "knowledge_sections"), logger.NewNoOpLogger())
	require.NoError(t, err)
	assert.Empty(t, kb.FAQ)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, SectionFAQ, report.Warnings[0].Section)
}

func TestPostgresSource_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(sectionsQuery).WillReturnError(errors.New("connection refused"))

	_, err = NewPostgresSource(db, "knowledge_sections").Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestPostgresSource_QuotesTableName(t *testing.T) {
	src := NewPostgresSource(nil, `kb"; DROP TABLE x; --`)
	assert.Contains(t, src.query(), `"kb""; DROP TABLE x; --"`)
	assert.Equal(t, `postgres:kb"; DROP TABLE x; --`, src.Name())
}
