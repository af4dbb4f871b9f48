package knowledge

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
)

// Querier is the subset of *sql.DB used by PostgresSource.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// PostgresSource reads the document from a table of (section, payload jsonb,
// position) rows. List payloads of a repeated section are concatenated in
// position order; object payloads replace earlier ones.
type PostgresSource struct {
	db    Querier
	table string
}

func NewPostgresSource(db Querier, table string) *PostgresSource {
	return &PostgresSource{db: db, table: table}
}

func (s *PostgresSource) Name() string { return "postgres:" + s.table }

func (s *PostgresSource) query() string {
	return fmt.Sprintf("SELECT section, payload FROM %s ORDER BY position, section", pq.QuoteIdentifier(s.table))
}

func (s *PostgresSource) Fetch(ctx context.Context) (map[string]interface{}, error) {
	rows, err := s.db.QueryContext(ctx, s.query())
	if err != nil {
		return nil, fmt.Errorf("query knowledge sections: %w", err)
	}
	defer rows.Close()

	raw := make(map[string]interface{})
	for rows.Next() {
		var (
			section string
			payload []byte
		)
		if err := rows.Scan(&section, &payload); err != nil {
			return nil, fmt.Errorf("scan knowledge section: %w", err)
		}

		var value interface{}
		if err := json.Unmarshal(payload, &value); err != nil {
			// Kept as-is so preprocessing reports it like any other malformed section.
			raw[section] = string(payload)
			continue
		}

		if list, ok := value.([]interface{}); ok {
			if existing, ok := raw[section].([]interface{}); ok {
				raw[section] = append(existing, list...)
				continue
			}
		}
		raw[section] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate knowledge sections: %w", err)
	}

	return raw, nil
}
