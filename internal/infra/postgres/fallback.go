package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/dhavalgirsawale/SQL-Assistant/internal/domain"
)

const (
	tableExistsQuery = `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name = $1`

	textColumnsQuery = `
		SELECT column_name FROM information_schema.columns
		WHERE table_name = $1 AND data_type IN ('character varying', 'text')`
)

// FallbackSearch is the secondary lookup for a SELECT that came back
// empty: a parameterized ILIKE scan of the table's text columns for the
// spoken phrase.
func (c *Client) FallbackSearch(ctx context.Context, table, term string) (*domain.QueryResult, error) {
	var name string
	err := c.db.QueryRowContext(ctx, tableExistsQuery, table).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTableNotFound
	}
	if err != nil {
		return nil, &domain.DatabaseError{Err: err}
	}

	rows, err := c.db.QueryContext(ctx, textColumnsQuery, table)
	if err != nil {
		return nil, &domain.DatabaseError{Err: err}
	}
	defer rows.Close()

	var textCols []string
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return nil, &domain.DatabaseError{Err: err}
		}
		textCols = append(textCols, col)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.DatabaseError{Err: err}
	}

	if len(textCols) == 0 {
		return nil, domain.ErrNoTextColumns
	}

	query, args := fallbackQuery(table, textCols, term)
	result, err := c.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	result.Fallback = true
	return result, nil
}

// fallbackQuery builds a SELECT matching term against every text column,
// identifiers quoted and patterns passed as parameters.
func fallbackQuery(table string, cols []string, term string) (string, []any) {
	conditions := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, col := range cols {
		conditions[i] = fmt.Sprintf("%s ILIKE $%d", pq.QuoteIdentifier(col), i+1)
		args[i] = "%" + term + "%"
	}

	query := fmt.Sprintf("SELECT * FROM %s WHERE %s",
		pq.QuoteIdentifier(table), strings.Join(conditions, " OR "))
	return query, args
}
