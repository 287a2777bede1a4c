package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/dhavalgirsawale/SQL-Assistant/internal/domain"
)

const schemaQuery = `
	SELECT table_name, column_name, data_type
	FROM information_schema.columns
	WHERE table_schema = 'public'
	ORDER BY table_name, ordinal_position`

type column struct {
	table    string
	name     string
	dataType string
}

// SchemaSummary introspects the public schema into the compact per-table
// form the translation prompt embeds.
func (c *Client) SchemaSummary(ctx context.Context) (string, error) {
	rows, err := c.db.QueryContext(ctx, schemaQuery)
	if err != nil {
		return "", &domain.DatabaseError{Err: err}
	}
	defer rows.Close()

	var cols []column
	for rows.Next() {
		var col column
		if err := rows.Scan(&col.table, &col.name, &col.dataType); err != nil {
			return "", &domain.DatabaseError{Err: err}
		}
		cols = append(cols, col)
	}
	if err := rows.Err(); err != nil {
		return "", &domain.DatabaseError{Err: err}
	}

	return formatSchema(cols), nil
}

// formatSchema groups columns into one "table: col (type), ..." line per
// table, preserving the introspection order.
func formatSchema(cols []column) string {
	var (
		order  []string
		byName = make(map[string][]string)
	)
	for _, col := range cols {
		if _, seen := byName[col.table]; !seen {
			order = append(order, col.table)
		}
		byName[col.table] = append(byName[col.table], fmt.Sprintf("%s (%s)", col.name, col.dataType))
	}

	lines := make([]string, 0, len(order))
	for _, table := range order {
		lines = append(lines, table+": "+strings.Join(byName[table], ", "))
	}
	return strings.Join(lines, "\n")
}
