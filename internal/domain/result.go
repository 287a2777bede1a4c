package domain

import (
	"strings"
	"text/tabwriter"
)

// QueryResult holds the outcome of one statement: the rendered rows of a
// SELECT, or the affected-row count of anything else.
type QueryResult struct {
	Columns      []string
	Rows         [][]string
	RowsAffected int64
	Fallback     bool
}

func (r *QueryResult) Empty() bool {
	return len(r.Rows) == 0
}

// Render formats the result as an aligned text table.
func (r *QueryResult) Render() string {
	if len(r.Columns) == 0 {
		return ""
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	w.Write([]byte(strings.Join(r.Columns, "\t") + "\n"))

	seps := make([]string, len(r.Columns))
	for i, col := range r.Columns {
		seps[i] = strings.Repeat("-", len(col))
	}
	w.Write([]byte(strings.Join(seps, "\t") + "\n"))

	for _, row := range r.Rows {
		w.Write([]byte(strings.Join(row, "\t") + "\n"))
	}

	w.Flush()
	return b.String()
}
