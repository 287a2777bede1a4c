package domain_test

import (
	"strings"
	"testing"

	"github.com/dhavalgirsawale/SQL-Assistant/internal/domain"
)

func TestQueryResultRender(t *testing.T) {
	r := &domain.QueryResult{
		Columns: []string{"id", "name"},
		Rows: [][]string{
			{"1", "alice"},
			{"2", "bob"},
		},
	}

	out := r.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "id") || !strings.Contains(lines[0], "name") {
		t.Errorf("header missing columns: %q", lines[0])
	}
	if !strings.Contains(lines[2], "alice") {
		t.Errorf("first row missing: %q", lines[2])
	}
}

func TestQueryResultEmpty(t *testing.T) {
	r := &domain.QueryResult{Columns: []string{"id"}}
	if !r.Empty() {
		t.Error("result with no rows should be empty")
	}

	r.Rows = [][]string{{"1"}}
	if r.Empty() {
		t.Error("result with rows should not be empty")
	}
}
