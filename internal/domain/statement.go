package domain

import (
	"regexp"
	"strings"
)

type Operation string

const (
	OpSelect         Operation = "select"
	OpInsert         Operation = "insert"
	OpUpdate         Operation = "update"
	OpDelete         Operation = "delete"
	OpCreate         Operation = "create"
	OpDrop           Operation = "drop"
	OpAlter          Operation = "alter"
	OpTruncate       Operation = "truncate"
	OpCreateDatabase Operation = "create_db"
	OpDropDatabase   Operation = "drop_db"
	OpOther          Operation = "other"
)

// Destructive reports whether the operation modifies or deletes data and
// therefore needs a spoken confirmation before it runs.
func (o Operation) Destructive() bool {
	switch o {
	case OpUpdate, OpDelete, OpDrop, OpTruncate, OpDropDatabase:
		return true
	}
	return false
}

// Statement is a SQL statement together with its detected operation.
type Statement struct {
	SQL string
	Op  Operation
}

func NewStatement(sql string) Statement {
	return Statement{SQL: sql, Op: DetectOperation(sql)}
}

var (
	fenceRe      = regexp.MustCompile("```(?:sql)?")
	bareValueRe  = regexp.MustCompile(`=\s*([a-zA-Z_][a-zA-Z0-9_]*)`)
	whereEqRe    = regexp.MustCompile(`(?i)WHERE\s+(\w+)\s*=\s*'([^']+)'`)
	fromTableRe  = regexp.MustCompile(`(?i)from\s+(\w+)`)
	lowerPairRe  = regexp.MustCompile(`lower\((\w+)\)\s*=\s*lower\('([^']+)'\)`)
	dbNameRe     = regexp.MustCompile(`(?i)(?:create|drop)\s+database\s+(?:if\s+exists\s+)?(\w+)`)
	firstWordSet = map[string]Operation{
		"select":   OpSelect,
		"insert":   OpInsert,
		"update":   OpUpdate,
		"delete":   OpDelete,
		"create":   OpCreate,
		"drop":     OpDrop,
		"alter":    OpAlter,
		"truncate": OpTruncate,
	}
)

// CleanModelOutput strips markdown code fences the model tends to wrap
// statements in.
func CleanModelOutput(s string) string {
	return strings.TrimSpace(fenceRe.ReplaceAllString(s, ""))
}

// HasPlaceholders reports whether the model left an unfilled <placeholder>
// in the statement, meaning the request was underspecified.
func HasPlaceholders(sql string) bool {
	return strings.Contains(sql, "<")
}

func DetectOperation(sql string) Operation {
	lowered := strings.ToLower(strings.TrimSpace(sql))
	if strings.Contains(lowered, "create database") {
		return OpCreateDatabase
	}
	if strings.Contains(lowered, "drop database") {
		return OpDropDatabase
	}
	fields := strings.Fields(lowered)
	if len(fields) == 0 {
		return OpOther
	}
	if op, ok := firstWordSet[fields[0]]; ok {
		return op
	}
	return OpOther
}

// SelfHeal quotes bare identifiers on the right-hand side of an equality,
// the most common way generated statements fail ("name = alice" instead of
// "name = 'alice'"). Returns the input unchanged when nothing matches.
func SelfHeal(sql string) string {
	return bareValueRe.ReplaceAllString(sql, "= '$1'")
}

// LowercaseWhere rewrites WHERE equality filters on string literals to
// case-insensitive LOWER() comparisons.
func LowercaseWhere(sql string) string {
	return whereEqRe.ReplaceAllString(sql, "WHERE LOWER($1) = LOWER('$2')")
}

// TableName extracts the first table referenced in a FROM clause, or ""
// when the statement has none.
func TableName(sql string) string {
	m := fromTableRe.FindStringSubmatch(sql)
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}

// ExtractFilters pulls column/value pairs out of LOWER(col) = LOWER('val')
// comparisons, the shape LowercaseWhere produces. The pairs seed the next
// utterance's pronoun resolution.
func ExtractFilters(sql string) map[string]string {
	filters := make(map[string]string)
	for _, m := range lowerPairRe.FindAllStringSubmatch(strings.ToLower(sql), -1) {
		filters[m[1]] = m[2]
	}
	return filters
}

// DatabaseName extracts the database identifier from a CREATE DATABASE or
// DROP DATABASE statement.
func DatabaseName(sql string) string {
	m := dbNameRe.FindStringSubmatch(sql)
	if m == nil {
		return ""
	}
	return m[1]
}
