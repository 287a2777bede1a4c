package application

import "context"

// Translator turns a natural-language transcript into a SQL statement,
// grounded on a summary of the current database schema.
type Translator interface {
	Translate(ctx context.Context, transcript, schema string) (string, error)
}
