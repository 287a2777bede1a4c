package application

import (
	"context"

	"github.com/dhavalgirsawale/SQL-Assistant/internal/domain"
)

// Database is the executor side of the pipeline: statement execution plus
// the administrative operations the assistant exposes by voice.
type Database interface {
	SchemaSummary(ctx context.Context) (string, error)
	Execute(ctx context.Context, stmt domain.Statement) (*domain.QueryResult, error)
	FallbackSearch(ctx context.Context, table, term string) (*domain.QueryResult, error)
	CreateDatabase(ctx context.Context, name string) error
	DropDatabase(ctx context.Context, name string) error
	Switch(ctx context.Context, name string) error
	Name() string
	Close() error
}
